// Package web provides browser-facing actions: web search, URL opening, and
// YouTube search/playback.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"
)

// videoIDPattern matches the first video ID embedded in a YouTube results page.
var videoIDPattern = regexp.MustCompile(`"videoId":"([A-Za-z0-9_-]{11})"`)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// Handlers returns the browser actions.
func Handlers() []actions.Handler {
	return []actions.Handler{
		actions.NewFunc("search_web",
			"Search the web in the default browser (parameters: query)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				query := actions.String(params, "query", "")
				if query == "" {
					return command.Fail("No search query provided").Ptr(), nil
				}
				searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query)
				if err := openBrowser(ctx, searchURL); err != nil {
					return command.Fail("Failed to open browser: %v", err).Ptr(), nil
				}
				return command.Ok("Opened web search for: %s", query).Ptr(), nil
			}),

		actions.NewFunc("open_url",
			"Open a URL in the default browser (parameters: url)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				target := actions.String(params, "url", "")
				if target == "" {
					return command.Fail("No URL provided").Ptr(), nil
				}
				if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
					target = "https://" + target
				}
				if err := openBrowser(ctx, target); err != nil {
					return command.Fail("Failed to open URL: %v", err).Ptr(), nil
				}
				return command.Ok("Opened %s", target).Ptr(), nil
			}),

		actions.NewFunc("search_youtube",
			"Show YouTube search results (parameters: query)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				query := actions.String(params, "query", "")
				if query == "" {
					return command.Fail("No search query provided").Ptr(), nil
				}
				searchURL := youtubeSearchURL(query)
				if err := openBrowser(ctx, searchURL); err != nil {
					return command.Fail("Failed to open browser: %v", err).Ptr(), nil
				}
				return command.Ok("Showing search results for: %s", query).Ptr(), nil
			}),

		actions.NewFunc("play_youtube_video",
			"Search YouTube and play the first matching video (parameters: query)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				query := actions.String(params, "query", "")
				if query == "" {
					return command.Fail("No search query provided").Ptr(), nil
				}

				videoURL, err := firstVideoURL(ctx, query)
				if err != nil {
					// Scraping failed; the search page is still useful.
					if err := openBrowser(ctx, youtubeSearchURL(query)); err != nil {
						return command.Fail("Error playing video: %v", err).Ptr(), nil
					}
					return command.Ok("Showing search results for: %s", query).Ptr(), nil
				}

				if err := openBrowser(ctx, videoURL); err != nil {
					return command.Fail("Error playing video: %v", err).Ptr(), nil
				}
				return command.Ok("Now playing: %s", query).
					WithData(map[string]any{"url": videoURL}).Ptr(), nil
			}),
	}
}

func youtubeSearchURL(query string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
}

// firstVideoURL fetches the results page and extracts the first video ID.
func firstVideoURL(ctx context.Context, query string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, youtubeSearchURL(query), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youtube search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}

	m := videoIDPattern.FindSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("no video found for %q", query)
	}

	return "https://www.youtube.com/watch?v=" + string(m[1]), nil
}

// openBrowser launches the platform default browser on the given URL.
func openBrowser(ctx context.Context, target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", target)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
