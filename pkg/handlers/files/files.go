// Package files provides file management actions: creation, pattern search,
// large-file discovery, and directory sizing.
package files

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"deskpilot/pkg/actions"
	"deskpilot/pkg/command"
)

const (
	maxSearchResults = 50
	maxLargeFiles    = 20
)

// Handlers returns the file management actions.
func Handlers() []actions.Handler {
	return []actions.Handler{
		actions.NewFunc("create_file",
			"Create a file with content (parameters: filename, content)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				filename := actions.String(params, "filename", "")
				content := actions.String(params, "content", "")
				if filename == "" {
					return command.Fail("No filename provided").Ptr(), nil
				}
				if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
					return command.Fail("Failed to create file: %v", err).Ptr(), nil
				}
				return command.Ok("Created file: %s", filename).Ptr(), nil
			}),

		actions.NewFunc("search_files",
			"Search for files matching a pattern (parameters: pattern, directory)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				pattern := actions.String(params, "pattern", "*")
				directory := actions.String(params, "directory", ".")

				matches, err := searchFiles(ctx, pattern, directory, maxSearchResults)
				if err != nil {
					return command.Fail("Error searching: %v", err).Ptr(), nil
				}
				return command.Ok("Found %d files matching '%s'", len(matches), pattern).
					WithData(map[string]any{"files": matches}).Ptr(), nil
			}),

		actions.NewFunc("find_large_files",
			"Find files above a size threshold (parameters: directory, min_size_mb)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				directory := actions.String(params, "directory", ".")
				minSizeMB := actions.Float(params, "min_size_mb", 10)

				found, err := findLargeFiles(ctx, directory, minSizeMB, maxLargeFiles)
				if err != nil {
					return command.Fail("Error searching: %v", err).Ptr(), nil
				}
				return command.Ok("Found %d large files", len(found)).
					WithData(map[string]any{"files": found}).Ptr(), nil
			}),

		actions.NewFunc("directory_size",
			"Calculate the total size of a directory (parameters: directory)",
			func(ctx context.Context, params map[string]any) (*command.Result, error) {
				directory := actions.String(params, "directory", ".")

				totalBytes, fileCount, err := directorySize(ctx, directory)
				if err != nil {
					return command.Fail("Failed to calculate size: %v", err).Ptr(), nil
				}
				sizeGB := fmt.Sprintf("%.2f GB", float64(totalBytes)/(1024*1024*1024))
				return command.Ok("%s: %s (%d files)", directory, sizeGB, fileCount).
					WithData(map[string]any{
						"total_size_bytes": totalBytes,
						"file_count":       fileCount,
						"directory":        directory,
					}).Ptr(), nil
			}),
	}
}

// searchFiles walks the tree matching base names against a glob pattern,
// stopping once the result cap is reached.
func searchFiles(ctx context.Context, pattern, directory string, limit int) ([]string, error) {
	var matches []string

	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			matches = append(matches, path)
			if len(matches) >= limit {
				return fs.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

type largeFile struct {
	Path   string `json:"path"`
	SizeMB string `json:"size_mb"`
	Bytes  int64  `json:"size_bytes"`
}

func findLargeFiles(ctx context.Context, directory string, minSizeMB float64, limit int) ([]largeFile, error) {
	minBytes := int64(minSizeMB * 1024 * 1024)
	var found []largeFile

	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() >= minBytes {
			found = append(found, largeFile{
				Path:   path,
				SizeMB: fmt.Sprintf("%.2f MB", float64(info.Size())/(1024*1024)),
				Bytes:  info.Size(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Bytes > found[j].Bytes })
	if len(found) > limit {
		found = found[:limit]
	}

	return found, nil
}

func directorySize(ctx context.Context, directory string) (int64, int, error) {
	if _, err := os.Stat(directory); err != nil {
		return 0, 0, err
	}

	var total int64
	var count int

	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
			count++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return total, count, nil
}
