// Package workflows persists named step sequences as reusable templates.
package workflows

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"deskpilot/pkg/command"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var filenameSafeRegex = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

// Template is one saved workflow.
type Template struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Steps       []command.StepSpec `json:"steps"`
	Created     time.Time          `json:"created"`
	UsageCount  int                `json:"usage_count"`
}

// Store keeps workflow templates as one JSON file per name under a storage
// directory.
type Store struct {
	storage string
	mu      sync.Mutex
}

// NewStore initializes a Store with a specific storage directory.
func NewStore(storage string) *Store {
	if storage != "" {
		os.MkdirAll(storage, 0755)
	}
	return &Store{storage: storage}
}

func (s *Store) path(name string) string {
	safe := filenameSafeRegex.ReplaceAllString(name, "_")
	return filepath.Join(s.storage, safe+".json")
}

// Save writes a template, replacing any existing one with the same name.
func (s *Store) Save(name, description string, steps []command.StepSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Template{
		Name:        name,
		Description: description,
		Steps:       steps,
		Created:     time.Now(),
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), data, 0644)
}

// Load reads a template and bumps its usage counter.
func (s *Store) Load(name string) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("workflow %q not found", name)
	}

	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("workflow %q is corrupted: %w", name, err)
	}

	t.UsageCount++
	if data, err := json.MarshalIndent(t, "", "  "); err == nil {
		os.WriteFile(s.path(name), data, 0644)
	}

	return &t, nil
}

// List returns all templates sorted by name.
func (s *Store) List() ([]Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.storage)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var templates []Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.storage, entry.Name()))
		if err != nil {
			continue
		}
		var t Template
		if err := json.Unmarshal(data, &t); err != nil {
			continue
		}
		templates = append(templates, t)
	}

	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}
