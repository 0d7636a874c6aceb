// Package history records every interpreted instruction and its outcome, and
// answers queries about past activity.
package history

import (
	"fmt"
	"os"
	"sync"
	"time"

	"deskpilot/pkg/utils"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxMessageLen truncates stored result messages so one verbose handler
// cannot bloat the journal file.
const maxMessageLen = 200

// Entry is one recorded instruction.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserInput string    `json:"user_input"`
	Action    string    `json:"action,omitempty"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
}

// Journal is an append-only command log with a rolling cap, persisted to a
// single JSON file.
type Journal struct {
	path    string
	limit   int
	entries []Entry
	mu      sync.Mutex
}

// NewJournal opens or creates the journal at path, keeping at most limit
// entries.
func NewJournal(path string, limit int) *Journal {
	j := &Journal{path: path, limit: limit}
	j.load()
	return j
}

func (j *Journal) load() {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	if len(entries) > j.limit {
		entries = entries[len(entries)-j.limit:]
	}
	j.entries = entries
}

func (j *Journal) save() {
	data, err := json.MarshalIndent(j.entries, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(j.path, data, 0644)
}

// Record appends one entry and persists the journal.
func (j *Journal) Record(userInput, action string, success bool, message string) {
	// Truncate by runes so a multibyte message never ends mid-sequence.
	if r := []rune(message); len(r) > maxMessageLen {
		message = string(r[:maxMessageLen])
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append(j.entries, Entry{
		ID:        utils.GenerateID(),
		Timestamp: time.Now(),
		UserInput: userInput,
		Action:    action,
		Success:   success,
		Message:   message,
	})
	if len(j.entries) > j.limit {
		j.entries = j.entries[len(j.entries)-j.limit:]
	}

	j.save()
}

// Recent returns the last count entries, newest last.
func (j *Journal) Recent(count int) []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	if count <= 0 || count > len(j.entries) {
		count = len(j.entries)
	}
	out := make([]Entry, count)
	copy(out, j.entries[len(j.entries)-count:])
	return out
}

// Stats summarizes the journal.
type Stats struct {
	TotalCommands int    `json:"total_commands"`
	Successful    int    `json:"successful"`
	Failed        int    `json:"failed"`
	SuccessRate   string `json:"success_rate"`
}

// Statistics computes success counts over the whole journal.
func (j *Journal) Statistics() Stats {
	j.mu.Lock()
	defer j.mu.Unlock()

	s := Stats{TotalCommands: len(j.entries), SuccessRate: "0%"}
	for _, e := range j.entries {
		if e.Success {
			s.Successful++
		}
	}
	s.Failed = s.TotalCommands - s.Successful
	if s.TotalCommands > 0 {
		rate := float64(s.Successful) / float64(s.TotalCommands) * 100
		s.SuccessRate = fmt.Sprintf("%.1f%%", rate)
	}
	return s
}
