// Package runtime hosts the admin automation controller and its persistent
// action log.
package runtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogEntry is one recorded runtime action event. An action produces a
// started entry and either a completed or failed entry.
type LogEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Input     map[string]any `json:"input"`
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
}

// ActionLog is a file-backed, size-bounded JSON log. Appends serialize
// through a mutex; the newest maxEntries entries are kept.
type ActionLog struct {
	mu         sync.Mutex
	path       string
	maxEntries int
}

// NewActionLog opens (or prepares to create) the log file at path.
func NewActionLog(path string, maxEntries int) *ActionLog {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &ActionLog{path: path, maxEntries: maxEntries}
}

// Append adds an entry, trimming the log to its maximum size.
func (l *ActionLog) Append(entry LogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if len(entries) > l.maxEntries {
		entries = entries[len(entries)-l.maxEntries:]
	}
	return l.write(entries)
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all
// entries in stored (oldest first) order.
func (l *ActionLog) Recent(limit int) ([]LogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return entries, nil
	}
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	reversed := make([]LogEntry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}
	return reversed, nil
}

func (l *ActionLog) read() ([]LogEntry, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEntry{}, nil
		}
		return nil, fmt.Errorf("actionlog: read %s: %w", l.path, err)
	}
	var entries []LogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// A corrupt log should not wedge the runtime; start fresh.
		return []LogEntry{}, nil
	}
	return entries, nil
}

func (l *ActionLog) write(entries []LogEntry) error {
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("actionlog: encode: %w", err)
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("actionlog: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(l.path, raw, 0o644); err != nil {
		return fmt.Errorf("actionlog: write %s: %w", l.path, err)
	}
	return nil
}
