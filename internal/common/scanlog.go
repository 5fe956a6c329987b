package common

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ScanEntry captures one completed scan of a trace file.
type ScanEntry struct {
	File     string    `json:"file"`
	Digest   string    `json:"digest"`
	Pass     bool      `json:"pass"`
	Lines    int64     `json:"lines"`
	Failures int64     `json:"failures,omitempty"`
	Ts       time.Time `json:"ts"`
}

// ScanLog provides append-only access to a JSONL audit log of scan runs.
type ScanLog struct {
	path string
	mu   sync.Mutex
}

// NewScanLog returns a ScanLog that writes to the provided path.
func NewScanLog(path string) *ScanLog {
	return &ScanLog{path: path}
}

// Path returns the backing file path for the log.
func (l *ScanLog) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes a new entry to the audit log. Entries are serialized as JSON
// objects, one per line, to make downstream consumption straightforward.
func (l *ScanLog) Append(entry ScanEntry) error {
	if l == nil {
		return errors.New("nil scan log")
	}
	if entry.File == "" {
		return errors.New("scan entry missing file")
	}
	if entry.Ts.IsZero() {
		entry.Ts = time.Now().UTC()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	dir := filepath.Dir(l.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

// ReadScanLog loads every entry from the supplied JSONL file.
func ReadScanLog(path string) ([]ScanEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	var entries []ScanEntry
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry ScanEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("decode scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
