package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nomoji/nomoji/internal/types"
)

// RunRecord is one line in the run history: what a clean or scan touched and
// what it found.
type RunRecord struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Root      string    `json:"root"`
	DryRun    bool      `json:"dry_run"`
	Files     int       `json:"files"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Skipped   int       `json:"skipped"`
	Removed   int       `json:"removed"`
	Duration  string    `json:"duration"`
}

type Log struct {
	logPath string
}

// NewLog places the history file inside .git when the root is a repository,
// keeping it out of the working tree.
func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".nomoji_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "nomoji_audit.jsonl")
	}
	return &Log{logPath: logPath}
}

// LoadHistory returns all recorded runs, most recent first.
func (a *Log) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogRun appends one record to the history file.
func (a *Log) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", time.Now().Unix())
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}
	return nil
}

// DeleteRecord removes the record at index (0 = most recent).
func (a *Log) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}

	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}

	records = append(records[:index], records[index+1:]...)

	// back to file order: oldest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	f, err := os.Create(a.logPath)
	if err != nil {
		return fmt.Errorf("failed to create run history: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write run record: %w", err)
		}
	}
	return nil
}

// CreateRunRecord summarizes one engine run for the history file.
func CreateRunRecord(root string, results []types.FileResult, dryRun bool, duration time.Duration) RunRecord {
	s := types.Summarize(results)
	return RunRecord{
		Timestamp: time.Now(),
		Root:      root,
		DryRun:    dryRun,
		Files:     s.Files,
		Succeeded: s.Succeeded,
		Failed:    s.Failed,
		Skipped:   s.Skipped,
		Removed:   s.Removed,
		Duration:  duration.String(),
	}
}
