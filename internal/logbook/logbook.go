// Package logbook keeps an append-only journal of generation runs under the
// output directory, so operators can see what was generated and when even
// after run folders rotate into the archive.
package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/wilddrones/preflight/internal/filter"
)

// FileName is the journal file kept inside the output directory.
const FileName = "runs.log"

// Journal persists one line per published run.
type Journal struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// New creates a journal writing to the given file path.
func New(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure directory: %w", err)
	}
	return &Journal{path: path, now: time.Now}, nil
}

// InDir creates a journal at the conventional location inside outputDir.
func InDir(outputDir string) (*Journal, error) {
	return New(filepath.Join(outputDir, FileName))
}

// WithClock overrides the journal's clock. Used by tests.
func (j *Journal) WithClock(clock func() time.Time) *Journal {
	j.now = clock
	return j
}

// Path returns the file backing the journal.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// Record appends an entry for a published run folder.
func (j *Journal) Record(runName string, sel filter.Selection) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	line := fmt.Sprintf("%s %s operation=%s platform=%s count=%s\n",
		j.now().UTC().Format(time.RFC3339),
		runName,
		sel.Operation, sel.Platform, sel.Count,
	)
	file, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("logbook: open journal: %w", err)
	}
	defer file.Close()
	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("logbook: append entry: %w", err)
	}
	return nil
}

// Tail returns up to maxLines of the most recent entries and the total entry
// count. A journal that does not exist yet reads as empty.
func (j *Journal) Tail(maxLines int) ([]string, int, error) {
	if j == nil || maxLines <= 0 {
		return nil, 0, nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	file, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("logbook: open journal: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("logbook: read journal: %w", err)
	}
	total := len(lines)
	if total > maxLines {
		lines = lines[total-maxLines:]
	}
	return lines, total, nil
}
