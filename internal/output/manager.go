// Package output owns the run folder lifecycle under the output directory:
// archiving the previous run, writing the new run's PDFs, and recording a
// manifest for each run.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wilddrones/preflight/internal/filter"
	"github.com/wilddrones/preflight/internal/logging"
)

const (
	archiveDirName    = "archive"
	checklistFileName = "checklist.pdf"
	manualFileName    = "procedures.pdf"
	manifestFileName  = "manifest.json"
	runNameTimeLayout = "20060102_150405"
)

// Manifest records what one run produced.
type Manifest struct {
	ID          string    `json:"id"`
	Operation   string    `json:"operation"`
	Platform    string    `json:"platform"`
	Count       string    `json:"count"`
	GeneratedAt time.Time `json:"generated_at"`
	Files       []string  `json:"files"`
}

// Manager publishes run folders under an explicit root directory. The root is
// a parameter, never the working directory, so tests can point it at a
// temporary path.
type Manager struct {
	root string
	now  func() time.Time
	log  *logging.Logger
}

// Option customizes a Manager during construction.
type Option func(*Manager)

// WithClock overrides the clock used for run names and manifests.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		m.now = clock
	}
}

// WithLogger attaches a logger for archive/publish progress.
func WithLogger(log *logging.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager builds a manager rooted at dir.
func NewManager(dir string, opts ...Option) *Manager {
	m := &Manager{
		root: dir,
		now:  time.Now,
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Root returns the output directory the manager writes under.
func (m *Manager) Root() string {
	return m.root
}

// Publish archives whatever run is currently in the output directory, then
// writes the new run folder with both PDFs and a manifest, returning the new
// folder's path. If archiving fails nothing is written, so the directory
// never ends up with two current runs and the previous run is never lost.
func (m *Manager) Publish(sel filter.Selection, checklist, manual []byte) (string, error) {
	now := m.now()
	runName := fmt.Sprintf("%s_%s", sel, now.Format(runNameTimeLayout))

	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return "", fmt.Errorf("output: ensure output dir: %w", err)
	}
	if err := m.archiveExisting(now); err != nil {
		return "", fmt.Errorf("output: archive previous run: %w", err)
	}

	runDir := filepath.Join(m.root, runName)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("output: create run folder: %w", err)
	}

	manifest := Manifest{
		ID:          uuid.NewString(),
		Operation:   sel.Operation,
		Platform:    sel.Platform,
		Count:       sel.Count,
		GeneratedAt: now,
		Files:       []string{checklistFileName, manualFileName},
	}
	err := writeRun(runDir, checklist, manual, manifest)
	if err != nil {
		// Drop the half-written folder so the previous (now archived) run
		// stays the only complete one.
		os.RemoveAll(runDir)
		return "", err
	}

	m.log.Info("run published",
		logging.String("folder", runDir),
		logging.String("selection", sel.String()),
	)
	return runDir, nil
}

func writeRun(runDir string, checklist, manual []byte, manifest Manifest) error {
	if err := os.WriteFile(filepath.Join(runDir, checklistFileName), checklist, 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", checklistFileName, err)
	}
	if err := os.WriteFile(filepath.Join(runDir, manualFileName), manual, 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", manualFileName, err)
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("output: encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, manifestFileName), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", manifestFileName, err)
	}
	return nil
}

// archiveExisting moves every non-archive entry of the output directory (run
// folders and stray PDFs) into archive/. A name collision inside archive/
// gets a timestamp suffix rather than overwriting the older run.
func (m *Manager) archiveExisting(now time.Time) error {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return err
	}

	archiveDir := filepath.Join(m.root, archiveDirName)
	for _, entry := range entries {
		name := entry.Name()
		if name == archiveDirName {
			continue
		}
		if !entry.IsDir() && !strings.HasSuffix(name, ".pdf") {
			continue
		}
		if err := os.MkdirAll(archiveDir, 0o755); err != nil {
			return err
		}
		dest := filepath.Join(archiveDir, name)
		if _, statErr := os.Stat(dest); statErr == nil {
			dest = filepath.Join(archiveDir, fmt.Sprintf("%s_%s", name, now.Format(runNameTimeLayout)))
		}
		if err := os.Rename(filepath.Join(m.root, name), dest); err != nil {
			return err
		}
		m.log.Info("archived previous run", logging.String("name", name))
	}
	return nil
}

// Runs lists the current (non-archived) run folder names under the root.
func (m *Manager) Runs() ([]string, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("output: read output dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() != archiveDirName {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
