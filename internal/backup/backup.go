// Package backup maintains a bounded history of store file snapshots and
// recovers a readable document from them when the primary file cannot be
// parsed. Backups are a best-effort safety net: every error here is reported
// to the caller for logging but must never block the write it was protecting.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const (
	// DefaultThrottle is the minimum interval between successive snapshots.
	DefaultThrottle = 5 * time.Minute
	// DefaultRetain is how many snapshots are kept; older ones are deleted.
	DefaultRetain = 10
)

// Clock supplies the current time. Injectable so throttle and rotation
// behavior can be tested without waiting.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Config carries the dependencies and tunables of a Manager.
type Config struct {
	FS        afero.Fs
	StorePath string // primary file to snapshot
	Dir       string // backup directory
	Name      string // store name, prefixes every snapshot file
	Throttle  time.Duration
	Retain    int
	Clock     Clock
	Logger    *slog.Logger
}

// Manager creates, rotates and scans timestamped snapshot copies of the
// store file.
type Manager struct {
	fs        afero.Fs
	storePath string
	dir       string
	name      string
	throttle  time.Duration
	retain    int
	clock     Clock
	logger    *slog.Logger

	mu   sync.Mutex
	last time.Time // time of the most recent snapshot
}

// New creates a Manager. Zero-valued tunables select defaults; a negative
// Throttle disables throttling entirely.
func New(cfg Config) *Manager {
	if cfg.FS == nil {
		cfg.FS = afero.NewOsFs()
	}
	if cfg.Throttle == 0 {
		cfg.Throttle = DefaultThrottle
	}
	if cfg.Retain <= 0 {
		cfg.Retain = DefaultRetain
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Manager{
		fs:        cfg.FS,
		storePath: cfg.StorePath,
		dir:       cfg.Dir,
		name:      cfg.Name,
		throttle:  cfg.Throttle,
		retain:    cfg.Retain,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
	}
}

// Create snapshots the current store file into the backup directory under a
// timestamp-suffixed name, then rotates old snapshots. It is a silent no-op
// when the store file does not yet exist, or when the most recent snapshot
// is younger than the throttle interval.
func (m *Manager) Create() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	if m.last.IsZero() {
		// First write since startup: seed the throttle from snapshots left
		// by a previous run.
		if infos, err := m.listLocked(); err == nil && len(infos) > 0 {
			m.last = infos[0].ModTime()
		}
	}
	if m.throttle > 0 && !m.last.IsZero() && now.Sub(m.last) < m.throttle {
		return nil
	}

	data, err := afero.ReadFile(m.fs, m.storePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading store file for backup: %w", err)
	}

	if err := m.fs.MkdirAll(m.dir, 0o700); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}
	path := filepath.Join(m.dir, m.snapshotName(now))
	if err := afero.WriteFile(m.fs, path, data, 0o600); err != nil {
		return fmt.Errorf("writing backup %s: %w", path, err)
	}
	m.last = now

	if err := m.cleanupLocked(); err != nil {
		m.logger.Warn("backup cleanup failed", "dir", m.dir, "error", err)
	}
	return nil
}

// Recover scans snapshots newest-first and returns the first one whose
// content parses as JSON. It returns (nil, nil) when no snapshot is
// readable; the caller then falls back to schema defaults.
func (m *Manager) Recover() (any, error) {
	m.mu.Lock()
	infos, err := m.listLocked()
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		path := filepath.Join(m.dir, info.Name())
		data, err := afero.ReadFile(m.fs, path)
		if err != nil {
			m.logger.Warn("unreadable backup skipped", "path", path, "error", err)
			continue
		}
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			m.logger.Warn("unparseable backup skipped", "path", path, "error", err)
			continue
		}
		m.logger.Info("recovered document from backup", "path", path)
		return v, nil
	}
	return nil, nil
}

// Count reports the number of snapshots and the newest snapshot's time, for
// stats reporting.
func (m *Manager) Count() (int, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	infos, err := m.listLocked()
	if err != nil {
		return 0, time.Time{}, err
	}
	if len(infos) == 0 {
		return 0, time.Time{}, nil
	}
	return len(infos), infos[0].ModTime(), nil
}

// snapshotName builds "<name>-<timestamp>.json" with the ISO timestamp's
// colons and dots replaced by dashes so the name is portable.
func (m *Manager) snapshotName(t time.Time) string {
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return fmt.Sprintf("%s-%s.json", m.name, strings.NewReplacer(":", "-", ".", "-").Replace(iso))
}

// listLocked returns this store's snapshots sorted newest-first by mod time,
// breaking ties by name descending (names embed the timestamp, so this is
// creation order).
func (m *Manager) listLocked() ([]os.FileInfo, error) {
	infos, err := afero.ReadDir(m.fs, m.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing backup directory %s: %w", m.dir, err)
	}
	prefix := m.name + "-"
	var out []os.FileInfo
	for _, info := range infos {
		if info.IsDir() || !strings.HasPrefix(info.Name(), prefix) || !strings.HasSuffix(info.Name(), ".json") {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ModTime().Equal(out[j].ModTime()) {
			return out[i].ModTime().After(out[j].ModTime())
		}
		return out[i].Name() > out[j].Name()
	})
	return out, nil
}

// cleanupLocked deletes every snapshot beyond the retention count.
func (m *Manager) cleanupLocked() error {
	infos, err := m.listLocked()
	if err != nil {
		return err
	}
	var firstErr error
	for _, info := range infos[min(m.retain, len(infos)):] {
		path := filepath.Join(m.dir, info.Name())
		if err := m.fs.Remove(path); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("removing old backup %s: %w", path, err)
		}
	}
	return firstErr
}
