package store

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/streylix/docstore/internal/backup"
	"github.com/streylix/docstore/internal/config"
	"github.com/streylix/docstore/internal/document"
	"github.com/streylix/docstore/internal/lockfile"
)

// Store is the façade over the persisted document: it owns the in-memory
// cache, performs atomic writes, and delegates locking, backup and repair.
// Construct one per store path at startup and pass it by reference; all
// methods are safe for concurrent use within the process.
type Store struct {
	fs      afero.Fs
	path    string // primary file, <dir>/<name>.json
	tmpPath string // <path>.tmp, same directory so the rename stays on one volume
	opts    config.Options
	lock    *lockfile.Manager
	backups *backup.Manager
	queue   *writeQueue
	logger  *slog.Logger

	mu    sync.Mutex
	cache document.Document
	stale bool // next Read must go to disk

	done      chan struct{}
	closeOnce sync.Once
}

// Option customizes dependencies of a Store, mainly for tests.
type Option func(*storeDeps)

type storeDeps struct {
	fs     afero.Fs
	clock  backup.Clock
	logger *slog.Logger
}

// WithFS substitutes the filesystem all store, lock and backup I/O goes
// through. Defaults to the OS filesystem.
func WithFS(fs afero.Fs) Option {
	return func(d *storeDeps) { d.fs = fs }
}

// WithClock substitutes the clock driving the backup throttle.
func WithClock(c backup.Clock) Option {
	return func(d *storeDeps) { d.clock = c }
}

// WithLogger substitutes the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *storeDeps) { d.logger = l }
}

// Open creates a Store for the configured path and starts its write drain
// loop. The data directory is created if needed; the primary file is not
// touched until the first write.
func Open(opts config.Options, options ...Option) (*Store, error) {
	opts = opts.WithDefaults()

	deps := &storeDeps{}
	for _, o := range options {
		o(deps)
	}
	if deps.fs == nil {
		deps.fs = afero.NewOsFs()
	}
	if deps.logger == nil {
		deps.logger = slog.Default()
	}

	if err := deps.fs.MkdirAll(opts.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", opts.Dir, err)
	}

	path := filepath.Join(opts.Dir, opts.Name+".json")
	s := &Store{
		fs:      deps.fs,
		path:    path,
		tmpPath: path + ".tmp",
		opts:    opts,
		logger:  deps.logger,
		queue:   newWriteQueue(),
		done:    make(chan struct{}),
	}
	s.lock = lockfile.New(deps.fs, path+".lock",
		time.Duration(opts.LockTimeout), time.Duration(opts.LockRetry))
	s.backups = backup.New(backup.Config{
		FS:        deps.fs,
		StorePath: path,
		Dir:       opts.BackupDir,
		Name:      opts.Name,
		Throttle:  time.Duration(opts.BackupThrottle),
		Retain:    opts.BackupRetain,
		Clock:     deps.clock,
		Logger:    deps.logger,
	})

	go s.drainLoop()

	s.logger.Debug("store opened", "path", path)
	return s, nil
}

// Path returns the primary file path.
func (s *Store) Path() string { return s.path }

// Reload discards the cached document so the next Read goes to disk. Needed
// when another process sharing the store path may have written since the
// cache was populated.
func (s *Store) Reload() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// Close stops accepting writes, drains the requests already enqueued, and
// waits for the drain loop to exit. Safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.queue.Close()
	})
	<-s.done
	return nil
}
