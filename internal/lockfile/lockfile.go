// Package lockfile provides filesystem-visible mutual exclusion for the
// critical section that replaces the store file on disk.
//
// The lock is advisory: a dedicated lock file is created with
// O_CREATE|O_EXCL, which fails if the file already exists. That create-only
// primitive is the core exclusivity mechanism, chosen over an in-memory mutex
// because the lock must also be effective across independently launched
// processes sharing the same store path.
package lockfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/afero"
)

// ErrTimeout is returned by Acquire when the lock cannot be obtained within
// the configured bound. The write attempt is aborted with no file mutation.
var ErrTimeout = errors.New("lock acquisition timed out")

const (
	// DefaultTimeout bounds the total time Acquire spins before giving up.
	DefaultTimeout = 15 * time.Second
	// DefaultRetryInterval is the fixed sleep between acquisition attempts.
	DefaultRetryInterval = 10 * time.Millisecond
)

// Manager acquires and releases the advisory lock at a fixed path.
// It is safe for concurrent use; exclusivity is enforced by the filesystem,
// not by the Manager itself.
type Manager struct {
	fs      afero.Fs
	path    string
	timeout time.Duration
	retry   time.Duration
}

// New creates a Manager for the lock file at path. A zero timeout or retry
// interval selects the default.
func New(filesystem afero.Fs, path string, timeout, retry time.Duration) *Manager {
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if retry <= 0 {
		retry = DefaultRetryInterval
	}
	return &Manager{fs: filesystem, path: path, timeout: timeout, retry: retry}
}

// Acquire creates the lock file exclusively and writes the holder's token
// into it. If the file already exists it sleeps the retry interval and tries
// again, failing with ErrTimeout once the cumulative wait exceeds the bound.
func (m *Manager) Acquire(token string) error {
	deadline := time.Now().Add(m.timeout)
	for {
		f, err := m.fs.OpenFile(m.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			_, werr := f.Write([]byte(token))
			cerr := f.Close()
			if werr != nil || cerr != nil {
				// Half-written token: remove the file so the lock is not
				// wedged with content no holder can match on release.
				_ = m.fs.Remove(m.path)
				if werr != nil {
					return fmt.Errorf("writing lock token: %w", werr)
				}
				return fmt.Errorf("closing lock file: %w", cerr)
			}
			return nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("creating lock file %s: %w", m.path, err)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("lock file %s still held after %s: %w", m.path, m.timeout, ErrTimeout)
		}
		time.Sleep(m.retry)
	}
}

// Release deletes the lock file, but only if its content matches token. A
// mismatch means a different holder acquired the lock after a stale delete
// and is left alone. A missing lock file is treated as already released.
func (m *Manager) Release(token string) error {
	data, err := afero.ReadFile(m.fs, m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading lock file %s: %w", m.path, err)
	}
	if string(data) != token {
		return nil
	}
	if err := m.fs.Remove(m.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing lock file %s: %w", m.path, err)
	}
	return nil
}
