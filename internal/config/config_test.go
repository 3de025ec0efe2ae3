package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	opts := Default()

	assert.Equal(t, "store", opts.Name)
	assert.Equal(t, ".", opts.Dir)
	assert.Equal(t, 5*time.Minute, time.Duration(opts.BackupThrottle))
	assert.Equal(t, 10, opts.BackupRetain)
	assert.Equal(t, 15*time.Second, time.Duration(opts.LockTimeout))
	assert.Equal(t, 10*time.Millisecond, time.Duration(opts.LockRetry))
}

func TestWithDefaults_FillsZeroFields(t *testing.T) {
	opts := Options{Dir: "/data"}.WithDefaults()

	assert.Equal(t, "store", opts.Name)
	assert.Equal(t, "/data", opts.Dir)
	assert.Equal(t, filepath.Join("/data", "backups"), opts.BackupDir)
	assert.Equal(t, 10, opts.BackupRetain)
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	opts := Options{
		Name:           "terminal-gui",
		Dir:            "/data",
		BackupDir:      "/elsewhere",
		BackupThrottle: Duration(time.Minute),
		BackupRetain:   3,
		LockTimeout:    Duration(time.Second),
		LockRetry:      Duration(time.Millisecond),
	}.WithDefaults()

	assert.Equal(t, "terminal-gui", opts.Name)
	assert.Equal(t, "/elsewhere", opts.BackupDir)
	assert.Equal(t, Duration(time.Minute), opts.BackupThrottle)
	assert.Equal(t, 3, opts.BackupRetain)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
name: terminal-gui
dir: /var/lib/app
backup_throttle: 90s
lock_timeout: 5s
lock_retry: 25ms
`)

	opts, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "terminal-gui", opts.Name)
	assert.Equal(t, "/var/lib/app", opts.Dir)
	assert.Equal(t, filepath.Join("/var/lib/app", "backups"), opts.BackupDir)
	assert.Equal(t, 90*time.Second, time.Duration(opts.BackupThrottle))
	assert.Equal(t, 5*time.Second, time.Duration(opts.LockTimeout))
	assert.Equal(t, 25*time.Millisecond, time.Duration(opts.LockRetry))
	// Unset fields keep their defaults.
	assert.Equal(t, 10, opts.BackupRetain)
}

func TestLoad_EmptyFile(t *testing.T) {
	opts, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default().WithDefaults(), opts)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	_, err := Load(writeConfig(t, "shard_count: 4\n"))
	require.Error(t, err)
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, "lock_timeout: fifteen\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
