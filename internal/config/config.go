// Package config holds the store's tunables and loads them from YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/streylix/docstore/internal/backup"
	"github.com/streylix/docstore/internal/lockfile"
)

// DefaultName is the store name used when none is configured. It becomes the
// basename of the primary file (<name>.json).
const DefaultName = "store"

// Duration wraps time.Duration with YAML support for values like "5m" or
// "10ms".
type Duration time.Duration

// UnmarshalYAML decodes a duration string.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML encodes the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Options configures a store instance. The zero value of any field selects
// its default; see Default.
type Options struct {
	// Name is the store name: the primary file is <Name>.json and backups
	// are prefixed with it.
	Name string `yaml:"name"`
	// Dir is the data directory holding the primary, temp and lock files.
	Dir string `yaml:"dir"`
	// BackupDir is the snapshot directory; defaults to Dir/backups.
	BackupDir string `yaml:"backup_dir"`
	// BackupThrottle is the minimum interval between snapshots. Negative
	// disables throttling.
	BackupThrottle Duration `yaml:"backup_throttle"`
	// BackupRetain is how many snapshots to keep.
	BackupRetain int `yaml:"backup_retain"`
	// LockTimeout bounds a single lock acquisition attempt.
	LockTimeout Duration `yaml:"lock_timeout"`
	// LockRetry is the fixed sleep between lock acquisition attempts.
	LockRetry Duration `yaml:"lock_retry"`
}

// Default returns the options used in the absence of any configuration.
func Default() Options {
	return Options{
		Name:           DefaultName,
		Dir:            ".",
		BackupThrottle: Duration(backup.DefaultThrottle),
		BackupRetain:   backup.DefaultRetain,
		LockTimeout:    Duration(lockfile.DefaultTimeout),
		LockRetry:      Duration(lockfile.DefaultRetryInterval),
	}
}

// WithDefaults fills any zero-valued field from Default. BackupDir derives
// from the (possibly defaulted) Dir.
func (o Options) WithDefaults() Options {
	def := Default()
	if o.Name == "" {
		o.Name = def.Name
	}
	if o.Dir == "" {
		o.Dir = def.Dir
	}
	if o.BackupDir == "" {
		o.BackupDir = filepath.Join(o.Dir, "backups")
	}
	if o.BackupThrottle == 0 {
		o.BackupThrottle = def.BackupThrottle
	}
	if o.BackupRetain == 0 {
		o.BackupRetain = def.BackupRetain
	}
	if o.LockTimeout == 0 {
		o.LockTimeout = def.LockTimeout
	}
	if o.LockRetry == 0 {
		o.LockRetry = def.LockRetry
	}
	return o
}

// Load reads options from a YAML file. Unknown keys are rejected. Fields not
// present in the file keep their defaults.
func Load(path string) (Options, error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	opts := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return opts.WithDefaults(), nil
}
