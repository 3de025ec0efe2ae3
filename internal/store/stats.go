package store

import (
	"errors"
	"io/fs"
	"time"

	"github.com/google/uuid"

	"github.com/streylix/docstore/internal/document"
)

// healthCheckKey is the throwaway leaf used by the Stats health probe.
const healthCheckKey = "appState.healthCheck"

// Stats reports the observable state of the store.
type Stats struct {
	Path           string    `json:"path"`
	SizeBytes      int64     `json:"size_bytes"`
	ModTime        time.Time `json:"mod_time"`
	Messages       int       `json:"messages"`
	MessageHistory int       `json:"message_history"`
	Backups        int       `json:"backups"`
	LastBackup     time.Time `json:"last_backup"`
	Healthy        bool      `json:"healthy"`
}

// GetStats reports file size, modified time, message counts, backup counts,
// and a live health check that performs a set/get/unset cycle to confirm
// end-to-end read-write integrity.
func (s *Store) GetStats() (Stats, error) {
	doc, err := s.Read()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Path:           s.path,
		Messages:       sectionLen(doc, document.SectionMessages),
		MessageHistory: sectionLen(doc, document.SectionMessageHistory),
	}

	if info, err := s.fs.Stat(s.path); err == nil {
		stats.SizeBytes = info.Size()
		stats.ModTime = info.ModTime()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Stats{}, err
	}

	if count, last, err := s.backups.Count(); err == nil {
		stats.Backups = count
		stats.LastBackup = last
	} else {
		s.logger.Warn("backup count unavailable", "error", err)
	}

	stats.Healthy = s.healthCheck()
	return stats, nil
}

// healthCheck writes a probe value, reads it back, and removes it. Any
// failure or mismatch along the way reports the store unhealthy.
func (s *Store) healthCheck() bool {
	probe := uuid.NewString()
	if err := s.Set(healthCheckKey, probe); err != nil {
		s.logger.Warn("health check write failed", "error", err)
		return false
	}
	v, err := s.Get(healthCheckKey, nil)
	if err != nil || v != probe {
		s.logger.Warn("health check readback mismatch", "error", err)
		return false
	}
	if err := s.Unset(healthCheckKey); err != nil {
		s.logger.Warn("health check cleanup failed", "error", err)
		return false
	}
	return true
}

// sectionLen returns the length of a sequence-typed section.
func sectionLen(doc document.Document, section string) int {
	if seq, ok := doc[section].([]any); ok {
		return len(seq)
	}
	return 0
}
