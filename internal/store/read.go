package store

import (
	"encoding/json"
	"errors"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/streylix/docstore/internal/document"
	"github.com/streylix/docstore/internal/schema"
)

// Read returns the current document. Cache hits return immediately without
// touching disk; misses load the file, run schema repair, and populate the
// cache. A missing file yields schema defaults, and an unparseable one falls
// back to backup recovery and then defaults, so Read only fails on an I/O
// error that recovery cannot absorb.
func (s *Store) Read() (document.Document, error) {
	s.mu.Lock()
	if s.cache != nil && !s.stale {
		doc := s.cache.Clone()
		s.mu.Unlock()
		return doc, nil
	}
	s.mu.Unlock()

	doc := s.load()

	s.mu.Lock()
	s.cache = doc.Clone()
	s.stale = false
	s.mu.Unlock()
	return doc, nil
}

// load reads and repairs the document from disk, walking the recovery
// ladder: primary file, then backups, then schema defaults.
func (s *Store) load() document.Document {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return schema.Defaults()
	}

	if err == nil {
		var raw any
		uerr := json.Unmarshal(data, &raw)
		if uerr == nil {
			return schema.ValidateAndFix(raw)
		}
		s.logger.Warn("store file unparseable, attempting backup recovery",
			"path", s.path, "error", uerr)
	} else {
		s.logger.Warn("store file unreadable, attempting backup recovery",
			"path", s.path, "error", err)
	}

	recovered, rerr := s.backups.Recover()
	if rerr != nil {
		s.logger.Warn("backup recovery failed", "error", rerr)
	}
	if recovered != nil {
		return schema.ValidateAndFix(recovered)
	}

	s.logger.Warn("no readable backup, falling back to schema defaults", "path", s.path)
	return schema.Defaults()
}

// Get reads the value at a dot-separated key, returning def when any path
// segment is missing.
func (s *Store) Get(key string, def any) (any, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	v, ok := document.Get(doc, key)
	if !ok {
		return def, nil
	}
	return v, nil
}

// GetAll returns the full document, same as Read.
func (s *Store) GetAll() (document.Document, error) {
	return s.Read()
}
