package store

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/streylix/docstore/internal/document"
	"github.com/streylix/docstore/internal/lockfile"
	"github.com/streylix/docstore/internal/schema"
)

// Write persists the document as the new full store content. The document is
// schema-repaired, enqueued behind any in-flight writes, and the call blocks
// until its turn completes or fails. Results resolve in enqueue order.
func (s *Store) Write(doc document.Document) error {
	req := &writeRequest{
		doc:    schema.ValidateAndFix(doc),
		result: make(chan error, 1),
	}
	if !s.queue.Enqueue(req) {
		return newError(ErrCodeStoreClosed, "store is closed")
	}
	return <-req.result
}

// Set writes value at a dot-separated key and persists the full document.
// There are no partial-document writes: a single-leaf change still
// round-trips through a complete write cycle.
func (s *Store) Set(key string, value any) error {
	doc, err := s.Read()
	if err != nil {
		return err
	}
	document.Set(doc, key, value)
	return s.Write(doc)
}

// Unset removes the leaf at a dot-separated key and persists the document.
// A key that is already absent is a no-op and does not touch disk.
func (s *Store) Unset(key string) error {
	doc, err := s.Read()
	if err != nil {
		return err
	}
	if !document.Unset(doc, key) {
		return nil
	}
	return s.Write(doc)
}

// Clear resets the store to schema defaults through a full write cycle.
func (s *Store) Clear() error {
	return s.Write(schema.Defaults())
}

// drainLoop consumes the write queue one request at a time. A request's
// effects are fully persisted, or have failed, before the next request is
// considered; its caller is unblocked in between.
func (s *Store) drainLoop() {
	defer close(s.done)
	for {
		req, ok := s.queue.Dequeue()
		if !ok {
			s.logger.Debug("write queue closed, drain loop exiting")
			return
		}
		req.result <- s.commit(req.doc)
	}
}

// commit performs one serialized write: snapshot the previous file, take the
// advisory lock, atomically replace the store file, release, update the
// cache. Backup failures are absorbed; lock and write failures surface to
// the waiting caller with the store file untouched.
func (s *Store) commit(doc document.Document) error {
	if err := s.backups.Create(); err != nil {
		s.logger.Warn("backup skipped",
			"error", wrapError(ErrCodeBackupFailure, "creating backup", err))
	}

	token := uuid.NewString()
	if err := s.lock.Acquire(token); err != nil {
		if errors.Is(err, lockfile.ErrTimeout) {
			return wrapError(ErrCodeLockTimeout, "store file lock not acquired", err)
		}
		return wrapError(ErrCodeWriteFailure, "acquiring store file lock", err)
	}

	werr := s.atomicWrite(doc)

	if rerr := s.lock.Release(token); rerr != nil {
		s.logger.Warn("lock release failed", "error", rerr)
	}
	if werr != nil {
		return werr
	}

	s.mu.Lock()
	s.cache = doc.Clone()
	s.stale = false
	s.mu.Unlock()
	return nil
}

// atomicWrite serializes the document to the temp path and renames it onto
// the primary path. The temp file lives in the same directory as the target
// so the rename stays on one filesystem volume and is atomic: either the new
// content becomes fully visible or the old content is untouched. On failure
// the temp file is removed best-effort.
func (s *Store) atomicWrite(doc document.Document) error {
	data, err := marshalDocument(doc)
	if err != nil {
		return wrapError(ErrCodeWriteFailure, "encoding document", err)
	}

	if err := afero.WriteFile(s.fs, s.tmpPath, data, 0o600); err != nil {
		_ = s.fs.Remove(s.tmpPath)
		return wrapError(ErrCodeWriteFailure, "writing temp file", err)
	}
	if err := s.fs.Rename(s.tmpPath, s.path); err != nil {
		_ = s.fs.Remove(s.tmpPath)
		return wrapError(ErrCodeWriteFailure, "replacing store file", err)
	}
	return nil
}

// marshalDocument is the one serialization of documents to file bytes:
// two-space-indented JSON with sorted keys and a trailing newline. The
// output is deterministic for a given document.
func marshalDocument(doc document.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
