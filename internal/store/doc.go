// Package store provides an atomic, schema-validating, crash-safe key/value
// document store backed by a single JSON file on local disk.
//
// # Critical Patterns
//
// Atomic commit:
//   - Every write serializes the full document to <name>.json.tmp in the
//     same directory as the target, then renames it onto <name>.json.
//   - The rename is the only mutation point. It either fully succeeds or
//     fully fails; a partially written file is never visible.
//
// Serialized writes:
//   - Concurrent Write/Set/Clear calls are enqueued on an in-process FIFO
//     queue and drained by a single goroutine, so write N is fully persisted
//     (or has failed) before write N+1 begins, and results resolve in
//     enqueue order.
//
// Cross-process exclusion:
//   - The drain loop holds an advisory lock file (<name>.json.lock) around
//     the rename. The lock's create-only semantics are the sole coordination
//     between independently launched processes; there is no cross-process
//     cache coherency. Callers needing freshness across processes must call
//     Reload before Read.
//
// Self-healing reads:
//   - A missing primary file yields schema defaults (first run is not a
//     failure). An unparseable primary triggers a newest-first scan of the
//     backup directory; if no backup parses either, defaults are returned.
//     Every document returned by Read has passed schema repair.
package store
