// Package app wires internal/config, internal/db, internal/musicbrainz,
// internal/cover, internal/persistence and internal/scheduler together into
// the two entry points the CLI drives: a one-shot import intake and the
// long-running worker pool that carries every enqueued import through the
// stage graph (internal/pipeline).
package app
