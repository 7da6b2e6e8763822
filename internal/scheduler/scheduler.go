// Package scheduler implements the durable task queue (component H): a
// Postgres-backed FIFO of typed, dependency-ordered tasks leased by a pool
// of concurrent workers. The original backs its queue with the `taskie`
// crate over the same database the rest of the app uses; no Go equivalent
// exists in the corpus, so the queue is modeled directly on
// github.com/jackc/pgx/v5 with SELECT ... FOR UPDATE SKIP LOCKED leasing.
package scheduler

import (
	"encoding/json"
	"time"
)

// TaskName is the closed enumeration of pipeline stages (§4.9) a task may name.
type TaskName string

// The closed set of recognized task names.
const (
	TaskFetch        TaskName = "fetch"
	TaskFetchRelease TaskName = "fetch-release"
	TaskRankReleases TaskName = "rank-releases"
	TaskFetchCovers  TaskName = "fetch-covers"
	TaskRankCovers   TaskName = "rank-covers"
	TaskPopulate     TaskName = "populate"
	TaskApplyTrack   TaskName = "apply-track"
)

// DefaultLeaseDuration is how long a leased task is hidden from other
// workers before it becomes eligible for re-lease, absent a crash or a
// commit. Handlers that run longer than this risk a duplicate lease; per
// spec.md §4.8, long blocking work should be split into smaller tasks via
// DependsOn rather than raising this value.
const DefaultLeaseDuration = 5 * time.Minute

// Task is one row of the durable queue.
type Task struct {
	ID         int64
	Name       TaskName
	Payload    json.RawMessage
	DependsOn  []int64
	Duration   time.Duration
	EnqueuedAt time.Time
	StartedAt  *time.Time
	EndedAt    *time.Time
}

// Done reports whether the task has already run to completion.
func (t Task) Done() bool {
	return t.EndedAt != nil
}

// DecodePayload unmarshals the task's JSON payload into dst.
func (t Task) DecodePayload(dst any) error {
	return json.Unmarshal(t.Payload, dst)
}
