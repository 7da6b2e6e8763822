package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrNoEligibleTask is returned by Lease when no task is currently runnable
// (either the queue is empty, every remaining task is still leased, or every
// remaining task has unfinished dependencies).
var ErrNoEligibleTask = errors.New("scheduler: no eligible task")

// Enqueue inserts a new task row. dependsOn may be nil or empty: a task with
// no dependencies is eligible as soon as it's enqueued. duration is the
// lease window handed to Lease; callers typically pass DefaultLeaseDuration.
func Enqueue(
	ctx context.Context,
	tx pgx.Tx,
	name TaskName,
	payload any,
	dependsOn []int64,
	duration time.Duration,
) (int64, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	var id int64

	err = tx.QueryRow(ctx, `
		INSERT INTO tasks (name, payload, depends_on, duration_seconds, enqueued_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id`,
		name, encoded, dependsOn, int64(duration.Seconds()),
	).Scan(&id)

	return id, err
}

// Lease selects one eligible task — not yet ended, not currently leased, and
// with every dependency already ended — locks it with FOR UPDATE SKIP
// LOCKED so concurrent workers never double-lease it, marks it leased, and
// returns it. ErrNoEligibleTask means the caller should back off and retry.
func Lease(ctx context.Context, tx pgx.Tx) (Task, error) {
	row := tx.QueryRow(ctx, `
		SELECT id, name, payload, depends_on, duration_seconds, enqueued_at, started_at, ended_at
		FROM tasks t
		WHERE t.ended_at IS NULL
		  AND (t.leased_until IS NULL OR t.leased_until < now())
		  AND NOT EXISTS (
		      SELECT 1 FROM tasks d
		      WHERE d.id = ANY(t.depends_on) AND d.ended_at IS NULL
		  )
		ORDER BY t.enqueued_at
		LIMIT 1
		FOR UPDATE SKIP LOCKED`)

	var (
		task            Task
		durationSeconds int64
	)

	err := row.Scan(
		&task.ID, &task.Name, &task.Payload, &task.DependsOn,
		&durationSeconds, &task.EnqueuedAt, &task.StartedAt, &task.EndedAt,
	)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return Task{}, ErrNoEligibleTask
	case err != nil:
		return Task{}, err
	}

	task.Duration = time.Duration(durationSeconds) * time.Second

	_, err = tx.Exec(ctx, `
		UPDATE tasks
		SET leased_until = now() + ($2 * interval '1 second'),
		    started_at = COALESCE(started_at, now())
		WHERE id = $1`, task.ID, durationSeconds)
	if err != nil {
		return Task{}, err
	}

	return task, nil
}

// Complete marks a task ended. Per spec.md §4.8, the caller is responsible
// for committing the surrounding transaction; a rollback after a handler
// error leaves the task untouched for Lease to pick up again once its lease
// expires.
func Complete(ctx context.Context, tx pgx.Tx, id int64) error {
	_, err := tx.Exec(ctx, `UPDATE tasks SET ended_at = now() WHERE id = $1`, id)
	return err
}
