package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tempo-importer/tempo-importer/internal/scheduler"
)

// EnqueueFetch schedules the `fetch` task that starts importID's stage
// graph, per spec.md §4.9. The CLI's import intake calls this once, right
// after importstate.Begin, inside the same transaction.
func EnqueueFetch(ctx context.Context, tx pgx.Tx, importID uuid.UUID) (int64, error) {
	return scheduler.Enqueue(ctx, tx, scheduler.TaskFetch,
		importPayload{ImportID: importID}, nil, scheduler.DefaultLeaseDuration)
}

// Fetch implements the `fetch` stage, per spec.md §4.9: search the catalog
// for the source release, then fan out one fetch-release task per candidate,
// followed by the rank-releases / fetch-covers / rank-covers chain, each
// depending on this task plus whatever stage feeds it.
func (d *Deps) Fetch(ctx context.Context, tx pgx.Tx, task scheduler.Task) error {
	var payload importPayload
	if err := task.DecodePayload(&payload); err != nil {
		return err
	}

	imp, err := d.Store.Load(ctx, tx, payload.ImportID)
	if err != nil {
		return err
	}

	candidates, err := d.Catalog.Search(ctx, imp.SourceRelease)
	if err != nil {
		return err
	}

	fetchReleaseIDs := make([]int64, 0, len(candidates))

	for _, candidate := range candidates {
		id, err := d.Queue.Enqueue(ctx, tx, scheduler.TaskFetchRelease,
			fetchReleasePayload{ImportID: imp.ID, ReleaseID: candidate.ID},
			[]int64{task.ID}, scheduler.DefaultLeaseDuration)
		if err != nil {
			return err
		}

		fetchReleaseIDs = append(fetchReleaseIDs, id)
	}

	rankReleasesID, err := d.Queue.Enqueue(ctx, tx, scheduler.TaskRankReleases,
		importPayload{ImportID: imp.ID},
		append([]int64{task.ID}, fetchReleaseIDs...), scheduler.DefaultLeaseDuration)
	if err != nil {
		return err
	}

	fetchCoversID, err := d.Queue.Enqueue(ctx, tx, scheduler.TaskFetchCovers,
		importPayload{ImportID: imp.ID},
		[]int64{task.ID, rankReleasesID}, scheduler.DefaultLeaseDuration)
	if err != nil {
		return err
	}

	_, err = d.Queue.Enqueue(ctx, tx, scheduler.TaskRankCovers,
		importPayload{ImportID: imp.ID},
		[]int64{task.ID, fetchCoversID}, scheduler.DefaultLeaseDuration)

	return err
}
