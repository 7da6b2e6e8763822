// Package pipeline implements the staged task handlers (component I) that
// carry one import job from a source folder to a fully cataloged,
// tagged-and-relocated release: fetch, fetch-release, rank-releases,
// fetch-covers, rank-covers, populate, and apply-track, per spec.md §4.9.
// Each handler loads the Import aggregate inside its leased transaction,
// mutates it, and saves it back before the scheduler commits.
package pipeline

import (
	"net/http"

	"github.com/tempo-importer/tempo-importer/internal/config"
	"github.com/tempo-importer/tempo-importer/internal/ranker"
	"github.com/tempo-importer/tempo-importer/internal/scheduler"
	"github.com/tempo-importer/tempo-importer/internal/tagcodec"
)

// Deps bundles every collaborator a stage handler needs. One Deps is built
// at startup and its methods registered against a scheduler.Service; tests
// build a Deps directly, swapping the Store/Queue/Repo/Catalog/Covers
// fields for fakes and mocks instead of a live Postgres pool.
type Deps struct {
	Catalog    CatalogClient
	Covers     CoverClient
	HTTPClient *http.Client
	Repo       Repository
	Store      ImportStore
	Queue      TaskQueue
	Config     *config.Config
}

// NewDeps builds the production Deps, wiring Store and Queue to
// pgx-backed implementations. Callers still set Catalog, Covers, Repo,
// HTTPClient, and Config themselves.
func NewDeps() *Deps {
	return &Deps{
		Store: pgxImportStore{},
		Queue: pgxTaskQueue{},
	}
}

// Register binds every stage handler to its TaskName on svc, per spec.md
// §4.8: "Workers: a pool of N concurrent workers" each draining svc's queue.
func (d *Deps) Register(svc *scheduler.Service) {
	svc.Register(scheduler.TaskFetch, d.Fetch)
	svc.Register(scheduler.TaskFetchRelease, d.FetchRelease)
	svc.Register(scheduler.TaskRankReleases, d.RankReleases)
	svc.Register(scheduler.TaskFetchCovers, d.FetchCovers)
	svc.Register(scheduler.TaskRankCovers, d.RankCovers)
	svc.Register(scheduler.TaskPopulate, d.Populate)
	svc.Register(scheduler.TaskApplyTrack, d.ApplyTrack)
}

// separators returns the configured multi-value join separators, falling
// back to tagcodec's conventional defaults when the config leaves a field blank.
func (d *Deps) separators() tagcodec.Separators {
	return d.Config.Separators()
}

// coverWeights reads §4.6.2's user-configurable cover-rating weights from config.
func (d *Deps) coverWeights() ranker.CoverWeights {
	return ranker.CoverWeights{
		Provider: d.Config.Library.Art.ProviderRelevance,
		Match:    d.Config.Library.Art.MatchRelevance,
		Size:     d.Config.Library.Art.SizeRelevance,
	}
}
