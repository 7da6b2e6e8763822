package app

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tempo-importer/tempo-importer/internal/config"
	"github.com/tempo-importer/tempo-importer/internal/cover"
	"github.com/tempo-importer/tempo-importer/internal/musicbrainz"
	"github.com/tempo-importer/tempo-importer/internal/persistence"
	"github.com/tempo-importer/tempo-importer/internal/pipeline"
	"github.com/tempo-importer/tempo-importer/internal/scheduler"
	transporthttp "github.com/tempo-importer/tempo-importer/internal/transport/http"
	"github.com/tempo-importer/tempo-importer/internal/utils"
	"github.com/tempo-importer/tempo-importer/internal/version"
)

// buildHTTPClient wraps the default transport with the same
// logging/user-agent decorators the teacher's client package applies to
// every outbound request.
func buildHTTPClient() *http.Client {
	userAgentProvider := utils.NewSimpleUserAgentProvider(transporthttp.DefaultUserAgent + " " + version.Short())

	transport := transporthttp.NewUserAgentInjector(http.DefaultTransport, userAgentProvider)
	transport = transporthttp.NewLogTransport(transport, transporthttp.DefaultMaxLogLength)

	return &http.Client{
		Timeout:   transporthttp.DefaultTimeout,
		Transport: transport,
	}
}

// buildDeps assembles the stage handlers' collaborators from cfg, per
// spec.md §6's external interfaces.
func buildDeps(cfg *config.Config) *pipeline.Deps {
	httpClient := buildHTTPClient()

	deps := pipeline.NewDeps()
	deps.Catalog = musicbrainz.NewClient(musicbrainz.DefaultBaseURL, httpClient)
	deps.Covers = cover.NewClient(httpClient, cfg.Library.Art.CoverArtArchiveUseReleaseGroup)
	deps.HTTPClient = httpClient
	deps.Repo = persistence.Repository{}
	deps.Config = cfg

	return deps
}

// buildScheduler registers every stage handler against a new worker pool
// service sized from cfg.Tasks.Workers, per spec.md §4.8.
func buildScheduler(pool *pgxpool.Pool, cfg *config.Config) *scheduler.Service {
	deps := buildDeps(cfg)

	svc := scheduler.NewService(pool, cfg.Tasks.Workers)
	deps.Register(svc)

	return svc
}
