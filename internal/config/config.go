// Package config loads and validates the settings that drive a tempo-importer
// run: where the managed library lives, how files are named, how tags are
// written, how cover art is chosen, how many workers run concurrently, and
// where the task queue's database lives.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/tempo-importer/tempo-importer/internal/logger"
	"github.com/tempo-importer/tempo-importer/internal/tagcodec"
)

// Config holds all configuration settings for a tempo-importer run.
type Config struct {
	// Library holds settings about the managed library tree.
	Library LibraryConfig `mapstructure:"library"`
	// Tasks holds settings about the task scheduler's worker pool.
	Tasks TasksConfig `mapstructure:"tasks"`
	// DB is the Postgres connection URL for the task queue and catalog store.
	DB string `mapstructure:"db"`
	// Downloads is the configured import source directory. It is validated as
	// non-empty; nothing scans it, and imports take their directory as an argument.
	Downloads string `mapstructure:"downloads"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`

	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
}

// LibraryConfig holds settings about the managed library tree: naming
// templates and how tags/art are written.
type LibraryConfig struct {
	// Path is the root directory for the managed tree.
	Path string `mapstructure:"path"`
	// ReleaseName is the `{placeholder}` template for release root folder names.
	ReleaseName string `mapstructure:"release_name"`
	// TrackName is the `{placeholder}` template for track filenames.
	TrackName string `mapstructure:"track_name"`
	// ArtistName is the `{placeholder}` template loaded from library.artist_name;
	// no stage renders it, so no artist folders are named from it.
	ArtistName string `mapstructure:"artist_name"`
	// Tagging holds settings about how tags are written to audio files.
	Tagging TaggingConfig `mapstructure:"tagging"`
	// Art holds settings about cover art selection and rendering.
	Art ArtConfig `mapstructure:"art"`
}

// TaggingConfig holds settings that control how tags are written.
type TaggingConfig struct {
	// Clear, when true, removes all existing frames before writing new ones.
	Clear bool `mapstructure:"clear"`
	// UseOriginalDate is loaded from library.tagging.use_original_date; no stage
	// reads it, so tag writing does not switch between original and reissue dates.
	UseOriginalDate bool `mapstructure:"use_original_date"`
	// ID3Separator joins multi-valued fields in ID3v2 frames.
	ID3Separator string `mapstructure:"id3_separator"`
	// MP4Separator joins multi-valued fields in MP4 atoms.
	MP4Separator string `mapstructure:"mp4_separator"`
	// APESeparator joins multi-valued fields in APEv2 items.
	APESeparator string `mapstructure:"ape_separator"`
}

// ArtConfig holds settings that control cover art selection and rendering.
type ArtConfig struct {
	// ImageName is the `{placeholder}` template for the cover art filename.
	ImageName string `mapstructure:"image_name"`
	// Providers lists cover art providers to query, in priority order.
	Providers []string `mapstructure:"providers"`
	// Width is the rendered cover art width in pixels.
	Width int `mapstructure:"width"`
	// Height is the rendered cover art height in pixels.
	Height int `mapstructure:"height"`
	// Format is the rendered cover art image format ("jpg" or "png").
	Format string `mapstructure:"format"`
	// ProviderRelevance weights a candidate cover's source provider in its rating.
	ProviderRelevance float64 `mapstructure:"provider_relevance"`
	// MatchRelevance weights how closely a candidate cover matches release metadata.
	MatchRelevance float64 `mapstructure:"match_relevance"`
	// SizeRelevance weights a candidate cover's resolution in its rating.
	SizeRelevance float64 `mapstructure:"size_relevance"`
	// CoverArtArchiveUseReleaseGroup, when true, queries the Cover Art Archive by
	// release-group id instead of release id (falling back to release id when unset).
	CoverArtArchiveUseReleaseGroup bool `mapstructure:"cover_art_archive_use_release_group"`
}

// TasksConfig holds settings about the task scheduler's worker pool.
type TasksConfig struct {
	// Workers is the number of concurrent worker goroutines. Must be at least 1.
	Workers int `mapstructure:"workers"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".tempo-importer.yaml"

	// DefaultReleaseNameTemplate is the default template for naming release root folders.
	DefaultReleaseNameTemplate = "{albumArtist}/{releaseYear} - {albumTitle}"

	// DefaultTrackNameTemplate is the default template for naming downloaded track files.
	DefaultTrackNameTemplate = "{trackNumberPad} - {trackTitle}"

	// DefaultArtistNameTemplate is the default template for naming artist folders.
	DefaultArtistNameTemplate = "{albumArtist}"

	// DefaultImageNameTemplate is the default template for naming rendered cover art files.
	DefaultImageNameTemplate = "cover"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyLibraryPath indicates that the library root path is missing.
	ErrEmptyLibraryPath = errors.New("library.path cannot be empty")
	// ErrEmptyDownloadsPath indicates that the downloads directory is missing.
	ErrEmptyDownloadsPath = errors.New("downloads cannot be empty")
	// ErrEmptyDB indicates that the database connection URL is missing.
	ErrEmptyDB = errors.New("db cannot be empty")
	// ErrInvalidWorkers indicates that tasks.workers is not a positive integer.
	ErrInvalidWorkers = errors.New("tasks.workers must be a positive integer")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrEmptyReleaseNameTemplate indicates that library.release_name is missing.
	ErrEmptyReleaseNameTemplate = errors.New("library.release_name cannot be empty")
	// ErrEmptyTrackNameTemplate indicates that library.track_name is missing.
	ErrEmptyTrackNameTemplate = errors.New("library.track_name cannot be empty")
	// ErrInvalidArtFormat indicates that library.art.format names an unsupported image format.
	ErrInvalidArtFormat = errors.New("library.art.format must be \"jpg\" or \"png\"")
	// ErrInvalidArtDimensions indicates that library.art.width or library.art.height is not positive.
	ErrInvalidArtDimensions = errors.New("library.art.width and library.art.height must be positive")
	// ErrNoArtProviders indicates that library.art.providers lists no providers.
	ErrNoArtProviders = errors.New("library.art.providers must list at least one provider")
)

// LoadConfig loads configuration settings from a YAML file.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	viper.SetConfigFile(configFilename)
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Separators returns the configured multi-value join separators, falling
// back to tagcodec's conventional defaults for any field left blank.
func (c *Config) Separators() tagcodec.Separators {
	separators := tagcodec.DefaultSeparators()

	if c.Library.Tagging.ID3Separator != "" {
		separators.ID3 = c.Library.Tagging.ID3Separator
	}

	if c.Library.Tagging.MP4Separator != "" {
		separators.MP4 = c.Library.Tagging.MP4Separator
	}

	if c.Library.Tagging.APESeparator != "" {
		separators.APE = c.Library.Tagging.APESeparator
	}

	return separators
}

// setDefaults registers the default naming templates so a config file may
// omit them entirely.
func setDefaults() {
	viper.SetDefault("library.release_name", DefaultReleaseNameTemplate)
	viper.SetDefault("library.track_name", DefaultTrackNameTemplate)
	viper.SetDefault("library.artist_name", DefaultArtistNameTemplate)
	viper.SetDefault("library.art.image_name", DefaultImageNameTemplate)
	viper.SetDefault("library.art.format", "jpg")
	viper.SetDefault("library.tagging.id3_separator", "\x00")
	viper.SetDefault("library.tagging.mp4_separator", ";")
	viper.SetDefault("library.tagging.ape_separator", ";")
	viper.SetDefault("tasks.workers", 1)
	viper.SetDefault("log_level", "info")
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Library.Path) == "" {
		return ErrEmptyLibraryPath
	}

	if strings.TrimSpace(cfg.Downloads) == "" {
		return ErrEmptyDownloadsPath
	}

	if strings.TrimSpace(cfg.DB) == "" {
		return ErrEmptyDB
	}

	if cfg.Tasks.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if strings.TrimSpace(cfg.Library.ReleaseName) == "" {
		return ErrEmptyReleaseNameTemplate
	}

	if strings.TrimSpace(cfg.Library.TrackName) == "" {
		return ErrEmptyTrackNameTemplate
	}

	if len(cfg.Library.Art.Providers) == 0 {
		return ErrNoArtProviders
	}

	if cfg.Library.Art.Width <= 0 || cfg.Library.Art.Height <= 0 {
		return ErrInvalidArtDimensions
	}

	switch strings.ToLower(cfg.Library.Art.Format) {
	case "jpg", "jpeg", "png":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidArtFormat, cfg.Library.Art.Format)
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	return nil
}
