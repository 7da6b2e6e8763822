package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-importer/tempo-importer/internal/constants"
)

func validConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			Path:        "/library",
			ReleaseName: "{albumArtist}/{releaseYear} - {albumTitle}",
			TrackName:   "{trackNumberPad} - {trackTitle}",
			ArtistName:  "{albumArtist}",
			Art: ArtConfig{
				ImageName: "cover",
				Providers: []string{"cover_art_archive"},
				Width:     1000,
				Height:    1000,
				Format:    "jpg",
			},
		},
		Tasks:     TasksConfig{Workers: 4},
		DB:        "postgres://localhost/tempo",
		Downloads: "/downloads",
		LogLevel:  "info",
	}
}

// TestValidateConfig tests the ValidateConfig function.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			mutate:      func(_ *Config) {},
			expectError: false,
		},
		{
			name:        "empty library path",
			mutate:      func(c *Config) { c.Library.Path = "" },
			expectError: true,
			errorMsg:    "library.path cannot be empty",
		},
		{
			name:        "whitespace library path",
			mutate:      func(c *Config) { c.Library.Path = "   " },
			expectError: true,
			errorMsg:    "library.path cannot be empty",
		},
		{
			name:        "empty downloads path",
			mutate:      func(c *Config) { c.Downloads = "" },
			expectError: true,
			errorMsg:    "downloads cannot be empty",
		},
		{
			name:        "empty db",
			mutate:      func(c *Config) { c.DB = "" },
			expectError: true,
			errorMsg:    "db cannot be empty",
		},
		{
			name:        "zero workers",
			mutate:      func(c *Config) { c.Tasks.Workers = 0 },
			expectError: true,
			errorMsg:    "tasks.workers must be a positive integer",
		},
		{
			name:        "negative workers",
			mutate:      func(c *Config) { c.Tasks.Workers = -1 },
			expectError: true,
			errorMsg:    "tasks.workers must be a positive integer",
		},
		{
			name:        "empty release name template",
			mutate:      func(c *Config) { c.Library.ReleaseName = "" },
			expectError: true,
			errorMsg:    "library.release_name cannot be empty",
		},
		{
			name:        "empty track name template",
			mutate:      func(c *Config) { c.Library.TrackName = "" },
			expectError: true,
			errorMsg:    "library.track_name cannot be empty",
		},
		{
			name:        "no art providers",
			mutate:      func(c *Config) { c.Library.Art.Providers = nil },
			expectError: true,
			errorMsg:    "library.art.providers must list at least one provider",
		},
		{
			name:        "zero art width",
			mutate:      func(c *Config) { c.Library.Art.Width = 0 },
			expectError: true,
			errorMsg:    "library.art.width and library.art.height must be positive",
		},
		{
			name:        "zero art height",
			mutate:      func(c *Config) { c.Library.Art.Height = 0 },
			expectError: true,
			errorMsg:    "library.art.width and library.art.height must be positive",
		},
		{
			name:        "invalid art format",
			mutate:      func(c *Config) { c.Library.Art.Format = "webp" },
			expectError: true,
			errorMsg:    "library.art.format must be",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			expectError: true,
			errorMsg:    "unknown log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestLoadConfig tests the LoadConfig function.
func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		configFilename string
		configContent  string
		expectError    bool
		expectedError  string
	}{
		{
			name:           "valid config file",
			configFilename: "valid_config.yaml",
			configContent: `
library:
  path: "/library"
  release_name: "{albumArtist}/{releaseYear} - {albumTitle}"
  track_name: "{trackNumberPad} - {trackTitle}"
  art:
    providers: ["cover_art_archive"]
    width: 1000
    height: 1000
tasks:
  workers: 4
db: "postgres://localhost/tempo"
downloads: "/downloads"
log_level: "info"
`,
			expectError: false,
		},
		{
			name:           "non-existent file",
			configFilename: "non_existent.yaml",
			expectError:    true,
			expectedError:  "failed to read config from file",
		},
		{
			name:           "invalid yaml",
			configFilename: "invalid.yaml",
			configContent: `
invalid: yaml: content: [unclosed
`,
			expectError:   true,
			expectedError: "failed to read config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tempDir := t.TempDir()

			var configPath string

			switch {
			case tt.configContent != "":
				configPath = filepath.Join(tempDir, tt.configFilename)
				err := os.WriteFile(configPath, []byte(tt.configContent), constants.DefaultFilePermissions)
				require.NoError(t, err)
			default:
				configPath = filepath.Join(tempDir, tt.configFilename)
			}

			cfg, err := LoadConfig(configPath)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, "/library", cfg.Library.Path)
			assert.Equal(t, 4, cfg.Tasks.Workers)
			assert.Equal(t, "postgres://localhost/tempo", cfg.DB)
			assert.Equal(t, DefaultTrackNameTemplate, cfg.Library.TrackName)
		})
	}
}

// TestDefaultConstants tests the default naming template constants.
func TestDefaultConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{albumArtist}/{releaseYear} - {albumTitle}", DefaultReleaseNameTemplate)
	assert.Equal(t, "{trackNumberPad} - {trackTitle}", DefaultTrackNameTemplate)
	assert.Equal(t, "{albumArtist}", DefaultArtistNameTemplate)
	assert.Equal(t, "cover", DefaultImageNameTemplate)
}
