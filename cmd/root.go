package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tempo-importer/tempo-importer/internal/app"
	"github.com/tempo-importer/tempo-importer/internal/config"
	"github.com/tempo-importer/tempo-importer/internal/logger"
	"github.com/tempo-importer/tempo-importer/internal/version"
)

var (
	// configFilenameFromFlag stores the config filename provided via command-line flag.
	//
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	// appConfig stores the application configuration loaded from file and flags.
	//
	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	// rootCmd is the main Cobra command for the application.
	//
	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "tempo-importer",
		Short: "Import a local audio library into a cataloged, tagged music collection.",
		Long: `tempo-importer ingests a folder of audio files, identifies the release
against MusicBrainz, rewrites tags, relocates files into a templated tree,
fetches cover art, and persists the result to a relational catalog store.

Use "import <directory>" to start a new import job, and "serve" to run the
worker pool that carries every enqueued import through to completion.`,
		PersistentPreRunE: initConfig,
	}

	// importCmd ingests one directory of track files as a new Import job.
	//
	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	importCmd = &cobra.Command{
		Use:   "import <directory>",
		Short: "Start a new import job for a directory of audio files.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecuteImportCommand(cmd.Context(), appConfig, args[0])
		},
	}

	// serveCmd runs the worker pool against the durable task queue.
	//
	//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the worker pool that drains the task queue.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			app.ExecuteServeCommand(cmd.Context(), appConfig)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync() //nolint:errcheck // No need to check the error here, application will exit anyway.
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	version.AttachCobraVersionCommand(rootCmd)

	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmd.PersistentFlags().String("db", "", "Postgres connection URL, overrides the config file's db setting.")

	serveCmd.Flags().Int("workers", 0, "number of concurrent worker goroutines, overrides tasks.workers.")

	rootCmd.AddCommand(importCmd, serveCmd)
}

func initConfig(cmd *cobra.Command, _ []string) error {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err = bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)

	return nil
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("db"); flag != nil && flag.Changed {
		value, err := flags.GetString("db")
		if err != nil {
			return fmt.Errorf("failed to get db value: %w", err)
		}

		cfg.DB = value
	}

	if flag := flags.Lookup("workers"); flag != nil && flag.Changed {
		value, err := flags.GetInt("workers")
		if err != nil {
			return fmt.Errorf("failed to get workers value: %w", err)
		}

		cfg.Tasks.Workers = value
	}

	return config.ValidateConfig(cfg)
}
