package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/otherdev/site/internal/app"
	"github.com/otherdev/site/internal/config"
	"github.com/otherdev/site/internal/logging"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// env is the per-invocation state shared by the subcommands.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	injector do.Injector
}

var (
	state *env

	// newFs is swapped for a MemMapFs in tests.
	newFs = afero.NewOsFs

	flagIconsDir     string
	flagOutputDir    string
	flagDataDir      string
	flagDataFormat   string
	flagMetadataFile string
)

var rootCmd = &cobra.Command{
	Use:   "sitebuild",
	Short: "Build the icon assets and global data of the Other Dev site",
	Long: `sitebuild renders Tabler icons into the cursor files and global data
consumed by the static site generator.

Configuration is read from the environment (and an optional .env file);
the directory flags below override it.

Use "sitebuild [command] --help" for more information about a command.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagIconsDir, "icons-dir", "", "directory holding the source SVG icons")
	flags.StringVar(&flagOutputDir, "output-dir", "", "directory the cursor files are written to")
	flags.StringVar(&flagDataDir, "data-dir", "", "directory the global data files are written to")
	flags.StringVar(&flagDataFormat, "data-format", "", "global data format: json or yaml")
	flags.StringVar(&flagMetadataFile, "metadata-file", "", "YAML or TOML file overriding the site metadata")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel)
	state = &env{
		cfg:      cfg,
		logger:   logger,
		injector: app.NewInjector(cfg, newFs(), logger),
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("icons-dir") {
		cfg.IconsDir = flagIconsDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = flagOutputDir
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = flagDataDir
	}
	if flags.Changed("data-format") {
		cfg.DataFormat = flagDataFormat
	}
	if flags.Changed("metadata-file") {
		cfg.MetadataFile = flagMetadataFile
	}
}
