package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tldr-it-stepankutaj/searchkit/internal/app"
	"github.com/tldr-it-stepankutaj/searchkit/internal/engines"
	"github.com/tldr-it-stepankutaj/searchkit/internal/logger"
	"github.com/tldr-it-stepankutaj/searchkit/internal/workspace"
	"github.com/tldr-it-stepankutaj/searchkit/pkg/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "searchkit",
	Short: "Searchkit: build search links for many engines at once",
	Long: `Searchkit builds search URLs for one query across a configurable list of search
engines and writes them into a static HTML report with quick-launch buttons.

Run "searchkit search" to be prompted for search terms, or pass them as arguments.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return readConfigFile()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	// Persistent flags (available to all subcommands).
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./searchkit.yaml or ~/.searchkit/searchkit.yaml)")
	rootCmd.PersistentFlags().String("output-dir", "./search-reports", "Directory the report is written to")
	rootCmd.PersistentFlags().String("engines", "", "Engine registry file (.yaml, .json or .hcl); empty uses the built-in list")
	rootCmd.PersistentFlags().Bool("open", true, "Open the report in the default browser")
	rootCmd.PersistentFlags().Bool("prompt", true, "Prompt for search terms when none are given as arguments")
	rootCmd.PersistentFlags().String("default-terms", "", "Search terms used when the prompt is skipped or left empty")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print one status line per engine")
	rootCmd.PersistentFlags().Bool("include-disabled", true, "List disabled engines (grayed out) in the report")
	rootCmd.PersistentFlags().String("format", "html", "Report format (html|md|json)")
	rootCmd.PersistentFlags().String("title", "", "Report title")
	rootCmd.PersistentFlags().Duration("bulk-open-delay", 400*time.Millisecond, "Delay between tabs opened by the report's bulk buttons")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file (rotated)")

	// Bind flags to Viper.
	bind := map[string]string{
		"output_directory":         "output-dir",
		"engines_file":             "engines",
		"open_in_browser":          "open",
		"prompt_for_search_terms":  "prompt",
		"default_search_terms":     "default-terms",
		"verbose_output":           "verbose",
		"include_disabled_engines": "include-disabled",
		"format":                   "format",
		"title":                    "title",
		"bulk_open_delay":          "bulk-open-delay",
		"log_level":                "log-level",
		"log_file":                 "log-file",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}

	// Env support: SEARCHKIT_OUTPUT_DIRECTORY, SEARCHKIT_OPEN_IN_BROWSER, etc.
	viper.SetEnvPrefix("SEARCHKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Register subcommands.
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(enginesCmd)
	rootCmd.AddCommand(versionCmd)
}

// readConfigFile loads the optional config file. A missing default file is not an error.
func readConfigFile() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("searchkit")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".searchkit"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// loadConfig builds and validates the run configuration.
func loadConfig() (app.Config, error) {
	cfg := app.LoadConfig(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the run logger from the configuration.
func newLogger(cmd *cobra.Command, cfg app.Config) (*logger.Logger, error) {
	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.Level(cfg.LogLevel)
	logCfg.Console = cmd.ErrOrStderr()
	logCfg.OutputPath = cfg.LogFile
	return logger.New(logCfg)
}

// createAppContext prepares the output directory. Call it only once the run has a query.
func createAppContext(cfg app.Config, log *logger.Logger) (app.Context, error) {
	ws, err := workspace.Ensure(cfg.OutputDirectory)
	if err != nil {
		return app.Context{}, err
	}
	return app.Context{
		Config:    cfg,
		Workspace: ws,
		Log:       log,
		Now:       time.Now(),
	}, nil
}

// loadRegistry returns the configured engine registry, logging non-fatal warnings.
func loadRegistry(cfg app.Config, log *logger.Logger) (*engines.Registry, error) {
	var (
		reg *engines.Registry
		err error
	)
	if cfg.EnginesFile != "" {
		reg, err = engines.LoadFile(cfg.EnginesFile)
	} else {
		reg, err = engines.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	for _, w := range reg.Warnings() {
		log.Warn(w)
	}
	log.Debug("engine registry loaded",
		zap.String("source", registrySource(cfg)),
		zap.Int("engines", reg.Len()),
		zap.Int("enabled", reg.EnabledCount()))
	return reg, nil
}

func registrySource(cfg app.Config) string {
	if cfg.EnginesFile == "" {
		return "built-in"
	}
	return cfg.EnginesFile
}

// `init` subcommand to ensure the output directory exists.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the report output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ws, err := workspace.Ensure(cfg.OutputDirectory)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Output directory ready at: %s\n", ws.Root)
		return nil
	},
}

// `version` subcommand.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
