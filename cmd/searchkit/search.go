package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tldr-it-stepankutaj/searchkit/internal/app"
	"github.com/tldr-it-stepankutaj/searchkit/internal/browser"
	"github.com/tldr-it-stepankutaj/searchkit/internal/console"
	"github.com/tldr-it-stepankutaj/searchkit/internal/engines"
	"github.com/tldr-it-stepankutaj/searchkit/internal/logger"
	"github.com/tldr-it-stepankutaj/searchkit/internal/reports"
	"github.com/tldr-it-stepankutaj/searchkit/internal/search"
	"github.com/tldr-it-stepankutaj/searchkit/internal/tui"
	"github.com/tldr-it-stepankutaj/searchkit/pkg/version"
)

// `search` subcommand: build URLs for every engine and write the report.
var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Build search links for all engines and generate a report",
	Long: `Build one search URL per configured engine for the given terms and write a report
with a card per engine plus "open top N" buttons.

Terms given as arguments skip the prompt. Without arguments the user is prompted
(unless --prompt=false), and --default-terms fills in an empty answer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		reg, err := loadRegistry(cfg, log)
		if err != nil {
			return err
		}

		out := console.New(cmd.OutOrStdout())
		out.Banner(version.Version)

		query, err := resolveQuery(cmd, cfg, args)
		if err != nil {
			return err
		}

		actx, err := createAppContext(cfg, log)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		path, err := runSearch(actx, reg, query, output, out)
		if err != nil {
			return err
		}

		if cfg.OpenInBrowser && cfg.Format == "html" {
			openReport(actx, path, out)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringP("output", "o", "", "Output file path (default: <output-dir>/search-<timestamp>.<format>)")
}

// resolveQuery joins positional terms, or falls back to the prompt and default terms.
func resolveQuery(cmd *cobra.Command, cfg app.Config, args []string) (string, error) {
	if q := search.NormalizeQuery(strings.Join(args, " ")); q != "" {
		return q, nil
	}

	q, err := tui.ObtainQuery(tui.PromptConfig{
		Prompt:      cfg.PromptForSearchTerms,
		Interactive: isTerminal(cmd.InOrStdin()),
		Default:     cfg.DefaultSearchTerms,
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
	})
	if errors.Is(err, tui.ErrNoQuery) {
		return "", fmt.Errorf("%w: pass terms as arguments or set --default-terms", err)
	}
	return q, err
}

// runSearch builds every engine URL for query and exports the report.
// It returns the written report path.
func runSearch(actx app.Context, reg *engines.Registry, query, output string, out *console.Printer) (string, error) {
	cfg := actx.Config
	out.Query(query, reg)

	opts := search.Options{IncludeDisabled: cfg.IncludeDisabledEngines}
	if cfg.VerboseOutput {
		opts.OnResult = out.Engine
	}
	outcome := search.Run(reg, query, opts)
	for _, f := range outcome.Failures {
		actx.Log.Warn("engine skipped", zap.String("engine", f.Engine), zap.Error(f.Err))
	}

	report := reports.NewCollector(reports.CollectOptions{
		Title:         cfg.Title,
		Format:        cfg.Format,
		BulkOpenDelay: cfg.BulkOpenDelay,
		GeneratedAt:   actx.Now,
	}).Collect(outcome)

	path := output
	if path == "" {
		path = actx.Workspace.ReportPath(actx.Now, reports.Extension(cfg.Format))
	}
	if err := report.Export(cfg.Format, path); err != nil {
		return "", err
	}

	actx.Log.Info("report written",
		zap.String("run_id", report.Metadata.RunID),
		zap.String("path", path),
		zap.Int("results", len(report.Results)),
		zap.Int("failed", outcome.Stats.Failed))
	out.Summary(outcome, path)
	return path, nil
}

// openReport hands the report to the default browser. Failures are warnings only.
func openReport(actx app.Context, path string, out *console.Printer) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if err := browser.Open(abs); err != nil {
		actx.Log.Warn("could not open report", zap.String("path", abs), zap.Error(err))
		out.Warn(fmt.Sprintf("Could not open the report automatically: %v", err))
	}
}

func isTerminal(r interface{}) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// `engines` subcommand group: inspect and manage the engine registry.
var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "Inspect and manage the search engine registry",
}

var enginesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured engines in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reg, err := loadRegistry(cfg, logger.Nop())
		if err != nil {
			return err
		}
		out := console.New(cmd.OutOrStdout())
		for _, w := range reg.Warnings() {
			out.Warn(w)
		}
		out.EngineList(reg)
		return nil
	},
}

var enginesValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an engines file (defaults to --engines or the built-in list)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			cfg.EnginesFile = args[0]
		}
		reg, err := loadRegistry(cfg, logger.Nop())
		if err != nil {
			return err
		}
		out := console.New(cmd.OutOrStdout())
		for _, w := range reg.Warnings() {
			out.Warn(w)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[+] %s: %d engines OK (%d enabled)\n", registrySource(cfg), reg.Len(), reg.EnabledCount())
		return nil
	},
}

var enginesInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write the built-in engine list to a file for editing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "engines.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		reg, err := engines.Default()
		if err != nil {
			return err
		}
		if err := engines.SaveFile(reg, path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[+] Wrote %d engines to %s\n", reg.Len(), path)
		fmt.Fprintf(cmd.OutOrStdout(), "    Use it with: searchkit search --engines %s\n", path)
		return nil
	},
}

func init() {
	enginesInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	enginesCmd.AddCommand(enginesListCmd)
	enginesCmd.AddCommand(enginesValidateCmd)
	enginesCmd.AddCommand(enginesInitCmd)
}
