package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/nao1215/pagescout/internal/config"
	"github.com/nao1215/pagescout/internal/crawler"
	"github.com/nao1215/pagescout/internal/keyword"
	"github.com/nao1215/pagescout/internal/log"
	"github.com/nao1215/pagescout/internal/model"
	"github.com/nao1215/pagescout/internal/pipeline"
	"github.com/nao1215/pagescout/internal/report"
	"github.com/spf13/cobra"
)

const scanExamples = `Examples:
  # Scan a page (asks for the URL when it is omitted)
  pagescout https://www.example.gov.in/

  # Search for your own phrases
  pagescout scan -k "ayushman bharat" -k pmjay https://www.example.gov.in/

  # Follow news pages as well as scheme pages
  pagescout scan --filter /schemes/ --filter /news/ https://www.example.gov.in/

  # Write a Markdown report to a file
  pagescout scan -m -o reports/example.md https://www.example.gov.in/

  # Use a custom configuration file
  pagescout scan -c myconfig.yaml https://www.example.gov.in/`

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url]",
		Short: "Scan a page and its sub-pages for keywords and PDF links",
		Long: `Scan fetches the start page and every selected sub-page, one at a time, and
reports which keywords were found on which pages.

For every page it prints the keywords found and the PDF documents linked.
A sub-page that cannot be fetched is reported and skipped.

` + scanExamples,
		Args: cobra.MaximumNArgs(1),
		RunE: runScanCmd,
	}

	addScanFlags(cmd)
	return cmd
}

// addScanFlags registers the scan flags on cmd.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")
	cmd.Flags().StringArrayP("keyword", "k", nil,
		"Keyword to search for (repeatable, replaces the built-in list)")
	cmd.Flags().StringArray("filter", nil,
		"Sub-page URL fragment (repeatable, replaces /organization/ and /schemes/)")

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pagescout in current or home directory)")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// runScanCmd executes a scan.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runScan(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the defaults, the configuration file
// and the command line flags, in increasing order of precedence.
// When args is empty the start URL is read from standard input.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.StartURL = strings.TrimSpace(args[0])
	} else {
		report.NewProgress(progressOutput(cmd, cfg)).Prompt()
		cfg.StartURL, err = readStartURL(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read URL: %w", err)
		}
	}

	// An explicit path must exist; otherwise a missing file is fine.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplySite(file.GetSiteConfig(cfg.StartURL))
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.Keywords = keyword.Normalize(cfg.Keywords)
	return cfg, nil
}

// applyFlagOverrides copies the flags the user set explicitly into cfg.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return err
		}
	}
	if flags.Changed("max-body-size") {
		if cfg.MaxBodySize, err = flags.GetInt64("max-body-size"); err != nil {
			return err
		}
	}
	if flags.Changed("keyword") {
		if cfg.Keywords, err = flags.GetStringArray("keyword"); err != nil {
			return err
		}
	}
	if flags.Changed("filter") {
		if cfg.SubpageFilters, err = flags.GetStringArray("filter"); err != nil {
			return err
		}
	}
	return nil
}

// readStartURL reads one line from r. A final line without a newline is
// accepted.
func readStartURL(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// reportFormat returns the report format selected by cfg.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// progressOutput returns where progress lines go. Structured reports keep
// stdout to themselves.
func progressOutput(cmd *cobra.Command, cfg *config.Config) io.Writer {
	if reportFormat(cfg) != report.FormatText {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// setupLogger creates a structured logger based on verbosity setting.
// Credentials in logged URLs are masked.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	return log.NewSecureLogger(w, verbose)
}

// runScan executes the scan pipeline and writes the report.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	progress := report.NewProgress(progressOutput(cmd, cfg))

	fetcher := crawler.NewFetcher(
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)
	matcher := keyword.NewMatcher(cfg.Keywords)

	p := pipeline.DefaultPipeline(fetcher, matcher,
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithPipelineSubpageFilters(cfg.SubpageFilters),
		pipeline.WithPipelineProgress(progress),
	)

	logger.Info("starting scan",
		"url", cfg.StartURL,
		"keywords", matcher.Len(),
		"filters", cfg.SubpageFilters,
	)

	scanReport := model.NewScanReport(cfg.StartURL, matcher.Keywords())
	err := p.Execute(ctx, scanReport)

	switch {
	case errors.Is(err, pipeline.ErrInvalidStartURL), errors.Is(err, pipeline.ErrRootUnreachable):
		// The failure line is already printed. Only structured reports
		// are still written so tools can see the error.
		logger.Debug("scan stopped", "error", err)
		if reportFormat(cfg) == report.FormatText {
			return nil
		}
	case scanReport.Cancelled:
		progress.Interrupted()
	case err != nil:
		return fmt.Errorf("scan failed: %w", err)
	}

	return outputReport(cmd, cfg, scanReport)
}

// outputReport writes the report in the requested format to the report
// file or stdout.
func outputReport(cmd *cobra.Command, cfg *config.Config, scanReport *model.ScanReport) error {
	output := cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch format := reportFormat(cfg); format {
	case report.FormatText:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	default:
		w = report.NewWriter(format, output, getVersion())
	}

	if _, err := w.Write(scanReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
