package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/molbal/cozyui-docs/internal/config"
	"github.com/molbal/cozyui-docs/internal/export"
	"github.com/molbal/cozyui-docs/internal/lint"
	xlog "github.com/molbal/cozyui-docs/internal/log"
	"github.com/molbal/cozyui-docs/internal/pages"
	"github.com/molbal/cozyui-docs/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Lints the site configuration and writes it for the site generator",
	Long: `The build command loads the site configuration, lints it (checking links
against the Markdown pages in the content directory when it exists), renders
the footer markup, and writes config.json (or config.yaml) to the output
directory, replacing the previous file atomically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runBuild(appConfig, xlog.WithComponent("build"))
		if res != nil {
			printFindings(cmd.OutOrStdout(), res.Report.Findings())
		}
		return err
	},
}

// buildResult describes a finished build.
type buildResult struct {
	Output string
	Report *lint.Report
}

func runBuild(cfg config.Config, logger zerolog.Logger) (*buildResult, error) {
	siteCfg, err := site.LoadOrDefault(cfg.Site)
	if err != nil {
		return nil, err
	}

	opts, err := lintOptions(cfg, logger)
	if err != nil {
		return nil, err
	}
	report := lint.Check(siteCfg, opts)
	res := &buildResult{Report: report}
	if err := report.Err(); err != nil {
		return res, err
	}
	if n := len(report.Warnings()); n > 0 {
		logger.Warn().Int("warnings", n).Msg("site configuration has warnings")
	}

	rendered, err := export.Render(siteCfg)
	if err != nil {
		return res, err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("failed to create output directory '%s': %w", cfg.OutputDir, err)
	}
	res.Output = filepath.Join(cfg.OutputDir, export.FileName(cfg.Format))
	if err := export.Write(res.Output, rendered, cfg.Format); err != nil {
		return res, err
	}

	logger.Info().
		Str("output", res.Output).
		Int("nav", len(rendered.ThemeConfig.Nav)).
		Int("sections", len(rendered.ThemeConfig.Sidebar)).
		Msg("site configuration written")
	return res, nil
}

// lintOptions enables the dangling link check when the content directory exists.
func lintOptions(cfg config.Config, logger zerolog.Logger) (lint.Options, error) {
	opts := lint.Options{Strict: cfg.Strict}
	if cfg.ContentDir == "" {
		return opts, nil
	}
	if _, err := os.Stat(cfg.ContentDir); os.IsNotExist(err) {
		logger.Debug().Str("dir", cfg.ContentDir).Msg("content directory not found, skipping link check")
		return opts, nil
	}
	found, err := pages.Scan(cfg.ContentDir)
	if err != nil {
		return opts, err
	}
	idx := pages.NewIndex(found)
	logger.Debug().Int("pages", idx.Len()).Str("dir", cfg.ContentDir).Msg("indexed content pages")
	opts.Pages = idx
	return opts, nil
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output directory (default \"dist\")")
	buildCmd.Flags().String("format", "", "output format: json or yaml (default \"json\")")
	buildCmd.Flags().String("content", "", "Markdown content directory (default \"docs\")")
	buildCmd.Flags().Bool("strict", false, "treat warnings as errors")
	rootCmd.AddCommand(buildCmd)
}
