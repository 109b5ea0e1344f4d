package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/molbal/cozyui-docs/internal/config"
	"github.com/molbal/cozyui-docs/internal/lint"
	xlog "github.com/molbal/cozyui-docs/internal/log"
	"github.com/molbal/cozyui-docs/internal/site"
)

var lintCmd = &cobra.Command{
	Use:   "lint [site-file]",
	Short: "Checks the site configuration for broken or suspicious entries",
	Long: `The lint command checks titles, link shapes, duplicate links, social icons,
the search provider, the edit link pattern, the sitemap hostname, head tags and
footer markup. When the content directory exists, internal links are also
checked against the Markdown pages in it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig
		if len(args) == 1 {
			cfg.Site = args[0]
		}
		report, err := runLint(cfg)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printFindings(out, report.Findings())
		if err := report.Err(); err != nil {
			return err
		}
		fmt.Fprintln(out, "ok")
		return nil
	},
}

func runLint(cfg config.Config) (*lint.Report, error) {
	siteCfg, err := site.LoadOrDefault(cfg.Site)
	if err != nil {
		return nil, err
	}
	opts, err := lintOptions(cfg, xlog.WithComponent("lint"))
	if err != nil {
		return nil, err
	}
	return lint.Check(siteCfg, opts), nil
}

func printFindings(w io.Writer, findings []lint.Finding) {
	for _, f := range findings {
		fmt.Fprintln(w, f.String())
	}
}

func init() {
	lintCmd.Flags().String("content", "", "Markdown content directory (default \"docs\")")
	lintCmd.Flags().Bool("strict", false, "treat warnings as errors")
	rootCmd.AddCommand(lintCmd)
}
