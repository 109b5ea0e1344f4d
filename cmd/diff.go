package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molbal/cozyui-docs/internal/revision"
	"github.com/molbal/cozyui-docs/internal/site"
)

var diffExitCode bool

// errRevisionsDiffer is returned with --exit-code when revisions differ.
var errRevisionsDiffer = errors.New("revisions differ")

var diffCmd = &cobra.Command{
	Use:   "diff OLD [NEW]",
	Short: "Compares two revisions of the site configuration",
	Long: `The diff command lists what changed between two site configuration files:
renamed pages, added or removed sidebar entries, footer and edit link edits.
NEW defaults to the current site configuration.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		old, err := site.Load(args[0])
		if err != nil {
			return err
		}
		newPath := appConfig.Site
		if len(args) == 2 {
			newPath = args[1]
		}
		cur, err := site.LoadOrDefault(newPath)
		if err != nil {
			return err
		}

		changes := revision.Diff(old, cur)
		out := cmd.OutOrStdout()
		if len(changes) == 0 {
			fmt.Fprintln(out, "no changes")
			return nil
		}
		fmt.Fprint(out, revision.Format(changes))
		if diffExitCode {
			return fmt.Errorf("%w: %d changes", errRevisionsDiffer, len(changes))
		}
		return nil
	},
}

func init() {
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "exit non-zero when the revisions differ")
	rootCmd.AddCommand(diffCmd)
}
