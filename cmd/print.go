package cmd

import (
	"github.com/spf13/cobra"

	"github.com/molbal/cozyui-docs/internal/export"
	"github.com/molbal/cozyui-docs/internal/site"
)

var printRendered bool

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Prints the effective site configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := site.LoadOrDefault(appConfig.Site)
		if err != nil {
			return err
		}
		if printRendered {
			if cfg, err = export.Render(cfg); err != nil {
				return err
			}
		}
		data, err := export.Marshal(cfg, appConfig.Format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	printCmd.Flags().String("format", "", "output format: json or yaml (default \"json\")")
	printCmd.Flags().BoolVar(&printRendered, "rendered", false, "render footer markup as the build does")
	rootCmd.AddCommand(printCmd)
}
