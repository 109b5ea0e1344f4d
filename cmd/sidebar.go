package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/molbal/cozyui-docs/internal/model"
	"github.com/molbal/cozyui-docs/internal/pages"
)

var sidebarCmd = &cobra.Command{
	Use:   "sidebar [content-dir]",
	Short: "Generates sidebar sections from the Markdown pages",
	Long: `The sidebar command scans the content directory and prints sidebar sections
as YAML, ready to paste under themeConfig. Each top-level directory becomes a
section; front matter "title" and "order" set item labels and ordering.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := appConfig.ContentDir
		if len(args) == 1 {
			dir = args[0]
		}
		sections, err := generateSidebar(dir)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(struct {
			Sidebar []model.SidebarSection `yaml:"sidebar"`
		}{sections})
		if err != nil {
			return fmt.Errorf("encode sidebar: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func generateSidebar(dir string) ([]model.SidebarSection, error) {
	found, err := pages.Scan(dir)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no Markdown pages found in %s", dir)
	}
	return pages.Sidebar(found), nil
}

func init() {
	rootCmd.AddCommand(sidebarCmd)
}
