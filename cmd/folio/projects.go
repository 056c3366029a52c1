package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/livefolio/internal/projects"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the project catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var catalog *projects.Catalog
		if dir := cfg.Content.ProjectsDir; dir != "" {
			catalog, err = projects.Open(dir)
		} else {
			catalog, err = projects.Embedded()
		}
		if err != nil {
			return fmt.Errorf("loading projects: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCATEGORY\tTITLE\tSUBTITLE")
		for _, p := range catalog.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Category, p.Title, p.Subtitle)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
