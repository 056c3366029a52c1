package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/livefolio/internal/portfolio"
	"github.com/gabrielmiguelok/livefolio/pkg/state"
)

var flagsPurge bool

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List persisted theme preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		store, err := state.Open(ctx, cfg.Store.Driver, cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening flag store: %w", err)
		}
		defer store.Close()

		out := cmd.OutOrStdout()

		if flagsPurge {
			sqlite, ok := store.(*state.SQLiteStore)
			if !ok {
				return errors.New("purge needs the sqlite store driver")
			}
			n, err := sqlite.Purge(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "purged %d expired flags\n", n)
		}

		flags := state.NewFlags(store)
		owners, err := flags.Owners(ctx, portfolio.ThemeSlot)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VISITOR\tTHEME\tUPDATED")
		for _, owner := range owners {
			rec, err := flags.Record(ctx, owner, portfolio.ThemeSlot)
			if err != nil {
				fmt.Fprintf(w, "%s\t-\t%v\n", owner, err)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", owner, rec.Value, rec.UpdatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

func init() {
	flagsCmd.Flags().BoolVar(&flagsPurge, "purge", false, "delete expired flags first (sqlite only)")
	rootCmd.AddCommand(flagsCmd)
}
