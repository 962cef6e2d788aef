package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/djraval/redwireless-scraper/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded harvest runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return eris.Wrap(err, "create store directory")
		}
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		runs, err := st.ListRuns(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No harvest runs recorded")
			return nil
		}

		for _, r := range runs {
			fmt.Printf("%s  %-12s  %s\n", r.ID, r.Status, r.CreatedAt.Format("2006-01-02 15:04:05"))
			if r.Stats != nil {
				fmt.Printf("  groups=%d companies=%d phone_listings=%d distinct_phones=%d errors(search=%d enrich=%d pricing=%d)\n",
					r.Stats.Groups, r.Stats.Companies, r.Stats.PhoneListings, r.Stats.DistinctPhones,
					r.Stats.SearchErrors, r.Stats.EnrichErrors, r.Stats.PricingErrors)
			}
			if r.CorpusPath != "" {
				fmt.Printf("  corpus: %s\n", r.CorpusPath)
			}
			if r.Error != "" {
				fmt.Printf("  error: %s\n", r.Error)
			}
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "max number of runs to list")
	rootCmd.AddCommand(runsCmd)
}
