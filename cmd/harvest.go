package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/djraval/redwireless-scraper/internal/corpus"
	"github.com/djraval/redwireless-scraper/internal/fetcher"
	"github.com/djraval/redwireless-scraper/internal/harvest"
	"github.com/djraval/redwireless-scraper/internal/rpp"
	"github.com/djraval/redwireless-scraper/internal/store"
)

var harvestOutput string

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Run the full harvesting pipeline and persist the corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return eris.Wrap(err, "create store directory")
		}
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		run, err := st.CreateRun(ctx)
		if err != nil {
			return err
		}
		log := zap.L().With(zap.String("run_id", run.ID))

		fetch := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  cfg.API.UserAgent,
			Timeout:    time.Duration(cfg.API.TimeoutSecs) * time.Second,
			MaxRetries: cfg.API.MaxRetries,
			RateLimit:  rate.Limit(cfg.API.RateLimit),
			RateBurst:  cfg.API.RateBurst,
		})
		client := rpp.NewClient(fetch, cfg.API)

		pipeline := harvest.New(client, cfg.Harvest)
		pipeline.SetPhaseHook(func(phase string) {
			if statusErr := st.UpdateRunStatus(ctx, run.ID, store.RunStatus(phase)); statusErr != nil {
				log.Warn("failed to update run status", zap.Error(statusErr))
			}
		})

		result, stats, err := pipeline.Run(ctx)
		if err != nil {
			_ = st.FailRun(ctx, run.ID, err)
			return eris.Wrap(err, "harvest")
		}

		outPath := harvestOutput
		if outPath == "" {
			outPath = filepath.Join(cfg.Harvest.DataDir, corpus.FileName)
		}
		if err := corpus.Save(outPath, result); err != nil {
			_ = st.FailRun(ctx, run.ID, err)
			return err
		}

		if err := st.CompleteRun(ctx, run.ID, stats, outPath); err != nil {
			log.Warn("failed to record run completion", zap.Error(err))
		}

		log.Info("harvest: corpus saved",
			zap.String("path", outPath),
			zap.Int("groups", stats.Groups),
			zap.Int("phone_listings", stats.PhoneListings),
		)
		return nil
	},
}

func init() {
	harvestCmd.Flags().StringVar(&harvestOutput, "output", "", "corpus output path (default <data_dir>/final_data.json)")
	rootCmd.AddCommand(harvestCmd)
}
