package harvest

import (
	"context"

	"go.uber.org/zap"

	"github.com/djraval/redwireless-scraper/internal/model"
	"github.com/djraval/redwireless-scraper/internal/rpp"
)

// Enricher replaces discovery summaries with full company records, which
// carry the groups list the rest of the pipeline depends on.
type Enricher struct {
	client    rpp.Client
	batchSize int
}

// NewEnricher creates an Enricher fetching batchSize companies at a time.
func NewEnricher(client rpp.Client, batchSize int) *Enricher {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Enricher{client: client, batchSize: batchSize}
}

// Enrich fetches the full record for every company. A failed fetch drops
// that company from the result; the error, carrying the company id, is
// returned alongside the survivors.
func (e *Enricher) Enrich(ctx context.Context, companies []model.Company) ([]model.Company, []error) {
	log := zap.L()
	log.Info("enrichment: starting", zap.Int("companies", len(companies)))

	enriched := make([]model.Company, 0, len(companies))
	var errs []error

	processed := 0
	RunBatches(ctx, companies, e.batchSize,
		func(ctx context.Context, c model.Company) (*model.Company, error) {
			return e.client.GetCompany(ctx, c.ID)
		},
		func(chunk, totalChunks int, outcomes []Outcome[model.Company, *model.Company]) {
			for _, o := range outcomes {
				if o.Err != nil {
					errs = append(errs, o.Err)
					continue
				}
				enriched = append(enriched, *o.Result)
			}
			processed += len(outcomes)
			log.Info("enrichment: batch complete",
				zap.Int("processed", processed),
				zap.Int("total", len(companies)),
			)
		},
	)

	log.Info("enrichment: complete",
		zap.Int("enriched", len(enriched)),
		zap.Int("failed", len(errs)),
	)
	return enriched, errs
}
