// Package harvest implements the three-stage pipeline that builds the
// pricing corpus: exhaustive search-key discovery with dedup, per-company
// enrichment into a group registry, and master-catalog construction with
// nested per-group fan-out.
package harvest

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/djraval/redwireless-scraper/internal/config"
	"github.com/djraval/redwireless-scraper/internal/model"
	"github.com/djraval/redwireless-scraper/internal/rpp"
)

// Stats summarizes a harvest run.
type Stats struct {
	Discovered     int `json:"discovered"`
	Enriched       int `json:"enriched"`
	Groups         int `json:"groups"`
	Companies      int `json:"companies"`
	PhoneListings  int `json:"phone_listings"`
	DistinctPhones int `json:"distinct_phones"`
	SearchErrors   int `json:"search_errors"`
	EnrichErrors   int `json:"enrich_errors"`
	PricingErrors  int `json:"pricing_errors"`
}

// Pipeline orchestrates the discovery, enrichment, and catalog phases.
type Pipeline struct {
	client  rpp.Client
	cfg     config.HarvestConfig
	onPhase func(phase string)
}

// New creates a Pipeline.
func New(client rpp.Client, cfg config.HarvestConfig) *Pipeline {
	return &Pipeline{client: client, cfg: cfg}
}

// SetPhaseHook registers a callback invoked as each pipeline phase begins.
func (p *Pipeline) SetPhaseHook(fn func(phase string)) {
	p.onPhase = fn
}

func (p *Pipeline) enterPhase(name string) {
	if p.onPhase != nil {
		p.onPhase(name)
	}
}

// Run executes the full harvest and returns the assembled corpus. The run
// aborts only when discovery finds nothing, enrichment yields nothing, or
// the master phone list cannot be fetched; every other failure is aggregated
// into Stats and the affected unit is simply absent from the corpus.
func (p *Pipeline) Run(ctx context.Context) (*model.Corpus, *Stats, error) {
	stats := &Stats{}

	p.enterPhase("discovering")
	companies, searchErrs := p.discover(ctx)
	stats.Discovered = len(companies)
	stats.SearchErrors = len(searchErrs)
	if len(companies) == 0 {
		return nil, stats, eris.New("harvest: discovery found no companies")
	}

	p.enterPhase("enriching")
	enricher := NewEnricher(p.client, p.cfg.EnrichBatchSize)
	enriched, enrichErrs := enricher.Enrich(ctx, companies)
	stats.Enriched = len(enriched)
	stats.EnrichErrors = len(enrichErrs)
	if len(enriched) == 0 {
		return nil, stats, eris.New("harvest: enrichment yielded no companies")
	}

	groups := BuildGroups(enriched)
	stats.Groups = len(groups)

	p.enterPhase("collecting")
	builder := NewCatalogBuilder(p.client, p.cfg.GroupBatchSize)
	corpus, pricingErrs, err := builder.Build(ctx, groups)
	if err != nil {
		return nil, stats, err
	}
	stats.PricingErrors = len(pricingErrs)

	slugs := make(map[string]struct{})
	for _, g := range corpus.Groups {
		stats.Companies += len(g.Companies)
		stats.PhoneListings += len(g.Phones)
		for _, ph := range g.Phones {
			slugs[ph.Slug] = struct{}{}
		}
	}
	stats.DistinctPhones = len(slugs)

	zap.L().Info("harvest: complete",
		zap.Int("groups", stats.Groups),
		zap.Int("companies", stats.Companies),
		zap.Int("phone_listings", stats.PhoneListings),
		zap.Int("distinct_phones", stats.DistinctPhones),
	)
	return corpus, stats, nil
}

// discover exhausts the search-key space and folds the overlapping results
// into a duplicate-free company set.
func (p *Pipeline) discover(ctx context.Context) ([]model.Company, []error) {
	log := zap.L()
	terms := SearchTerms()
	log.Info("discovery: starting", zap.Int("search_terms", len(terms)))

	dedup := NewDeduplicator()
	var errs []error

	RunBatches(ctx, terms, p.cfg.SearchBatchSize,
		func(ctx context.Context, term string) ([]model.Company, error) {
			return p.client.SearchCompanies(ctx, term)
		},
		func(chunk, totalChunks int, outcomes []Outcome[string, []model.Company]) {
			added := 0
			for _, o := range outcomes {
				if o.Err != nil {
					errs = append(errs, o.Err)
					continue
				}
				n, addErr := dedup.Add(o.Result)
				if addErr != nil {
					errs = append(errs, addErr)
					continue
				}
				added += n
			}
			log.Info("discovery: batch complete",
				zap.Int("batch", chunk),
				zap.Int("batches", totalChunks),
				zap.Int("new_companies", added),
				zap.Int("total_companies", dedup.Len()),
			)
		},
	)

	companies := dedup.Companies()
	log.Info("discovery: complete",
		zap.Int("unique_companies", len(companies)),
		zap.Int("failed_terms", len(errs)),
	)
	return companies, errs
}
