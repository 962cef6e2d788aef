package harvest

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/djraval/redwireless-scraper/internal/model"
	"github.com/djraval/redwireless-scraper/internal/rpp"
)

// CatalogEntry tracks one phone across the harvest: the base record from the
// master list, the first-seen model skeleton per storage size, and every
// group's full detail document keyed by group id.
type CatalogEntry struct {
	Slug            string
	Base            model.Phone
	ModelsByStorage map[int]model.PhoneModel
	GroupPricing    map[string]*model.Phone
}

// masterCatalog is the mutable catalog state. It is only ever touched by the
// coordinating flow between batches, so it needs no locking.
type masterCatalog struct {
	slugs   []string
	entries map[string]*CatalogEntry
}

func newMasterCatalog(phones []model.Phone) *masterCatalog {
	m := &masterCatalog{entries: make(map[string]*CatalogEntry, len(phones))}
	for _, p := range phones {
		if _, ok := m.entries[p.Slug]; ok {
			continue
		}
		m.slugs = append(m.slugs, p.Slug)
		m.entries[p.Slug] = &CatalogEntry{
			Slug:            p.Slug,
			Base:            p,
			ModelsByStorage: make(map[int]model.PhoneModel),
			GroupPricing:    make(map[string]*model.Phone),
		}
	}
	return m
}

// merge records one group's detail documents. The detail is stored wholesale
// under the group id (a later fetch for the same pair would replace, never
// combine). Model skeletons are first-writer-wins per storage size: a storage
// already claimed by an earlier group keeps its skeleton, while the incoming
// group's pricing still lands under its own key.
func (m *masterCatalog) merge(groupID string, details []*model.Phone) {
	for _, d := range details {
		entry, ok := m.entries[d.Slug]
		if !ok {
			zap.L().Warn("catalog: detail for unknown slug, skipping",
				zap.String("slug", d.Slug),
				zap.String("group_id", groupID),
			)
			continue
		}
		entry.GroupPricing[groupID] = d
		for _, mod := range d.Models {
			if _, seen := entry.ModelsByStorage[mod.Storage]; !seen {
				entry.ModelsByStorage[mod.Storage] = mod
			}
		}
	}
}

// phonesForGroup returns, in master-list order, every detail fetched under
// the given group.
func (m *masterCatalog) phonesForGroup(groupID string) []model.Phone {
	phones := []model.Phone{}
	for _, slug := range m.slugs {
		if d, ok := m.entries[slug].GroupPricing[groupID]; ok {
			phones = append(phones, *d)
		}
	}
	return phones
}

// CatalogBuilder fetches the master phone list once, then group-scoped
// pricing for every (group, phone) pair.
type CatalogBuilder struct {
	client         rpp.Client
	groupBatchSize int
}

// NewCatalogBuilder creates a CatalogBuilder processing groupBatchSize groups
// per batch.
func NewCatalogBuilder(client rpp.Client, groupBatchSize int) *CatalogBuilder {
	if groupBatchSize <= 0 {
		groupBatchSize = 10
	}
	return &CatalogBuilder{client: client, groupBatchSize: groupBatchSize}
}

// groupResult carries everything fetched under one group.
type groupResult struct {
	details []*model.Phone
	errs    []error
}

// Build assembles the corpus. The master list is a hard dependency: if it
// cannot be fetched or comes back empty the harvest aborts. Individual
// (phone, group) failures are aggregated and only leave that pair absent.
func (b *CatalogBuilder) Build(ctx context.Context, groups []model.Group) (*model.Corpus, []error, error) {
	log := zap.L()

	log.Info("catalog: fetching master phone list")
	phones, err := b.client.ListPhones(ctx)
	if err != nil {
		return nil, nil, eris.Wrap(err, "catalog: fetch master phone list")
	}
	if len(phones) == 0 {
		return nil, nil, eris.New("catalog: master phone list is empty")
	}
	log.Info("catalog: master phone list fetched", zap.Int("phones", len(phones)))

	catalog := newMasterCatalog(phones)
	var errs []error
	processed := 0

	RunBatches(ctx, groups, b.groupBatchSize,
		func(ctx context.Context, g model.Group) (groupResult, error) {
			return b.fetchGroup(ctx, g.ID, phones), nil
		},
		func(chunk, totalChunks int, outcomes []Outcome[model.Group, groupResult]) {
			for _, o := range outcomes {
				catalog.merge(o.Item.ID, o.Result.details)
				errs = append(errs, o.Result.errs...)
			}
			processed += len(outcomes)
			log.Info("catalog: group batch complete",
				zap.Int("batch", chunk),
				zap.Int("batches", totalChunks),
				zap.Int("groups_processed", processed),
				zap.Int("groups_total", len(groups)),
			)
		},
	)

	corpus := &model.Corpus{CreatedAt: time.Now().UTC()}
	totalListings := 0
	for _, g := range groups {
		groupPhones := catalog.phonesForGroup(g.ID)
		totalListings += len(groupPhones)
		corpus.Groups = append(corpus.Groups, model.GroupCatalog{
			GroupID:      g.ID,
			CompanyGroup: g.Name,
			Companies:    g.Companies,
			Phones:       groupPhones,
		})
	}

	log.Info("catalog: complete",
		zap.Int("groups", len(groups)),
		zap.Int("phone_listings", totalListings),
		zap.Int("failed_fetches", len(errs)),
	)
	return corpus, errs, nil
}

// fetchGroup fans out one request per phone, all concurrent.
func (b *CatalogBuilder) fetchGroup(ctx context.Context, groupID string, phones []model.Phone) groupResult {
	details := make([]*model.Phone, len(phones))
	fetchErrs := make([]error, len(phones))

	var g errgroup.Group
	for i, p := range phones {
		i, p := i, p
		g.Go(func() error {
			details[i], fetchErrs[i] = b.fetchPhoneDetail(ctx, p.Slug, groupID)
			return nil
		})
	}
	_ = g.Wait()

	var res groupResult
	for i := range phones {
		if fetchErrs[i] != nil {
			res.errs = append(res.errs, fetchErrs[i])
			continue
		}
		res.details = append(res.details, details[i])
	}
	return res
}

// fetchPhoneDetail fetches one group-scoped detail, then fans out one add-on
// request per plan. An add-on failure leaves that plan's addons empty rather
// than failing the phone.
func (b *CatalogBuilder) fetchPhoneDetail(ctx context.Context, slug, groupID string) (*model.Phone, error) {
	detail, err := b.client.GetPhoneDetail(ctx, slug, groupID)
	if err != nil {
		return nil, err
	}
	if detail.Slug == "" {
		detail.Slug = slug
	}

	var g errgroup.Group
	for mi := range detail.Models {
		mod := &detail.Models[mi]
		for pi := range mod.Plans {
			plan := &mod.Plans[pi]
			g.Go(func() error {
				addons, addonErr := b.client.ListAddons(ctx, groupID, detail.ID, mod.ID, plan.ID)
				if addonErr != nil || addons == nil {
					plan.Addons = []model.Addon{}
					return nil
				}
				plan.Addons = addons
				return nil
			})
		}
	}
	_ = g.Wait()

	return detail, nil
}
