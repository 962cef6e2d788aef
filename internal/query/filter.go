// Package query filters the harvested corpus and computes cross-group price
// comparisons. It operates on a loaded corpus only and never talks to the
// provider.
package query

import (
	"github.com/djraval/redwireless-scraper/internal/model"
)

// FilterByPhoneAndStorage returns, for every group carrying the phone, a
// copy of that group's catalog restricted to the single model matching the
// storage size. Groups without a match are omitted; an empty result is not
// an error.
func FilterByPhoneAndStorage(c *model.Corpus, slug string, storage int) []model.GroupCatalog {
	var out []model.GroupCatalog

	for _, g := range c.Groups {
		var match *model.Phone
		for i := range g.Phones {
			if g.Phones[i].Slug == slug {
				match = &g.Phones[i]
				break
			}
		}
		if match == nil {
			continue
		}

		filtered := filterModels(*match, storage)
		if filtered == nil {
			continue
		}

		out = append(out, model.GroupCatalog{
			GroupID:      g.GroupID,
			CompanyGroup: g.CompanyGroup,
			Companies:    g.Companies,
			Phones:       []model.Phone{*filtered},
		})
	}

	return out
}

// filterModels copies the phone with models restricted to the given storage.
// Returns nil when no model matches.
func filterModels(p model.Phone, storage int) *model.Phone {
	var models []model.PhoneModel
	for _, m := range p.Models {
		if m.Storage == storage {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil
	}
	p.Models = models
	return &p
}
