package query

import (
	"sort"
	"strings"

	"github.com/djraval/redwireless-scraper/internal/model"
)

// PhoneOption is one phone and the union of its storage options across all
// groups.
type PhoneOption struct {
	Slug    string
	Name    string
	Storage []int
}

// AvailablePhones enumerates distinct phones across the whole corpus, sorted
// by slug, each with its sorted storage options.
func AvailablePhones(c *model.Corpus) []PhoneOption {
	names := make(map[string]string)
	storage := make(map[string]map[int]struct{})

	for _, g := range c.Groups {
		for _, p := range g.Phones {
			if _, ok := storage[p.Slug]; !ok {
				names[p.Slug] = p.DisplayName()
				storage[p.Slug] = make(map[int]struct{})
			}
			for _, m := range p.Models {
				storage[p.Slug][m.Storage] = struct{}{}
			}
		}
	}

	out := make([]PhoneOption, 0, len(storage))
	for slug, sizes := range storage {
		opt := PhoneOption{Slug: slug, Name: names[slug]}
		for s := range sizes {
			opt.Storage = append(opt.Storage, s)
		}
		sort.Ints(opt.Storage)
		out = append(out, opt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// PlanOption is one plan id and every title it appears under.
type PlanOption struct {
	ID     string
	Titles []string
}

// AvailablePlans enumerates distinct plan ids across the whole corpus,
// sorted by id, each with its sorted, deduplicated titles.
func AvailablePlans(c *model.Corpus) []PlanOption {
	titles := make(map[string]map[string]struct{})

	for _, g := range c.Groups {
		for _, p := range g.Phones {
			for _, m := range p.Models {
				for _, plan := range m.Plans {
					if _, ok := titles[plan.ID]; !ok {
						titles[plan.ID] = make(map[string]struct{})
					}
					data := plan.Data
					if data == "" {
						data = "N/A"
					}
					titles[plan.ID][plan.Title+" ("+data+"GB)"] = struct{}{}
				}
			}
		}
	}

	out := make([]PlanOption, 0, len(titles))
	for id, set := range titles {
		opt := PlanOption{ID: id}
		for t := range set {
			opt.Titles = append(opt.Titles, t)
		}
		sort.Strings(opt.Titles)
		out = append(out, opt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SuggestPhones returns options whose slug contains the query, case
// insensitive. Used as a usability aid when a filtered query matches nothing.
func SuggestPhones(options []PhoneOption, q string) []PhoneOption {
	q = strings.ToLower(q)
	var out []PhoneOption
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Slug), q) {
			out = append(out, opt)
		}
	}
	return out
}
