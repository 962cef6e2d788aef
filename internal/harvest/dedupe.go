package harvest

import (
	"encoding/json"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/djraval/redwireless-scraper/internal/model"
)

// Deduplicator folds discovery results into a duplicate-free set. Overlapping
// one- and two-character search terms return heavily overlapping result sets,
// so the same company surfaces under many terms; membership is decided by a
// canonical serialization of the record, not by first-seen order.
type Deduplicator struct {
	seen map[string]model.Company
}

// NewDeduplicator creates an empty Deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]model.Company)}
}

// canonical returns a deterministic encoding of the record used purely for
// equality. Marshaling the typed struct fixes field order, so identical
// records canonicalize identically regardless of discovery order.
func canonical(c model.Company) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", eris.Wrapf(err, "dedupe: canonicalize company %s", c.ID)
	}
	return string(b), nil
}

// Add inserts companies into the set and returns how many were new.
func (d *Deduplicator) Add(companies []model.Company) (int, error) {
	added := 0
	for _, c := range companies {
		key, err := canonical(c)
		if err != nil {
			return added, err
		}
		if _, ok := d.seen[key]; !ok {
			d.seen[key] = c
			added++
		}
	}
	return added, nil
}

// Len returns the current size of the set.
func (d *Deduplicator) Len() int {
	return len(d.seen)
}

// Companies materializes the set back to typed records, sorted by id for
// stable downstream ordering.
func (d *Deduplicator) Companies() []model.Company {
	out := make([]model.Company, 0, len(d.seen))
	for _, c := range d.seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
