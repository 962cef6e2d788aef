package harvest

import (
	"sort"

	"go.uber.org/zap"

	"github.com/djraval/redwireless-scraper/internal/model"
)

// BuildGroups indexes the unique pricing groups referenced by the enriched
// companies. Exactly one Group record exists per distinct group id no matter
// how many companies reference it; member company names are deduplicated and
// sorted for deterministic output.
func BuildGroups(companies []model.Company) []model.Group {
	names := make(map[string]string)
	members := make(map[string]map[string]struct{})

	for _, c := range companies {
		for _, ref := range c.Groups {
			if _, ok := members[ref.ID]; !ok {
				names[ref.ID] = ref.Name
				members[ref.ID] = make(map[string]struct{})
			}
			members[ref.ID][c.Name] = struct{}{}
		}
	}

	groups := make([]model.Group, 0, len(members))
	for id, set := range members {
		memberNames := make([]string, 0, len(set))
		for name := range set {
			memberNames = append(memberNames, name)
		}
		sort.Strings(memberNames)
		groups = append(groups, model.Group{ID: id, Name: names[id], Companies: memberNames})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })

	zap.L().Info("registry: built group index", zap.Int("groups", len(groups)))
	return groups
}
