package query

import (
	"math"
	"sort"

	"github.com/djraval/redwireless-scraper/internal/model"
)

// SortBy selects the price field used to order comparison rows.
type SortBy string

const (
	SortNone      SortBy = ""
	SortUpfront   SortBy = "upfront"
	SortFinancing SortBy = "financing"
)

// PriceRow is one group's pricing for a single plan.
type PriceRow struct {
	GroupID        string        `json:"group_id"`
	GroupName      string        `json:"group_name"`
	PlanTitle      string        `json:"plan_title"`
	PlanData       string        `json:"plan_data"`
	UpfrontPrice   *float64      `json:"upfront_price"`
	BuyoutPrice    *float64      `json:"buyout_price"`
	FinancingPrice *float64      `json:"financing_price"`
	MonthlyPrice   *float64      `json:"monthly_price"`
	Addons         []model.Addon `json:"addons"`
}

// ComparePlanPrices builds a map from plan id to per-group price rows over
// groups already filtered to one phone and one storage size. If planID is
// non-empty only that plan contributes rows. Sorting is ascending on the
// chosen field; an absent price sorts as negative infinity, so rows with
// unknown pricing come first.
func ComparePlanPrices(groups []model.GroupCatalog, sortBy SortBy, planID string) map[string][]PriceRow {
	comparison := make(map[string][]PriceRow)

	for _, g := range groups {
		if len(g.Phones) == 0 || len(g.Phones[0].Models) == 0 {
			continue
		}
		// Already filtered to a single storage size.
		m := g.Phones[0].Models[0]

		for _, plan := range m.Plans {
			if planID != "" && plan.ID != planID {
				continue
			}

			row := PriceRow{
				GroupID:      g.GroupID,
				GroupName:    g.CompanyGroup,
				PlanTitle:    plan.Title,
				PlanData:     plan.Data,
				MonthlyPrice: plan.Price,
				Addons:       plan.Addons,
			}
			if plan.Upfront != nil {
				row.UpfrontPrice = plan.Upfront.PriceAfterDiscount
				row.BuyoutPrice = plan.Upfront.BuyoutPrice
			}
			if plan.Financing != nil {
				row.FinancingPrice = plan.Financing.PriceAfterDiscount
			}

			comparison[plan.ID] = append(comparison[plan.ID], row)
		}
	}

	if sortBy == SortUpfront || sortBy == SortFinancing {
		for id := range comparison {
			rows := comparison[id]
			sort.SliceStable(rows, func(i, j int) bool {
				return sortKey(rows[i], sortBy) < sortKey(rows[j], sortBy)
			})
		}
	}

	return comparison
}

func sortKey(r PriceRow, sortBy SortBy) float64 {
	var p *float64
	if sortBy == SortFinancing {
		p = r.FinancingPrice
	} else {
		p = r.UpfrontPrice
	}
	if p == nil {
		return math.Inf(-1)
	}
	return *p
}

// TotalCosts projects device-only totals over the given number of periods:
// the plan cost is subtracted from both options, and only the upfront option
// adds the buyout. Both results are nil if any input price is unknown.
func TotalCosts(upfront, buyout, financing, monthly *float64, periods int) (*float64, *float64) {
	if upfront == nil || buyout == nil || financing == nil || monthly == nil {
		return nil, nil
	}

	n := float64(periods)
	upfrontTotal := round2(*upfront*n + *buyout - *monthly*n)
	financingTotal := round2(*financing*n - *monthly*n)
	return &upfrontTotal, &financingTotal
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
