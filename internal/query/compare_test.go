package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djraval/redwireless-scraper/internal/model"
)

func fp(v float64) *float64 { return &v }

func groupWithPlan(groupID, groupName string, plan model.Plan) model.GroupCatalog {
	return model.GroupCatalog{
		GroupID:      groupID,
		CompanyGroup: groupName,
		Phones: []model.Phone{{
			Slug:   "x-phone",
			Models: []model.PhoneModel{{Storage: 128, Plans: []model.Plan{plan}}},
		}},
	}
}

func TestComparePlanPrices_NullSortsFirst(t *testing.T) {
	groups := []model.GroupCatalog{
		groupWithPlan("A", "Group A", model.Plan{ID: "p1", Upfront: &model.UpfrontPricing{PriceAfterDiscount: nil}}),
		groupWithPlan("B", "Group B", model.Plan{ID: "p1", Upfront: &model.UpfrontPricing{PriceAfterDiscount: fp(30)}}),
		groupWithPlan("C", "Group C", model.Plan{ID: "p1", Upfront: &model.UpfrontPricing{PriceAfterDiscount: fp(10)}}),
	}

	comparison := ComparePlanPrices(groups, SortUpfront, "")
	rows := comparison["p1"]
	require.Len(t, rows, 3)

	// Absent prices sort as negative infinity, so the unknown row comes first.
	assert.Equal(t, "A", rows[0].GroupID)
	assert.Equal(t, "C", rows[1].GroupID)
	assert.Equal(t, "B", rows[2].GroupID)
}

func TestComparePlanPrices_SortByFinancing(t *testing.T) {
	groups := []model.GroupCatalog{
		groupWithPlan("A", "Group A", model.Plan{ID: "p1", Financing: &model.FinancingPricing{PriceAfterDiscount: fp(55)}}),
		groupWithPlan("B", "Group B", model.Plan{ID: "p1", Financing: &model.FinancingPricing{PriceAfterDiscount: fp(45)}}),
	}

	rows := ComparePlanPrices(groups, SortFinancing, "")["p1"]
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].GroupID)
	assert.Equal(t, "A", rows[1].GroupID)
}

func TestComparePlanPrices_PlanFilter(t *testing.T) {
	g := model.GroupCatalog{
		GroupID:      "A",
		CompanyGroup: "Group A",
		Phones: []model.Phone{{
			Slug: "x-phone",
			Models: []model.PhoneModel{{
				Storage: 128,
				Plans: []model.Plan{
					{ID: "p1", Title: "Lite"},
					{ID: "p2", Title: "Max"},
				},
			}},
		}},
	}

	comparison := ComparePlanPrices([]model.GroupCatalog{g}, SortNone, "p2")
	require.Len(t, comparison, 1)
	require.Len(t, comparison["p2"], 1)
	assert.Equal(t, "Max", comparison["p2"][0].PlanTitle)
}

func TestComparePlanPrices_RowFields(t *testing.T) {
	plan := model.Plan{
		ID:        "p1",
		Title:     "Lite",
		Data:      "60",
		Price:     fp(60),
		Upfront:   &model.UpfrontPricing{PriceAfterDiscount: fp(5), BuyoutPrice: fp(200)},
		Financing: &model.FinancingPricing{PriceAfterDiscount: fp(45)},
		Addons:    []model.Addon{{Name: "Protection", Price: 15}},
	}

	rows := ComparePlanPrices([]model.GroupCatalog{groupWithPlan("A", "Group A", plan)}, SortNone, "")["p1"]
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Group A", row.GroupName)
	assert.Equal(t, "60", row.PlanData)
	assert.Equal(t, 5.0, *row.UpfrontPrice)
	assert.Equal(t, 200.0, *row.BuyoutPrice)
	assert.Equal(t, 45.0, *row.FinancingPrice)
	assert.Equal(t, 60.0, *row.MonthlyPrice)
	require.Len(t, row.Addons, 1)
}

func TestComparePlanPrices_SkipsGroupsWithoutModels(t *testing.T) {
	groups := []model.GroupCatalog{
		{GroupID: "A", Phones: nil},
		{GroupID: "B", Phones: []model.Phone{{Slug: "x-phone"}}},
	}
	assert.Empty(t, ComparePlanPrices(groups, SortNone, ""))
}

func TestTotalCosts(t *testing.T) {
	upfront, financing := TotalCosts(fp(5), fp(200), fp(45), fp(60), 24)
	require.NotNil(t, upfront)
	require.NotNil(t, financing)
	// 5*24 + 200 - 60*24 and 45*24 - 60*24.
	assert.Equal(t, -1120.0, *upfront)
	assert.Equal(t, -360.0, *financing)
}

func TestTotalCosts_MissingInput(t *testing.T) {
	upfront, financing := TotalCosts(fp(5), nil, fp(45), fp(60), 24)
	assert.Nil(t, upfront)
	assert.Nil(t, financing)
}

func TestTotalCosts_Rounding(t *testing.T) {
	upfront, _ := TotalCosts(fp(5.555), fp(0.004), fp(1), fp(1), 1)
	assert.Equal(t, 4.56, *upfront)
}
