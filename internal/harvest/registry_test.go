package harvest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djraval/redwireless-scraper/internal/model"
)

func TestBuildGroups_UniquePerID(t *testing.T) {
	companies := []model.Company{
		{ID: "c1", Name: "Acme", Groups: []model.GroupRef{{ID: "g1", Name: "Group One"}}},
		{ID: "c2", Name: "Beta", Groups: []model.GroupRef{{ID: "g1", Name: "Group One"}, {ID: "g2", Name: "Group Two"}}},
		{ID: "c3", Name: "Gamma", Groups: []model.GroupRef{{ID: "g2", Name: "Group Two"}}},
	}

	groups := BuildGroups(companies)
	require.Len(t, groups, 2)

	assert.Equal(t, "g1", groups[0].ID)
	assert.Equal(t, "Group One", groups[0].Name)
	assert.Equal(t, []string{"Acme", "Beta"}, groups[0].Companies)

	assert.Equal(t, "g2", groups[1].ID)
	assert.Equal(t, []string{"Beta", "Gamma"}, groups[1].Companies)
}

func TestBuildGroups_DuplicateNamesCollapse(t *testing.T) {
	// Two distinct companies with the same name string count once.
	companies := []model.Company{
		{ID: "c1", Name: "Acme", Groups: []model.GroupRef{{ID: "g1", Name: "Group One"}}},
		{ID: "c2", Name: "Acme", Groups: []model.GroupRef{{ID: "g1", Name: "Group One"}}},
	}

	groups := BuildGroups(companies)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"Acme"}, groups[0].Companies)
}

func TestBuildGroups_CompanyEnrichedTwice(t *testing.T) {
	c := model.Company{ID: "c1", Name: "Acme", Groups: []model.GroupRef{{ID: "g1", Name: "Group One"}}}

	groups := BuildGroups([]model.Company{c, c})
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"Acme"}, groups[0].Companies)
}

func TestBuildGroups_NoGroups(t *testing.T) {
	groups := BuildGroups([]model.Company{{ID: "c1", Name: "Acme"}})
	assert.Empty(t, groups)
}
