package harvest

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/djraval/redwireless-scraper/internal/model"
)

// mockClient implements rpp.Client with overridable functions.
type mockClient struct {
	searchFn      func(ctx context.Context, term string) ([]model.Company, error)
	getCompanyFn  func(ctx context.Context, id string) (*model.Company, error)
	listPhonesFn  func(ctx context.Context) ([]model.Phone, error)
	phoneDetailFn func(ctx context.Context, slug, groupID string) (*model.Phone, error)
	listAddonsFn  func(ctx context.Context, groupID, phoneID, modelID, planID string) ([]model.Addon, error)
}

func (m *mockClient) SearchCompanies(ctx context.Context, term string) ([]model.Company, error) {
	if m.searchFn == nil {
		return nil, nil
	}
	return m.searchFn(ctx, term)
}

func (m *mockClient) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	if m.getCompanyFn == nil {
		return nil, eris.Errorf("unexpected GetCompany(%s)", id)
	}
	return m.getCompanyFn(ctx, id)
}

func (m *mockClient) ListPhones(ctx context.Context) ([]model.Phone, error) {
	if m.listPhonesFn == nil {
		return nil, eris.New("unexpected ListPhones")
	}
	return m.listPhonesFn(ctx)
}

func (m *mockClient) GetPhoneDetail(ctx context.Context, slug, groupID string) (*model.Phone, error) {
	if m.phoneDetailFn == nil {
		return nil, eris.Errorf("unexpected GetPhoneDetail(%s, %s)", slug, groupID)
	}
	return m.phoneDetailFn(ctx, slug, groupID)
}

func (m *mockClient) ListAddons(ctx context.Context, groupID, phoneID, modelID, planID string) ([]model.Addon, error) {
	if m.listAddonsFn == nil {
		return []model.Addon{}, nil
	}
	return m.listAddonsFn(ctx, groupID, phoneID, modelID, planID)
}
