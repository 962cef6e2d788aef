// Package rpp wraps the Red Wireless RPP partner-pricing API. The provider
// exposes no bulk company listing, only a name-search endpoint plus per-id
// and per-slug detail endpoints; the harvest pipeline works around that.
package rpp

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/djraval/redwireless-scraper/internal/config"
	"github.com/djraval/redwireless-scraper/internal/fetcher"
	"github.com/djraval/redwireless-scraper/internal/model"
)

const defaultBaseURL = "https://api.redwireless.ca/rpp"

// Client performs calls against the RPP API.
type Client interface {
	// SearchCompanies returns company summaries whose names match the term.
	SearchCompanies(ctx context.Context, term string) ([]model.Company, error)

	// GetCompany returns the full company record, including its groups.
	GetCompany(ctx context.Context, id string) (*model.Company, error)

	// ListPhones returns the group-independent master list of phones.
	ListPhones(ctx context.Context) ([]model.Phone, error)

	// GetPhoneDetail returns group-scoped models and plan pricing for a phone.
	GetPhoneDetail(ctx context.Context, slug, groupID string) (*model.Phone, error)

	// ListAddons returns the add-ons available for one plan of one model.
	ListAddons(ctx context.Context, groupID, phoneID, modelID, planID string) ([]model.Addon, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

type httpClient struct {
	fetch        fetcher.JSONGetter
	baseURL      string
	province     string
	customerType string
	customerLine string
}

// NewClient creates an RPP client over the given fetcher.
func NewClient(fetch fetcher.JSONGetter, cfg config.APIConfig, opts ...Option) Client {
	c := &httpClient{
		fetch:        fetch,
		baseURL:      cfg.BaseURL,
		province:     cfg.Province,
		customerType: cfg.CustomerType,
		customerLine: cfg.CustomerLine,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sessionParams returns the fixed query parameters every pricing call carries.
func (c *httpClient) sessionParams() url.Values {
	return url.Values{
		"province":     {c.province},
		"customerLine": {c.customerLine},
		"isSalesRep":   {strconv.FormatBool(false)},
	}
}

func (c *httpClient) SearchCompanies(ctx context.Context, term string) ([]model.Company, error) {
	var companies []model.Company
	params := url.Values{"name": {term}}
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/companies/list", params, &companies); err != nil {
		return nil, eris.Wrapf(err, "rpp: search companies for term %q", term)
	}
	return companies, nil
}

func (c *httpClient) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	var company model.Company
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/companies/get/"+url.PathEscape(id), nil, &company); err != nil {
		return nil, eris.Wrapf(err, "rpp: get company %s", id)
	}
	return &company, nil
}

// phoneListResponse is the envelope returned by phones/list.
type phoneListResponse struct {
	Phones []model.Phone `json:"phones"`
}

func (c *httpClient) ListPhones(ctx context.Context) ([]model.Phone, error) {
	var resp phoneListResponse
	params := c.sessionParams()
	params.Set("companyId", "")
	params.Set("companyGroupsIds", "")
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/phones/list", params, &resp); err != nil {
		return nil, eris.Wrap(err, "rpp: list phones")
	}
	return resp.Phones, nil
}

func (c *httpClient) GetPhoneDetail(ctx context.Context, slug, groupID string) (*model.Phone, error) {
	var phone model.Phone
	params := c.sessionParams()
	params.Set("slug", slug)
	params.Set("companyGroupsIds", groupID)
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/phones/detail", params, &phone); err != nil {
		return nil, eris.Wrapf(err, "rpp: phone detail for %s, group %s", slug, groupID)
	}
	return &phone, nil
}

func (c *httpClient) ListAddons(ctx context.Context, groupID, phoneID, modelID, planID string) ([]model.Addon, error) {
	var addons []model.Addon
	params := c.sessionParams()
	params.Set("companyId", "")
	params.Set("companyGroupsIds", groupID)
	params.Set("customerType", c.customerType)
	params.Set("phoneId", phoneID)
	params.Set("phoneModelId", modelID)
	params.Set("planId", planID)
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/addons/list", params, &addons); err != nil {
		return nil, eris.Wrapf(err, "rpp: list addons for plan %s", planID)
	}
	return addons, nil
}
