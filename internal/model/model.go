package model

import "time"

// GroupRef is a pricing group reference as it appears on a company record.
type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Company represents an organization discovered via the name-search endpoint.
// Discovery returns a summary (no groups); enrichment replaces the record
// wholesale with the full detail, which includes the groups list.
type Company struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Groups []GroupRef `json:"groups,omitempty"`
}

// Group is the registry form of a pricing group: identity, display name, and
// the sorted, deduplicated names of every company that references it.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Companies []string `json:"companies"`
}

// Addon is an optional plan extra.
type Addon struct {
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	IsFree bool    `json:"isFree"`
}

// UpfrontPricing holds the buy-upfront option for a plan. Either field may be
// absent in provider responses; nil means unknown, not zero.
type UpfrontPricing struct {
	PriceAfterDiscount *float64 `json:"priceAfterDiscount"`
	BuyoutPrice        *float64 `json:"buyoutPrice"`
}

// FinancingPricing holds the financing option for a plan.
type FinancingPricing struct {
	PriceAfterDiscount *float64 `json:"priceAfterDiscount"`
}

// Plan is a rate plan offered for a specific phone model. Identity is ID,
// scoped to the model it appears under.
type Plan struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Data      string            `json:"data,omitempty"`
	Price     *float64          `json:"price"`
	Upfront   *UpfrontPricing   `json:"upfront,omitempty"`
	Financing *FinancingPricing `json:"financing,omitempty"`
	Addons    []Addon           `json:"addons"`
}

// PhoneModel is a storage variant of a phone. Within one phone at most one
// model exists per distinct storage value.
type PhoneModel struct {
	ID      string `json:"id,omitempty"`
	Storage int    `json:"storage"`
	Plans   []Plan `json:"plans,omitempty"`
}

// Phone is a device record. The list endpoint returns summaries (no models);
// the detail endpoint returns models with group-scoped plan pricing.
type Phone struct {
	ID     string       `json:"id,omitempty"`
	Slug   string       `json:"slug"`
	Brand  string       `json:"brand"`
	Name   string       `json:"name"`
	Models []PhoneModel `json:"models,omitempty"`
}

// GroupCatalog is one group's slice of the harvested corpus: the companies
// that belong to the group and every phone detail fetched under it.
type GroupCatalog struct {
	GroupID      string   `json:"groupId"`
	CompanyGroup string   `json:"companyGroup"`
	Companies    []string `json:"companies"`
	Phones       []Phone  `json:"phones"`
}

// Corpus is the persisted output of a harvest run.
type Corpus struct {
	CreatedAt time.Time      `json:"createdAt"`
	Groups    []GroupCatalog `json:"groups"`
}

// DisplayName returns "Brand Name" for console output.
func (p Phone) DisplayName() string {
	return p.Brand + " " + p.Name
}
