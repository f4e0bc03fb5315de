package graph

// User represents a directory user, normalized from the Graph API response.
// Callers never see raw API data. JSON tags match the shape the HTTP
// surface returns to the front-end.
type User struct {
	ID             string `json:"id"`
	PrincipalName  string `json:"userPrincipalName"`
	DisplayName    string `json:"displayName"`
	AccountEnabled bool   `json:"accountEnabled"`
}

// ServicePlan is an individual capability within a SKU.
type ServicePlan struct {
	ID                 string `json:"servicePlanId"`
	Name               string `json:"servicePlanName"`
	ProvisioningStatus string `json:"provisioningStatus"`
}

// License is one assigned license detail for a user.
type License struct {
	SkuID         string        `json:"skuId"`
	SkuPartNumber string        `json:"skuPartNumber"`
	ServicePlans  []ServicePlan `json:"servicePlans"`
}

// PrepaidUnits breaks down the purchased units of a SKU by state.
type PrepaidUnits struct {
	Enabled   int `json:"enabled"`
	Suspended int `json:"suspended"`
	Warning   int `json:"warning"`
}

// Sku is a tenant-wide subscribed SKU.
type Sku struct {
	SkuID            string       `json:"skuId"`
	SkuPartNumber    string       `json:"skuPartNumber"`
	CapabilityStatus string       `json:"capabilityStatus"`
	ConsumedUnits    int          `json:"consumedUnits"`
	PrepaidUnits     PrepaidUnits `json:"prepaidUnits"`
}

// Quota is the storage accounting for one user's drive.
// Used is derived: total minus remaining. UsedPercentage is rounded to two
// decimals and 0 when Total is 0.
type Quota struct {
	Used           int64   `json:"used"`
	Total          int64   `json:"total"`
	Remaining      int64   `json:"remaining"`
	Deleted        int64   `json:"deleted"`
	State          string  `json:"state"`
	UsedPercentage float64 `json:"usedPercentage"`
}
