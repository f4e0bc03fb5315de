package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// userSelect lists the user fields every directory call requests.
const userSelect = "id,userPrincipalName,displayName,accountEnabled"

// listPageSize caps the single users page. Pagination continuation links
// are not followed: tenants with more users are undercounted.
const listPageSize = 999

// userResponse mirrors the Graph API user JSON response.
// Unexported — callers use User via toUser() normalization.
type userResponse struct {
	ID             string `json:"id"`
	UPN            string `json:"userPrincipalName"`
	DisplayName    string `json:"displayName"`
	AccountEnabled bool   `json:"accountEnabled"`
}

func (u *userResponse) toUser() User {
	return User{
		ID:             u.ID,
		PrincipalName:  u.UPN,
		DisplayName:    u.DisplayName,
		AccountEnabled: u.AccountEnabled,
	}
}

// usersListResponse wraps the value array from GET /users.
type usersListResponse struct {
	Value []userResponse `json:"value"`
}

// licenseResponse mirrors one entry of the licenseDetails response.
type licenseResponse struct {
	SkuID         string `json:"skuId"`
	SkuPartNumber string `json:"skuPartNumber"`
	ServicePlans  []struct {
		ServicePlanID      string `json:"servicePlanId"`
		ServicePlanName    string `json:"servicePlanName"`
		ProvisioningStatus string `json:"provisioningStatus"`
	} `json:"servicePlans"`
}

func (l *licenseResponse) toLicense() License {
	lic := License{
		SkuID:         l.SkuID,
		SkuPartNumber: l.SkuPartNumber,
		ServicePlans:  make([]ServicePlan, 0, len(l.ServicePlans)),
	}

	for _, p := range l.ServicePlans {
		lic.ServicePlans = append(lic.ServicePlans, ServicePlan{
			ID:                 p.ServicePlanID,
			Name:               p.ServicePlanName,
			ProvisioningStatus: p.ProvisioningStatus,
		})
	}

	return lic
}

type licenseListResponse struct {
	Value []licenseResponse `json:"value"`
}

// skuResponse mirrors one entry of the subscribedSkus response.
type skuResponse struct {
	SkuID            string `json:"skuId"`
	SkuPartNumber    string `json:"skuPartNumber"`
	CapabilityStatus string `json:"capabilityStatus"`
	ConsumedUnits    int    `json:"consumedUnits"`
	PrepaidUnits     struct {
		Enabled   int `json:"enabled"`
		Suspended int `json:"suspended"`
		Warning   int `json:"warning"`
	} `json:"prepaidUnits"`
}

func (s *skuResponse) toSku() Sku {
	return Sku{
		SkuID:            s.SkuID,
		SkuPartNumber:    s.SkuPartNumber,
		CapabilityStatus: s.CapabilityStatus,
		ConsumedUnits:    s.ConsumedUnits,
		PrepaidUnits: PrepaidUnits{
			Enabled:   s.PrepaidUnits.Enabled,
			Suspended: s.PrepaidUnits.Suspended,
			Warning:   s.PrepaidUnits.Warning,
		},
	}
}

type skuListResponse struct {
	Value []skuResponse `json:"value"`
}

// User returns one directory user by email or object ID.
// 404, 403, and 401 map to their sentinels; check with errors.Is.
func (c *Client) User(ctx context.Context, email string) (User, error) {
	path := fmt.Sprintf("/users/%s?$select=%s", url.PathEscape(email), url.QueryEscape(userSelect))

	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	var ur userResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return User{}, fmt.Errorf("graph: decoding user response: %w", err)
	}

	user := ur.toUser()

	c.logger.Debug("fetched user",
		slog.String("id", user.ID),
		slog.Bool("enabled", user.AccountEnabled),
	)

	return user, nil
}

// LicenseDetails returns the licenses assigned to one user.
func (c *Client) LicenseDetails(ctx context.Context, email string) ([]License, error) {
	path := fmt.Sprintf("/users/%s/licenseDetails", url.PathEscape(email))

	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var llr licenseListResponse
	if err := json.NewDecoder(resp.Body).Decode(&llr); err != nil {
		return nil, fmt.Errorf("graph: decoding license response: %w", err)
	}

	licenses := make([]License, 0, len(llr.Value))
	for i := range llr.Value {
		licenses = append(licenses, llr.Value[i].toLicense())
	}

	c.logger.Debug("fetched license details",
		slog.String("user", email),
		slog.Int("count", len(licenses)),
	)

	return licenses, nil
}

// SubscribedSkus returns the tenant-wide SKU inventory.
func (c *Client) SubscribedSkus(ctx context.Context) ([]Sku, error) {
	resp, err := c.Do(ctx, http.MethodGet, "/subscribedSkus")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var slr skuListResponse
	if err := json.NewDecoder(resp.Body).Decode(&slr); err != nil {
		return nil, fmt.Errorf("graph: decoding sku response: %w", err)
	}

	skus := make([]Sku, 0, len(slr.Value))
	for i := range slr.Value {
		skus = append(skus, slr.Value[i].toSku())
	}

	c.logger.Info("fetched subscribed skus", slog.Int("count", len(skus)))

	return skus, nil
}

// ListUsers returns the tenant's users, a single page capped at 999
// entries.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	path := fmt.Sprintf("/users?$select=%s&$top=%d", url.QueryEscape(userSelect), listPageSize)

	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ulr usersListResponse
	if err := json.NewDecoder(resp.Body).Decode(&ulr); err != nil {
		return nil, fmt.Errorf("graph: decoding users response: %w", err)
	}

	users := make([]User, 0, len(ulr.Value))
	for i := range ulr.Value {
		users = append(users, ulr.Value[i].toUser())
	}

	c.logger.Info("listed users", slog.Int("count", len(users)))

	return users, nil
}
