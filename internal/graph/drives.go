package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
)

// driveResponse mirrors the Graph API drive JSON response, quota facet only.
type driveResponse struct {
	Quota struct {
		Total     int64  `json:"total"`
		Remaining int64  `json:"remaining"`
		Deleted   int64  `json:"deleted"`
		State     string `json:"state"`
	} `json:"quota"`
}

// toQuota normalizes the quota facet: used is derived from total minus
// remaining, the percentage guards division by zero, and missing state
// defaults to "unknown".
func (d *driveResponse) toQuota() Quota {
	q := Quota{
		Used:      d.Quota.Total - d.Quota.Remaining,
		Total:     d.Quota.Total,
		Remaining: d.Quota.Remaining,
		Deleted:   d.Quota.Deleted,
		State:     d.Quota.State,
	}

	if q.State == "" {
		q.State = "unknown"
	}

	if q.Total > 0 {
		q.UsedPercentage = round2(float64(q.Used) / float64(q.Total) * 100)
	}

	return q
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UserDrive returns the drive quota for one user, identified by email or
// object ID. ErrNotFound means no drive is provisioned for the user.
func (c *Client) UserDrive(ctx context.Context, user string) (Quota, error) {
	path := fmt.Sprintf("/users/%s/drive", url.PathEscape(user))

	resp, err := c.Do(ctx, http.MethodGet, path)
	if err != nil {
		return Quota{}, err
	}
	defer resp.Body.Close()

	var dr driveResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return Quota{}, fmt.Errorf("graph: decoding drive response: %w", err)
	}

	quota := dr.toQuota()

	c.logger.Debug("fetched drive quota",
		slog.String("user", user),
		slog.Int64("used", quota.Used),
		slog.Int64("total", quota.Total),
	)

	return quota, nil
}
