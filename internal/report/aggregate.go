package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/xybrad/o365panel/internal/graph"
)

// Directory is the slice of the Graph client the aggregator needs.
type Directory interface {
	ListUsers(ctx context.Context) ([]graph.User, error)
	UserDrive(ctx context.Context, user string) (graph.Quota, error)
}

// UserResult is the outcome of one user's drive lookup. Exactly one of
// Usage or Error is meaningful; the originating user is carried either way.
type UserResult struct {
	Success bool       `json:"success"`
	User    graph.User `json:"user"`
	Usage   *Usage     `json:"usage"`
	Error   string     `json:"error,omitempty"`
}

// Summary is the reduction over all successful drive lookups.
type Summary struct {
	TotalUsers              int     `json:"totalUsers"`
	SuccessfulQueries       int     `json:"successfulQueries"`
	FailedQueries           int     `json:"failedQueries"`
	TotalUsed               int64   `json:"totalUsed"`
	TotalCapacity           int64   `json:"totalCapacity"`
	TotalRemaining          int64   `json:"totalRemaining"`
	TotalDeleted            int64   `json:"totalDeleted"`
	TotalUsedFormatted      string  `json:"totalUsedFormatted"`
	TotalCapacityFormatted  string  `json:"totalCapacityFormatted"`
	TotalRemainingFormatted string  `json:"totalRemainingFormatted"`
	TotalDeletedFormatted   string  `json:"totalDeletedFormatted"`
	AverageUsagePercentage  float64 `json:"averageUsagePercentage"`
}

// Report pairs the summary with every per-user result.
type Report struct {
	Summary Summary      `json:"summary"`
	Users   []UserResult `json:"users"`
}

// AggregateAll lists every directory user and fetches each drive quota
// concurrently, one goroutine per user with no concurrency cap. A failed
// lookup for one user never affects another: each failure is recorded in
// that user's result and the operation still succeeds. Only a failure to
// list users fails the whole operation. The call returns once every
// lookup has settled.
func AggregateAll(ctx context.Context, dir Directory, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	users, err := dir.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	logger.Info("querying drive usage for all users", slog.Int("count", len(users)))

	results := make([]UserResult, len(users))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range users {
		i, u := i, u
		g.Go(func() error {
			quota, driveErr := dir.UserDrive(gctx, u.ID)
			if driveErr != nil {
				logger.Warn("drive lookup failed",
					slog.String("user", u.PrincipalName),
					slog.String("error", driveErr.Error()),
				)

				results[i] = UserResult{User: u, Error: failureReason(driveErr)}

				return nil
			}

			usage := NewUsage(quota)
			results[i] = UserResult{Success: true, User: u, Usage: &usage}

			return nil
		})
	}

	// Every goroutine returns nil; Wait is only a join point.
	_ = g.Wait()

	return &Report{
		Summary: summarize(results),
		Users:   results,
	}, nil
}

// summarize reduces per-user results into totals. Sums and the average
// cover successes only; the average is the arithmetic mean of per-user
// percentages, not capacity-weighted.
func summarize(results []UserResult) Summary {
	s := Summary{TotalUsers: len(results)}

	var pctSum float64

	for i := range results {
		r := &results[i]
		if !r.Success {
			s.FailedQueries++
			continue
		}

		s.SuccessfulQueries++
		s.TotalUsed += r.Usage.Used
		s.TotalCapacity += r.Usage.Total
		s.TotalRemaining += r.Usage.Remaining
		s.TotalDeleted += r.Usage.Deleted
		pctSum += r.Usage.UsedPercentage
	}

	if s.SuccessfulQueries > 0 {
		s.AverageUsagePercentage = math.Round(pctSum/float64(s.SuccessfulQueries)*100) / 100
	}

	s.TotalUsedFormatted = FormatBytes(s.TotalUsed)
	s.TotalCapacityFormatted = FormatBytes(s.TotalCapacity)
	s.TotalRemainingFormatted = FormatBytes(s.TotalRemaining)
	s.TotalDeletedFormatted = FormatBytes(s.TotalDeleted)

	return s
}

// failureReason maps a drive lookup error to the short reason recorded in
// the per-user result.
func failureReason(err error) string {
	switch {
	case errors.Is(err, graph.ErrNotFound):
		return "OneDrive不存在"
	case errors.Is(err, graph.ErrForbidden):
		return "权限不足"
	default:
		return "查询失败"
	}
}
