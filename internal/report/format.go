// Package report builds the tenant-wide OneDrive usage report: a
// concurrent fan-out over every directory user, reduced into a summary,
// with byte counts rendered human-readable.
package report

import (
	"math"
	"strconv"

	"github.com/xybrad/o365panel/internal/graph"
)

// sizeUnits are the base-1024 unit labels, smallest first.
var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders a byte count with base-1024 units, the scaled value
// rounded to two decimals with trailing zeros trimmed: "0 Bytes", "1 KB",
// "1.5 KB".
func FormatBytes(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	v := math.Round(float64(n)/math.Pow(1024, float64(i))*100) / 100

	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// Usage is one user's quota with formatted byte counts alongside the raw
// numbers, the shape the front-end renders.
type Usage struct {
	Used               int64   `json:"used"`
	Total              int64   `json:"total"`
	Remaining          int64   `json:"remaining"`
	Deleted            int64   `json:"deleted"`
	State              string  `json:"state"`
	UsedPercentage     float64 `json:"usedPercentage"`
	UsedFormatted      string  `json:"usedFormatted"`
	TotalFormatted     string  `json:"totalFormatted"`
	RemainingFormatted string  `json:"remainingFormatted"`
	DeletedFormatted   string  `json:"deletedFormatted"`
}

// NewUsage formats a quota for presentation.
func NewUsage(q graph.Quota) Usage {
	return Usage{
		Used:               q.Used,
		Total:              q.Total,
		Remaining:          q.Remaining,
		Deleted:            q.Deleted,
		State:              q.State,
		UsedPercentage:     q.UsedPercentage,
		UsedFormatted:      FormatBytes(q.Used),
		TotalFormatted:     FormatBytes(q.Total),
		RemainingFormatted: FormatBytes(q.Remaining),
		DeletedFormatted:   FormatBytes(q.Deleted),
	}
}
