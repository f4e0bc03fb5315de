package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xybrad/o365panel/internal/graph"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want string
	}{
		{"zero", 0, "0 Bytes"},
		{"small", 512, "512 Bytes"},
		{"one kb", 1024, "1 KB"},
		{"one and a half kb", 1536, "1.5 KB"},
		{"rounds to two decimals", 1234, "1.21 KB"},
		{"one mb", 1024 * 1024, "1 MB"},
		{"one gb", 1024 * 1024 * 1024, "1 GB"},
		{"one tb", 1 << 40, "1 TB"},
		{"one pb", 1 << 50, "1 PB"},
		{"fractional gb", 5*(1<<30) + (1 << 29), "5.5 GB"},
		{"negative treated as empty", -1, "0 Bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.in))
		})
	}
}

func TestNewUsage(t *testing.T) {
	u := NewUsage(graph.Quota{
		Used:           512,
		Total:          1024,
		Remaining:      512,
		Deleted:        0,
		State:          "normal",
		UsedPercentage: 50,
	})

	assert.Equal(t, int64(512), u.Used)
	assert.Equal(t, "512 Bytes", u.UsedFormatted)
	assert.Equal(t, "1 KB", u.TotalFormatted)
	assert.Equal(t, "512 Bytes", u.RemainingFormatted)
	assert.Equal(t, "0 Bytes", u.DeletedFormatted)
	assert.Equal(t, "normal", u.State)
	assert.InDelta(t, 50.0, u.UsedPercentage, 0.001)
}
