package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBillableHours(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exact hour", base.Add(time.Hour), 1},
		{"exact two hours", base.Add(2 * time.Hour), 2},
		{"started hour rounds up", base.Add(2*time.Hour + 30*time.Minute), 3},
		{"one minute rounds up", base.Add(time.Minute), 1},
		{"zero duration", base, 0},
		{"negative duration", base.Add(-time.Hour), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BillableHours(base, tc.end))
		})
	}
}

func TestTotalAmount(t *testing.T) {
	// Rate 50, window 10:00-12:30 -> 3 hours -> 150.
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, float64(150), TotalAmount(start, end, 50))
}
