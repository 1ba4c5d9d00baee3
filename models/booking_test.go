package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	existing := Booking{
		StartTime: base,                // 10:00
		EndTime:   base.Add(2 * time.Hour), // 12:00
	}

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"starts inside existing", base.Add(time.Hour), base.Add(3 * time.Hour), true},
		{"ends inside existing", base.Add(-time.Hour), base.Add(time.Hour), true},
		{"fully contains existing", base.Add(-time.Hour), base.Add(3 * time.Hour), true},
		{"fully inside existing", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"identical window", base, base.Add(2 * time.Hour), true},
		{"adjacent after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
		{"adjacent before", base.Add(-time.Hour), base, false},
		{"disjoint after", base.Add(3 * time.Hour), base.Add(4 * time.Hour), false},
		{"disjoint before", base.Add(-2 * time.Hour), base.Add(-time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, existing.Overlaps(tc.start, tc.end))
		})
	}
}

func TestBookingIsTerminal(t *testing.T) {
	assert.False(t, (&Booking{BookingStatus: BookingActive}).IsTerminal())
	assert.True(t, (&Booking{BookingStatus: BookingCompleted}).IsTerminal())
	assert.True(t, (&Booking{BookingStatus: BookingCancelled}).IsTerminal())
	assert.True(t, (&Booking{BookingStatus: BookingNoShow}).IsTerminal())
}
