package booking

import (
	"math"
	"time"
)

// BillableHours returns the number of whole hours charged for the
// window, rounding any started hour up. A zero or negative window
// yields zero, which callers reject before pricing.
func BillableHours(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours()))
}

// TotalAmount prices the window against the spot's hourly rate. The
// rate is snapshotted onto the booking at creation time and never
// re-read.
func TotalAmount(start, end time.Time, pricePerHour float64) float64 {
	return float64(BillableHours(start, end)) * pricePerHour
}
