package utils

import (
	"strings"
	"testing"
	"time"

	"smartpark/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBookingQR(t *testing.T) {
	out, err := EncodeBookingQR(models.QRPayload{
		BookingID:     "b-1",
		SpotNumber:    "A-101",
		VehicleNumber: "KA-01-AB-1234",
		StartTime:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "data:image/png;base64,"))
	assert.Greater(t, len(out), len("data:image/png;base64,"))
}
