package avwx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCelsiusToFahrenheit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 32, CelsiusToFahrenheit(0))
	assert.Equal(t, 80, CelsiusToFahrenheit(27))
	assert.Equal(t, 23, CelsiusToFahrenheit(-5))
}

func TestSpeedConversions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, MetersPerSecondToKnots(5))
	assert.Equal(t, 19, MetersPerSecondToKnots(10))
	assert.Equal(t, 5, KilometersPerHourToKnots(10))
	assert.Equal(t, 0, MetersPerSecondToKnots(0))
}

func TestPressureConversions(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1013.2, InHgToMillibars(29.92), 0.1)
	assert.InDelta(t, 29.92, HectopascalsToInHg(1013.25), 0.01)
}

func TestReceiptAgeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(just now)", ReceiptAgeString(time.Now()))
	assert.Equal(t, "(5 minutes ago)", ReceiptAgeString(time.Now().Add(-5*time.Minute)))
	assert.Equal(t, "(2 hours ago)", ReceiptAgeString(time.Now().Add(-2*time.Hour)))
	assert.Equal(t, "(3 days ago)", ReceiptAgeString(time.Now().Add(-72*time.Hour)))
}
