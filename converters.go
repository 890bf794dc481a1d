package avwx

import (
	"fmt"
	"math"
	"time"
)

// CelsiusToFahrenheit converts temperature from Celsius to Fahrenheit.
func CelsiusToFahrenheit(celsius int) int {
	return (celsius * 9 / 5) + 32
}

// MetersPerSecondToKnots converts a wind speed from meters per second to
// whole knots.
func MetersPerSecondToKnots(mps int) int {
	return int(math.Round(float64(mps) * 1.94384))
}

// KilometersPerHourToKnots converts a wind speed from kilometers per hour to
// whole knots.
func KilometersPerHourToKnots(kmh int) int {
	return int(math.Round(float64(kmh) * 0.539957))
}

// InHgToMillibars converts pressure from inches of mercury to millibars (hPa).
func InHgToMillibars(inHg float64) float64 {
	return inHg * 33.8639
}

// HectopascalsToInHg converts pressure from hectopascals to inches of mercury.
func HectopascalsToInHg(hPa float64) float64 {
	return hPa / 33.8639
}

// ReceiptAgeString renders how long ago a report was received, for display
// next to the receipt timestamp.
func ReceiptAgeString(t time.Time) string {
	minutes := int(time.Since(t).Minutes())

	switch {
	case minutes < 0:
		return "(in the future)"
	case minutes < 1:
		return "(just now)"
	case minutes < 60:
		return fmt.Sprintf("(%d minutes ago)", minutes)
	case minutes < 1440:
		hours := minutes / 60
		mins := minutes % 60
		if mins == 0 {
			return fmt.Sprintf("(%d hours ago)", hours)
		}
		return fmt.Sprintf("(%d hours, %d minutes ago)", hours, mins)
	default:
		days := minutes / 1440
		hours := (minutes % 1440) / 60
		if hours == 0 {
			return fmt.Sprintf("(%d days ago)", days)
		}
		return fmt.Sprintf("(%d days, %d hours ago)", days, hours)
	}
}
