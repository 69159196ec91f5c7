// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package fare computes the price of a trip from its distance and duration.
package fare

// Default fare rates in currency units.
const (
	DefaultBase      = 3.0
	DefaultPerKm     = 1.0
	DefaultPerMinute = 0.5
)

// Calculator holds the fare rates. The zero value prices everything at zero,
// construct it with NewCalculator or fill the rates from configuration.
type Calculator struct {
	Base      float64
	PerKm     float64
	PerMinute float64
}

// NewCalculator returns a Calculator with the default rates.
func NewCalculator() Calculator {
	return Calculator{
		Base:      DefaultBase,
		PerKm:     DefaultPerKm,
		PerMinute: DefaultPerMinute,
	}
}

// Estimate maps a distance in meters and a duration in seconds to a fare. It is
// pure and monotonically non-decreasing in both inputs. No rounding happens here,
// presentation formatting is the caller's concern.
func (c Calculator) Estimate(distanceMeters, durationSeconds float64) float64 {
	return c.Base + distanceMeters/1000*c.PerKm + durationSeconds/60*c.PerMinute
}
