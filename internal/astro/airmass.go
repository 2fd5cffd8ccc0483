// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import "math"

// Airmass returns the Kasten-Young (1989) relative air mass for an apparent
// altitude. ok is false at or below the horizon.
func Airmass(alt float64) (float64, bool) {
	if alt <= 0 {
		return 0, false
	}
	z := 90 - alt
	return 1 / (math.Cos(z*rad) + 0.50572*math.Pow(96.07995-z, -1.6364)), true
}
