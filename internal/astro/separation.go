// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import "math"

// Separation returns the great-circle distance in degrees between two
// RA/Dec positions using the spherical law of cosines.
func Separation(ra1, dec1, ra2, dec2 float64) float64 {
	sin1, cos1 := math.Sincos(dec1 * rad)
	sin2, cos2 := math.Sincos(dec2 * rad)
	c := sin1*sin2 + cos1*cos2*math.Cos((ra1-ra2)*rad)
	return math.Acos(clamp(c, -1, 1)) / rad
}

// Haversine returns the great-circle distance in degrees. It stays accurate
// at arcsecond scales, where Separation loses precision.
func Haversine(ra1, dec1, ra2, dec2 float64) float64 {
	dDec := (dec2 - dec1) * rad
	dRA := (ra2 - ra1) * rad
	h := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1*rad)*math.Cos(dec2*rad)*math.Sin(dRA/2)*math.Sin(dRA/2)
	return 2 * math.Asin(math.Sqrt(clamp(h, 0, 1))) / rad
}

// HaversineArcsec is Haversine in arcseconds.
func HaversineArcsec(ra1, dec1, ra2, dec2 float64) float64 {
	return Haversine(ra1, dec1, ra2, dec2) * 3600
}
