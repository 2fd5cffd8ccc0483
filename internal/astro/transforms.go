// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package astro

import (
	"math"

	"github.com/pdiddy/skyquery/pkg/types"
)

// IAU 1958 galactic pole and origin, J2000 equatorial basis.
var eqToGal = [3][3]float64{
	{-0.0548755604162154, -0.873437090234885, -0.4838350155487132},
	{0.4941094278755837, -0.4448296299600112, 0.7469822444972189},
	{-0.8676661490190047, -0.1980763734312015, 0.4559837761750669},
}

// EquatorialToHorizontal converts RA/Dec to altitude/azimuth for an observer
// latitude and local sidereal time. When refraction is set the Bennett
// correction is added to the geometric altitude.
func EquatorialToHorizontal(ra, dec, lat, lst float64, refraction bool) types.HorizontalCoords {
	ha := HourAngle(lst, ra) * rad
	sinDec, cosDec := math.Sincos(dec * rad)
	sinLat, cosLat := math.Sincos(lat * rad)

	sinAlt := clamp(sinDec*sinLat+cosDec*cosLat*math.Cos(ha), -1, 1)
	alt := math.Asin(sinAlt)

	az := 0.0
	if den := math.Cos(alt) * cosLat; math.Abs(den) > 1e-12 {
		az = math.Acos(clamp((sinDec-sinAlt*sinLat)/den, -1, 1))
		if math.Sin(ha) > 0 {
			az = 2*math.Pi - az
		}
	}

	altDeg := alt / rad
	if refraction {
		altDeg += Refraction(altDeg)
	}
	return types.HorizontalCoords{Altitude: altDeg, Azimuth: Normalize(az / rad)}
}

// HorizontalToEquatorial inverts EquatorialToHorizontal for a geometric
// (unrefracted) altitude.
func HorizontalToEquatorial(alt, az, lat, lst float64) types.EquatorialCoords {
	sinAlt, cosAlt := math.Sincos(alt * rad)
	sinLat, cosLat := math.Sincos(lat * rad)
	sinAz, cosAz := math.Sincos(az * rad)

	sinDec := clamp(sinAlt*sinLat+cosAlt*cosLat*cosAz, -1, 1)
	dec := math.Asin(sinDec)

	ha := 0.0
	if den := math.Cos(dec) * cosLat; math.Abs(den) > 1e-12 {
		ha = math.Acos(clamp((sinAlt-sinLat*sinDec)/den, -1, 1))
		if sinAz > 0 {
			ha = 2*math.Pi - ha
		}
	}
	return types.EquatorialCoords{RA: Normalize(lst - ha/rad), Dec: dec / rad}
}

// Refraction is Bennett's formula in degrees for an apparent altitude.
// Objects more than a degree below the horizon get no correction.
func Refraction(alt float64) float64 {
	if alt < -1 {
		return 0
	}
	alt = math.Max(alt, 0)
	arcmin := 1 / math.Tan((alt+7.31/(alt+4.4))*rad)
	return arcmin / 60
}

// EquatorialToGalactic converts J2000 RA/Dec to galactic l/b.
func EquatorialToGalactic(ra, dec float64) types.GalacticCoords {
	v := unitVector(ra, dec)
	g := multiply(eqToGal, v, false)
	return types.GalacticCoords{
		L: Normalize(math.Atan2(g[1], g[0]) / rad),
		B: math.Asin(clamp(g[2], -1, 1)) / rad,
	}
}

// GalacticToEquatorial converts galactic l/b to J2000 RA/Dec.
func GalacticToEquatorial(l, b float64) types.EquatorialCoords {
	v := unitVector(l, b)
	e := multiply(eqToGal, v, true)
	return types.EquatorialCoords{
		RA:  Normalize(math.Atan2(e[1], e[0]) / rad),
		Dec: math.Asin(clamp(e[2], -1, 1)) / rad,
	}
}

// EquatorialToEcliptic converts RA/Dec to ecliptic lon/lat for obliquity eps.
func EquatorialToEcliptic(ra, dec, eps float64) types.EclipticCoords {
	sinRA, cosRA := math.Sincos(ra * rad)
	sinDec, cosDec := math.Sincos(dec * rad)
	sinEps, cosEps := math.Sincos(eps * rad)

	sinLat := clamp(sinDec*cosEps-cosDec*sinEps*sinRA, -1, 1)
	lon := math.Atan2(sinRA*cosEps+math.Tan(dec*rad)*sinEps, cosRA)
	return types.EclipticCoords{Lon: Normalize(lon / rad), Lat: math.Asin(sinLat) / rad}
}

// EclipticToEquatorial converts ecliptic lon/lat to RA/Dec for obliquity eps.
func EclipticToEquatorial(lon, lat, eps float64) types.EquatorialCoords {
	sinLon, cosLon := math.Sincos(lon * rad)
	sinLat, cosLat := math.Sincos(lat * rad)
	sinEps, cosEps := math.Sincos(eps * rad)

	sinDec := clamp(sinLat*cosEps+cosLat*sinEps*sinLon, -1, 1)
	ra := math.Atan2(sinLon*cosEps-math.Tan(lat*rad)*sinEps, cosLon)
	return types.EquatorialCoords{RA: Normalize(ra / rad), Dec: math.Asin(sinDec) / rad}
}

func unitVector(lon, lat float64) [3]float64 {
	sinLon, cosLon := math.Sincos(lon * rad)
	sinLat, cosLat := math.Sincos(lat * rad)
	return [3]float64{cosLat * cosLon, cosLat * sinLon, sinLat}
}

// multiply returns m·v, or mᵀ·v when transpose is set. The rotation is
// orthonormal so the transpose is its inverse.
func multiply(m [3][3]float64, v [3]float64, transpose bool) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if transpose {
				out[i] += m[j][i] * v[j]
			} else {
				out[i] += m[i][j] * v[j]
			}
		}
	}
	return out
}
