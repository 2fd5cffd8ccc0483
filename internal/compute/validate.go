// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compute

import (
	"math"
	"slices"
	"time"

	"github.com/pdiddy/skyquery/internal/astro"
	"github.com/pdiddy/skyquery/pkg/types"
)

const (
	// MaxEphemerisPoints caps the length of one ephemeris series.
	MaxEphemerisPoints = 1000

	// MaxPhenomenaSpan bounds a phenomena search window.
	MaxPhenomenaSpan = 2 * 366 * 24 * time.Hour

	// DefaultConjunctionSeparation applies when a phenomena request leaves
	// MaxSeparation at zero.
	DefaultConjunctionSeparation = 5.0
)

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validateObserver(o types.Observer) error {
	if !finite(o.Latitude, o.Longitude, o.Elevation) {
		return invalid("observer", "coordinates must be finite numbers", "")
	}
	if o.Latitude < -90 || o.Latitude > 90 {
		return invalid("observer.latitude", "must be within [-90, 90]", "latitude is degrees north of the equator")
	}
	if o.Longitude < -180 || o.Longitude > 360 {
		return invalid("observer.longitude", "must be within [-180, 360]", "longitude is degrees east of Greenwich")
	}
	return nil
}

func validatePosition(ra, dec float64) error {
	if !finite(ra, dec) {
		return invalid("position", "ra and dec must be finite numbers", "")
	}
	if ra < 0 || ra >= 360 {
		return invalid("ra", "must be within [0, 360)", "right ascension is in degrees, not hours")
	}
	if dec < -90 || dec > 90 {
		return invalid("dec", "must be within [-90, 90]", "")
	}
	return nil
}

func validateTime(field string, t time.Time) error {
	if t.IsZero() {
		return invalid(field, "is required", "")
	}
	return nil
}

// checkBody reports UnsupportedBodyError for bodies without an in-process
// model. Custom is checked separately.
func checkBody(b types.Body, kind types.BackendKind) error {
	switch {
	case b == types.BodySun, b == types.BodyMoon, astro.HasPlanet(b):
		return nil
	}
	return &UnsupportedBodyError{Body: b, Backend: kind}
}

func validateCoordinates(req types.CoordinatesRequest) error {
	if err := validateObserver(req.Observer); err != nil {
		return err
	}
	if err := validateTime("time", req.Time); err != nil {
		return err
	}
	return validatePosition(req.RA, req.Dec)
}

// normalizeEphemeris validates req and clamps Steps to MaxEphemerisPoints.
// Whether a backend models the body is left to the backend.
func normalizeEphemeris(req types.EphemerisRequest) (types.EphemerisRequest, error) {
	if err := validateObserver(req.Observer); err != nil {
		return req, err
	}
	if err := validateTime("start", req.Start); err != nil {
		return req, err
	}
	if req.Steps < 1 {
		return req, invalid("steps", "must be at least 1", "")
	}
	if req.Steps > 1 && req.Step <= 0 {
		return req, invalid("step", "must be positive when more than one point is requested", "")
	}
	req.Steps = min(req.Steps, MaxEphemerisPoints)

	if req.Body == types.BodyCustom {
		if req.RA == nil || req.Dec == nil {
			return req, invalid("body", "Custom target requires ra and dec",
				"pass the target's J2000 RA and Dec in degrees")
		}
		return req, validatePosition(*req.RA, *req.Dec)
	}
	if req.Body == "" {
		return req, invalid("body", "is required", "")
	}
	return req, nil
}

func validateRiseTransitSet(req types.RiseTransitSetRequest) error {
	if err := validateObserver(req.Observer); err != nil {
		return err
	}
	if err := validateTime("time", req.Time); err != nil {
		return err
	}
	if err := validatePosition(req.RA, req.Dec); err != nil {
		return err
	}
	if !finite(req.MinAltitude) || req.MinAltitude < -90 || req.MinAltitude > 90 {
		return invalid("min_altitude", "must be within [-90, 90]", "")
	}
	return nil
}

// normalizePhenomena validates req and fills the default body list and
// separation.
func normalizePhenomena(req types.PhenomenaRequest) (types.PhenomenaRequest, error) {
	if err := validateObserver(req.Observer); err != nil {
		return req, err
	}
	if err := validateTime("start", req.Start); err != nil {
		return req, err
	}
	if err := validateTime("end", req.End); err != nil {
		return req, err
	}
	if req.End.Before(req.Start) {
		return req, invalid("end", "must not be before start", "")
	}
	if req.End.Sub(req.Start) > MaxPhenomenaSpan {
		return req, invalid("end", "search window exceeds two years", "split the range into smaller searches")
	}
	if req.MaxSeparation < 0 || !finite(req.MaxSeparation) {
		return req, invalid("max_separation", "must be a non-negative number of degrees", "")
	}
	if req.MaxSeparation == 0 {
		req.MaxSeparation = DefaultConjunctionSeparation
	}
	if len(req.Bodies) == 0 {
		req.Bodies = slices.Clone(types.Planets)
	}
	return req, nil
}

func validateAlmanac(req types.AlmanacRequest) error {
	if err := validateObserver(req.Observer); err != nil {
		return err
	}
	return validateTime("date", req.Date)
}
