// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Observer is a geographic location. Longitude is positive east.
type Observer struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Elevation float64 `json:"elevation" yaml:"elevation"`
}

// Body names a solar-system body or a custom fixed coordinate.
type Body string

const (
	BodySun     Body = "Sun"
	BodyMoon    Body = "Moon"
	BodyMercury Body = "Mercury"
	BodyVenus   Body = "Venus"
	BodyMars    Body = "Mars"
	BodyJupiter Body = "Jupiter"
	BodySaturn  Body = "Saturn"
	BodyUranus  Body = "Uranus"
	BodyNeptune Body = "Neptune"
	BodyPluto   Body = "Pluto"
	BodyCustom  Body = "Custom"
)

// Planets lists the major planets in order from the Sun.
var Planets = []Body{BodyMercury, BodyVenus, BodyMars, BodyJupiter, BodySaturn, BodyUranus, BodyNeptune}

// BackendKind tags which computation backend produced a response.
type BackendKind string

const (
	BackendNative   BackendKind = "native"
	BackendFallback BackendKind = "fallback"
)

// Meta accompanies every computation response.
type Meta struct {
	Backend    BackendKind `json:"backend"`
	ComputedAt time.Time   `json:"computed_at"`
}

// EquatorialCoords are RA/Dec in degrees.
type EquatorialCoords struct {
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
}

// HorizontalCoords are altitude/azimuth in degrees; azimuth north=0, east=90.
type HorizontalCoords struct {
	Altitude float64 `json:"altitude"`
	Azimuth  float64 `json:"azimuth"`
}

// GalacticCoords are galactic longitude/latitude in degrees.
type GalacticCoords struct {
	L float64 `json:"l"`
	B float64 `json:"b"`
}

// EclipticCoords are ecliptic longitude/latitude in degrees.
type EclipticCoords struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// CoordinatesRequest asks for the frame transforms of one equatorial position.
type CoordinatesRequest struct {
	Observer Observer  `json:"observer"`
	Time     time.Time `json:"time"`
	RA       float64   `json:"ra"`
	Dec      float64   `json:"dec"`

	// ApplyRefraction defaults to true when nil.
	ApplyRefraction *bool `json:"apply_refraction,omitempty"`
}

// CoordinatesResponse holds the transformed position.
type CoordinatesResponse struct {
	Equatorial EquatorialCoords `json:"equatorial"`
	Horizontal HorizontalCoords `json:"horizontal"`
	Galactic   GalacticCoords   `json:"galactic"`
	Ecliptic   EclipticCoords   `json:"ecliptic"`
	LSTDegrees float64          `json:"lst_degrees"`
	LSTHours   float64          `json:"lst_hours"`
	HourAngle  float64          `json:"hour_angle"`
	Airmass    *float64         `json:"airmass,omitempty"`
	Meta       Meta             `json:"meta"`
}

// EphemerisRequest asks for a fixed-step time series of positions.
type EphemerisRequest struct {
	Observer Observer      `json:"observer"`
	Body     Body          `json:"body"`
	Start    time.Time     `json:"start"`
	Step     time.Duration `json:"step"`
	Steps    int           `json:"steps"`

	// RA and Dec are required when Body is BodyCustom.
	RA  *float64 `json:"ra,omitempty"`
	Dec *float64 `json:"dec,omitempty"`
}

// EphemerisPoint is one sample of an ephemeris.
type EphemerisPoint struct {
	Time     time.Time `json:"time"`
	RA       float64   `json:"ra"`
	Dec      float64   `json:"dec"`
	Altitude float64   `json:"altitude"`
	Azimuth  float64   `json:"azimuth"`

	// Distance is in AU, except for the Moon where it is in km. Zero for
	// custom coordinates.
	Distance float64 `json:"distance"`

	Magnitude     *float64 `json:"magnitude,omitempty"`
	PhaseFraction *float64 `json:"phase_fraction,omitempty"`

	// Elongation is the angular distance from the Sun in degrees.
	Elongation float64 `json:"elongation"`
}

// EphemerisResponse is the computed series.
type EphemerisResponse struct {
	Body   Body             `json:"body"`
	Points []EphemerisPoint `json:"points"`
	Meta   Meta             `json:"meta"`
}

// RiseTransitSetRequest asks for the visibility of a fixed position on the
// night containing Time.
type RiseTransitSetRequest struct {
	Observer    Observer  `json:"observer"`
	Time        time.Time `json:"time"`
	RA          float64   `json:"ra"`
	Dec         float64   `json:"dec"`
	MinAltitude float64   `json:"min_altitude"`
}

// RiseTransitSetResponse reports rise, transit and set. Rise and set are nil
// for circumpolar objects and for objects that never rise.
type RiseTransitSetResponse struct {
	RiseTime        *time.Time `json:"rise_time,omitempty"`
	TransitTime     *time.Time `json:"transit_time,omitempty"`
	SetTime         *time.Time `json:"set_time,omitempty"`
	CurrentAltitude float64    `json:"current_altitude"`
	CurrentAzimuth  float64    `json:"current_azimuth"`
	TransitAltitude float64    `json:"transit_altitude"`
	IsVisible       bool       `json:"is_visible"`
	IsCircumpolar   bool       `json:"is_circumpolar"`
	NeverRises      bool       `json:"never_rises"`
	HoursVisible    float64    `json:"hours_visible"`

	// DarkStart and DarkEnd bound astronomical darkness for the night.
	DarkStart *time.Time `json:"dark_start,omitempty"`
	DarkEnd   *time.Time `json:"dark_end,omitempty"`

	// DarkImagingHours is the overlap of visibility with astronomical darkness.
	DarkImagingHours float64 `json:"dark_imaging_hours"`

	Meta Meta `json:"meta"`
}

// PhenomenonKind classifies a sky event.
type PhenomenonKind string

const (
	PhenomenonConjunction   PhenomenonKind = "conjunction"
	PhenomenonOpposition    PhenomenonKind = "opposition"
	PhenomenonElongation    PhenomenonKind = "greatest_elongation"
	PhenomenonNewMoon       PhenomenonKind = "new_moon"
	PhenomenonFirstQuarter  PhenomenonKind = "first_quarter"
	PhenomenonFullMoon      PhenomenonKind = "full_moon"
	PhenomenonLastQuarter   PhenomenonKind = "last_quarter"
	PhenomenonCloseApproach PhenomenonKind = "close_approach"
	PhenomenonMeteorShower  PhenomenonKind = "meteor_shower"
	PhenomenonEquinox       PhenomenonKind = "equinox"
	PhenomenonSolstice      PhenomenonKind = "solstice"
)

// PhenomenaRequest asks for events between Start and End.
type PhenomenaRequest struct {
	Observer Observer  `json:"observer"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`

	// Bodies limits conjunction/opposition/elongation searches. Empty means
	// all major planets.
	Bodies []Body `json:"bodies,omitempty"`

	// MaxSeparation is the conjunction threshold in degrees (default 5).
	MaxSeparation float64 `json:"max_separation"`

	IncludeCloseApproaches bool `json:"include_close_approaches"`
	IncludeMeteorShowers   bool `json:"include_meteor_showers"`
	IncludeSeasonal        bool `json:"include_seasonal"`
}

// Phenomenon is one sky event.
type Phenomenon struct {
	Kind       PhenomenonKind `json:"kind"`
	Date       time.Time      `json:"date"`
	Name       string         `json:"name"`
	Bodies     []Body         `json:"bodies,omitempty"`
	Separation *float64       `json:"separation,omitempty"`
	Elongation *float64       `json:"elongation,omitempty"`
	Details    string         `json:"details,omitempty"`
}

// PhenomenaResponse lists events sorted ascending by date.
type PhenomenaResponse struct {
	Events []Phenomenon `json:"events"`
	Meta   Meta         `json:"meta"`
}

// AlmanacRequest asks for sun, moon and twilight data for one date.
type AlmanacRequest struct {
	Observer Observer  `json:"observer"`
	Date     time.Time `json:"date"`
}

// SunPosition is the apparent position of the Sun.
type SunPosition struct {
	RA       float64 `json:"ra"`
	Dec      float64 `json:"dec"`
	Altitude float64 `json:"altitude"`
	Azimuth  float64 `json:"azimuth"`
}

// MoonPosition is the apparent position of the Moon. Distance is in km.
type MoonPosition struct {
	RA       float64 `json:"ra"`
	Dec      float64 `json:"dec"`
	Altitude float64 `json:"altitude"`
	Azimuth  float64 `json:"azimuth"`
	Distance float64 `json:"distance"`
}

// MoonPhase describes the lunar phase. Phase runs 0..1 with 0.5 = full.
type MoonPhase struct {
	Phase        float64 `json:"phase"`
	Illumination float64 `json:"illumination"`
	Age          float64 `json:"age"`
	Name         string  `json:"name"`
	Waxing       bool    `json:"waxing"`
}

// TwilightTimes are the solar event times for one date. Missing events are
// nil (polar day or night, or the Sun never reaches the depression angle).
type TwilightTimes struct {
	Date             string     `json:"date"`
	Sunrise          *time.Time `json:"sunrise,omitempty"`
	Sunset           *time.Time `json:"sunset,omitempty"`
	CivilDawn        *time.Time `json:"civil_dawn,omitempty"`
	CivilDusk        *time.Time `json:"civil_dusk,omitempty"`
	NauticalDawn     *time.Time `json:"nautical_dawn,omitempty"`
	NauticalDusk     *time.Time `json:"nautical_dusk,omitempty"`
	AstronomicalDawn *time.Time `json:"astronomical_dawn,omitempty"`
	AstronomicalDusk *time.Time `json:"astronomical_dusk,omitempty"`
	SolarNoon        *time.Time `json:"solar_noon,omitempty"`
	IsPolarDay       bool       `json:"is_polar_day"`
	IsPolarNight     bool       `json:"is_polar_night"`
}

// AlmanacResponse combines sun, moon and twilight data.
type AlmanacResponse struct {
	Date       string        `json:"date"`
	Sun        SunPosition   `json:"sun"`
	Moon       MoonPosition  `json:"moon"`
	MoonPhase  MoonPhase     `json:"moon_phase"`
	Twilight   TwilightTimes `json:"twilight"`
	Highlights []string      `json:"highlights,omitempty"`
	Meta       Meta          `json:"meta"`
}
