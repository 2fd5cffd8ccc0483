// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/skyquery/internal/coords"
	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/internal/search"
	"github.com/pdiddy/skyquery/pkg/types"
)

var coordsCmd = &cobra.Command{
	Use:   "coords <target>",
	Short: "Transform a position to horizontal, galactic and ecliptic frames",
	Long: `Coords computes altitude/azimuth, galactic and ecliptic coordinates, local
sidereal time, hour angle and airmass for a target seen by the configured
observer. The target is a coordinate pair or any query skyquery search can
resolve to a position.`,
	Example: `  skyquery coords M31 --lat 40 --lon -75
  skyquery coords "83.82 -5.39" --time 2024-12-01T02:00:00Z`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCoords,
}

var ephemerisCmd = &cobra.Command{
	Use:   "ephemeris <body>",
	Short: "Compute positions of a solar-system body over time",
	Long: `Ephemeris samples a body's position at a fixed step. Bodies: Sun, Moon,
Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, or Custom with --ra
and --dec.`,
	Example: `  skyquery ephemeris Mars --step 24h --steps 30
  skyquery ephemeris custom --ra 10.68 --dec 41.27 --step 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runEphemeris,
}

var risesetCmd = &cobra.Command{
	Use:   "riseset <target>",
	Short: "Compute rise, transit and set times for a target",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRiseSet,
}

var phenomenaCmd = &cobra.Command{
	Use:   "phenomena",
	Short: "List sky events in a date range",
	Long: `Phenomena lists moon phases, planetary conjunctions, oppositions and
greatest elongations between --start and --end, optionally with close
approaches of the Moon, meteor shower peaks and equinoxes and solstices.`,
	RunE: runPhenomena,
}

var almanacCmd = &cobra.Command{
	Use:   "almanac",
	Short: "Show sun, moon and twilight data for a date",
	RunE:  runAlmanac,
}

func init() {
	for _, c := range []*cobra.Command{coordsCmd, ephemerisCmd, risesetCmd, phenomenaCmd, almanacCmd} {
		c.Flags().Bool("json", false, "output as JSON")
		rootCmd.AddCommand(c)
	}

	coordsCmd.Flags().String("time", "now", "observation time (RFC 3339, YYYY-MM-DD or now)")
	coordsCmd.Flags().Bool("no-refraction", false, "skip atmospheric refraction")

	ephemerisCmd.Flags().String("start", "now", "first sample time")
	ephemerisCmd.Flags().Duration("step", time.Hour, "time between samples")
	ephemerisCmd.Flags().Int("steps", 24, "number of samples")
	ephemerisCmd.Flags().Float64("ra", 0, "right ascension in degrees for a custom body")
	ephemerisCmd.Flags().Float64("dec", 0, "declination in degrees for a custom body")

	risesetCmd.Flags().String("time", "now", "time on the night to compute")
	risesetCmd.Flags().Float64("min-alt", 0, "altitude in degrees that counts as risen")

	phenomenaCmd.Flags().String("start", "now", "range start")
	phenomenaCmd.Flags().String("end", "", "range end (default start + --days)")
	phenomenaCmd.Flags().Int("days", 30, "range length when --end is not set")
	phenomenaCmd.Flags().StringSlice("bodies", nil, "planets to consider (default all)")
	phenomenaCmd.Flags().Float64("max-sep", 0, "conjunction threshold in degrees (default 5)")
	phenomenaCmd.Flags().Bool("close", false, "include close approaches of the Moon")
	phenomenaCmd.Flags().Bool("showers", false, "include meteor shower peaks")
	phenomenaCmd.Flags().Bool("seasons", false, "include equinoxes and solstices")

	almanacCmd.Flags().String("date", "today", "date (YYYY-MM-DD or today)")
}

func runCoords(cmd *cobra.Command, args []string) error {
	at, err := flagTime(cmd, "time")
	if err != nil {
		return err
	}
	target, err := resolveTarget(cmd, args)
	if err != nil {
		return err
	}
	noRefraction, _ := cmd.Flags().GetBool("no-refraction")
	refraction := !noRefraction

	resp, err := newFacade(cfg).Coordinates(cmd.Context(), types.CoordinatesRequest{
		Observer: cfg.Observer, Time: at, RA: target.RA, Dec: target.Dec, ApplyRefraction: &refraction,
	})
	if err != nil {
		return err
	}
	if wantJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), resp)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Target      %s\n", target.Label)
	fmt.Fprintf(w, "Equatorial  RA %s  Dec %s\n", coords.FormatRA(resp.Equatorial.RA), coords.FormatDec(resp.Equatorial.Dec))
	fmt.Fprintf(w, "Horizontal  Alt %7.3f°  Az %7.3f°\n", resp.Horizontal.Altitude, resp.Horizontal.Azimuth)
	fmt.Fprintf(w, "Galactic    l %8.4f°  b %8.4f°\n", resp.Galactic.L, resp.Galactic.B)
	fmt.Fprintf(w, "Ecliptic    λ %8.4f°  β %8.4f°\n", resp.Ecliptic.Lon, resp.Ecliptic.Lat)
	fmt.Fprintf(w, "LST         %.4fh  HA %.4f°\n", resp.LSTHours, resp.HourAngle)
	if resp.Airmass != nil {
		fmt.Fprintf(w, "Airmass     %.3f\n", *resp.Airmass)
	}
	fmt.Fprintf(w, "Backend     %s\n", resp.Meta.Backend)
	return nil
}

func runEphemeris(cmd *cobra.Command, args []string) error {
	body, err := parseBody(args[0])
	if err != nil {
		return err
	}
	start, err := flagTime(cmd, "start")
	if err != nil {
		return err
	}
	f := cmd.Flags()
	step, _ := f.GetDuration("step")
	steps, _ := f.GetInt("steps")

	req := types.EphemerisRequest{Observer: cfg.Observer, Body: body, Start: start, Step: step, Steps: steps}
	if f.Changed("ra") {
		ra, _ := f.GetFloat64("ra")
		req.RA = &ra
	}
	if f.Changed("dec") {
		dec, _ := f.GetFloat64("dec")
		req.Dec = &dec
	}

	resp, err := newFacade(cfg).Ephemeris(cmd.Context(), req)
	if err != nil {
		return err
	}
	if wantJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), resp)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-17s  %-14s  %-15s  %7s  %7s  %12s  %6s\n", "Time (UTC)", "RA", "Dec", "Alt", "Az", "Distance", "Mag")
	fmt.Fprintln(w, strings.Repeat("-", 92))
	for _, p := range resp.Points {
		mag := ""
		if p.Magnitude != nil {
			mag = fmt.Sprintf("%.2f", *p.Magnitude)
		}
		fmt.Fprintf(w, "%-17s  %-14s  %-15s  %7.2f  %7.2f  %12.6g  %6s\n",
			p.Time.UTC().Format("2006-01-02 15:04"), coords.FormatRA(p.RA), coords.FormatDec(p.Dec),
			p.Altitude, p.Azimuth, p.Distance, mag)
	}
	fmt.Fprintf(w, "\n%d points (%s)\n", len(resp.Points), resp.Meta.Backend)
	return nil
}

func runRiseSet(cmd *cobra.Command, args []string) error {
	at, err := flagTime(cmd, "time")
	if err != nil {
		return err
	}
	target, err := resolveTarget(cmd, args)
	if err != nil {
		return err
	}
	minAlt, _ := cmd.Flags().GetFloat64("min-alt")

	resp, err := newFacade(cfg).RiseTransitSet(cmd.Context(), types.RiseTransitSetRequest{
		Observer: cfg.Observer, Time: at, RA: target.RA, Dec: target.Dec, MinAltitude: minAlt,
	})
	if err != nil {
		return err
	}
	if wantJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), resp)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Target        %s\n", target.Label)
	switch {
	case resp.IsCircumpolar:
		fmt.Fprintln(w, "Circumpolar   never sets")
	case resp.NeverRises:
		fmt.Fprintln(w, "Never rises")
	default:
		fmt.Fprintf(w, "Rise          %s\n", formatTime(resp.RiseTime))
		fmt.Fprintf(w, "Set           %s\n", formatTime(resp.SetTime))
	}
	fmt.Fprintf(w, "Transit       %s (alt %.2f°)\n", formatTime(resp.TransitTime), resp.TransitAltitude)
	fmt.Fprintf(w, "Now           alt %.2f°  az %.2f°  visible %t\n", resp.CurrentAltitude, resp.CurrentAzimuth, resp.IsVisible)
	fmt.Fprintf(w, "Dark          %s to %s\n", formatTime(resp.DarkStart), formatTime(resp.DarkEnd))
	fmt.Fprintf(w, "Hours up      %.2f (%.2f in darkness)\n", resp.HoursVisible, resp.DarkImagingHours)
	return nil
}

func runPhenomena(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	start, err := flagTime(cmd, "start")
	if err != nil {
		return err
	}
	var end time.Time
	if f.Changed("end") {
		if end, err = flagTime(cmd, "end"); err != nil {
			return err
		}
	} else {
		days, _ := f.GetInt("days")
		end = start.AddDate(0, 0, days)
	}

	req := types.PhenomenaRequest{Observer: cfg.Observer, Start: start, End: end}
	names, _ := f.GetStringSlice("bodies")
	for _, n := range names {
		b, err := parseBody(n)
		if err != nil {
			return err
		}
		req.Bodies = append(req.Bodies, b)
	}
	req.MaxSeparation, _ = f.GetFloat64("max-sep")
	req.IncludeCloseApproaches, _ = f.GetBool("close")
	req.IncludeMeteorShowers, _ = f.GetBool("showers")
	req.IncludeSeasonal, _ = f.GetBool("seasons")

	resp, err := newFacade(cfg).Phenomena(cmd.Context(), req)
	if err != nil {
		return err
	}
	if wantJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), resp)
	}

	w := cmd.OutOrStdout()
	if len(resp.Events) == 0 {
		fmt.Fprintln(w, "No events in range.")
		return nil
	}
	for _, e := range resp.Events {
		line := fmt.Sprintf("%s  %-20s  %s", e.Date.UTC().Format("2006-01-02 15:04"), e.Kind, e.Name)
		if e.Details != "" {
			line += "  (" + e.Details + ")"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func runAlmanac(cmd *cobra.Command, args []string) error {
	date, err := flagTime(cmd, "date")
	if err != nil {
		return err
	}
	resp, err := newFacade(cfg).Almanac(cmd.Context(), types.AlmanacRequest{Observer: cfg.Observer, Date: date})
	if err != nil {
		return err
	}
	if wantJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), resp)
	}

	w := cmd.OutOrStdout()
	tw := resp.Twilight
	fmt.Fprintf(w, "Almanac for %s at %.4f, %.4f\n\n", resp.Date, cfg.Observer.Latitude, cfg.Observer.Longitude)
	fmt.Fprintf(w, "Sun    RA %s  Dec %s  alt %.1f°\n", coords.FormatRA(resp.Sun.RA), coords.FormatDec(resp.Sun.Dec), resp.Sun.Altitude)
	fmt.Fprintf(w, "Moon   RA %s  Dec %s  alt %.1f°  %.0f km\n", coords.FormatRA(resp.Moon.RA), coords.FormatDec(resp.Moon.Dec), resp.Moon.Altitude, resp.Moon.Distance)
	fmt.Fprintf(w, "Phase  %s, %.0f%% illuminated, %.1f days\n\n", resp.MoonPhase.Name, resp.MoonPhase.Illumination*100, resp.MoonPhase.Age)
	switch {
	case tw.IsPolarDay:
		fmt.Fprintln(w, "Polar day: the Sun does not set.")
	case tw.IsPolarNight:
		fmt.Fprintln(w, "Polar night: the Sun does not rise.")
	}
	for _, row := range []struct {
		label      string
		dawn, dusk *time.Time
	}{
		{"Sunrise / sunset", tw.Sunrise, tw.Sunset},
		{"Civil twilight", tw.CivilDawn, tw.CivilDusk},
		{"Nautical twilight", tw.NauticalDawn, tw.NauticalDusk},
		{"Astronomical twilight", tw.AstronomicalDawn, tw.AstronomicalDusk},
	} {
		fmt.Fprintf(w, "%-22s %s  %s\n", row.label, formatTime(row.dawn), formatTime(row.dusk))
	}
	fmt.Fprintf(w, "%-22s %s\n", "Solar noon", formatTime(tw.SolarNoon))
	if len(resp.Highlights) > 0 {
		fmt.Fprintln(w)
		for _, h := range resp.Highlights {
			fmt.Fprintln(w, "*", h)
		}
	}
	return nil
}

// target is a resolved sky position.
type target struct {
	Label   string
	RA, Dec float64
}

// resolveTarget reads a coordinate pair from args, or searches for the
// query and takes the first result that has a position.
func resolveTarget(cmd *cobra.Command, args []string) (target, error) {
	input := strings.Join(args, " ")
	if c, ok := coords.Parse(input); ok {
		return target{Label: coords.String(c), RA: c.RA, Dec: c.Dec}, nil
	}

	searcher, closeFn := openSearcher(cfg)
	defer closeFn()
	out, err := searcher.Search(cmd.Context(), search.Options{Query: input, MaxResults: 10})
	if err != nil {
		return target{}, err
	}
	for _, r := range out.Results {
		if r.HasCoordinates() {
			return target{Label: r.Name, RA: *r.RA, Dec: *r.Dec}, nil
		}
	}
	return target{}, errors.WithHint(
		errors.Mark(errors.Newf("no position found for %q", input), errors.ErrNotFound),
		"give coordinates directly, e.g. \"10.6847 41.2689\"")
}

// parseBody matches name case-insensitively against the known bodies.
func parseBody(name string) (types.Body, error) {
	all := append([]types.Body{types.BodySun, types.BodyMoon}, types.Planets...)
	all = append(all, types.BodyPluto, types.BodyCustom)
	for _, b := range all {
		if strings.EqualFold(string(b), strings.TrimSpace(name)) {
			return b, nil
		}
	}
	return "", errors.WithHint(
		errors.Mark(errors.Newf("unknown body %q", name), errors.ErrInvalidInput),
		"use Sun, Moon, a planet name or Custom")
}

// parseTime accepts "now", "today", RFC 3339, "YYYY-MM-DDTHH:MM" and
// "YYYY-MM-DD". Times without a zone are UTC.
func parseTime(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "now":
		return now.UTC(), nil
	case "today":
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.WithHint(
		errors.Mark(errors.Newf("cannot parse time %q", s), errors.ErrInvalidInput),
		"use RFC 3339 (2024-10-01T22:00:00Z), YYYY-MM-DD, now or today")
}

func flagTime(cmd *cobra.Command, name string) (time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	return parseTime(s, time.Now())
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "--"
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
