package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/sarscope/sarscope/internal/config"
	"github.com/sarscope/sarscope/internal/engine"
	"github.com/sarscope/sarscope/internal/export"
	"github.com/sarscope/sarscope/internal/model"
	"github.com/sarscope/sarscope/internal/profiles"
	"github.com/sarscope/sarscope/pkg/core"
)

func main() {
	eng, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer teardown()

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch strings.ToLower(args[0]) {
	case "calc":
		err = runCalc(eng, args[1:])
	case "profiles":
		err = runProfiles()
	case "history":
		err = runHistory(eng, args[1:])
	case "search":
		err = runSearch(eng, args[1:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: sarscope <command> [flags]")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  calc      estimate a search area for an aircraft in distress")
	fmt.Println("  profiles  list known aircraft performance profiles")
	fmt.Println("  history   show recent predictions (requires database)")
	fmt.Println("  search    find tracked aircraft (requires database)")
}

func runCalc(eng *engine.Engine, args []string) error {
	fs := flag.NewFlagSet("calc", flag.ExitOnError)
	lat := fs.Float64("lat", 0, "last known latitude in degrees")
	lon := fs.Float64("lon", 0, "last known longitude in degrees")
	alt := fs.Float64("alt", 0, "altitude in feet")
	speed := fs.Float64("speed", 0, "ground speed in knots")
	heading := fs.Float64("heading", 0, "heading in degrees")
	vs := fs.Float64("vs", 0, "vertical speed in feet per minute")
	windSpeed := fs.Float64("wind-speed", 0, "wind speed in knots")
	windDir := fs.Float64("wind-dir", 0, "wind direction in degrees")
	aircraftType := fs.String("type", profiles.DefaultType, "aircraft type")
	ratio := fs.Float64("ratio", 0, "glide ratio override")
	multiplier := fs.Float64("multiplier", viper.GetFloat64("search.radiusMultiplier"), "search radius multiplier")
	points := fs.Int("points", viper.GetInt("sampler.points"), "probability field sample count")
	format := fs.String("format", "csv", "export format: csv or geojson")
	outDir := fs.String("out", config.GetExportConfig().OutputDir, "export output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profile, ok := profiles.Lookup(*aircraftType)
	if !ok {
		fmt.Printf("unknown aircraft type %q, using %s\n", *aircraftType, profiles.DefaultType)
	}
	if *ratio > 0 {
		profile.GlideRatio = *ratio
	}

	req := core.Request{
		Flight: core.FlightState{
			Position:        core.Position{Lat: *lat, Lon: *lon},
			AltitudeFt:      *alt,
			GroundSpeedKt:   *speed,
			HeadingDeg:      *heading,
			VerticalSpeedFt: *vs,
		},
		Wind:             core.WindConditions{SpeedKt: *windSpeed, DirectionDeg: *windDir},
		Profile:          profile,
		RadiusMultiplier: *multiplier,
		SampleCount:      *points,
	}

	res, err := eng.Calculate(req)
	if err != nil {
		return err
	}

	summary := eng.Summarize(req, res)
	fmt.Printf("Aircraft:           %s\n", profile.Name)
	fmt.Printf("Search center:      %.4f, %.4f\n", res.Area.Center.Lat, res.Area.Center.Lon)
	fmt.Printf("Search radius:      %.2f nm\n", res.Area.RadiusNm)
	fmt.Printf("Search area:        %.1f sq nm\n", summary.AreaSquareNm)
	fmt.Printf("Glide distance:     %.2f nm\n", res.Area.GlideDistanceNm)
	fmt.Printf("Time to impact:     %.1f min\n", summary.GlideTimeMin)
	fmt.Printf("Probable direction: %.0f deg\n", summary.ProbableDirectionDeg)
	fmt.Printf("Field samples:      %d\n", len(res.Field))

	path, err := eng.Export(res, export.Format(strings.ToLower(*format)), *outDir)
	if err != nil {
		return err
	}
	fmt.Printf("Exported to:        %s\n", path)
	return nil
}

func runProfiles() error {
	for _, name := range profiles.Types() {
		p, _ := profiles.Lookup(name)
		fmt.Printf("%-45s glide ratio %4.1f:1, max range %5.0f nm, cruise %3.0f kt\n",
			p.Name, p.GlideRatio, p.MaxRangeNm, p.CruiseSpeedKt)
	}
	return nil
}

func runHistory(eng *engine.Engine, args []string) error {
	s := eng.Store()
	if s == nil {
		return fmt.Errorf("history requires db.enabled in the config")
	}

	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("limit", 10, "maximum rows to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	predictions, err := s.PredictionHistory(*limit)
	if err != nil {
		return err
	}
	if len(predictions) == 0 {
		fmt.Println("no predictions recorded")
		return nil
	}
	for _, p := range predictions {
		fmt.Printf("#%-4d %s  %-40s center %.4f,%.4f  radius %.1f nm\n",
			p.ID, p.Time.Format("2006-01-02 15:04"), p.AircraftType,
			p.CenterLatitude, p.CenterLongitude, p.RadiusNm)
	}
	return nil
}

func runSearch(eng *engine.Engine, args []string) error {
	s := eng.Store()
	if s == nil {
		return fmt.Errorf("search requires db.enabled in the config")
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: sarscope search <callsign|icao24|country> <value>")
	}

	searchType := strings.ToLower(args[0])
	searchValue := args[1]

	var aircraft []model.Aircraft
	var err error
	switch searchType {
	case "callsign":
		aircraft, err = s.FindAircraftByCallsign(searchValue)
	case "icao24":
		aircraft, err = s.FindAircraftByICAO24(searchValue)
	case "country":
		aircraft, err = s.FindAircraftByCountry(searchValue)
	default:
		return fmt.Errorf("unknown search type %q", searchType)
	}
	if err != nil {
		return err
	}

	query, err := s.StoreSearchQuery(searchType, searchValue)
	if err != nil {
		return err
	}
	for _, a := range aircraft {
		if _, err := s.StoreSearchResult(query.ID, a.ID); err != nil {
			return err
		}
	}

	if len(aircraft) == 0 {
		fmt.Println("no matching aircraft")
		return nil
	}
	for _, a := range aircraft {
		fmt.Printf("#%-4d %-8s %-10s %-20s %s\n",
			a.ID, a.ICAO24, a.Callsign, a.AircraftType, a.OriginCountry)
	}
	return nil
}
