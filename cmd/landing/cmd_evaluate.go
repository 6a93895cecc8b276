package main

import (
	"fmt"
	"io"

	"atc-landing/internal/landing"

	"github.com/spf13/cobra"
)

var (
	evalRequest landing.Request
	explain     bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Decide a single landing request",
	Long: `Evaluates one landing request and prints the outcome and message.

Wind and visibility default to the weather in the config file.

Example:
  landing evaluate --runway-clear --speed 120 --traffic 2
  landing evaluate --speed 200 --emergency --priority --wind 90 --visibility 100 --explain`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.BoolVar(&evalRequest.RunwayClear, "runway-clear", false, "Assigned runway is clear")
	f.BoolVar(&evalRequest.AlternateRunwayAvailable, "alternate", false, "An alternate runway is available")
	f.Float64Var(&evalRequest.PlaneSpeed, "speed", 0, "Approach speed in knots")
	f.BoolVar(&evalRequest.Emergency, "emergency", false, "Aircraft has declared an emergency")
	f.Float64Var(&evalRequest.WindSpeed, "wind", 0, "Wind speed in knots")
	f.Float64Var(&evalRequest.Visibility, "visibility", 0, "Visibility in meters")
	f.IntVar(&evalRequest.AirportTraffic, "traffic", 0, "Aircraft already waiting to land")
	f.BoolVar(&evalRequest.PriorityStatus, "priority", false, "Aircraft holds priority status")
	f.BoolVar(&explain, "explain", false, "Print every derived condition and predicate")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	req := evalRequest
	if !cmd.Flags().Changed("wind") {
		req.WindSpeed = cfg.Simulation.Weather.WindSpeed
	}
	if !cmd.Flags().Changed("visibility") {
		req.Visibility = cfg.Simulation.Weather.Visibility
	}

	d := newEngine().Evaluate(req)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, d)
	if explain {
		printConditions(out, d)
	}
	return nil
}

func printConditions(w io.Writer, d landing.Decision) {
	c := d.Conditions
	rows := []struct {
		name  string
		value bool
	}{
		{"runway_available", c.RunwayAvailable},
		{"safe_speed", c.SafeSpeed},
		{"safe_weather", c.SafeWeather},
		{"acceptable_traffic", c.AcceptableTraffic},
		{"traffic_override", c.TrafficOverride},
		{"weather_override", c.WeatherOverride},
		{"P1 standard", c.StandardLanding()},
		{"P2 priority override", c.PriorityOverride()},
		{"P3 emergency", c.EmergencyLanding()},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-22s %t\n", r.name, r.value)
	}
	fmt.Fprintf(w, "  decided by %s\n", d.Predicate)
}
