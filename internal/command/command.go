// Package command parses controller input typed into the scope and applies it
// to the simulation.
//
// Aircraft commands take the form "[<callsign>] <verb> [value]"; the callsign
// may be omitted when an aircraft is selected. Airport commands have no
// callsign.
//
//	AAL101 H 270     heading
//	A 5000           altitude (selected aircraft)
//	S 140            speed
//	D CIPKA          direct to waypoint
//	LAND             request landing clearance
//	PRI ON|OFF       grant or revoke priority
//	EMER             declare emergency
//	WX 35 1200       set wind (kt) and visibility (m)
//	CLOSE 09L        close a runway
//	OPEN 09L         open a runway
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"atc-landing/internal/landing"
	"atc-landing/pkg/types"

	"github.com/labstack/gommon/log"
)

var (
	ErrInvalidCommand = errors.New("invalid command")
	ErrNoSelection    = errors.New("no aircraft selected")
)

// Controller is the part of the simulation commands act on.
type Controller interface {
	IssueHeading(id types.AircraftID, heading float64) error
	IssueAltitude(id types.AircraftID, altitude float64) error
	IssueSpeed(id types.AircraftID, speed float64) error
	IssueDirectTo(id types.AircraftID, wp *types.Waypoint) error
	Waypoint(name string) (*types.Waypoint, bool)
	RequestLanding(id types.AircraftID) (landing.Decision, error)
	SetPriority(id types.AircraftID, priority bool) error
	DeclareEmergency(id types.AircraftID) error
	SetWeather(windSpeed, visibility float64)
	CloseRunway(name string) error
	OpenRunway(name string) error
}

type Command struct {
	Callsign types.AircraftID
	Verb     string
	Args     []string
}

// argument count per verb
var aircraftVerbs = map[string]int{
	"H": 1, "HEADING": 1,
	"A": 1, "ALT": 1, "ALTITUDE": 1,
	"S": 1, "SPD": 1, "SPEED": 1,
	"D": 1, "DIRECT": 1,
	"PRI": 1, "PRIORITY": 1,
	"LAND": 0,
	"EMER": 0, "EMERGENCY": 0,
}

var airportVerbs = map[string]int{
	"WX":    2,
	"CLOSE": 1,
	"OPEN":  1,
}

func Parse(input string, selected types.AircraftID) (Command, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrInvalidCommand)
	}
	first := strings.ToUpper(parts[0])

	if n, ok := airportVerbs[first]; ok {
		if len(parts)-1 != n {
			return Command{}, fmt.Errorf("%w: %s expects %d argument(s)", ErrInvalidCommand, first, n)
		}
		return Command{Verb: first, Args: parts[1:]}, nil
	}

	var cmd Command
	if _, ok := aircraftVerbs[first]; ok {
		if selected == "" {
			return Command{}, ErrNoSelection
		}
		cmd = Command{Callsign: selected, Verb: first, Args: parts[1:]}
	} else {
		if len(parts) < 2 {
			return Command{}, fmt.Errorf("%w: %q, expected [<Callsign>] <Command> <Value>", ErrInvalidCommand, input)
		}
		cmd = Command{Callsign: types.AircraftID(first), Verb: strings.ToUpper(parts[1]), Args: parts[2:]}
	}

	n, ok := aircraftVerbs[cmd.Verb]
	if !ok {
		return Command{}, fmt.Errorf("%w: unknown command type %s", ErrInvalidCommand, cmd.Verb)
	}
	if len(cmd.Args) != n {
		return Command{}, fmt.Errorf("%w: %s expects %d argument(s)", ErrInvalidCommand, cmd.Verb, n)
	}
	return cmd, nil
}

func parseNonNegative(what, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: invalid %s value %s, must be positive", ErrInvalidCommand, what, s)
	}
	return v, nil
}

// Execute applies cmd and returns a short readback for the scope.
func Execute(ctl Controller, cmd Command) (string, error) {
	id := cmd.Callsign

	switch cmd.Verb {
	case "H", "HEADING":
		heading, err := strconv.ParseFloat(cmd.Args[0], 64)
		if err != nil || heading < 0 || heading >= 360 {
			return "", fmt.Errorf("%w: invalid heading value %s, must be 0-359", ErrInvalidCommand, cmd.Args[0])
		}
		if err := ctl.IssueHeading(id, heading); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s turn heading %03.0f", id, heading), nil

	case "A", "ALT", "ALTITUDE":
		altitude, err := parseNonNegative("altitude", cmd.Args[0])
		if err != nil {
			return "", err
		}
		if err := ctl.IssueAltitude(id, altitude); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s maintain %.0f", id, altitude), nil

	case "S", "SPD", "SPEED":
		speed, err := parseNonNegative("speed", cmd.Args[0])
		if err != nil {
			return "", err
		}
		if err := ctl.IssueSpeed(id, speed); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s speed %.0f", id, speed), nil

	case "D", "DIRECT":
		name := strings.ToUpper(cmd.Args[0])
		wp, ok := ctl.Waypoint(name)
		if !ok {
			return "", fmt.Errorf("%w: waypoint %s not found", ErrInvalidCommand, name)
		}
		if err := ctl.IssueDirectTo(id, wp); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s direct %s", id, name), nil

	case "LAND":
		d, err := ctl.RequestLanding(id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s", id, d), nil

	case "PRI", "PRIORITY":
		var on bool
		switch strings.ToUpper(cmd.Args[0]) {
		case "ON", "YES", "TRUE":
			on = true
		case "OFF", "NO", "FALSE":
		default:
			return "", fmt.Errorf("%w: priority must be ON or OFF, got %s", ErrInvalidCommand, cmd.Args[0])
		}
		if err := ctl.SetPriority(id, on); err != nil {
			return "", err
		}
		if on {
			return fmt.Sprintf("%s priority granted", id), nil
		}
		return fmt.Sprintf("%s priority revoked", id), nil

	case "EMER", "EMERGENCY":
		if err := ctl.DeclareEmergency(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s emergency declared", id), nil

	case "WX":
		wind, err := parseNonNegative("wind", cmd.Args[0])
		if err != nil {
			return "", err
		}
		vis, err := parseNonNegative("visibility", cmd.Args[1])
		if err != nil {
			return "", err
		}
		ctl.SetWeather(wind, vis)
		return fmt.Sprintf("wind %.0f kt visibility %.0f m", wind, vis), nil

	case "CLOSE":
		name := strings.ToUpper(cmd.Args[0])
		if err := ctl.CloseRunway(name); err != nil {
			return "", err
		}
		return "runway " + name + " closed", nil

	case "OPEN":
		name := strings.ToUpper(cmd.Args[0])
		if err := ctl.OpenRunway(name); err != nil {
			return "", err
		}
		return "runway " + name + " open", nil
	}

	return "", fmt.Errorf("%w: unknown command type %s", ErrInvalidCommand, cmd.Verb)
}

// Run parses and executes one line of controller input, logging the result.
func Run(ctl Controller, input string, selected types.AircraftID) (string, error) {
	cmd, err := Parse(input, selected)
	if err != nil {
		log.Printf("Invalid command %q: %v", input, err)
		return "", err
	}
	readback, err := Execute(ctl, cmd)
	if err != nil {
		log.Printf("Command %q failed: %v", input, err)
		return "", err
	}
	log.Printf("Issued: %s", readback)
	return readback, nil
}
