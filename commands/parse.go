package commands

import (
	"math"
	"strconv"
	"strings"
)

const (
	UsageMain       = "Usage: ./main <command> [options]"
	UsageScreenshot = "Usage: ./main screenshot <save_path>"
	UsageClick      = "Usage: ./main click <x> <y>"
	InvalidCoords   = "Invalid coordinates"
)

// Invocation is the parsed form of a command line. It is one of
// ScreenshotRequest, ClickRequest or UnknownCommand.
type Invocation interface {
	invocation()
}

// ScreenshotRequest represents the parameters for taking a screenshot
type ScreenshotRequest struct {
	SavePath string `json:"path"`
}

// ClickRequest represents the parameters for a left click
type ClickRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UnknownCommand carries the first argument verbatim.
type UnknownCommand struct {
	Name string
}

func (ScreenshotRequest) invocation() {}
func (ClickRequest) invocation()      {}
func (UnknownCommand) invocation()    {}

// Parse turns the argument list (without the program name) into an
// invocation. Usage problems come back as a *Error of KindUsage whose
// message is the exact text to print.
func Parse(args []string) (Invocation, error) {
	if len(args) == 0 {
		return nil, usageError(UsageMain)
	}

	var (
		inv Invocation
		err error
	)
	switch args[0] {
	case "screenshot":
		inv, err = ParseScreenshotArgs(args[1:])
	case "click":
		inv, err = ParseClickArgs(args[1:])
	default:
		return UnknownCommand{Name: args[0]}, nil
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ParseScreenshotArgs parses the arguments following "screenshot".
// Extra arguments are ignored.
func ParseScreenshotArgs(args []string) (ScreenshotRequest, error) {
	if len(args) < 1 {
		return ScreenshotRequest{}, usageError(UsageScreenshot)
	}
	return ScreenshotRequest{SavePath: args[0]}, nil
}

// ParseClickArgs parses the arguments following "click".
// Extra arguments are ignored.
func ParseClickArgs(args []string) (ClickRequest, error) {
	if len(args) < 2 {
		return ClickRequest{}, usageError(UsageClick)
	}

	x, okX := parseCoordinate(args[0])
	y, okY := parseCoordinate(args[1])
	if !okX || !okY {
		return ClickRequest{}, usageError(InvalidCoords)
	}

	return ClickRequest{X: x, Y: y}, nil
}

func parseCoordinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatCoordinate prints v as the shortest decimal that round-trips,
// keeping a trailing ".0" on integral values (100 prints as "100.0").
func FormatCoordinate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// Err returns the usage error reported for an unrecognized command.
func (u UnknownCommand) Err() error {
	return usageError("Unknown command: " + u.Name)
}
