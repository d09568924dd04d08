package platform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/computer-use/internal/runner"
)

// MouseButton represents a click style.
type MouseButton string

const (
	MouseLeft   MouseButton = "left"
	MouseRight  MouseButton = "right"
	MouseMiddle MouseButton = "middle"
	MouseDouble MouseButton = "double"
)

// ParseMouseButton converts a --button flag value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch b := MouseButton(strings.ToLower(strings.TrimSpace(s))); b {
	case MouseLeft, MouseRight, MouseMiddle, MouseDouble:
		return b, nil
	default:
		return MouseLeft, fmt.Errorf("unknown button: %s. Use left, right, middle, or double", s)
	}
}

// ScrollDirection is one of up, down, left, right.
type ScrollDirection string

const (
	ScrollUp    ScrollDirection = "up"
	ScrollDown  ScrollDirection = "down"
	ScrollLeft  ScrollDirection = "left"
	ScrollRight ScrollDirection = "right"
)

// ParseScrollDirection validates a scroll direction argument.
func ParseScrollDirection(s string) (ScrollDirection, error) {
	switch d := ScrollDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case ScrollUp, ScrollDown, ScrollLeft, ScrollRight:
		return d, nil
	default:
		return "", errors.New("scroll requires direction: up, down, left, or right")
	}
}

// ParseCoordinate parses a screen coordinate: a base-10 integer with an
// optional sign, surrounding whitespace ignored. Negative values address
// monitors left of or above the primary display.
func ParseCoordinate(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}
	return v, nil
}

// ParseCoordinates parses every element of args with ParseCoordinate.
func ParseCoordinates(args []string) ([]int, error) {
	vals := make([]int, len(args))
	for i, a := range args {
		v, err := ParseCoordinate(a)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// Point is a screen position in points.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Display describes one attached monitor.
type Display struct {
	Name         string `yaml:"name"          json:"name"`
	Width        int    `yaml:"width"         json:"width"`
	Height       int    `yaml:"height"        json:"height"`
	RetinaWidth  int    `yaml:"retina_width"  json:"retina_width"`
	RetinaHeight int    `yaml:"retina_height" json:"retina_height"`
	Main         bool   `yaml:"main"          json:"main"`
}

// ScreenInfo is the size of the main display plus, where the backend can
// enumerate them, every attached display.
type ScreenInfo struct {
	Width   int       `yaml:"width"             json:"width"`
	Height  int       `yaml:"height"            json:"height"`
	Screens []Display `yaml:"screens,omitempty" json:"screens,omitempty"`
}

// Capability groups the operations that share a backing binary.
type Capability string

const (
	CapInput      Capability = "input"
	CapScreenshot Capability = "screenshot"
	CapScroll     Capability = "scroll"
	CapScreenSize Capability = "screen-size"
)

// Tool is an external binary and how to install it.
type Tool struct {
	Name        string
	InstallHint string
}

// Check is the outcome of a single doctor probe.
type Check struct {
	Name   string `yaml:"name"   json:"name"`
	OK     bool   `yaml:"ok"     json:"ok"`
	Detail string `yaml:"detail" json:"detail"`
}

// AllOK reports whether every check passed.
func AllOK(checks []Check) bool {
	for _, c := range checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// LookupTool checks that t is on PATH, returning its install hint as the
// error otherwise.
func LookupTool(r runner.Runner, t Tool) (string, error) {
	path, err := r.LookPath(t.Name)
	if err != nil {
		return "", errors.New(t.InstallHint)
	}
	return path, nil
}

// ToolCheck builds the doctor check for an installed binary.
func ToolCheck(r runner.Runner, t Tool) Check {
	path, err := LookupTool(r, t)
	if err != nil {
		return Check{Name: t.Name, OK: false, Detail: err.Error()}
	}
	return Check{Name: t.Name, OK: true, Detail: "found at " + path}
}
