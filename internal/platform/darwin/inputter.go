package darwin

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/mj1618/computer-use/internal/config"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/mj1618/computer-use/internal/runner"
)

// Inputter implements platform.Inputter with cliclick, falling back to a
// swift CGEvent snippet for scrolling, which cliclick cannot do.
type Inputter struct {
	run runner.Runner
	cfg *config.Config
}

// Ensure Inputter implements platform.Inputter.
var _ platform.Inputter = (*Inputter)(nil)

// NewInputter creates a new macOS inputter.
func NewInputter(r runner.Runner, cfg *config.Config) *Inputter {
	return &Inputter{run: r, cfg: cfg}
}

// ClickArgs returns the cliclick argv for a click. cliclick has no
// middle-button action.
func ClickArgs(x, y int, button platform.MouseButton) ([]string, error) {
	var prefix string
	switch button {
	case platform.MouseLeft:
		prefix = "c"
	case platform.MouseRight:
		prefix = "rc"
	case platform.MouseDouble:
		prefix = "dc"
	case platform.MouseMiddle:
		return nil, fmt.Errorf("middle click is not supported by cliclick")
	default:
		return nil, fmt.Errorf("unknown button: %s. Use left, right, or double", button)
	}
	return []string{"cliclick", fmt.Sprintf("%s:%d,%d", prefix, x, y)}, nil
}

// MoveArgs returns the cliclick argv for a pointer move.
func MoveArgs(x, y int) []string {
	return []string{"cliclick", fmt.Sprintf("m:%d,%d", x, y)}
}

// DragArgs returns the cliclick argv for a press at (fx,fy) and release
// at (tx,ty).
func DragArgs(fx, fy, tx, ty int) []string {
	return []string{"cliclick", fmt.Sprintf("dd:%d,%d", fx, fy), fmt.Sprintf("du:%d,%d", tx, ty)}
}

// TypeArgs returns the cliclick argv for typing text.
func TypeArgs(text string) []string {
	return []string{"cliclick", "t:" + text}
}

// CursorArgs returns the cliclick argv that prints the pointer position.
func CursorArgs() []string {
	return []string{"cliclick", "p"}
}

// ScrollWheel returns the CGEvent wheel1 (vertical) and wheel2
// (horizontal) line deltas. Positive wheel1 scrolls up, positive wheel2
// scrolls left.
func ScrollWheel(direction platform.ScrollDirection, amount int) (wheel1, wheel2 int) {
	switch direction {
	case platform.ScrollUp:
		return amount, 0
	case platform.ScrollDown:
		return -amount, 0
	case platform.ScrollLeft:
		return 0, amount
	case platform.ScrollRight:
		return 0, -amount
	}
	return 0, 0
}

const scrollScript = `
import CoreGraphics
if let event = CGEvent(scrollWheelEvent2Source: nil, units: .line, wheelCount: 2, wheel1: Int32(%d), wheel2: Int32(%d), wheel3: 0) {
    event.post(tap: .cghidEventTap)
}
`

// ScrollArgs returns the swift argv that posts a scroll-wheel event.
func ScrollArgs(direction platform.ScrollDirection, amount int) []string {
	w1, w2 := ScrollWheel(direction, amount)
	return []string{"swift", "-e", fmt.Sprintf(scrollScript, w1, w2)}
}

var cursorPattern = regexp.MustCompile(`(-?\d+),\s*(-?\d+)`)

// ParseCursor extracts the position from `cliclick p` output such as
// "512,384".
func ParseCursor(stdout string) (platform.Point, error) {
	m := cursorPattern.FindStringSubmatch(stdout)
	if m == nil {
		return platform.Point{}, fmt.Errorf("unexpected cliclick output: %s", stdout)
	}
	x, errX := strconv.Atoi(m[1])
	y, errY := strconv.Atoi(m[2])
	if errX != nil || errY != nil {
		return platform.Point{}, fmt.Errorf("unexpected cliclick output: %s", stdout)
	}
	return platform.Point{X: x, Y: y}, nil
}

func (inp *Inputter) exec(ctx context.Context, action string, argv []string) error {
	return inp.run.Run(ctx, argv, inp.cfg.CommandTimeout()).Err(action)
}

func (inp *Inputter) Click(ctx context.Context, x, y int, button platform.MouseButton) error {
	argv, err := ClickArgs(x, y, button)
	if err != nil {
		return err
	}
	return inp.exec(ctx, "click", argv)
}

func (inp *Inputter) MoveMouse(ctx context.Context, x, y int) error {
	return inp.exec(ctx, "move", MoveArgs(x, y))
}

func (inp *Inputter) Drag(ctx context.Context, fromX, fromY, toX, toY int) error {
	return inp.exec(ctx, "drag", DragArgs(fromX, fromY, toX, toY))
}

func (inp *Inputter) TypeText(ctx context.Context, text string) error {
	return inp.run.Run(ctx, TypeArgs(text), inp.cfg.TypeTimeout(text)).Err("type")
}

func (inp *Inputter) KeyCombo(ctx context.Context, combo string) error {
	actions, err := KeyComboArgs(combo)
	if err != nil {
		return err
	}
	return inp.exec(ctx, "key", append([]string{"cliclick"}, actions...))
}

func (inp *Inputter) Scroll(ctx context.Context, direction platform.ScrollDirection, amount int) error {
	return inp.run.Run(ctx, ScrollArgs(direction, amount), inp.cfg.ScrollTimeout()).Err("scroll")
}

func (inp *Inputter) CursorPosition(ctx context.Context) (platform.Point, error) {
	res := inp.run.Run(ctx, CursorArgs(), inp.cfg.CommandTimeout())
	if err := res.Err("cursor position"); err != nil {
		return platform.Point{}, err
	}
	return ParseCursor(res.Stdout)
}
