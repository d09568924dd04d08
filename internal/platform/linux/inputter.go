package linux

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/computer-use/internal/config"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/mj1618/computer-use/internal/runner"
)

// Inputter implements platform.Inputter with xdotool.
type Inputter struct {
	run runner.Runner
	cfg *config.Config
}

// Ensure Inputter implements platform.Inputter.
var _ platform.Inputter = (*Inputter)(nil)

// NewInputter creates a new X11 inputter.
func NewInputter(r runner.Runner, cfg *config.Config) *Inputter {
	return &Inputter{run: r, cfg: cfg}
}

func itoa(n int) string { return strconv.Itoa(n) }

// MoveArgs returns the xdotool argv for a pointer move. --sync waits until
// the pointer has actually moved.
func MoveArgs(x, y int) []string {
	return []string{"xdotool", "mousemove", "--sync", itoa(x), itoa(y)}
}

// ClickArgs moves to (x,y) and clicks. X11 buttons: 1 left, 2 middle,
// 3 right.
func ClickArgs(x, y int, button platform.MouseButton) ([]string, error) {
	argv := append(MoveArgs(x, y), "click")
	switch button {
	case platform.MouseLeft:
		return append(argv, "1"), nil
	case platform.MouseMiddle:
		return append(argv, "2"), nil
	case platform.MouseRight:
		return append(argv, "3"), nil
	case platform.MouseDouble:
		return append(argv, "--repeat", "2", "--delay", "50", "1"), nil
	}
	return nil, fmt.Errorf("unknown button: %s. Use left, right, middle, or double", button)
}

// DragArgs presses button 1 at (fx,fy), moves to (tx,ty) and releases.
func DragArgs(fx, fy, tx, ty int) []string {
	argv := append(MoveArgs(fx, fy), "mousedown", "1", "mousemove", "--sync", itoa(tx), itoa(ty))
	return append(argv, "mouseup", "1")
}

// TypeArgs types text with delay milliseconds between keystrokes. The "--"
// keeps text starting with a dash from being read as an option.
func TypeArgs(text string, delay int) []string {
	return []string{"xdotool", "type", "--clearmodifiers", "--delay", itoa(delay), "--", text}
}

// CursorArgs returns the xdotool argv that prints the pointer position as
// shell assignments.
func CursorArgs() []string {
	return []string{"xdotool", "getmouselocation", "--shell"}
}

// ScrollButton maps a direction to the X11 wheel button.
func ScrollButton(direction platform.ScrollDirection) string {
	switch direction {
	case platform.ScrollUp:
		return "4"
	case platform.ScrollDown:
		return "5"
	case platform.ScrollLeft:
		return "6"
	case platform.ScrollRight:
		return "7"
	}
	return ""
}

// ScrollArgs clicks the wheel button amount times.
func ScrollArgs(direction platform.ScrollDirection, amount int) []string {
	return []string{"xdotool", "click", "--repeat", itoa(amount), ScrollButton(direction)}
}

// ParseCursor reads X and Y from `getmouselocation --shell` output:
//
//	X=512
//	Y=384
//	SCREEN=0
//	WINDOW=12345
func ParseCursor(stdout string) (platform.Point, error) {
	vars := make(map[string]string)
	for _, line := range strings.Split(stdout, "\n") {
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		vars[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	x, errX := strconv.Atoi(vars["X"])
	y, errY := strconv.Atoi(vars["Y"])
	if errX != nil || errY != nil {
		return platform.Point{}, fmt.Errorf("unexpected xdotool output: %s", stdout)
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
	argv := TypeArgs(text, inp.cfg.Linux.TypeDelay)
	return inp.run.Run(ctx, argv, inp.cfg.TypeTimeout(text)).Err("type")
}

func (inp *Inputter) KeyCombo(ctx context.Context, combo string) error {
	argv, err := KeyArgs(combo)
	if err != nil {
		return err
	}
	return inp.exec(ctx, "key", argv)
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
