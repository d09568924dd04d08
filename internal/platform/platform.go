package platform

import "context"

// Inputter simulates mouse and keyboard input.
type Inputter interface {
	Click(ctx context.Context, x, y int, button MouseButton) error
	MoveMouse(ctx context.Context, x, y int) error
	Drag(ctx context.Context, fromX, fromY, toX, toY int) error
	TypeText(ctx context.Context, text string) error
	// KeyCombo presses a "+"-separated combination such as "cmd+shift+s".
	KeyCombo(ctx context.Context, combo string) error
	Scroll(ctx context.Context, direction ScrollDirection, amount int) error
	CursorPosition(ctx context.Context) (Point, error)
}

// Screenshotter captures the screen to a PNG file.
type Screenshotter interface {
	// Capture writes a PNG of the whole screen (or the given display,
	// when non-empty) to path.
	Capture(ctx context.Context, path, display string) error
}

// ScreenReader reports display geometry.
type ScreenReader interface {
	ScreenSize(ctx context.Context) (*ScreenInfo, error)
}

// Diagnoser verifies that the external tools a backend shells out to are
// installed and permitted to run.
type Diagnoser interface {
	// Preflight returns an error with an install hint when the binary
	// backing capability c is missing.
	Preflight(c Capability) error

	// Diagnose runs every check, including permission probes.
	Diagnose(ctx context.Context) []Check
}
