package linux

import (
	"context"
	"os"
	"time"

	"github.com/mj1618/computer-use/internal/platform"
	"github.com/mj1618/computer-use/internal/runner"
)

var (
	xdotoolTool = platform.Tool{
		Name:        "xdotool",
		InstallHint: "xdotool not found. Install with: apt install xdotool (Debian/Ubuntu) or dnf install xdotool (Fedora)",
	}
	scrotTool = platform.Tool{
		Name:        "scrot",
		InstallHint: "scrot not found. Install with: apt install scrot (Debian/Ubuntu) or dnf install scrot (Fedora)",
	}
)

const displayProbeTimeout = 5 * time.Second

// Diagnoser implements platform.Diagnoser for X11.
type Diagnoser struct {
	run    runner.Runner
	getenv func(string) string
}

// Ensure Diagnoser implements platform.Diagnoser.
var _ platform.Diagnoser = (*Diagnoser)(nil)

// NewDiagnoser creates a new X11 diagnoser reading $DISPLAY from the
// process environment.
func NewDiagnoser(r runner.Runner) *Diagnoser {
	return &Diagnoser{run: r, getenv: os.Getenv}
}

func (d *Diagnoser) Preflight(c platform.Capability) error {
	tool := xdotoolTool
	if c == platform.CapScreenshot {
		tool = scrotTool
	}
	_, err := platform.LookupTool(d.run, tool)
	return err
}

func (d *Diagnoser) Diagnose(ctx context.Context) []platform.Check {
	xdotool := platform.ToolCheck(d.run, xdotoolTool)
	checks := []platform.Check{xdotool, platform.ToolCheck(d.run, scrotTool)}
	return append(checks, d.checkDisplay(ctx, xdotool.OK))
}

func (d *Diagnoser) checkDisplay(ctx context.Context, haveXdotool bool) platform.Check {
	display := d.getenv("DISPLAY")
	if display == "" {
		return platform.Check{Name: "display", OK: false, Detail: "DISPLAY is not set. An X11 session is required"}
	}
	if !haveXdotool {
		return platform.Check{Name: "display", OK: false, Detail: "skipped (xdotool not installed)"}
	}
	res := d.run.Run(ctx, ScreenSizeArgs(), displayProbeTimeout)
	if err := res.Err("display " + display); err != nil {
		return platform.Check{Name: "display", OK: false, Detail: err.Error()}
	}
	return platform.Check{Name: "display", OK: true, Detail: display}
}
