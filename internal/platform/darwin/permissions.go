package darwin

import (
	"context"
	"strings"
	"time"

	"github.com/mj1618/computer-use/internal/platform"
	"github.com/mj1618/computer-use/internal/runner"
)

var (
	cliclickTool = platform.Tool{
		Name:        "cliclick",
		InstallHint: "cliclick not found. Install with: brew install cliclick",
	}
	swiftTool = platform.Tool{
		Name:        "swift",
		InstallHint: "swift not found. Install the Xcode command line tools with: xcode-select --install",
	}
	screencaptureTool = platform.Tool{
		Name:        "screencapture",
		InstallHint: "screencapture should be built-in on macOS",
	}
	systemProfilerTool = platform.Tool{
		Name:        "system_profiler",
		InstallHint: "system_profiler should be built-in on macOS",
	}
)

const (
	accessibilityProbeTimeout   = 3 * time.Second
	screenRecordingProbeTimeout = 15 * time.Second
)

const (
	accessibilityDenied = "Accessibility permission not granted. " +
		"Go to System Settings > Privacy & Security > Accessibility and enable your terminal app."
	screenRecordingDenied = "Screen Recording permission not granted. " +
		"Go to System Settings > Privacy & Security > Screen Recording, enable your terminal app, then restart it."
)

// CGWindowListCopyWindowInfo only returns window names when Screen
// Recording permission is granted.
const screenRecordingScript = `
import CoreGraphics
let windows = CGWindowListCopyWindowInfo([.optionOnScreenOnly, .excludeDesktopElements], kCGNullWindowID) as? [[String: Any]] ?? []
let namedWindows = windows.filter { ($0["kCGWindowOwnerName"] as? String) != nil && ($0["kCGWindowName"] as? String) != nil }
print(namedWindows.count > 0 ? "granted" : "denied")
`

// Diagnoser implements platform.Diagnoser for macOS.
type Diagnoser struct {
	run runner.Runner
}

// Ensure Diagnoser implements platform.Diagnoser.
var _ platform.Diagnoser = (*Diagnoser)(nil)

// NewDiagnoser creates a new macOS diagnoser.
func NewDiagnoser(r runner.Runner) *Diagnoser {
	return &Diagnoser{run: r}
}

func toolFor(c platform.Capability) platform.Tool {
	switch c {
	case platform.CapScreenshot:
		return screencaptureTool
	case platform.CapScroll:
		return swiftTool
	case platform.CapScreenSize:
		return systemProfilerTool
	default:
		return cliclickTool
	}
}

// Preflight checks that the binary behind c is installed.
func (d *Diagnoser) Preflight(c platform.Capability) error {
	_, err := platform.LookupTool(d.run, toolFor(c))
	return err
}

// Diagnose checks cliclick, the Accessibility permission (which cliclick
// needs to post events) and the Screen Recording permission.
func (d *Diagnoser) Diagnose(ctx context.Context) []platform.Check {
	cliclick := platform.ToolCheck(d.run, cliclickTool)
	checks := []platform.Check{cliclick}

	if cliclick.OK {
		checks = append(checks, d.checkAccessibility(ctx))
	} else {
		checks = append(checks, platform.Check{
			Name:   "accessibility",
			OK:     false,
			Detail: "skipped (cliclick not installed)",
		})
	}

	return append(checks, d.checkScreenRecording(ctx))
}

func (d *Diagnoser) checkAccessibility(ctx context.Context) platform.Check {
	res := d.run.Run(ctx, CursorArgs(), accessibilityProbeTimeout)
	if !res.OK() {
		return platform.Check{Name: "accessibility", OK: false, Detail: accessibilityDenied}
	}
	return platform.Check{Name: "accessibility", OK: true, Detail: "granted"}
}

func (d *Diagnoser) checkScreenRecording(ctx context.Context) platform.Check {
	res := d.run.Run(ctx, []string{"swift", "-e", screenRecordingScript}, screenRecordingProbeTimeout)
	if err := res.Err("Screen Recording check"); err != nil {
		return platform.Check{Name: "screen_recording", OK: false, Detail: err.Error()}
	}
	if strings.TrimSpace(res.Stdout) == "denied" {
		return platform.Check{Name: "screen_recording", OK: false, Detail: screenRecordingDenied}
	}
	return platform.Check{Name: "screen_recording", OK: true, Detail: "granted"}
}
