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

// Screenshotter implements platform.Screenshotter with scrot.
type Screenshotter struct {
	run runner.Runner
	cfg *config.Config
}

// Ensure Screenshotter implements platform.Screenshotter.
var _ platform.Screenshotter = (*Screenshotter)(nil)

// NewScreenshotter creates a new X11 screenshotter.
func NewScreenshotter(r runner.Runner, cfg *config.Config) *Screenshotter {
	return &Screenshotter{run: r, cfg: cfg}
}

// ScreenshotArgs returns the scrot argv. -o overwrites path, -M selects a
// monitor. display is 1-based like screencapture -D; scrot counts from 0.
func ScreenshotArgs(path, display string) []string {
	argv := []string{"scrot", "-o"}
	if display != "" {
		monitor := display
		if n, err := strconv.Atoi(display); err == nil && n > 0 {
			monitor = strconv.Itoa(n - 1)
		}
		argv = append(argv, "-M", monitor)
	}
	return append(argv, "-F", path)
}

func (s *Screenshotter) Capture(ctx context.Context, path, display string) error {
	return s.run.Run(ctx, ScreenshotArgs(path, display), s.cfg.ScreenshotTimeout()).Err("screenshot")
}

// ScreenReader implements platform.ScreenReader with xdotool.
type ScreenReader struct {
	run runner.Runner
	cfg *config.Config
}

// Ensure ScreenReader implements platform.ScreenReader.
var _ platform.ScreenReader = (*ScreenReader)(nil)

// NewScreenReader creates a new X11 display geometry reader.
func NewScreenReader(r runner.Runner, cfg *config.Config) *ScreenReader {
	return &ScreenReader{run: r, cfg: cfg}
}

// ScreenSizeArgs returns the xdotool argv for the root window size.
func ScreenSizeArgs() []string {
	return []string{"xdotool", "getdisplaygeometry"}
}

// ParseGeometry parses `getdisplaygeometry` output such as "1920 1080".
func ParseGeometry(stdout string) (*platform.ScreenInfo, error) {
	fields := strings.Fields(stdout)
	if len(fields) < 2 {
		return nil, fmt.Errorf("unexpected xdotool output: %s", stdout)
	}
	w, errW := strconv.Atoi(fields[0])
	h, errH := strconv.Atoi(fields[1])
	if errW != nil || errH != nil {
		return nil, fmt.Errorf("unexpected xdotool output: %s", stdout)
	}
	return &platform.ScreenInfo{Width: w, Height: h}, nil
}

func (s *ScreenReader) ScreenSize(ctx context.Context) (*platform.ScreenInfo, error) {
	res := s.run.Run(ctx, ScreenSizeArgs(), s.cfg.ScreenSizeTimeout())
	if err := res.Err("screen size"); err != nil {
		return nil, err
	}
	return ParseGeometry(res.Stdout)
}
