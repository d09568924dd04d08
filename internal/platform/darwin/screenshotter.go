package darwin

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/mj1618/computer-use/internal/config"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/mj1618/computer-use/internal/runner"
)

// Screenshotter implements platform.Screenshotter with screencapture.
type Screenshotter struct {
	run runner.Runner
	cfg *config.Config
}

// Ensure Screenshotter implements platform.Screenshotter.
var _ platform.Screenshotter = (*Screenshotter)(nil)

// NewScreenshotter creates a new macOS screenshotter.
func NewScreenshotter(r runner.Runner, cfg *config.Config) *Screenshotter {
	return &Screenshotter{run: r, cfg: cfg}
}

// ScreenshotArgs returns the screencapture argv. -x silences the shutter
// sound; -D selects a display by 1-based index.
func ScreenshotArgs(path, display string) []string {
	argv := []string{"screencapture", "-x"}
	if display != "" {
		argv = append(argv, "-D", display)
	}
	return append(argv, path)
}

// Capture writes a PNG of the screen to path.
func (s *Screenshotter) Capture(ctx context.Context, path, display string) error {
	return s.run.Run(ctx, ScreenshotArgs(path, display), s.cfg.ScreenshotTimeout()).Err("screenshot")
}

// ScreenReader implements platform.ScreenReader with system_profiler.
type ScreenReader struct {
	run runner.Runner
	cfg *config.Config
}

// Ensure ScreenReader implements platform.ScreenReader.
var _ platform.ScreenReader = (*ScreenReader)(nil)

// NewScreenReader creates a new macOS display geometry reader.
func NewScreenReader(r runner.Runner, cfg *config.Config) *ScreenReader {
	return &ScreenReader{run: r, cfg: cfg}
}

// ScreenSizeArgs returns the system_profiler argv for display info.
func ScreenSizeArgs() []string {
	return []string{"system_profiler", "SPDisplaysDataType", "-json"}
}

// ScreenSize reports the main display's size and every attached display.
func (s *ScreenReader) ScreenSize(ctx context.Context) (*platform.ScreenInfo, error) {
	res := s.run.Run(ctx, ScreenSizeArgs(), s.cfg.ScreenSizeTimeout())
	if err := res.Err("system_profiler"); err != nil {
		return nil, err
	}
	return ParseDisplays([]byte(res.Stdout))
}

// spDisplays mirrors the subset of `system_profiler SPDisplaysDataType -json`
// that describes attached displays. Each GPU lists its displays under
// spdisplays_ndrvs.
type spDisplays struct {
	GPUs []struct {
		Displays []struct {
			Name            string `json:"_name"`
			Resolution      string `json:"_spdisplays_resolution"`
			PixelResolution string `json:"spdisplays_pixelresolution"`
			Main            string `json:"spdisplays_main"`
		} `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

var resolutionPattern = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

func parseResolution(s string) (w, h int) {
	m := resolutionPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0
	}
	w, _ = strconv.Atoi(m[1])
	h, _ = strconv.Atoi(m[2])
	return w, h
}

// ParseDisplays decodes system_profiler JSON. The reported width and
// height are those of the main display, or the first one when no display
// is flagged as main.
func ParseDisplays(data []byte) (*platform.ScreenInfo, error) {
	var sp spDisplays
	if err := json.Unmarshal(data, &sp); err != nil {
		return nil, fmt.Errorf("failed to parse display info: %w", err)
	}

	var displays []platform.Display
	for _, gpu := range sp.GPUs {
		for _, d := range gpu.Displays {
			name := d.Name
			if name == "" {
				name = "Unknown"
			}
			w, h := parseResolution(d.Resolution)
			rw, rh := parseResolution(d.PixelResolution)
			displays = append(displays, platform.Display{
				Name:         name,
				Width:        w,
				Height:       h,
				RetinaWidth:  rw,
				RetinaHeight: rh,
				Main:         d.Main == "spdisplays_yes",
			})
		}
	}
	if len(displays) == 0 {
		return nil, fmt.Errorf("no displays found")
	}

	main := displays[0]
	for _, d := range displays {
		if d.Main {
			main = d
			break
		}
	}
	return &platform.ScreenInfo{Width: main.Width, Height: main.Height, Screens: displays}, nil
}
