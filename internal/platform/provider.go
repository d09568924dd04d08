package platform

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/mj1618/computer-use/internal/config"
	"github.com/mj1618/computer-use/internal/runner"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Name          string
	Inputter      Inputter
	Screenshotter Screenshotter
	ScreenReader  ScreenReader
	Diagnoser     Diagnoser
}

// Options carries the dependencies every backend needs.
type Options struct {
	Runner runner.Runner
	Config *config.Config
	Logger *slog.Logger
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("unsupported platform: %s. Only macOS and Linux are supported", runtime.GOOS)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go and internal/platform/linux/init.go.
var NewProviderFunc func(opts Options) (*Provider, error)

// NewProvider returns a Provider for the current OS, filling in defaults
// for any zero-valued option.
func NewProvider(opts Options) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Runner == nil {
		opts.Runner = runner.New(opts.Logger)
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	return NewProviderFunc(opts)
}
