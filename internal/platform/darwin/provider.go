package darwin

import (
	"fmt"

	"github.com/mj1618/computer-use/internal/platform"
)

// New wires the macOS backends into a Provider.
func New(opts platform.Options) (*platform.Provider, error) {
	if opts.Runner == nil || opts.Config == nil {
		return nil, fmt.Errorf("darwin provider requires a runner and config")
	}
	return &platform.Provider{
		Name:          "darwin",
		Inputter:      NewInputter(opts.Runner, opts.Config),
		Screenshotter: NewScreenshotter(opts.Runner, opts.Config),
		ScreenReader:  NewScreenReader(opts.Runner, opts.Config),
		Diagnoser:     NewDiagnoser(opts.Runner),
	}, nil
}
