package linux

import (
	"fmt"

	"github.com/mj1618/computer-use/internal/platform"
)

// New wires the X11 backends into a Provider.
func New(opts platform.Options) (*platform.Provider, error) {
	if opts.Runner == nil || opts.Config == nil {
		return nil, fmt.Errorf("linux provider requires a runner and config")
	}
	return &platform.Provider{
		Name:          "linux",
		Inputter:      NewInputter(opts.Runner, opts.Config),
		Screenshotter: NewScreenshotter(opts.Runner, opts.Config),
		ScreenReader:  NewScreenReader(opts.Runner, opts.Config),
		Diagnoser:     NewDiagnoser(opts.Runner),
	}, nil
}
