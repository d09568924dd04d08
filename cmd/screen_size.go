package cmd

import (
	"context"

	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/spf13/cobra"
)

var screenSizeCmd = &cobra.Command{
	Use:   "screen-size",
	Short: "Print the main display size and attached displays",
	Args:  cobra.NoArgs,
	RunE:  runScreenSize,
}

func init() {
	rootCmd.AddCommand(screenSizeCmd)
}

func runScreenSize(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	result, err := doScreenSize(cmd.Context(), s)
	if err != nil {
		return err
	}
	return output.OK(result)
}

func screenSizeStep(ctx context.Context, s *session, params map[string]any) (any, error) {
	if boolParam(params, "refresh", false) {
		s.screens.invalidate()
	}
	return doScreenSize(ctx, s)
}

func doScreenSize(ctx context.Context, s *session) (*platform.ScreenInfo, error) {
	if err := s.preflight(platform.CapScreenSize); err != nil {
		return nil, err
	}
	return s.screens.screenSize(ctx, s.provider.ScreenReader)
}
