package cmd

import (
	"context"
	"errors"

	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/spf13/cobra"
)

// ClickResult is the output of click.
type ClickResult struct {
	X      int    `yaml:"x"      json:"x"`
	Y      int    `yaml:"y"      json:"y"`
	Button string `yaml:"button" json:"button"`
}

const clickUsage = "click requires <x> <y> coordinates"

var clickCmd = &cobra.Command{
	Use:   "click <x> <y>",
	Short: "Click at screen coordinates",
	Long: `Click at absolute screen coordinates.

Coordinates left of or above the primary display are negative; pass them
after "--" so they are not read as flags:
  computer-use click -- -1200 300`,
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	clickCmd.Flags().String("button", "left", "Mouse button: left, right, middle, double")
}

func runClick(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return errors.New(clickUsage)
	}
	coords, err := platform.ParseCoordinates(args[:2])
	if err != nil {
		return errors.New(clickUsage)
	}
	buttonStr, _ := cmd.Flags().GetString("button")
	button, err := platform.ParseMouseButton(buttonStr)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	result, err := doClick(cmd.Context(), s, coords[0], coords[1], button)
	if err != nil {
		return err
	}
	return output.OK(result)
}

func clickStep(ctx context.Context, s *session, params map[string]any) (any, error) {
	coords, err := requireInts(params, clickUsage, "x", "y")
	if err != nil {
		return nil, err
	}
	button, err := platform.ParseMouseButton(stringParam(params, "button", "left"))
	if err != nil {
		return nil, err
	}
	return doClick(ctx, s, coords[0], coords[1], button)
}

func doClick(ctx context.Context, s *session, x, y int, button platform.MouseButton) (ClickResult, error) {
	if err := s.preflight(platform.CapInput); err != nil {
		return ClickResult{}, err
	}
	if err := s.provider.Inputter.Click(ctx, x, y, button); err != nil {
		return ClickResult{}, err
	}
	return ClickResult{X: x, Y: y, Button: string(button)}, nil
}
