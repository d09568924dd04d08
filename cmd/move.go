package cmd

import (
	"context"
	"errors"

	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/spf13/cobra"
)

// MoveResult is the output of move.
type MoveResult struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

const moveUsage = "move requires <x> <y> coordinates"

var moveCmd = &cobra.Command{
	Use:   "move <x> <y>",
	Short: "Move the cursor to screen coordinates",
	RunE:  runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return errors.New(moveUsage)
	}
	coords, err := platform.ParseCoordinates(args[:2])
	if err != nil {
		return errors.New(moveUsage)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	result, err := doMove(cmd.Context(), s, coords[0], coords[1])
	if err != nil {
		return err
	}
	return output.OK(result)
}

func moveStep(ctx context.Context, s *session, params map[string]any) (any, error) {
	coords, err := requireInts(params, moveUsage, "x", "y")
	if err != nil {
		return nil, err
	}
	return doMove(ctx, s, coords[0], coords[1])
}

func doMove(ctx context.Context, s *session, x, y int) (MoveResult, error) {
	if err := s.preflight(platform.CapInput); err != nil {
		return MoveResult{}, err
	}
	if err := s.provider.Inputter.MoveMouse(ctx, x, y); err != nil {
		return MoveResult{}, err
	}
	return MoveResult{X: x, Y: y}, nil
}
