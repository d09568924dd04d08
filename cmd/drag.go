package cmd

import (
	"context"
	"errors"

	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/spf13/cobra"
)

// DragResult is the output of drag.
type DragResult struct {
	FromX int `yaml:"fromX" json:"fromX"`
	FromY int `yaml:"fromY" json:"fromY"`
	ToX   int `yaml:"toX"   json:"toX"`
	ToY   int `yaml:"toY"   json:"toY"`
}

const dragUsage = "drag requires <fromX> <fromY> <toX> <toY>"

var dragCmd = &cobra.Command{
	Use:   "drag <fromX> <fromY> <toX> <toY>",
	Short: "Drag from one point to another",
	Long:  "Press the left button at the start point, move to the end point and release.",
	RunE:  runDrag,
}

func init() {
	rootCmd.AddCommand(dragCmd)
}

func runDrag(cmd *cobra.Command, args []string) error {
	if len(args) < 4 {
		return errors.New(dragUsage)
	}
	c, err := platform.ParseCoordinates(args[:4])
	if err != nil {
		return errors.New(dragUsage)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	result, err := doDrag(cmd.Context(), s, c[0], c[1], c[2], c[3])
	if err != nil {
		return err
	}
	return output.OK(result)
}

func dragStep(ctx context.Context, s *session, params map[string]any) (any, error) {
	c, err := requireInts(params, dragUsage, "fromX", "fromY", "toX", "toY")
	if err != nil {
		return nil, err
	}
	return doDrag(ctx, s, c[0], c[1], c[2], c[3])
}

func doDrag(ctx context.Context, s *session, fromX, fromY, toX, toY int) (DragResult, error) {
	if err := s.preflight(platform.CapInput); err != nil {
		return DragResult{}, err
	}
	if err := s.provider.Inputter.Drag(ctx, fromX, fromY, toX, toY); err != nil {
		return DragResult{}, err
	}
	return DragResult{FromX: fromX, FromY: fromY, ToX: toX, ToY: toY}, nil
}
