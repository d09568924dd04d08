package cmd

import (
	"context"

	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/spf13/cobra"
)

var cursorCmd = &cobra.Command{
	Use:   "cursor",
	Short: "Print the current cursor position",
	Args:  cobra.NoArgs,
	RunE:  runCursor,
}

func init() {
	rootCmd.AddCommand(cursorCmd)
}

func runCursor(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	result, err := doCursor(cmd.Context(), s)
	if err != nil {
		return err
	}
	return output.OK(result)
}

func cursorStep(ctx context.Context, s *session, _ map[string]any) (any, error) {
	return doCursor(ctx, s)
}

func doCursor(ctx context.Context, s *session) (platform.Point, error) {
	if err := s.preflight(platform.CapInput); err != nil {
		return platform.Point{}, err
	}
	return s.provider.Inputter.CursorPosition(ctx)
}
