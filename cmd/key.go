package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/spf13/cobra"
)

// KeyResult is the output of key.
type KeyResult struct {
	Key string `yaml:"key" json:"key"`
}

const keyUsage = "key requires a key combo (e.g., cmd+c, Return, ctrl+shift+a)"

var keyCmd = &cobra.Command{
	Use:   "key <combo>",
	Short: "Press a key combination",
	Long: `Press a key or a "+"-separated combination such as cmd+c, Return or
ctrl+shift+a. Modifiers are held in the order given and released in reverse.

Modifiers: cmd, ctrl, alt (option), shift, fn
Keys: return, tab, space, escape, delete, forwarddelete, up, down, left,
right, home, end, pageup, pagedown, f1-f16, or any single character.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKey,
}

func init() {
	rootCmd.AddCommand(keyCmd)
}

func runKey(cmd *cobra.Command, args []string) error {
	var combo string
	if len(args) > 0 {
		combo = args[0]
	}
	s, err := newSession()
	if err != nil {
		return err
	}
	result, err := doKey(cmd.Context(), s, combo)
	if err != nil {
		return err
	}
	return output.OK(result)
}

func keyStep(ctx context.Context, s *session, params map[string]any) (any, error) {
	return doKey(ctx, s, stringParam(params, "key", ""))
}

func doKey(ctx context.Context, s *session, combo string) (KeyResult, error) {
	if strings.TrimSpace(combo) == "" {
		return KeyResult{}, errors.New(keyUsage)
	}
	if err := s.preflight(platform.CapInput); err != nil {
		return KeyResult{}, err
	}
	if err := s.provider.Inputter.KeyCombo(ctx, combo); err != nil {
		return KeyResult{}, err
	}
	return KeyResult{Key: combo}, nil
}
