package cmd

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/spf13/cobra"
)

// ScrollResult is the output of scroll.
type ScrollResult struct {
	Direction string `yaml:"direction" json:"direction"`
	Amount    int    `yaml:"amount"    json:"amount"`
}

var errScrollAmount = errors.New("--amount must be a positive integer")

var scrollCmd = &cobra.Command{
	Use:   "scroll <up|down|left|right>",
	Short: "Scroll in a direction",
	Long: `Scroll the view under the cursor by a number of lines. The amount
defaults to scroll.default_amount from the config file (3) and is capped at
scroll.max_amount (100).`,
	RunE: runScroll,
}

func init() {
	rootCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().String("amount", "", "Lines to scroll (positive integer)")
}

func runScroll(cmd *cobra.Command, args []string) error {
	var dirArg string
	if len(args) > 0 {
		dirArg = args[0]
	}
	direction, err := platform.ParseScrollDirection(dirArg)
	if err != nil {
		return err
	}

	amount := cfg.Scroll.DefaultAmount
	if cmd.Flags().Changed("amount") {
		raw, _ := cmd.Flags().GetString("amount")
		if amount, err = parseScrollAmount(raw); err != nil {
			return err
		}
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	result, err := doScroll(cmd.Context(), s, direction, amount)
	if err != nil {
		return err
	}
	return output.OK(result)
}

func parseScrollAmount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, errScrollAmount
	}
	return n, nil
}

func scrollStep(ctx context.Context, s *session, params map[string]any) (any, error) {
	direction, err := platform.ParseScrollDirection(stringParam(params, "direction", ""))
	if err != nil {
		return nil, err
	}
	amount := s.cfg.Scroll.DefaultAmount
	if _, ok := params["amount"]; ok {
		n, ok := lookupInt(params, "amount")
		if !ok || n < 1 {
			return nil, errScrollAmount
		}
		amount = n
	}
	return doScroll(ctx, s, direction, amount)
}

func doScroll(ctx context.Context, s *session, direction platform.ScrollDirection, amount int) (ScrollResult, error) {
	amount = min(amount, s.cfg.Scroll.MaxAmount)
	if err := s.preflight(platform.CapScroll); err != nil {
		return ScrollResult{}, err
	}
	if err := s.provider.Inputter.Scroll(ctx, direction, amount); err != nil {
		return ScrollResult{}, err
	}
	return ScrollResult{Direction: string(direction), Amount: amount}, nil
}
