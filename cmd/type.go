package cmd

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/spf13/cobra"
)

// TypeResult is the output of type.
type TypeResult struct {
	Typed int    `yaml:"typed" json:"typed"`
	Text  string `yaml:"text"  json:"text"`
}

const typeUsage = "type requires text argument"

var typeCmd = &cobra.Command{
	Use:   "type <text...>",
	Short: "Type text at the keyboard focus",
	Long: `Type text at the current keyboard focus. Multiple arguments are joined
with single spaces. Put text that starts with "-" after "--".`,
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
}

func runType(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	result, err := doType(cmd.Context(), s, strings.Join(args, " "))
	if err != nil {
		return err
	}
	return output.OK(result)
}

func typeStep(ctx context.Context, s *session, params map[string]any) (any, error) {
	return doType(ctx, s, stringParam(params, "text", ""))
}

func doType(ctx context.Context, s *session, text string) (TypeResult, error) {
	if text == "" {
		return TypeResult{}, errors.New(typeUsage)
	}
	if err := s.preflight(platform.CapInput); err != nil {
		return TypeResult{}, err
	}
	if err := s.provider.Inputter.TypeText(ctx, text); err != nil {
		return TypeResult{}, err
	}
	return TypeResult{Typed: utf8.RuneCountInString(text), Text: text}, nil
}
