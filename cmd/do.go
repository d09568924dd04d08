package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mj1618/computer-use/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DoResult is the output of a batch do command.
type DoResult struct {
	Steps     int          `yaml:"steps"     json:"steps"`
	Completed int          `yaml:"completed" json:"completed"`
	Results   []StepResult `yaml:"results"   json:"results"`
}

// StepResult is the output for a single step within a batch.
type StepResult struct {
	Step    int    `yaml:"step"             json:"step"`
	Command string `yaml:"command"          json:"command"`
	OK      bool   `yaml:"ok"               json:"ok"`
	Error   string `yaml:"error,omitempty"  json:"error,omitempty"`
	Result  any    `yaml:"result,omitempty" json:"result,omitempty"`
}

// doStep is one parsed batch entry.
type doStep struct {
	Command string
	Params  map[string]any
}

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Execute multiple actions in a batch",
	Long: `Execute a sequence of actions from a YAML list on stdin.

Each step is a command name with its parameters as a map. Steps execute
sequentially, and by default execution stops on the first error.

Supported step types: click, move, drag, type, key, cursor, scroll,
screen-size, screenshot, sleep

Example:
  computer-use do <<'EOF'
  - click: { x: 500, y: 300 }
  - type: { text: "hello world" }
  - key: { key: "Return" }
  - sleep: { ms: 500 }
  - scroll: { direction: down, amount: 5 }
  - cursor
  EOF`,
	Args: cobra.NoArgs,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
}

func runDo(cmd *cobra.Command, args []string) error {
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return errors.New("no steps provided on stdin. Pipe a YAML list of actions")
	}

	var raw []any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML steps: %w", err)
	}
	steps, err := parseSteps(raw)
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	result, stepErr := runSteps(cmd.Context(), s, steps, stopOnError)
	if stepErr == nil {
		return output.OK(result)
	}

	if output.OutputFormat == output.FormatText {
		if err := output.Print(result); err != nil {
			return err
		}
		return stepErr
	}
	env := output.Failure(stepErr.Error())
	env.Data = result
	if err := output.Print(env); err != nil {
		return err
	}
	return errReported
}

// parseSteps accepts entries of the form `- name: {params}` or a bare
// `- name` for steps without parameters.
func parseSteps(raw []any) ([]doStep, error) {
	if len(raw) == 0 {
		return nil, errors.New("no steps provided. Expected a YAML list of actions")
	}
	steps := make([]doStep, 0, len(raw))
	for i, item := range raw {
		switch v := item.(type) {
		case string:
			steps = append(steps, doStep{Command: v})
		case map[string]any:
			if len(v) != 1 {
				return nil, fmt.Errorf("step %d: expected exactly one action key, got %d", i+1, len(v))
			}
			for name, p := range v {
				params, ok := p.(map[string]any)
				if p != nil && !ok {
					return nil, fmt.Errorf("step %d: parameters for %q must be a map", i+1, name)
				}
				steps = append(steps, doStep{Command: name, Params: params})
			}
		default:
			return nil, fmt.Errorf("step %d: expected an action map", i+1)
		}
	}
	return steps, nil
}

// runSteps executes steps in order. The returned error describes the first
// failed step; with stopOnError the remaining steps are skipped.
func runSteps(ctx context.Context, s *session, steps []doStep, stopOnError bool) (DoResult, error) {
	result := DoResult{Steps: len(steps), Results: make([]StepResult, 0, len(steps))}
	var firstErr error

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		res, err := executeStep(ctx, s, step.Command, step.Params)
		sr := StepResult{Step: i + 1, Command: step.Command, OK: err == nil, Result: res}
		if err != nil {
			sr.Error = err.Error()
			sr.Result = nil
			if firstErr == nil {
				firstErr = fmt.Errorf("step %d: %w", i+1, err)
			}
		} else {
			result.Completed++
		}
		result.Results = append(result.Results, sr)
		if err != nil && stopOnError {
			break
		}
	}
	return result, firstErr
}
