package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mj1618/computer-use/internal/config"
	"github.com/mj1618/computer-use/internal/platform"
)

// session carries what every operation needs. The CLI builds one per
// invocation; the MCP server keeps one for its lifetime.
type session struct {
	provider *platform.Provider
	cfg      *config.Config
	screens  *screenCache
}

func newSession() (*session, error) {
	provider, err := providerFactory()
	if err != nil {
		return nil, err
	}
	return &session{provider: provider, cfg: cfg, screens: newScreenCache(0)}, nil
}

// preflight fails with the install hint when the binary behind c is missing.
func (s *session) preflight(c platform.Capability) error {
	if s.provider.Diagnoser == nil {
		return nil
	}
	return s.provider.Diagnoser.Preflight(c)
}

// stepFunc runs one named operation from a parameter map, as found in a
// `do` step or an MCP tool call.
type stepFunc func(ctx context.Context, s *session, params map[string]any) (any, error)

var stepTable = map[string]stepFunc{
	"screenshot":  screenshotStep,
	"click":       clickStep,
	"move":        moveStep,
	"drag":        dragStep,
	"type":        typeStep,
	"key":         keyStep,
	"cursor":      cursorStep,
	"scroll":      scrollStep,
	"screen-size": screenSizeStep,
	"sleep":       sleepStep,
}

func stepNames() []string {
	names := make([]string, 0, len(stepTable))
	for name := range stepTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func executeStep(ctx context.Context, s *session, name string, params map[string]any) (any, error) {
	fn, ok := stepTable[name]
	if !ok {
		return nil, fmt.Errorf("unknown step type %q. Supported: %s", name, strings.Join(stepNames(), ", "))
	}
	if params == nil {
		params = map[string]any{}
	}
	return fn(ctx, s, params)
}

// SleepResult is the output of a sleep step.
type SleepResult struct {
	Slept string `yaml:"slept" json:"slept"`
}

func sleepStep(ctx context.Context, _ *session, params map[string]any) (any, error) {
	ms := intParam(params, "ms", 0)
	if ms <= 0 {
		return nil, errors.New("sleep requires ms > 0")
	}
	t := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer t.Stop()
	select {
	case <-t.C:
		return SleepResult{Slept: fmt.Sprintf("%dms", ms)}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Parameter extraction helpers for step maps. Values come from YAML
// (int, float64, string) or MCP JSON arguments (float64, string).

func stringParam(params map[string]any, key, defaultVal string) string {
	if v, ok := params[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]any, key string, defaultVal int) int {
	if n, ok := lookupInt(params, key); ok {
		return n
	}
	return defaultVal
}

func boolParam(params map[string]any, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		switch b := v.(type) {
		case bool:
			return b
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return parsed
			}
		}
	}
	return defaultVal
}

func floatParam(params map[string]any, key string, defaultVal float64) float64 {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case int64:
			return float64(n)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f
			}
		}
	}
	return defaultVal
}

// lookupInt reports whether key holds a whole number.
func lookupInt(params map[string]any, key string) (int, bool) {
	switch n := params[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case string:
		if v, err := platform.ParseCoordinate(n); err == nil {
			return v, true
		}
	}
	return 0, false
}

// requireInts extracts every key as a whole number, failing with usage
// when any is missing or malformed.
func requireInts(params map[string]any, usage string, keys ...string) ([]int, error) {
	vals := make([]int, len(keys))
	for i, k := range keys {
		v, ok := lookupInt(params, k)
		if !ok {
			return nil, errors.New(usage)
		}
		vals[i] = v
	}
	return vals, nil
}
