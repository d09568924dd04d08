package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Call is one recorded invocation of a Fake runner.
type Call struct {
	Argv    []string
	Timeout time.Duration
}

// Fake is an in-memory Runner for tests. Results are matched by the
// program name (argv[0]); unmatched programs succeed with empty output.
type Fake struct {
	mu      sync.Mutex
	Results map[string][]Result
	Missing map[string]bool
	Calls   []Call

	// OnRun, if set, is invoked for every call before a result is chosen.
	OnRun func(argv []string)
}

// Ensure Fake implements Runner.
var _ Runner = (*Fake)(nil)

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{
		Results: make(map[string][]Result),
		Missing: make(map[string]bool),
	}
}

// Queue appends a result returned for the next call of program.
func (f *Fake) Queue(program string, res Result) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Results[program] = append(f.Results[program], res)
	return f
}

// Run records the call and pops the next queued result for argv[0].
func (f *Fake) Run(_ context.Context, argv []string, timeout time.Duration) Result {
	if f.OnRun != nil {
		f.OnRun(argv)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, Call{Argv: append([]string(nil), argv...), Timeout: timeout})
	if len(argv) == 0 {
		return Result{ExitCode: -1, Stderr: "empty command", Timeout: timeout}
	}
	queue := f.Results[argv[0]]
	if len(queue) == 0 {
		return Result{Timeout: timeout}
	}
	res := queue[0]
	f.Results[argv[0]] = queue[1:]
	res.Timeout = timeout
	return res
}

// LookPath reports programs listed in Missing as not found.
func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// Last returns the most recent call's argv joined by spaces.
func (f *Fake) Last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return ""
	}
	return strings.Join(f.Calls[len(f.Calls)-1].Argv, " ")
}
