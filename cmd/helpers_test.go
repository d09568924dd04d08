package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/computer-use/internal/config"
	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/mj1618/computer-use/internal/platform/linux"
	"github.com/mj1618/computer-use/internal/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// testEnv runs commands against the Linux backend with a fake runner.
type testEnv struct {
	t      *testing.T
	fake   *runner.Fake
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		t:      t,
		fake:   runner.NewFake(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	t.Setenv(config.EnvPath, filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("COMPUTER_USE_LOG_LEVEL", "error")

	oldFactory, oldCfg := providerFactory, cfg
	oldOut, oldErr := output.Stdout, output.Stderr
	providerFactory = func() (*platform.Provider, error) {
		return linux.New(platform.Options{Runner: env.fake, Config: cfg})
	}
	output.Stdout, output.Stderr = env.stdout, env.stderr
	output.OutputFormat = output.FormatText
	output.PrettyOutput = false

	t.Cleanup(func() {
		providerFactory, cfg = oldFactory, oldCfg
		output.Stdout, output.Stderr = oldOut, oldErr
		output.OutputFormat = output.FormatText
		output.PrettyOutput = false
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})
	resetFlags(rootCmd)
	return env
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// on the command tree between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func (e *testEnv) run(args ...string) error {
	e.t.Helper()
	e.stdout.Reset()
	e.stderr.Reset()
	resetFlags(rootCmd)
	output.OutputFormat = output.FormatText
	return run(args)
}

func (e *testEnv) runStdin(stdin string, args ...string) error {
	e.t.Helper()
	rootCmd.SetIn(strings.NewReader(stdin))
	return e.run(args...)
}

// writePNG is an OnRun hook that makes scrot produce a w x h image at the
// path following -F.
func writePNG(t *testing.T, w, h int) func([]string) {
	return func(argv []string) {
		if argv[0] != "scrot" {
			return
		}
		path := argv[len(argv)-1]
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for x := 0; x < w; x++ {
			img.Set(x, 0, color.RGBA{R: 255, A: 255})
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func runnerOK(stdout string) runner.Result {
	return runner.Result{Stdout: stdout}
}
