package cmd

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/computer-use/internal/runner"
)

func TestClick(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("click", "500", "300", "--button", "right", "--json"); err != nil {
		t.Fatal(err)
	}
	want := `{"success":true,"data":{"x":500,"y":300,"button":"right"},"error":null}` + "\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got := env.fake.Last(); got != "xdotool mousemove --sync 500 300 click 3" {
		t.Errorf("argv = %q", got)
	}
}

func TestClick_NegativeCoordinates(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("click", "--", "-1200", "40"); err != nil {
		t.Fatal(err)
	}
	if got := env.stdout.String(); got != "x: -1200\ny: 40\nbutton: left\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestClick_InvalidArgs(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"click"}, "click requires <x> <y> coordinates"},
		{[]string{"click", "12px", "5"}, "click requires <x> <y> coordinates"},
		{[]string{"click", "1", "abc"}, "click requires <x> <y> coordinates"},
		{[]string{"click", "1", "2", "--button", "side"}, "unknown button: side. Use left, right, middle, or double"},
		{[]string{"move", "1"}, "move requires <x> <y> coordinates"},
		{[]string{"drag", "1", "2", "3"}, "drag requires <fromX> <fromY> <toX> <toY>"},
		{[]string{"type"}, "type requires text argument"},
		{[]string{"key"}, "key requires a key combo (e.g., cmd+c, Return, ctrl+shift+a)"},
		{[]string{"scroll", "sideways"}, "scroll requires direction: up, down, left, or right"},
		{[]string{"scroll", "up", "--amount", "0"}, "--amount must be a positive integer"},
		{[]string{"scroll", "up", "--amount", "lots"}, "--amount must be a positive integer"},
	}
	for _, tt := range tests {
		env := newTestEnv(t)
		err := env.run(tt.args...)
		if err == nil || err.Error() != tt.want {
			t.Errorf("%v: err = %v, want %q", tt.args, err, tt.want)
		}
		if len(env.fake.Calls) != 0 {
			t.Errorf("%v: no binary should run, got %v", tt.args, env.fake.Last())
		}
	}
}

func TestPreflight_MissingTool(t *testing.T) {
	env := newTestEnv(t)
	env.fake.Missing["xdotool"] = true

	err := env.run("move", "1", "2")
	want := "xdotool not found. Install with: apt install xdotool (Debian/Ubuntu) or dnf install xdotool (Fedora)"
	if err == nil || err.Error() != want {
		t.Errorf("err = %v", err)
	}
	if len(env.fake.Calls) != 0 {
		t.Error("xdotool should not run when missing")
	}
}

func TestBackendFailure(t *testing.T) {
	env := newTestEnv(t)
	env.fake.Queue("xdotool", runner.Result{ExitCode: 1, Stderr: "Can't open display"})

	if err := env.run("--json", "drag", "1", "2", "3", "4"); err == nil {
		t.Fatal("expected error")
	}
	want := `{"success":false,"data":null,"error":"drag failed: Can't open display"}` + "\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("got %s", got)
	}
}

func TestTypeJoinsArgs(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("--json", "type", "hello", "wörld"); err != nil {
		t.Fatal(err)
	}
	want := `{"success":true,"data":{"typed":11,"text":"hello wörld"},"error":null}` + "\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("got %s", got)
	}
	if got := env.fake.Last(); got != "xdotool type --clearmodifiers --delay 20 -- hello wörld" {
		t.Errorf("argv = %q", got)
	}
}

func TestKey(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("key", "cmd+shift+s"); err != nil {
		t.Fatal(err)
	}
	if got := env.stdout.String(); got != "key: cmd+shift+s\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := env.fake.Last(); got != "xdotool key --clearmodifiers super+shift+s" {
		t.Errorf("argv = %q", got)
	}
}

func TestKey_RejectsSeparateParts(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("key", "cmd", "c"); err == nil {
		t.Fatal("expected error for a combo split across arguments")
	}
	if len(env.fake.Calls) != 0 {
		t.Errorf("no key should be pressed, got %v", env.fake.Calls)
	}
}

func TestScroll_DefaultAndClamp(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run("scroll", "down"); err != nil {
		t.Fatal(err)
	}
	if got := env.fake.Last(); got != "xdotool click --repeat 3 5" {
		t.Errorf("argv = %q", got)
	}

	if err := env.run("--json", "scroll", "left", "--amount", "500"); err != nil {
		t.Fatal(err)
	}
	want := `{"success":true,"data":{"direction":"left","amount":100},"error":null}` + "\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("got %s", got)
	}
}

func TestScroll_ConfiguredDefault(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[scroll]\ndefault_amount = 7\nmax_amount = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := env.run("--config", path, "scroll", "up"); err != nil {
		t.Fatal(err)
	}
	if got := env.fake.Last(); got != "xdotool click --repeat 7 4" {
		t.Errorf("argv = %q", got)
	}
	if err := env.run("--config", path, "scroll", "up", "--amount", "50"); err != nil {
		t.Fatal(err)
	}
	if got := env.fake.Last(); got != "xdotool click --repeat 10 4" {
		t.Errorf("argv = %q", got)
	}
}

func TestCursor_Malformed(t *testing.T) {
	env := newTestEnv(t)
	env.fake.Queue("xdotool", runnerOK("garbage"))

	if err := env.run("cursor"); err == nil {
		t.Error("expected error for malformed output")
	}
}

func TestScreenSize(t *testing.T) {
	env := newTestEnv(t)
	env.fake.Queue("xdotool", runnerOK("1920 1080"))

	if err := env.run("--json", "screen-size"); err != nil {
		t.Fatal(err)
	}
	want := `{"success":true,"data":{"width":1920,"height":1080},"error":null}` + "\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("got %s", got)
	}
}

func TestScreenshot_Base64RemovesTempFile(t *testing.T) {
	env := newTestEnv(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(path, []byte("[screenshot]\ntemp_dir = \""+tmp+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	env.fake.OnRun = writePNG(t, 40, 20)

	if err := env.run("--json", "--config", path, "screenshot"); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Success bool `json:"success"`
		Data    ScreenshotResult
	}
	if err := json.Unmarshal(env.stdout.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Success || got.Data.Format != "png" || got.Data.Width != 40 || got.Data.Height != 20 {
		t.Errorf("unexpected result: %+v", got)
	}
	if _, err := base64.StdEncoding.DecodeString(got.Data.Base64Image); err != nil {
		t.Errorf("invalid base64: %v", err)
	}

	argv := env.fake.Calls[0].Argv
	target := argv[len(argv)-1]
	if !strings.HasPrefix(filepath.Base(target), "computer-use-screenshot-") {
		t.Errorf("unexpected temp path %q", target)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("temp file should be removed, stat err = %v", err)
	}
}

func TestScreenshot_FileWithScale(t *testing.T) {
	env := newTestEnv(t)
	env.fake.OnRun = writePNG(t, 100, 50)
	file := filepath.Join(t.TempDir(), "shot.png")

	if err := env.run("screenshot", "--file", file, "--scale", "0.5", "--display", "2"); err != nil {
		t.Fatal(err)
	}
	want := "file: " + file + "\nformat: png\nwidth: 50\nheight: 25\n"
	if got := env.stdout.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := strings.Join(env.fake.Calls[0].Argv[:4], " "); got != "scrot -o -M 1" {
		t.Errorf("argv = %v", env.fake.Calls[0].Argv)
	}
}

func TestScreenshot_InvalidOptions(t *testing.T) {
	for _, args := range [][]string{
		{"screenshot", "--scale", "0"},
		{"screenshot", "--scale", "1.5"},
		{"screenshot", "--display", "main"},
	} {
		env := newTestEnv(t)
		if err := env.run(args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestDoctor(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("DISPLAY", ":0")
	env.fake.Queue("xdotool", runnerOK("1920 1080"))

	if err := env.run("doctor"); err != nil {
		t.Fatal(err)
	}
	out := env.stdout.String()
	for _, want := range []string{
		"  OK  xdotool: found at /usr/bin/xdotool\n",
		"  OK  scrot: found at /usr/bin/scrot\n",
		"  OK  display: :0\n",
		"\nAll checks passed.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDoctor_FailureJSON(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("DISPLAY", ":0")
	env.fake.Missing["scrot"] = true

	if err := env.run("--json", "doctor"); err == nil {
		t.Fatal("expected failure exit")
	}
	var got struct {
		Success bool         `json:"success"`
		Data    DoctorResult `json:"data"`
		Error   string       `json:"error"`
	}
	if err := json.Unmarshal(env.stdout.Bytes(), &got); err != nil {
		t.Fatalf("%v\n%s", err, env.stdout.String())
	}
	if got.Success || got.Data.AllOK || got.Error != "Some checks failed." || len(got.Data.Checks) != 3 {
		t.Errorf("unexpected envelope: %+v", got)
	}
	if env.stderr.Len() != 0 {
		t.Errorf("failure should not be printed twice: %q", env.stderr.String())
	}
}
