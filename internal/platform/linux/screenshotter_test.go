package linux

import (
	"context"
	"reflect"
	"testing"

	"github.com/mj1618/computer-use/internal/config"
	"github.com/mj1618/computer-use/internal/runner"
)

func TestScreenshotArgs(t *testing.T) {
	if got, want := ScreenshotArgs("/tmp/s.png", ""), []string{"scrot", "-o", "-F", "/tmp/s.png"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScreenshotArgs_DisplayIsOneBased(t *testing.T) {
	tests := []struct {
		display string
		monitor string
	}{
		{"1", "0"},
		{"2", "1"},
		{"10", "9"},
	}
	for _, tt := range tests {
		got := ScreenshotArgs("/tmp/s.png", tt.display)
		want := []string{"scrot", "-o", "-M", tt.monitor, "-F", "/tmp/s.png"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ScreenshotArgs(display=%q) = %v, want %v", tt.display, got, want)
		}
	}
}

func TestParseGeometry(t *testing.T) {
	info, err := ParseGeometry("1920 1080\n")
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 1920 || info.Height != 1080 || info.Screens != nil {
		t.Errorf("got %+v", info)
	}
	for _, bad := range []string{"", "1920", "wide tall"} {
		if _, err := ParseGeometry(bad); err == nil {
			t.Errorf("ParseGeometry(%q) should fail", bad)
		}
	}
}

func TestScreenReader_ScreenSize(t *testing.T) {
	fake := runner.NewFake()
	fake.Queue("xdotool", runner.Result{Stdout: "2560 1440"})

	info, err := NewScreenReader(fake, config.Default()).ScreenSize(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 2560 || info.Height != 1440 {
		t.Errorf("got %+v", info)
	}
	if got := fake.Last(); got != "xdotool getdisplaygeometry" {
		t.Errorf("argv = %q", got)
	}
}
