package darwin

import (
	"context"
	"reflect"
	"testing"

	"github.com/mj1618/computer-use/internal/config"
	"github.com/mj1618/computer-use/internal/runner"
)

const twoDisplays = `{
  "SPDisplaysDataType" : [
    {
      "_name" : "Apple M2",
      "spdisplays_ndrvs" : [
        {
          "_name" : "Color LCD",
          "_spdisplays_resolution" : "1512 x 982 @ 120.00Hz",
          "spdisplays_pixelresolution" : "3024 x 1964",
          "spdisplays_main" : "spdisplays_yes"
        },
        {
          "_name" : "DELL U2720Q",
          "_spdisplays_resolution" : "2560 x 1440 @ 60.00Hz",
          "spdisplays_pixelresolution" : "5120 x 2880"
        }
      ]
    }
  ]
}`

func TestScreenshotArgs(t *testing.T) {
	got := ScreenshotArgs("/tmp/a.png", "")
	want := []string{"screencapture", "-x", "/tmp/a.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = ScreenshotArgs("/tmp/a.png", "2")
	want = []string{"screencapture", "-x", "-D", "2", "/tmp/a.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseDisplays(t *testing.T) {
	info, err := ParseDisplays([]byte(twoDisplays))
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 1512 || info.Height != 982 {
		t.Errorf("main size = %dx%d, want 1512x982", info.Width, info.Height)
	}
	if len(info.Screens) != 2 {
		t.Fatalf("got %d screens, want 2", len(info.Screens))
	}
	ext := info.Screens[1]
	if ext.Name != "DELL U2720Q" || ext.Main || ext.RetinaWidth != 5120 || ext.RetinaHeight != 2880 {
		t.Errorf("unexpected external display: %+v", ext)
	}
}

func TestParseDisplays_NoMainUsesFirst(t *testing.T) {
	data := `{"SPDisplaysDataType":[{"spdisplays_ndrvs":[
		{"_spdisplays_resolution":"1920 x 1080"},
		{"_name":"Second","_spdisplays_resolution":"1280 x 720"}
	]}]}`
	info, err := ParseDisplays([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("got %dx%d, want 1920x1080", info.Width, info.Height)
	}
	if info.Screens[0].Name != "Unknown" {
		t.Errorf("unnamed display should be Unknown, got %q", info.Screens[0].Name)
	}
}

func TestParseDisplays_Errors(t *testing.T) {
	if _, err := ParseDisplays([]byte(`not json`)); err == nil {
		t.Error("expected parse error")
	}
	if _, err := ParseDisplays([]byte(`{"SPDisplaysDataType":[]}`)); err == nil || err.Error() != "no displays found" {
		t.Errorf("err = %v, want no displays found", err)
	}
}

func TestScreenReader_ScreenSize(t *testing.T) {
	fake := runner.NewFake()
	fake.Queue("system_profiler", runner.Result{Stdout: twoDisplays})
	cfg := config.Default()

	info, err := NewScreenReader(fake, cfg).ScreenSize(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 1512 {
		t.Errorf("width = %d", info.Width)
	}
	if got := fake.Calls[0].Timeout; got != cfg.ScreenSizeTimeout() {
		t.Errorf("timeout = %s", got)
	}
}

func TestScreenshotter_Failure(t *testing.T) {
	fake := runner.NewFake()
	fake.Queue("screencapture", runner.Result{ExitCode: 1, Stderr: "could not create image from display"})

	err := NewScreenshotter(fake, config.Default()).Capture(context.Background(), "/tmp/x.png", "")
	if err == nil || err.Error() != "screenshot failed: could not create image from display" {
		t.Errorf("err = %v", err)
	}
}
