package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type clickResult struct {
	X      int    `yaml:"x"      json:"x"`
	Y      int    `yaml:"y"      json:"y"`
	Button string `yaml:"button" json:"button"`
}

// capture redirects Stdout and Stderr and sets the format for one test.
func capture(t *testing.T, format Format) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr, oldFormat := Stdout, Stderr, OutputFormat
	Stdout, Stderr, OutputFormat = stdout, stderr, format
	t.Cleanup(func() {
		Stdout, Stderr, OutputFormat = oldOut, oldErr, oldFormat
	})
	return stdout, stderr
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", " yaml "} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestOK_JSON(t *testing.T) {
	stdout, _ := capture(t, FormatJSON)

	if err := OK(clickResult{X: 100, Y: 200, Button: "left"}); err != nil {
		t.Fatal(err)
	}
	want := `{"success":true,"data":{"x":100,"y":200,"button":"left"},"error":null}` + "\n"
	if got := stdout.String(); got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestFail_JSON(t *testing.T) {
	stdout, stderr := capture(t, FormatJSON)

	Fail(errors.New("click requires <x> <y> coordinates"))
	want := `{"success":false,"data":null,"error":"click requires <x> <y> coordinates"}` + "\n"
	if got := stdout.String(); got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr should be empty in json mode, got %q", stderr.String())
	}
}

func TestFail_Text(t *testing.T) {
	stdout, stderr := capture(t, FormatText)

	Fail(errors.New("boom"))
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q", stdout.String())
	}
	if got := stderr.String(); got != "Error: boom\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestOK_YAML(t *testing.T) {
	stdout, _ := capture(t, FormatYAML)

	if err := OK(clickResult{X: 1, Y: 2, Button: "right"}); err != nil {
		t.Fatal(err)
	}
	var env struct {
		Success bool           `yaml:"success"`
		Data    map[string]any `yaml:"data"`
		Error   *string        `yaml:"error"`
	}
	if err := yaml.Unmarshal(stdout.Bytes(), &env); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, stdout.String())
	}
	if !env.Success || env.Error != nil || env.Data["button"] != "right" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestOK_PrettyJSON(t *testing.T) {
	stdout, _ := capture(t, FormatJSON)
	PrettyOutput = true
	t.Cleanup(func() { PrettyOutput = false })

	if err := OK(clickResult{X: 1}); err != nil {
		t.Fatal(err)
	}
	if strings.Count(stdout.String(), "\n") <= 1 {
		t.Errorf("pretty JSON should be multi-line, got %s", stdout.String())
	}
	var env Envelope
	if err := json.Unmarshal(stdout.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
}

func TestOK_Text(t *testing.T) {
	stdout, _ := capture(t, FormatText)

	if err := OK(clickResult{X: 100, Y: 200, Button: "left"}); err != nil {
		t.Fatal(err)
	}
	want := "x: 100\ny: 200\nbutton: left\n"
	if got := stdout.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatHuman(t *testing.T) {
	type screen struct {
		Name  string `yaml:"name"`
		Width int    `yaml:"width"`
		Main  bool   `yaml:"main"`
	}
	type nested struct {
		A int    `yaml:"a"`
		B string `yaml:"b"`
	}

	tests := []struct {
		name string
		data any
		want string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"number", 42, "42"},
		{
			"base64",
			struct {
				Image  string `yaml:"base64_image"`
				Format string `yaml:"format"`
			}{"aGVsbG8=", "png"},
			"base64_image: [8 chars]\nformat: png",
		},
		{
			"list of objects",
			struct {
				Width   int      `yaml:"width"`
				Screens []screen `yaml:"screens"`
			}{1512, []screen{{"Color LCD", 1512, true}, {"DELL", 2560, false}}},
			"width: 1512\nscreens:\n  - name=Color LCD  width=1512  main=true\n  - name=DELL  width=2560  main=false",
		},
		{
			"list of scalars",
			map[string][]string{"keys": {"a", "b"}},
			"keys:\n  - a\n  - b",
		},
		{
			"nested object",
			struct {
				Step   string `yaml:"step"`
				Result nested `yaml:"result"`
			}{"click", nested{A: 1, B: "x\"y"}},
			`step: click` + "\n" + `result: {"a":1,"b":"x\"y"}`,
		},
	}
	for _, tt := range tests {
		got, err := FormatHuman(tt.data)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s:\ngot  %q\nwant %q", tt.name, got, tt.want)
		}
	}
}
