// Package output renders command results as a response envelope in the
// selected format.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// OutputFormat is the current output format, set by the root command's
// --format and --json flags.
var OutputFormat Format = FormatText

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout and Stderr are where results and text-mode errors are written.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s. Use text, json, or yaml", s)
	}
}

// Envelope wraps every command result. Exactly one of Data and Error is
// meaningful, selected by Success.
type Envelope struct {
	Success bool    `yaml:"success" json:"success"`
	Data    any     `yaml:"data"    json:"data"`
	Error   *string `yaml:"error"   json:"error"`
}

// Success wraps data in a successful envelope.
func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Failure wraps msg in a failed envelope.
func Failure(msg string) Envelope {
	return Envelope{Success: false, Error: &msg}
}

// Print serializes v to Stdout in the current output format.
func Print(v any) error {
	switch OutputFormat {
	case FormatJSON:
		return PrintJSON(Stdout, v, PrettyOutput)
	case FormatYAML:
		return PrintYAML(Stdout, v)
	case FormatText:
		s, err := FormatHuman(v)
		if err != nil {
			return err
		}
		if s != "" {
			_, err = fmt.Fprintln(Stdout, s)
		}
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// OK reports a successful result: the envelope in json and yaml modes,
// the human-readable data in text mode.
func OK(data any) error {
	if OutputFormat == FormatText {
		return Print(data)
	}
	return Print(Success(data))
}

// Fail reports err: a failed envelope on Stdout in json and yaml modes,
// "Error: msg" on Stderr in text mode.
func Fail(err error) {
	if OutputFormat == FormatText {
		fmt.Fprintf(Stderr, "Error: %s\n", err)
		return
	}
	if perr := Print(Failure(err.Error())); perr != nil {
		fmt.Fprintf(Stderr, "Error: %s\n", err)
	}
}
