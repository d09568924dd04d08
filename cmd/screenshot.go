package cmd

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mj1618/computer-use/internal/imageutil"
	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/spf13/cobra"
)

// ScreenshotResult is the output of screenshot. Exactly one of File and
// Base64Image is set.
type ScreenshotResult struct {
	File        string `yaml:"file,omitempty"         json:"file,omitempty"`
	Base64Image string `yaml:"base64_image,omitempty" json:"base64_image,omitempty"`
	Format      string `yaml:"format"                 json:"format"`
	Width       int    `yaml:"width"                  json:"width"`
	Height      int    `yaml:"height"                 json:"height"`
}

// screenshotOptions selects where and how a capture is returned.
type screenshotOptions struct {
	File    string
	Display string
	Scale   float64
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the screen as PNG",
	Long: `Capture the screen. With --file the PNG is written there; otherwise it is
returned base64-encoded and the temporary file is removed.`,
	Args: cobra.NoArgs,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("file", "", "Write the PNG to this path instead of returning base64")
	screenshotCmd.Flags().String("display", "", "Capture only this display (1-based index)")
	screenshotCmd.Flags().Float64("scale", 1, "Scale factor in (0, 1] applied before returning the image")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	var opts screenshotOptions
	opts.File, _ = cmd.Flags().GetString("file")
	opts.Display, _ = cmd.Flags().GetString("display")
	opts.Scale, _ = cmd.Flags().GetFloat64("scale")

	s, err := newSession()
	if err != nil {
		return err
	}
	result, err := doScreenshot(cmd.Context(), s, opts)
	if err != nil {
		return err
	}
	return output.OK(result)
}

func screenshotStep(ctx context.Context, s *session, params map[string]any) (any, error) {
	return doScreenshot(ctx, s, screenshotOptions{
		File:    stringParam(params, "file", ""),
		Display: stringParam(params, "display", ""),
		Scale:   floatParam(params, "scale", 1),
	})
}

func (o screenshotOptions) validate() error {
	if o.Scale <= 0 || o.Scale > 1 {
		return fmt.Errorf("--scale must be greater than 0 and at most 1, got %g", o.Scale)
	}
	if o.Display != "" {
		if n, err := strconv.Atoi(o.Display); err != nil || n < 1 {
			return errors.New("--display must be a positive integer")
		}
	}
	return nil
}

func doScreenshot(ctx context.Context, s *session, opts screenshotOptions) (ScreenshotResult, error) {
	if err := opts.validate(); err != nil {
		return ScreenshotResult{}, err
	}
	if err := s.preflight(platform.CapScreenshot); err != nil {
		return ScreenshotResult{}, err
	}

	target := opts.File
	if target == "" {
		name := fmt.Sprintf("computer-use-screenshot-%d.png", time.Now().UnixMilli())
		target = filepath.Join(s.cfg.TempDir(), name)
		defer os.Remove(target)
	}

	if err := s.provider.Screenshotter.Capture(ctx, target, opts.Display); err != nil {
		return ScreenshotResult{}, err
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return ScreenshotResult{}, fmt.Errorf("read screenshot: %w", err)
	}
	if opts.Scale < 1 {
		if data, err = imageutil.ScalePNG(data, opts.Scale); err != nil {
			return ScreenshotResult{}, err
		}
		if opts.File != "" {
			if err := os.WriteFile(opts.File, data, 0o644); err != nil {
				return ScreenshotResult{}, fmt.Errorf("write screenshot: %w", err)
			}
		}
	}
	width, height, err := imageutil.Dimensions(data)
	if err != nil {
		return ScreenshotResult{}, err
	}

	result := ScreenshotResult{Format: "png", Width: width, Height: height}
	if opts.File != "" {
		result.File = opts.File
	} else {
		result.Base64Image = base64.StdEncoding.EncodeToString(data)
	}
	return result, nil
}
