package cmd

import (
	"fmt"

	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/spf13/cobra"
)

// DoctorResult is the output of doctor.
type DoctorResult struct {
	Platform string           `yaml:"platform" json:"platform"`
	AllOK    bool             `yaml:"all_ok"   json:"all_ok"`
	Checks   []platform.Check `yaml:"checks"   json:"checks"`
}

const doctorFailed = "Some checks failed."

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check dependencies and permissions",
	Long: `Check that the automation tools are installed and permitted to run.

macOS: cliclick, Accessibility and Screen Recording permissions.
Linux: xdotool, scrot and a reachable X11 display.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	checks := s.provider.Diagnoser.Diagnose(cmd.Context())
	result := DoctorResult{
		Platform: s.provider.Name,
		AllOK:    platform.AllOK(checks),
		Checks:   checks,
	}

	if output.OutputFormat == output.FormatText {
		printChecklist(result)
	} else {
		env := output.Success(result)
		if !result.AllOK {
			env = output.Failure(doctorFailed)
			env.Data = result
		}
		if err := output.Print(env); err != nil {
			return err
		}
	}
	if !result.AllOK {
		return errReported
	}
	return nil
}

func printChecklist(result DoctorResult) {
	for _, c := range result.Checks {
		status := "OK"
		if !c.OK {
			status = "FAIL"
		}
		fmt.Fprintf(output.Stdout, "  %s  %s: %s\n", status, c.Name, c.Detail)
	}
	fmt.Fprintln(output.Stdout)
	if result.AllOK {
		fmt.Fprintln(output.Stdout, "All checks passed.")
	} else {
		fmt.Fprintln(output.Stdout, doctorFailed)
	}
}
