package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/computer-use/internal/config"
	"github.com/mj1618/computer-use/internal/logging"
	"github.com/mj1618/computer-use/internal/output"
	"github.com/mj1618/computer-use/internal/platform"
	"github.com/mj1618/computer-use/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "computer-use",
	Short: "Native computer automation CLI (macOS + Linux)",
	Long: `Drive the mouse, keyboard and screen through the platform's native
automation tools (cliclick on macOS, xdotool and scrot on Linux).

Every command prints a result envelope: human-readable text by default,
{"success":...,"data":...,"error":...} with --json.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return fmt.Errorf("unknown command: %s. Run 'computer-use --help' for usage.", args[0])
	},
}

// Loaded by the root PersistentPreRunE before any subcommand runs.
var (
	cfg    = config.Default()
	logger = slog.Default()
)

// providerFactory builds the platform provider. Tests replace it to
// inject a fake runner.
var providerFactory = func() (*platform.Provider, error) {
	return platform.NewProvider(platform.Options{Config: cfg, Logger: logger})
}

// errReported marks a failure whose output was already written, so
// Execute only sets the exit code.
var errReported = errors.New("failure already reported")

// Execute runs the root command and exits 1 on any failure.
func Execute() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func run(args []string) error {
	// Flag parsing can fail before PersistentPreRunE resolves the
	// format, so honor --json up front.
	if hasJSONFlag(args) {
		output.OutputFormat = output.FormatJSON
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		output.Fail(err)
	}
	return err
}

func hasJSONFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "--json" || a == "--json=true" {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().Bool("json", false, "Output a JSON envelope instead of human-readable text")
	rootCmd.PersistentFlags().String("format", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $XDG_CONFIG_HOME/computer-use/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := rootCmd.PersistentFlags().GetBool("json")
		formatStr, _ := rootCmd.PersistentFlags().GetString("format")
		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		if jsonMode {
			format = output.FormatJSON
		}
		output.OutputFormat = format
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		path, _ := rootCmd.PersistentFlags().GetString("config")
		explicit := path != ""
		if !explicit {
			path = config.DefaultPath()
		}
		loaded, err := config.Load(path, explicit)
		if err != nil {
			return err
		}
		cfg = loaded

		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		logger = logging.Setup(level, cfg.LogLevel)
		logger.Debug("config loaded", "path", path, "format", string(format))
		return nil
	}
}
