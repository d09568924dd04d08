// Package darwin provides macOS platform support by driving cliclick,
// swift, screencapture and system_profiler as subprocesses.
// The argv builders and output parsers are plain Go and compile on every
// OS so they can be tested anywhere; only init.go is darwin-only.
package darwin
