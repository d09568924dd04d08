// Package linux provides X11 platform support by driving xdotool and
// scrot as subprocesses. Only init.go is build-tagged.
package linux
