package linux

import (
	"errors"
	"strings"
)

// keyNames maps accepted spellings to X11 keysym names understood by
// xdotool. Anything not listed is passed through lower-cased, so single
// characters and other keysyms still work.
var keyNames = map[string]string{
	"cmd":           "super",
	"command":       "super",
	"ctrl":          "ctrl",
	"control":       "ctrl",
	"alt":           "alt",
	"opt":           "alt",
	"option":        "alt",
	"shift":         "shift",
	"fn":            "fn",
	"return":        "Return",
	"enter":         "Return",
	"tab":           "Tab",
	"space":         "space",
	"escape":        "Escape",
	"esc":           "Escape",
	"delete":        "BackSpace",
	"backspace":     "BackSpace",
	"forwarddelete": "Delete",
	"up":            "Up",
	"down":          "Down",
	"left":          "Left",
	"right":         "Right",
	"home":          "Home",
	"end":           "End",
	"pageup":        "Prior",
	"pagedown":      "Next",
	"f1":            "F1",
	"f2":            "F2",
	"f3":            "F3",
	"f4":            "F4",
	"f5":            "F5",
	"f6":            "F6",
	"f7":            "F7",
	"f8":            "F8",
	"f9":            "F9",
	"f10":           "F10",
	"f11":           "F11",
	"f12":           "F12",
	"f13":           "F13",
	"f14":           "F14",
	"f15":           "F15",
	"f16":           "F16",
}

// MapKeyCombo rewrites "cmd+shift+s" into xdotool's "super+shift+s".
// xdotool presses the parts in order and releases them in reverse itself.
func MapKeyCombo(combo string) (string, error) {
	var mapped []string
	for _, part := range strings.Split(combo, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if name, ok := keyNames[strings.ToLower(part)]; ok {
			part = name
		}
		mapped = append(mapped, part)
	}
	if len(mapped) == 0 {
		return "", errors.New("key requires a key combo (e.g., cmd+c, Return, ctrl+shift+a)")
	}
	return strings.Join(mapped, "+"), nil
}

// KeyArgs returns the xdotool argv for a key combo.
func KeyArgs(combo string) ([]string, error) {
	mapped, err := MapKeyCombo(combo)
	if err != nil {
		return nil, err
	}
	return []string{"xdotool", "key", "--clearmodifiers", mapped}, nil
}
