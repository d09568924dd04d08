package darwin

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// modifierNames maps accepted modifier spellings to cliclick's kd:/ku: names.
var modifierNames = map[string]string{
	"cmd":     "cmd",
	"command": "cmd",
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"opt":     "alt",
	"option":  "alt",
	"shift":   "shift",
	"fn":      "fn",
}

// keyNames maps accepted key spellings to cliclick's kp: names.
var keyNames = map[string]string{
	"return":        "return",
	"enter":         "return",
	"tab":           "tab",
	"space":         "space",
	"escape":        "esc",
	"esc":           "esc",
	"delete":        "delete",
	"backspace":     "delete",
	"forwarddelete": "fwd-delete",
	"up":            "arrow-up",
	"down":          "arrow-down",
	"left":          "arrow-left",
	"right":         "arrow-right",
	"home":          "home",
	"end":           "end",
	"pageup":        "page-up",
	"pagedown":      "page-down",
	"f1":            "f1",
	"f2":            "f2",
	"f3":            "f3",
	"f4":            "f4",
	"f5":            "f5",
	"f6":            "f6",
	"f7":            "f7",
	"f8":            "f8",
	"f9":            "f9",
	"f10":           "f10",
	"f11":           "f11",
	"f12":           "f12",
	"f13":           "f13",
	"f14":           "f14",
	"f15":           "f15",
	"f16":           "f16",
}

// KeyComboArgs decomposes a combo like "cmd+shift+s" into cliclick actions:
// key-down for each modifier in the order given, a press for each
// remaining key, then key-up for the modifiers in reverse order.
//
//	"cmd+c"  -> kd:cmd t:c ku:cmd
//	"Return" -> kp:return
//
// cliclick's kp: only knows named keys, so printable characters are sent
// with t: while the modifiers are held.
func KeyComboArgs(combo string) ([]string, error) {
	var modifiers, keys []string
	for _, part := range strings.Split(combo, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if mod, ok := modifierNames[part]; ok {
			modifiers = append(modifiers, mod)
			continue
		}
		action, err := keyAction(part)
		if err != nil {
			return nil, err
		}
		keys = append(keys, action)
	}
	if len(modifiers) == 0 && len(keys) == 0 {
		return nil, fmt.Errorf("key requires a key combo (e.g., cmd+c, Return, ctrl+shift+a)")
	}

	args := make([]string, 0, 2*len(modifiers)+len(keys))
	for _, mod := range modifiers {
		args = append(args, "kd:"+mod)
	}
	args = append(args, keys...)
	for i := len(modifiers) - 1; i >= 0; i-- {
		args = append(args, "ku:"+modifiers[i])
	}
	return args, nil
}

func keyAction(key string) (string, error) {
	if name, ok := keyNames[key]; ok {
		return "kp:" + name, nil
	}
	if utf8.RuneCountInString(key) == 1 {
		return "t:" + key, nil
	}
	return "", fmt.Errorf("unknown key: %q", key)
}
