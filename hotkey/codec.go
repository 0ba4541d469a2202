package hotkey

import (
	"fmt"
	"strings"
)

// aliases maps upper-cased human spellings to the canonical hook tokens
// understood by the platform layer. Single characters not listed here are
// passed through lower-cased.
var aliases = map[string]string{
	"CTRL":      "ctrl",
	"CONTROL":   "ctrl",
	"ALT":       "alt",
	"SHIFT":     "shift",
	"WIN":       "win",
	"WINDOWS":   "win",
	"SUPER":     "win",
	"ESC":       "esc",
	"ESCAPE":    "esc",
	"ENTER":     "enter",
	"RETURN":    "enter",
	"SPACE":     "space",
	"TAB":       "tab",
	"BACKSPACE": "backspace",
	"BKSP":      "backspace",
	"DEL":       "delete",
	"DELETE":    "delete",
	"INS":       "insert",
	"INSERT":    "insert",
	"HOME":      "home",
	"END":       "end",
	"PGUP":      "pageup",
	"PAGEUP":    "pageup",
	"PGDN":      "pagedown",
	"PAGEDOWN":  "pagedown",
	"UP":        "up",
	"DOWN":      "down",
	"LEFT":      "left",
	"RIGHT":     "right",
	"PRINT":     "printscreen",
	"PRTSC":     "printscreen",
	"COMMA":     ",",
	"PERIOD":    ".",
	"DOT":       ".",
	"SEMICOLON": ";",
	"MINUS":     "-",
	"DASH":      "-",
	"EQUALS":    "=",
	"SLASH":     "/",
	"BACKSLASH": "\\",
	"QUOTE":     "'",
	"GRAVE":     "`",
	"BACKTICK":  "`",
	"LBRACKET":  "[",
	"RBRACKET":  "]",
	"F1":        "f1",
	"F2":        "f2",
	"F3":        "f3",
	"F4":        "f4",
	"F5":        "f5",
	"F6":        "f6",
	"F7":        "f7",
	"F8":        "f8",
	"F9":        "f9",
	"F10":       "f10",
	"F11":       "f11",
	"F12":       "f12",
}

// Normalize converts a human-entered shortcut string like "Ctrl+Alt+N" into
// the canonical token form "ctrl+alt+n". It is pure and idempotent:
// normalizing an already-normalized string yields the same result.
func Normalize(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("empty shortcut")
	}

	parts := strings.Split(raw, "+")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if canonical, ok := aliases[strings.ToUpper(part)]; ok {
			tokens = append(tokens, canonical)
			continue
		}
		tokens = append(tokens, strings.ToLower(part))
	}

	if len(tokens) == 0 {
		return "", fmt.Errorf("empty shortcut")
	}
	return strings.Join(tokens, "+"), nil
}
