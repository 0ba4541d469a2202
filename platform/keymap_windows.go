//go:build windows

package platform

const (
	vkBackspace = 0x08
	vkTab       = 0x09
	vkEnter     = 0x0D
	vkShift     = 0x10
	vkCtrl      = 0x11
	vkAlt       = 0x12
	vkEsc       = 0x1B
	vkSpace     = 0x20
	vkLwin      = 0x5B
	vkRwin      = 0x5C
)

// vkByToken maps canonical key tokens to Windows virtual-key codes.
// Modifiers are not listed; they are handled separately in combo matching.
var vkByToken = map[string]uint32{
	"a": 0x41, "b": 0x42, "c": 0x43, "d": 0x44, "e": 0x45,
	"f": 0x46, "g": 0x47, "h": 0x48, "i": 0x49, "j": 0x4A,
	"k": 0x4B, "l": 0x4C, "m": 0x4D, "n": 0x4E, "o": 0x4F,
	"p": 0x50, "q": 0x51, "r": 0x52, "s": 0x53, "t": 0x54,
	"u": 0x55, "v": 0x56, "w": 0x57, "x": 0x58, "y": 0x59, "z": 0x5A,
	"0": 0x30, "1": 0x31, "2": 0x32, "3": 0x33, "4": 0x34,
	"5": 0x35, "6": 0x36, "7": 0x37, "8": 0x38, "9": 0x39,
	"f1": 0x70, "f2": 0x71, "f3": 0x72, "f4": 0x73,
	"f5": 0x74, "f6": 0x75, "f7": 0x76, "f8": 0x77,
	"f9": 0x78, "f10": 0x79, "f11": 0x7A, "f12": 0x7B,
	"space": vkSpace, "enter": vkEnter, "esc": vkEsc,
	"tab": vkTab, "backspace": vkBackspace,
	"insert": 0x2D, "delete": 0x2E,
	"home": 0x24, "end": 0x23, "pageup": 0x21, "pagedown": 0x22,
	"left": 0x25, "up": 0x26, "right": 0x27, "down": 0x28,
	"printscreen": 0x2C,
	";":           0xBA,
	"=":           0xBB,
	",":           0xBC,
	"-":           0xBD,
	".":           0xBE,
	"/":           0xBF,
	"`":           0xC0,
	"[":           0xDB,
	"\\":          0xDC,
	"]":           0xDD,
	"'":           0xDE,
}

var tokenByVK = func() map[uint32]string {
	m := make(map[uint32]string, len(vkByToken))
	for tok, vk := range vkByToken {
		m[vk] = tok
	}
	return m
}()

// tokenForVK returns the canonical token for a virtual-key code,
// "" for keys the engine does not track (modifiers, media keys, ...).
func tokenForVK(vk uint32) string {
	return tokenByVK[vk]
}

// runeForToken returns the printable character a token produces, 0 for
// special keys. Buffer matching is case-insensitive, so shift state is
// deliberately ignored for letters.
func runeForToken(token string) rune {
	if token == "space" {
		return ' '
	}
	r := []rune(token)
	if len(r) == 1 {
		return r[0]
	}
	return 0
}
