package platform

import (
	"context"
	"errors"
)

// ErrUnsupported is returned by the stub implementations on platforms
// without a global hook backend.
var ErrUnsupported = errors.New("global input hooks are not supported on this platform")

// MouseButton identifies which pointer button to synthesize.
type MouseButton int

const (
	LeftButton MouseButton = iota
	RightButton
	MiddleButton
)

func (b MouseButton) String() string {
	switch b {
	case LeftButton:
		return "left"
	case RightButton:
		return "right"
	case MiddleButton:
		return "middle"
	}
	return "unknown"
}

// KeyEvent is a single keyboard transition observed by the global hook.
type KeyEvent struct {
	// Key is the canonical token for the key ("a", "space", "enter", ...).
	Key string
	// Rune is the printable character the key produces, 0 for special keys.
	Rune rune
	// Down is true for presses, false for releases.
	Down bool
}

// Handle identifies one hook registration for later removal.
type Handle int

// Hook provides global keyboard event delivery. Callbacks run on the hook
// goroutine and must not block; blocking there stalls keyboard delivery
// system-wide.
type Hook interface {
	// Start installs the OS hook. It returns once the hook is active.
	Start(ctx context.Context) error
	// Stop removes the OS hook and releases all registrations.
	Stop() error

	// AddHotkey fires fn when the normalized combo ("ctrl+alt+n") is
	// pressed. With suppress set, the physical keystroke is swallowed
	// before other applications see it; implementations may refuse
	// suppression for combos they cannot swallow reliably.
	AddHotkey(combo string, suppress bool, fn func()) (Handle, error)
	// AddKeyDown fires fn each time the given key token is pressed.
	AddKeyDown(key string, fn func()) (Handle, error)
	// AddKeyUp fires fn each time the given key token is released.
	AddKeyUp(key string, fn func()) (Handle, error)
	// AddReleaseListener fires fn on every key release.
	AddReleaseListener(fn func(KeyEvent)) (Handle, error)
	// Remove drops a registration. Unknown handles are a no-op.
	Remove(handle Handle)
}

// Injector synthesizes keyboard and mouse input.
type Injector interface {
	// Backspace sends n backspace keystrokes.
	Backspace(n int) error
	// TypeRune sends one printable character.
	TypeRune(r rune) error
	// Paste sends the platform paste chord (Ctrl+V).
	Paste() error
	// MoveMouse places the pointer at absolute virtual-desktop coordinates.
	MoveMouse(x, y int) error
	// Click presses and releases the given button at the current position.
	Click(button MouseButton) error
}

// Clipboard provides access to the shared system clipboard.
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Pointer reports the current cursor position.
type Pointer interface {
	Position() (x, y int, err error)
}
