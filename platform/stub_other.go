//go:build !windows

package platform

import "context"

// The stub backends let the module build on non-Windows platforms; every
// operation reports ErrUnsupported.

type stubHook struct{}

// NewHook returns a hook backend that cannot start on this platform.
func NewHook() Hook { return stubHook{} }

func (stubHook) Start(context.Context) error { return ErrUnsupported }
func (stubHook) Stop() error                 { return nil }
func (stubHook) AddHotkey(string, bool, func()) (Handle, error) {
	return 0, ErrUnsupported
}
func (stubHook) AddKeyDown(string, func()) (Handle, error) { return 0, ErrUnsupported }
func (stubHook) AddKeyUp(string, func()) (Handle, error)   { return 0, ErrUnsupported }
func (stubHook) AddReleaseListener(func(KeyEvent)) (Handle, error) {
	return 0, ErrUnsupported
}
func (stubHook) Remove(Handle) {}

type stubInjector struct{}

// NewInjector returns an injector that cannot synthesize input here.
func NewInjector() Injector { return stubInjector{} }

func (stubInjector) Backspace(int) error      { return ErrUnsupported }
func (stubInjector) TypeRune(rune) error      { return ErrUnsupported }
func (stubInjector) Paste() error             { return ErrUnsupported }
func (stubInjector) MoveMouse(int, int) error { return ErrUnsupported }
func (stubInjector) Click(MouseButton) error  { return ErrUnsupported }

type stubClipboard struct{}

// NewClipboard returns a clipboard backend without an implementation here.
func NewClipboard() Clipboard { return stubClipboard{} }

func (stubClipboard) Get() (string, error) { return "", ErrUnsupported }
func (stubClipboard) Set(string) error     { return ErrUnsupported }

type stubPointer struct{}

// NewPointer returns a pointer backend without an implementation here.
func NewPointer() Pointer { return stubPointer{} }

func (stubPointer) Position() (int, int, error) { return 0, 0, ErrUnsupported }
