//go:build windows

package platform

import (
	"fmt"
	"unsafe"
)

var getCursorPos = user32.NewProc("GetCursorPos")

type point struct {
	x, y int32
}

// WindowsPointer implements Pointer via GetCursorPos.
type WindowsPointer struct{}

// NewPointer creates the Windows cursor-position backend.
func NewPointer() Pointer {
	return &WindowsPointer{}
}

// Position reports the cursor location in virtual-desktop coordinates.
func (p *WindowsPointer) Position() (int, int, error) {
	var pt point
	r, _, err := getCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return 0, 0, fmt.Errorf("GetCursorPos failed: %w", err)
	}
	return int(pt.x), int(pt.y), nil
}
