//go:build windows

package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	openClipboard    = user32.NewProc("OpenClipboard")
	closeClipboard   = user32.NewProc("CloseClipboard")
	emptyClipboard   = user32.NewProc("EmptyClipboard")
	getClipboardData = user32.NewProc("GetClipboardData")
	setClipboardData = user32.NewProc("SetClipboardData")
	globalAlloc      = kernel32.NewProc("GlobalAlloc")
	globalLock       = kernel32.NewProc("GlobalLock")
	globalUnlock     = kernel32.NewProc("GlobalUnlock")
)

const (
	cfUnicodeText = 13
	gmemMoveable  = 0x0002
)

// WindowsClipboard implements Clipboard via the Win32 clipboard API.
type WindowsClipboard struct{}

// NewClipboard creates the Windows clipboard backend.
func NewClipboard() Clipboard {
	return &WindowsClipboard{}
}

// withOpen runs fn with the clipboard held open. Opening is retried a few
// times because another process may hold the clipboard briefly.
func (c *WindowsClipboard) withOpen(fn func() error) error {
	opened := false
	for attempt := 0; attempt < 10; attempt++ {
		if r, _, _ := openClipboard.Call(0); r != 0 {
			opened = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !opened {
		return fmt.Errorf("failed to open clipboard after retries")
	}
	defer closeClipboard.Call()
	return fn()
}

// Get retrieves text from the clipboard. An empty string with no error
// means the clipboard holds no text data.
func (c *WindowsClipboard) Get() (string, error) {
	var text string
	err := c.withOpen(func() error {
		h, _, callErr := getClipboardData.Call(cfUnicodeText)
		if h == 0 {
			if callErr != nil && callErr != syscall.Errno(0) {
				return fmt.Errorf("GetClipboardData failed: %w", callErr)
			}
			return nil
		}

		l, _, callErr := globalLock.Call(h)
		if l == 0 {
			return fmt.Errorf("GlobalLock failed: %w", callErr)
		}
		defer globalUnlock.Call(h)

		text = windows.UTF16PtrToString((*uint16)(unsafe.Pointer(l)))
		return nil
	})
	return text, err
}

// Set replaces the clipboard contents with text.
func (c *WindowsClipboard) Set(text string) error {
	return c.withOpen(func() error {
		emptyClipboard.Call()

		buf, err := windows.UTF16FromString(text)
		if err != nil {
			return fmt.Errorf("UTF16 conversion failed: %w", err)
		}

		n := len(buf) * 2 // bytes
		h, _, callErr := globalAlloc.Call(gmemMoveable, uintptr(n))
		if h == 0 {
			return fmt.Errorf("GlobalAlloc failed: %w", callErr)
		}

		l, _, callErr := globalLock.Call(h)
		if l == 0 {
			return fmt.Errorf("GlobalLock failed: %w", callErr)
		}
		dest := unsafe.Slice((*uint16)(unsafe.Pointer(l)), len(buf))
		copy(dest, buf)
		globalUnlock.Call(h)

		if r, _, callErr := setClipboardData.Call(cfUnicodeText, h); r == 0 {
			return fmt.Errorf("SetClipboardData failed: %w", callErr)
		}
		return nil
	})
}
