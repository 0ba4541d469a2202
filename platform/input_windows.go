//go:build windows

package platform

import (
	"fmt"
	"time"
	"unicode/utf16"
	"unsafe"
)

var (
	sendInput      = user32.NewProc("SendInput")
	mapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
	setCursorPos   = user32.NewProc("SetCursorPos")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	keyeventfKeyup   = 0x0002
	keyeventfUnicode = 0x0004
	mapvkVkToVsc     = 0

	vkV = 0x56

	mouseeventfLeftdown   = 0x0002
	mouseeventfLeftup     = 0x0004
	mouseeventfRightdown  = 0x0008
	mouseeventfRightup    = 0x0010
	mouseeventfMiddledown = 0x0020
	mouseeventfMiddleup   = 0x0040
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type keyInput struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // pad to the size of the C INPUT union
}

type mouseInput struct {
	dx          int32
	dy          int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type mseInput struct {
	inputType uint32
	_         uint32
	mi        mouseInput
}

// WindowsInjector implements Injector via SendInput.
type WindowsInjector struct{}

// NewInjector creates the Windows synthetic-input backend.
func NewInjector() Injector {
	return &WindowsInjector{}
}

func sendKeys(inputs []keyInput) error {
	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if ret == 0 {
		return fmt.Errorf("SendInput failed: %w", err)
	}
	return nil
}

func keyStroke(vk uint16) []keyInput {
	scan, _, _ := mapVirtualKeyW.Call(uintptr(vk), mapvkVkToVsc)
	return []keyInput{
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vk, wScan: uint16(scan)}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vk, wScan: uint16(scan), dwFlags: keyeventfKeyup}},
	}
}

// Backspace sends n backspace keystrokes with a short gap so the target
// application keeps up.
func (i *WindowsInjector) Backspace(n int) error {
	for j := 0; j < n; j++ {
		if err := sendKeys(keyStroke(vkBackspace)); err != nil {
			return err
		}
		time.Sleep(2 * time.Millisecond)
	}
	return nil
}

// TypeRune sends one printable character as a unicode keystroke.
func (i *WindowsInjector) TypeRune(r rune) error {
	for _, u := range utf16.Encode([]rune{r}) {
		inputs := []keyInput{
			{inputType: inputKeyboard, ki: keyboardInput{wScan: u, dwFlags: keyeventfUnicode}},
			{inputType: inputKeyboard, ki: keyboardInput{wScan: u, dwFlags: keyeventfUnicode | keyeventfKeyup}},
		}
		if err := sendKeys(inputs); err != nil {
			return err
		}
	}
	return nil
}

// Paste sends Ctrl+V with scan codes for better compatibility with
// elevated applications.
func (i *WindowsInjector) Paste() error {
	ctrlScan, _, _ := mapVirtualKeyW.Call(vkCtrl, mapvkVkToVsc)
	vScan, _, _ := mapVirtualKeyW.Call(vkV, mapvkVkToVsc)

	inputs := []keyInput{
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkCtrl, wScan: uint16(ctrlScan)}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkV, wScan: uint16(vScan)}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkV, wScan: uint16(vScan), dwFlags: keyeventfKeyup}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: vkCtrl, wScan: uint16(ctrlScan), dwFlags: keyeventfKeyup}},
	}
	if err := sendKeys(inputs); err != nil {
		return err
	}

	time.Sleep(20 * time.Millisecond)
	return nil
}

// MoveMouse places the pointer at absolute virtual-desktop coordinates,
// which may span multiple monitors.
func (i *WindowsInjector) MoveMouse(x, y int) error {
	r, _, err := setCursorPos.Call(uintptr(int32(x)), uintptr(int32(y)))
	if r == 0 {
		return fmt.Errorf("SetCursorPos failed: %w", err)
	}
	return nil
}

// Click presses and releases the given button at the current position.
func (i *WindowsInjector) Click(button MouseButton) error {
	var down, up uint32
	switch button {
	case LeftButton:
		down, up = mouseeventfLeftdown, mouseeventfLeftup
	case RightButton:
		down, up = mouseeventfRightdown, mouseeventfRightup
	case MiddleButton:
		down, up = mouseeventfMiddledown, mouseeventfMiddleup
	default:
		return fmt.Errorf("unknown mouse button %d", button)
	}

	inputs := []mseInput{
		{inputType: inputMouse, mi: mouseInput{dwFlags: down}},
		{inputType: inputMouse, mi: mouseInput{dwFlags: up}},
	}
	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if ret == 0 {
		return fmt.Errorf("SendInput failed: %w", err)
	}
	return nil
}
