//go:build windows

package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	setWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	callNextHookEx      = user32.NewProc("CallNextHookEx")
	unhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	peekMessage         = user32.NewProc("PeekMessageW")
	getAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
)

const (
	whKeyboardLL = 13
	wmKeydown    = 0x0100
	wmKeyup      = 0x0101
	wmSyskeydown = 0x0104
	wmSyskeyup   = 0x0105
	pmRemove     = 0x0001
)

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// comboSpec is a parsed key combination: modifier set plus an optional
// non-modifier key. vk == 0 means a modifier-only combo.
type comboSpec struct {
	ctrl, shift, alt, win bool
	vk                    uint32
}

func parseCombo(combo string) (comboSpec, error) {
	var spec comboSpec
	for _, tok := range strings.Split(combo, "+") {
		switch tok {
		case "ctrl":
			spec.ctrl = true
		case "shift":
			spec.shift = true
		case "alt":
			spec.alt = true
		case "win":
			spec.win = true
		case "":
		default:
			vk, ok := vkByToken[tok]
			if !ok {
				return spec, fmt.Errorf("unknown key %q in combo %q", tok, combo)
			}
			if spec.vk != 0 {
				return spec, fmt.Errorf("combo %q has more than one non-modifier key", combo)
			}
			spec.vk = vk
		}
	}
	if spec.vk == 0 && !spec.ctrl && !spec.shift && !spec.alt && !spec.win {
		return spec, fmt.Errorf("combo %q has no keys", combo)
	}
	return spec, nil
}

type hotkeyReg struct {
	spec     comboSpec
	suppress bool
	pressed  bool
	fn       func()
}

type keyReg struct {
	vk uint32
	fn func()
}

// WindowsHook implements Hook on top of a low-level keyboard hook
// (WH_KEYBOARD_LL). A single OS hook serves every registration.
type WindowsHook struct {
	mu        sync.Mutex
	hotkeys   map[Handle]*hotkeyReg
	downs     map[Handle]*keyReg
	ups       map[Handle]*keyReg
	listeners map[Handle]func(KeyEvent)
	next      Handle

	hook uintptr
	done chan struct{}
}

// NewHook creates the Windows hook backend.
func NewHook() Hook {
	return &WindowsHook{
		hotkeys:   make(map[Handle]*hotkeyReg),
		downs:     make(map[Handle]*keyReg),
		ups:       make(map[Handle]*keyReg),
		listeners: make(map[Handle]func(KeyEvent)),
	}
}

// Start installs the keyboard hook and runs its message loop on a locked
// OS thread until Stop or context cancellation.
func (h *WindowsHook) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.done != nil {
		h.mu.Unlock()
		return fmt.Errorf("hook already started")
	}
	h.done = make(chan struct{})
	h.mu.Unlock()

	errCh := make(chan error, 1)
	go h.run(errCh)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	go func() {
		<-ctx.Done()
		h.Stop()
	}()

	return nil
}

// Stop removes the OS hook. Registrations are kept so callers can tear
// them down individually; the hook simply stops delivering.
func (h *WindowsHook) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done == nil {
		return nil
	}
	select {
	case <-h.done:
	default:
		close(h.done)
	}
	if h.hook != 0 {
		unhookWindowsHookEx.Call(h.hook)
		h.hook = 0
	}
	return nil
}

func (h *WindowsHook) run(errCh chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hookProc := func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if nCode >= 0 {
			kb := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			if h.handleKey(wParam, kb) {
				return 1 // swallow the keystroke
			}
		}
		r, _, _ := callNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
		return r
	}

	hook, _, err := setWindowsHookEx.Call(
		whKeyboardLL,
		windows.NewCallback(hookProc),
		0,
		0,
	)
	if hook == 0 {
		errCh <- fmt.Errorf("SetWindowsHookEx failed: %w", err)
		return
	}

	h.mu.Lock()
	h.hook = hook
	done := h.done
	h.mu.Unlock()

	errCh <- nil

	var m msg
	for {
		select {
		case <-done:
			return
		default:
			r, _, _ := peekMessage.Call(
				uintptr(unsafe.Pointer(&m)),
				0,
				0,
				0,
				pmRemove,
			)
			if r != 0 {
				continue
			}
			runtime.Gosched()
		}
	}
}

// handleKey dispatches one hook event. It returns true when the keystroke
// must be swallowed before other applications see it.
func (h *WindowsHook) handleKey(wParam uintptr, kb *kbdllhookstruct) bool {
	isDown := wParam == wmKeydown || wParam == wmSyskeydown

	h.mu.Lock()
	defer h.mu.Unlock()

	eat := false
	if isDown {
		for _, reg := range h.hotkeys {
			if h.hotkeyHit(reg, kb.vkCode) {
				if !reg.pressed {
					reg.pressed = true
					reg.fn()
				}
				if reg.suppress {
					eat = true
				}
			}
		}
		for _, reg := range h.downs {
			if reg.vk == kb.vkCode {
				reg.fn()
			}
		}
		return eat
	}

	for _, reg := range h.hotkeys {
		if reg.pressed && (reg.spec.vk == kb.vkCode || reg.spec.vk == 0) {
			reg.pressed = false
		}
	}
	for _, reg := range h.ups {
		if reg.vk == kb.vkCode {
			reg.fn()
		}
	}
	if len(h.listeners) > 0 {
		if tok := tokenForVK(kb.vkCode); tok != "" {
			ev := KeyEvent{Key: tok, Rune: runeForToken(tok), Down: false}
			for _, fn := range h.listeners {
				fn(ev)
			}
		}
	}
	return false
}

func (h *WindowsHook) hotkeyHit(reg *hotkeyReg, vk uint32) bool {
	spec := reg.spec
	if spec.vk != 0 {
		if vk != spec.vk {
			return false
		}
	} else if !isModifierVK(vk, spec) {
		// Modifier-only combos trigger on the last of their modifiers.
		return false
	}
	return modifiersDown(spec)
}

func isModifierVK(vk uint32, spec comboSpec) bool {
	switch vk {
	case vkCtrl:
		return spec.ctrl
	case vkShift:
		return spec.shift
	case vkAlt:
		return spec.alt
	case vkLwin, vkRwin:
		return spec.win
	}
	return false
}

func modifiersDown(spec comboSpec) bool {
	return keyDown(vkCtrl) == spec.ctrl &&
		keyDown(vkShift) == spec.shift &&
		keyDown(vkAlt) == spec.alt &&
		(keyDown(vkLwin) || keyDown(vkRwin)) == spec.win
}

func keyDown(vk uint32) bool {
	r, _, _ := getAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}

// AddHotkey registers a combo callback. Suppression of modifier-only
// combos is refused: the modifiers must still reach the foreground
// application, so the chord cannot be swallowed cleanly.
func (h *WindowsHook) AddHotkey(combo string, suppress bool, fn func()) (Handle, error) {
	spec, err := parseCombo(combo)
	if err != nil {
		return 0, err
	}
	if suppress && spec.vk == 0 {
		return 0, fmt.Errorf("cannot suppress modifier-only combo %q", combo)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.hotkeys[h.next] = &hotkeyReg{spec: spec, suppress: suppress, fn: fn}
	return h.next, nil
}

func (h *WindowsHook) AddKeyDown(key string, fn func()) (Handle, error) {
	return h.addKeyReg(h.downs, key, fn)
}

func (h *WindowsHook) AddKeyUp(key string, fn func()) (Handle, error) {
	return h.addKeyReg(h.ups, key, fn)
}

func (h *WindowsHook) addKeyReg(m map[Handle]*keyReg, key string, fn func()) (Handle, error) {
	vk, ok := vkByToken[key]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", key)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	m[h.next] = &keyReg{vk: vk, fn: fn}
	return h.next, nil
}

func (h *WindowsHook) AddReleaseListener(fn func(KeyEvent)) (Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.listeners[h.next] = fn
	return h.next, nil
}

func (h *WindowsHook) Remove(handle Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.hotkeys, handle)
	delete(h.downs, handle)
	delete(h.ups, handle)
	delete(h.listeners, handle)
}
