package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"hotphrase/expand"
	"hotphrase/hotkey"
	"hotphrase/platform"
)

// DelimiterSource pops the delimiter recorded for a shortcut's most recent
// phrase match. The registry implements it.
type DelimiterSource interface {
	TakeDelimiter(name string) (rune, bool)
}

// Config carries the dispatch policy knobs.
type Config struct {
	// ReplayDelimiter re-types the delimiter that completed a phrase
	// match after the expansion is pasted, so typing flow continues.
	ReplayDelimiter bool
	// ClipboardSettle is how long to wait for clipboard propagation
	// before injecting the paste chord.
	ClipboardSettle time.Duration
	// MinClickDelay is the floor between replayed clicks.
	MinClickDelay time.Duration
	// ClickSettle is the pause between a pointer move and its click.
	ClickSettle time.Duration
}

// DefaultConfig returns the standard dispatch policy.
func DefaultConfig() Config {
	return Config{
		ReplayDelimiter: true,
		ClipboardSettle: 50 * time.Millisecond,
		MinClickDelay:   25 * time.Millisecond,
		ClickSettle:     10 * time.Millisecond,
	}
}

// Dispatcher maps action definitions to concrete side effects. Every
// branch catches its own failures and reports (false, reason); nothing
// propagates out of Execute, since the caller sits on the path of global
// keyboard delivery.
type Dispatcher struct {
	clipboard platform.Clipboard
	injector  platform.Injector
	pointer   platform.Pointer
	guard     *hotkey.SuppressionGuard
	delims    DelimiterSource
	pipeline  *expand.Pipeline
	cfg       Config

	menus chan MenuRequest

	replayMu     sync.Mutex
	replayCancel context.CancelFunc
}

// NewDispatcher wires a dispatcher. pipeline may be nil to paste payloads
// verbatim.
func NewDispatcher(
	clipboard platform.Clipboard,
	injector platform.Injector,
	pointer platform.Pointer,
	guard *hotkey.SuppressionGuard,
	delims DelimiterSource,
	pipeline *expand.Pipeline,
	cfg Config,
) *Dispatcher {
	return &Dispatcher{
		clipboard: clipboard,
		injector:  injector,
		pointer:   pointer,
		guard:     guard,
		delims:    delims,
		pipeline:  pipeline,
		cfg:       cfg,
		menus:     make(chan MenuRequest, 4),
	}
}

// Menus delivers menu requests for the UI layer to render.
func (d *Dispatcher) Menus() <-chan MenuRequest {
	return d.menus
}

// Execute runs one action for the named shortcut.
func (d *Dispatcher) Execute(name string, a Action) (ok bool, msg string) {
	defer func() {
		if p := recover(); p != nil {
			ok, msg = false, fmt.Sprintf("action panicked: %v", p)
		}
	}()

	switch a.Kind {
	case PasteText:
		return d.pasteText(name, a.Payload)
	case OpenApp:
		return d.launch(a.Payload)
	case OpenFile:
		return d.openWithHandler(a.Payload)
	case RunShell:
		return d.runShell(a.Payload)
	case ShowTemplateMenu:
		return d.requestMenu(a.Payload, parseTemplateItems)
	case ShowLinkMenu:
		return d.requestMenu(a.Payload, parseLinkItems)
	case ClickSequence:
		return d.replaySequence(a.Payload)
	}
	return false, fmt.Sprintf("unknown action kind %d", a.Kind)
}

// pasteText expands the payload, places it on the clipboard and injects
// the paste chord. Both the paste and the optional delimiter replay run
// under the suppression guard so our own keystrokes are not re-analyzed.
func (d *Dispatcher) pasteText(name, payload string) (bool, string) {
	text := payload
	if d.pipeline != nil {
		expanded, err := d.pipeline.Process(context.Background(), payload)
		if err != nil {
			return false, fmt.Sprintf("expansion failed: %v", err)
		}
		text = expanded
	}

	if err := d.clipboard.Set(text); err != nil {
		return false, fmt.Sprintf("clipboard set failed: %v", err)
	}
	time.Sleep(d.cfg.ClipboardSettle)

	if err := d.guard.Run(d.injector.Paste); err != nil {
		return false, fmt.Sprintf("paste injection failed: %v", err)
	}

	// The delimiter is consumed even when replay is off, so a later
	// match cannot inherit it.
	delim, had := d.delims.TakeDelimiter(name)
	if had && d.cfg.ReplayDelimiter {
		err := d.guard.Run(func() error {
			return d.injector.TypeRune(delim)
		})
		if err != nil {
			slog.Warn("Delimiter replay failed", "name", name, "error", err)
		}
	}
	return true, ""
}

// launch starts the executable at path as a detached process.
func (d *Dispatcher) launch(path string) (bool, string) {
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Sprintf("target does not exist: %s", path)
	}
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return false, fmt.Sprintf("launch failed: %v", err)
	}
	go cmd.Wait() // reap, never block the caller
	return true, ""
}

// openWithHandler opens path with the OS default handler.
func (d *Dispatcher) openWithHandler(path string) (bool, string) {
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Sprintf("target does not exist: %s", path)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/C", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return false, fmt.Sprintf("unsupported platform %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return false, fmt.Sprintf("open failed: %v", err)
	}
	go cmd.Wait()
	return true, ""
}

// runShell launches the command in a visible, detached shell. Keeping the
// window visible gives the user feedback; detaching keeps the hook
// context from ever blocking on a child process.
func (d *Dispatcher) runShell(command string) (bool, string) {
	if command == "" {
		return false, "empty shell command"
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/C", "start", "", "cmd", "/K", command)
	case "darwin":
		cmd = exec.Command("osascript", "-e",
			fmt.Sprintf(`tell application "Terminal" to do script %q`, command))
	case "linux":
		cmd = exec.Command("x-terminal-emulator", "-e", "sh", "-c", command)
	default:
		return false, fmt.Sprintf("unsupported platform %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return false, fmt.Sprintf("shell launch failed: %v", err)
	}
	go cmd.Wait()
	return true, ""
}

// requestMenu parses the payload and hands the menu off to the UI layer
// at the current pointer position.
func (d *Dispatcher) requestMenu(payload string, parse func(string) ([]MenuItem, error)) (bool, string) {
	items, err := parse(payload)
	if err != nil {
		return false, err.Error()
	}

	x, y, err := d.pointer.Position()
	if err != nil {
		slog.Warn("Could not read pointer position, menu opens at origin", "error", err)
		x, y = 0, 0
	}

	select {
	case d.menus <- MenuRequest{Items: items, X: x, Y: y}:
		return true, ""
	default:
		return false, "menu consumer not ready"
	}
}

// replaySequence parses and replays a click sequence. Replay is the one
// cancellable operation; CancelReplay stops it mid-sequence.
func (d *Dispatcher) replaySequence(payload string) (bool, string) {
	events, err := parseClickSequence(payload)
	if err != nil {
		return false, err.Error()
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.replayMu.Lock()
	if d.replayCancel != nil {
		d.replayMu.Unlock()
		cancel()
		return false, "a replay is already running"
	}
	d.replayCancel = cancel
	d.replayMu.Unlock()

	defer func() {
		d.replayMu.Lock()
		d.replayCancel = nil
		d.replayMu.Unlock()
		cancel()
	}()

	err = d.guard.Run(func() error {
		return replayClicks(ctx, d.injector, events, d.cfg.MinClickDelay, d.cfg.ClickSettle)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false, "replay cancelled"
		}
		return false, fmt.Sprintf("replay failed: %v", err)
	}
	return true, ""
}

// CancelReplay aborts an in-flight click-sequence replay, if any. The
// suppression guard unwinds normally, so its depth returns to zero.
func (d *Dispatcher) CancelReplay() {
	d.replayMu.Lock()
	cancel := d.replayCancel
	d.replayMu.Unlock()
	if cancel != nil {
		cancel()
	}
}
