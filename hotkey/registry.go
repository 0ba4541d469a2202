package hotkey

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"hotphrase/platform"
)

// registration is the engine-owned runtime state for one registered
// shortcut. A name maps to at most one registration at a time.
type registration struct {
	kind    TriggerKind
	trigger string
	handles []platform.Handle
}

// Registry owns all active trigger registrations and is the single source
// of truth consulted by the hook callback. All buffer and delimiter state
// is mutated only under its lock; cross-goroutine consumers see trigger
// events on a channel, never shared state.
type Registry struct {
	hook     platform.Hook
	injector platform.Injector
	guard    *SuppressionGuard

	mu      sync.Mutex
	regs    map[string]*registration
	phrases map[string]string // name -> lowercase phrase, Phrase kind only
	pending map[string]rune   // name -> delimiter of the most recent match
	buffer  *TypedBuffer

	releaseHandle platform.Handle
	listening     bool

	events chan Trigger
}

// NewRegistry creates an empty registry bound to the given hook backend.
func NewRegistry(hook platform.Hook, injector platform.Injector, guard *SuppressionGuard) *Registry {
	return &Registry{
		hook:     hook,
		injector: injector,
		guard:    guard,
		regs:     make(map[string]*registration),
		phrases:  make(map[string]string),
		pending:  make(map[string]rune),
		buffer:   NewTypedBuffer(),
		events:   make(chan Trigger, 16),
	}
}

// Events delivers trigger notifications. The channel is buffered; events
// are dropped rather than ever blocking the hook callback.
func (r *Registry) Events() <-chan Trigger {
	return r.events
}

// Guard exposes the suppression guard shared with the action layer.
func (r *Registry) Guard() *SuppressionGuard {
	return r.guard
}

// Start installs the OS hook.
func (r *Registry) Start(ctx context.Context) error {
	return r.hook.Start(ctx)
}

// Stop unregisters every shortcut and removes the OS hook, including the
// shared phrase listener, before returning.
func (r *Registry) Stop() error {
	r.mu.Lock()
	names := make([]string, 0, len(r.regs))
	for name := range r.regs {
		names = append(names, name)
	}
	r.mu.Unlock()

	for _, name := range names {
		r.Unregister(name)
	}
	return r.hook.Stop()
}

// Register activates one shortcut. Re-registration of an existing name is
// unregister-then-register, never an in-place update.
func (r *Registry) Register(name string, kind TriggerKind, trigger string) error {
	r.Unregister(name)

	switch kind {
	case KindCombo:
		return r.registerCombo(name, trigger)
	case KindHold:
		return r.registerHold(name, trigger)
	case KindPhrase:
		return r.registerPhrase(name, trigger)
	}
	return fmt.Errorf("register %q: unknown trigger kind %d", name, kind)
}

func (r *Registry) registerCombo(name, trigger string) error {
	combo, err := Normalize(trigger)
	if err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}

	fire := func() { r.emit(Trigger{Name: name, Kind: KindCombo}) }

	// Prefer swallowing the chord so other applications never see it.
	// Some hook modes refuse suppression; falling back to a pass-through
	// registration is a recoverable degradation, not a failure.
	h, err := r.hook.AddHotkey(combo, true, fire)
	if err != nil {
		slog.Warn("Suppressed hotkey registration failed, retrying without suppression",
			"name", name, "combo", combo, "error", err)
		h, err = r.hook.AddHotkey(combo, false, fire)
		if err != nil {
			return fmt.Errorf("register %q: %w", name, err)
		}
	}

	r.mu.Lock()
	r.regs[name] = &registration{kind: KindCombo, trigger: combo, handles: []platform.Handle{h}}
	r.mu.Unlock()
	return nil
}

func (r *Registry) registerHold(name, trigger string) error {
	key, err := Normalize(trigger)
	if err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}

	down, err := r.hook.AddKeyDown(key, func() {
		r.emit(Trigger{Name: name + ":press", Kind: KindHold})
	})
	if err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}
	up, err := r.hook.AddKeyUp(key, func() {
		r.emit(Trigger{Name: name + ":release", Kind: KindHold})
	})
	if err != nil {
		r.hook.Remove(down)
		return fmt.Errorf("register %q: %w", name, err)
	}

	r.mu.Lock()
	r.regs[name] = &registration{kind: KindHold, trigger: key, handles: []platform.Handle{down, up}}
	r.mu.Unlock()
	return nil
}

func (r *Registry) registerPhrase(name, trigger string) error {
	phrase := strings.ToLower(strings.TrimSpace(trigger))
	if phrase == "" {
		return fmt.Errorf("register %q: empty phrase", name)
	}

	r.mu.Lock()
	needListener := !r.listening
	if needListener {
		// One shared release listener serves every phrase; it is torn
		// down again when the last phrase goes away.
		r.mu.Unlock()
		h, err := r.hook.AddReleaseListener(r.onRelease)
		if err != nil {
			return fmt.Errorf("register %q: %w", name, err)
		}
		r.mu.Lock()
		r.releaseHandle = h
		r.listening = true
	}
	r.regs[name] = &registration{kind: KindPhrase, trigger: phrase}
	r.phrases[name] = phrase
	r.mu.Unlock()
	return nil
}

// Unregister releases a shortcut's handles. Unknown names are a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	reg, ok := r.regs[name]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.regs, name)
	delete(r.pending, name)

	var dropListener platform.Handle
	if reg.kind == KindPhrase {
		delete(r.phrases, name)
		if len(r.phrases) == 0 && r.listening {
			dropListener = r.releaseHandle
			r.listening = false
			r.releaseHandle = 0
		}
	}
	handles := reg.handles
	r.mu.Unlock()

	for _, h := range handles {
		r.hook.Remove(h)
	}
	if dropListener != 0 {
		r.hook.Remove(dropListener)
	}
}

// Reload replaces all registrations with the enabled definitions, in list
// order, and clears every piece of transient matcher state.
func (r *Registry) Reload(defs []ShortcutDef) {
	r.mu.Lock()
	names := make([]string, 0, len(r.regs))
	for name := range r.regs {
		names = append(names, name)
	}
	r.mu.Unlock()

	for _, name := range names {
		r.Unregister(name)
	}

	r.mu.Lock()
	r.buffer.Clear()
	clear(r.pending)
	r.mu.Unlock()

	for _, def := range defs {
		if !def.Enabled {
			continue
		}
		if def.Kind == KindHold {
			// Hold-key hook wiring is deferred; the definition is
			// accepted so the collaborator can keep it configured.
			slog.Debug("Hold-key registration deferred", "name", def.Name)
			continue
		}
		if err := r.Register(def.Name, def.Kind, def.Trigger); err != nil {
			slog.Warn("Failed to register shortcut", "name", def.Name, "error", err)
		}
	}
}

// Count returns the number of active registrations.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.regs)
}

// BufferText returns the current typed-buffer contents.
func (r *Registry) BufferText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buffer.String()
}

// TakeDelimiter pops the delimiter recorded for the named shortcut's most
// recent phrase match. A given match's delimiter is returned at most once.
func (r *Registry) TakeDelimiter(name string) (rune, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.pending[name]
	if ok {
		delete(r.pending, name)
	}
	return d, ok
}

// resetKeys clear the typed buffer: after any of these the characters on
// screen no longer line up with what was typed.
var resetKeys = map[string]bool{
	"esc": true, "up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pageup": true, "pagedown": true,
	"delete": true,
}

// onRelease is the shared phrase listener. It runs on the hook goroutine.
func (r *Registry) onRelease(ev platform.KeyEvent) {
	// Synthetic injection in progress: this release is our own echo.
	if r.guard.Active() {
		return
	}

	r.mu.Lock()

	switch {
	case ev.Key == "backspace":
		r.buffer.TruncateLast()
		r.mu.Unlock()
		return
	case resetKeys[ev.Key]:
		r.buffer.Clear()
		r.mu.Unlock()
		return
	case ev.Key == "space" || ev.Key == "tab" || ev.Key == "enter":
		res, op := TryMatch(r.buffer.String(), r.phrases, ev.Key)
		if res == nil {
			switch op {
			case OpAppendDelimiter:
				r.buffer.Append(DelimiterRune(ev.Key))
			case OpReset:
				r.buffer.Clear()
			}
			r.mu.Unlock()
			return
		}

		if res.Delimiter != 0 {
			r.pending[res.Name] = res.Delimiter
		}
		r.buffer.Clear()
		r.mu.Unlock()

		err := r.guard.Run(func() error {
			return r.injector.Backspace(res.EraseCount)
		})
		if err != nil {
			slog.Warn("Failed to erase matched phrase", "phrase", res.Phrase, "error", err)
		}
		r.emit(Trigger{Name: res.Name, Kind: KindPhrase})
		return
	default:
		if ev.Rune != 0 {
			r.buffer.Append(ev.Rune)
		}
		r.mu.Unlock()
	}
}

// emit delivers a trigger without ever blocking the hook goroutine.
func (r *Registry) emit(t Trigger) {
	select {
	case r.events <- t:
	default:
		slog.Warn("Trigger event dropped, consumer too slow", "name", t.Name)
	}
}
