package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"hotphrase/action"
	"hotphrase/config"
	"hotphrase/expand"
	"hotphrase/hotkey"
	"hotphrase/platform"
	"hotphrase/store"
	"hotphrase/web"
)

// Engine bridges the trigger registry, the shortcut store and the action
// dispatcher. All cross-goroutine traffic is channels; the hook callback
// context never blocks on engine work.
type Engine struct {
	cfg        *config.Config
	db         *store.DB
	registry   *hotkey.Registry
	dispatcher *action.Dispatcher
	dashboard  *web.Server

	paused atomic.Bool
	reload chan struct{}
}

// NewEngine wires the platform backends, registry and dispatcher.
func NewEngine(cfg *config.Config, db *store.DB) *Engine {
	hook := platform.NewHook()
	injector := platform.NewInjector()
	clipboard := platform.NewClipboard()
	pointer := platform.NewPointer()

	guard := hotkey.NewSuppressionGuard()
	registry := hotkey.NewRegistry(hook, injector, guard)

	dispatcher := action.NewDispatcher(
		clipboard,
		injector,
		pointer,
		guard,
		registry,
		expand.Default(clipboard),
		action.Config{
			ReplayDelimiter: cfg.Dispatch.ReplayDelimiter,
			ClipboardSettle: time.Duration(cfg.Dispatch.ClipboardSettleMs) * time.Millisecond,
			MinClickDelay:   time.Duration(cfg.Dispatch.MinClickDelayMs) * time.Millisecond,
			ClickSettle:     time.Duration(cfg.Dispatch.ClickSettleMs) * time.Millisecond,
		},
	)

	return &Engine{
		cfg:        cfg,
		db:         db,
		registry:   registry,
		dispatcher: dispatcher,
		reload:     make(chan struct{}, 1),
	}
}

// SetDashboard attaches the optional web dashboard for broadcasts.
func (e *Engine) SetDashboard(s *web.Server) {
	e.dashboard = s
}

// RequestReload schedules a re-read of the shortcut store. Coalesced:
// multiple pending requests collapse into one.
func (e *Engine) RequestReload() {
	select {
	case e.reload <- struct{}{}:
	default:
	}
}

// Paused reports whether trigger dispatch is suspended.
func (e *Engine) Paused() bool {
	return e.paused.Load()
}

// SetPaused suspends or resumes trigger dispatch. Registrations stay
// active; fired triggers are simply not acted upon.
func (e *Engine) SetPaused(paused bool) {
	e.paused.Store(paused)
	status := "active"
	if paused {
		status = "paused"
	}
	slog.Info("Engine state changed", "status", status)
	if e.dashboard != nil {
		e.dashboard.BroadcastStatus(status)
	}
}

// CancelReplay aborts an in-flight click-sequence replay.
func (e *Engine) CancelReplay() {
	e.dispatcher.CancelReplay()
}

// Run starts the hook and processes trigger and menu events until the
// context is cancelled. Stop of the registry releases every OS handle.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.registry.Start(ctx); err != nil {
		return err
	}
	e.reloadShortcuts()

	slog.Info("hotphrase engine started")

	for {
		select {
		case <-ctx.Done():
			return e.registry.Stop()

		case <-e.reload:
			e.reloadShortcuts()

		case trig := <-e.registry.Events():
			e.handleTrigger(trig)

		case req := <-e.dispatcher.Menus():
			if e.dashboard != nil {
				e.dashboard.BroadcastMenu(req)
			} else {
				slog.Warn("Menu requested but no UI is attached")
			}
		}
	}
}

// reloadShortcuts re-reads the store and swaps all registrations.
func (e *Engine) reloadShortcuts() {
	defs, err := e.db.ActiveShortcuts()
	if err != nil {
		slog.Error("Failed to load shortcuts", "error", err)
		return
	}
	e.registry.Reload(defs)
	slog.Info("Shortcuts reloaded", "defined", len(defs), "registered", e.registry.Count())
}

// handleTrigger resolves and dispatches one fired trigger. Execution runs
// on its own goroutine so a slow action (click replay, shell launch)
// never delays later triggers.
func (e *Engine) handleTrigger(trig hotkey.Trigger) {
	if e.paused.Load() {
		slog.Debug("Trigger ignored while paused", "name", trig.Name)
		return
	}
	// Hold-key release events are delivered but not acted upon.
	if strings.HasSuffix(trig.Name, ":release") {
		slog.Debug("Hold-key release ignored by policy", "name", trig.Name)
		return
	}

	act, err := e.db.ResolveAction(trig.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.Warn("Trigger fired for unknown shortcut", "name", trig.Name)
		} else {
			slog.Error("Failed to resolve action", "name", trig.Name, "error", err)
		}
		return
	}

	go func() {
		ok, msg := e.dispatcher.Execute(trig.Name, act)
		if !ok {
			slog.Warn("Action failed", "name", trig.Name, "kind", act.Kind, "reason", msg)
		} else {
			slog.Info("Action dispatched", "name", trig.Name, "kind", act.Kind)
		}

		record := &store.TriggerRecord{
			Name:        trig.Name,
			TriggerKind: trig.Kind.String(),
			ActionKind:  act.Kind.String(),
			Success:     ok,
			Message:     msg,
		}
		if err := e.db.RecordTrigger(record); err != nil {
			slog.Warn("Failed to record trigger", "error", err)
		}
		if e.dashboard != nil {
			e.dashboard.BroadcastTrigger(record)
		}
	}()
}
