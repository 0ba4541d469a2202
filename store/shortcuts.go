package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hotphrase/action"
	"hotphrase/hotkey"
)

// ErrNotFound is returned when a shortcut name has no stored definition.
var ErrNotFound = errors.New("shortcut not found")

// Shortcut is one persisted shortcut definition plus its bound action.
type Shortcut struct {
	Name          string `json:"name"`
	TriggerKind   string `json:"triggerKind"`
	TriggerValue  string `json:"triggerValue"`
	Enabled       bool   `json:"enabled"`
	ActionKind    string `json:"actionKind"`
	ActionPayload string `json:"actionPayload"`
	Position      int    `json:"position"`
}

// SaveShortcut inserts or replaces a definition by name.
func (db *DB) SaveShortcut(s Shortcut) error {
	if s.Name == "" {
		return fmt.Errorf("shortcut has no name")
	}
	if _, err := hotkey.ParseTriggerKind(s.TriggerKind); err != nil {
		return err
	}
	if _, err := action.ParseKind(s.ActionKind); err != nil {
		return err
	}

	query := `
		INSERT INTO shortcuts (name, trigger_kind, trigger_value, enabled, action_kind, action_payload, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			trigger_kind = excluded.trigger_kind,
			trigger_value = excluded.trigger_value,
			enabled = excluded.enabled,
			action_kind = excluded.action_kind,
			action_payload = excluded.action_payload,
			position = excluded.position
	`
	if _, err := db.conn.Exec(query,
		s.Name, s.TriggerKind, s.TriggerValue, s.Enabled, s.ActionKind, s.ActionPayload, s.Position,
	); err != nil {
		return fmt.Errorf("failed to save shortcut: %w", err)
	}
	return nil
}

// DeleteShortcut removes a definition. Unknown names are a no-op.
func (db *DB) DeleteShortcut(name string) error {
	if _, err := db.conn.Exec("DELETE FROM shortcuts WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete shortcut: %w", err)
	}
	return nil
}

// ListShortcuts returns every definition in position order.
func (db *DB) ListShortcuts() ([]Shortcut, error) {
	rows, err := db.conn.Query(`
		SELECT name, trigger_kind, trigger_value, enabled, action_kind, action_payload, position
		FROM shortcuts
		ORDER BY position, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shortcuts: %w", err)
	}
	defer rows.Close()

	var shortcuts []Shortcut
	for rows.Next() {
		var s Shortcut
		if err := rows.Scan(
			&s.Name, &s.TriggerKind, &s.TriggerValue, &s.Enabled, &s.ActionKind, &s.ActionPayload, &s.Position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shortcut: %w", err)
		}
		shortcuts = append(shortcuts, s)
	}
	return shortcuts, rows.Err()
}

// ActiveShortcuts returns the definitions handed to the registry at
// reload time, in position order. Definitions with an unparsable trigger
// kind are skipped.
func (db *DB) ActiveShortcuts() ([]hotkey.ShortcutDef, error) {
	shortcuts, err := db.ListShortcuts()
	if err != nil {
		return nil, err
	}

	defs := make([]hotkey.ShortcutDef, 0, len(shortcuts))
	for _, s := range shortcuts {
		kind, err := hotkey.ParseTriggerKind(s.TriggerKind)
		if err != nil {
			continue
		}
		defs = append(defs, hotkey.ShortcutDef{
			Name:    s.Name,
			Kind:    kind,
			Trigger: s.TriggerValue,
			Enabled: s.Enabled,
		})
	}
	return defs, nil
}

// ResolveAction looks up the action bound to a shortcut name after a
// trigger fires. Hold-key names arrive with a ":press"/":release" suffix,
// which does not change the bound action.
func (db *DB) ResolveAction(name string) (action.Action, error) {
	base := strings.TrimSuffix(strings.TrimSuffix(name, ":press"), ":release")

	var kindStr, payload string
	err := db.conn.QueryRow(
		"SELECT action_kind, action_payload FROM shortcuts WHERE name = ?", base,
	).Scan(&kindStr, &payload)
	if err == sql.ErrNoRows {
		return action.Action{}, ErrNotFound
	}
	if err != nil {
		return action.Action{}, fmt.Errorf("failed to resolve action: %w", err)
	}

	kind, err := action.ParseKind(kindStr)
	if err != nil {
		return action.Action{}, err
	}
	return action.Action{Kind: kind, Payload: payload}, nil
}
