package store

import (
	"database/sql"
	"fmt"
	"time"
)

// TriggerRecord is one fired trigger and the outcome of its dispatch.
type TriggerRecord struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Name        string    `json:"name"`
	TriggerKind string    `json:"triggerKind"`
	ActionKind  string    `json:"actionKind"`
	Success     bool      `json:"success"`
	Message     string    `json:"message,omitempty"`
}

// RecordTrigger appends one dispatch outcome to the history.
func (db *DB) RecordTrigger(r *TriggerRecord) error {
	result, err := db.conn.Exec(`
		INSERT INTO trigger_history (name, trigger_kind, action_kind, success, message)
		VALUES (?, ?, ?, ?, ?)
	`, r.Name, r.TriggerKind, r.ActionKind, r.Success, r.Message)
	if err != nil {
		return fmt.Errorf("failed to record trigger: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	r.ID = id
	return nil
}

// GetHistory retrieves trigger records with pagination, newest first.
func (db *DB) GetHistory(limit, offset int) ([]TriggerRecord, error) {
	rows, err := db.conn.Query(`
		SELECT id, timestamp, name, trigger_kind, action_kind, success, message
		FROM trigger_history
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []TriggerRecord
	for rows.Next() {
		var r TriggerRecord
		var message sql.NullString
		if err := rows.Scan(
			&r.ID, &r.Timestamp, &r.Name, &r.TriggerKind, &r.ActionKind, &r.Success, &message,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trigger record: %w", err)
		}
		if message.Valid {
			r.Message = message.String
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// HistoryCount returns the total number of trigger records.
func (db *DB) HistoryCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM trigger_history").Scan(&count)
	return count, err
}

// ShortcutStats is the per-shortcut usage summary for the stats endpoint.
type ShortcutStats struct {
	Name     string `json:"name"`
	Fired    int    `json:"fired"`
	Failed   int    `json:"failed"`
	LastUsed string `json:"lastUsed"`
}

// GetShortcutStats summarizes trigger history over the last days days.
func (db *DB) GetShortcutStats(days int) ([]ShortcutStats, error) {
	rows, err := db.conn.Query(`
		SELECT
			name,
			COUNT(*),
			SUM(CASE WHEN success THEN 0 ELSE 1 END),
			MAX(timestamp)
		FROM trigger_history
		WHERE timestamp >= datetime('now', ?)
		GROUP BY name
		ORDER BY COUNT(*) DESC
	`, fmt.Sprintf("-%d days", days))
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var stats []ShortcutStats
	for rows.Next() {
		var s ShortcutStats
		if err := rows.Scan(&s.Name, &s.Fired, &s.Failed, &s.LastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ClearHistory removes all trigger records.
func (db *DB) ClearHistory() error {
	if _, err := db.conn.Exec("DELETE FROM trigger_history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
