package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"hotphrase/store"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// handleConfig returns the dispatch/web configuration.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cfg := s.GetConfig()
	writeJSON(w, map[string]any{
		"replayDelimiter":   cfg.Dispatch.ReplayDelimiter,
		"clipboardSettleMs": cfg.Dispatch.ClipboardSettleMs,
		"minClickDelayMs":   cfg.Dispatch.MinClickDelayMs,
		"clickSettleMs":     cfg.Dispatch.ClickSettleMs,
		"webPort":           cfg.Web.Port,
	})
}

// handleShortcuts lists all definitions or creates/updates one.
func (s *Server) handleShortcuts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		shortcuts, err := s.db.ListShortcuts()
		if err != nil {
			slog.Error("Failed to list shortcuts", "error", err)
			http.Error(w, "Failed to list shortcuts", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"shortcuts": shortcuts})

	case http.MethodPut, http.MethodPost:
		var sc store.Shortcut
		if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := s.db.SaveShortcut(sc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.engine.RequestReload()
		writeJSON(w, map[string]string{"status": "success"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleShortcutByName deletes one definition (DELETE /api/shortcuts/{name}).
func (s *Server) handleShortcutByName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/shortcuts/")
	if name == "" {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	if err := s.db.DeleteShortcut(name); err != nil {
		slog.Error("Failed to delete shortcut", "error", err, "name", name)
		http.Error(w, "Failed to delete shortcut", http.StatusInternalServerError)
		return
	}
	s.engine.RequestReload()
	writeJSON(w, map[string]string{"status": "success"})
}

// handleHistory returns paginated trigger history or clears it.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		limit := queryInt(r, "limit", 50)
		offset := queryInt(r, "offset", 0)

		records, err := s.db.GetHistory(limit, offset)
		if err != nil {
			slog.Error("Failed to get history", "error", err)
			http.Error(w, "Failed to get history", http.StatusInternalServerError)
			return
		}
		total, err := s.db.HistoryCount()
		if err != nil {
			slog.Error("Failed to count history", "error", err)
			http.Error(w, "Failed to get history", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{
			"history": records,
			"total":   total,
			"limit":   limit,
			"offset":  offset,
		})

	case http.MethodDelete:
		if err := s.db.ClearHistory(); err != nil {
			slog.Error("Failed to clear history", "error", err)
			http.Error(w, "Failed to clear history", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"status": "success"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleStats returns per-shortcut usage over the requested day range.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	days := queryInt(r, "days", 7)
	stats, err := s.db.GetShortcutStats(days)
	if err != nil {
		slog.Error("Failed to get stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"stats": stats, "days": days})
}

// handleStatus reports whether trigger dispatch is paused.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		status := "active"
		if s.engine.Paused() {
			status = "paused"
		}
		writeJSON(w, map[string]string{"status": status})

	case http.MethodPut:
		var req struct {
			Paused *bool `json:"paused"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Paused == nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		s.engine.SetPaused(*req.Paused)
		writeJSON(w, map[string]string{"status": "success"})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleReload re-reads the shortcut store into the registry.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.engine.RequestReload()
	writeJSON(w, map[string]string{"status": "success"})
}

// handleCancelReplay aborts an in-flight click-sequence replay.
func (s *Server) handleCancelReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.engine.CancelReplay()
	writeJSON(w, map[string]string{"status": "success"})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
