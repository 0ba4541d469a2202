package store

import (
	"errors"
	"testing"

	"hotphrase/action"
	"hotphrase/hotkey"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenSeedsDefaults(t *testing.T) {
	db := openTestDB(t)
	shortcuts, err := db.ListShortcuts()
	if err != nil {
		t.Fatal(err)
	}
	if len(shortcuts) == 0 {
		t.Fatal("empty database was not seeded")
	}
	if shortcuts[0].Name != "insert-date" {
		t.Errorf("first seeded shortcut = %q", shortcuts[0].Name)
	}
}

func TestSaveShortcutUpsert(t *testing.T) {
	db := openTestDB(t)

	s := Shortcut{
		Name:          "sig",
		TriggerKind:   "phrase",
		TriggerValue:  ";sig",
		Enabled:       true,
		ActionKind:    "paste_text",
		ActionPayload: "Best regards",
		Position:      5,
	}
	if err := db.SaveShortcut(s); err != nil {
		t.Fatal(err)
	}

	s.ActionPayload = "Kind regards"
	s.Enabled = false
	if err := db.SaveShortcut(s); err != nil {
		t.Fatal(err)
	}

	shortcuts, err := db.ListShortcuts()
	if err != nil {
		t.Fatal(err)
	}
	var found *Shortcut
	for i := range shortcuts {
		if shortcuts[i].Name == "sig" {
			found = &shortcuts[i]
		}
	}
	if found == nil {
		t.Fatal("saved shortcut not listed")
	}
	if found.ActionPayload != "Kind regards" || found.Enabled {
		t.Errorf("upsert did not replace: %+v", found)
	}
}

func TestSaveShortcutValidation(t *testing.T) {
	db := openTestDB(t)
	tests := []struct {
		name string
		s    Shortcut
	}{
		{"missing name", Shortcut{TriggerKind: "phrase", TriggerValue: ";x", ActionKind: "paste_text"}},
		{"bad trigger kind", Shortcut{Name: "x", TriggerKind: "gesture", TriggerValue: ";x", ActionKind: "paste_text"}},
		{"bad action kind", Shortcut{Name: "x", TriggerKind: "phrase", TriggerValue: ";x", ActionKind: "levitate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := db.SaveShortcut(tt.s); err == nil {
				t.Error("invalid shortcut accepted")
			}
		})
	}
}

func TestDeleteShortcut(t *testing.T) {
	db := openTestDB(t)
	if err := db.DeleteShortcut("insert-date"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ResolveAction("insert-date"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResolveAction after delete: %v, want ErrNotFound", err)
	}
	// Deleting an unknown name is a no-op.
	if err := db.DeleteShortcut("never-existed"); err != nil {
		t.Errorf("delete of unknown name failed: %v", err)
	}
}

func TestActiveShortcutsOrderAndKinds(t *testing.T) {
	db := openTestDB(t)
	seeded, err := db.ListShortcuts()
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range seeded {
		if err := db.DeleteShortcut(s.Name); err != nil {
			t.Fatal(err)
		}
	}

	add := []Shortcut{
		{Name: "second", TriggerKind: "combo", TriggerValue: "ctrl+2", Enabled: true, ActionKind: "run_shell", ActionPayload: "dir", Position: 2},
		{Name: "first", TriggerKind: "phrase", TriggerValue: ";a", Enabled: true, ActionKind: "paste_text", Position: 1},
		{Name: "third", TriggerKind: "hold", TriggerValue: "f8", Enabled: false, ActionKind: "paste_text", Position: 3},
	}
	for _, s := range add {
		if err := db.SaveShortcut(s); err != nil {
			t.Fatal(err)
		}
	}

	defs, err := db.ActiveShortcuts()
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 3 {
		t.Fatalf("len = %d, want 3", len(defs))
	}
	if defs[0].Name != "first" || defs[1].Name != "second" || defs[2].Name != "third" {
		t.Errorf("order = %s, %s, %s", defs[0].Name, defs[1].Name, defs[2].Name)
	}
	if defs[0].Kind != hotkey.KindPhrase || defs[1].Kind != hotkey.KindCombo || defs[2].Kind != hotkey.KindHold {
		t.Errorf("kinds = %v, %v, %v", defs[0].Kind, defs[1].Kind, defs[2].Kind)
	}
	if defs[2].Enabled {
		t.Error("disabled definition reported as enabled")
	}
}

func TestResolveAction(t *testing.T) {
	db := openTestDB(t)
	s := Shortcut{
		Name: "push-talk", TriggerKind: "hold", TriggerValue: "f8",
		Enabled: true, ActionKind: "run_shell", ActionPayload: "toggle-mic",
	}
	if err := db.SaveShortcut(s); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"push-talk", "push-talk:press", "push-talk:release"} {
		a, err := db.ResolveAction(name)
		if err != nil {
			t.Errorf("ResolveAction(%q): %v", name, err)
			continue
		}
		if a.Kind != action.RunShell || a.Payload != "toggle-mic" {
			t.Errorf("ResolveAction(%q) = %+v", name, a)
		}
	}

	if _, err := db.ResolveAction("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown name: %v, want ErrNotFound", err)
	}
}

func TestTriggerHistory(t *testing.T) {
	db := openTestDB(t)

	records := []*TriggerRecord{
		{Name: "a", TriggerKind: "phrase", ActionKind: "paste_text", Success: true},
		{Name: "b", TriggerKind: "combo", ActionKind: "run_shell", Success: false, Message: "launch failed"},
		{Name: "a", TriggerKind: "phrase", ActionKind: "paste_text", Success: true},
	}
	for _, r := range records {
		if err := db.RecordTrigger(r); err != nil {
			t.Fatal(err)
		}
		if r.ID == 0 {
			t.Error("RecordTrigger did not backfill the ID")
		}
	}

	count, err := db.HistoryCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("HistoryCount = %d, want 3", count)
	}

	// Newest first.
	page, err := db.GetHistory(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	if page[0].ID != records[2].ID {
		t.Errorf("first record ID = %d, want newest %d", page[0].ID, records[2].ID)
	}
	if page[1].Name != "b" || page[1].Message != "launch failed" {
		t.Errorf("page[1] = %+v", page[1])
	}

	rest, err := db.GetHistory(10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 1 || rest[0].ID != records[0].ID {
		t.Errorf("offset page = %+v", rest)
	}
}

func TestShortcutStats(t *testing.T) {
	db := openTestDB(t)
	seed := []*TriggerRecord{
		{Name: "a", TriggerKind: "phrase", ActionKind: "paste_text", Success: true},
		{Name: "a", TriggerKind: "phrase", ActionKind: "paste_text", Success: false, Message: "oops"},
		{Name: "b", TriggerKind: "combo", ActionKind: "run_shell", Success: true},
	}
	for _, r := range seed {
		if err := db.RecordTrigger(r); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := db.GetShortcutStats(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	if stats[0].Name != "a" || stats[0].Fired != 2 || stats[0].Failed != 1 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Name != "b" || stats[1].Fired != 1 || stats[1].Failed != 0 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}

func TestClearHistory(t *testing.T) {
	db := openTestDB(t)
	r := &TriggerRecord{Name: "a", TriggerKind: "phrase", ActionKind: "paste_text", Success: true}
	if err := db.RecordTrigger(r); err != nil {
		t.Fatal(err)
	}
	if err := db.ClearHistory(); err != nil {
		t.Fatal(err)
	}
	count, err := db.HistoryCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("HistoryCount = %d after clear", count)
	}
}
