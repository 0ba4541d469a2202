package hotkey

import "testing"

func TestTryMatchLongestWins(t *testing.T) {
	phrases := map[string]string{
		"short": ";sig",
		"long":  "my;sig",
	}
	res, op := TryMatch("hello my;sig", phrases, "space")
	if res == nil {
		t.Fatal("expected a match")
	}
	if res.Name != "long" {
		t.Errorf("matched %q, want the longer phrase %q", res.Name, "long")
	}
	if op != OpReset {
		t.Errorf("op = %v, want OpReset", op)
	}
}

func TestTryMatchEraseCount(t *testing.T) {
	phrases := map[string]string{"sig": ";sig"}

	tests := []struct {
		name      string
		trigger   string
		wantErase int
		wantDelim rune
	}{
		{"space includes delimiter", "space", 5, ' '},
		{"tab includes delimiter", "tab", 5, '\t'},
		{"non-whitespace trigger erases phrase only", ".", 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := TryMatch("note ;sig", phrases, tt.trigger)
			if res == nil {
				t.Fatal("expected a match")
			}
			if res.EraseCount != tt.wantErase {
				t.Errorf("EraseCount = %d, want %d", res.EraseCount, tt.wantErase)
			}
			if res.Delimiter != tt.wantDelim {
				t.Errorf("Delimiter = %q, want %q", res.Delimiter, tt.wantDelim)
			}
		})
	}
}

func TestTryMatchCaseInsensitive(t *testing.T) {
	phrases := map[string]string{"addr": ";addr"}
	res, _ := TryMatch("see ;ADDR", phrases, "space")
	if res == nil {
		t.Fatal("expected a case-insensitive match")
	}
	if res.Phrase != ";addr" {
		t.Errorf("Phrase = %q, want %q", res.Phrase, ";addr")
	}
}

func TestTryMatchEnterAlwaysResets(t *testing.T) {
	phrases := map[string]string{"sig": ";sig"}
	res, op := TryMatch("note ;sig", phrases, "enter")
	if res != nil {
		t.Errorf("enter must not fire a match, got %+v", res)
	}
	if op != OpReset {
		t.Errorf("op = %v, want OpReset", op)
	}
}

func TestTryMatchNoMatchAdvice(t *testing.T) {
	phrases := map[string]string{"sig": ";sig"}

	tests := []struct {
		name    string
		buffer  string
		trigger string
		wantOp  BufferOp
	}{
		{"space appends delimiter", "plain text", "space", OpAppendDelimiter},
		{"tab appends delimiter", "plain text", "tab", OpAppendDelimiter},
		{"partial phrase is not a match", ";si", "space", OpAppendDelimiter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, op := TryMatch(tt.buffer, phrases, tt.trigger)
			if res != nil {
				t.Fatalf("unexpected match %+v", res)
			}
			if op != tt.wantOp {
				t.Errorf("op = %v, want %v", op, tt.wantOp)
			}
		})
	}
}

func TestTryMatchEmptyPhraseNeverMatches(t *testing.T) {
	phrases := map[string]string{"broken": ""}
	res, _ := TryMatch("anything", phrases, "space")
	if res != nil {
		t.Errorf("empty phrase matched: %+v", res)
	}
}

func TestDelimiterRune(t *testing.T) {
	if got := DelimiterRune("space"); got != ' ' {
		t.Errorf("DelimiterRune(space) = %q", got)
	}
	if got := DelimiterRune("tab"); got != '\t' {
		t.Errorf("DelimiterRune(tab) = %q", got)
	}
	if got := DelimiterRune("enter"); got != 0 {
		t.Errorf("DelimiterRune(enter) = %q, want 0", got)
	}
}
