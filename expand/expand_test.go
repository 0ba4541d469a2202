package expand

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubClipboard struct {
	text string
	err  error
}

func (c *stubClipboard) Get() (string, error) { return c.text, c.err }
func (c *stubClipboard) Set(string) error     { return nil }

func fixedClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := clock
	clock = func() time.Time { return at }
	t.Cleanup(func() { clock = prev })
}

func TestDateProcessor(t *testing.T) {
	fixedClock(t, time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local))
	proc := DateProcessor()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"date", "Today is {date}.", "Today is 2026-03-14."},
		{"time", "At {time} sharp", "At 09:26 sharp"},
		{"datetime", "{datetime}", "2026-03-14 09:26:53"},
		{"no placeholders", "plain text", "plain text"},
		{"unknown placeholder untouched", "{shrug}", "{shrug}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := proc(context.Background(), tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClipboardProcessor(t *testing.T) {
	proc := ClipboardProcessor(&stubClipboard{text: "copied"})
	got, err := proc(context.Background(), "before {clipboard} after")
	if err != nil {
		t.Fatal(err)
	}
	if got != "before copied after" {
		t.Errorf("got %q", got)
	}
}

func TestClipboardProcessorReadFailure(t *testing.T) {
	proc := ClipboardProcessor(&stubClipboard{err: errors.New("locked")})
	got, err := proc(context.Background(), "x{clipboard}y")
	if err != nil {
		t.Fatalf("read failure must not fail the expansion: %v", err)
	}
	if got != "xy" {
		t.Errorf("got %q, want the placeholder rendered empty", got)
	}
}

func TestPipelineStopsOnFirstFailure(t *testing.T) {
	fail := errors.New("nope")
	var secondRan bool
	p := NewPipeline(
		func(ctx context.Context, text string) (string, error) { return text, fail },
		func(ctx context.Context, text string) (string, error) { secondRan = true; return text, nil },
	)
	if _, err := p.Process(context.Background(), "x"); !errors.Is(err, fail) {
		t.Errorf("err = %v, want %v", err, fail)
	}
	if secondRan {
		t.Error("pipeline continued past a failed processor")
	}
}

func TestDefaultPipeline(t *testing.T) {
	fixedClock(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local))
	p := Default(&stubClipboard{text: "snippet"})
	got, err := p.Process(context.Background(), "{date}: {clipboard}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2026-01-02: snippet" {
		t.Errorf("got %q", got)
	}
}
