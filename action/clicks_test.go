package action

import (
	"context"
	"strings"
	"testing"
	"time"

	"hotphrase/platform"
)

func TestParseClickSequence(t *testing.T) {
	payload := `[
		{"x":100,"y":200,"offset_ms":0},
		{"x":110,"y":210,"button":"right","offset_ms":500},
		{"x":120,"y":220,"button":"middle","offset_ms":500}
	]`
	events, err := parseClickSequence(payload)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}
	if events[0].Button != platform.LeftButton {
		t.Errorf("default button = %v, want left", events[0].Button)
	}
	if events[1].Button != platform.RightButton || events[1].OffsetMs != 500 {
		t.Errorf("events[1] = %+v", events[1])
	}
	if events[2].X != 120 || events[2].Y != 220 {
		t.Errorf("events[2] = %+v", events[2])
	}
}

func TestParseClickSequenceErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"invalid json", `[{`, "not valid JSON"},
		{"not an array", `{"x":1}`, "must be a JSON array"},
		{"empty array", `[]`, "no events"},
		{"negative offset", `[{"x":1,"y":1,"offset_ms":-5}]`, "negative offset"},
		{"decreasing offsets", `[{"x":1,"y":1,"offset_ms":100},{"x":2,"y":2,"offset_ms":50}]`, "non-decreasing"},
		{"unknown button", `[{"x":1,"y":1,"button":"side","offset_ms":0}]`, "unknown button"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseClickSequence(tt.payload)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestReplayClicksTiming(t *testing.T) {
	inj := &fakeInjector{}
	events := []ClickEvent{
		{X: 1, Y: 1, OffsetMs: 0},
		{X: 2, Y: 2, OffsetMs: 120},
		{X: 3, Y: 3, OffsetMs: 240},
	}

	start := time.Now()
	if err := replayClicks(context.Background(), inj, events, 0, 0); err != nil {
		t.Fatal(err)
	}
	elapsed := time.Since(start)

	if got := inj.clickCount(); got != 3 {
		t.Fatalf("clicks = %d, want 3", got)
	}
	// The last click cannot land before its recorded offset.
	if elapsed < 240*time.Millisecond {
		t.Errorf("sequence finished in %v, want at least 240ms", elapsed)
	}
	if len(inj.moves) != 3 || inj.moves[2] != [2]int{3, 3} {
		t.Errorf("moves = %v", inj.moves)
	}
}

func TestReplayClicksMinDelayFloor(t *testing.T) {
	inj := &fakeInjector{}
	events := []ClickEvent{
		{X: 1, Y: 1, OffsetMs: 0},
		{X: 2, Y: 2, OffsetMs: 0},
		{X: 3, Y: 3, OffsetMs: 0},
	}

	start := time.Now()
	if err := replayClicks(context.Background(), inj, events, 30*time.Millisecond, 0); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Errorf("three coincident clicks finished in %v, want at least 60ms of spacing", elapsed)
	}
}

func TestReplayClicksCancelled(t *testing.T) {
	inj := &fakeInjector{}
	events := []ClickEvent{
		{X: 1, Y: 1, OffsetMs: 0},
		{X: 2, Y: 2, OffsetMs: 10000},
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	err := replayClicks(ctx, inj, events, 0, 0)
	if err == nil {
		t.Fatal("cancelled replay returned nil")
	}
	if ctx.Err() == nil {
		t.Fatal("context not cancelled")
	}
	if got := inj.clickCount(); got != 1 {
		t.Errorf("clicks = %d, want 1", got)
	}
}
