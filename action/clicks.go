package action

import (
	"context"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"hotphrase/platform"
)

// ClickEvent is one recorded pointer click, timed relative to the start of
// its sequence. A sequence is immutable once captured.
type ClickEvent struct {
	X        int                  `json:"x"`
	Y        int                  `json:"y"`
	Button   platform.MouseButton `json:"-"`
	OffsetMs int64                `json:"offset_ms"`
}

// parseClickSequence reads an ordered JSON array of
// {x, y, button, offset_ms} with non-decreasing offsets.
func parseClickSequence(payload string) ([]ClickEvent, error) {
	if !gjson.Valid(payload) {
		return nil, fmt.Errorf("click sequence payload is not valid JSON")
	}
	parsed := gjson.Parse(payload)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("click sequence payload must be a JSON array")
	}

	var events []ClickEvent
	for i, v := range parsed.Array() {
		ev := ClickEvent{
			X:        int(v.Get("x").Int()),
			Y:        int(v.Get("y").Int()),
			OffsetMs: v.Get("offset_ms").Int(),
		}
		switch v.Get("button").String() {
		case "", "left":
			ev.Button = platform.LeftButton
		case "right":
			ev.Button = platform.RightButton
		case "middle":
			ev.Button = platform.MiddleButton
		default:
			return nil, fmt.Errorf("click %d: unknown button %q", i, v.Get("button").String())
		}
		if ev.OffsetMs < 0 {
			return nil, fmt.Errorf("click %d: negative offset", i)
		}
		if i > 0 && ev.OffsetMs < events[i-1].OffsetMs {
			return nil, fmt.Errorf("click %d: offsets must be non-decreasing", i)
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("click sequence has no events")
	}
	return events, nil
}

// replayClicks plays a sequence back with best-effort relative timing.
// Sleeps cover only the positive remainder to each event's target offset,
// so slow pointer moves do not accumulate drift. A minimum inter-event
// floor keeps near-simultaneous recordings from starving the OS input
// queue.
func replayClicks(ctx context.Context, inj platform.Injector, events []ClickEvent, minDelay, settle time.Duration) error {
	start := time.Now()
	var prevTarget time.Duration

	for i, ev := range events {
		target := time.Duration(ev.OffsetMs) * time.Millisecond
		if i > 0 && target < prevTarget+minDelay {
			target = prevTarget + minDelay
		}
		prevTarget = target

		if wait := target - time.Since(start); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if err := inj.MoveMouse(ev.X, ev.Y); err != nil {
			return fmt.Errorf("click %d: %w", i, err)
		}
		time.Sleep(settle)
		if err := inj.Click(ev.Button); err != nil {
			return fmt.Errorf("click %d: %w", i, err)
		}
	}
	return nil
}
