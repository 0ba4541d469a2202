package expand

import (
	"context"
	"strings"
	"time"

	"hotphrase/platform"
)

// clock is swapped out by tests.
var clock = time.Now

// DateProcessor substitutes {date}, {time} and {datetime} with the
// current local time.
func DateProcessor() Processor {
	return func(ctx context.Context, text string) (string, error) {
		if !strings.Contains(text, "{") {
			return text, nil
		}
		now := clock()
		r := strings.NewReplacer(
			"{date}", now.Format("2006-01-02"),
			"{time}", now.Format("15:04"),
			"{datetime}", now.Format("2006-01-02 15:04:05"),
		)
		return r.Replace(text), nil
	}
}

// ClipboardProcessor substitutes {clipboard} with the current clipboard
// text. A clipboard read failure renders the placeholder as empty rather
// than failing the whole expansion.
func ClipboardProcessor(cb platform.Clipboard) Processor {
	return func(ctx context.Context, text string) (string, error) {
		if !strings.Contains(text, "{clipboard}") {
			return text, nil
		}
		current, err := cb.Get()
		if err != nil {
			current = ""
		}
		return strings.ReplaceAll(text, "{clipboard}", current), nil
	}
}

// Default returns the standard expansion pipeline.
func Default(cb platform.Clipboard) *Pipeline {
	return NewPipeline(
		DateProcessor(),
		ClipboardProcessor(cb),
	)
}
