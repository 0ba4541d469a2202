package hotkey

import "strings"

// BufferOp tells the caller what to do with the typed buffer when no phrase
// matched.
type BufferOp int

const (
	// OpNone leaves the buffer untouched.
	OpNone BufferOp = iota
	// OpAppendDelimiter appends the delimiter character so phrases
	// containing word boundaries can still be recognized later.
	OpAppendDelimiter
	// OpReset clears the buffer; a phrase cannot span a line break.
	OpReset
)

// MatchResult describes a successful phrase match and its erase/replay plan.
type MatchResult struct {
	// Name of the shortcut whose phrase matched.
	Name string
	// Phrase is the matched lowercase phrase text.
	Phrase string
	// EraseCount is the number of backspaces needed to remove the phrase
	// from the foreground target, including the delimiter if one was typed.
	EraseCount int
	// Delimiter is the whitespace character that completed the match,
	// 0 when the trigger was not space or tab.
	Delimiter rune
}

// TryMatch checks whether the typed buffer ends with any registered phrase.
// phrases maps shortcut name to lowercase phrase text; trigger is the
// canonical token of the key whose release prompted the check.
//
// When several phrases are suffixes of the buffer the longest one wins:
// a registered phrase may itself be the suffix of another (e.g. "hi" and
// "hihi") and the more specific one must not be pre-empted.
func TryMatch(bufferText string, phrases map[string]string, trigger string) (*MatchResult, BufferOp) {
	if trigger == "enter" {
		return nil, OpReset
	}

	lower := strings.ToLower(bufferText)

	var bestName, bestPhrase string
	for name, phrase := range phrases {
		if phrase == "" || !strings.HasSuffix(lower, phrase) {
			continue
		}
		if len(phrase) > len(bestPhrase) {
			bestName, bestPhrase = name, phrase
		}
	}

	if bestPhrase == "" {
		switch trigger {
		case "space", "tab":
			return nil, OpAppendDelimiter
		}
		return nil, OpNone
	}

	res := &MatchResult{
		Name:       bestName,
		Phrase:     bestPhrase,
		EraseCount: len([]rune(bestPhrase)),
	}
	switch trigger {
	case "space":
		res.Delimiter = ' '
		res.EraseCount++ // the delimiter itself already reached the target
	case "tab":
		res.Delimiter = '\t'
		res.EraseCount++
	}
	return res, OpReset
}

// DelimiterRune maps a delimiter key token to the character it types.
func DelimiterRune(trigger string) rune {
	switch trigger {
	case "space":
		return ' '
	case "tab":
		return '\t'
	}
	return 0
}
