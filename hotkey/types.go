package hotkey

import "fmt"

// TriggerKind classifies how a shortcut is activated.
type TriggerKind int

const (
	// KindCombo is a fixed, simultaneously-held key combination.
	KindCombo TriggerKind = iota
	// KindHold is a single key whose press and release are each actionable.
	KindHold
	// KindPhrase is a typed character sequence completed by a delimiter.
	KindPhrase
)

func (k TriggerKind) String() string {
	switch k {
	case KindCombo:
		return "combo"
	case KindHold:
		return "hold"
	case KindPhrase:
		return "phrase"
	}
	return "unknown"
}

// ParseTriggerKind converts the stored string form back to a TriggerKind.
func ParseTriggerKind(s string) (TriggerKind, error) {
	switch s {
	case "combo":
		return KindCombo, nil
	case "hold":
		return KindHold, nil
	case "phrase":
		return KindPhrase, nil
	}
	return 0, fmt.Errorf("unknown trigger kind %q", s)
}

// ShortcutDef is one shortcut definition as supplied by the collaborator.
// The registry derives runtime state from it but never owns the source of
// truth.
type ShortcutDef struct {
	Name    string
	Kind    TriggerKind
	Trigger string
	Enabled bool
}

// Trigger is emitted once per successful combo or phrase match, and twice
// per hold-key cycle with ":press" / ":release" appended to the name.
type Trigger struct {
	Name string
	Kind TriggerKind
}
