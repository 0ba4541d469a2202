package hotkey

import "testing"

func TestTriggerKindRoundTrip(t *testing.T) {
	for _, k := range []TriggerKind{KindCombo, KindHold, KindPhrase} {
		got, err := ParseTriggerKind(k.String())
		if err != nil {
			t.Errorf("ParseTriggerKind(%q): %v", k.String(), err)
			continue
		}
		if got != k {
			t.Errorf("ParseTriggerKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if _, err := ParseTriggerKind("gesture"); err == nil {
		t.Error("ParseTriggerKind accepted an unknown kind")
	}
}
