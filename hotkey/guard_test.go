package hotkey

import (
	"errors"
	"testing"
)

func TestGuardActiveDuringRun(t *testing.T) {
	g := NewSuppressionGuard()
	if g.Active() {
		t.Fatal("new guard must not be active")
	}
	err := g.Run(func() error {
		if !g.Active() {
			t.Error("guard not active inside Run")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if g.Active() {
		t.Error("guard still active after Run")
	}
}

func TestGuardNesting(t *testing.T) {
	g := NewSuppressionGuard()
	g.Run(func() error {
		return g.Run(func() error {
			if got := g.Depth(); got != 2 {
				t.Errorf("Depth() = %d, want 2", got)
			}
			return nil
		})
	})
	if got := g.Depth(); got != 0 {
		t.Errorf("Depth() = %d after nested runs, want 0", got)
	}
}

func TestGuardRestoredOnError(t *testing.T) {
	g := NewSuppressionGuard()
	want := errors.New("inject failed")
	if err := g.Run(func() error { return want }); !errors.Is(err, want) {
		t.Errorf("Run returned %v, want %v", err, want)
	}
	if g.Active() {
		t.Error("guard left active after an error")
	}
}

func TestGuardRestoredOnPanic(t *testing.T) {
	g := NewSuppressionGuard()
	func() {
		defer func() { recover() }()
		g.Run(func() error { panic("boom") })
	}()
	if g.Active() {
		t.Error("guard left active after a panic")
	}
}
