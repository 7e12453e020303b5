package simconfig_test

import (
	"testing"

	"github.com/roboarena/simulator/simconfig"
)

func TestSanitiseFloatWrongTypeReturnsDefault(t *testing.T) {
	got := simconfig.SanitiseFloat("not a number", 5, 0, 10)
	if got != 5 {
		t.Errorf("got %v, want default 5", got)
	}
}

func TestSanitiseFloatClampsInRange(t *testing.T) {
	if got := simconfig.SanitiseFloat(100.0, 5, 0, 10); got != 10 {
		t.Errorf("got %v, want clamped 10", got)
	}
	if got := simconfig.SanitiseFloat(-100.0, 5, 0, 10); got != 0 {
		t.Errorf("got %v, want clamped 0", got)
	}
}

func TestSanitiseFloatPanicsOnBadPrecondition(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for default outside range")
		}
	}()
	simconfig.SanitiseFloat(1.0, 50, 0, 10)
}

func TestSanitiseFloatNoDefault(t *testing.T) {
	if _, ok := simconfig.SanitiseFloatNoDefault("nope", 0, 10); ok {
		t.Error("expected ok=false for non-numeric input")
	}
	v, ok := simconfig.SanitiseFloatNoDefault(7.5, 0, 10)
	if !ok || v != 7.5 {
		t.Errorf("got (%v, %v), want (7.5, true)", v, ok)
	}
}

func TestSanitiseIntClamps(t *testing.T) {
	if got := simconfig.SanitiseInt(3.7, 0, 0, 10); got != 3 {
		t.Errorf("got %v, want 3", got)
	}
	if got := simconfig.SanitiseInt(25.0, 0, 0, 10); got != 10 {
		t.Errorf("got %v, want clamped 10", got)
	}
}

func TestSanitiseBool(t *testing.T) {
	if simconfig.SanitiseBool("true", false) != false {
		t.Error("string \"true\" is not a bool; expected default")
	}
	if simconfig.SanitiseBool(true, false) != true {
		t.Error("expected true to pass through")
	}
}
