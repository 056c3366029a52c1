package portfolio

import (
	"reflect"
	"testing"
)

func TestFader_Monotonic(t *testing.T) {
	f := NewFader(0)
	if f.Threshold != DefaultRevealThreshold {
		t.Errorf("default threshold: %v", f.Threshold)
	}

	if f.Observe("about", 0.1) {
		t.Error("ratio below threshold should not reveal")
	}
	if !f.Observe("about", 0.15) {
		t.Error("ratio at threshold should reveal")
	}
	if f.Observe("about", 0.9) {
		t.Error("second reveal should not report a transition")
	}
	f.Observe("about", 0)
	if !f.Revealed("about") {
		t.Error("section scrolled out should stay revealed")
	}
	if f.Revealed("contact") {
		t.Error("unobserved section revealed")
	}
}

func TestFader_RevealedIDs(t *testing.T) {
	f := NewFader(0.5)
	f.Observe("skills", 1)
	f.Observe("about", 0.5)
	f.Observe("contact", 0.49)
	f.Observe("", 1)

	if got := f.RevealedIDs(); !reflect.DeepEqual(got, []string{"about", "skills"}) {
		t.Errorf("revealed: %v", got)
	}
}
