package portfolio

import (
	"testing"

	"github.com/gabrielmiguelok/livefolio/internal/projects"
)

type lookupMap map[string]projects.Project

func (m lookupMap) Lookup(id string) (projects.Project, bool) {
	p, ok := m[id]
	return p, ok
}

var testProjects = lookupMap{
	"one": {ID: "one", Title: "One"},
	"two": {ID: "two", Title: "Two"},
}

func TestModal_OpenClose(t *testing.T) {
	m := NewModal(testProjects)

	if !m.Open("one") {
		t.Fatal("Open(one) should succeed")
	}
	if !m.IsOpen() || m.State().Project.Title != "One" {
		t.Errorf("state after open: %+v", m.State())
	}

	m.Close()
	m.Close()
	if m.IsOpen() {
		t.Error("modal should be closed")
	}
	if m.State().Project.ID != "one" {
		t.Error("closing should keep the last project loaded")
	}
}

func TestModal_OpenUnknown(t *testing.T) {
	m := NewModal(testProjects)
	if m.Open("ONE") {
		t.Error("lookup must be exact")
	}
	if m.IsOpen() {
		t.Error("unknown id opened the modal")
	}

	m.Open("two")
	if m.Open("missing") {
		t.Error("unknown id should report false")
	}
	if !m.IsOpen() || m.State().Project.ID != "two" {
		t.Errorf("open modal should stay on its project: %+v", m.State())
	}
}

func TestModal_NilLookup(t *testing.T) {
	if NewModal(nil).Open("one") {
		t.Error("modal without a catalog should never open")
	}
}

func TestModal_Dismiss(t *testing.T) {
	tests := []struct {
		name    string
		trigger DismissTrigger
		detail  string
		want    bool
	}{
		{"close button", DismissCloseButton, "", true},
		{"backdrop", DismissBackdrop, "modal-backdrop", true},
		{"backdrop among classes", DismissBackdrop, "fx modal-backdrop", true},
		{"dialog body", DismissBackdrop, "modal-dialog", false},
		{"similar class", DismissBackdrop, "modal-backdrop-x", false},
		{"escape", DismissEscape, "Escape", true},
		{"other key", DismissEscape, "Enter", false},
		{"unknown trigger", DismissTrigger(42), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModal(testProjects)
			m.Open("one")
			if got := m.Dismiss(tt.trigger, tt.detail); got != tt.want {
				t.Errorf("Dismiss = %v, want %v", got, tt.want)
			}
			if m.IsOpen() == tt.want {
				t.Errorf("open=%v after dismiss=%v", m.IsOpen(), tt.want)
			}
		})
	}
}

func TestModal_DismissClosed(t *testing.T) {
	m := NewModal(testProjects)
	if m.Dismiss(DismissEscape, "Escape") {
		t.Error("dismissing a closed modal should not report a transition")
	}
}
