package portfolio

import (
	"strings"

	"github.com/gabrielmiguelok/livefolio/internal/projects"
)

// ProjectLookup resolves a project id.
type ProjectLookup interface {
	Lookup(id string) (projects.Project, bool)
}

// ModalState is the visible state of the project dialog.
type ModalState struct {
	Open    bool
	Project projects.Project
}

// DismissTrigger names the ways a visitor can close the dialog.
type DismissTrigger int

const (
	// DismissCloseButton is a click on the close control.
	DismissCloseButton DismissTrigger = iota
	// DismissBackdrop is a click whose target is the backdrop.
	DismissBackdrop
	// DismissEscape is the Escape key.
	DismissEscape
)

// BackdropClass marks the element whose clicks dismiss the dialog.
const BackdropClass = "modal-backdrop"

// EscapeKey is the KeyboardEvent.key value that dismisses the dialog.
const EscapeKey = "Escape"

// Modal controls the project dialog.
type Modal struct {
	lookup ProjectLookup
	state  ModalState
}

// NewModal creates a closed dialog over lookup.
func NewModal(lookup ProjectLookup) *Modal {
	return &Modal{lookup: lookup}
}

// Open shows the project with the exact id. An unknown id changes nothing
// and returns false; an already open dialog stays on its project.
func (m *Modal) Open(id string) bool {
	if m.lookup == nil {
		return false
	}
	p, ok := m.lookup.Lookup(id)
	if !ok {
		return false
	}
	m.state = ModalState{Open: true, Project: p}
	return true
}

// Close hides the dialog. The last project stays loaded.
func (m *Modal) Close() {
	m.state.Open = false
}

// Dismiss closes the dialog when trigger and detail qualify. detail is
// the click target's class list for DismissBackdrop and the key for
// DismissEscape. Returns whether the dialog went from open to closed.
func (m *Modal) Dismiss(trigger DismissTrigger, detail string) bool {
	if !m.state.Open {
		return false
	}

	switch trigger {
	case DismissCloseButton:
	case DismissBackdrop:
		if !hasClass(detail, BackdropClass) {
			return false
		}
	case DismissEscape:
		if detail != EscapeKey {
			return false
		}
	default:
		return false
	}

	m.Close()
	return true
}

// State returns a copy of the current state.
func (m *Modal) State() ModalState {
	return m.state
}

// IsOpen reports whether the dialog is shown.
func (m *Modal) IsOpen() bool {
	return m.state.Open
}

func hasClass(classList, class string) bool {
	for _, c := range strings.Fields(classList) {
		if c == class {
			return true
		}
	}
	return false
}
