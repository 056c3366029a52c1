package components

import (
	"fmt"
	"html"
	"html/template"
	"strings"
)

// ModalOptions configures the project detail dialog.
type ModalOptions struct {
	Open     bool
	Title    string
	Subtitle string
	// Description is sanitized markup from the project catalog
	Description template.HTML
}

// RenderModal generates the dialog. The content is rendered even while
// closed so reopening the same project does not resend it.
func RenderModal(opts ModalOptions) string {
	var sb strings.Builder

	class := "modal"
	hidden := "true"
	if opts.Open {
		class += " show"
		hidden = "false"
	}

	sb.WriteString(fmt.Sprintf(`<div id="modal" class="%s" aria-hidden="%s" data-bind="modal" lv-click="modal_click">`, class, hidden))
	sb.WriteString("\n")
	sb.WriteString(`<div class="modal-backdrop"></div>`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="modal-dialog" role="dialog" aria-modal="true" aria-label="Project details">`)
	sb.WriteString("\n")
	sb.WriteString(`<button id="modalClose" class="modal-close" type="button" lv-click="close_modal" aria-label="Close">✕</button>`)
	sb.WriteString("\n")
	sb.WriteString(`<div id="modalContent" class="modal-content" data-slot="modal-content">`)
	sb.WriteString(ModalBody(opts.Title, opts.Subtitle, opts.Description))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}

// ModalBody renders the dialog content for a project, or nothing when no
// project has been opened yet.
func ModalBody(title, subtitle string, description template.HTML) string {
	if title == "" {
		return ""
	}
	return fmt.Sprintf(`<h2>%s</h2><p class="muted">%s</p>%s`,
		html.EscapeString(title), html.EscapeString(subtitle), description)
}
