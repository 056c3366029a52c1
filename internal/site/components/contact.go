package components

import (
	"fmt"
	"html"
	"strings"
)

// ContactOptions configures the contact section.
type ContactOptions struct {
	ID       string
	Title    string
	Lead     string
	Revealed bool
	// Notice is shown below the form after a submission
	Notice string
}

// RenderContact generates the contact form. Submissions go to the live
// component, which answers with a mailto: redirect.
func RenderContact(opts ContactOptions) string {
	var sb strings.Builder

	openSection(&sb, opts.ID, "", opts.Revealed)
	writeHeading(&sb, opts.ID, opts.Title)

	if opts.Lead != "" {
		sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(opts.Lead)))
		sb.WriteString("\n")
	}

	sb.WriteString(`<form id="contactForm" class="contact-form" lv-submit="submit_contact">`)
	sb.WriteString("\n")
	sb.WriteString(`<label for="name">Name</label>`)
	sb.WriteString(`<input id="name" name="name" type="text" autocomplete="name">`)
	sb.WriteString("\n")
	sb.WriteString(`<label for="email">Email</label>`)
	sb.WriteString(`<input id="email" name="email" type="email" autocomplete="email">`)
	sb.WriteString("\n")
	sb.WriteString(`<label for="message">Message</label>`)
	sb.WriteString(`<textarea id="message" name="message"></textarea>`)
	sb.WriteString("\n")
	sb.WriteString(`<button type="submit" class="btn btn-primary">Send message</button>`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<p id="contactNotice" class="contact-notice" role="status" aria-live="polite" data-slot="contact-notice">%s</p>`,
		html.EscapeString(opts.Notice)))
	sb.WriteString("\n")
	sb.WriteString(`</form>`)
	sb.WriteString("\n")

	closeSection(&sb)

	return sb.String()
}
