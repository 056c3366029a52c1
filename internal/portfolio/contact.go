package portfolio

import (
	"fmt"
	"net/url"
	"strings"
)

// ContactForm is one contact form submission.
type ContactForm struct {
	Name    string
	Email   string
	Message string
}

// FormFromPayload reads the submitted fields. Absent fields are empty.
func FormFromPayload(payload map[string]any) ContactForm {
	return ContactForm{
		Name:    stringValue(payload["name"]),
		Email:   stringValue(payload["email"]),
		Message: stringValue(payload["message"]),
	}
}

// Composer turns submissions into mailto: links.
type Composer struct {
	Recipient string
}

// Compose returns mailto:<recipient>?subject=...&body=... with both
// parameters percent-encoded.
func (c Composer) Compose(form ContactForm) string {
	subject := "Portfolio message from " + form.Name
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", form.Name, form.Email, form.Message)
	return "mailto:" + c.Recipient +
		"?subject=" + EncodeURIComponent(subject) +
		"&body=" + EncodeURIComponent(body)
}

// FallbackNotice is shown after the redirect in case no mail client opens.
func (c Composer) FallbackNotice() string {
	return "Your email client should open — if not, email me at " + c.Recipient
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers do for URI components:
// spaces become %20 and !'()* stay literal.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
