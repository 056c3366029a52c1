package portfolio

import (
	"net/url"
	"strings"
	"testing"
)

func splitMailto(t *testing.T, link string) (string, url.Values) {
	t.Helper()
	rest, ok := strings.CutPrefix(link, "mailto:")
	if !ok {
		t.Fatalf("not a mailto link: %s", link)
	}
	to, query, _ := strings.Cut(rest, "?")
	values, err := url.ParseQuery(query)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	return to, values
}

func TestComposer_Compose(t *testing.T) {
	c := Composer{Recipient: "me@example.com"}
	link := c.Compose(ContactForm{Name: "Jo Ann", Email: "a@b.com", Message: "Hi"})

	to, values := splitMailto(t, link)
	if to != "me@example.com" {
		t.Errorf("recipient: %q", to)
	}
	if got := values.Get("body"); got != "Name: Jo Ann\nEmail: a@b.com\n\nHi" {
		t.Errorf("body: %q", got)
	}
	if !strings.Contains(values.Get("subject"), "Jo Ann") {
		t.Errorf("subject: %q", values.Get("subject"))
	}
	if strings.Contains(link, "+") {
		t.Errorf("spaces must be encoded as %%20: %s", link)
	}
}

func TestComposer_EmptyForm(t *testing.T) {
	link := Composer{Recipient: "me@example.com"}.Compose(FormFromPayload(map[string]any{}))
	_, values := splitMailto(t, link)
	if got := values.Get("body"); got != "Name: \nEmail: \n\n" {
		t.Errorf("body: %q", got)
	}
	if got := values.Get("subject"); got != "Portfolio message from " {
		t.Errorf("subject: %q", got)
	}
}

func TestEncodeURIComponent(t *testing.T) {
	tests := map[string]string{
		"a b":          "a%20b",
		"1+1=2 & more": "1%2B1%3D2%20%26%20more",
		"it's (ok)!*~": "it's%20(ok)!*~",
		"line\nbreak":  "line%0Abreak",
		"héllo":        "h%C3%A9llo",
		"a@b.com/x?y":  "a%40b.com%2Fx%3Fy",
	}
	for in, want := range tests {
		if got := EncodeURIComponent(in); got != want {
			t.Errorf("EncodeURIComponent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFallbackNotice(t *testing.T) {
	got := Composer{Recipient: "me@example.com"}.FallbackNotice()
	if got != "Your email client should open — if not, email me at me@example.com" {
		t.Errorf("notice: %q", got)
	}
}
