package site

import (
	"errors"
	"strings"
	"testing"
)

func testConfig() PageConfig {
	return PageConfig{
		Title:           "Jo | Portfolio",
		Description:     "Data & development",
		Author:          "Jo",
		Email:           "jo@example.com",
		Nonce:           "abc123",
		ScriptSrc:       "/_live/folio.js",
		SocketPath:      "/_live/websocket",
		RevealThreshold: 0.15,
	}
}

func TestRenderDocument(t *testing.T) {
	doc := RenderDocument(testConfig(), Body{Class: "dark", Content: `<main id="main-content"></main>`})

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		`<title>Jo | Portfolio</title>`,
		`content="Data &amp; development"`,
		`<style nonce="abc123">`,
		`<script src="/_live/folio.js" defer nonce="abc123"></script>`,
		`<body data-bind="body" class="dark" data-live="/_live/websocket" data-reveal-threshold="0.15"`,
		`localStorage.getItem("site-theme")`,
		`"@type":"Person"`,
		`<main id="main-content"></main>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRenderDocument_NoNonce(t *testing.T) {
	cfg := testConfig()
	cfg.Nonce = ""

	doc := RenderDocument(cfg, Body{})
	if strings.Contains(doc, "nonce=") {
		t.Error("nonce attribute rendered without a nonce")
	}
	if !strings.Contains(doc, `class=""`) {
		t.Error("light theme should render an empty body class")
	}
}

func TestRenderStyles_Stable(t *testing.T) {
	first := RenderStyles()
	for i := 0; i < 5; i++ {
		if RenderStyles() != first {
			t.Fatal("stylesheet output is not deterministic")
		}
	}
	for _, want := range []string{"body.dark{", ".modal.show{", ".section.fade-in{", ".nav-links.open{", "[hidden]{"} {
		if !strings.Contains(first, want) {
			t.Errorf("stylesheet missing %q", want)
		}
	}
}

func TestRenderStyles_CustomColors(t *testing.T) {
	css := RenderStyles(WithCustomColors(map[string]string{"primary": "#FF0000"}), WithAnimations(false))
	if !strings.Contains(css, "--color-primary:#FF0000") {
		t.Error("custom color not applied")
	}
	if strings.Contains(css, "prefers-reduced-motion") {
		t.Error("animations should be omitted")
	}
}

func TestRequireIDs(t *testing.T) {
	doc := `<html><body><div id="modal"><div id="modalContent"></div></div><span id="year"></span></body></html>`

	if err := RequireIDs(doc, "modal", "modalContent", "year"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := RequireIDs(doc, "modal", "themeToggle", "contactForm")
	if !errors.Is(err, ErrMissingElement) {
		t.Fatalf("expected ErrMissingElement, got %v", err)
	}
	if !strings.Contains(err.Error(), "#contactForm, #themeToggle") {
		t.Errorf("error should list missing ids: %v", err)
	}
}

func TestRequireIDs_Duplicate(t *testing.T) {
	err := RequireIDs(`<p id="year"></p><p id="year"></p>`, "year")
	if !errors.Is(err, ErrMissingElement) || !strings.Contains(err.Error(), "duplicated #year") {
		t.Errorf("expected duplicate report, got %v", err)
	}
}
