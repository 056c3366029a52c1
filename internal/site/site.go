// Package site renders the static shell of the portfolio page: the
// document head, the stylesheet, and the body wrapper the live
// component renders into. Everything here is plain string building so
// the first paint needs no client code beyond the live script.
package site

// ThemeKey is the localStorage key the first-paint script reads.
const ThemeKey = "site-theme"

// PageConfig defines the page shell including SEO metadata.
type PageConfig struct {
	// Title is the page title (shown in browser tab and search results)
	Title string
	// Description is the meta description for SEO
	Description string
	// URL is the canonical URL of the page
	URL string
	// Keywords are SEO keywords for the page
	Keywords []string
	// Author is the page owner, used for the author meta tag and JSON-LD
	Author string
	// Email is published in the JSON-LD Person record
	Email string
	// Language is the page language (default: "en")
	Language string
	// ThemeColor is the mobile browser theme color
	ThemeColor string
	// Nonce is the CSP nonce for the inline style and scripts
	Nonce string
	// ScriptSrc is the URL of the live client script
	ScriptSrc string
	// SocketPath is the WebSocket endpoint the client connects to
	SocketPath string
	// RevealThreshold is the intersection ratio that reveals a section
	RevealThreshold float64
}

// Body describes the <body> element of a rendered document.
type Body struct {
	// Class is the body class attribute ("dark" or "")
	Class string
	// Content is the pre-rendered page markup
	Content string
}
