package site

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// RenderHead generates the <head> section with SEO, Open Graph and JSON-LD.
func RenderHead(cfg PageConfig, customCSS string) string {
	var sb strings.Builder

	themeColor := cfg.ThemeColor
	if themeColor == "" {
		themeColor = Colors["primary"]
	}

	sb.WriteString("<head>\n")

	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")

	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(cfg.Title)))

	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if len(cfg.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf(`<meta name="keywords" content="%s">`+"\n", html.EscapeString(strings.Join(cfg.Keywords, ", "))))
	}
	if cfg.Author != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="author" content="%s">`+"\n", html.EscapeString(cfg.Author)))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="canonical" href="%s">`+"\n", html.EscapeString(cfg.URL)))
	}

	sb.WriteString(fmt.Sprintf(`<meta name="theme-color" content="%s">`+"\n", html.EscapeString(themeColor)))
	sb.WriteString(`<meta name="color-scheme" content="light dark">` + "\n")

	sb.WriteString(renderOpenGraph(cfg))
	sb.WriteString(renderJSONLD(cfg))

	sb.WriteString(`<link rel="icon" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='.9em' font-size='90'>📊</text></svg>">` + "\n")

	sb.WriteString(fmt.Sprintf(`<style%s>`, nonceAttr(cfg.Nonce)))
	sb.WriteString(RenderStyles())
	if customCSS != "" {
		sb.WriteString("\n")
		sb.WriteString(customCSS)
	}
	sb.WriteString("\n</style>\n")

	if cfg.ScriptSrc != "" {
		sb.WriteString(fmt.Sprintf(`<script src="%s" defer%s></script>`+"\n",
			html.EscapeString(cfg.ScriptSrc), nonceAttr(cfg.Nonce)))
	}

	sb.WriteString("</head>\n")

	return sb.String()
}

func renderOpenGraph(cfg PageConfig) string {
	var sb strings.Builder

	sb.WriteString(`<meta property="og:type" content="profile">` + "\n")

	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:title" content="%s">`+"\n", html.EscapeString(cfg.Title)))
	}
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:url" content="%s">`+"\n", html.EscapeString(cfg.URL)))
	}

	return sb.String()
}

type personLD struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Email       string `json:"email,omitempty"`
}

func renderJSONLD(cfg PageConfig) string {
	if cfg.Author == "" {
		return ""
	}

	data, err := json.Marshal(personLD{
		Context:     "https://schema.org",
		Type:        "Person",
		Name:        cfg.Author,
		Description: cfg.Description,
		URL:         cfg.URL,
		Email:       cfg.Email,
	})
	if err != nil {
		return ""
	}
	return fmt.Sprintf(`<script type="application/ld+json"%s>%s</script>`+"\n", nonceAttr(cfg.Nonce), data)
}

// RenderDocument wraps body content in a complete HTML document. The body
// element is attribute-bound so the live client can flip its theme class.
func RenderDocument(cfg PageConfig, body Body) string {
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(fmt.Sprintf(`<html lang="%s">`+"\n", html.EscapeString(lang)))
	sb.WriteString(RenderHead(cfg, ""))

	sb.WriteString(fmt.Sprintf(`<body data-bind="body" class="%s"`, html.EscapeString(body.Class)))
	if cfg.SocketPath != "" {
		sb.WriteString(fmt.Sprintf(` data-live="%s"`, html.EscapeString(cfg.SocketPath)))
	}
	if cfg.RevealThreshold > 0 {
		sb.WriteString(` data-reveal-threshold="` + strconv.FormatFloat(cfg.RevealThreshold, 'f', -1, 64) + `"`)
	}
	sb.WriteString(` lv-keydown="keydown" lv-keys="Escape">` + "\n")

	sb.WriteString(renderThemeScript(cfg.Nonce))
	sb.WriteString(body.Content)
	sb.WriteString("\n</body>\n</html>")

	return sb.String()
}

// renderThemeScript applies the stored theme before the first paint.
func renderThemeScript(nonce string) string {
	return fmt.Sprintf(`<script%s>try{if(localStorage.getItem(%q)==="dark")document.body.classList.add("dark")}catch(e){}</script>`+"\n",
		nonceAttr(nonce), ThemeKey)
}

func nonceAttr(nonce string) string {
	if nonce == "" {
		return ""
	}
	return ` nonce="` + html.EscapeString(nonce) + `"`
}
