package site

import (
	"fmt"
	"sort"
	"strings"
)

// Colors is the light palette.
var Colors = map[string]string{
	"bg":        "#FFFFFF",
	"bgAlt":     "#F8FAFC",
	"bgHover":   "#EEF2F7",
	"text":      "#0F172A",
	"textMuted": "#475569",
	"primary":   "#2563EB",
	"accent":    "#0EA5E9",
	"border":    "#E2E8F0",
	"overlay":   "rgba(15,23,42,0.55)",
}

// DarkColors overrides Colors when the body carries class "dark".
var DarkColors = map[string]string{
	"bg":        "#0F172A",
	"bgAlt":     "#1E293B",
	"bgHover":   "#334155",
	"text":      "#F8FAFC",
	"textMuted": "#CBD5E1",
	"primary":   "#60A5FA",
	"accent":    "#67E8F9",
	"border":    "#334155",
	"overlay":   "rgba(2,6,23,0.7)",
}

// FontFamily is the system font stack.
var FontFamily = `system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif`

// StyleOption allows customizing the generated CSS.
type StyleOption func(*styleConfig)

type styleConfig struct {
	customColors      map[string]string
	includeAnimations bool
}

// WithCustomColors overrides light palette entries.
func WithCustomColors(colors map[string]string) StyleOption {
	return func(cfg *styleConfig) {
		for k, v := range colors {
			cfg.customColors[k] = v
		}
	}
}

// WithAnimations toggles the section fade-in transitions.
func WithAnimations(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeAnimations = include
	}
}

// RenderStyles generates the complete page CSS.
func RenderStyles(opts ...StyleOption) string {
	cfg := &styleConfig{
		customColors:      make(map[string]string),
		includeAnimations: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	colors := make(map[string]string, len(Colors))
	for k, v := range Colors {
		colors[k] = v
	}
	for k, v := range cfg.customColors {
		colors[k] = v
	}

	var sb strings.Builder

	sb.WriteString(cssReset())
	sb.WriteString(cssVariables(":root", colors))
	sb.WriteString(cssVariables("body.dark", DarkColors))
	sb.WriteString(cssBase())
	sb.WriteString(cssNav())
	sb.WriteString(cssSections())
	sb.WriteString(cssTabs())
	sb.WriteString(cssCards())
	sb.WriteString(cssModal())
	sb.WriteString(cssForm())

	if cfg.includeAnimations {
		sb.WriteString(cssAnimations())
	}

	sb.WriteString(cssAccessibility())
	sb.WriteString(cssResponsive())

	return sb.String()
}

func cssReset() string {
	return `
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
html{-webkit-text-size-adjust:100%;scroll-behavior:smooth}
body{line-height:1.6;-webkit-font-smoothing:antialiased}
img,svg{display:block;max-width:100%}
input,button,textarea{font:inherit}
a{color:inherit;text-decoration:none}
ul{list-style:none}
[hidden]{display:none!important}
`
}

// cssVariables emits custom properties in sorted order so the stylesheet
// is byte-stable across renders.
func cssVariables(selector string, colors map[string]string) string {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]string, 0, len(names)+1)
	for _, name := range names {
		vars = append(vars, fmt.Sprintf("--color-%s:%s", name, colors[name]))
	}
	if selector == ":root" {
		vars = append(vars, "--font-sans:"+FontFamily)
	}
	return fmt.Sprintf("%s{%s}\n", selector, strings.Join(vars, ";"))
}

func cssBase() string {
	return `
body{font-family:var(--font-sans);background:var(--color-bg);color:var(--color-text);min-height:100vh;transition:background 0.2s ease,color 0.2s ease}
h1{font-size:clamp(2rem,5vw,3.25rem);font-weight:800;letter-spacing:-0.02em;line-height:1.1}
h2{font-size:clamp(1.5rem,3vw,2rem);font-weight:700;margin-bottom:1rem}
h3{font-size:1.125rem;font-weight:600}
p,.muted{color:var(--color-textMuted)}
.container{width:100%;max-width:1100px;margin:0 auto;padding:0 1rem}
.btn{display:inline-flex;align-items:center;justify-content:center;gap:0.5rem;padding:0.65rem 1.25rem;font-weight:600;border-radius:0.5rem;border:1px solid var(--color-border);background:transparent;color:var(--color-text);cursor:pointer;min-height:2.75rem}
.btn-primary{background:var(--color-primary);border-color:var(--color-primary);color:#FFFFFF}
.btn-icon{width:2.75rem;height:2.75rem;padding:0;border-radius:9999px}
`
}

func cssNav() string {
	return `
.nav{position:fixed;top:0;left:0;right:0;z-index:100;background:var(--color-bg);border-bottom:1px solid var(--color-border)}
.nav-inner{display:flex;align-items:center;justify-content:space-between;gap:0.5rem;min-height:3.75rem}
.logo{font-weight:800;font-size:1.15rem}
.nav-links{display:none;position:absolute;top:100%;left:0;right:0;flex-direction:column;background:var(--color-bg);border-bottom:1px solid var(--color-border);padding:0.5rem 1rem}
.nav-links.open{display:flex}
.nav-link{padding:0.5rem 0.75rem;border-radius:0.375rem;color:var(--color-textMuted)}
.nav-link:hover,.nav-link.active{color:var(--color-primary)}
.nav-link.active{font-weight:600}
.nav-actions{display:flex;align-items:center;gap:0.25rem}
`
}

func cssSections() string {
	return `
main{padding-top:3.75rem}
.section{padding:4rem 0;opacity:0;transform:translateY(16px)}
.section.fade-in{opacity:1;transform:none}
.hero h1{margin-bottom:1rem}
.hero-lead{font-size:1.125rem;max-width:640px;margin-bottom:1.5rem}
.hero-actions{display:flex;gap:0.75rem;flex-wrap:wrap}
.skill-grid{display:grid;grid-template-columns:1fr;gap:1rem}
.skill-group{padding:1.25rem;border:1px solid var(--color-border);border-radius:0.75rem;background:var(--color-bgAlt)}
.skill-group ul{display:flex;flex-wrap:wrap;gap:0.5rem;margin-top:0.75rem}
.skill-group li{padding:0.2rem 0.6rem;border-radius:9999px;background:var(--color-bgHover);font-size:0.875rem}
.footer{padding:2rem 0;border-top:1px solid var(--color-border);text-align:center;color:var(--color-textMuted);font-size:0.875rem}
`
}

func cssTabs() string {
	return `
.tabs{display:flex;gap:0.5rem;margin-bottom:1.5rem;border-bottom:1px solid var(--color-border)}
.tab{padding:0.6rem 1rem;border:none;border-bottom:2px solid transparent;background:none;color:var(--color-textMuted);cursor:pointer;font-weight:600}
.tab.active{color:var(--color-primary);border-bottom-color:var(--color-primary)}
`
}

func cssCards() string {
	return `
.project-grid{display:grid;grid-template-columns:1fr;gap:1rem}
.project-card{display:flex;flex-direction:column;gap:0.5rem;padding:1.25rem;border:1px solid var(--color-border);border-radius:0.75rem;background:var(--color-bgAlt);transition:transform 0.2s ease,border-color 0.2s ease}
.project-card:hover{transform:translateY(-3px);border-color:var(--color-primary)}
.project-card .btn{align-self:flex-start;margin-top:auto}
`
}

func cssModal() string {
	return `
.modal{position:fixed;inset:0;z-index:200;display:none;align-items:center;justify-content:center;padding:1rem}
.modal.show{display:flex}
.modal-backdrop{position:absolute;inset:0;background:var(--color-overlay)}
.modal-dialog{position:relative;max-width:640px;width:100%;max-height:85vh;overflow-y:auto;padding:1.75rem;border-radius:0.75rem;background:var(--color-bg);border:1px solid var(--color-border)}
.modal-close{position:absolute;top:0.75rem;right:0.75rem;border:none;background:none;font-size:1.25rem;cursor:pointer;color:var(--color-textMuted)}
.modal-content h2{margin-bottom:0.25rem}
.modal-content ul{list-style:disc;padding-left:1.25rem;margin-top:1rem}
.modal-content p{margin-top:0.75rem}
`
}

func cssForm() string {
	return `
.contact-form{display:grid;gap:0.75rem;max-width:560px}
.contact-form label{font-weight:600;font-size:0.875rem}
.contact-form input,.contact-form textarea{width:100%;padding:0.65rem 0.75rem;border:1px solid var(--color-border);border-radius:0.5rem;background:var(--color-bgAlt);color:var(--color-text)}
.contact-form textarea{min-height:8rem;resize:vertical}
.contact-notice{min-height:1.5rem;font-size:0.875rem}
`
}

func cssAnimations() string {
	return `
.section{transition:opacity 0.6s ease,transform 0.6s ease}
@media(prefers-reduced-motion:reduce){*{transition-duration:0.01ms!important;scroll-behavior:auto!important}}
`
}

func cssAccessibility() string {
	return `
.sr-only{position:absolute;width:1px;height:1px;padding:0;margin:-1px;overflow:hidden;clip:rect(0,0,0,0);white-space:nowrap;border:0}
.skip-link{position:absolute;top:-40px;left:0;background:var(--color-primary);color:#FFFFFF;padding:0.5rem 1rem;z-index:1000;font-weight:600}
.skip-link:focus{top:0}
:focus-visible{outline:2px solid var(--color-primary);outline-offset:2px}
`
}

func cssResponsive() string {
	return `
@media(min-width:768px){
.menu-toggle{display:none}
.nav-links{display:flex;position:static;flex-direction:row;border:none;padding:0;background:none}
.skill-grid{grid-template-columns:repeat(2,1fr)}
.project-grid{grid-template-columns:repeat(2,1fr)}
}
@media(min-width:1024px){
.project-grid{grid-template-columns:repeat(3,1fr)}
}
`
}
