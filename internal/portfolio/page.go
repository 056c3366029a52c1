// Package portfolio implements the live portfolio page: the tab filter,
// project dialog, theme, scroll spy, section reveal, contact composer and
// mobile menu, composed into one core.Component.
package portfolio

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabrielmiguelok/livefolio/internal/projects"
	"github.com/gabrielmiguelok/livefolio/internal/site"
	"github.com/gabrielmiguelok/livefolio/internal/site/components"
	"github.com/gabrielmiguelok/livefolio/pkg/core"
	"github.com/gabrielmiguelok/livefolio/pkg/js"
	"github.com/gabrielmiguelok/livefolio/pkg/logging"
	"github.com/gabrielmiguelok/livefolio/pkg/router"
)

// Client events.
const (
	EventSelectTab     = "select_tab"
	EventOpenModal     = "open_modal"
	EventCloseModal    = "close_modal"
	EventModalClick    = "modal_click"
	EventKeydown       = "keydown"
	EventToggleTheme   = "toggle_theme"
	EventScroll        = "scroll"
	EventReveal        = "reveal"
	EventSubmitContact = "submit_contact"
	EventToggleMenu    = "toggle_menu"
	EventNavClick      = "nav_click"
)

// Events lists every event the page binds.
var Events = []string{
	EventSelectTab, EventOpenModal, EventCloseModal, EventModalClick,
	EventKeydown, EventToggleTheme, EventScroll, EventReveal,
	EventSubmitContact, EventToggleMenu, EventNavClick,
}

// Options configures every Page a factory creates.
type Options struct {
	// Page is the document shell; Nonce is filled per request.
	Page site.PageConfig
	// Owner is the name in the headline and footer
	Owner string
	// Recipient receives contact form mail
	Recipient string
	// DefaultTab is the tab shown first unless ?tab= names another
	DefaultTab string
	// TabLabels overrides the title-cased category names
	TabLabels map[string]string
	// LeadIn is the scroll spy margin
	LeadIn float64
	// RevealThreshold is the fader threshold
	RevealThreshold float64
	// Catalog is the project list
	Catalog *projects.Catalog
	// Flags persists the theme; nil keeps it per connection
	Flags FlagStore
	// Now returns the current time for the footer year
	Now func() time.Time
	// Intro and Skills are the static copy
	Intro  Intro
	Skills []components.SkillGroup
	// Links is the navigation bar
	Links []NavLink
}

func (o *Options) setDefaults() {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.LeadIn == 0 {
		o.LeadIn = DefaultLeadIn
	}
	if o.RevealThreshold <= 0 {
		o.RevealThreshold = DefaultRevealThreshold
	}
	if o.TabLabels == nil {
		o.TabLabels = DefaultTabLabels
	}
	if o.Intro == (Intro{}) {
		o.Intro = DefaultIntro
	}
	if o.Skills == nil {
		o.Skills = DefaultSkills
	}
	if o.Links == nil {
		o.Links = DefaultLinks
	}
}

// Page is the live portfolio component.
type Page struct {
	core.BaseComponent

	opts     Options
	bindings *Bindings
	tabs     *TabFilter
	modal    *Modal
	theme    *ThemeStore
	spy      ScrollSpy
	fader    *Fader
	composer Composer
	menu     Menu
	current  string
	notice   string
	year     int
}

// NewPage creates an unmounted page.
func NewPage(opts Options) *Page {
	opts.setDefaults()
	return &Page{opts: opts}
}

// Factory returns a constructor for router.LiveRoute.
func Factory(opts Options) func() core.Component {
	return func() core.Component {
		return NewPage(opts)
	}
}

// Name implements core.Component.
func (p *Page) Name() string {
	return "portfolio"
}

// Mount builds the page state for one visitor.
func (p *Page) Mount(ctx context.Context, params core.Params, session core.Session) error {
	owner := session.Visitor()

	theme, stored := storedTheme(ctx, p.opts.Flags, owner)
	p.theme = NewThemeStore(p.opts.Flags, owner, theme)
	if !stored && params.Get("theme") == string(ThemeDark) {
		// The browser remembers dark mode from a visit this server has no
		// flag for; adopt it so the join diff does not flip the page back.
		p.theme.Set(ctx, true)
	}

	var list []projects.Project
	var categories []string
	if p.opts.Catalog != nil {
		list = p.opts.Catalog.All()
		categories = p.opts.Catalog.Categories()
	}
	initial := Category(params.GetDefault("tab", p.opts.DefaultTab))
	p.tabs = NewTabFilter(TabsFor(categories, p.opts.TabLabels), CardsFor(list), initial)

	var lookup ProjectLookup
	if p.opts.Catalog != nil {
		lookup = p.opts.Catalog
	}
	p.modal = NewModal(lookup)
	p.spy = ScrollSpy{LeadIn: p.opts.LeadIn}
	p.fader = NewFader(p.opts.RevealThreshold)
	p.composer = Composer{Recipient: p.opts.Recipient}
	p.year = p.opts.Now().Year()

	p.bindings = NewBindings()
	p.bind()
	p.sync()

	return nil
}

func (p *Page) bind() {
	b := p.bindings

	b.MustBind(EventSelectTab, func(ctx context.Context, payload map[string]any) error {
		p.tabs.Select(Category(stringValue(payload["tab"])))
		return nil
	})
	b.MustBind(EventOpenModal, func(ctx context.Context, payload map[string]any) error {
		if p.modal.Open(stringValue(payload["project"])) {
			p.queue(js.JS.Focus("#modalClose"))
		}
		return nil
	})
	b.MustBind(EventCloseModal, func(ctx context.Context, payload map[string]any) error {
		p.modal.Dismiss(DismissCloseButton, "")
		return nil
	})
	b.MustBind(EventModalClick, func(ctx context.Context, payload map[string]any) error {
		p.modal.Dismiss(DismissBackdrop, stringValue(payload["target_class"]))
		return nil
	})
	b.MustBind(EventKeydown, func(ctx context.Context, payload map[string]any) error {
		p.modal.Dismiss(DismissEscape, stringValue(payload["key"]))
		return nil
	})
	b.MustBind(EventToggleTheme, func(ctx context.Context, payload map[string]any) error {
		p.theme.Toggle(ctx)
		p.queue(js.JS.StoreLocal(ThemeSlot, string(p.theme.Theme())))
		return nil
	})
	b.MustBind(EventScroll, func(ctx context.Context, payload map[string]any) error {
		y, _ := floatValue(payload["y"])
		p.current = p.spy.Current(SectionsFromPayload(payload["sections"]), y)
		return nil
	})
	b.MustBind(EventReveal, func(ctx context.Context, payload map[string]any) error {
		ratio, _ := floatValue(payload["ratio"])
		p.fader.Observe(stringValue(payload["id"]), ratio)
		return nil
	})
	b.MustBind(EventSubmitContact, func(ctx context.Context, payload map[string]any) error {
		link := p.composer.Compose(FormFromPayload(payload))
		p.notice = p.composer.FallbackNotice()
		p.queue(js.JS.Navigate(link), js.JS.Alert(p.notice))
		return nil
	})
	b.MustBind(EventToggleMenu, func(ctx context.Context, payload map[string]any) error {
		p.menu.Toggle()
		return nil
	})
	b.MustBind(EventNavClick, func(ctx context.Context, payload map[string]any) error {
		p.menu.Close()
		return nil
	})
}

// HandleEvent dispatches a client event. Unbound events are ignored.
func (p *Page) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	handled, err := p.bindings.Dispatch(ctx, event, payload)
	if !handled {
		logging.L(ctx).Debug("unbound event ignored", logging.String("event", event))
		return nil
	}
	if err != nil {
		return err
	}
	p.sync()
	return nil
}

// queue hands client commands to the socket. They are flushed after the
// diff for this event.
func (p *Page) queue(cmds ...js.Command) {
	socket := p.Socket()
	if socket == nil {
		return
	}
	for _, c := range cmds {
		socket.QueueCommands(c.Map())
	}
}

// sync mirrors the view state into assigns.
func (p *Page) sync() {
	a := p.Assigns()
	a.Set("tab", string(p.tabs.Active()))
	a.Set("theme", string(p.theme.Theme()))
	a.Set("modal_open", p.modal.IsOpen())
	a.Set("modal_project", p.modal.State().Project.ID)
	a.Set("section", p.current)
	a.Set("menu_open", p.menu.Open())
	a.Set("revealed", p.fader.RevealedIDs())
}

// Render implements core.Component.
func (p *Page) Render(ctx context.Context) core.Renderer {
	return core.RendererFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, p.Document(ctx))
		return err
	})
}

// Document renders the complete page.
func (p *Page) Document(ctx context.Context) string {
	cfg := p.opts.Page
	cfg.Nonce = router.GetCSPNonce(ctx)
	cfg.RevealThreshold = p.fader.Threshold
	if cfg.Author == "" {
		cfg.Author = p.opts.Owner
	}
	if cfg.Email == "" {
		cfg.Email = p.opts.Recipient
	}

	var sb strings.Builder

	sb.WriteString(components.RenderNavbar(p.navbarOptions()))
	sb.WriteString(`<main id="main-content">`)
	sb.WriteString("\n")
	sb.WriteString(components.RenderHero(components.HeroOptions{
		ID:              SectionAbout,
		Revealed:        p.fader.Revealed(SectionAbout),
		Greeting:        p.opts.Intro.Greeting,
		Name:            p.opts.Owner,
		Lead:            p.opts.Intro.Lead,
		PrimaryButton:   components.HeroButton{Text: "View projects", URL: "#" + SectionProjects},
		SecondaryButton: components.HeroButton{Text: "Get in touch", URL: "#" + SectionContact},
	}))
	sb.WriteString(components.RenderProjects(p.projectsOptions()))
	sb.WriteString(components.RenderSkills(components.SkillsOptions{
		ID:       SectionSkills,
		Title:    "Skills",
		Revealed: p.fader.Revealed(SectionSkills),
		Groups:   p.opts.Skills,
	}))
	sb.WriteString(components.RenderContact(components.ContactOptions{
		ID:       SectionContact,
		Title:    "Contact",
		Lead:     fmt.Sprintf("Have a project or a question? Send a message and it will open in your mail client, addressed to %s.", p.opts.Recipient),
		Revealed: p.fader.Revealed(SectionContact),
		Notice:   p.notice,
	}))
	sb.WriteString(`</main>`)
	sb.WriteString("\n")
	sb.WriteString(components.RenderFooter(components.FooterOptions{
		Owner:   p.opts.Owner,
		Year:    p.year,
		Tagline: "Served live from Go",
	}))

	state := p.modal.State()
	sb.WriteString(components.RenderModal(components.ModalOptions{
		Open:        state.Open,
		Title:       state.Project.Title,
		Subtitle:    state.Project.Subtitle,
		Description: state.Project.Description,
	}))

	return site.RenderDocument(cfg, site.Body{Class: p.theme.BodyClass(), Content: sb.String()})
}

func (p *Page) navbarOptions() components.NavbarOptions {
	active := ActiveLinks(p.opts.Links, p.current)
	items := make([]components.NavItem, len(p.opts.Links))
	for i, l := range p.opts.Links {
		items[i] = components.NavItem{Label: l.Label, Href: l.Href, Active: active[i]}
	}
	return components.NavbarOptions{
		Logo:       p.opts.Owner,
		LogoHref:   "#" + SectionAbout,
		Links:      items,
		MenuOpen:   p.menu.Open(),
		MenuGlyph:  p.menu.Glyph(),
		ThemeGlyph: p.theme.Glyph(),
		Dark:       p.theme.Dark(),
	}
}

func (p *Page) projectsOptions() components.ProjectsOptions {
	tabs := make([]components.TabItem, 0, len(p.tabs.Tabs()))
	for _, t := range p.tabs.Tabs() {
		tabs = append(tabs, components.TabItem{Key: string(t.Key), Label: t.Label, Active: p.tabs.IsActive(t.Key)})
	}
	cards := make([]components.CardItem, 0, len(p.tabs.Cards()))
	for _, c := range p.tabs.Cards() {
		cards = append(cards, components.CardItem{
			ID:       c.ID,
			Category: string(c.Category),
			Title:    c.Title,
			Subtitle: c.Subtitle,
			Hidden:   !p.tabs.Visible(c),
		})
	}
	return components.ProjectsOptions{
		ID:       SectionProjects,
		Title:    "Projects",
		Revealed: p.fader.Revealed(SectionProjects),
		Tabs:     tabs,
		Cards:    cards,
	}
}

// Tabs exposes the tab filter.
func (p *Page) Tabs() *TabFilter { return p.tabs }

// Modal exposes the dialog controller.
func (p *Page) Modal() *Modal { return p.modal }

// Theme exposes the theme store.
func (p *Page) Theme() *ThemeStore { return p.theme }

// Fader exposes the section fader.
func (p *Page) Fader() *Fader { return p.fader }

// Menu exposes the mobile menu.
func (p *Page) Menu() *Menu { return &p.menu }

// CurrentSection returns the section the scroll spy last picked.
func (p *Page) CurrentSection() string { return p.current }

// Verify renders a fresh page and checks that every element the client
// addresses by id is present exactly once.
func Verify(ctx context.Context, opts Options) error {
	p := NewPage(opts)
	if err := p.Mount(ctx, core.Params{}, core.Session{}); err != nil {
		return err
	}
	return site.RequireIDs(p.Document(ctx), site.RequiredIDs...)
}
