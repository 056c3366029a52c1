// Package projects holds the fixed table of portfolio projects shown in
// the cards and the detail modal. Projects are authored as markdown files
// with YAML frontmatter and loaded once at startup.
package projects

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed content/*.md
var embedded embed.FS

// Catalog errors.
var (
	ErrNoProjects   = errors.New("no projects found")
	ErrDuplicateID  = errors.New("duplicate project id")
	ErrMissingField = errors.New("missing project field")
)

// Project is one entry of the catalog.
type Project struct {
	ID          string
	Title       string
	Subtitle    string
	Category    string
	Description template.HTML
	Order       int
}

type frontMatter struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Category string `yaml:"category"`
	Order    int    `yaml:"order"`
}

// Catalog is a read-only set of projects.
type Catalog struct {
	byID    map[string]Project
	ordered []Project
}

// New builds a catalog from already loaded projects. Used by tests and
// by Load.
func New(list ...Project) (*Catalog, error) {
	if len(list) == 0 {
		return nil, ErrNoProjects
	}

	c := &Catalog{byID: make(map[string]Project, len(list))}
	for _, p := range list {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
		}
		c.byID[p.ID] = p
		c.ordered = append(c.ordered, p)
	}

	sort.SliceStable(c.ordered, func(i, j int) bool {
		if c.ordered[i].Order != c.ordered[j].Order {
			return c.ordered[i].Order < c.ordered[j].Order
		}
		return c.ordered[i].ID < c.ordered[j].ID
	})
	return c, nil
}

// Embedded loads the projects compiled into the binary.
func Embedded() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Open loads projects from dir, or the embedded set when dir is empty.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return Embedded()
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("projects dir: %w", err)
	}
	return Load(os.DirFS(dir))
}

// Load parses every *.md file at the root of fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy := bluemonday.UGCPolicy()

	list := make([]Project, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		p, err := parse(md, policy, name, data)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}

	return New(list...)
}

func parse(md goldmark.Markdown, policy *bluemonday.Policy, name string, data []byte) (Project, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return Project{}, fmt.Errorf("frontmatter in %s: %w", name, err)
	}

	if meta.ID == "" {
		meta.ID = strings.TrimSuffix(path.Base(name), ".md")
	}
	if meta.Title == "" {
		return Project{}, fmt.Errorf("%w: %s has no title", ErrMissingField, name)
	}
	if meta.Category == "" {
		return Project{}, fmt.Errorf("%w: %s has no category", ErrMissingField, name)
	}

	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return Project{}, fmt.Errorf("markdown in %s: %w", name, err)
	}

	return Project{
		ID:          meta.ID,
		Title:       meta.Title,
		Subtitle:    meta.Subtitle,
		Category:    meta.Category,
		Description: template.HTML(policy.SanitizeBytes(buf.Bytes())),
		Order:       meta.Order,
	}, nil
}

// Lookup returns the project with exactly this id.
func (c *Catalog) Lookup(id string) (Project, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All returns every project in display order.
func (c *Catalog) All() []Project {
	out := make([]Project, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// ByCategory returns the projects of one category in display order.
func (c *Catalog) ByCategory(category string) []Project {
	var out []Project
	for _, p := range c.ordered {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories in order of first appearance.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.ordered {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
