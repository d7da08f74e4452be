// Package catalog provides the registry of specialty note templates.
//
// A [Catalog] is immutable after construction and is injected into the
// layers that need it — there is no module-level singleton, so tests can
// substitute fixture catalogs freely. The built-in catalog ships embedded
// in the binary; clinics may load their own from YAML.
package catalog

import (
	"fmt"
	"sort"

	"github.com/sahilm/fuzzy"
)

// NoteTemplate is one specialty note template. Templates are defined at
// build time (or loaded from clinic configuration) and are read-only at
// runtime.
type NoteTemplate struct {
	// ID uniquely identifies the template within a catalog.
	ID string `yaml:"id"`

	// Name is the display name shown in template pickers.
	Name string `yaml:"name"`

	// Specialty groups templates by clinical specialty.
	Specialty string `yaml:"specialty"`

	// InstructionText is merged into compiled instructions when the
	// template is active.
	InstructionText string `yaml:"instruction_text"`

	// SampleNarrative is an example note shown as a UI preview.
	SampleNarrative string `yaml:"sample_narrative"`
}

// Catalog is an immutable collection of note templates keyed by ID and
// grouped by specialty. The zero value is an empty catalog. Safe for
// concurrent use — read-only after construction.
type Catalog struct {
	templates   []NoteTemplate
	byID        map[string]int
	bySpecialty map[string][]int
}

// New builds a catalog from templates. The input slice is copied; later
// mutation of the caller's slice does not affect the catalog. Call
// [Validate] first when the templates come from untrusted configuration.
func New(templates []NoteTemplate) *Catalog {
	c := &Catalog{
		templates:   append([]NoteTemplate(nil), templates...),
		byID:        make(map[string]int, len(templates)),
		bySpecialty: make(map[string][]int),
	}
	for i, t := range c.templates {
		if _, exists := c.byID[t.ID]; !exists {
			c.byID[t.ID] = i
		}
		c.bySpecialty[t.Specialty] = append(c.bySpecialty[t.Specialty], i)
	}
	return c
}

// Len returns the number of templates in the catalog.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// ByID looks up a template by ID. The second return is false when the ID
// is unknown.
func (c *Catalog) ByID(id string) (NoteTemplate, bool) {
	i, ok := c.byID[id]
	if !ok {
		return NoteTemplate{}, false
	}
	return c.templates[i], true
}

// BySpecialty returns the templates for a specialty in catalog order.
// Unknown specialties return an empty slice.
func (c *Catalog) BySpecialty(specialty string) []NoteTemplate {
	idxs := c.bySpecialty[specialty]
	out := make([]NoteTemplate, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, c.templates[i])
	}
	return out
}

// Specialties returns the sorted list of specialties present in the catalog.
func (c *Catalog) Specialties() []string {
	out := make([]string, 0, len(c.bySpecialty))
	for s := range c.bySpecialty {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// All returns every template in catalog order. The returned slice is a copy.
func (c *Catalog) All() []NoteTemplate {
	return append([]NoteTemplate(nil), c.templates...)
}

// Search performs fuzzy matching of query against template names,
// specialties, and IDs, returning templates ranked best-first. An empty
// query returns all templates in catalog order.
func (c *Catalog) Search(query string) []NoteTemplate {
	if query == "" {
		return c.All()
	}

	haystack := make([]string, len(c.templates))
	for i, t := range c.templates {
		haystack[i] = fmt.Sprintf("%s %s %s", t.Name, t.Specialty, t.ID)
	}

	matches := fuzzy.Find(query, haystack)
	out := make([]NoteTemplate, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.templates[m.Index])
	}
	return out
}

