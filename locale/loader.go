package locale

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinLocales embed.FS

// Registry holds loaded locales by ID (spec.md §6.5 "Multiple locales
// may be loaded; the active locale is chosen by the style's
// default_locale or an override").
//
// Grounded on the teacher's mapping.ProfileRegistry: embed a built-in
// set, allow registering/overriding from a directory or string, look up
// by name.
type Registry struct {
	locales map[string]*Locale
}

// NewRegistry returns a Registry preloaded with the built-in locales.
func NewRegistry() (*Registry, error) {
	r := &Registry{locales: make(map[string]*Locale)}

	entries, err := builtinLocales.ReadDir("builtin")
	if err != nil {
		return r, nil
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := builtinLocales.ReadFile("builtin/" + entry.Name())
		if err != nil {
			continue
		}
		loc, err := Parse(data)
		if err != nil {
			continue
		}
		r.locales[loc.ID] = loc
	}
	return r, nil
}

// Get looks up a locale by ID (a BCP 47 tag such as "en" or "fr-CA").
func (r *Registry) Get(id string) (*Locale, bool) {
	l, ok := r.locales[id]
	return l, ok
}

// Register adds or replaces a locale.
func (r *Registry) Register(l *Locale) {
	r.locales[l.ID] = l
}

// List returns the IDs of every registered locale.
func (r *Registry) List() []string {
	ids := make([]string, 0, len(r.locales))
	for id := range r.locales {
		ids = append(ids, id)
	}
	return ids
}

// LoadFile registers the locale described by a YAML file at path.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading locale file: %w", err)
	}
	loc, err := Parse(data)
	if err != nil {
		return fmt.Errorf("parsing locale file %s: %w", path, err)
	}
	r.Register(loc)
	return nil
}

// LoadDirectory registers every "*.yaml" locale file found in dir.
func (r *Registry) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading locale directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Parse decodes a single locale YAML document.
func Parse(data []byte) (*Locale, error) {
	loc := New("")
	if err := yaml.Unmarshal(data, loc); err != nil {
		return nil, fmt.Errorf("parsing locale: %w", err)
	}
	if loc.ID == "" {
		return nil, fmt.Errorf("locale document is missing its id")
	}
	return loc, nil
}

// Resolve picks the active locale per spec.md §6.5: an explicit
// override first, then the style's default, falling back to "en" so
// rendering never has to special-case a missing locale.
func (r *Registry) Resolve(override, styleDefault string) (*Locale, error) {
	for _, candidate := range []string{override, styleDefault, "en"} {
		if candidate == "" {
			continue
		}
		if l, ok := r.Get(candidate); ok {
			return l, nil
		}
	}
	return nil, fmt.Errorf("no locale available (tried %q, %q, \"en\")", override, styleDefault)
}
