// Package outformat implements the output-format back ends of
// spec.md §4.6: stateless handlers translating a rendered fragment
// tree into plain text, HTML, Djot, or LaTeX.
//
// Grounded on the teacher's format.Format/format.Registry (a
// self-registering, name-keyed plugin registry) generalized from
// "parse/serialize a bibliographic metadata format" to "render a
// fragment tree to one markup dialect". The Parser/Serializer split
// didn't carry over — every back end here both builds and finishes
// fragments, so Format is a single small interface rather than two.
package outformat

import (
	"fmt"
	"strings"

	"github.com/csln-go/csln/style"
)

// Fragment is the abstract fragment type of spec.md §4.6. Every back
// end in this package represents a fragment as its own in-progress
// markup string; Fragment is a named string type rather than an
// interface so Format implementations can be value types with no
// per-call allocation beyond the strings themselves.
type Fragment string

// Format is the stateless per-back-end handler spec.md §4.6 describes.
type Format interface {
	// Name identifies this format for registry lookup (e.g. "plain").
	Name() string

	Text(s string) Fragment
	Emph(f Fragment) Fragment
	Strong(f Fragment) Fragment
	SmallCaps(f Fragment) Fragment
	Quote(f Fragment) Fragment
	Link(url string, f Fragment) Fragment
	WrapPunctuation(wrap style.WrapKind, f Fragment) Fragment
	Affix(prefix string, f Fragment, suffix string) Fragment
	InnerAffix(prefix string, f Fragment, suffix string) Fragment
	Semantic(class string, f Fragment) Fragment
	Finish(f Fragment) string
}

// Registry holds registered output formats, keyed by name.
type Registry struct {
	formats map[string]Format
}

// DefaultRegistry is the global output-format registry; the four
// built-in back ends self-register into it via init().
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]Format)}
}

// Register adds f to the registry under its own name.
func (r *Registry) Register(f Format) {
	r.formats[f.Name()] = f
}

// Get retrieves a format by name (case-insensitive).
func (r *Registry) Get(name string) (Format, bool) {
	f, ok := r.formats[strings.ToLower(name)]
	return f, ok
}

// List returns every registered format name.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	return names
}

// Register adds f to the default registry.
func Register(f Format) { DefaultRegistry.Register(f) }

// Get retrieves a format from the default registry.
func Get(name string) (Format, bool) { return DefaultRegistry.Get(name) }

// MustGet retrieves a format from the default registry, panicking if
// absent; for call sites (CLI flag resolution) that have already
// validated the name against List().
func MustGet(name string) Format {
	f, ok := Get(name)
	if !ok {
		panic(fmt.Sprintf("outformat: unregistered format %q", name))
	}
	return f
}

// List returns every format name registered in the default registry.
func List() []string { return DefaultRegistry.List() }

// Resolve looks up name, constructing a semantics-configured instance
// for the back ends that support it (html, djot) rather than the
// registry's semantics-off default, and falling back to a plain
// registry lookup for every other format.
func Resolve(name string, semantics bool) (Format, bool) {
	switch strings.ToLower(name) {
	case "html":
		return NewHTML(semantics), true
	case "djot":
		return NewDjot(semantics), true
	default:
		return Get(name)
	}
}
