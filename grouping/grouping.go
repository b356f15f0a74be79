// Package grouping implements the grouping engine of spec.md §4.4:
// partitioning a bibliography into labeled groups by first-match
// selector, each with optional per-group sort overrides.
//
// Grounded on the teacher's rules.Condition/Action cascade (a
// first-match, ordered predicate list keyed on named fields), adapted
// from "match a hub field, emit an output type" to "match a reference,
// join a group", and on format.Registry's first-match-by-declaration-
// order idiom for the fallback-to-default-group behavior.
package grouping

import (
	"fmt"
	"strings"

	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/style"
)

// DefaultGroupName is the implicit catch-all group for references that
// match no declared selector (spec.md §4.4 "References matching no
// group go to an implicit default group").
const DefaultGroupName = ""

// FieldMatcher is one leaf predicate of a Selector, generalized from
// the teacher's rules.Condition{Field,Equals,Contains}.
type FieldMatcher struct {
	Field    string   // reference field name, e.g. "language", "publisher"
	Exact    string   // exact match, case-sensitive
	Multiple []string // match if the field's value is one of these
}

func (m FieldMatcher) matches(ref *reference.Reference) bool {
	val := fieldValue(ref, m.Field)
	if m.Exact != "" {
		return val == m.Exact
	}
	if len(m.Multiple) > 0 {
		for _, want := range m.Multiple {
			if val == want {
				return true
			}
		}
		return false
	}
	return val != ""
}

func fieldValue(ref *reference.Reference, field string) string {
	switch field {
	case "language":
		return ref.Language
	case "publisher":
		return ref.Publisher.Original
	case "publisher_place":
		return ref.PublisherPlace
	case "edition":
		return ref.Edition
	default:
		return ""
	}
}

// Selector is the grouping-engine predicate of spec.md §4.4: a
// reference joins the first group whose selector matches. RefType and
// Cited are the two built-in predicates; Field is the generalized
// teacher-style field matcher. A zero-value Selector (all fields
// empty) matches everything.
type Selector struct {
	RefType reference.Kind // "" means any type
	Cited   *bool          // nil means don't care
	Field   *FieldMatcher
}

// Matches reports whether ref, with citedness cited, satisfies sel.
func (sel Selector) Matches(ref *reference.Reference, cited bool) bool {
	if sel.RefType != "" && ref.Kind != sel.RefType {
		return false
	}
	if sel.Cited != nil && *sel.Cited != cited {
		return false
	}
	if sel.Field != nil && !sel.Field.matches(ref) {
		return false
	}
	return true
}

// ParseSelector parses the small selector grammar style.GroupSpec.Selector
// strings use: space-separated clauses ANDed together, each of the form
// `type:<kind>`, `cited:true|false`, or `field:<name>=<value>[,<value>...]`.
// An empty string parses to the always-true Selector.
func ParseSelector(expr string) (Selector, error) {
	var sel Selector
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return sel, nil
	}
	for _, clause := range strings.Fields(expr) {
		key, val, ok := strings.Cut(clause, ":")
		if !ok {
			return Selector{}, fmt.Errorf("grouping: malformed selector clause %q", clause)
		}
		switch key {
		case "type":
			sel.RefType = reference.Kind(val)
		case "cited":
			b := val == "true"
			sel.Cited = &b
		case "field":
			name, values, ok := strings.Cut(val, "=")
			if !ok {
				return Selector{}, fmt.Errorf("grouping: malformed field clause %q", clause)
			}
			parts := strings.Split(values, ",")
			fm := &FieldMatcher{Field: name}
			if len(parts) == 1 {
				fm.Exact = parts[0]
			} else {
				fm.Multiple = parts
			}
			sel.Field = fm
		default:
			return Selector{}, fmt.Errorf("grouping: unknown selector clause %q", clause)
		}
	}
	return sel, nil
}

// Group is one partition of the bibliography (spec.md §4.4).
type Group struct {
	Name string
	Spec style.GroupSpec // zero value for the implicit default group
	Refs []*reference.Reference
}

// Assign partitions refs into groups per specs, in first-match
// declaration order, falling every unmatched reference into the
// implicit default group. cited reports, per reference ID, whether it
// was actually requested by a citation (used by `cited:` selectors);
// a nil map treats every reference as cited.
func Assign(refs []*reference.Reference, specs []style.GroupSpec, cited map[string]bool) ([]Group, error) {
	selectors := make([]Selector, len(specs))
	for i, spec := range specs {
		sel, err := ParseSelector(spec.Selector)
		if err != nil {
			return nil, fmt.Errorf("grouping: group %q: %w", spec.Name, err)
		}
		selectors[i] = sel
	}

	groups := make([]Group, len(specs)+1)
	for i, spec := range specs {
		groups[i] = Group{Name: spec.Name, Spec: spec}
	}
	groups[len(specs)] = Group{Name: DefaultGroupName}

	for _, ref := range refs {
		isCited := cited == nil || cited[ref.ID]
		placed := false
		for i, sel := range selectors {
			if sel.Matches(ref, isCited) {
				groups[i].Refs = append(groups[i].Refs, ref)
				placed = true
				break
			}
		}
		if !placed {
			groups[len(specs)].Refs = append(groups[len(specs)].Refs, ref)
		}
	}

	// Drop the default group entirely when nothing landed there and at
	// least one real group was declared, so a fully-partitioning style
	// doesn't render a spurious empty heading.
	if len(specs) > 0 && len(groups[len(specs)].Refs) == 0 {
		groups = groups[:len(specs)]
	}
	return groups, nil
}
