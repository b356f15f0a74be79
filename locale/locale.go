// Package locale implements the locale model of spec.md §6.5: month and
// season names, uncertainty/open-ended date terms, contributor role
// labels, locator terms, a sort-article list, and a general-term table,
// each keyed by singular/plural and long/short form.
//
// Grounded on the teacher's schema.Registry (lookup-table-over-a-fixed-
// vocabulary shape) and helpers/relators.go (role code/label table,
// generalized here into per-locale data instead of a single hardcoded
// map).
package locale

import "strings"

// Form selects between a term's long and short rendering
// (spec.md §3.4 "Term{term, form}").
type Form string

const (
	FormLong  Form = "long"
	FormShort Form = "short"
)

// Plurality selects between a term's singular and plural rendering.
type Plurality string

const (
	Singular Plurality = "singular"
	Plural   Plurality = "plural"
)

// TermEntry is the four-way singular/plural × long/short cell a locale
// stores per term (spec.md §6.5 "roles ... singular/plural/verb ×
// long/short").
type TermEntry struct {
	SingularLong  string `yaml:"singular_long,omitempty"`
	SingularShort string `yaml:"singular_short,omitempty"`
	PluralLong    string `yaml:"plural_long,omitempty"`
	PluralShort   string `yaml:"plural_short,omitempty"`
	// Verb is used for contributor roles rendered as a verb phrase
	// ("edited by") rather than a noun ("editor").
	Verb string `yaml:"verb,omitempty"`
}

// Get resolves a term entry to a specific form/plurality, falling back
// to whichever of long/short and singular/plural is populated.
func (t TermEntry) Get(form Form, plurality Plurality) string {
	switch {
	case plurality == Plural && form == FormShort && t.PluralShort != "":
		return t.PluralShort
	case plurality == Plural && t.PluralLong != "":
		return t.PluralLong
	case plurality == Plural && t.PluralShort != "":
		return t.PluralShort
	case form == FormShort && t.SingularShort != "":
		return t.SingularShort
	case t.SingularLong != "":
		return t.SingularLong
	case t.SingularShort != "":
		return t.SingularShort
	default:
		return ""
	}
}

// MonthEntry holds a month's long/short name.
type MonthEntry struct {
	Long  string `yaml:"long"`
	Short string `yaml:"short,omitempty"`
}

// Locale is the fully-resolved locale data spec.md §6.5 describes.
type Locale struct {
	ID string `yaml:"id"`

	// Months is keyed 1-12; Seasons is keyed by the EDTF season codes
	// 21 (spring) through 24 (winter).
	Months  map[int]MonthEntry `yaml:"months,omitempty"`
	Seasons map[int]MonthEntry `yaml:"seasons,omitempty"`

	// UncertaintyTerm and OpenEndedTerm render edtf.Value qualifiers
	// (spec.md §3.3/§6.5 "uncertainty/open-ended terms").
	UncertaintyTerm string `yaml:"uncertainty_term,omitempty"`
	OpenEndedTerm   string `yaml:"open_ended_term,omitempty"`
	CircaTerm       string `yaml:"circa_term,omitempty"` // rendered for approximate dates

	// Roles maps a contributor role (spec.md §3.4 Contributor{role})
	// to its term entry.
	Roles map[string]TermEntry `yaml:"roles,omitempty"`

	// Locators maps a locator type ("page", "chapter", ...) to its term.
	Locators map[string]TermEntry `yaml:"locators,omitempty"`

	// Terms is the general lookup table for everything else
	// (spec.md §3.4 "Term{term, form}"): "and", "et-al", "ibid", ...
	Terms map[string]TermEntry `yaml:"terms,omitempty"`

	// SortArticles lists leading articles ("a", "an", "the", ...) that
	// the sorter strips before collation (spec.md §4.3).
	SortArticles []string `yaml:"sort_articles,omitempty"`
}

// New returns an empty, ready-to-populate Locale.
func New(id string) *Locale {
	return &Locale{
		ID:       id,
		Months:   map[int]MonthEntry{},
		Seasons:  map[int]MonthEntry{},
		Roles:    map[string]TermEntry{},
		Locators: map[string]TermEntry{},
		Terms:    map[string]TermEntry{},
	}
}

// Term looks up a general term by name and form/plurality.
func (l *Locale) Term(name string, form Form, plurality Plurality) string {
	if l == nil {
		return ""
	}
	if e, ok := l.Terms[name]; ok {
		return e.Get(form, plurality)
	}
	return ""
}

// Month returns a month's name given its 1-12 number.
func (l *Locale) Month(n int, form Form) string {
	e, ok := l.Months[n]
	if !ok {
		return ""
	}
	if form == FormShort && e.Short != "" {
		return e.Short
	}
	return e.Long
}

// Season returns a season's name given its EDTF season code (21-24).
func (l *Locale) Season(code int, form Form) string {
	e, ok := l.Seasons[code]
	if !ok {
		return ""
	}
	if form == FormShort && e.Short != "" {
		return e.Short
	}
	return e.Long
}

// RoleLabel resolves a contributor role to its display label
// (spec.md §3.4 Contributor{role, form}). The role is normalized to its
// MARC code before the Roles table is consulted; a role the table has
// no label for falls back to DefaultRoleLabel (the English MARC label,
// or the role as given), so a rendering never goes blank.
func (l *Locale) RoleLabel(role string, form Form, plurality Plurality) string {
	if e, ok := l.Roles[NormalizeRole(role)]; ok {
		if label := e.Get(form, plurality); label != "" {
			return label
		}
	}
	return DefaultRoleLabel(role)
}

// StripSortArticle removes a recognized leading article from s, used by
// the sorter when computing a title sort/collation key (spec.md §4.3).
func (l *Locale) StripSortArticle(s string) string {
	trimmed := strings.TrimLeft(s, " \t")
	lower := strings.ToLower(trimmed)
	for _, article := range l.SortArticles {
		prefix := strings.ToLower(article) + " "
		if strings.HasPrefix(lower, prefix) {
			return trimmed[len(prefix):]
		}
	}
	return trimmed
}
