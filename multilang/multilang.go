// Package multilang implements the multilingual string and name values of
// spec.md §3.2: a field is either a plain literal or a complex record
// carrying an original value plus optional transliterations and
// translations, and mode resolution (original | translated |
// transliterated) picks one variant as a whole.
//
// The resolution and sort-key logic here ported from the teacher's
// hub/contributor.go (ParsedNameInverted/ParsedNameDirect) and
// helpers/nameparse.go (suffix/particle handling), rewritten against this
// package's own StructuredName type since the teacher's protobuf-backed
// ParsedName (gen/go/hub/v1) is not part of this module.
package multilang

import (
	"regexp"
	"strings"
)

// Mode selects which variant of a multilingual value to render.
type Mode string

const (
	ModeOriginal       Mode = "original"
	ModeTranslated     Mode = "translated"
	ModeTransliterated Mode = "transliterated"
)

// String is a multilingual string value. A "simple" value has only
// Original set; Lang, Transliterations and Translations are the complex
// form described in spec.md §3.2.
type String struct {
	Original         string
	Lang             string
	Transliterations map[string]string // BCP 47 tag -> string
	Translations     map[string]string // language -> string
}

// NewString builds a plain literal multilingual string.
func NewString(s string) String {
	return String{Original: s}
}

// IsZero reports whether the value carries no text at all.
func (s String) IsZero() bool {
	return s.Original == "" && len(s.Transliterations) == 0 && len(s.Translations) == 0
}

// Resolve picks the rendered form for the given mode, falling back to
// Original when the requested variant is absent (spec.md §8 "Mode
// resolution": a string with no transliterations/translations renders
// Original under every mode).
//
// preferredScript is a BCP 47 script subtag (e.g. "Latn") used to select
// among multiple transliterations when mode is transliterated;
// preferredLang is the target language for translated mode.
func (s String) Resolve(mode Mode, preferredScript, preferredLang string) string {
	switch mode {
	case ModeTransliterated:
		if v, ok := s.pickTransliteration(preferredScript); ok {
			return v
		}
	case ModeTranslated:
		if preferredLang != "" {
			if v, ok := s.Translations[preferredLang]; ok {
				return v
			}
		}
		for _, v := range s.Translations {
			return v
		}
	}
	return s.Original
}

func (s String) pickTransliteration(script string) (string, bool) {
	if len(s.Transliterations) == 0 {
		return "", false
	}
	if script != "" {
		for tag, v := range s.Transliterations {
			if tagHasScript(tag, script) {
				return v, true
			}
		}
	}
	for _, v := range s.Transliterations {
		return v, true
	}
	return "", false
}

// tagHasScript reports whether a BCP 47 tag (e.g. "ja-Latn-hepburn")
// contains the given script subtag.
func tagHasScript(tag, script string) bool {
	for _, part := range strings.Split(tag, "-") {
		if strings.EqualFold(part, script) {
			return true
		}
	}
	return false
}

// StructuredName is a parsed personal or corporate name: family, given,
// optional suffix, and the two particle slots CSL-family styles
// distinguish (dropping vs. non-dropping).
type StructuredName struct {
	Family             string
	Given              string
	Suffix             string
	DroppingParticle   string // e.g. "van" in "Ludwig van Beethoven" sort-dropped
	NonDroppingParticle string // e.g. "van" in "Vincent van Gogh" kept in sort position
	Literal            string // corporate/simple author: a single literal, no components
}

// IsLiteral reports whether this name carries only a literal (corporate
// author) form.
func (n StructuredName) IsLiteral() bool {
	return n.Literal != "" && n.Family == "" && n.Given == ""
}

// Direct renders "Given Middle Particle Family Suffix" (non-sort order).
func (n StructuredName) Direct(demoteNonDroppingParticle bool) string {
	if n.IsLiteral() {
		return n.Literal
	}
	var parts []string
	if n.Given != "" {
		parts = append(parts, n.Given)
	}
	if n.DroppingParticle != "" {
		parts = append(parts, n.DroppingParticle)
	}
	if !demoteNonDroppingParticle && n.NonDroppingParticle != "" {
		parts = append(parts, n.NonDroppingParticle)
	}
	if n.Family != "" {
		parts = append(parts, n.Family)
	}
	if demoteNonDroppingParticle && n.NonDroppingParticle != "" {
		parts = append(parts, n.NonDroppingParticle)
	}
	if n.Suffix != "" {
		parts = append(parts, n.Suffix)
	}
	return strings.Join(parts, " ")
}

// Sort renders "[Particle ]Family, [Particle ]Given Suffix" (sort order):
// the non-dropping particle leads the family part, or the given part
// when demoted,
// per spec.md §4.1: "sort order is family, given", with particle
// placement governed by demote_non_dropping_particle.
func (n StructuredName) Sort(demoteNonDroppingParticle bool) string {
	if n.IsLiteral() {
		return n.Literal
	}

	family := n.Family
	if !demoteNonDroppingParticle && n.NonDroppingParticle != "" {
		family = n.NonDroppingParticle + " " + family
	}

	var rest []string
	if demoteNonDroppingParticle && n.NonDroppingParticle != "" {
		rest = append(rest, n.NonDroppingParticle)
	}
	if n.DroppingParticle != "" {
		rest = append(rest, n.DroppingParticle)
	}
	if n.Given != "" {
		rest = append(rest, n.Given)
	}
	if n.Suffix != "" {
		rest = append(rest, n.Suffix)
	}

	if family == "" {
		return strings.Join(rest, " ")
	}
	if len(rest) == 0 {
		return family
	}
	return family + ", " + strings.Join(rest, " ")
}

// SortKey returns the lowercased family name (or literal) used as the
// collation key for author sorting (spec.md §4.3).
func (n StructuredName) SortKey(demoteNonDroppingParticle bool) string {
	if n.IsLiteral() {
		return strings.ToLower(n.Literal)
	}
	family := n.Family
	if !demoteNonDroppingParticle && n.NonDroppingParticle != "" {
		family = n.NonDroppingParticle + " " + family
	}
	return strings.ToLower(family)
}

// Name is a multilingual name: analogous to String but for
// StructuredName values (spec.md §3.2).
type Name struct {
	Original         StructuredName
	Lang             string
	Transliterations map[string]StructuredName
	Translations     map[string]StructuredName
}

// Resolve picks the whole name variant for the given mode. The
// invariant from spec.md §3.2 ("rendering selects a whole name variant
// as a unit") is upheld structurally: the return value is always one of
// Original/Transliterations[x]/Translations[x], never a field-by-field
// mix.
func (n Name) Resolve(mode Mode, preferredScript, preferredLang string) StructuredName {
	switch mode {
	case ModeTransliterated:
		if len(n.Transliterations) > 0 {
			if preferredScript != "" {
				for tag, v := range n.Transliterations {
					if tagHasScript(tag, preferredScript) {
						return v
					}
				}
			}
			for _, v := range n.Transliterations {
				return v
			}
		}
	case ModeTranslated:
		if preferredLang != "" {
			if v, ok := n.Translations[preferredLang]; ok {
				return v
			}
		}
		for _, v := range n.Translations {
			return v
		}
	}
	return n.Original
}

// Contributor is one entry of a reference's ordered contributor list.
// Name is the multilingual structured name; a name whose
// StructuredName carries only Literal models a "simple" corporate
// contributor as described in spec.md §3.2.
type Contributor struct {
	Name Name
	Role string // e.g. "author", "editor", "translator", or a custom role
}

var suffixes = []string{"Jr.", "Jr", "Sr.", "Sr", "III", "II", "IV", "V", "PhD", "Ph.D.", "MD", "M.D.", "Esq.", "Esq"}

var nonDroppingPrefixes = []string{"van", "von", "de", "del", "della", "di", "da", "le", "la", "du", "des", "den", "der", "het", "ter", "ten", "mc", "mac", "al-", "el-", "ibn"}

var invertedNameRegex = regexp.MustCompile(`^([^,]+),\s*(.+)$`)

// ParseName parses a plain-text name string ("First Last", "Last, First",
// or a corporate literal with no spaces-as-separators heuristic match)
// into a StructuredName. Grounded on the teacher's helpers/nameparse.go
// suffix/particle lists, rewritten to populate StructuredName instead of
// the deleted protobuf ParsedName.
func ParseName(name string) StructuredName {
	name = strings.TrimSpace(name)
	if name == "" {
		return StructuredName{}
	}

	if m := invertedNameRegex.FindStringSubmatch(name); m != nil {
		family := strings.TrimSpace(m[1])
		rest := strings.TrimSpace(m[2])
		rest, suffix := extractSuffix(rest)
		given := rest
		return StructuredName{Family: family, Given: given, Suffix: suffix}
	}

	rest, suffix := extractSuffix(name)
	parts := strings.Fields(rest)
	if len(parts) == 0 {
		return StructuredName{}
	}
	if len(parts) == 1 {
		return StructuredName{Literal: parts[0]}
	}

	familyStart := len(parts) - 1
	family := parts[familyStart]
	particle := ""
	if familyStart > 0 && isNonDroppingParticle(parts[familyStart-1]) {
		particle = parts[familyStart-1]
		familyStart--
	}

	given := parts[0]
	var middle string
	if familyStart > 1 {
		middle = strings.Join(parts[1:familyStart], " ")
	}
	if middle != "" {
		given = given + " " + middle
	}

	return StructuredName{
		Family:              family,
		Given:               given,
		Suffix:              suffix,
		NonDroppingParticle: particle,
	}
}

func extractSuffix(name string) (string, string) {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, ", "+suffix) {
			return strings.TrimSuffix(name, ", "+suffix), suffix
		}
		if strings.HasSuffix(name, " "+suffix) {
			return strings.TrimSuffix(name, " "+suffix), suffix
		}
	}
	return name, ""
}

func isNonDroppingParticle(word string) bool {
	lower := strings.ToLower(word)
	for _, p := range nonDroppingPrefixes {
		if lower == p {
			return true
		}
	}
	return false
}

// InitializeGiven reduces a given-name string to initials, e.g.
// "Thomas Samuel" -> "T. S.", honoring a hyphen-join option for names
// like "Jean-Paul" -> "J.-P.".
func InitializeGiven(given string, withHyphen bool) string {
	given = strings.TrimSpace(given)
	if given == "" {
		return ""
	}
	words := strings.Fields(given)
	initials := make([]string, 0, len(words))
	for _, w := range words {
		if withHyphen && strings.Contains(w, "-") {
			hyphenParts := strings.Split(w, "-")
			for i, hp := range hyphenParts {
				if hp == "" {
					continue
				}
				hyphenParts[i] = strings.ToUpper(hp[:1]) + "."
			}
			initials = append(initials, strings.Join(hyphenParts, "-"))
			continue
		}
		initials = append(initials, strings.ToUpper(w[:1])+".")
	}
	return strings.Join(initials, " ")
}
