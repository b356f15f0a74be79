// Package hints implements the disambiguator of spec.md §4.2: a single
// pass over the bibliography that precomputes, per reference, whatever
// extra information the renderer needs to tell two otherwise-identical
// citations apart (name expansion, given-name expansion, year-suffix
// letters).
//
// Grounded on the teacher's rules.RuleSet: an ordered cascade of
// strategies evaluated in sequence, first-applicable (or here,
// first-sufficient) wins, paired with a deterministic stable sort for
// the fallback case — the same shape rules.RuleSet.Evaluate uses for
// "first matching rule wins", generalized from a single pass to a
// cascade of increasingly aggressive strategies.
package hints

import (
	"fmt"
	"sort"
	"strings"

	"github.com/csln-go/csln/edtf"
	"github.com/csln-go/csln/locale"
	"github.com/csln-go/csln/multilang"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/style"
)

// Hints is the per-reference processing-hint record of spec.md §3.5.
type Hints struct {
	GroupKey         string
	GroupIndex       int
	GroupLength      int
	DisambCondition  bool
	ExpandGivenNames bool
	MinNamesToShow   int

	// YearSuffix is the disambiguating letter ("a", "b", ..., "aa", ...)
	// assigned when DisambCondition is true; empty otherwise.
	YearSuffix string

	// CitationNumber is filled lazily by the engine on first citation
	// (spec.md §3.5); the disambiguator never touches it.
	CitationNumber int
}

// Compute returns processing hints for every reference in bib, keyed by
// reference ID (spec.md §4.2 "Output: hints map keyed by reference ID").
func Compute(bib *reference.Bibliography, opts style.Options) map[string]*Hints {
	result := make(map[string]*Hints, bib.Len())
	refs := bib.All()
	for _, ref := range refs {
		result[ref.ID] = &Hints{}
	}

	groups := groupByCollisionKey(refs, opts)
	for key, group := range groups {
		for _, ref := range group {
			result[ref.ID].GroupKey = key
			result[ref.ID].GroupLength = len(group)
		}
		if len(group) < 2 {
			continue
		}
		disambiguateGroup(group, result, opts)
	}
	return result
}

// groupByCollisionKey buckets references by the base citation form
// described in spec.md §4.2 step 1: shortened-or-full family-name list,
// lower-cased and comma-joined, plus the 4-digit year.
func groupByCollisionKey(refs []*reference.Reference, opts style.Options) map[string][]*reference.Reference {
	groups := make(map[string][]*reference.Reference)
	shorten := opts.Contributors.MaxNamesBeforeEtAl > 0
	for _, ref := range refs {
		key := baseKey(ref, shorten)
		groups[key] = append(groups[key], ref)
	}
	return groups
}

func baseKey(ref *reference.Reference, shorten bool) string {
	names := creatorFamilyNames(ref)
	var namePart string
	switch {
	case len(names) == 0:
		namePart = ""
	case shorten:
		namePart = strings.ToLower(names[0])
		if len(names) > 1 {
			namePart += ", et al"
		}
	default:
		lowered := make([]string, len(names))
		for i, n := range names {
			lowered[i] = strings.ToLower(n)
		}
		namePart = strings.Join(lowered, ",")
	}
	return namePart + "|" + yearOf(ref)
}

// creatorFamilyNames returns the family name of every primary-creator
// contributor (author, editor, ...) in document order, falling back to
// every contributor if the reference names none.
func creatorFamilyNames(ref *reference.Reference) []string {
	var names []string
	for _, c := range ref.Contributors {
		if locale.IsCreatorRole(c.Role) {
			if fam := familyOf(c.Name); fam != "" {
				names = append(names, fam)
			}
		}
	}
	if len(names) > 0 {
		return names
	}
	for _, c := range ref.Contributors {
		if fam := familyOf(c.Name); fam != "" {
			names = append(names, fam)
		}
	}
	return names
}

func familyOf(n multilang.Name) string {
	sn := n.Original
	if sn.IsLiteral() {
		return sn.Literal
	}
	return sn.Family
}

func givenOf(n multilang.Name) string {
	return n.Original.Given
}

func yearOf(ref *reference.Reference) string {
	v := edtf.Parse(ref.Issued)
	if v.Year == 0 {
		return ""
	}
	return fmt.Sprintf("%04d", v.Year)
}

// disambiguateGroup applies the cascade of spec.md §4.2 step 2 to a
// single collision group, sorted by group-index assignment order.
func disambiguateGroup(group []*reference.Reference, result map[string]*Hints, opts style.Options) {
	sort.SliceStable(group, func(i, j int) bool { return group[i].ID < group[j].ID })
	for i, ref := range group {
		result[ref.ID].GroupIndex = i + 1
	}

	namesEnabled := opts.Contributors.MaxNamesBeforeEtAl != -1
	maxFamilyLen := 0
	for _, ref := range group {
		if n := len(creatorFamilyNames(ref)); n > maxFamilyLen {
			maxFamilyLen = n
		}
	}

	// (a) Name expansion: smallest N >= 2 that disambiguates using
	// family names alone.
	if namesEnabled {
		for n := 2; n <= maxFamilyLen; n++ {
			if distinctAtLength(group, n, false) {
				for _, ref := range group {
					result[ref.ID].MinNamesToShow = n
				}
				return
			}
		}
	}

	// (b) Given-name expansion at the group's natural (base) truncation.
	baseN := 1
	if distinctAtLength(group, baseN, true) {
		for _, ref := range group {
			result[ref.ID].ExpandGivenNames = true
		}
		return
	}

	// (c) Combined expansion: scan N upward requiring family+given names
	// to disambiguate together.
	if namesEnabled {
		for n := 2; n <= maxFamilyLen; n++ {
			if distinctAtLength(group, n, true) {
				for _, ref := range group {
					result[ref.ID].MinNamesToShow = n
					result[ref.ID].ExpandGivenNames = true
				}
				return
			}
		}
	}

	// (d) Year-suffix fallback: deterministic stable sort, then
	// a, b, c, ..., z, aa, ab, ...
	sorted := make([]*reference.Reference, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Title.Original) < strings.ToLower(sorted[j].Title.Original)
	})
	for i, ref := range sorted {
		h := result[ref.ID]
		h.DisambCondition = true
		h.YearSuffix = suffixLetter(i)
	}
}

// distinctAtLength reports whether truncating every reference's
// creator-name list to n entries (optionally including given names)
// produces pairwise-distinct keys across the group.
func distinctAtLength(group []*reference.Reference, n int, withGiven bool) bool {
	seen := make(map[string]bool, len(group))
	for _, ref := range group {
		key := truncatedKey(ref, n, withGiven)
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

func truncatedKey(ref *reference.Reference, n int, withGiven bool) string {
	var parts []string
	for _, c := range ref.Contributors {
		if !locale.IsCreatorRole(c.Role) {
			continue
		}
		fam := familyOf(c.Name)
		if fam == "" {
			continue
		}
		part := strings.ToLower(fam)
		if withGiven {
			part += " " + strings.ToLower(givenOf(c.Name))
		}
		parts = append(parts, part)
		if len(parts) >= n {
			break
		}
	}
	return strings.Join(parts, ",")
}

// suffixLetter produces the a, b, ..., z, aa, ab, ... sequence
// spec.md §4.2 step 2d specifies, for a 0-based index.
func suffixLetter(index int) string {
	const alphabetSize = 26
	if index < alphabetSize {
		return string(rune('a' + index))
	}
	// Two-letter sequence: aa, ab, ..., az, ba, ...
	first := index/alphabetSize - 1
	second := index % alphabetSize
	return string(rune('a'+first)) + string(rune('a'+second))
}
