package render

import (
	"regexp"
	"strings"

	"github.com/csln-go/csln/hints"
	"github.com/csln-go/csln/locale"
	"github.com/csln-go/csln/outformat"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/style"
	"github.com/csln-go/csln/values"
)

// BibliographyEntry is one finished bibliography line plus the
// reference it came from, so callers (grouping headings, document
// assembly) can still address entries by reference after rendering.
type BibliographyEntry struct {
	Ref  *reference.Reference
	Text string
}

// RenderBibliography renders refs (already sorted/grouped by the
// caller) through sty's bibliography template, applying subsequent-
// author substitution across consecutive entries (spec.md §4.5
// "Subsequent-author substitution").
func RenderBibliography(refs []*reference.Reference, bib *reference.Bibliography, hintMap map[string]*hints.Hints, loc *locale.Locale, sty *style.Style, f outformat.Format) []BibliographyEntry {
	separator := sty.Options.Bibliography.Separator
	if separator == "" {
		separator = ". "
	}

	entries := make([]BibliographyEntry, 0, len(refs))
	prevAuthorText := ""
	for _, ref := range refs {
		ctx := values.NewContext(ref, bib, hintMap[ref.ID], loc, sty.Options)
		pt := RenderEntry(ctx, sty.Bibliography.Template)

		cur, _ := applySubsequentAuthorSubstitute(pt, prevAuthorText, sty.Options.Bibliography.SubsequentAuthorSubstitute)
		if cur != "" {
			prevAuthorText = cur
		}

		text := string(Assemble(f, pt, separator))
		text = appendEntrySuffix(text, pt, sty.Options.Bibliography.EntrySuffix)
		text = cleanDanglingPunctuation(text)
		entries = append(entries, BibliographyEntry{Ref: ref, Text: text})
	}
	return entries
}

// AssembleBibliography joins rendered entries into the final
// bibliography text, blank-line separated (spec.md §4.7 "Entries are
// joined by a blank line").
func AssembleBibliography(entries []BibliographyEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Text
	}
	return strings.Join(lines, "\n\n")
}

// primaryContributorIndex finds the first rendered contributor
// component in pt — the "primary contributor" spec.md §4.5's
// subsequent-author-substitute compares across entries.
func primaryContributorIndex(pt ProcTemplate) int {
	for i, pc := range pt {
		if pc.Component.Kind == style.ComponentContributor {
			return i
		}
	}
	return -1
}

// applySubsequentAuthorSubstitute compares the current entry's primary
// contributor text against prevAuthorText and, when opts.Rule
// matches, replaces it in place with opts.Text. Returns the current
// primary-author text as it was before any substitution, for the next
// call's comparison, so a run of three identical authors all collapse
// rather than only the second.
func applySubsequentAuthorSubstitute(pt ProcTemplate, prevAuthorText string, opts style.SubsequentAuthorSubstitute) (string, bool) {
	idx := primaryContributorIndex(pt)
	if idx < 0 {
		return "", false
	}
	cur := pt[idx].Value.Value
	if opts.Rule == "" || prevAuthorText == "" {
		return cur, false
	}

	subText := opts.Text
	if subText == "" {
		subText = "———"
	}

	switch opts.Rule {
	case "complete-all", "complete-each":
		if cur == prevAuthorText {
			pt[idx].Value.Value = subText
			return cur, true
		}
	case "partial-each", "partial-first":
		curNames := strings.Split(cur, ", ")
		prevNames := strings.Split(prevAuthorText, ", ")
		n := 0
		for n < len(curNames) && n < len(prevNames) && curNames[n] == prevNames[n] {
			n++
		}
		if n == 0 {
			break
		}
		replaced := make([]string, len(curNames))
		copy(replaced, curNames)
		for i := 0; i < n; i++ {
			replaced[i] = subText
		}
		pt[idx].Value.Value = strings.Join(replaced, ", ")
		return cur, true
	}
	return cur, false
}

// appendEntrySuffix appends suffix unless the entry's last component
// carried a URL (spec.md §4.7 "appended unless the entry ends with a
// URL/DOI"). Default suffix is ".".
func appendEntrySuffix(text string, pt ProcTemplate, suffix string) string {
	if suffix == "" {
		suffix = "."
	}
	if len(pt) > 0 && pt[len(pt)-1].Value.URL != "" {
		return text
	}
	return text + suffix
}

var danglingPunctuation = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`,\s*\.`), "."},
	{regexp.MustCompile(`\.{2,}`), "."},
	{regexp.MustCompile(`,\s*,`), ","},
	{regexp.MustCompile(`\s+([.,;:])`), "$1"},
}

// cleanDanglingPunctuation implements spec.md §4.7's post-pass
// cleaning up ", .", "..", ", ," and similar artifacts left over when
// a component was suppressed or substituted.
func cleanDanglingPunctuation(s string) string {
	for _, r := range danglingPunctuation {
		s = r.pattern.ReplaceAllString(s, r.repl)
	}
	return s
}
