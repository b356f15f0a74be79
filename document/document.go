// Package document implements the document pass of spec.md §4.8: it
// recognizes Djot citation tokens in source text (`[@key]`, `[+@key]`,
// `[-@key]`, `[@a; @b, ch. 2]`, `[!@key]`) and yields a token stream
// the engine can splice rendered citations into.
//
// Grounded on the teacher's format/drupal parsing shape (read the
// whole input, scan for a delimiter, accumulate structured records) —
// generalized from JSON-entity scanning to inline bracket-token
// scanning, since nothing in the example pack parses free-text markup
// directly; every teacher parser works over already-structured
// JSON/XML/CSV, so the bracket scanner itself is a plain
// `regexp`-based pass rather than a port of any specific file.
package document

import (
	"regexp"
	"strings"

	"github.com/csln-go/csln/render"
)

// CitationItemSpec is one `@key` reference inside a citation token,
// with its parsed visibility modifier and optional locator.
type CitationItemSpec struct {
	Key        string
	Visibility render.Visibility
	Label      string // empty when no locator was given
	Locator    string
}

// CitationSpec is one recognized citation token's parsed content.
type CitationSpec struct {
	Items []CitationItemSpec

	// Integral marks a `[+@key]` token (spec.md §4.8 "integral"): the
	// citation reads as part of the surrounding sentence, so the
	// engine should skip the outer wrap/parenthesization it would
	// otherwise apply.
	Integral bool
}

// Token is one recognized citation occurrence plus the literal text
// that preceded it (spec.md §4.8 "a stream of (start, end, Citation)
// tuples plus the literal intervening text").
type Token struct {
	Start, End int
	Literal    string
	Citation   CitationSpec
}

// citationToken matches a bracketed run containing at least one
// `@key` reference; a bare `[text](url)`-style Djot link has no `@`
// and so never matches.
var citationToken = regexp.MustCompile(`\[([^\[\]]*@[^\[\]]*)\]`)

var itemPattern = regexp.MustCompile(`^([!+\-]?)@([A-Za-z0-9_:./#$%&+?<>~-]+)\s*(?:,\s*(.*))?$`)

// Parse scans src for citation tokens, returning them in order along
// with each token's preceding literal text. The text after the final
// token (if any) is returned separately so callers can append it
// unmodified.
func Parse(src string) (tokens []Token, trailing string) {
	matches := citationToken.FindAllStringSubmatchIndex(src, -1)
	pos := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		inner := src[m[2]:m[3]]
		spec, ok := parseCitationBody(inner)
		if !ok {
			continue
		}
		tokens = append(tokens, Token{
			Start:    start,
			End:      end,
			Literal:  src[pos:start],
			Citation: spec,
		})
		pos = end
	}
	trailing = src[pos:]
	return tokens, trailing
}

// parseCitationBody parses the content between the brackets (without
// them) into a CitationSpec; ok is false if no segment looked like a
// valid `@key` reference, in which case the caller should treat the
// bracket as ordinary text, not a citation.
func parseCitationBody(body string) (CitationSpec, bool) {
	var spec CitationSpec
	for _, seg := range strings.Split(body, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		m := itemPattern.FindStringSubmatch(seg)
		if m == nil {
			continue
		}
		item := CitationItemSpec{Key: m[2]}
		switch m[1] {
		case "-":
			item.Visibility = render.VisibilitySuppressAuthor
		case "!":
			item.Visibility = render.VisibilityHidden
		case "+":
			spec.Integral = true
		}
		if locatorTail := strings.TrimSpace(m[3]); locatorTail != "" {
			item.Label, item.Locator = parseLocator(locatorTail)
		}
		spec.Items = append(spec.Items, item)
	}
	return spec, len(spec.Items) > 0
}

// locatorAbbreviations maps the shorthand prefixes spec.md §4.8's
// locator grammar allows to their canonical label (one of the
// vocabulary spec.md §4.8 lists: book, chapter, column, figure,
// folio, line, note, number, opus, page, paragraph, part, section,
// sub-verbo, verse, volume, issue).
var locatorAbbreviations = map[string]string{
	"p":    "page",
	"pp":   "page",
	"ch":   "chapter",
	"chap": "chapter",
	"sec":  "section",
	"fig":  "figure",
	"vol":  "volume",
	"no":   "number",
	"para": "paragraph",
	"bk":   "book",
	"col":  "column",
	"fol":  "folio",
	"ln":   "line",
	"pt":   "part",
	"v":    "verse",
	"op":   "opus",
	"iss":  "issue",
	"sv":   "sub-verbo",
}

var structuredLocator = regexp.MustCompile(`^([A-Za-z\-]+)\s*:\s*(.+)$`)
var shorthandLocator = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(.+)$`)

// parseLocator implements spec.md §4.8's locator grammar: a structured
// `label: value` pair, a shorthand abbreviation like `p. 23` or
// `ch. 2`, or a bare value that defaults to "page". Only the first
// structured pair is honored when several are comma-joined
// ("page: 23, section: V"); a citation item carries one locator.
func parseLocator(tail string) (label, value string) {
	first := strings.TrimSpace(strings.SplitN(tail, ",", 2)[0])
	if m := structuredLocator.FindStringSubmatch(first); m != nil {
		return canonicalLocatorLabel(m[1]), strings.TrimSpace(m[2])
	}
	if m := shorthandLocator.FindStringSubmatch(first); m != nil {
		return canonicalLocatorLabel(m[1]), strings.TrimSpace(m[2])
	}
	return "page", first
}

func canonicalLocatorLabel(raw string) string {
	key := strings.ToLower(strings.TrimSuffix(raw, "."))
	if label, ok := locatorAbbreviations[key]; ok {
		return label
	}
	return "page"
}
