package render

import (
	"strings"

	"github.com/csln-go/csln/hints"
	"github.com/csln-go/csln/locale"
	"github.com/csln-go/csln/outformat"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/style"
	"github.com/csln-go/csln/values"
)

// Visibility is a citation item's rendering mode (spec.md §4.5 "Item
// visibility").
type Visibility string

const (
	VisibilityNormal         Visibility = ""
	VisibilitySuppressAuthor Visibility = "suppress-author"
	VisibilityAuthorOnly     Visibility = "author-only"
	VisibilityHidden         Visibility = "hidden"
)

// CitationRequestItem is one entry of an in-text citation request
// (spec.md §6.3).
type CitationRequestItem struct {
	Ref        *reference.Reference
	Item       values.CitationItem
	Visibility Visibility
}

// CitationRequest is a full citation request: one or more items plus
// citation-level prefix/suffix rendered inside the wrap.
type CitationRequest struct {
	Items  []CitationRequestItem
	Prefix string
	Suffix string

	// SkipWrap renders the citation without its style-level bracket
	// wrap, for integral/narrative citations (document.go's `[+@key]`
	// token) that already read as part of the surrounding sentence.
	SkipWrap bool
}

// RenderCitation renders req through sty's citation template,
// returning the finished citation text and the set of reference IDs
// it marks as cited (including hidden/nocite items, which contribute
// to bibliography membership without appearing in the rendered text;
// spec.md §4.5 "Hidden (nocite) excludes the item ... but marks the
// reference as cited").
func RenderCitation(req CitationRequest, bib *reference.Bibliography, hintMap map[string]*hints.Hints, loc *locale.Locale, sty *style.Style, f outformat.Format) (string, map[string]bool) {
	cited := make(map[string]bool, len(req.Items))
	visible := make([]CitationRequestItem, 0, len(req.Items))
	for _, item := range req.Items {
		cited[item.Ref.ID] = true
		if item.Visibility == VisibilityHidden {
			continue
		}
		visible = append(visible, item)
	}

	groupFrags := renderAuthorDateGroups(visible, bib, hintMap, loc, sty, f)

	multiDelim := sty.Citation.MultiCiteDelimiter
	if multiDelim == "" {
		multiDelim = "; "
	}
	var body outformat.Fragment
	for i, gf := range groupFrags {
		if i > 0 {
			body += f.Text(multiDelim)
		}
		body += gf
	}

	if req.SkipWrap {
		body = f.Affix(req.Prefix, body, req.Suffix)
		return f.Finish(body), cited
	}
	body = wrapCitationBody(f, body, req.Prefix, req.Suffix, sty.Citation)
	return f.Finish(body), cited
}

// wrapCitationBody applies the citation-level prefix/suffix and
// bracket/parenthesis/quote wrap (spec.md §4.5 "The full citation is
// wrapped per wrap ... or prefix/suffix; citation-level prefix/suffix
// from the request are prepended/appended inside the wrap"). When the
// style sets wrap_punctuation, the affix is applied before wrapping so
// request-level punctuation lands inside the wrap rather than outside
// it.
func wrapCitationBody(f outformat.Format, body outformat.Fragment, prefix, suffix string, sec style.Section) outformat.Fragment {
	hasWrap := sec.Wrap != "" && sec.Wrap != style.WrapNone
	if sec.WrapPunctuation {
		body = f.Affix(prefix, body, suffix)
		if hasWrap {
			body = f.WrapPunctuation(sec.Wrap, body)
		}
		return body
	}
	if hasWrap {
		body = f.WrapPunctuation(sec.Wrap, body)
	}
	return f.Affix(prefix, body, suffix)
}

// renderAuthorDateGroups renders visible items, collapsing adjacent
// same-author items into one author rendering with comma-joined years
// when the style's processing mode is author-date (spec.md §4.5).
func renderAuthorDateGroups(visible []CitationRequestItem, bib *reference.Bibliography, hintMap map[string]*hints.Hints, loc *locale.Locale, sty *style.Style, f outformat.Format) []outformat.Fragment {
	if sty.Options.ProcessingMode != style.ModeAuthorDate {
		frags := make([]outformat.Fragment, 0, len(visible))
		for _, item := range visible {
			frags = append(frags, renderCitationItem(item, bib, hintMap[item.Ref.ID], loc, sty, f))
		}
		return frags
	}

	var groups [][]CitationRequestItem
	var keys []string
	for _, item := range visible {
		key := authorYearlessKey(item, hintMap)
		if len(groups) > 0 && keys[len(keys)-1] == key {
			groups[len(groups)-1] = append(groups[len(groups)-1], item)
		} else {
			groups = append(groups, []CitationRequestItem{item})
			keys = append(keys, key)
		}
	}

	frags := make([]outformat.Fragment, 0, len(groups))
	for _, g := range groups {
		frags = append(frags, renderAuthorGroup(g, bib, hintMap, loc, sty, f))
	}
	return frags
}

// authorYearlessKey is the (author, year-suffix-free) collapsing key
// of spec.md §4.5: the group key the disambiguator already assigned,
// minus its "|year" part, so one author's works from different years
// share a key. Items with no author names key on their own ID.
func authorYearlessKey(item CitationRequestItem, hintMap map[string]*hints.Hints) string {
	h := hintMap[item.Ref.ID]
	if h == nil {
		return item.Ref.ID
	}
	key := h.GroupKey
	if i := strings.LastIndex(key, "|"); i >= 0 {
		key = key[:i]
	}
	if key == "" {
		return item.Ref.ID
	}
	return key
}

// renderCitationItem renders one citation item through the full
// citation template, applying its visibility filter and the item's
// locator/personal-communication context.
func renderCitationItem(item CitationRequestItem, bib *reference.Bibliography, h *hints.Hints, loc *locale.Locale, sty *style.Style, f outformat.Format) outformat.Fragment {
	template := filterTemplate(sty.Citation.Template, visibilityKeep(item.Visibility))
	ctx := values.NewContext(item.Ref, bib, h, loc, sty.Options)
	ctx.Item = &item.Item
	pt := RenderEntry(ctx, template)
	delim := sty.Citation.Delimiter
	if delim == "" {
		delim = ", "
	}
	return Assemble(f, pt, delim)
}

// renderAuthorGroup renders one author-date collapsed group: the
// first item's author (and any non-date components, honoring its
// visibility), followed by every item's year (and locator) comma-
// joined.
func renderAuthorGroup(items []CitationRequestItem, bib *reference.Bibliography, hintMap map[string]*hints.Hints, loc *locale.Locale, sty *style.Style, f outformat.Format) outformat.Fragment {
	first := items[0]
	delim := sty.Citation.Delimiter
	if delim == "" {
		delim = ", "
	}

	authorTemplate := filterTemplate(sty.Citation.Template, func(c style.Component) bool {
		return c.Kind != style.ComponentDate
	})
	authorTemplate = filterTemplate(authorTemplate, visibilityKeep(first.Visibility))
	authorCtx := values.NewContext(first.Ref, bib, hintMap[first.Ref.ID], loc, sty.Options)
	authorCtx.Item = &first.Item
	authorFrag := Assemble(f, RenderEntry(authorCtx, authorTemplate), delim)

	yearFrags := make([]outformat.Fragment, 0, len(items))
	for _, item := range items {
		if item.Visibility == VisibilityAuthorOnly {
			continue
		}
		dateTemplate := filterTemplate(sty.Citation.Template, func(c style.Component) bool {
			return c.Kind == style.ComponentDate
		})
		ctx := values.NewContext(item.Ref, bib, hintMap[item.Ref.ID], loc, sty.Options)
		ctx.Item = &item.Item
		yearFrags = append(yearFrags, Assemble(f, RenderEntry(ctx, dateTemplate), delim))
	}

	if len(yearFrags) == 0 {
		return authorFrag
	}
	var years outformat.Fragment
	for i, yf := range yearFrags {
		if i > 0 {
			years += f.Text(", ")
		}
		years += yf
	}
	if authorFrag == "" {
		return years
	}
	return authorFrag + f.Text(", ") + years
}

// visibilityKeep returns the template-component predicate for vis:
// suppress-author drops contributor components, author-only keeps
// only contributor components, normal keeps everything.
func visibilityKeep(vis Visibility) func(style.Component) bool {
	switch vis {
	case VisibilitySuppressAuthor:
		return func(c style.Component) bool { return c.Kind != style.ComponentContributor }
	case VisibilityAuthorOnly:
		return func(c style.Component) bool { return c.Kind == style.ComponentContributor }
	default:
		return func(style.Component) bool { return true }
	}
}

func filterTemplate(template []style.Component, keep func(style.Component) bool) []style.Component {
	out := make([]style.Component, 0, len(template))
	for _, c := range template {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
