// Package values implements the value extraction engine of spec.md
// §4.1: it maps a single style.Component against a reference and
// produces either nothing (field absent or suppressed) or a rendered
// fragment plus its prefix/suffix/url/substitution metadata.
//
// Grounded on the teacher's hub/convert/converter.go (the
// Converter/registry shape: one dispatcher fanning out to per-field
// handlers, collecting errors rather than failing fast) and
// value/value.go (Text()/TextOr() style coercion helpers). The registry
// indirection didn't carry over — style.Component is a flat tagged
// struct (spec.md §9 "tagged trees over inheritance"), so dispatch is a
// plain switch on Kind, the same way reference.CategoryOf and
// style.Component itself are consumed elsewhere in this module.
package values

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/csln-go/csln/edtf"
	"github.com/csln-go/csln/locale"
	"github.com/csln-go/csln/multilang"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/style"

	hintspkg "github.com/csln-go/csln/hints"
)

// ProcValue is the extraction result (spec.md §4.1 "ProcValue{value,
// prefix?, suffix?, url?, substituted_key?, pre_formatted}").
type ProcValue struct {
	Value          string
	Prefix         string
	Suffix         string
	URL            string
	SubstitutedKey string
	PreFormatted   bool
}

// CitationItem carries the per-citation-item context a locator or
// disambiguation-aware component may need (spec.md §6.3).
type CitationItem struct {
	Label        string
	Locator      string
	IsPersonalCommunication bool
}

// Context bundles everything value extraction needs for one rendered
// entry. Substituted tracks the variable-once rule (spec.md §4.1
// "Variable-once rule") across every component rendered for the same
// entry, so callers must reuse one Context per bibliography/citation
// entry, not per component.
type Context struct {
	Ref     *reference.Reference
	Bib     *reference.Bibliography
	Hints   *hintspkg.Hints
	Locale  *locale.Locale
	Options style.Options
	Item    *CitationItem

	substituted map[string]bool
}

// NewContext returns a Context ready to extract every component of one
// rendered entry.
func NewContext(ref *reference.Reference, bib *reference.Bibliography, h *hintspkg.Hints, loc *locale.Locale, opts style.Options) *Context {
	return &Context{Ref: ref, Bib: bib, Hints: h, Locale: loc, Options: opts, substituted: map[string]bool{}}
}

// Extract maps one template component against the context's reference.
// The bool result is false when the component produced nothing (absent
// field, suppressed, or already satisfied by substitution).
func (c *Context) Extract(comp style.Component) (*ProcValue, bool) {
	effective := EffectiveRendering(comp, c.Ref.Kind)
	if effective.OverrideSuppress {
		return nil, false
	}
	comp.Form = effective.Form

	key := variableKey(comp)
	if comp.SubstituteFor != "" {
		if c.hasContributorRole(comp.SubstituteFor) {
			return nil, false
		}
	} else if key != "" && c.Suppressed(key) {
		return nil, false
	}

	var pv *ProcValue
	var ok bool
	switch comp.Kind {
	case style.ComponentText:
		pv, ok = c.extractText(comp)
	case style.ComponentTerm:
		pv, ok = c.extractTerm(comp)
	case style.ComponentDate:
		pv, ok = c.extractDate(comp)
	case style.ComponentContributor:
		pv, ok = c.extractContributor(comp)
	case style.ComponentTitle:
		pv, ok = c.extractTitle(comp)
	case style.ComponentNumber:
		pv, ok = c.extractNumber(comp)
	case style.ComponentVariable:
		pv, ok = c.extractVariable(comp)
	case style.ComponentList, style.ComponentGroup:
		pv, ok = c.extractList(comp)
	default:
		return nil, false
	}
	if !ok || pv == nil {
		return nil, false
	}
	pv.Prefix = effective.Rendering.Prefix + pv.Prefix
	pv.Suffix = pv.Suffix + effective.Rendering.Suffix

	if comp.SubstituteFor != "" && key != "" {
		pv.SubstitutedKey = key
		c.MarkSubstituted(key)
	}
	return pv, true
}

// variableKey names the variable a component naturally renders, for
// variable-once suppression bookkeeping (spec.md §4.1 "Variable-once
// rule"). Components with no well-defined variable identity (text,
// term, list, group) return "".
func variableKey(comp style.Component) string {
	switch comp.Kind {
	case style.ComponentContributor:
		if comp.Role != "" {
			return "contributor:" + comp.Role
		}
		return "contributor"
	case style.ComponentTitle:
		return "title"
	case style.ComponentVariable:
		return comp.SimpleVar
	case style.ComponentDate:
		return "date:" + comp.DateVar
	case style.ComponentNumber:
		return "number:" + comp.NumberVar
	default:
		return ""
	}
}

// hasContributorRole reports whether the reference carries any
// contributor with the given role, used to decide whether a
// substitute component (spec.md §4.1 "title substitutes for missing
// author") should activate.
func (c *Context) hasContributorRole(role string) bool {
	for _, ctr := range c.Ref.Contributors {
		if ctr.Role == role {
			return true
		}
	}
	return false
}

// EffectiveRenderingResult is the merge result of spec.md §4.1
// "Effective rendering": component-local rendering -> type-specific
// override (first-match; "default" fallback). No style-wide
// per-category default layer is applied beneath the component's own
// rendering. Exported so the renderer can read the resolved emphasis/
// wrap/quote flags without redoing the override-merge logic itself.
type EffectiveRenderingResult struct {
	Rendering        style.Rendering
	OverrideSuppress bool
	Form             string
}

// EffectiveRendering merges a component's own Rendering with whatever
// override matches kind: the override keyed by the exact kind, else by
// its category, else "default". The override replaces only the fields
// it sets. There is no global per-category default layer; the
// component's own Rendering is the base.
func EffectiveRendering(comp style.Component, kind reference.Kind) EffectiveRenderingResult {
	out := EffectiveRenderingResult{Rendering: comp.Rendering, Form: comp.Form}
	if comp.Overrides == nil {
		return out
	}
	var ov style.ComponentOverride
	var matched bool
	if o, found := comp.Overrides[string(kind)]; found {
		ov, matched = o, true
	} else if o, found := comp.Overrides[string(reference.CategoryOf(kind))]; found {
		ov, matched = o, true
	} else if o, found := comp.Overrides["default"]; found {
		ov, matched = o, true
	}
	if !matched {
		return out
	}
	out.Rendering = mergeRendering(out.Rendering, ov.Rendering)
	if ov.Form != "" {
		out.Form = ov.Form
	}
	out.OverrideSuppress = ov.Suppress
	return out
}

// mergeRendering overlays override fields atop base, field by field, so
// an override that only sets Wrap doesn't clobber base's Emph.
func mergeRendering(base, override style.Rendering) style.Rendering {
	out := base
	if override.Emph {
		out.Emph = true
	}
	if override.Strong {
		out.Strong = true
	}
	if override.SmallCaps {
		out.SmallCaps = true
	}
	if override.Quote {
		out.Quote = true
	}
	if override.Prefix != "" {
		out.Prefix = override.Prefix
	}
	if override.Suffix != "" {
		out.Suffix = override.Suffix
	}
	if override.InnerPrefix != "" {
		out.InnerPrefix = override.InnerPrefix
	}
	if override.InnerSuffix != "" {
		out.InnerSuffix = override.InnerSuffix
	}
	if override.Wrap != "" {
		out.Wrap = override.Wrap
	}
	if override.StripPeriods {
		out.StripPeriods = true
	}
	return out
}

func (c *Context) extractText(comp style.Component) (*ProcValue, bool) {
	if comp.Value == "" {
		return nil, false
	}
	return &ProcValue{Value: comp.Value}, true
}

func (c *Context) extractTerm(comp style.Component) (*ProcValue, bool) {
	form := locale.FormLong
	if comp.Form == "short" {
		form = locale.FormShort
	}
	v := c.Locale.Term(comp.Term, form, locale.Singular)
	if v == "" {
		return nil, false
	}
	return &ProcValue{Value: v}, true
}

func rangeDelimiter() string { return "–" } // en dash, spec.md §4.1 "default en-dash"

func (c *Context) extractDate(comp style.Component) (*ProcValue, bool) {
	raw := c.dateVariable(comp.DateVar)
	if raw == "" && comp.Fallback != "" {
		raw = c.dateVariable(comp.Fallback)
	}
	if raw == "" {
		return nil, false
	}
	v := edtf.Parse(raw)

	form := comp.Form
	if c.Item != nil && c.Item.IsPersonalCommunication {
		form = "full" // spec.md §4.1 "personal-communication dates upgrade to Full form"
	}

	text := c.formatDateValue(v, form)
	if text == "" {
		return nil, false
	}

	if form == "year" && c.Hints != nil && c.Hints.DisambCondition && c.Hints.YearSuffix != "" {
		text += c.Hints.YearSuffix
	}
	return &ProcValue{Value: text}, true
}

func (c *Context) dateVariable(name string) string {
	switch name {
	case "issued", "":
		return c.Ref.Issued
	case "original-date":
		return c.Ref.OriginalDate
	case "accessed":
		return c.Ref.Accessed
	default:
		return ""
	}
}

func (c *Context) formatDateValue(v edtf.Value, form string) string {
	single := c.formatSingleDate(v.Year, v.Month, v.Day, v.Precision, form)
	if !v.IsRange {
		return c.withQualifiers(single, v)
	}

	var end string
	if v.OpenEnd {
		end = c.Locale.OpenEndedTerm
		if end == "" {
			end = c.Locale.Term("present", locale.FormLong, locale.Singular)
		}
		if end == "" {
			end = "present"
		}
	} else {
		end = c.formatSingleDate(v.EndYear, v.EndMonth, v.EndDay, v.EndPrecision, form)
	}
	start := single
	if v.OpenStart {
		start = "…"
	}
	if start == "" && end == "" {
		return ""
	}
	return start + rangeDelimiter() + end
}

func (c *Context) formatSingleDate(year, month, day int, precision edtf.Precision, form string) string {
	if year == 0 && precision != edtf.PrecisionSeason {
		return ""
	}
	switch form {
	case "year", "":
		return fmt.Sprintf("%04d", year)
	case "year-month":
		if month == 0 {
			return fmt.Sprintf("%04d", year)
		}
		return fmt.Sprintf("%s %04d", c.Locale.Month(month, locale.FormLong), year)
	case "month-day":
		if month == 0 {
			return ""
		}
		if day == 0 {
			return c.Locale.Month(month, locale.FormLong)
		}
		return fmt.Sprintf("%s %d", c.Locale.Month(month, locale.FormLong), day)
	case "full":
		if month == 0 {
			return fmt.Sprintf("%04d", year)
		}
		if day == 0 {
			return fmt.Sprintf("%s %04d", c.Locale.Month(month, locale.FormLong), year)
		}
		return fmt.Sprintf("%s %d, %04d", c.Locale.Month(month, locale.FormLong), day, year)
	case "year-month-day":
		if month == 0 {
			return fmt.Sprintf("%04d", year)
		}
		if day == 0 {
			return fmt.Sprintf("%04d, %s", year, c.Locale.Month(month, locale.FormLong))
		}
		return fmt.Sprintf("%04d, %s %d", year, c.Locale.Month(month, locale.FormLong), day)
	default:
		return fmt.Sprintf("%04d", year)
	}
}

func (c *Context) withQualifiers(text string, v edtf.Value) string {
	if text == "" {
		return text
	}
	switch v.Qualifier {
	case edtf.QualifierUncertain:
		term := c.Locale.UncertaintyTerm
		if term == "" {
			term = "?"
		}
		return text + term
	case edtf.QualifierApproximate:
		term := c.Locale.CircaTerm
		if term == "" {
			term = "circa"
		}
		return term + " " + text
	case edtf.QualifierBoth:
		return text + "?~"
	default:
		return text
	}
}

func (c *Context) extractTitle(comp style.Component) (*ProcValue, bool) {
	var ms multilang.String
	switch comp.TitleType {
	case "container":
		t, ok := c.Ref.ParentTitle(c.Bib)
		if !ok {
			return nil, false
		}
		ms = t
	default:
		ms = c.Ref.Title
	}
	mode := multilangModeOf(c.Options.Multilingual.PreferredMode)
	text := ms.Resolve(mode, c.Options.Multilingual.PreferredScript, c.Options.Multilingual.PreferredLang)
	if text == "" {
		return nil, false
	}
	if c.Options.Titles.CapitalizeFirst {
		text = capitalizeFirst(text)
	}
	return &ProcValue{Value: text}, true
}

func multilangModeOf(s string) multilang.Mode {
	switch s {
	case "translated":
		return multilang.ModeTranslated
	case "transliterated":
		return multilang.ModeTransliterated
	default:
		return multilang.ModeOriginal
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func (c *Context) extractNumber(comp style.Component) (*ProcValue, bool) {
	var raw string
	switch comp.NumberVar {
	case "volume":
		raw = c.Ref.Volume
	case "issue":
		raw = c.Ref.Issue
	case "pages":
		raw = c.Ref.Pages
	case "edition":
		raw = c.Ref.Edition
	case "citation-number":
		if c.Hints == nil || c.Hints.CitationNumber == 0 {
			return nil, false
		}
		raw = strconv.Itoa(c.Hints.CitationNumber)
	default:
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	if comp.NumberVar == "pages" {
		raw = formatPageRange(raw, c.Options.PageRangeFormat)
	}

	text := raw
	if comp.LabelForm != "" {
		label := c.locatorLabel(comp.NumberVar, comp.LabelForm, raw)
		if label != "" {
			text = label + " " + text
		}
	}
	return &ProcValue{Value: text}, true
}

func (c *Context) locatorLabel(locatorType, form, value string) string {
	entry, ok := c.Locale.Locators[locatorType]
	if !ok {
		return ""
	}
	plurality := locale.Singular
	if isPluralValue(value) {
		plurality = locale.Plural
	}
	var f locale.Form
	switch form {
	case "short", "symbol":
		f = locale.FormShort
	default:
		f = locale.FormLong
	}
	return entry.Get(f, plurality)
}

// isPluralValue implements spec.md §4.1's "plural if it contains -, –,
// , or &" shape heuristic.
func isPluralValue(v string) bool {
	return strings.ContainsAny(v, "-–,&")
}

// formatPageRange applies spec.md §4.1's page-range-format transforms.
// "chicago" and "chicago-16" collapse same-hundreds ranges to two-digit
// endings; "minimal"/"minimal-two" drop redundant leading digits;
// "expanded" (the default) keeps both numbers as written, joined with
// an en dash.
func formatPageRange(raw, format string) string {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		parts = strings.SplitN(raw, "–", 2)
	}
	if len(parts) != 2 {
		return raw
	}
	start, end := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	startN, errS := strconv.Atoi(start)
	endN, errE := strconv.Atoi(end)
	if errS != nil || errE != nil {
		return raw
	}
	switch format {
	case "minimal":
		return start + rangeDelimiter() + minimalEnd(startN, endN, 1)
	case "minimal-two":
		return start + rangeDelimiter() + minimalEnd(startN, endN, 2)
	case "chicago", "chicago-16":
		return start + rangeDelimiter() + chicagoEnd(startN, endN)
	default: // expanded
		return start + rangeDelimiter() + end
	}
}

func minimalEnd(start, end, minDigits int) string {
	s, e := strconv.Itoa(start), strconv.Itoa(end)
	if len(e) <= minDigits || len(s) != len(e) {
		return e
	}
	i := 0
	for i < len(s)-minDigits && s[i] == e[i] {
		i++
	}
	return e[i:]
}

// chicagoEnd implements the Chicago Manual of Style page-range rule:
// below 100, or across a hundreds/thousands boundary, or when the start
// number is an even hundred, spell out the end number in full;
// otherwise keep its last two digits, dropping a redundant leading
// zero (107-108 -> "107-8", 1087-1089 -> "1087-89").
func chicagoEnd(start, end int) string {
	if start < 100 || start%100 == 0 || start/100 != end/100 {
		return strconv.Itoa(end)
	}
	last2 := end % 100
	return strconv.Itoa(last2)
}

func (c *Context) extractVariable(comp style.Component) (*ProcValue, bool) {
	var raw string
	switch comp.SimpleVar {
	case "doi":
		raw = c.Ref.DOI
	case "url":
		raw = c.Ref.URL
	case "isbn":
		raw = c.Ref.ISBN
	case "issn":
		raw = c.Ref.ISSN
	case "publisher":
		raw = c.Ref.Publisher.Resolve(multilang.ModeOriginal, "", "")
	case "publisher-place":
		raw = c.Ref.PublisherPlace
	case "note":
		if len(c.Ref.Notes) > 0 {
			raw = strings.Join(c.Ref.Notes, "; ")
		}
	case "abstract":
		raw = c.Ref.Abstract
	case "locator":
		return c.extractLocator()
	default:
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	pv := &ProcValue{Value: raw}
	if comp.SimpleVar == "url" || comp.SimpleVar == "doi" {
		pv.URL = raw
	}
	return pv, true
}

func (c *Context) extractLocator() (*ProcValue, bool) {
	if c.Item == nil || c.Item.Locator == "" {
		return nil, false
	}
	label := c.Item.Label
	if label == "" {
		label = "page"
	}
	text := c.Item.Locator
	if label != "page" {
		if entry, ok := c.Locale.Locators[label]; ok {
			plurality := locale.Singular
			if isPluralValue(c.Item.Locator) {
				plurality = locale.Plural
			}
			if term := entry.Get(locale.FormLong, plurality); term != "" {
				text = term + " " + text
			}
		}
	}
	return &ProcValue{Value: text}, true
}

func (c *Context) extractContributor(comp style.Component) (*ProcValue, bool) {
	names := c.contributorsForRole(comp.Role)
	if len(names) == 0 {
		return nil, false
	}

	expandGiven := c.Hints != nil && c.Hints.ExpandGivenNames
	minShow := c.Options.Contributors.MaxNamesBeforeEtAl
	if c.Hints != nil && c.Hints.MinNamesToShow > 0 {
		minShow = c.Hints.MinNamesToShow
	}

	rendered := make([]string, 0, len(names))
	shown := names
	truncated := false
	if minShow > 0 && minShow < len(names) {
		shown = names[:minShow]
		truncated = true
	}
	for _, n := range shown {
		rendered = append(rendered, c.renderOneName(n, comp, expandGiven))
	}

	and := comp.And
	if and == "" {
		and = c.Options.Contributors.AndForm
	}
	delim := comp.Delimiter
	if delim == "" {
		delim = ", "
	}

	var joined string
	if truncated {
		etAl := c.Options.Contributors.AndOthers
		suffix := "et al."
		if etAl == "text" {
			if t := c.Locale.Term("and-others", locale.FormLong, locale.Singular); t != "" {
				suffix = t
			}
		} else if t := c.Locale.Term("et-al", locale.FormLong, locale.Singular); t != "" {
			suffix = t
		}
		joined = strings.Join(rendered, delim) + " " + suffix
	} else {
		joined = joinWithAnd(rendered, delim, and)
	}
	return &ProcValue{Value: joined}, true
}

func (c *Context) renderOneName(n multilang.Name, comp style.Component, expandGiven bool) string {
	mode := multilangModeOf(c.Options.Multilingual.PreferredMode)
	sn := n.Resolve(mode, c.Options.Multilingual.PreferredScript, c.Options.Multilingual.PreferredLang)

	useSort := c.Options.Contributors.DisplayAsSort == "all" || comp.NameOrder == "family-given"
	demote := c.Options.Contributors.DemoteNonDroppingParticle

	given := sn.Given
	if !expandGiven && c.Options.Contributors.InitializeWith != "" {
		given = multilang.InitializeGiven(given, c.Options.Contributors.InitializeWithHyphen)
	}
	snInit := sn
	snInit.Given = given

	if useSort {
		return snInit.Sort(demote)
	}
	return snInit.Direct(demote)
}

func joinWithAnd(names []string, delim, and string) string {
	if len(names) == 0 {
		return ""
	}
	if len(names) == 1 {
		return names[0]
	}
	head := names[:len(names)-1]
	last := names[len(names)-1]
	sep := delim
	switch and {
	case "text":
		sep = delim + "and "
	case "symbol":
		sep = delim + "& "
	}
	return strings.Join(head, delim) + sep + last
}

func (c *Context) contributorsForRole(role string) []multilang.Name {
	want := locale.NormalizeRole(role)
	var names []multilang.Name
	for _, ctb := range c.Ref.Contributors {
		if locale.NormalizeRole(ctb.Role) == want {
			names = append(names, ctb.Name)
		}
	}
	return names
}

func (c *Context) extractList(comp style.Component) (*ProcValue, bool) {
	var parts []string
	for _, item := range comp.Items {
		if pv, ok := c.Extract(item); ok {
			text := pv.Prefix + pv.Value + pv.Suffix
			if text != "" {
				parts = append(parts, text)
			}
		}
	}
	if len(parts) == 0 {
		return nil, false
	}
	delim := comp.Delimiter
	if delim == "" {
		delim = " "
	}
	return &ProcValue{Value: strings.Join(parts, delim)}, true
}

// MarkSubstituted records that key was rendered via substitution
// (spec.md §4.1 "Variable-once rule"); Suppressed reports whether a
// later component naming the same key should be skipped.
func (c *Context) MarkSubstituted(key string) { c.substituted[key] = true }

// Suppressed reports whether key has already been satisfied by
// substitution earlier in this entry's rendering.
func (c *Context) Suppressed(key string) bool { return c.substituted[key] }
