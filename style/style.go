// Package style implements the declarative style model of spec.md §3.4:
// processing options, a citation/bibliography template tree, grouping
// selectors, and sort templates.
//
// Grounded on the teacher's mapping.Profile/FieldMapping (a declarative,
// YAML-tagged configuration struct tree with an Options sub-struct and a
// map of named entries) generalized from "map source fields to IR
// fields" to "render a reference through a template".
package style

import "github.com/csln-go/csln/extra"

// ProcessingMode selects the overall citation scheme (spec.md §3.4
// "processing mode").
type ProcessingMode string

const (
	ModeAuthorDate ProcessingMode = "author-date"
	ModeNumeric    ProcessingMode = "numeric"
	ModeNote       ProcessingMode = "note"
	ModeCustom     ProcessingMode = "custom"
)

// WrapKind is the Rendering.Wrap enum (spec.md §3.4 "wrap
// (none|parentheses|brackets|quotes)").
type WrapKind string

const (
	WrapNone       WrapKind = "none"
	WrapParens     WrapKind = "parentheses"
	WrapBrackets   WrapKind = "brackets"
	WrapQuotes     WrapKind = "quotes"
)

// Info is a style's bibliographic self-description.
type Info struct {
	ID            string `yaml:"id" validate:"required"`
	Title         string `yaml:"title"`
	DefaultLocale string `yaml:"default_locale" validate:"required"`
}

// SubsequentAuthorSubstitute configures repeated-author collapsing in a
// rendered bibliography (spec.md §3.4 "subsequent-author-substitute +
// rule").
type SubsequentAuthorSubstitute struct {
	Text string `yaml:"text,omitempty"`
	Rule string `yaml:"rule,omitempty" validate:"omitempty,oneof=complete-all partial-each partial-first complete-each"`
}

// BibliographyOptions configures bibliography-wide rendering
// (spec.md §3.4 "bibliography (separator, entry-suffix, ...)").
type BibliographyOptions struct {
	Separator                  string                     `yaml:"separator,omitempty"`
	EntrySuffix                string                     `yaml:"entry_suffix,omitempty"`
	SubsequentAuthorSubstitute SubsequentAuthorSubstitute `yaml:"subsequent_author_substitute,omitempty"`
	HangingIndent              bool                       `yaml:"hanging_indent,omitempty"`
}

// LabelOptions configures locator label rendering.
type LabelOptions struct {
	Form string `yaml:"form,omitempty" validate:"omitempty,oneof=long short symbol"`
}

// Options is the global processing-option bundle (spec.md §3.4
// "options: processing mode, contributors, dates, titles, multilingual,
// bibliography, strip-periods, ...").
type Options struct {
	ProcessingMode ProcessingMode `yaml:"processing_mode" validate:"required,oneof=author-date numeric note custom"`

	// Custom only applies when ProcessingMode == ModeCustom
	// (spec.md §3.4 "Custom{sort, group, disambiguate}").
	Custom *CustomModeOptions `yaml:"custom,omitempty"`

	Contributors        ContributorOptions  `yaml:"contributors,omitempty"`
	Dates                DateOptions         `yaml:"dates,omitempty"`
	Titles               TitleOptions        `yaml:"titles,omitempty"`
	Multilingual         MultilingualOptions `yaml:"multilingual,omitempty"`
	Bibliography         BibliographyOptions `yaml:"bibliography,omitempty"`
	Label                LabelOptions        `yaml:"label,omitempty"`
	StripPeriods         bool                `yaml:"strip_periods,omitempty"`
	PageRangeFormat      string              `yaml:"page_range_format,omitempty" validate:"omitempty,oneof=minimal minimal-two expanded chicago chicago-16"`
	Links                bool                `yaml:"links,omitempty"`
	PunctuationInQuote   bool                `yaml:"punctuation_in_quote,omitempty"`
	VolumePagesDelimiter string              `yaml:"volume_pages_delimiter,omitempty"`
}

// CustomModeOptions names the sort/group/disambiguate templates used
// when Options.ProcessingMode is "custom".
type CustomModeOptions struct {
	Sort         string `yaml:"sort,omitempty"`
	Group        string `yaml:"group,omitempty"`
	Disambiguate string `yaml:"disambiguate,omitempty"`
}

// ContributorOptions configures how contributor lists render
// (et-al threshold, name order, ...).
type ContributorOptions struct {
	DisplayAsSort           string `yaml:"display_as_sort,omitempty" validate:"omitempty,oneof=all first none"`
	MinNamesToShow          int    `yaml:"min_names_to_show,omitempty"`
	MaxNamesBeforeEtAl      int    `yaml:"max_names_before_et_al,omitempty"`
	NameAsSortOrder         string `yaml:"name_as_sort_order,omitempty"`
	DemoteNonDroppingParticle bool `yaml:"demote_non_dropping_particle,omitempty"`
	InitializeWith          string `yaml:"initialize_with,omitempty"`
	InitializeWithHyphen    bool   `yaml:"initialize_with_hyphen,omitempty"`
	DelimiterPrecedesLast   string `yaml:"delimiter_precedes_last,omitempty" validate:"omitempty,oneof=always never contextual after-inverted-name"`
	AndForm                 string `yaml:"and_form,omitempty" validate:"omitempty,oneof=text symbol none"`
	AndOthers               string `yaml:"and_others,omitempty" validate:"omitempty,oneof=et-al text"`
}

// DateOptions configures how EDTF values render by default.
type DateOptions struct {
	DefaultForm string `yaml:"default_form,omitempty" validate:"omitempty,oneof=numeric text year"`
}

// TitleOptions configures title rendering.
type TitleOptions struct {
	CapitalizeFirst bool `yaml:"capitalize_first,omitempty"`
}

// MultilingualOptions configures how multilingual strings resolve
// (spec.md §3.2).
type MultilingualOptions struct {
	PreferredMode   string `yaml:"preferred_mode,omitempty" validate:"omitempty,oneof=original translated transliterated"`
	PreferredScript string `yaml:"preferred_script,omitempty"`
	PreferredLang   string `yaml:"preferred_lang,omitempty"`
}

// Rendering is the presentation record every template component carries
// (spec.md §3.4 "Every component carries a Rendering record").
type Rendering struct {
	Emph           bool     `yaml:"emph,omitempty"`
	Strong         bool     `yaml:"strong,omitempty"`
	SmallCaps      bool     `yaml:"small_caps,omitempty"`
	Quote          bool     `yaml:"quote,omitempty"`
	Prefix         string   `yaml:"prefix,omitempty"`
	Suffix         string   `yaml:"suffix,omitempty"`
	InnerPrefix    string   `yaml:"inner_prefix,omitempty"`
	InnerSuffix    string   `yaml:"inner_suffix,omitempty"`
	Wrap           WrapKind `yaml:"wrap,omitempty" validate:"omitempty,oneof=none parentheses brackets quotes"`
	Suppress       bool     `yaml:"suppress,omitempty"`
	StripPeriods   bool     `yaml:"strip_periods,omitempty"`
}

// ComponentOverride lets a type-keyed override replace both the
// rendering and structural fields of a component (spec.md §3.4
// "overrides map selector -> Rendering|ComponentOverride").
type ComponentOverride struct {
	Rendering Rendering `yaml:"rendering,omitempty"`
	Form      string    `yaml:"form,omitempty"`
	Suppress  bool       `yaml:"suppress,omitempty"`
}

// ComponentKind tags the variant of Component that's populated
// (spec.md §3.4 "Template components (tagged variants)").
type ComponentKind string

const (
	ComponentText        ComponentKind = "text"
	ComponentTerm        ComponentKind = "term"
	ComponentDate        ComponentKind = "date"
	ComponentContributor ComponentKind = "contributor"
	ComponentTitle       ComponentKind = "title"
	ComponentNumber      ComponentKind = "number"
	ComponentVariable    ComponentKind = "variable"
	ComponentList        ComponentKind = "list"
	ComponentGroup       ComponentKind = "group"
)

// Component is the tagged-union template node. As with Reference, this
// is a flat struct with a Kind discriminant rather than an interface
// hierarchy per spec.md §9's "tagged trees over inheritance".
type Component struct {
	Kind ComponentKind `yaml:"kind" validate:"required,oneof=text term date contributor title number variable list group"`

	// Text
	Value string `yaml:"value,omitempty"`

	// Term
	Term string `yaml:"term,omitempty"`
	Form string `yaml:"form,omitempty"`

	// Date
	DateVar string `yaml:"date_var,omitempty"`

	// Contributor
	Role          string `yaml:"role,omitempty"`
	NameOrder     string `yaml:"name_order,omitempty" validate:"omitempty,oneof=given-family family-given"`
	Delimiter     string `yaml:"delimiter,omitempty"`
	SortSeparator string `yaml:"sort_separator,omitempty"`
	Shorten       bool   `yaml:"shorten,omitempty"`
	And           string `yaml:"and,omitempty" validate:"omitempty,oneof=text symbol"`

	// Title
	TitleType string `yaml:"title_type,omitempty" validate:"omitempty,oneof=primary container"`

	// Number / Variable
	NumberVar string `yaml:"number_var,omitempty"`
	LabelForm string `yaml:"label_form,omitempty" validate:"omitempty,oneof=long short symbol"`
	SimpleVar string `yaml:"simple_var,omitempty"`

	// List / Group
	Items []Component `yaml:"items,omitempty" validate:"omitempty,dive"`

	Fallback  string                        `yaml:"fallback,omitempty"`
	Links     bool                          `yaml:"links,omitempty"`
	Rendering Rendering                     `yaml:"rendering,omitempty"`
	Overrides map[string]ComponentOverride `yaml:"overrides,omitempty"`

	// SubstituteFor names a contributor role (e.g. "author") whose
	// absence on the reference activates this component as fallback
	// content in that role's place (spec.md §4.1 "Variable-once rule":
	// "title substitutes for missing author"). Empty means this
	// component is not a substitute and renders unconditionally.
	SubstituteFor string `yaml:"substitute_for,omitempty"`
}

// SortKey is one key of a SortTemplate (spec.md §3.4/§4.3).
type SortKey struct {
	Variable   string `yaml:"variable" validate:"required"`
	Descending bool   `yaml:"descending,omitempty"`
}

// SortTemplate is an ordered list of sort keys (spec.md §4.3).
type SortTemplate struct {
	Keys []SortKey `yaml:"keys" validate:"required,dive"`
}

// Section is a citation or bibliography spec (spec.md §3.4
// "citation/bibliography: template, optional sort, delimiter,
// multi-cite-delimiter, wrap punctuation, per-section options").
type Section struct {
	Template           []Component   `yaml:"template" validate:"required,dive"`
	Sort               *SortTemplate `yaml:"sort,omitempty"`
	Delimiter          string        `yaml:"delimiter,omitempty"`
	MultiCiteDelimiter string        `yaml:"multi_cite_delimiter,omitempty"`
	Wrap               WrapKind      `yaml:"wrap,omitempty" validate:"omitempty,oneof=none parentheses brackets quotes"`
	WrapPunctuation    bool          `yaml:"wrap_punctuation,omitempty"`
	Group              string        `yaml:"group,omitempty"`
}

// Style is the top-level document spec.md §3.4 describes:
// {info, options, templates?, citation, bibliography}.
type Style struct {
	Info         Info                 `yaml:"info" validate:"required"`
	Options      Options              `yaml:"options" validate:"required"`
	Templates    map[string][]Component `yaml:"templates,omitempty"`
	Citation     Section              `yaml:"citation" validate:"required"`
	Bibliography Section              `yaml:"bibliography" validate:"required"`
	Grouping     []GroupSpec          `yaml:"grouping,omitempty"`

	// Extra preserves unrecognized top-level fields per spec.md §6.1
	// "Unknown fields are preserved under an _extra catch-all".
	Extra extra.Bag `yaml:"-"`
}

// GroupSpec names a grouping-engine partition (spec.md §4.4); the
// selector grammar itself lives in package grouping to keep the style
// model free of grouping-engine internals.
type GroupSpec struct {
	Name     string   `yaml:"name" validate:"required"`
	Selector string   `yaml:"selector" validate:"required"`
	Sort     *SortTemplate `yaml:"sort,omitempty"`
}
