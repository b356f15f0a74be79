package values

import (
	"testing"

	"github.com/csln-go/csln/hints"
	"github.com/csln-go/csln/locale"
	"github.com/csln-go/csln/multilang"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/style"
)

func testLocale(t *testing.T) *locale.Locale {
	t.Helper()
	reg, err := locale.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	en, _ := reg.Get("en")
	return en
}

func testRef() *reference.Reference {
	return &reference.Reference{
		ID:    "r1",
		Kind:  reference.KindBook,
		Title: multilang.NewString("The Structure of Scientific Revolutions"),
		Contributors: []multilang.Contributor{
			{Name: multilang.Name{Original: multilang.StructuredName{Family: "Kuhn", Given: "Thomas S."}}, Role: "author"},
		},
		Issued: "1962-04",
		Pages:  "101-108",
		Volume: "3",
	}
}

func TestExtractTitle(t *testing.T) {
	ctx := NewContext(testRef(), nil, &hints.Hints{}, testLocale(t), style.Options{})
	pv, ok := ctx.Extract(style.Component{Kind: style.ComponentTitle, TitleType: "primary"})
	if !ok || pv.Value != "The Structure of Scientific Revolutions" {
		t.Fatalf("Extract(title) = %+v, ok=%v", pv, ok)
	}
}

func TestExtractDateYearForm(t *testing.T) {
	ctx := NewContext(testRef(), nil, &hints.Hints{}, testLocale(t), style.Options{})
	pv, ok := ctx.Extract(style.Component{Kind: style.ComponentDate, DateVar: "issued", Form: "year"})
	if !ok || pv.Value != "1962" {
		t.Fatalf("Extract(date, year) = %+v, ok=%v", pv, ok)
	}
}

func TestExtractDateFullForm(t *testing.T) {
	ctx := NewContext(testRef(), nil, &hints.Hints{}, testLocale(t), style.Options{})
	pv, ok := ctx.Extract(style.Component{Kind: style.ComponentDate, DateVar: "issued", Form: "full"})
	if !ok || pv.Value != "April 1962" {
		t.Fatalf("Extract(date, full) = %+v, ok=%v", pv, ok)
	}
}

func TestExtractDateYearSuffixAppendedWhenDisambiguated(t *testing.T) {
	h := &hints.Hints{DisambCondition: true, YearSuffix: "b"}
	ctx := NewContext(testRef(), nil, h, testLocale(t), style.Options{})
	pv, ok := ctx.Extract(style.Component{Kind: style.ComponentDate, DateVar: "issued", Form: "year"})
	if !ok || pv.Value != "1962b" {
		t.Fatalf("Extract(date, year+suffix) = %+v, ok=%v", pv, ok)
	}
}

func TestExtractContributorDirectAndSortOrder(t *testing.T) {
	ctx := NewContext(testRef(), nil, &hints.Hints{}, testLocale(t), style.Options{})
	pv, ok := ctx.Extract(style.Component{Kind: style.ComponentContributor, Role: "author"})
	if !ok || pv.Value != "Thomas S. Kuhn" {
		t.Fatalf("Extract(contributor, direct) = %+v, ok=%v", pv, ok)
	}
	pv, ok = ctx.Extract(style.Component{Kind: style.ComponentContributor, Role: "author", NameOrder: "family-given"})
	if !ok || pv.Value != "Kuhn, Thomas S." {
		t.Fatalf("Extract(contributor, sort) = %+v, ok=%v", pv, ok)
	}
}

func TestExtractContributorMissingRoleIsAbsent(t *testing.T) {
	ctx := NewContext(testRef(), nil, &hints.Hints{}, testLocale(t), style.Options{})
	if _, ok := ctx.Extract(style.Component{Kind: style.ComponentContributor, Role: "editor"}); ok {
		t.Fatal("expected no editor contributor")
	}
}

func TestExtractNumberWithLocatorLabel(t *testing.T) {
	ctx := NewContext(testRef(), nil, &hints.Hints{}, testLocale(t), style.Options{})
	pv, ok := ctx.Extract(style.Component{Kind: style.ComponentNumber, NumberVar: "volume", LabelForm: "short"})
	if !ok || pv.Value != "vol. 3" {
		t.Fatalf("Extract(number, volume) = %+v, ok=%v", pv, ok)
	}
}

func TestExtractTitleSubstitutesForMissingAuthor(t *testing.T) {
	ref := testRef()
	ref.Contributors = nil // no author on this reference

	ctx := NewContext(ref, nil, &hints.Hints{}, testLocale(t), style.Options{})

	titleComp := style.Component{Kind: style.ComponentTitle, TitleType: "primary", SubstituteFor: "author"}
	pv, ok := ctx.Extract(titleComp)
	if !ok || pv.Value != "The Structure of Scientific Revolutions" {
		t.Fatalf("Extract(title substitute) = %+v, ok=%v", pv, ok)
	}
	if pv.SubstitutedKey != "title" {
		t.Fatalf("SubstitutedKey = %q, want %q", pv.SubstitutedKey, "title")
	}

	// A later, unrelated title component (the entry's normal title
	// slot) must be suppressed now that title has been spent as the
	// author substitute.
	if _, ok := ctx.Extract(style.Component{Kind: style.ComponentTitle, TitleType: "primary"}); ok {
		t.Fatal("expected title to be suppressed after substitution")
	}
}

func TestExtractTitleDoesNotSubstituteWhenAuthorPresent(t *testing.T) {
	ctx := NewContext(testRef(), nil, &hints.Hints{}, testLocale(t), style.Options{})
	titleComp := style.Component{Kind: style.ComponentTitle, TitleType: "primary", SubstituteFor: "author"}
	if _, ok := ctx.Extract(titleComp); ok {
		t.Fatal("expected substitute title to stay inactive when author is present")
	}
}

func TestFormatPageRangeChicagoCollapsesSameHundreds(t *testing.T) {
	if got := formatPageRange("101-108", "chicago"); got != "101–8" {
		t.Errorf("chicago 101-108 = %q", got)
	}
	if got := formatPageRange("1002-1006", "chicago"); got != "1002–6" {
		t.Errorf("chicago 1002-1006 = %q", got)
	}
	if got := formatPageRange("198-202", "chicago"); got != "198–202" {
		t.Errorf("chicago 198-202 = %q", got)
	}
}

func TestEffectiveRenderingOverrideByKindBeatsDefault(t *testing.T) {
	comp := style.Component{
		Kind:      style.ComponentTitle,
		Rendering: style.Rendering{Emph: false},
		Overrides: map[string]style.ComponentOverride{
			"default":            {Rendering: style.Rendering{Quote: true}},
			string(reference.KindBook): {Rendering: style.Rendering{Emph: true}},
		},
	}
	out := EffectiveRendering(comp, reference.KindBook)
	if !out.Rendering.Emph {
		t.Fatalf("expected kind-specific override to win: %+v", out.Rendering)
	}
}

func TestExtractListJoinsNonEmptyChildren(t *testing.T) {
	ctx := NewContext(testRef(), nil, &hints.Hints{}, testLocale(t), style.Options{})
	comp := style.Component{
		Kind:      style.ComponentList,
		Delimiter: ", ",
		Items: []style.Component{
			{Kind: style.ComponentContributor, Role: "author"},
			{Kind: style.ComponentContributor, Role: "editor"}, // absent, dropped
			{Kind: style.ComponentDate, DateVar: "issued", Form: "year"},
		},
	}
	pv, ok := ctx.Extract(comp)
	if !ok || pv.Value != "Thomas S. Kuhn, 1962" {
		t.Fatalf("Extract(list) = %+v, ok=%v", pv, ok)
	}
}
