package render

import (
	"strings"
	"testing"

	"github.com/csln-go/csln/hints"
	"github.com/csln-go/csln/locale"
	"github.com/csln-go/csln/multilang"
	"github.com/csln-go/csln/outformat"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/style"
	"github.com/csln-go/csln/values"
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

func authorDateStyle() *style.Style {
	return &style.Style{
		Options: style.Options{ProcessingMode: style.ModeAuthorDate},
		Citation: style.Section{
			Template: []style.Component{
				{Kind: style.ComponentContributor, Role: "author"},
				{Kind: style.ComponentDate, DateVar: "issued", Form: "year"},
			},
			Delimiter: ", ",
			Wrap:      style.WrapParens,
		},
		Bibliography: style.Section{
			Template: []style.Component{
				{Kind: style.ComponentContributor, Role: "author"},
				{Kind: style.ComponentTitle, TitleType: "primary", Rendering: style.Rendering{Emph: true}},
				{Kind: style.ComponentDate, DateVar: "issued", Form: "year"},
			},
		},
	}
}

func mkRef(id, family, given, title, issued string) *reference.Reference {
	return &reference.Reference{
		ID:   id,
		Kind: reference.KindBook,
		Title: multilang.NewString(title),
		Contributors: []multilang.Contributor{
			{Name: multilang.Name{Original: multilang.StructuredName{Family: family, Given: given}}, Role: "author"},
		},
		Issued: issued,
	}
}

func TestRenderEntryAndAssembleBibliography(t *testing.T) {
	sty := authorDateStyle()
	ref := mkRef("r1", "Kuhn", "Thomas", "The Structure of Scientific Revolutions", "1962")
	ctx := values.NewContext(ref, nil, &hints.Hints{}, testLocale(t), sty.Options)
	pt := RenderEntry(ctx, sty.Bibliography.Template)
	if len(pt) != 3 {
		t.Fatalf("expected 3 rendered components, got %d: %+v", len(pt), pt)
	}
	f := outformat.MustGet("plain")
	text := string(Assemble(f, pt, ". "))
	want := "Thomas Kuhn. The Structure of Scientific Revolutions. 1962"
	if text != want {
		t.Errorf("Assemble = %q, want %q", text, want)
	}
}

func TestRenderCitationAuthorDateWrap(t *testing.T) {
	sty := authorDateStyle()
	bib := reference.NewBibliography()
	ref := mkRef("r1", "Kuhn", "Thomas", "The Structure of Scientific Revolutions", "1962")
	bib.Add(ref)
	hintMap := map[string]*hints.Hints{"r1": {GroupKey: "kuhn-1962"}}

	req := CitationRequest{Items: []CitationRequestItem{{Ref: ref, Visibility: VisibilityNormal}}}
	f := outformat.MustGet("plain")
	text, cited := RenderCitation(req, bib, hintMap, testLocale(t), sty, f)
	if !cited["r1"] {
		t.Error("expected r1 marked cited")
	}
	if text != "(Thomas Kuhn, 1962)" {
		t.Errorf("RenderCitation = %q", text)
	}
}

func TestRenderCitationHiddenMarksCitedButOmitsText(t *testing.T) {
	sty := authorDateStyle()
	bib := reference.NewBibliography()
	ref := mkRef("r1", "Kuhn", "Thomas", "Title", "1962")
	bib.Add(ref)
	hintMap := map[string]*hints.Hints{"r1": {GroupKey: "kuhn-1962"}}

	req := CitationRequest{Items: []CitationRequestItem{{Ref: ref, Visibility: VisibilityHidden}}}
	f := outformat.MustGet("plain")
	text, cited := RenderCitation(req, bib, hintMap, testLocale(t), sty, f)
	if !cited["r1"] {
		t.Error("expected hidden item still marked cited")
	}
	if text != "()" {
		t.Errorf("expected empty wrapped citation, got %q", text)
	}
}

func TestRenderCitationAuthorDateCollapsesAdjacentSameAuthor(t *testing.T) {
	sty := authorDateStyle()
	bib := reference.NewBibliography()
	r1 := mkRef("r1", "Kuhn", "Thomas", "Book One", "1962")
	r2 := mkRef("r2", "Kuhn", "Thomas", "Book Two", "1970")
	bib.Add(r1)
	bib.Add(r2)
	hintMap := map[string]*hints.Hints{
		"r1": {GroupKey: "kuhn"},
		"r2": {GroupKey: "kuhn"},
	}
	req := CitationRequest{Items: []CitationRequestItem{
		{Ref: r1, Visibility: VisibilityNormal},
		{Ref: r2, Visibility: VisibilityNormal},
	}}
	f := outformat.MustGet("plain")
	text, _ := RenderCitation(req, bib, hintMap, testLocale(t), sty, f)
	if text != "(Thomas Kuhn, 1962, 1970)" {
		t.Errorf("RenderCitation collapsed = %q", text)
	}
}

func TestAssembleStripsEmbeddedHTMLFromAbstractForPlainBackEnd(t *testing.T) {
	ref := mkRef("r1", "Kuhn", "Thomas", "The Structure of Scientific Revolutions", "1962")
	ref.Abstract = "<p>A study of <em>paradigm shifts</em>.</p>"
	ctx := values.NewContext(ref, nil, &hints.Hints{}, testLocale(t), style.Options{})
	pt := RenderEntry(ctx, []style.Component{{Kind: style.ComponentVariable, SimpleVar: "abstract"}})

	f := outformat.MustGet("plain")
	text := string(Assemble(f, pt, ". "))
	if strings.Contains(text, "<") || strings.Contains(text, ">") {
		t.Fatalf("expected HTML stripped for plain back end, got %q", text)
	}
	if text != "A study of paradigm shifts." {
		t.Errorf("Assemble(abstract) = %q", text)
	}
}

func TestAssembleLeavesNonHTMLAbstractUntouched(t *testing.T) {
	ref := mkRef("r1", "Kuhn", "Thomas", "The Structure of Scientific Revolutions", "1962")
	ref.Abstract = "A study of paradigm shifts."
	ctx := values.NewContext(ref, nil, &hints.Hints{}, testLocale(t), style.Options{})
	pt := RenderEntry(ctx, []style.Component{{Kind: style.ComponentVariable, SimpleVar: "abstract"}})

	f := outformat.MustGet("plain")
	text := string(Assemble(f, pt, ". "))
	if text != "A study of paradigm shifts." {
		t.Errorf("Assemble(abstract) = %q", text)
	}
}

func TestSubsequentAuthorSubstituteCompleteAll(t *testing.T) {
	sty := authorDateStyle()
	sty.Options.Bibliography.SubsequentAuthorSubstitute = style.SubsequentAuthorSubstitute{Rule: "complete-all", Text: "———"}
	bib := reference.NewBibliography()
	r1 := mkRef("r1", "Kuhn", "Thomas", "Book One", "1962")
	r2 := mkRef("r2", "Kuhn", "Thomas", "Book Two", "1970")
	bib.Add(r1)
	bib.Add(r2)
	f := outformat.MustGet("plain")
	entries := RenderBibliography([]*reference.Reference{r1, r2}, bib, map[string]*hints.Hints{}, testLocale(t), sty, f)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[1].Text, "———") {
		t.Errorf("expected second entry's author substituted, got %q", entries[1].Text)
	}
}

func TestCleanDanglingPunctuation(t *testing.T) {
	if got := cleanDanglingPunctuation("Kuhn, . 1962,, more"); got != "Kuhn. 1962, more" {
		t.Errorf("cleanDanglingPunctuation = %q", got)
	}
}
