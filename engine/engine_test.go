package engine

import (
	"strings"
	"testing"

	"github.com/csln-go/csln/locale"
	"github.com/csln-go/csln/multilang"
	"github.com/csln-go/csln/outformat"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/render"
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

func numericStyle() *style.Style {
	return &style.Style{
		Options: style.Options{ProcessingMode: style.ModeNumeric},
		Citation: style.Section{
			Template: []style.Component{
				{Kind: style.ComponentNumber, NumberVar: "citation-number"},
			},
			Wrap: style.WrapBrackets,
		},
		Bibliography: style.Section{
			Template: []style.Component{
				{Kind: style.ComponentContributor, Role: "author"},
				{Kind: style.ComponentTitle, TitleType: "primary"},
				{Kind: style.ComponentDate, DateVar: "issued", Form: "year"},
			},
		},
	}
}

func TestProcessorRenderCitationAllocatesNumbersFirstSeen(t *testing.T) {
	bib := reference.NewBibliography()
	r1 := mkRef("r1", "Kuhn", "Thomas", "Book One", "1962")
	r2 := mkRef("r2", "Popper", "Karl", "Book Two", "1959")
	bib.Add(r1)
	bib.Add(r2)

	p := New(numericStyle(), testLocale(t), bib, outformat.MustGet("plain"))

	text1, _, err := p.RenderCitation(render.CitationRequest{Items: []render.CitationRequestItem{{Ref: r2}}})
	if err != nil {
		t.Fatalf("RenderCitation: %v", err)
	}
	if text1 != "[1]" {
		t.Errorf("first citation = %q, want [1]", text1)
	}

	text2, _, err := p.RenderCitation(render.CitationRequest{Items: []render.CitationRequestItem{{Ref: r1}}})
	if err != nil {
		t.Fatalf("RenderCitation: %v", err)
	}
	if text2 != "[2]" {
		t.Errorf("second citation = %q, want [2]", text2)
	}

	text1Again, _, _ := p.RenderCitation(render.CitationRequest{Items: []render.CitationRequestItem{{Ref: r2}}})
	if text1Again != "[1]" {
		t.Errorf("repeat citation = %q, want [1] (stable)", text1Again)
	}
}

func TestProcessorRenderCitationUnknownRefErrors(t *testing.T) {
	bib := reference.NewBibliography()
	p := New(numericStyle(), testLocale(t), bib, outformat.MustGet("plain"))
	orphan := mkRef("missing", "Nobody", "N", "Title", "2000")
	_, _, err := p.RenderCitation(render.CitationRequest{Items: []render.CitationRequestItem{{Ref: orphan}}})
	if err == nil {
		t.Fatal("expected error for unknown reference")
	}
}

func TestProcessorRenderBibliographyFlat(t *testing.T) {
	bib := reference.NewBibliography()
	r1 := mkRef("r1", "Kuhn", "Thomas", "Book One", "1962")
	bib.Add(r1)
	p := New(numericStyle(), testLocale(t), bib, outformat.MustGet("plain"))
	rb, err := p.RenderBibliography(nil)
	if err != nil {
		t.Fatalf("RenderBibliography: %v", err)
	}
	if len(rb.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rb.Entries))
	}
	text := AssembleBibliography(rb, outformat.MustGet("plain"))
	if !strings.Contains(text, "Kuhn") {
		t.Errorf("expected bibliography text to mention Kuhn, got %q", text)
	}
}

func TestProcessDocumentReplacesTokensAndAppendsBibliography(t *testing.T) {
	bib := reference.NewBibliography()
	r1 := mkRef("r1", "Kuhn", "Thomas", "Book One", "1962")
	bib.Add(r1)
	p := New(numericStyle(), testLocale(t), bib, outformat.MustGet("plain"))

	out, err := p.ProcessDocument("See [@r1] for details.", "")
	if err != nil {
		t.Fatalf("ProcessDocument: %v", err)
	}
	if !strings.Contains(out, "See [1] for details.") {
		t.Errorf("expected citation replaced, got %q", out)
	}
	if !strings.Contains(out, "Bibliography") {
		t.Errorf("expected bibliography heading, got %q", out)
	}
	if !strings.Contains(out, "Kuhn") {
		t.Errorf("expected bibliography entry, got %q", out)
	}
}

func TestProcessDocumentUnknownCitationErrors(t *testing.T) {
	bib := reference.NewBibliography()
	p := New(numericStyle(), testLocale(t), bib, outformat.MustGet("plain"))
	_, err := p.ProcessDocument("[@ghost]", "")
	if err == nil {
		t.Fatal("expected error for unresolvable citation key")
	}
}
