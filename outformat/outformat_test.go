package outformat

import (
	"testing"

	"github.com/csln-go/csln/style"
)

func TestDefaultRegistryHasAllFourBackEnds(t *testing.T) {
	for _, name := range []string{"plain", "html", "djot", "latex"} {
		if _, ok := Get(name); !ok {
			t.Errorf("expected %q to be registered", name)
		}
	}
}

func TestPlainQuoteAndWrap(t *testing.T) {
	f := MustGet("plain")
	frag := f.Quote(f.Text("a title"))
	if f.Finish(frag) != "“a title”" {
		t.Errorf("Quote = %q", f.Finish(frag))
	}
	wrapped := f.WrapPunctuation(style.WrapParens, f.Text("2020"))
	if f.Finish(wrapped) != "(2020)" {
		t.Errorf("WrapPunctuation = %q", f.Finish(wrapped))
	}
}

func TestHTMLEscapesAndMarksUp(t *testing.T) {
	f := MustGet("html")
	frag := f.Emph(f.Text("A & B"))
	if got := f.Finish(frag); got != "<em>A &amp; B</em>" {
		t.Errorf("Emph = %q", got)
	}
	link := f.Link("https://example.com", f.Text("site"))
	if got := f.Finish(link); got != `<a href="https://example.com">site</a>` {
		t.Errorf("Link = %q", got)
	}
}

func TestHTMLSemanticsOptOut(t *testing.T) {
	f := htmlFormat{Semantics: false}
	frag := f.Semantic("title", f.Text("x"))
	if f.Finish(frag) != "x" {
		t.Errorf("expected semantic annotation suppressed, got %q", f.Finish(frag))
	}
	f2 := htmlFormat{Semantics: true}
	frag2 := f2.Semantic("title", f2.Text("x"))
	if f2.Finish(frag2) != `<span class="csln-title">x</span>` {
		t.Errorf("Semantic = %q", f2.Finish(frag2))
	}
}

func TestDjotEmphAndEscaping(t *testing.T) {
	f := MustGet("djot")
	frag := f.Emph(f.Text("under_score"))
	if got := f.Finish(frag); got != `_under\_score_` {
		t.Errorf("Emph = %q", got)
	}
}

func TestLaTeXEscapesSpecialChars(t *testing.T) {
	f := MustGet("latex")
	frag := f.Text("100% & more_stuff")
	if got := f.Finish(frag); got != `100\% \& more\_stuff` {
		t.Errorf("Text = %q", got)
	}
	quoted := f.Quote(f.Text("title"))
	if got := f.Finish(quoted); got != `\enquote{title}` {
		t.Errorf("Quote = %q", got)
	}
}

func TestStripHTMLRemovesTagsAndDecodesEntities(t *testing.T) {
	got := StripHTML("<p>Hello &amp; <b>world</b></p><br>Next")
	if got != "Hello & world Next" {
		t.Errorf("StripHTML = %q", got)
	}
}

func TestResolveConfiguresSemanticsForHTMLAndDjot(t *testing.T) {
	f, ok := Resolve("html", true)
	if !ok {
		t.Fatal("expected html to resolve")
	}
	if got := f.Finish(f.Semantic("title", f.Text("x"))); got != `<span class="csln-title">x</span>` {
		t.Errorf("Resolve(html, true) Semantic = %q", got)
	}
	f2, _ := Resolve("html", false)
	if got := f2.Finish(f2.Semantic("title", f2.Text("x"))); got != "x" {
		t.Errorf("Resolve(html, false) Semantic = %q", got)
	}
	if _, ok := Resolve("plain", true); !ok {
		t.Error("expected plain to resolve regardless of semantics flag")
	}
}

func TestIsHTML(t *testing.T) {
	if !IsHTML("<p>x</p>") {
		t.Error("expected IsHTML true")
	}
	if IsHTML("plain text") {
		t.Error("expected IsHTML false")
	}
}
