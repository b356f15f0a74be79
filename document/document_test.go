package document

import (
	"testing"

	"github.com/csln-go/csln/render"
)

func TestParseSingleCitation(t *testing.T) {
	tokens, trailing := Parse("See [@smith2020] for details.")
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	tok := tokens[0]
	if tok.Literal != "See " {
		t.Errorf("Literal = %q", tok.Literal)
	}
	if trailing != " for details." {
		t.Errorf("trailing = %q", trailing)
	}
	if len(tok.Citation.Items) != 1 || tok.Citation.Items[0].Key != "smith2020" {
		t.Fatalf("unexpected citation: %+v", tok.Citation)
	}
	if tok.Citation.Items[0].Visibility != render.VisibilityNormal {
		t.Errorf("expected normal visibility, got %q", tok.Citation.Items[0].Visibility)
	}
}

func TestParseSuppressAuthorAndIntegral(t *testing.T) {
	tokens, _ := Parse("[-@smith2020] argued this; [+@jones1999] said that.")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Citation.Items[0].Visibility != render.VisibilitySuppressAuthor {
		t.Errorf("expected suppress-author, got %q", tokens[0].Citation.Items[0].Visibility)
	}
	if !tokens[1].Citation.Integral {
		t.Error("expected second token marked integral")
	}
}

func TestParseSilentNocite(t *testing.T) {
	tokens, _ := Parse("[!@smith2020]")
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	if tokens[0].Citation.Items[0].Visibility != render.VisibilityHidden {
		t.Errorf("expected hidden, got %q", tokens[0].Citation.Items[0].Visibility)
	}
}

func TestParseMultiCiteWithLocator(t *testing.T) {
	tokens, _ := Parse("[@smith2020; @jones1999, ch. 2]")
	if len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %d", len(tokens))
	}
	items := tokens[0].Citation.Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	if items[0].Key != "smith2020" || items[0].Label != "" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Key != "jones1999" || items[1].Label != "chapter" || items[1].Locator != "2" {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestParseStructuredLocator(t *testing.T) {
	tokens, _ := Parse("[@smith2020, page: 23, section: V]")
	item := tokens[0].Citation.Items[0]
	if item.Label != "page" || item.Locator != "23" {
		t.Errorf("unexpected locator: %+v", item)
	}
}

func TestParseBareLocatorDefaultsToPage(t *testing.T) {
	label, value := parseLocator("23")
	if label != "page" || value != "23" {
		t.Errorf("parseLocator(23) = %q, %q", label, value)
	}
}

func TestParseUnknownAbbreviationDefaultsToPage(t *testing.T) {
	label, value := parseLocator("xyz. 5")
	if label != "page" || value != "5" {
		t.Errorf("parseLocator = %q, %q", label, value)
	}
}

func TestParseIgnoresPlainLinkBrackets(t *testing.T) {
	tokens, trailing := Parse("See [the docs](https://example.com) for more.")
	if len(tokens) != 0 {
		t.Fatalf("expected 0 tokens, got %d", len(tokens))
	}
	if trailing != "See [the docs](https://example.com) for more." {
		t.Errorf("trailing = %q", trailing)
	}
}

func TestParseMultipleTokensPreserveLiteralBetween(t *testing.T) {
	tokens, trailing := Parse("A [@one] and B [@two].")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Literal != "A " {
		t.Errorf("first literal = %q", tokens[0].Literal)
	}
	if tokens[1].Literal != " and B " {
		t.Errorf("second literal = %q", tokens[1].Literal)
	}
	if trailing != "." {
		t.Errorf("trailing = %q", trailing)
	}
}
