package outformat

import (
	"fmt"
	"html"
	"strings"

	"github.com/csln-go/csln/style"
)

// htmlFormat is the HTML back end (spec.md §4.6 "HTML: <em>, <strong>,
// <span class="small-caps">, <a href>, wraps as literal punctuation;
// semantic class attaches csln-* class names when the style option
// enables them.").
type htmlFormat struct {
	// Semantics enables emitting `class="csln-*"` attributes from
	// Semantic(); off by default per the style option
	// spec.md §6.4 names as `--no-semantics`.
	Semantics bool
}

func init() { Register(htmlFormat{}) }

// NewHTML returns an HTML back end with Semantics set explicitly,
// for callers (the CLI's `--no-semantics` flag) that need semantic
// class attributes on by default rather than this package's safe-by-
// default zero value.
func NewHTML(semantics bool) Format { return htmlFormat{Semantics: semantics} }

func (htmlFormat) Name() string { return "html" }

func (htmlFormat) Text(s string) Fragment { return Fragment(html.EscapeString(s)) }

func (htmlFormat) Emph(f Fragment) Fragment {
	return Fragment(fmt.Sprintf("<em>%s</em>", f))
}

func (htmlFormat) Strong(f Fragment) Fragment {
	return Fragment(fmt.Sprintf("<strong>%s</strong>", f))
}

func (htmlFormat) SmallCaps(f Fragment) Fragment {
	return Fragment(fmt.Sprintf(`<span class="small-caps">%s</span>`, f))
}

func (htmlFormat) Quote(f Fragment) Fragment {
	return Fragment("&ldquo;" + string(f) + "&rdquo;")
}

func (htmlFormat) Link(url string, f Fragment) Fragment {
	if url == "" {
		return f
	}
	return Fragment(fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(url), f))
}

func (f htmlFormat) WrapPunctuation(wrap style.WrapKind, frag Fragment) Fragment {
	return Fragment(wrapLiteral(wrap, string(frag)))
}

func (htmlFormat) Affix(prefix string, f Fragment, suffix string) Fragment {
	return Fragment(prefix + string(f) + suffix)
}

func (htmlFormat) InnerAffix(prefix string, f Fragment, suffix string) Fragment {
	return Fragment(prefix + string(f) + suffix)
}

func (f htmlFormat) Semantic(class string, frag Fragment) Fragment {
	if !f.Semantics || class == "" {
		return frag
	}
	return Fragment(fmt.Sprintf(`<span class="csln-%s">%s</span>`, strings.ReplaceAll(class, "_", "-"), frag))
}

func (htmlFormat) Finish(f Fragment) string { return string(f) }
