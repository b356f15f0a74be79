package outformat

import (
	"fmt"

	"github.com/csln-go/csln/style"
)

// djotFormat is the Djot back end (spec.md §4.6 "Djot: _..._, *...*,
// links [text](url); optional attribute syntax for semantics.").
type djotFormat struct {
	Semantics bool
}

func init() { Register(djotFormat{}) }

// NewDjot returns a Djot back end with Semantics set explicitly; see
// NewHTML.
func NewDjot(semantics bool) Format { return djotFormat{Semantics: semantics} }

func (djotFormat) Name() string { return "djot" }

func (djotFormat) Text(s string) Fragment { return Fragment(escapeDjot(s)) }

func (djotFormat) Emph(f Fragment) Fragment   { return Fragment("_" + string(f) + "_") }
func (djotFormat) Strong(f Fragment) Fragment { return Fragment("*" + string(f) + "*") }

func (djotFormat) SmallCaps(f Fragment) Fragment {
	return Fragment("[" + string(f) + "]{.small-caps}")
}

func (djotFormat) Quote(f Fragment) Fragment {
	return Fragment("“" + string(f) + "”")
}

func (djotFormat) Link(url string, f Fragment) Fragment {
	if url == "" {
		return f
	}
	return Fragment(fmt.Sprintf("[%s](%s)", f, url))
}

func (djotFormat) WrapPunctuation(wrap style.WrapKind, f Fragment) Fragment {
	return Fragment(wrapLiteral(wrap, string(f)))
}

func (djotFormat) Affix(prefix string, f Fragment, suffix string) Fragment {
	return Fragment(prefix + string(f) + suffix)
}

func (djotFormat) InnerAffix(prefix string, f Fragment, suffix string) Fragment {
	return Fragment(prefix + string(f) + suffix)
}

func (f djotFormat) Semantic(class string, frag Fragment) Fragment {
	if !f.Semantics || class == "" {
		return frag
	}
	return Fragment(fmt.Sprintf("[%s]{.csln-%s}", frag, class))
}

func (djotFormat) Finish(f Fragment) string { return string(f) }

// escapeDjot backslash-escapes Djot's inline-markup trigger characters
// so literal text containing them doesn't get misparsed.
func escapeDjot(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '_', '*', '[', ']', '\\':
			out = append(out, '\\', s[i])
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
