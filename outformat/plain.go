package outformat

import "github.com/csln-go/csln/style"

// plainFormat is the plain-text back end (spec.md §4.6 "Plain text:
// text + locale quotes; no markup."). Quoting and wraps render as
// literal punctuation; emphasis/semantic annotations are no-ops.
type plainFormat struct{}

func init() { Register(plainFormat{}) }

func (plainFormat) Name() string { return "plain" }

func (plainFormat) Text(s string) Fragment { return Fragment(s) }

func (plainFormat) Emph(f Fragment) Fragment      { return f }
func (plainFormat) Strong(f Fragment) Fragment    { return f }
func (plainFormat) SmallCaps(f Fragment) Fragment { return f }

func (plainFormat) Quote(f Fragment) Fragment {
	return Fragment("“" + string(f) + "”")
}

func (plainFormat) Link(_ string, f Fragment) Fragment { return f }

func (plainFormat) WrapPunctuation(wrap style.WrapKind, f Fragment) Fragment {
	return Fragment(wrapLiteral(wrap, string(f)))
}

func wrapLiteral(wrap style.WrapKind, s string) string {
	switch wrap {
	case style.WrapParens:
		return "(" + s + ")"
	case style.WrapBrackets:
		return "[" + s + "]"
	case style.WrapQuotes:
		return "“" + s + "”"
	default:
		return s
	}
}

func (plainFormat) Affix(prefix string, f Fragment, suffix string) Fragment {
	return Fragment(prefix + string(f) + suffix)
}

func (plainFormat) InnerAffix(prefix string, f Fragment, suffix string) Fragment {
	return Fragment(prefix + string(f) + suffix)
}

func (plainFormat) Semantic(_ string, f Fragment) Fragment { return f }

func (plainFormat) Finish(f Fragment) string { return string(f) }
