package outformat

import (
	"fmt"
	"strings"

	"github.com/csln-go/csln/style"
)

// latexFormat is the LaTeX back end (spec.md §4.6 "LaTeX: \emph{},
// \textbf{}, \textsc{}, \href{}{}, \enquote{} for quotes.").
type latexFormat struct{}

func init() { Register(latexFormat{}) }

func (latexFormat) Name() string { return "latex" }

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func (latexFormat) Text(s string) Fragment { return Fragment(latexEscaper.Replace(s)) }

func (latexFormat) Emph(f Fragment) Fragment {
	return Fragment(fmt.Sprintf(`\emph{%s}`, f))
}

func (latexFormat) Strong(f Fragment) Fragment {
	return Fragment(fmt.Sprintf(`\textbf{%s}`, f))
}

func (latexFormat) SmallCaps(f Fragment) Fragment {
	return Fragment(fmt.Sprintf(`\textsc{%s}`, f))
}

func (latexFormat) Quote(f Fragment) Fragment {
	return Fragment(fmt.Sprintf(`\enquote{%s}`, f))
}

func (latexFormat) Link(url string, f Fragment) Fragment {
	if url == "" {
		return f
	}
	return Fragment(fmt.Sprintf(`\href{%s}{%s}`, url, f))
}

func (latexFormat) WrapPunctuation(wrap style.WrapKind, f Fragment) Fragment {
	return Fragment(wrapLiteral(wrap, string(f)))
}

func (latexFormat) Affix(prefix string, f Fragment, suffix string) Fragment {
	return Fragment(prefix + string(f) + suffix)
}

func (latexFormat) InnerAffix(prefix string, f Fragment, suffix string) Fragment {
	return Fragment(prefix + string(f) + suffix)
}

// Semantic has no LaTeX analog for arbitrary CSS-style classes; a
// \csln{class}{text} macro could carry it but nothing in this engine
// defines that macro, so semantic annotation is dropped for this
// back end.
func (latexFormat) Semantic(_ string, f Fragment) Fragment { return f }

func (latexFormat) Finish(f Fragment) string { return string(f) }
