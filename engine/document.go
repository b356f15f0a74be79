package engine

import (
	"fmt"
	"strings"

	"github.com/csln-go/csln/document"
	"github.com/csln-go/csln/render"
	"github.com/csln-go/csln/values"
)

// ProcessDocument implements the engine side of spec.md §4.8's
// document pass: it walks src for citation tokens, replaces each with
// its rendered citation, and appends a bibliography heading plus the
// rendered bibliography for every reference the document actually
// cited (grouped as per §4.4 when the style declares groups).
func (p *Processor) ProcessDocument(src string, bibliographyHeading string) (string, error) {
	tokens, trailing := document.Parse(src)

	var out strings.Builder
	cited := make(map[string]bool)
	for _, tok := range tokens {
		out.WriteString(tok.Literal)
		req, err := citationRequestFromSpec(tok.Citation, p)
		if err != nil {
			return "", err
		}
		text, tokCited, err := p.RenderCitation(req)
		if err != nil {
			return "", err
		}
		for id := range tokCited {
			cited[id] = true
		}
		out.WriteString(text)
	}
	out.WriteString(trailing)

	rb, err := p.RenderBibliography(cited)
	if err != nil {
		return "", err
	}
	bibText := AssembleBibliography(rb, p.Format)

	if bibliographyHeading == "" {
		bibliographyHeading = "Bibliography"
	}
	result := out.String()
	if bibText != "" {
		result += "\n\n" + p.Format.Finish(p.Format.Strong(p.Format.Text(bibliographyHeading))) + "\n\n" + bibText
	}
	return result, nil
}

// citationRequestFromSpec resolves a document.CitationSpec's keys
// against the processor's bibliography, building the render request
// the §4.5 renderer expects.
func citationRequestFromSpec(spec document.CitationSpec, p *Processor) (render.CitationRequest, error) {
	req := render.CitationRequest{SkipWrap: spec.Integral}
	for _, item := range spec.Items {
		ref, ok := p.Bib.Get(item.Key)
		if !ok {
			return render.CitationRequest{}, fmt.Errorf("document citation references unknown id %q", item.Key)
		}
		req.Items = append(req.Items, render.CitationRequestItem{
			Ref:        ref,
			Visibility: item.Visibility,
			Item: values.CitationItem{
				Label:   item.Label,
				Locator: item.Locator,
			},
		})
	}
	return req, nil
}
