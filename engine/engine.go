// Package engine implements the top-level processor of spec.md §2: a
// pure function of (Style, Locale, Bibliography, Citations) ->
// (RenderedCitations, RenderedBibliography).
//
// Grounded on the teacher's cmd/convert.go control flow (load input,
// resolve configuration, run the parse/serialize pipeline, report
// counts) generalized from a one-shot format conversion to the
// multi-pass citation pipeline: disambiguate once, then render
// citations in request order (allocating citation numbers first-seen),
// then sort/group and render the bibliography.
package engine

import (
	"fmt"

	"github.com/csln-go/csln/grouping"
	"github.com/csln-go/csln/hints"
	"github.com/csln-go/csln/locale"
	"github.com/csln-go/csln/outformat"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/render"
	"github.com/csln-go/csln/sorting"
	"github.com/csln-go/csln/style"
)

// Processor holds the immutable inputs spec.md §5 describes as
// shareable read-only across processor instances: style, locale, and
// bibliography. A Processor owns the single piece of interior-mutable
// state the engine has — citation_numbers — so a caller that wants
// concurrent processors over the same style/bibliography should build
// one Processor per goroutine (spec.md §5 "each caller owns its own
// processor instance").
type Processor struct {
	Style   *style.Style
	Locale  *locale.Locale
	Bib     *reference.Bibliography
	Format  outformat.Format
	hintMap map[string]*hints.Hints

	citationNumbers map[string]int
	nextNumber      int
}

// New builds a Processor, running the disambiguator once over bib
// (spec.md §2 "the disambiguator runs once over the bibliography,
// producing hints" and §5's ordering guarantee that this happens
// before any citation is rendered).
func New(sty *style.Style, loc *locale.Locale, bib *reference.Bibliography, f outformat.Format) *Processor {
	return &Processor{
		Style:           sty,
		Locale:          loc,
		Bib:             bib,
		Format:          f,
		hintMap:         hints.Compute(bib, sty.Options),
		citationNumbers: make(map[string]int),
	}
}

// RenderCitation renders one citation request, allocating citation
// numbers for numeric-mode styles in first-seen order (spec.md §5
// "Citation-number allocation is first-seen in citation-request
// order"). It returns the finished citation text and the set of
// reference IDs the request marks as cited (including hidden/nocite
// items).
func (p *Processor) RenderCitation(req render.CitationRequest) (string, map[string]bool, error) {
	for _, item := range req.Items {
		if _, ok := p.Bib.Get(item.Ref.ID); !ok {
			return "", nil, fmt.Errorf("citation references unknown id %q", item.Ref.ID)
		}
		if p.Style.Options.ProcessingMode == style.ModeNumeric {
			p.allocateCitationNumber(item.Ref.ID)
		}
	}
	text, cited := render.RenderCitation(req, p.Bib, p.hintMap, p.Locale, p.Style, p.Format)
	return text, cited, nil
}

// allocateCitationNumber assigns the next citation number to id the
// first time it's seen, and records it onto that reference's hints so
// a ComponentNumber{NumberVar: "citation-number"} template component
// can read it back out (spec.md §3.5 "CitationNumber is filled lazily
// by the engine on first citation").
func (p *Processor) allocateCitationNumber(id string) {
	if _, ok := p.citationNumbers[id]; ok {
		return
	}
	p.nextNumber++
	p.citationNumbers[id] = p.nextNumber
	if h, ok := p.hintMap[id]; ok {
		h.CitationNumber = p.nextNumber
	}
}

// RenderedBibliography is the sorted/grouped/rendered output of
// RenderBibliography: either one flat entry list (Groups is nil) or a
// list of named groups, each independently sorted (spec.md §4.4).
type RenderedBibliography struct {
	Entries []render.BibliographyEntry
	Groups  []RenderedGroup
}

// RenderedGroup is one grouping.Group's rendered entries.
type RenderedGroup struct {
	Name    string
	Entries []render.BibliographyEntry
}

// RenderBibliography sorts (spec.md §4.3) and groups (spec.md §4.4)
// the references cited so far (or all references, if cited is nil),
// then renders each through the style's bibliography template
// (spec.md §4.5/§4.7).
func (p *Processor) RenderBibliography(cited map[string]bool) (RenderedBibliography, error) {
	refs := p.refsToRender(cited)

	if len(p.Style.Grouping) == 0 {
		p.sortRefs(refs, p.Style.Bibliography.Sort)
		entries := render.RenderBibliography(refs, p.Bib, p.hintMap, p.Locale, p.Style, p.Format)
		return RenderedBibliography{Entries: entries}, nil
	}

	groups, err := grouping.Assign(refs, p.Style.Grouping, cited)
	if err != nil {
		return RenderedBibliography{}, fmt.Errorf("grouping bibliography: %w", err)
	}
	out := RenderedBibliography{Groups: make([]RenderedGroup, 0, len(groups))}
	for _, g := range groups {
		sortTmpl := g.Spec.Sort
		if sortTmpl == nil {
			sortTmpl = p.Style.Bibliography.Sort
		}
		p.sortRefs(g.Refs, sortTmpl)
		entries := render.RenderBibliography(g.Refs, p.Bib, p.hintMap, p.Locale, p.Style, p.Format)
		out.Groups = append(out.Groups, RenderedGroup{Name: g.Name, Entries: entries})
	}
	return out, nil
}

func (p *Processor) refsToRender(cited map[string]bool) []*reference.Reference {
	all := p.Bib.All()
	if cited == nil {
		return append([]*reference.Reference(nil), all...)
	}
	refs := make([]*reference.Reference, 0, len(cited))
	for _, ref := range all {
		if cited[ref.ID] {
			refs = append(refs, ref)
		}
	}
	return refs
}

func (p *Processor) sortRefs(refs []*reference.Reference, tmpl *style.SortTemplate) {
	if tmpl == nil {
		return
	}
	cmp := sorting.NewComparer(*tmpl, p.Locale, p.hintMap, p.Bib, nil)
	cmp.Sort(refs)
}

// AssembleBibliography flattens a RenderedBibliography to final text,
// rendering a group heading before the entries of every group that has
// a non-empty Name.
func AssembleBibliography(rb RenderedBibliography, f outformat.Format) string {
	if rb.Groups == nil {
		return render.AssembleBibliography(rb.Entries)
	}
	out := ""
	for i, g := range rb.Groups {
		if i > 0 {
			out += "\n\n"
		}
		if g.Name != "" {
			out += f.Finish(f.Strong(f.Text(g.Name))) + "\n\n"
		}
		out += render.AssembleBibliography(g.Entries)
	}
	return out
}
