// Package reference implements the tagged-union reference model of
// spec.md §3.1: a fixed set of variants (monograph, collection,
// collection-component, serial-component, serial, and the minimal
// legal/technical variants) sharing a common envelope, plus the
// multilingual fields and polymorphic parent described in §3.2 and §9.
//
// Rather than a Go interface-per-variant hierarchy, Reference is one flat
// tagged struct — the fields a given Kind doesn't use are simply left
// zero. This mirrors how the teacher's hub.Record (and CSL-JSON itself)
// models a reference: a flat envelope with a type discriminant, not an
// object hierarchy (spec.md §9 "tagged trees over inheritance"; dispatch
// happens on the Kind tag, e.g. in reference.CategoryOf and
// values.EffectiveRendering).
package reference

import (
	"fmt"

	"github.com/csln-go/csln/extra"
	"github.com/csln-go/csln/multilang"
)

// Kind is the granular reference type tag (CSL-compatible names).
type Kind string

const (
	KindBook              Kind = "book"
	KindReport            Kind = "report"
	KindThesis            Kind = "thesis"
	KindWebpage           Kind = "webpage"
	KindPost              Kind = "post"
	KindDocument          Kind = "document"
	KindAnthology         Kind = "anthology"
	KindProceedings       Kind = "proceedings"
	KindEditedBook        Kind = "edited-book"
	KindChapter           Kind = "chapter"
	KindConferencePaper   Kind = "paper-conference"
	KindArticle           Kind = "article-journal"
	KindReview            Kind = "review"
	KindAcademicJournal   Kind = "academic-journal"
	KindMagazine          Kind = "magazine"
	KindNewspaper         Kind = "newspaper"
	KindBlog              Kind = "blog"
	KindPodcast           Kind = "podcast"
	KindSerial            Kind = "serial"
	KindBrief             Kind = "brief"
	KindPatent            Kind = "patent"
	KindStandard          Kind = "standard"
)

// Category is the coarse variant family spec.md §3.1 groups Kind into.
// Template overrides may match on either the granular Kind or the
// Category (spec.md §4.1); grouping selectors match the granular Kind
// only.
type Category string

const (
	CategoryMonograph          Category = "monograph"
	CategoryCollection         Category = "collection"
	CategoryCollectionComponent Category = "collection-component"
	CategorySerialComponent    Category = "serial-component"
	CategorySerial             Category = "serial"
	CategoryBrief              Category = "brief"
	CategoryPatent             Category = "patent"
	CategoryStandard           Category = "standard"
)

var categoryOf = map[Kind]Category{
	KindBook:            CategoryMonograph,
	KindReport:          CategoryMonograph,
	KindThesis:          CategoryMonograph,
	KindWebpage:         CategoryMonograph,
	KindPost:            CategoryMonograph,
	KindDocument:        CategoryMonograph,
	KindAnthology:       CategoryCollection,
	KindProceedings:     CategoryCollection,
	KindEditedBook:      CategoryCollection,
	KindChapter:         CategoryCollectionComponent,
	KindConferencePaper: CategoryCollectionComponent,
	KindArticle:         CategorySerialComponent,
	KindReview:          CategorySerialComponent,
	KindAcademicJournal: CategorySerial,
	KindMagazine:        CategorySerial,
	KindNewspaper:       CategorySerial,
	KindBlog:            CategorySerial,
	KindPodcast:         CategorySerial,
	KindSerial:          CategorySerial,
	KindBrief:           CategoryBrief,
	KindPatent:          CategoryPatent,
	KindStandard:        CategoryStandard,
}

// CategoryOf returns the coarse family for a Kind, defaulting to
// CategoryMonograph for unrecognized kinds so that value extraction never
// has to special-case an unknown type.
func CategoryOf(k Kind) Category {
	if c, ok := categoryOf[k]; ok {
		return c
	}
	return CategoryMonograph
}

// Parent is the polymorphic parent reference of spec.md §3.1/§9: either
// an embedded record or a bare ID pointing into the owning bibliography.
// Grounded on the teacher's value.Ref (embedded-or-resolved reference
// with a Resolver interface), generalized here to resolve against a
// Bibliography instead of an external taxonomy store.
type Parent struct {
	Embedded *Reference
	ID       string
}

// IsZero reports whether the parent carries no reference at all.
func (p Parent) IsZero() bool {
	return p.Embedded == nil && p.ID == ""
}

// Resolve dereferences the parent against bib. The embedded arm always
// wins without touching the bibliography (spec.md §9).
func (p Parent) Resolve(bib *Bibliography) (*Reference, bool) {
	if p.Embedded != nil {
		return p.Embedded, true
	}
	if p.ID == "" || bib == nil {
		return nil, false
	}
	return bib.Get(p.ID)
}

// Reference is the tagged-union envelope plus every variant-specific
// field named in spec.md §3.1.
type Reference struct {
	ID       string
	Kind     Kind
	Language string

	Title         multilang.String
	OriginalTitle multilang.String

	Contributors []multilang.Contributor

	Issued       string // EDTF string, see package edtf
	OriginalDate string // EDTF string
	Accessed     string // EDTF string

	Publisher      multilang.String
	PublisherPlace string
	Edition        string

	ISBN             string
	ISSN             string
	DOI              string
	URL              string
	ReportNumber     string
	CollectionNumber string

	Volume string
	Issue  string
	Pages  string

	Parent Parent

	// Legal/technical variant identifiers (spec.md §3.1 "Additional
	// legal/technical variants").
	DocketNumber   string
	PatentNumber   string
	StandardNumber string

	Notes    []string
	Keywords []string
	Abstract string

	// Extra preserves fields present in the source document that this
	// model doesn't know about, per spec.md §6.1.
	Extra extra.Bag
}

// ParentTitle returns the resolved parent's title, used by value
// extraction for container-title lookups (spec.md §4.1 Title
// "primary or container/parent").
func (r *Reference) ParentTitle(bib *Bibliography) (multilang.String, bool) {
	parent, ok := r.Parent.Resolve(bib)
	if !ok {
		return multilang.String{}, false
	}
	return parent.Title, true
}

// Depth returns the number of parent hops to the root, used by
// Bibliography.Validate to reject cycles (spec.md §9 "bounded descent").
func (r *Reference) Depth(bib *Bibliography, maxDepth int) (int, error) {
	seen := map[string]bool{}
	cur := r
	depth := 0
	for {
		parent, ok := cur.Parent.Resolve(bib)
		if !ok {
			return depth, nil
		}
		depth++
		if depth > maxDepth {
			return depth, fmt.Errorf("reference %q: parent chain exceeds max depth %d (likely cycle)", r.ID, maxDepth)
		}
		if parent.ID != "" {
			if seen[parent.ID] {
				return depth, fmt.Errorf("reference %q: cyclic parent chain at %q", r.ID, parent.ID)
			}
			seen[parent.ID] = true
		}
		cur = parent
	}
}
