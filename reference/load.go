package reference

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/csln-go/csln/multilang"
)

// Load parses a bibliography document per spec.md §6.2: either
//   - a CSL-JSON array of legacy reference records (converted on load), or
//   - a YAML/JSON object whose top-level is an ordered map of id -> reference, or
//   - a list of references each carrying an "id" field.
//
// Order is preserved by walking the raw yaml.Node tree instead of
// decoding straight into a Go map, since plain map decode would discard
// the document's key order (spec.md §9 "Deterministic collections").
func Load(data []byte) (*Bibliography, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing bibliography: %w", err)
	}
	if len(doc.Content) == 0 {
		return NewBibliography(), nil
	}
	root := doc.Content[0]

	bib := NewBibliography()

	switch root.Kind {
	case yaml.SequenceNode:
		for i, item := range root.Content {
			var m map[string]any
			if err := item.Decode(&m); err != nil {
				return nil, fmt.Errorf("parsing bibliography entry %d: %w", i, err)
			}
			id, _ := m["id"].(string)
			ref, err := decodeFromMap(id, m)
			if err != nil {
				return nil, fmt.Errorf("parsing bibliography entry %d: %w", i, err)
			}
			if ref.ID == "" {
				return nil, fmt.Errorf("bibliography entry %d is missing an id", i)
			}
			bib.Add(ref)
		}

	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			keyNode, valNode := root.Content[i], root.Content[i+1]
			id := keyNode.Value
			var m map[string]any
			if err := valNode.Decode(&m); err != nil {
				return nil, fmt.Errorf("parsing bibliography entry %q: %w", id, err)
			}
			ref, err := decodeFromMap(id, m)
			if err != nil {
				return nil, fmt.Errorf("parsing bibliography entry %q: %w", id, err)
			}
			ref.ID = id
			bib.Add(ref)
		}

	default:
		return nil, fmt.Errorf("bibliography document must be a list or a mapping, got %v", root.Kind)
	}

	return bib, nil
}

// knownNativeFields and decodeCSLItem's own known-field map let
// decodeFromMap tell a native
// reference record apart from a legacy CSL-JSON item and still capture
// whatever's left over into Extra (spec.md §6.1).
var knownNativeFields = map[string]bool{
	"id": true, "kind": true, "language": true, "title": true, "original_title": true,
	"contributors": true, "issued": true, "original_date": true, "accessed": true,
	"publisher": true, "publisher_place": true, "edition": true, "isbn": true, "issn": true,
	"doi": true, "url": true, "report_number": true, "collection_number": true,
	"volume": true, "issue": true, "pages": true, "parent": true,
	"docket_number": true, "patent_number": true, "standard_number": true,
	"notes": true, "keywords": true, "abstract": true,
}

func decodeFromMap(id string, m map[string]any) (*Reference, error) {
	if _, isLegacy := m["type"]; isLegacy {
		if _, isNative := m["kind"]; !isNative {
			return decodeCSLItem(id, m)
		}
	}
	return decodeNativeItem(id, m)
}

func decodeNativeItem(id string, m map[string]any) (*Reference, error) {
	ref := &Reference{ID: id}
	if v, ok := m["kind"].(string); ok {
		ref.Kind = Kind(v)
	}
	ref.Language = str(m["language"])
	ref.Title = toMultiString(m["title"])
	ref.OriginalTitle = toMultiString(m["original_title"])
	ref.Contributors = toContributors(m["contributors"])
	ref.Issued = str(m["issued"])
	ref.OriginalDate = str(m["original_date"])
	ref.Accessed = str(m["accessed"])
	ref.Publisher = toMultiString(m["publisher"])
	ref.PublisherPlace = str(m["publisher_place"])
	ref.Edition = str(m["edition"])
	ref.ISBN = str(m["isbn"])
	ref.ISSN = str(m["issn"])
	ref.DOI = str(m["doi"])
	ref.URL = str(m["url"])
	ref.ReportNumber = str(m["report_number"])
	ref.CollectionNumber = str(m["collection_number"])
	ref.Volume = str(m["volume"])
	ref.Issue = str(m["issue"])
	ref.Pages = str(m["pages"])
	ref.DocketNumber = str(m["docket_number"])
	ref.PatentNumber = str(m["patent_number"])
	ref.StandardNumber = str(m["standard_number"])
	ref.Abstract = str(m["abstract"])
	ref.Notes = toStringSlice(m["notes"])
	ref.Keywords = toStringSlice(m["keywords"])
	ref.Parent = toParent(m["parent"])

	for k, v := range m {
		if !knownNativeFields[k] {
			ref.Extra = ref.Extra.Set(k, v)
		}
	}
	return ref, nil
}

// decodeCSLItem converts a CSL-JSON-shaped item (spec.md §6.2 "a CSL-JSON
// array of legacy reference records (converted on load)") into a
// Reference.
func decodeCSLItem(id string, m map[string]any) (*Reference, error) {
	ref := &Reference{ID: id}
	if ref.ID == "" {
		ref.ID = str(m["id"])
	}
	ref.Kind = Kind(str(m["type"]))
	ref.Language = str(m["language"])
	ref.Title = multilang.NewString(str(m["title"]))
	ref.Abstract = str(m["abstract"])
	ref.DOI = str(m["DOI"])
	ref.URL = str(m["URL"])
	ref.ISBN = str(m["ISBN"])
	ref.ISSN = str(m["ISSN"])
	ref.Publisher = multilang.NewString(str(m["publisher"]))
	ref.PublisherPlace = str(m["publisher-place"])
	ref.Edition = str(m["edition"])
	ref.Volume = str(m["volume"])
	ref.Issue = str(m["issue"])
	ref.Pages = str(m["page"])

	if ct := str(m["container-title"]); ct != "" {
		ref.Parent = Parent{Embedded: &Reference{Title: multilang.NewString(ct)}}
	}

	ref.Issued = cslDateToEDTF(m["issued"])

	for _, role := range []struct {
		key  string
		role string
	}{{"author", "author"}, {"editor", "editor"}, {"translator", "translator"}} {
		if list, ok := m[role.key].([]any); ok {
			for _, item := range list {
				nm, ok := item.(map[string]any)
				if !ok {
					continue
				}
				sn := multilang.StructuredName{
					Family:  str(nm["family"]),
					Given:   str(nm["given"]),
					Suffix:  str(nm["suffix"]),
					Literal: str(nm["literal"]),
				}
				ref.Contributors = append(ref.Contributors, multilang.Contributor{
					Name: multilang.Name{Original: sn},
					Role: role.role,
				})
			}
		}
	}

	known := map[string]bool{
		"id": true, "type": true, "language": true, "title": true, "abstract": true,
		"DOI": true, "URL": true, "ISBN": true, "ISSN": true, "publisher": true,
		"publisher-place": true, "edition": true, "volume": true, "issue": true, "page": true,
		"container-title": true, "issued": true, "author": true, "editor": true, "translator": true,
	}
	for k, v := range m {
		if !known[k] {
			ref.Extra = ref.Extra.Set(k, v)
		}
	}
	return ref, nil
}

// cslDateToEDTF converts a CSL "issued" object ({"date-parts":[[y,m,d]]})
// into an EDTF string the edtf package can parse.
func cslDateToEDTF(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return str(v)
	}
	parts, ok := m["date-parts"].([]any)
	if !ok || len(parts) == 0 {
		return ""
	}
	first, ok := parts[0].([]any)
	if !ok || len(first) == 0 {
		return ""
	}
	nums := make([]int, 0, len(first))
	for _, p := range first {
		switch n := p.(type) {
		case int:
			nums = append(nums, n)
		case float64:
			nums = append(nums, int(n))
		}
	}
	switch len(nums) {
	case 1:
		return fmt.Sprintf("%04d", nums[0])
	case 2:
		return fmt.Sprintf("%04d-%02d", nums[0], nums[1])
	case 3:
		return fmt.Sprintf("%04d-%02d-%02d", nums[0], nums[1], nums[2])
	default:
		return ""
	}
}

func toParent(v any) Parent {
	switch val := v.(type) {
	case string:
		return Parent{ID: val}
	case map[string]any:
		ref, err := decodeFromMap("", val)
		if err != nil {
			return Parent{}
		}
		return Parent{Embedded: ref}
	default:
		return Parent{}
	}
}

func toContributors(v any) []multilang.Contributor {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]multilang.Contributor, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		role := str(m["role"])
		if role == "" {
			role = "author"
		}
		var name multilang.Name
		switch nv := m["name"].(type) {
		case string:
			name = multilang.Name{Original: multilang.ParseName(nv)}
		case map[string]any:
			name = multilang.Name{
				Original: toStructuredName(nv["original"]),
				Lang:     str(nv["lang"]),
			}
			if t, ok := nv["transliterations"].(map[string]any); ok {
				name.Transliterations = map[string]multilang.StructuredName{}
				for k, sv := range t {
					name.Transliterations[k] = toStructuredName(sv)
				}
			}
			if t, ok := nv["translations"].(map[string]any); ok {
				name.Translations = map[string]multilang.StructuredName{}
				for k, sv := range t {
					name.Translations[k] = toStructuredName(sv)
				}
			}
		}
		out = append(out, multilang.Contributor{Name: name, Role: role})
	}
	return out
}

func toStructuredName(v any) multilang.StructuredName {
	switch val := v.(type) {
	case string:
		return multilang.ParseName(val)
	case map[string]any:
		return multilang.StructuredName{
			Family:              str(val["family"]),
			Given:               str(val["given"]),
			Suffix:              str(val["suffix"]),
			DroppingParticle:    str(val["dropping_particle"]),
			NonDroppingParticle: str(val["non_dropping_particle"]),
			Literal:             str(val["literal"]),
		}
	default:
		return multilang.StructuredName{}
	}
}

func toMultiString(v any) multilang.String {
	switch val := v.(type) {
	case string:
		return multilang.NewString(val)
	case map[string]any:
		s := multilang.String{
			Original: str(val["original"]),
			Lang:     str(val["lang"]),
		}
		if t, ok := val["transliterations"].(map[string]any); ok {
			s.Transliterations = map[string]string{}
			for k, sv := range t {
				s.Transliterations[k] = str(sv)
			}
		}
		if t, ok := val["translations"].(map[string]any); ok {
			s.Translations = map[string]string{}
			for k, sv := range t {
				s.Translations[k] = str(sv)
			}
		}
		return s
	default:
		return multilang.String{}
	}
}

func toStringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		if s, ok := v.(string); ok && s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, str(item))
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
