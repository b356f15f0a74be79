package style

import "testing"

const minimalStyleYAML = `
info:
  id: test-style
  default_locale: en
options:
  processing_mode: author-date
citation:
  template:
    - kind: contributor
      role: author
    - kind: date
      date_var: issued
bibliography:
  template:
    - kind: contributor
      role: author
    - kind: title
      title_type: primary
`

func TestParseMinimalStyle(t *testing.T) {
	s, err := Parse([]byte(minimalStyleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Info.ID != "test-style" {
		t.Errorf("Info.ID = %q", s.Info.ID)
	}
	if len(s.Citation.Template) != 2 {
		t.Fatalf("Citation.Template = %+v", s.Citation.Template)
	}
	if s.Citation.Template[0].Kind != ComponentContributor {
		t.Errorf("Citation.Template[0].Kind = %q", s.Citation.Template[0].Kind)
	}
}

func TestParseRejectsMissingDefaultLocale(t *testing.T) {
	bad := []byte(`
info:
  id: test-style
options:
  processing_mode: author-date
citation:
  template:
    - kind: text
      value: "x"
bibliography:
  template:
    - kind: text
      value: "x"
`)
	if _, err := Parse(bad); err == nil {
		t.Fatal("expected validation error for missing default_locale")
	}
}

func TestParseCustomModeRequiresCustomOptions(t *testing.T) {
	bad := []byte(`
info:
  id: test-style
  default_locale: en
options:
  processing_mode: custom
citation:
  template:
    - kind: text
      value: "x"
bibliography:
  template:
    - kind: text
      value: "x"
`)
	if _, err := Parse(bad); err == nil {
		t.Fatal("expected error: custom mode without options.custom")
	}
}

func TestParsePreservesUnknownTopLevelFields(t *testing.T) {
	doc := []byte(minimalStyleYAML + "\nvendor_note: keep me\n")
	s, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, ok := s.Extra.Get("vendor_note")
	if !ok || v != "keep me" {
		t.Fatalf("Extra[vendor_note] = %v, ok=%v", v, ok)
	}
}
