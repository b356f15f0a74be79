package grouping

import (
	"testing"

	"github.com/csln-go/csln/multilang"
	"github.com/csln-go/csln/reference"
	"github.com/csln-go/csln/style"
)

func mkRef(id string, kind reference.Kind, lang string) *reference.Reference {
	return &reference.Reference{ID: id, Kind: kind, Language: lang, Title: multilang.NewString(id)}
}

func TestParseSelectorType(t *testing.T) {
	sel, err := ParseSelector("type:book")
	if err != nil {
		t.Fatalf("ParseSelector: %v", err)
	}
	if !sel.Matches(mkRef("r1", reference.KindBook, ""), true) {
		t.Error("expected book to match")
	}
	if sel.Matches(mkRef("r2", reference.KindArticle, ""), true) {
		t.Error("expected article not to match")
	}
}

func TestParseSelectorFieldMultiple(t *testing.T) {
	sel, err := ParseSelector("field:language=en,fr")
	if err != nil {
		t.Fatalf("ParseSelector: %v", err)
	}
	if !sel.Matches(mkRef("r1", reference.KindBook, "fr"), true) {
		t.Error("expected fr to match")
	}
	if sel.Matches(mkRef("r2", reference.KindBook, "de"), true) {
		t.Error("expected de not to match")
	}
}

func TestParseSelectorCitedOnly(t *testing.T) {
	sel, err := ParseSelector("cited:true")
	if err != nil {
		t.Fatalf("ParseSelector: %v", err)
	}
	if !sel.Matches(mkRef("r1", reference.KindBook, ""), true) {
		t.Error("expected cited match")
	}
	if sel.Matches(mkRef("r1", reference.KindBook, ""), false) {
		t.Error("expected uncited to not match")
	}
}

func TestParseSelectorRejectsMalformed(t *testing.T) {
	if _, err := ParseSelector("bogus"); err == nil {
		t.Fatal("expected error for malformed clause")
	}
	if _, err := ParseSelector("nope:x"); err == nil {
		t.Fatal("expected error for unknown clause key")
	}
}

func TestAssignFirstMatchWinsAndDefaultGroupCollectsRest(t *testing.T) {
	refs := []*reference.Reference{
		mkRef("r1", reference.KindBook, "en"),
		mkRef("r2", reference.KindArticle, "en"),
		mkRef("r3", reference.KindWebpage, "en"),
	}
	specs := []style.GroupSpec{
		{Name: "Books", Selector: "type:book"},
		{Name: "Articles", Selector: "type:article-journal"},
	}
	groups, err := Assign(refs, specs, nil)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups (2 declared + default), got %d", len(groups))
	}
	if groups[0].Name != "Books" || len(groups[0].Refs) != 1 || groups[0].Refs[0].ID != "r1" {
		t.Errorf("Books group: %+v", groups[0])
	}
	if groups[2].Name != DefaultGroupName || len(groups[2].Refs) != 1 || groups[2].Refs[0].ID != "r3" {
		t.Errorf("default group: %+v", groups[2])
	}
}

func TestAssignDropsEmptyDefaultGroup(t *testing.T) {
	refs := []*reference.Reference{mkRef("r1", reference.KindBook, "en")}
	specs := []style.GroupSpec{{Name: "Books", Selector: "type:book"}}
	groups, err := Assign(refs, specs, nil)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected empty default group to be dropped, got %d groups", len(groups))
	}
}

func TestAssignNoSpecsYieldsSingleDefaultGroup(t *testing.T) {
	refs := []*reference.Reference{mkRef("r1", reference.KindBook, "en")}
	groups, err := Assign(refs, nil, nil)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Refs) != 1 {
		t.Fatalf("expected single default group with the reference, got %+v", groups)
	}
}
