package locale

import "testing"

func TestNewRegistryLoadsBuiltinEnglish(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	en, ok := r.Get("en")
	if !ok {
		t.Fatal("expected builtin \"en\" locale")
	}
	if got := en.Month(1, FormLong); got != "January" {
		t.Errorf("Month(1) = %q", got)
	}
	if got := en.Month(1, FormShort); got != "Jan." {
		t.Errorf("Month(1, short) = %q", got)
	}
	if got := en.RoleLabel("aut", FormLong, Plural); got != "authors" {
		t.Errorf("RoleLabel(aut, plural) = %q", got)
	}
}

func TestResolvePrefersOverrideThenStyleDefaultThenEnglish(t *testing.T) {
	r, _ := NewRegistry()
	r.Register(&Locale{ID: "fr"})

	loc, err := r.Resolve("", "fr")
	if err != nil || loc.ID != "fr" {
		t.Fatalf("Resolve(style default) = %+v, err=%v", loc, err)
	}
	loc, err = r.Resolve("en", "fr")
	if err != nil || loc.ID != "en" {
		t.Fatalf("Resolve(override) = %+v, err=%v", loc, err)
	}
	loc, err = r.Resolve("", "")
	if err != nil || loc.ID != "en" {
		t.Fatalf("Resolve(fallback) = %+v, err=%v", loc, err)
	}
}

func TestStripSortArticle(t *testing.T) {
	en, _ := NewRegistry()
	loc, _ := en.Get("en")
	if got := loc.StripSortArticle("The Structure of Scientific Revolutions"); got != "Structure of Scientific Revolutions" {
		t.Errorf("StripSortArticle = %q", got)
	}
	if got := loc.StripSortArticle("No Article Here"); got != "No Article Here" {
		t.Errorf("StripSortArticle changed a title with no article: %q", got)
	}
}

func TestNormalizeRoleAndCreatorDetection(t *testing.T) {
	if NormalizeRole("Editor") != "edt" {
		t.Errorf("NormalizeRole(Editor) = %q", NormalizeRole("Editor"))
	}
	if NormalizeRole("relators:trl") != "trl" {
		t.Errorf("NormalizeRole(relators:trl) = %q", NormalizeRole("relators:trl"))
	}
	if NormalizeRole("http://id.loc.gov/vocabulary/relators/pbl") != "pbl" {
		t.Errorf("NormalizeRole(uri) = %q", NormalizeRole("http://id.loc.gov/vocabulary/relators/pbl"))
	}
	if !IsCreatorRole("author") {
		t.Error("author should be a creator role")
	}
	if IsCreatorRole("ctb") {
		t.Error("ctb (plain contributor) should not be a creator role")
	}
}
