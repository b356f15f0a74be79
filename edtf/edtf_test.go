package edtf

import "testing"

func TestParseYear(t *testing.T) {
	v := Parse("1962")
	if v.Year != 1962 || v.Precision != PrecisionYear {
		t.Fatalf("Parse(1962) = %+v", v)
	}
}

func TestParseYearMonthDay(t *testing.T) {
	v := Parse("1978-03-15")
	if v.Year != 1978 || v.Month != 3 || v.Day != 15 || v.Precision != PrecisionDay {
		t.Fatalf("Parse(1978-03-15) = %+v", v)
	}
}

func TestParseQualifiers(t *testing.T) {
	cases := map[string]Qualifier{
		"2020?": QualifierUncertain,
		"2020~": QualifierApproximate,
		"2020%": QualifierBoth,
		"2020":  QualifierNone,
	}
	for in, want := range cases {
		if got := Parse(in).Qualifier; got != want {
			t.Errorf("Parse(%q).Qualifier = %v, want %v", in, got, want)
		}
	}
}

func TestParseOpenInterval(t *testing.T) {
	v := Parse("2020/..")
	if !v.IsRange || !v.OpenEnd {
		t.Fatalf("Parse(2020/..) = %+v", v)
	}
	if v.Year != 2020 {
		t.Errorf("start year = %d, want 2020", v.Year)
	}
}

func TestParseClosedInterval(t *testing.T) {
	v := Parse("1978/1980")
	if !v.IsRange || v.Year != 1978 || v.EndYear != 1980 {
		t.Fatalf("Parse(1978/1980) = %+v", v)
	}
}

func TestParseSeason(t *testing.T) {
	v := Parse("2001-21")
	if v.Precision != PrecisionSeason || v.Month != SeasonSpring {
		t.Fatalf("Parse(2001-21) = %+v", v)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{"1962", "1978-03-15", "2020?", "2020/..", "1978/1980", "2001-21"}
	for _, in := range inputs {
		v := Parse(in)
		if got := v.String(); got != in {
			t.Errorf("Parse(%q).String() = %q, want %q", in, got, in)
		}
	}
}
