package locale

import "strings"

// marcRelatorLabels maps each MARC relator code
// (https://id.loc.gov/vocabulary/relators/) to its English label. MARC
// codes are the vocabulary spec.md §3.4 Contributor{role} values are
// normalized against before a locale's Roles table is consulted.
//
// Adapted from the teacher's helpers.MARCRelators/NormalizeRole: the
// code table and alias map are unchanged, but the result here feeds
// locale.Locale.Roles (a per-locale display table) instead of being used
// directly as the display label, since spec.md §6.5 requires roles to
// be locale-specific ("editor" vs "éditeur").
var marcRelatorLabels = map[string]string{
	"aut": "Author",
	"cre": "Creator",
	"edt": "Editor",
	"com": "Compiler",
	"trl": "Translator",
	"ill": "Illustrator",
	"pht": "Photographer",
	"art": "Artist",
	"cmp": "Composer",

	"ctb": "Contributor",
	"aui": "Author of introduction",
	"aft": "Author of afterword",
	"ann": "Annotator",
	"cmm": "Commentator",
	"wpr": "Writer of preface",
	"wam": "Writer of accompanying material",

	"ths": "Thesis advisor",
	"dgs": "Degree supervisor",
	"dgc": "Degree committee member",
	"opn": "Opponent",

	"pbl": "Publisher",
	"dst": "Distributor",
	"bkd": "Book designer",
	"bkp": "Book producer",
	"prt": "Printer",
	"tyg": "Typographer",

	"res": "Researcher",
	"fnd": "Funder",
	"spn": "Sponsor",
	"his": "Host institution",

	"dtc": "Data contributor",
	"dtm": "Data manager",
	"prg": "Programmer",

	"prf": "Performer",
	"act": "Actor",
	"nrt": "Narrator",
	"sng": "Singer",
	"cnd": "Conductor",
	"drt": "Director",
	"pro": "Producer",

	"org": "Originator",
	"isb": "Issuing body",
	"cph": "Copyright holder",
	"oth": "Other",

	"col": "Collector",
	"cur": "Curator",
	"own": "Owner",
	"dnr": "Donor",
}

var roleAliases = map[string]string{
	"author":           "aut",
	"authors":          "aut",
	"creator":          "cre",
	"creators":         "cre",
	"editor":           "edt",
	"editors":          "edt",
	"translator":       "trl",
	"contributor":      "ctb",
	"photographer":     "pht",
	"illustrator":      "ill",
	"advisor":          "ths",
	"thesis advisor":   "ths",
	"committee":        "dgc",
	"committee member": "dgc",
	"publisher":        "pbl",
	"funder":           "fnd",
	"sponsor":          "spn",
}

// RelatorCodeFromURI extracts a MARC code from a bare code, a
// "relators:xxx" URN, or a full id.loc.gov URI.
func RelatorCodeFromURI(uri string) string {
	if strings.HasPrefix(uri, "relators:") {
		return strings.TrimPrefix(uri, "relators:")
	}
	if strings.Contains(uri, "relators/") {
		parts := strings.SplitN(uri, "relators/", 2)
		if len(parts) > 1 {
			return strings.TrimSuffix(parts[1], "/")
		}
	}
	return uri
}

// NormalizeRole reduces a role given as a MARC code, URI, or plain-text
// label (in any case) to its canonical lowercase MARC code, so that
// style templates and locale role tables can be keyed consistently.
func NormalizeRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return ""
	}
	code := strings.ToLower(RelatorCodeFromURI(role))
	if _, ok := marcRelatorLabels[code]; ok {
		return code
	}
	lowerRole := strings.ToLower(role)
	for c, label := range marcRelatorLabels {
		if strings.ToLower(label) == lowerRole {
			return c
		}
	}
	if normalized, ok := roleAliases[lowerRole]; ok {
		return normalized
	}
	return lowerRole
}

// IsCreatorRole reports whether role denotes a primary-creator role
// (author, editor, translator, ...) as opposed to a secondary
// contributor role. The disambiguator uses this to pick the
// contributors whose family names form its collision key.
func IsCreatorRole(role string) bool {
	switch NormalizeRole(role) {
	case "aut", "cre", "edt", "com", "trl", "ill", "pht", "art", "cmp":
		return true
	default:
		return false
	}
}

// DefaultRoleLabel returns the English fallback label for a MARC code
// (or the code as given when it is not in the table), used by
// Locale.RoleLabel when a locale's Roles table has no label for a role
// (spec.md §6.5 locales "may" supply roles; a built-in English fallback
// keeps rendering total).
func DefaultRoleLabel(code string) string {
	if label, ok := marcRelatorLabels[NormalizeRole(code)]; ok {
		return label
	}
	return code
}
