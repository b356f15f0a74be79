package style

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// knownTopLevelFields lets Load recover unrecognized top-level keys into
// Style.Extra (spec.md §6.1 "_extra catch-all").
var knownTopLevelFields = map[string]bool{
	"info": true, "options": true, "templates": true,
	"citation": true, "bibliography": true, "grouping": true,
}

// Load reads and validates a style document from path.
//
// Grounded on the teacher's mapping.LoadProfile: read file, unmarshal
// YAML, return a wrapped error. Validation is new: the teacher's
// Profile had no schema-validation pass, but spec.md §7 requires style
// files to surface "schema errors", so this wires
// github.com/go-playground/validator/v10 over the struct tags declared
// on Style/Options/Component (spec.md §4.10 domain stack).
func Load(path string) (*Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading style file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a style document already in memory.
func Parse(data []byte) (*Style, error) {
	var s Style
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing style: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err == nil {
		for k, v := range raw {
			if !knownTopLevelFields[k] {
				s.Extra = s.Extra.Set(k, v)
			}
		}
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate runs schema validation over a decoded style, surfacing every
// violation rather than stopping at the first (spec.md §7 "Kinds" lists
// validation errors as a collectable diagnostic class, not a single
// fail-fast error).
func Validate(s *Style) error {
	if err := validate.Struct(s); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("validating style: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q constraint", fe.Namespace(), fe.Tag()))
		}
		return &ValidationError{Violations: msgs}
	}
	if s.Options.ProcessingMode == ModeCustom && s.Options.Custom == nil {
		return &ValidationError{Violations: []string{
			"options: processing_mode \"custom\" requires options.custom",
		}}
	}
	return nil
}

// ValidationError collects every schema violation found in a style
// document (spec.md §6.4 "validate ... reports schema errors").
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("invalid style: %s", e.Violations[0])
	}
	return fmt.Sprintf("invalid style: %d violations (first: %s)", len(e.Violations), e.Violations[0])
}
