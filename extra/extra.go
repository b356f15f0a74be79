// Package extra provides the small "_extra" catch-all bag shared by the
// Style and Reference loaders so that unknown top-level fields in a
// source document survive a decode instead of being silently dropped
// (spec.md §6.1). The locale loader does not keep unknown fields.
//
// Grounded on the teacher's schema.DynamicEntity, which keeps
// known-vs-unknown fields apart by lazily decoding only the fields a
// registered schema names and leaving the rest as raw JSON. Bag is the
// same idea reduced to its essentials: a plain map capturing whatever a
// model's UnmarshalYAML/UnmarshalJSON didn't consume.
package extra

// Bag holds fields a decoder did not recognize, keyed by their original
// name. Values are whatever the decoder produced (string, []any,
// map[string]any, ...).
type Bag map[string]any

// Get returns a field's raw value.
func (b Bag) Get(key string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b[key]
	return v, ok
}

// Set stores a field's raw value, initializing the bag if necessary.
// Returns the (possibly newly allocated) bag.
func (b Bag) Set(key string, v any) Bag {
	if b == nil {
		b = Bag{}
	}
	b[key] = v
	return b
}
