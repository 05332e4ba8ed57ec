package engine

// Finding represents a single normalized security finding produced by a
// scanner. Scanners attach arbitrary keys; the analysis layer relies only on
// the well-known ones below and treats the value as read-only.
type Finding map[string]any

// Well-known finding keys.
const (
	KeyType        = "type"
	KeySeverity    = "severity"
	KeyResourceID  = "resource_id"
	KeyDescription = "description"
)

// StringOr returns the string value stored under key, or fallback when the
// key is absent, empty, or holds a non-string value.
func (f Finding) StringOr(key, fallback string) string {
	if v, ok := f[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
