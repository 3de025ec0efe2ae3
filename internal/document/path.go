package document

import "strings"

// Get navigates a dot-separated path and returns the value at the leaf.
// A missing segment, or an intermediate value that is not a mapping,
// returns (nil, false).
func Get(d Document, path string) (any, bool) {
	segments := strings.Split(path, ".")
	var current any = map[string]any(d)
	for _, seg := range segments {
		m, ok := AsMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set writes value at a dot-separated path, creating intermediate mappings
// along the way. An intermediate that exists but is not a mapping is
// replaced by one.
func Set(d Document, path string, value any) {
	segments := strings.Split(path, ".")
	current := map[string]any(d)
	for _, seg := range segments[:len(segments)-1] {
		next, ok := AsMap(current[seg])
		if !ok {
			next = map[string]any{}
			current[seg] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

// Unset removes the leaf at a dot-separated path. It reports whether a value
// was actually removed; intermediate mappings are left in place.
func Unset(d Document, path string) bool {
	segments := strings.Split(path, ".")
	current := map[string]any(d)
	for _, seg := range segments[:len(segments)-1] {
		next, ok := AsMap(current[seg])
		if !ok {
			return false
		}
		current = next
	}
	leaf := segments[len(segments)-1]
	if _, ok := current[leaf]; !ok {
		return false
	}
	delete(current, leaf)
	return true
}
