package sandbox

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// boolFields are stored as JSON booleans rather than strings.
var boolFields = map[string]bool{
	"active":      true,
	"closed":      true,
	"dueComplete": true,
	"pinned":      true,
	"subscribed":  true,
}

// parseFields reads a form-encoded body into a document. Bracketed keys
// become nested objects (prefs[color]) or lists (idLabels[0]).
func parseFields(r *http.Request) (Document, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	doc := Document{}
	for key, values := range r.PostForm {
		if len(values) == 0 {
			continue
		}
		path := splitKey(key)
		setPath(doc, path, coerce(path[0], values[len(values)-1]))
	}
	for k, v := range doc {
		doc[k] = listify(v)
	}
	return doc, nil
}

// splitKey splits "a[b][c]" into ["a", "b", "c"].
func splitKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}
	parts := []string{key[:open]}
	rest := strings.TrimSuffix(key[open+1:], "]")
	return append(parts, strings.Split(rest, "][")...)
}

func setPath(doc map[string]any, path []string, value any) {
	for _, p := range path[:len(path)-1] {
		next, ok := doc[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			doc[p] = next
		}
		doc = next
	}
	doc[path[len(path)-1]] = value
}

// listify turns maps keyed 0..n-1 into lists, recursively.
func listify(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for k, sub := range m {
		m[k] = listify(sub)
	}

	indexes := make([]int, 0, len(m))
	for k := range m {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			return m
		}
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for want, got := range indexes {
		if want != got {
			return m
		}
	}

	list := make([]any, len(indexes))
	for _, i := range indexes {
		list[i] = m[strconv.Itoa(i)]
	}
	return list
}

func coerce(field, value string) any {
	if boolFields[field] {
		return value == "1" || value == "true"
	}
	return value
}
