package pipeline

import (
	"net/url"
	"slices"
	"strings"
)

// setFormValue stores value under a possibly bracketed key:
//
//	a=1          {"a": "1"}
//	a=1&a=2      {"a": ["1", "2"]}
//	a[]=1        {"a": ["1"]}
//	a[b][c]=1    {"a": {"b": {"c": "1"}}}
//	a[][b]=1     {"a": [{"b": "1"}]}
//
// When a key is used with conflicting shapes the later value wins.
func setFormValue(root map[string]any, key, value string) {
	path := splitFormKey(key)
	setPath(root, path, value)
}

func setPath(m map[string]any, path []string, value string) {
	key := path[0]
	rest := path[1:]

	if len(rest) == 0 {
		switch existing := m[key].(type) {
		case nil:
			m[key] = value
		case []any:
			m[key] = append(existing, value)
		case string:
			m[key] = []any{existing, value}
		default:
			m[key] = value
		}
		return
	}

	if rest[0] == "" {
		list, _ := m[key].([]any)
		if s, ok := m[key].(string); ok {
			list = []any{s}
		}
		if len(rest) == 1 {
			m[key] = append(list, value)
			return
		}
		child := map[string]any{}
		setPath(child, rest[1:], value)
		m[key] = append(list, child)
		return
	}

	child, ok := m[key].(map[string]any)
	if !ok {
		child = map[string]any{}
		m[key] = child
	}
	setPath(child, rest, value)
}

// splitFormKey splits "a[b][]" into ["a", "b", ""]. Keys that are not well
// formed bracket expressions are used verbatim.
func splitFormKey(key string) []string {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return []string{key}
	}

	path := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return []string{key}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []string{key}
		}
		segment := rest[1:end]
		if strings.ContainsAny(segment, "[") {
			return []string{key}
		}
		path = append(path, segment)
		rest = rest[end+1:]
	}
	return path
}

func sortedKeys(values url.Values) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
