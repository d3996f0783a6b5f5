package configtree

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flattenMap converts a nested map[string]any to a flat map with dot-notation
// paths. Leaf values keep their decoded type; rendering to the tree's string
// form happens in formatValue.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = value
		}
	}

	return flat
}

// formatValue renders a decoded TOML/YAML/JSON leaf to the string form the
// value parsers read back. Sequences become whitespace-joined tokens, the
// same shape the slice and range parsers expect.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case json.Number:
		return x.String()
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// toNestedMap converts the tree to a nested map[string]any with string
// leaves, the shape the TOML encoder and mapstructure consume.
func (t *Tree) toNestedMap() map[string]any {
	m := make(map[string]any, len(t.values)+len(t.subs))
	for k, v := range t.values {
		m[k] = v
	}
	for k, s := range t.subs {
		m[k] = s.toNestedMap()
	}
	return m
}
