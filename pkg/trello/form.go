package trello

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// encodeForm encodes a record as an application/x-www-form-urlencoded body.
//
// Keys keep the record's order. Nested records and lists use bracket
// notation (labels[0]=red, prefs[color]=blue), booleans become 1 or 0, and
// nil values are left out.
func encodeForm(r *Record) string {
	var parts []string
	r.Range(func(k string, v any) bool {
		parts = appendFormValue(parts, k, v)
		return true
	})
	return strings.Join(parts, "&")
}

func appendFormValue(parts []string, key string, v any) []string {
	switch val := v.(type) {
	case nil:
		return parts
	case *Record:
		val.Range(func(k string, sub any) bool {
			parts = appendFormValue(parts, key+"["+k+"]", sub)
			return true
		})
		return parts
	case map[string]any:
		for _, k := range sortedKeys(val) {
			parts = appendFormValue(parts, key+"["+k+"]", val[k])
		}
		return parts
	case []any:
		for i, sub := range val {
			parts = appendFormValue(parts, fmt.Sprintf("%s[%d]", key, i), sub)
		}
		return parts
	case []string:
		for i, sub := range val {
			parts = appendFormValue(parts, fmt.Sprintf("%s[%d]", key, i), sub)
		}
		return parts
	case bool:
		if val {
			return append(parts, url.QueryEscape(key)+"=1")
		}
		return append(parts, url.QueryEscape(key)+"=0")
	default:
		return append(parts, url.QueryEscape(key)+"="+url.QueryEscape(formatScalar(val)))
	}
}

// formatScalar renders a number or string the way the API expects it in a
// form body or URL.
func formatScalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
