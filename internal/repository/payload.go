package repository

import (
	"encoding/json"
	"reflect"
	"strconv"
	"time"
)

// Repositories accept create/update payloads and search filters as
// JSON objects (map[string]any) rather than typed patch structs. This
// keeps partial-update merges and filter matching independent of which
// fields a caller chose to send, and lets numeric fields be coerced
// the way clients actually submit them.

func nowStamp() string {
	return time.Now().Format(time.RFC3339)
}

// coerceInt converts a payload value to int. JSON numbers arrive as
// float64 and are truncated; numeric strings are accepted.
func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// recordToMap renders a typed record as its JSON object form for
// filter matching.
func recordToMap(record any) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeValue round-trips a filter value through JSON so that e.g.
// int filters compare equal to the float64 values json produces.
func normalizeValue(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

// matchesFilters applies exact-match AND semantics: every filter key
// must exist in the record with an equal value. A key absent from the
// record is a non-match, not an ignored filter.
func matchesFilters(record map[string]any, filters map[string]any) bool {
	for key, want := range filters {
		got, ok := record[key]
		if !ok || !reflect.DeepEqual(got, normalizeValue(want)) {
			return false
		}
	}
	return true
}

// nonEmptyString reports whether v is a string with non-whitespace
// content.
func nonEmptyString(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
