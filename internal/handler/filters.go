package handler

import "strconv"

// queryFilters converts query parameters into a repository filter map.
// Keys listed in intKeys are converted to integers so they compare
// equal against the numeric record fields; unparsable values are kept
// as strings, which simply never match.
func queryFilters(params map[string][]string, intKeys ...string) map[string]any {
	numeric := make(map[string]bool, len(intKeys))
	for _, k := range intKeys {
		numeric[k] = true
	}

	filters := make(map[string]any, len(params))
	for key, values := range params {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		if numeric[key] {
			if n, err := strconv.Atoi(value); err == nil {
				filters[key] = n
				continue
			}
		}
		filters[key] = value
	}
	return filters
}
