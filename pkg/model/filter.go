package model

import "strings"

// FilterRecords keeps records whose host or target gene name equals the
// query exactly, ignoring case and surrounding whitespace. A blank query
// returns records unchanged. Order is preserved.
func FilterRecords(records []Record, query string) []Record {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	matched := make([]Record, 0, 8)
	for _, r := range records {
		if strings.ToUpper(r.HostGeneName) == q || strings.ToUpper(r.TargetGeneName) == q {
			matched = append(matched, r)
		}
	}
	return matched
}
