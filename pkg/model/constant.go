package model

import "sort"

const (
	ITEMS_PER_PAGE = 5

	// Fallback for symbols missing from P_VALUES (X, B, Z, *, gaps...).
	RESIDUE = 5.0

	DEFAULT_WINDOW_SIZE = 5
	MIN_WINDOW_SIZE     = 1
	MAX_WINDOW_SIZE     = 20
)

// Isoelectric points per amino acid. Read-only after init.
var P_VALUES = map[byte]float64{
	'A': 6.11, 'R': 10.76, 'N': 5.4, 'D': 2.98, 'C': 5.15,
	'E': 3.08, 'Q': 5.65, 'G': 6.06, 'H': 7.64, 'I': 6.04,
	'L': 6.04, 'K': 9.47, 'M': 5.71, 'F': 5.76, 'P': 6.30,
	'S': 5.70, 'T': 5.60, 'W': 5.88, 'Y': 5.63, 'V': 6.02,
}

// PValueEntry is one row of the legend table.
type PValueEntry struct {
	Symbol string  `json:"amino_acid"`
	Value  float64 `json:"p_value"`
}

// PValueTable returns a copy of P_VALUES sorted by symbol.
func PValueTable() []PValueEntry {
	out := make([]PValueEntry, 0, len(P_VALUES))
	for k, v := range P_VALUES {
		out = append(out, PValueEntry{Symbol: string(k), Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// ClampWindow keeps a user supplied window size inside the slider range.
func ClampWindow(w int) int {
	if w < MIN_WINDOW_SIZE {
		return MIN_WINDOW_SIZE
	}
	if w > MAX_WINDOW_SIZE {
		return MAX_WINDOW_SIZE
	}
	return w
}
