package model

import (
	"math/big"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// PValue looks up a single symbol, case-insensitively.
func PValue(symbol byte) float64 {
	if symbol >= 'a' && symbol <= 'z' {
		symbol -= 'a' - 'A'
	}
	if v, ok := P_VALUES[symbol]; ok {
		return v
	}
	return RESIDUE
}

// MapSignal converts a sequence into one point per character. Smoothed is
// left empty; see BuildSignal. A byte that is not valid UTF-8 becomes its
// own point with the byte kept as the symbol.
func MapSignal(sequence string) []SignalPoint {
	points := make([]SignalPoint, 0, len(sequence))
	for i := 0; i < len(sequence); {
		ch, size := utf8.DecodeRuneInString(sequence[i:])
		symbol := sequence[i : i+size]
		value := RESIDUE
		if !(ch == utf8.RuneError && size == 1) {
			ch = unicode.ToUpper(ch)
			symbol = string(ch)
			if ch < utf8.RuneSelf {
				value = PValue(byte(ch))
			}
		}
		points = append(points, SignalPoint{
			Position: len(points) + 1,
			Symbol:   symbol,
			RawValue: value,
		})
		i += size
	}
	return points
}

// RollingMean is a trailing simple moving average. out[i] is nil until the
// window has w values, then the mean of values[i-w+1..i] rounded to two
// decimals. The result lags the input by (w-1)/2 positions.
func RollingMean(values []float64, w int) []*float64 {
	if w < 1 {
		w = 1
	}

	out := make([]*float64, len(values))
	for i := w - 1; i < len(values); i++ {
		// Summed per window, not as a running total, so float drift
		// never shifts the rounded value.
		var sum float64
		for _, x := range values[i-w+1 : i+1] {
			sum += x
		}
		mean := round2(sum / float64(w))
		out[i] = &mean
	}
	return out
}

// BuildSignal maps a sequence and attaches its rolling mean.
func BuildSignal(sequence string, w int) []SignalPoint {
	points := MapSignal(sequence)

	raw := make([]float64, len(points))
	for i, p := range points {
		raw[i] = p.RawValue
	}

	for i, m := range RollingMean(raw, w) {
		points[i].Smoothed = m
	}
	return points
}

// round2 rounds the exact binary value of x to two decimals, halves away
// from zero. 1.005 is stored as 1.00499... and so becomes 1.00.
func round2(x float64) float64 {
	r := new(big.Rat).SetFloat64(x)
	if r == nil {
		return x // NaN or Inf
	}
	v, err := strconv.ParseFloat(r.FloatString(2), 64)
	if err != nil {
		return x
	}
	return v
}
