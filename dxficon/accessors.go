package dxficon

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// coordLimit is the sanity bound on numeric fields: a magnitude
// beyond it signals corrupt input, not a renderable value.
const coordLimit = 1e6

// snapEpsilon absorbs text-encoded floating point noise: values
// this close to an integer are snapped to it.
const snapEpsilon = 1e-8

// InputError reports a numeric field outside the sanity bound.
// It aborts the whole conversion instead of being isolated to one
// entity.
type InputError struct {
	Code  int
	Value string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("dxficon: numeric value %q (group code %d) exceeds the input sanity bound", e.Value, e.Code)
}

// parseNumber parses one raw group value, applying the sanity bound
// and integer snapping. Unparsable input yields NaN without error.
func parseNumber(code int, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN(), nil
	}
	if math.Abs(v) > coordLimit {
		return 0, &InputError{Code: code, Value: raw}
	}
	if r := math.Round(v); math.Abs(v-r) < snapEpsilon {
		v = r
	}
	return v, nil
}

// number returns the first value of the given group code as a
// decimal, or NaN when absent or unparsable.
func number(rec Record, code int) (float64, error) {
	raw, ok := rec.Value(code)
	if !ok {
		return math.NaN(), nil
	}
	return parseNumber(code, raw)
}

// numberDefault is number with an explicit fallback for absent or
// unparsable values.
func numberDefault(rec Record, code int, def float64) (float64, error) {
	v, err := number(rec, code)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) {
		return def, nil
	}
	return v, nil
}

// numbers returns every value of the given group code, in order.
func numbers(rec Record, code int) ([]float64, error) {
	raws := rec.Values(code)
	if raws == nil {
		return nil, nil
	}
	vs := make([]float64, len(raws))
	for i, raw := range raws {
		v, err := parseNumber(code, raw)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

// integer returns the first value of the given group code as an
// int, or def when absent or unparsable.
func integer(rec Record, code int, def int) int {
	raw, ok := rec.Value(code)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}

// round rounds to the given number of decimal places exactly, by
// shifting the decimal exponent in text space. The naive
// multiply/round/divide accumulates binary error for values that
// are exact decimals.
func round(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	e, _ := strconv.Atoi(exp)
	shifted, _ := strconv.ParseFloat(mant+"e"+strconv.Itoa(e+precision), 64)
	shifted = math.Round(shifted)
	out, _ := strconv.ParseFloat(strconv.FormatFloat(shifted, 'f', -1, 64)+"e"+strconv.Itoa(-precision), 64)
	return out
}

// formatNumber renders a rounded value without trailing zeros.
func formatNumber(v float64, precision int) string {
	return strconv.FormatFloat(round(v, precision), 'f', -1, 64)
}
