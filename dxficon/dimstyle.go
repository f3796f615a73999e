package dxficon

import (
	"math"
	"strconv"
	"strings"
)

// Dimension style resolution. Every display variable cascades
// through four levels: per-entity extended data override, matching
// DIMSTYLE table entry, header default, built-in default.

// dimension style variable numbers (shared by the DIMSTYLE table,
// the $DIM* header variables and extended-data overrides)
const (
	dimVarScale     = 40  // DIMSCALE
	dimVarTolPlus   = 47  // DIMTP
	dimVarTolMinus  = 48  // DIMTM
	dimVarTolerance = 71  // DIMTOL
	dimVarTextSize  = 140 // DIMTXT
	dimVarLenFactor = 144 // DIMLFAC
	dimVarTextColor = 178 // DIMCLRT
	dimVarPrecision = 271 // DIMDEC
)

var dimHeaderVars = map[int]string{
	dimVarScale:     "$DIMSCALE",
	dimVarTolPlus:   "$DIMTP",
	dimVarTolMinus:  "$DIMTM",
	dimVarTolerance: "$DIMTOL",
	dimVarTextSize:  "$DIMTXT",
	dimVarLenFactor: "$DIMLFAC",
	dimVarTextColor: "$DIMCLRT",
	dimVarPrecision: "$DIMDEC",
}

type dimStyle struct {
	scale        float64
	tolPlus      float64
	tolMinus     float64
	tolEnabled   bool
	textHeight   float64
	lengthFactor float64
	textColor    Color
	precision    int
}

// xdataOverrides extracts the per-entity override block: an
// application marker (1001) followed by an open group (1002 "{"),
// then variable-number/value pairs until the close group.
func xdataOverrides(rec Record) map[int]string {
	var out map[int]string
	for i := 0; i < len(rec); i++ {
		if rec[i].Code != 1001 {
			continue
		}
		if i+1 >= len(rec) || rec[i+1].Code != 1002 || strings.TrimSpace(rec[i+1].Value) != "{" {
			continue
		}
		key := -1
		for j := i + 2; j < len(rec); j++ {
			t := rec[j]
			if t.Code == 1002 && strings.TrimSpace(t.Value) == "}" {
				break
			}
			if key < 0 {
				if t.Code == 1070 {
					key = atoiDefault(t.Value, -1)
				}
				continue
			}
			if out == nil {
				out = make(map[int]string)
			}
			out[key] = t.Value
			key = -1
		}
	}
	return out
}

func atoiDefault(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// dimStyleFor resolves the eight display variables for one
// dimension record.
func (ctx *context) dimStyleFor(rec Record) (dimStyle, error) {
	over := xdataOverrides(rec)

	var table Record
	if name := strings.ToUpper(rec.str(3)); name != "" {
		for _, entry := range ctx.doc.DimStyles {
			if strings.ToUpper(entry.str(2)) == name {
				table = entry
				break
			}
		}
	}

	resolve := func(code int) (string, bool) {
		if v, ok := over[code]; ok {
			return v, true
		}
		if table != nil {
			if v, ok := table.Value(code); ok {
				return v, true
			}
		}
		if hv := ctx.doc.headerVar(dimHeaderVars[code]); hv != nil && len(hv) > 0 {
			return hv[0].Value, true
		}
		return "", false
	}

	num := func(code int, def float64) (float64, error) {
		raw, ok := resolve(code)
		if !ok {
			return def, nil
		}
		v, err := parseNumber(code, raw)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(v) {
			return def, nil
		}
		return v, nil
	}

	ds := dimStyle{
		tolPlus:    math.NaN(),
		tolMinus:   math.NaN(),
		textHeight: math.NaN(),
		textColor:  Inherited,
		precision:  4,
	}
	var err error
	if ds.scale, err = num(dimVarScale, 1); err != nil {
		return ds, err
	}
	if ds.tolPlus, err = num(dimVarTolPlus, math.NaN()); err != nil {
		return ds, err
	}
	if ds.tolMinus, err = num(dimVarTolMinus, math.NaN()); err != nil {
		return ds, err
	}
	if ds.textHeight, err = num(dimVarTextSize, math.NaN()); err != nil {
		return ds, err
	}
	if ds.lengthFactor, err = num(dimVarLenFactor, 1); err != nil {
		return ds, err
	}
	if raw, ok := resolve(dimVarTolerance); ok {
		ds.tolEnabled = atoiDefault(raw, 0) != 0
	}
	if raw, ok := resolve(dimVarTextColor); ok {
		if idx := atoiDefault(raw, -1); idx >= 0 {
			ds.textColor = ctx.opts.Palette(idx)
		}
	}
	if raw, ok := resolve(dimVarPrecision); ok {
		if p := atoiDefault(raw, -1); p >= 0 {
			ds.precision = p
		}
	}
	return ds, nil
}
