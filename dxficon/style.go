package dxficon

import (
	"math"
	"strings"
)

// Cascading layer / linetype resolution. The lookup maps are built
// once per top-level invocation and never mutated afterwards, so
// recursive block expansion can share them safely.

const (
	codeLayerName    = 8
	codeColorIndex   = 62
	codeLineTypeName = 6
	codeExtrusionZ   = 230

	// color index sentinels
	colorByBlock = 0
	colorByLayer = 256
)

type layerStyle struct {
	color    Color
	lineType string
}

// context carries the per-invocation state threaded through every
// interpreter call: the immutable lookups, the options, and the
// color inherited from an enclosing block instance.
type context struct {
	doc  *Document
	opts *Options

	layers map[string]layerStyle
	dashes map[string][]float64

	inherited Color // instance-level default, Inherited at top level
	depth     int   // block nesting depth
}

func newContext(doc *Document, opts *Options) (*context, error) {
	ctx := &context{
		doc:       doc,
		opts:      opts,
		layers:    make(map[string]layerStyle),
		dashes:    make(map[string][]float64),
		inherited: Inherited,
	}
	for _, rec := range doc.LineTypes {
		name := strings.ToUpper(rec.str(2))
		if name == "" {
			continue
		}
		raw, err := numbers(rec, 49)
		if err != nil {
			return nil, err
		}
		ctx.dashes[name] = normalizeDash(raw)
	}
	for _, rec := range doc.Layers {
		name := rec.str(2)
		if name == "" {
			continue
		}
		ls := layerStyle{lineType: strings.ToUpper(rec.str(6))}
		if idx := integer(rec, codeColorIndex, -1); idx >= 0 {
			ls.color = ctx.opts.Palette(idx)
		}
		ctx.layers[name] = ls
	}
	return ctx, nil
}

// fork returns the context used for a nested block expansion, with
// the instance color as the new inheritable default. The lookup
// maps are shared, read-only.
func (ctx *context) fork(inherited Color) *context {
	nested := *ctx
	if !inherited.IsNone() && !inherited.IsInherit() {
		nested.inherited = inherited
	}
	nested.depth++
	return &nested
}

// color resolves the stroke color of an entity: an explicit color
// index wins unless it is the by-block or by-layer sentinel, then
// the owning layer, then the inherited default.
func (ctx *context) color(rec Record) Color {
	idx := integer(rec, codeColorIndex, colorByLayer)
	if idx != colorByBlock && idx != colorByLayer {
		return ctx.opts.Palette(idx)
	}
	if idx == colorByLayer {
		if ls, ok := ctx.layers[rec.str(codeLayerName)]; ok && !ls.color.IsNone() {
			return ls.color
		}
	}
	return ctx.inherited
}

// dash resolves the dash pattern: the entity's explicit linetype
// name overrides the owning layer's.
func (ctx *context) dash(rec Record) []float64 {
	name := strings.ToUpper(rec.str(codeLineTypeName))
	if name == "" || name == "BYLAYER" {
		if ls, ok := ctx.layers[rec.str(codeLayerName)]; ok {
			name = ls.lineType
		}
	}
	if name == "" || name == "BYBLOCK" || name == "CONTINUOUS" {
		return nil
	}
	return ctx.dashes[name]
}

// mirror reports whether the entity's extrusion normal points
// backwards (Z within 1/64 of -1), the 2D convention for
// horizontally mirrored geometry.
func (ctx *context) mirror(rec Record) (bool, error) {
	z, err := numberDefault(rec, codeExtrusionZ, 1)
	if err != nil {
		return false, err
	}
	return math.Abs(z+1) < 1.0/64, nil
}

// normalizeDash maps a raw linetype pattern (signed segment
// lengths) to alternating on/off lengths. An odd raw pattern is
// kept as-is; an even pattern that starts with a gap (leading zero)
// is rotated so the result still alternates on/off.
func normalizeDash(raw []float64) []float64 {
	if len(raw) == 0 {
		return nil
	}
	dash := make([]float64, len(raw))
	for i, v := range raw {
		dash[i] = math.Abs(v)
	}
	if len(dash)%2 == 0 && dash[0] == 0 {
		dash = append(dash[1:], 0)
	}
	return dash
}
