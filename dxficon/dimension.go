package dxficon

import (
	"math"
	"strings"
)

// Dimension rendering: measurement computation, tolerance
// formatting and leader geometry, wrapped in a group carrying the
// resolved color, dash pattern and mirror transform.

const (
	dimSubTypeMask  = 7
	dimOrdinateXBit = 64
	dimPlaceholder  = "<>"
)

func (ctx *context) renderDimension(rec Record) (*rendered, error) {
	ds, err := ctx.dimStyleFor(rec)
	if err != nil {
		return nil, err
	}

	var (
		measurement float64
		leader      []Point
		textPt      Point
		r           = &rendered{}
	)
	switch sub := integer(rec, 70, 0) & dimSubTypeMask; sub {
	case 0, 1: // linear, rotated or aligned
		measurement, leader, textPt, err = ctx.linearDimension(rec)
	case 3, 4: // diameter, radius
		measurement, leader, textPt, err = ctx.radialDimension(rec)
	case 6: // ordinate
		measurement, leader, textPt, err = ctx.ordinateDimension(rec)
	case 2, 5: // angular
		ctx.opts.Diagnostic("unsupported angular dimension", rec)
		return nil, nil
	default:
		ctx.opts.Diagnostic("unsupported dimension sub-type", rec)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	spans, err := ctx.dimensionSpans(rec, ds, measurement)
	if err != nil {
		return nil, err
	}
	bad := anyNaN(measurement, textPt.X, textPt.Y)
	for _, p := range leader {
		bad = bad || anyNaN(p.X, p.Y)
	}
	if bad {
		ctx.opts.Diagnostic("incomplete dimension definition points", rec)
		return nil, nil
	}

	group := Group{}
	if len(leader) > 1 {
		group.Children = append(group.Children, Element{
			Shape: Polyline{Points: leader},
		})
		for _, p := range leader {
			r.xs = append(r.xs, p.X)
			r.ys = append(r.ys, p.Y)
		}
	}
	// DIMSCALE applies to every sized dimension feature, here the
	// text height
	group.Children = append(group.Children, Element{
		Fill: ds.textColor,
		Shape: Text{
			X: textPt.X, Y: textPt.Y,
			Size:   sizeOrZero(ds.textHeight) * ds.scale,
			Anchor: "middle",
			Spans:  spans,
		},
	})
	r.xs = append(r.xs, textPt.X)
	r.ys = append(r.ys, textPt.Y)

	r.el = Element{
		ID:     rec.Handle(),
		Stroke: ctx.color(rec),
		Dash:   ctx.dash(rec),
		Shape:  group,
	}
	if err := ctx.applyMirror(rec, r); err != nil {
		return nil, err
	}
	return r, nil
}

func sizeOrZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// point reads an (x, y) pair in rendered space.
func point(rec Record, xCode, yCode int) (Point, error) {
	x, err := number(rec, xCode)
	if err != nil {
		return Point{}, err
	}
	y, err := number(rec, yCode)
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: -y}, nil
}

// linearDimension handles rotated and aligned dimensions: when the
// stored rotation is a multiple of 180 degrees the measurement is
// the X distance between the definition points and the leader is an
// orthogonal step through the dimension line point; otherwise the Y
// distance is measured.
func (ctx *context) linearDimension(rec Record) (float64, []Point, Point, error) {
	p1, err := point(rec, 13, 23)
	if err != nil {
		return 0, nil, Point{}, err
	}
	p2, err := point(rec, 14, 24)
	if err != nil {
		return 0, nil, Point{}, err
	}
	line, err := point(rec, 10, 20)
	if err != nil {
		return 0, nil, Point{}, err
	}
	rot, err := numberDefault(rec, 50, 0)
	if err != nil {
		return 0, nil, Point{}, err
	}

	var (
		measurement float64
		leader      []Point
	)
	if math.Mod(rot, 180) == 0 {
		measurement = math.Abs(p2.X - p1.X)
		leader = []Point{p1, {X: p1.X, Y: line.Y}, {X: p2.X, Y: line.Y}, p2}
	} else {
		measurement = math.Abs(p2.Y - p1.Y)
		leader = []Point{p1, {X: line.X, Y: p1.Y}, {X: line.X, Y: p2.Y}, p2}
	}
	textPt, err := dimensionTextPoint(rec, Point{
		X: (leader[1].X + leader[2].X) / 2,
		Y: (leader[1].Y + leader[2].Y) / 2,
	})
	return measurement, leader, textPt, err
}

// radialDimension handles diameter and radius dimensions: the
// measurement is the distance between the two definition points and
// the leader is the straight segment joining them.
func (ctx *context) radialDimension(rec Record) (float64, []Point, Point, error) {
	center, err := point(rec, 10, 20)
	if err != nil {
		return 0, nil, Point{}, err
	}
	chord, err := point(rec, 15, 25)
	if err != nil {
		return 0, nil, Point{}, err
	}
	measurement := math.Hypot(chord.X-center.X, chord.Y-center.Y)
	textPt, err := dimensionTextPoint(rec, Point{
		X: (center.X + chord.X) / 2,
		Y: (center.Y + chord.Y) / 2,
	})
	return measurement, []Point{center, chord}, textPt, err
}

// ordinateDimension measures along one axis between the origin
// point and the feature point; the leader is L-shaped and the text
// is centered at its free end.
func (ctx *context) ordinateDimension(rec Record) (float64, []Point, Point, error) {
	origin, err := point(rec, 10, 20)
	if err != nil {
		return 0, nil, Point{}, err
	}
	feature, err := point(rec, 13, 23)
	if err != nil {
		return 0, nil, Point{}, err
	}
	end, err := point(rec, 14, 24)
	if err != nil {
		return 0, nil, Point{}, err
	}

	var (
		measurement float64
		leader      []Point
	)
	if integer(rec, 70, 0)&dimOrdinateXBit != 0 {
		measurement = math.Abs(feature.X - origin.X)
		leader = []Point{feature, {X: feature.X, Y: end.Y}, end}
	} else {
		measurement = math.Abs(feature.Y - origin.Y)
		leader = []Point{feature, {X: end.X, Y: feature.Y}, end}
	}
	textPt, err := dimensionTextPoint(rec, end)
	return measurement, leader, textPt, err
}

// dimensionTextPoint prefers the stored text midpoint when present.
func dimensionTextPoint(rec Record, fallback Point) (Point, error) {
	if !rec.Has(11) || !rec.Has(21) {
		return fallback, nil
	}
	p, err := point(rec, 11, 21)
	if err != nil {
		return Point{}, err
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return fallback, nil
	}
	return p, nil
}

// dimensionSpans builds the displayed text: the measured (or
// overridden) value substituted into the stored template, plus the
// tolerance suffix.
func (ctx *context) dimensionSpans(rec Record, ds dimStyle, measurement float64) ([]Span, error) {
	value := ""
	if rec.Has(42) {
		v, err := number(rec, 42)
		if err != nil {
			return nil, err
		}
		if !math.IsNaN(v) {
			value = formatNumber(v, ds.precision)
		}
	}
	if value == "" {
		value = formatNumber(measurement*ds.lengthFactor, ds.precision)
	}

	text := value
	if tpl, ok := rec.Value(1); ok && strings.TrimSpace(tpl) != "" {
		if strings.Contains(tpl, dimPlaceholder) {
			text = strings.Replace(tpl, dimPlaceholder, value, 1)
		} else {
			text = tpl
		}
	}

	spans := []Span{{Text: text}}
	return append(spans, toleranceSpans(ds)...), nil
}

// toleranceSpans renders the tolerance suffix: an equal plus/minus
// collapses to a single ±p, unequal bounds stack +p over -n, and a
// zero bound renders as the bare literal "0".
func toleranceSpans(ds dimStyle) []Span {
	if !ds.tolEnabled {
		return nil
	}
	plus, minus := ds.tolPlus, ds.tolMinus
	if math.IsNaN(plus) {
		plus = 0
	}
	if math.IsNaN(minus) {
		minus = 0
	}
	if plus == 0 && minus == 0 {
		return nil
	}
	if plus == minus {
		return []Span{{Text: "±" + formatNumber(plus, ds.precision)}}
	}
	upper := toleranceBound("+", plus, ds.precision)
	lower := toleranceBound("-", minus, ds.precision)
	wUp, wLow := estWidthEm(upper), estWidthEm(lower)
	return []Span{{Children: []Span{
		{Text: upper, DYEm: -0.35},
		{Text: lower, DYEm: 1, DXEm: -(wUp + wLow) / 2},
	}}}
}

// toleranceBound formats one tolerance value; zero stays a bare "0",
// never "+0" or "-0".
func toleranceBound(sign string, v float64, precision int) string {
	if v == 0 {
		return "0"
	}
	return sign + formatNumber(math.Abs(v), precision)
}
