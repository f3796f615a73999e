package dxficon

import (
	"math"
)

// One interpreter per record type: geometry plus resolved style in,
// a rendered primitive and its contributing coordinates out. A nil
// result (without error) means the entity draws nothing.

// rendered is the outcome of one interpreter: the element plus the
// finite coordinates it contributes to the bounding box, already in
// rendered (y-down) space.
type rendered struct {
	el     Element
	xs, ys []float64
}

// applyMirror wraps back-facing geometry in a horizontal mirror and
// keeps the contributed extents consistent with it.
func (ctx *context) applyMirror(rec Record, r *rendered) error {
	if r == nil {
		return nil
	}
	mirrored, err := ctx.mirror(rec)
	if err != nil {
		return err
	}
	if !mirrored {
		return nil
	}
	r.el.Transform = append([]TransformOp{ScaleBy{X: -1, Y: 1}}, r.el.Transform...)
	for i := range r.xs {
		r.xs[i] = -r.xs[i]
	}
	return nil
}

// anyNaN reports whether a required coordinate group was absent or
// unparsable.
func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func (ctx *context) strokeElement(rec Record) Element {
	return Element{
		ID:     rec.Handle(),
		Stroke: ctx.color(rec),
		Dash:   ctx.dash(rec),
	}
}

func (ctx *context) renderLine(rec Record) (*rendered, error) {
	x1, err := number(rec, 10)
	if err != nil {
		return nil, err
	}
	y1, err := number(rec, 20)
	if err != nil {
		return nil, err
	}
	x2, err := number(rec, 11)
	if err != nil {
		return nil, err
	}
	y2, err := number(rec, 21)
	if err != nil {
		return nil, err
	}
	if anyNaN(x1, y1, x2, y2) {
		ctx.opts.Diagnostic("incomplete LINE coordinates", rec)
		return nil, nil
	}
	el := ctx.strokeElement(rec)
	el.Shape = Segment{X1: x1, Y1: -y1, X2: x2, Y2: -y2}
	r := &rendered{el: el, xs: []float64{x1, x2}, ys: []float64{-y1, -y2}}
	if err := ctx.applyMirror(rec, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (ctx *context) renderCircle(rec Record) (*rendered, error) {
	cx, err := number(rec, 10)
	if err != nil {
		return nil, err
	}
	cy, err := number(rec, 20)
	if err != nil {
		return nil, err
	}
	radius, err := number(rec, 40)
	if err != nil {
		return nil, err
	}
	if anyNaN(cx, cy, radius) {
		ctx.opts.Diagnostic("incomplete CIRCLE coordinates", rec)
		return nil, nil
	}
	el := ctx.strokeElement(rec)
	el.Shape = Circle{CX: cx, CY: -cy, R: radius}
	r := &rendered{
		el: el,
		xs: []float64{cx - radius, cx + radius},
		ys: []float64{-cy - radius, -cy + radius},
	}
	if err := ctx.applyMirror(rec, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (ctx *context) renderArc(rec Record) (*rendered, error) {
	cx, err := number(rec, 10)
	if err != nil {
		return nil, err
	}
	cy, err := number(rec, 20)
	if err != nil {
		return nil, err
	}
	radius, err := number(rec, 40)
	if err != nil {
		return nil, err
	}
	start, err := numberDefault(rec, 50, 0)
	if err != nil {
		return nil, err
	}
	end, err := numberDefault(rec, 51, 360)
	if err != nil {
		return nil, err
	}
	if anyNaN(cx, cy, radius) {
		ctx.opts.Diagnostic("incomplete ARC coordinates", rec)
		return nil, nil
	}

	sweep := math.Mod(end-start, 360)
	if sweep <= 0 {
		sweep += 360
	}
	el := ctx.strokeElement(rec)
	if sweep == 360 {
		// coincident endpoints make the arc parameterization
		// degenerate; a full turn is a circle
		el.Shape = Circle{CX: cx, CY: -cy, R: radius}
	} else {
		x1 := cx + radius*math.Cos(start*deg2rad)
		y1 := cy + radius*math.Sin(start*deg2rad)
		x2 := cx + radius*math.Cos(end*deg2rad)
		y2 := cy + radius*math.Sin(end*deg2rad)
		el.Shape = PathShape{Ops: []PathOp{
			MoveTo{X: x1, Y: -y1},
			ArcTo{RX: radius, RY: radius, LargeArc: sweep > 180, X: x2, Y: -y2},
		}}
	}
	// extents use the full circle: cheap and safe for any sweep
	r := &rendered{
		el: el,
		xs: []float64{cx - radius, cx + radius},
		ys: []float64{-cy - radius, -cy + radius},
	}
	if err := ctx.applyMirror(rec, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (ctx *context) renderEllipse(rec Record) (*rendered, error) {
	start, err := numberDefault(rec, 41, 0)
	if err != nil {
		return nil, err
	}
	end, err := numberDefault(rec, 42, 2*math.Pi)
	if err != nil {
		return nil, err
	}
	if math.Abs(end-start) < 2*math.Pi-1e-9 {
		ctx.opts.Diagnostic("unsupported partial ellipse sweep", rec)
		return nil, nil
	}
	cx, err := number(rec, 10)
	if err != nil {
		return nil, err
	}
	cy, err := number(rec, 20)
	if err != nil {
		return nil, err
	}
	mx, err := numberDefault(rec, 11, 0)
	if err != nil {
		return nil, err
	}
	my, err := numberDefault(rec, 21, 0)
	if err != nil {
		return nil, err
	}
	ratio, err := numberDefault(rec, 40, 1)
	if err != nil {
		return nil, err
	}
	if anyNaN(cx, cy) {
		ctx.opts.Diagnostic("incomplete ELLIPSE coordinates", rec)
		return nil, nil
	}

	rx := math.Hypot(mx, my)
	ry := rx * ratio
	el := ctx.strokeElement(rec)
	el.Shape = Ellipse{CX: cx, CY: -cy, RX: rx, RY: ry}
	if rot := math.Atan2(my, mx) / deg2rad; rot != 0 {
		el.Transform = []TransformOp{RotateBy{Deg: -rot, CX: cx, CY: -cy}}
	}
	// axis-aligned extents: rotation is not applied to reported
	// extents, matching the block instancing approximation
	r := &rendered{
		el: el,
		xs: []float64{cx - rx, cx + rx},
		ys: []float64{-cy - ry, -cy + ry},
	}
	if err := ctx.applyMirror(rec, r); err != nil {
		return nil, err
	}
	return r, nil
}

// polylinePoints renders an ordered vertex list.
func (ctx *context) polylinePoints(rec Record, pts []Point, closed bool) (*rendered, error) {
	if len(pts) == 0 {
		return nil, nil
	}
	for _, p := range pts {
		if anyNaN(p.X, p.Y) {
			ctx.opts.Diagnostic("incomplete polyline vertex", rec)
			return nil, nil
		}
	}
	el := ctx.strokeElement(rec)
	if closed {
		el.Fill = el.Stroke
		el.Stroke = Color{}
	}
	el.Shape = Polyline{Points: pts, Closed: closed}
	r := &rendered{el: el}
	for _, p := range pts {
		r.xs = append(r.xs, p.X)
		r.ys = append(r.ys, p.Y)
	}
	if err := ctx.applyMirror(rec, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (ctx *context) renderLWPolyline(rec Record) (*rendered, error) {
	xs, err := numbers(rec, 10)
	if err != nil {
		return nil, err
	}
	ys, err := numbers(rec, 20)
	if err != nil {
		return nil, err
	}
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, Point{X: xs[i], Y: -ys[i]})
	}
	closed := integer(rec, 70, 0)&1 != 0
	return ctx.polylinePoints(rec, pts, closed)
}

func (ctx *context) renderPolyline(rec Record, vertices []Record) (*rendered, error) {
	pts := make([]Point, 0, len(vertices))
	for _, v := range vertices {
		x, err := number(v, 10)
		if err != nil {
			return nil, err
		}
		y, err := number(v, 20)
		if err != nil {
			return nil, err
		}
		pts = append(pts, Point{X: x, Y: -y})
	}
	closed := integer(rec, 70, 0)&1 != 0
	return ctx.polylinePoints(rec, pts, closed)
}

func (ctx *context) renderLeader(rec Record) (*rendered, error) {
	xs, err := numbers(rec, 10)
	if err != nil {
		return nil, err
	}
	ys, err := numbers(rec, 20)
	if err != nil {
		return nil, err
	}
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, Point{X: xs[i], Y: -ys[i]})
	}
	// leaders are never filled
	return ctx.polylinePoints(rec, pts, false)
}

func (ctx *context) renderSolid(rec Record) (*rendered, error) {
	var pts []Point
	for i := 0; i < 4; i++ {
		if !rec.Has(10 + i) {
			break
		}
		x, err := number(rec, 10+i)
		if err != nil {
			return nil, err
		}
		y, err := number(rec, 20+i)
		if err != nil {
			return nil, err
		}
		if anyNaN(x, y) {
			ctx.opts.Diagnostic("incomplete SOLID coordinates", rec)
			return nil, nil
		}
		pts = append(pts, Point{X: x, Y: -y})
	}
	if len(pts) == 4 && pts[3] == pts[2] {
		pts = pts[:3]
	}
	if len(pts) < 3 {
		return nil, nil
	}
	el := Element{ID: rec.Handle(), Fill: ctx.color(rec)}
	el.Shape = Polyline{Points: pts, Closed: true}
	r := &rendered{el: el}
	for _, p := range pts {
		r.xs = append(r.xs, p.X)
		r.ys = append(r.ys, p.Y)
	}
	if err := ctx.applyMirror(rec, r); err != nil {
		return nil, err
	}
	return r, nil
}

// renderHatch reconstructs boundary edges from the paired start/end
// vertex groups between the path markers (92 opens a boundary, 97
// closes it). Consecutive edges sharing an endpoint continue the
// same subpath.
func (ctx *context) renderHatch(rec Record) (*rendered, error) {
	type edge struct{ a, b Point }
	var (
		edges    []edge
		inPath   bool
		sx, ex   float64
		hasStart bool
		hasEnd   bool
		starts   []Point
		ends     []Point
	)
	for _, t := range rec {
		switch t.Code {
		case 92:
			inPath = true
		case 97:
			inPath = false
		case 10, 20, 11, 21:
			if !inPath {
				continue
			}
			v, err := parseNumber(t.Code, t.Value)
			if err != nil {
				return nil, err
			}
			switch t.Code {
			case 10:
				sx, hasStart = v, true
			case 20:
				if hasStart {
					starts = append(starts, Point{X: sx, Y: -v})
					hasStart = false
				}
			case 11:
				ex, hasEnd = v, true
			case 21:
				if hasEnd {
					ends = append(ends, Point{X: ex, Y: -v})
					hasEnd = false
				}
			}
		}
	}
	n := len(starts)
	if len(ends) < n {
		n = len(ends)
	}
	for i := 0; i < n; i++ {
		if anyNaN(starts[i].X, starts[i].Y, ends[i].X, ends[i].Y) {
			ctx.opts.Diagnostic("incomplete HATCH boundary", rec)
			return nil, nil
		}
		edges = append(edges, edge{a: starts[i], b: ends[i]})
	}
	if len(edges) == 0 {
		return nil, nil
	}

	var ops []PathOp
	r := &rendered{}
	for i, e := range edges {
		if i == 0 || edges[i-1].b != e.a {
			ops = append(ops, MoveTo(e.a))
			r.xs = append(r.xs, e.a.X)
			r.ys = append(r.ys, e.a.Y)
		}
		ops = append(ops, LineTo(e.b))
		r.xs = append(r.xs, e.b.X)
		r.ys = append(r.ys, e.b.Y)
	}
	el := Element{ID: rec.Handle(), Fill: ctx.color(rec)}
	el.Shape = PathShape{Ops: ops}
	r.el = el
	if err := ctx.applyMirror(rec, r); err != nil {
		return nil, err
	}
	return r, nil
}
