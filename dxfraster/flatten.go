package dxfraster

import (
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/okdxf/dxficon"
)

// maxDx is the maximum radians a cubic spline is allowed to span
// when approximating an elliptical arc.
const maxDx float64 = math.Pi / 8

func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// adder feeds scene coordinates through a transformation matrix
// into a rasterx path.
type adder struct {
	path rasterx.Adder
	m    dxficon.Matrix2D
}

func (a adder) point(x, y float64) fixed.Point26_6 {
	tx, ty := a.m.Apply(x, y)
	return toFixedP(tx, ty)
}

func (a adder) start(x, y float64)  { a.path.Start(a.point(x, y)) }
func (a adder) line(x, y float64)   { a.path.Line(a.point(x, y)) }
func (a adder) stop(closeLoop bool) { a.path.Stop(closeLoop) }
func (a adder) cube(bx, by, cx, cy, dx, dy float64) {
	a.path.CubeBezier(a.point(bx, by), a.point(cx, cy), a.point(dx, dy))
}

// flattenShape adds the outline of a geometric shape to the path.
// Text and groups are handled by the renderer itself.
func flattenShape(shape dxficon.Shape, ad adder) {
	switch s := shape.(type) {
	case dxficon.Segment:
		ad.start(s.X1, s.Y1)
		ad.line(s.X2, s.Y2)
		ad.stop(false)
	case dxficon.Polyline:
		if len(s.Points) == 0 {
			return
		}
		ad.start(s.Points[0].X, s.Points[0].Y)
		for _, p := range s.Points[1:] {
			ad.line(p.X, p.Y)
		}
		ad.stop(s.Closed)
	case dxficon.Circle:
		fullEllipse(ad, s.CX, s.CY, s.R, s.R)
		ad.stop(true)
	case dxficon.Ellipse:
		fullEllipse(ad, s.CX, s.CY, s.RX, s.RY)
		ad.stop(true)
	case dxficon.PathShape:
		flattenPath(s.Ops, ad)
	}
}

func flattenPath(ops []dxficon.PathOp, ad adder) {
	var px, py, startX, startY float64
	open := false
	for _, op := range ops {
		switch o := op.(type) {
		case dxficon.MoveTo:
			if open {
				ad.stop(false)
			}
			ad.start(o.X, o.Y)
			px, py = o.X, o.Y
			startX, startY = o.X, o.Y
			open = true
		case dxficon.LineTo:
			ad.line(o.X, o.Y)
			px, py = o.X, o.Y
		case dxficon.ArcTo:
			px, py = arcSegment(ad, o, px, py)
		case dxficon.ClosePath:
			if open {
				ad.stop(true)
			}
			px, py = startX, startY
			open = false
		}
	}
	if open {
		ad.stop(false)
	}
}

// fullEllipse traces a complete axis-aligned ellipse starting at the
// rightmost point, using the cubic spline approximation below.
func fullEllipse(ad adder, cx, cy, rx, ry float64) {
	ad.start(cx+rx, cy)
	splineArc(ad, cx, cy, rx, ry, 0, 0, 2*math.Pi, cx+rx, cy)
}

// arcSegment flattens an endpoint-parameterized elliptical arc from
// (px, py) into cubic splines, returning the new current point.
func arcSegment(ad adder, o dxficon.ArcTo, px, py float64) (float64, float64) {
	rx, ry := math.Abs(o.RX), math.Abs(o.RY)
	if rx == 0 || ry == 0 || (px == o.X && py == o.Y) {
		ad.line(o.X, o.Y)
		return o.X, o.Y
	}
	rotX := o.XRotDeg * math.Pi / 180
	cx, cy := findEllipseCenter(&rx, &ry, rotX, px, py, o.X, o.Y, o.Sweep, !o.LargeArc)

	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(o.Y-cy, o.X-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if arcBig != o.LargeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	if deltaEta < 0 && o.Sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !o.Sweep {
		deltaEta -= math.Pi * 2
	}
	splineArc(ad, cx, cy, rx, ry, rotX, etaStart, deltaEta, o.X, o.Y)
	return o.X, o.Y
}

// splineArc approximates the ellipse span [etaStart, etaStart+deltaEta]
// with cubic bezier curves, by the method of L. Maisonobe, "Drawing an
// elliptical arc using polylines, quadratic or cubic Bezier curves"
// (https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf).
// The current path point must already sit at the span start;
// (endX, endY) pins the last spline to the exact arc end.
func splineArc(ad adder, cx, cy, rx, ry, rotX, etaStart, deltaEta, endX, endY float64) {
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	lx, ly := ellipsePointAt(rx, ry, sinTheta, cosTheta, etaStart, cx, cy)
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = endX, endY // exact end point, no roundoff error
		} else {
			px, py = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		ad.cube(lx+alpha*ldx, ly+alpha*ldy, px-alpha*dx, py-alpha*dy, px, py)
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// ellipsePrime gives tangent vectors for the parameterized ellipse.
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for the parameterized ellipse.
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the ellipse if it exists. If
// it does not, the radii are increased minimally, preserving their
// ratio, for a solution to be possible. It reduces the problem to
// finding the center of a circle through the origin and an arbitrary
// point, then transforms the answer back.
func findEllipseCenter(ra, rb *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// move the origin to the start point
	nx, ny := endX-startX, endY-startY

	// rotate the ellipse x-axis onto the coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// scale so that ra = rb; foci and center now coincide
	nx *= *rb / *ra

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *rb**rb < midlenSq {
		// the requested ellipse does not exist; grow the radii to fit
		nrb := math.Sqrt(midlenSq)
		if *ra == *rb {
			*ra = nrb // prevents roundoff
		} else {
			*ra = *ra * nrb / *rb
		}
		*rb = nrb
	} else {
		hr = math.Sqrt(*rb**rb-midlenSq) / math.Sqrt(midlenSq)
	}
	if sweep == smallArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	cx *= *ra / *rb
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
