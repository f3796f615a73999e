package dxficon

// The scene model: a closed set of drawing primitives bound to a
// resolved style, mirroring how higher level entities are reduced
// before being handed to a painting driver.

// Point is a 2D point in rendered (y-down) coordinates.
type Point struct{ X, Y float64 }

// Shape is one rendered drawing instruction. The set of
// implementations is closed.
type Shape interface {
	shape()
}

// Segment is a single line between two endpoints.
type Segment struct{ X1, Y1, X2, Y2 float64 }

// Polyline is an ordered vertex list; Closed selects a filled
// polygon instead of an open polyline.
type Polyline struct {
	Points []Point
	Closed bool
}

// Circle is a center plus radius.
type Circle struct{ CX, CY, R float64 }

// Ellipse is a full-turn axis-aligned ellipse; rotation, when any,
// is carried by the element transform.
type Ellipse struct{ CX, CY, RX, RY float64 }

// PathShape is an arbitrary path built from the basic operations.
type PathShape struct{ Ops []PathOp }

// Text is a positioned text run, possibly split into styled spans.
type Text struct {
	X, Y     float64
	Size     float64 // 0 when unresolved
	Anchor   string  // "", "middle" or "end"
	Baseline string  // "", "middle" or "hanging"
	Spans    []Span
}

// Group nests primitives rendered in a common coordinate space,
// produced by block instancing and dimensions.
type Group struct{ Children []Element }

func (Segment) shape()   {}
func (Polyline) shape()  {}
func (Circle) shape()    {}
func (Ellipse) shape()   {}
func (PathShape) shape() {}
func (Text) shape()      {}
func (Group) shape()     {}

// PathOp is one basic path command.
type PathOp interface {
	pathOp()
}

// MoveTo starts a new subpath.
type MoveTo Point

// LineTo draws a line from the current point.
type LineTo Point

// ArcTo draws an endpoint-parameterized elliptical arc.
type ArcTo struct {
	RX, RY   float64
	XRotDeg  float64
	LargeArc bool
	Sweep    bool
	X, Y     float64
}

// ClosePath closes the current subpath.
type ClosePath struct{}

func (MoveTo) pathOp()    {}
func (LineTo) pathOp()    {}
func (ArcTo) pathOp()     {}
func (ClosePath) pathOp() {}

// TransformOp is one step of an element transform list. Only
// non-identity steps are ever emitted.
type TransformOp interface {
	transformOp()
}

// Translate moves by (X, Y).
type Translate struct{ X, Y float64 }

// ScaleBy scales by (X, Y).
type ScaleBy struct{ X, Y float64 }

// RotateBy rotates by Deg degrees about (CX, CY).
type RotateBy struct{ Deg, CX, CY float64 }

// SkewXBy skews along the X axis by Deg degrees.
type SkewXBy struct{ Deg float64 }

func (Translate) transformOp() {}
func (ScaleBy) transformOp()   {}
func (RotateBy) transformOp()  {}
func (SkewXBy) transformOp()   {}

// Matrix composes the transform list into a single affine matrix.
func Matrix(ops []TransformOp) Matrix2D {
	m := Identity
	for _, op := range ops {
		switch op := op.(type) {
		case Translate:
			m = m.Translate(op.X, op.Y)
		case ScaleBy:
			m = m.Scale(op.X, op.Y)
		case RotateBy:
			m = m.Translate(op.CX, op.CY).
				Rotate(op.Deg*deg2rad).
				Translate(-op.CX, -op.CY)
		case SkewXBy:
			m = m.SkewX(op.Deg * deg2rad)
		}
	}
	return m
}

// Span is one styled stretch of a text primitive. Children carry
// nested spans (stacked fractions, font switches); decoration and
// font fields apply to the whole subtree.
type Span struct {
	Text     string
	Children []Span

	Family       string
	Bold, Italic bool
	Scale        float64 // relative font scale, 0 when unset
	SkewDeg      float64 // oblique angle

	Underline, Overline, Strike bool

	// relative shifts in em units, used by stacked fractions
	DXEm, DYEm float64
}

// Element binds a shape to its resolved style and transform, plus
// the pass-through identifier of the source record.
type Element struct {
	ID        string
	Stroke    Color
	Fill      Color
	Dash      []float64
	Transform []TransformOp
	Shape     Shape
}

// Scene is the ordered primitive list of one conversion together
// with the accumulated bounding box.
type Scene struct {
	Elements []Element
	Bounds   Bounds
}
