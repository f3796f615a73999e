// Implements a raster backend to render converted drawings,
// by wrapping rasterx.
package dxfraster

import (
	"image"
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/benoitkugler/okdxf/dxficon"
)

// Renderer rasterizes a scene into an RGBA image.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instances
	img    *image.RGBA
}

// NewRenderer returns a renderer drawing on img.
// If scanner is nil, a default rasterx.ScannerGV is used.
func NewRenderer(img *image.RGBA, scanner rasterx.Scanner) *Renderer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if scanner == nil {
		scanner = rasterx.NewScannerGV(w, h, img, b)
	}
	return &Renderer{
		dasher: rasterx.NewDasher(w, h, scanner),
		filler: rasterx.NewFiller(w, h, scanner),
		img:    img,
	}
}

// RasterSceneToImage renders the scene at the given scale factor,
// in an image sized to its bounding box.
func RasterSceneToImage(scene dxficon.Scene, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(scene.Bounds.W * scale))
	h := int(math.Ceil(scene.Bounds.H * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rd := NewRenderer(img, nil)
	rd.Draw(scene, scale)
	return img
}

// Draw renders the whole scene, mapping its bounding box origin to
// the image origin.
func (rd *Renderer) Draw(scene dxficon.Scene, scale float64) {
	base := dxficon.Identity.Scale(scale, scale).Translate(-scene.Bounds.X, -scene.Bounds.Y)
	for _, el := range scene.Elements {
		rd.element(el, base, dxficon.Inherited)
	}
}

func (rd *Renderer) element(el dxficon.Element, m dxficon.Matrix2D, inherited dxficon.Color) {
	m = m.Mult(dxficon.Matrix(el.Transform))
	stroke := el.Stroke
	if stroke.IsNone() || stroke.IsInherit() {
		stroke = inherited
	}

	switch shape := el.Shape.(type) {
	case dxficon.Group:
		for _, child := range shape.Children {
			rd.element(child, m, stroke)
		}
	case dxficon.Text:
		rd.text(shape, el.Fill, m)
	default:
		rd.geometry(el, shape, stroke, m)
	}
}

func (rd *Renderer) geometry(el dxficon.Element, shape dxficon.Shape, stroke dxficon.Color, m dxficon.Matrix2D) {
	if !el.Fill.IsNone() {
		rd.filler.Clear()
		rd.filler.SetWinding(true)
		flattenShape(shape, adder{path: rd.filler, m: m})
		rd.filler.Scanner.SetColor(toRGBA(el.Fill))
		rd.filler.Draw()
	}
	if !stroke.IsNone() {
		rd.dasher.Clear()
		rd.dasher.SetStroke(
			fixed.I(1), fixed.I(4), rasterx.ButtCap, rasterx.ButtCap,
			rasterx.FlatGap, rasterx.Miter, scaledDash(el.Dash, m), 0,
		)
		flattenShape(shape, adder{path: rd.dasher, m: m})
		rd.dasher.Scanner.SetColor(toRGBA(stroke))
		rd.dasher.Draw()
	}
}

// text stamps span content with a bitmap face. Per-span font styling
// is beyond a raster preview; only position and color are honored.
func (rd *Renderer) text(t dxficon.Text, fill dxficon.Color, m dxficon.Matrix2D) {
	content := spanContent(t.Spans)
	if content == "" {
		return
	}
	x, y := m.Apply(t.X, t.Y)
	d := font.Drawer{
		Dst:  rd.img,
		Src:  image.NewUniform(toRGBA(fill)),
		Face: basicfont.Face7x13,
	}
	width := d.MeasureString(content)
	dot := toFixedP(x, y)
	switch t.Anchor {
	case "middle":
		dot.X -= width / 2
	case "end":
		dot.X -= width
	}
	d.Dot = dot
	d.DrawString(content)
}

func spanContent(spans []dxficon.Span) string {
	out := ""
	for _, s := range spans {
		out += s.Text + spanContent(s.Children)
	}
	return out
}

// scaledDash maps dash lengths to device space using the matrix
// x scale.
func scaledDash(dash []float64, m dxficon.Matrix2D) []float64 {
	if len(dash) == 0 {
		return nil
	}
	k := math.Hypot(m.A, m.B)
	out := make([]float64, len(dash))
	for i, d := range dash {
		out[i] = d * k
	}
	return out
}

func toRGBA(c dxficon.Color) color.RGBA {
	if c.IsNone() || c.IsInherit() {
		return color.RGBA{A: 0xff} // black
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
