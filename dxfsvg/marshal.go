// Package dxfsvg serializes a dxficon.Scene to SVG markup.
//
// The output is deterministic: elements are written in scene order
// and attributes in a fixed order, so identical scenes produce
// byte-identical documents.
package dxfsvg

import (
	"strconv"
	"strings"

	"github.com/benoitkugler/okdxf/dxficon"
)

// Marshal renders the scene as a standalone SVG document, sized
// exactly to its bounding box.
func Marshal(scene dxficon.Scene) []byte {
	var w writer
	b := scene.Bounds
	w.buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="` +
		num(b.X) + " " + num(b.Y) + " " + num(b.W) + " " + num(b.H) +
		`" width="` + num(b.W) + `" height="` + num(b.H) + `">` + "\n")
	for _, el := range scene.Elements {
		w.element(el, 1)
	}
	w.buf.WriteString("</svg>\n")
	return []byte(w.buf.String())
}

type writer struct {
	buf strings.Builder
}

func (w *writer) indent(depth int) {
	for i := 0; i < depth; i++ {
		w.buf.WriteString("  ")
	}
}

func (w *writer) element(el dxficon.Element, depth int) {
	w.indent(depth)
	switch shape := el.Shape.(type) {
	case dxficon.Segment:
		w.buf.WriteString(`<line x1="` + num(shape.X1) + `" y1="` + num(shape.Y1) +
			`" x2="` + num(shape.X2) + `" y2="` + num(shape.Y2) + `"`)
		w.style(el)
		w.buf.WriteString("/>\n")
	case dxficon.Polyline:
		name := "polyline"
		if shape.Closed {
			name = "polygon"
		}
		var pts []string
		for _, p := range shape.Points {
			pts = append(pts, num(p.X)+","+num(p.Y))
		}
		w.buf.WriteString("<" + name + ` points="` + strings.Join(pts, " ") + `"`)
		w.style(el)
		w.buf.WriteString("/>\n")
	case dxficon.Circle:
		w.buf.WriteString(`<circle cx="` + num(shape.CX) + `" cy="` + num(shape.CY) +
			`" r="` + num(shape.R) + `"`)
		w.style(el)
		w.buf.WriteString("/>\n")
	case dxficon.Ellipse:
		w.buf.WriteString(`<ellipse cx="` + num(shape.CX) + `" cy="` + num(shape.CY) +
			`" rx="` + num(shape.RX) + `" ry="` + num(shape.RY) + `"`)
		w.style(el)
		w.buf.WriteString("/>\n")
	case dxficon.PathShape:
		w.buf.WriteString(`<path d="` + pathData(shape.Ops) + `"`)
		w.style(el)
		w.buf.WriteString("/>\n")
	case dxficon.Text:
		w.text(el, shape)
	case dxficon.Group:
		w.buf.WriteString("<g")
		w.style(el)
		w.buf.WriteString(">\n")
		for _, child := range shape.Children {
			w.element(child, depth+1)
		}
		w.indent(depth)
		w.buf.WriteString("</g>\n")
	}
}

// style writes the presentation attributes shared by all shapes.
func (w *writer) style(el dxficon.Element) {
	if el.ID != "" {
		w.buf.WriteString(` id="` + escape(el.ID) + `"`)
	}
	if !el.Stroke.IsNone() {
		w.buf.WriteString(` stroke="` + el.Stroke.String() + `"`)
	}
	switch el.Shape.(type) {
	case dxficon.Text, dxficon.Group:
		// containers and text leave fill to the cascade when unset
		if !el.Fill.IsNone() {
			w.buf.WriteString(` fill="` + el.Fill.String() + `"`)
		}
	default:
		w.buf.WriteString(` fill="` + el.Fill.String() + `"`)
	}
	if len(el.Dash) != 0 {
		var parts []string
		for _, d := range el.Dash {
			parts = append(parts, num(d))
		}
		w.buf.WriteString(` stroke-dasharray="` + strings.Join(parts, " ") + `"`)
	}
	if tr := transforms(el.Transform); tr != "" {
		w.buf.WriteString(` transform="` + tr + `"`)
	}
}

func (w *writer) text(el dxficon.Element, t dxficon.Text) {
	w.buf.WriteString(`<text x="` + num(t.X) + `" y="` + num(t.Y) + `"`)
	if t.Size > 0 {
		w.buf.WriteString(` font-size="` + num(t.Size) + `"`)
	}
	if t.Anchor != "" {
		w.buf.WriteString(` text-anchor="` + t.Anchor + `"`)
	}
	if t.Baseline != "" {
		w.buf.WriteString(` dominant-baseline="` + t.Baseline + `"`)
	}
	w.style(el)
	w.buf.WriteString(">")
	for _, span := range t.Spans {
		w.span(span)
	}
	w.buf.WriteString("</text>\n")
}

func (w *writer) span(s dxficon.Span) {
	w.buf.WriteString("<tspan")
	if s.DXEm != 0 {
		w.buf.WriteString(` dx="` + num(s.DXEm) + `em"`)
	}
	if s.DYEm != 0 {
		w.buf.WriteString(` dy="` + num(s.DYEm) + `em"`)
	}
	if s.Family != "" {
		w.buf.WriteString(` font-family="` + escape(s.Family) + `"`)
	}
	if s.Bold {
		w.buf.WriteString(` font-weight="bold"`)
	}
	if s.Italic {
		w.buf.WriteString(` font-style="italic"`)
	}
	if s.Scale != 0 && s.Scale != 1 {
		w.buf.WriteString(` font-size="` + num(s.Scale) + `em"`)
	}
	var style []string
	if s.SkewDeg != 0 {
		style = append(style, "font-style:oblique "+num(s.SkewDeg)+"deg")
	}
	if deco := decorations(s); deco != "" {
		w.buf.WriteString(` text-decoration="` + deco + `"`)
	}
	if len(style) != 0 {
		w.buf.WriteString(` style="` + strings.Join(style, ";") + `"`)
	}
	w.buf.WriteString(">")
	w.buf.WriteString(escape(s.Text))
	for _, child := range s.Children {
		w.span(child)
	}
	w.buf.WriteString("</tspan>")
}

func decorations(s dxficon.Span) string {
	var parts []string
	if s.Underline {
		parts = append(parts, "underline")
	}
	if s.Overline {
		parts = append(parts, "overline")
	}
	if s.Strike {
		parts = append(parts, "line-through")
	}
	return strings.Join(parts, " ")
}

func pathData(ops []dxficon.PathOp) string {
	var parts []string
	for _, op := range ops {
		switch o := op.(type) {
		case dxficon.MoveTo:
			parts = append(parts, "M"+num(o.X)+" "+num(o.Y))
		case dxficon.LineTo:
			parts = append(parts, "L"+num(o.X)+" "+num(o.Y))
		case dxficon.ArcTo:
			parts = append(parts, "A"+num(o.RX)+" "+num(o.RY)+" "+num(o.XRotDeg)+" "+
				flag(o.LargeArc)+" "+flag(o.Sweep)+" "+num(o.X)+" "+num(o.Y))
		case dxficon.ClosePath:
			parts = append(parts, "Z")
		}
	}
	return strings.Join(parts, " ")
}

func transforms(ops []dxficon.TransformOp) string {
	var parts []string
	for _, op := range ops {
		switch o := op.(type) {
		case dxficon.Translate:
			if o.X == 0 && o.Y == 0 {
				continue
			}
			parts = append(parts, "translate("+num(o.X)+" "+num(o.Y)+")")
		case dxficon.ScaleBy:
			if o.X == 1 && o.Y == 1 {
				continue
			}
			parts = append(parts, "scale("+num(o.X)+" "+num(o.Y)+")")
		case dxficon.RotateBy:
			if o.Deg == 0 {
				continue
			}
			if o.CX == 0 && o.CY == 0 {
				parts = append(parts, "rotate("+num(o.Deg)+")")
			} else {
				parts = append(parts, "rotate("+num(o.Deg)+" "+num(o.CX)+" "+num(o.CY)+")")
			}
		case dxficon.SkewXBy:
			if o.Deg == 0 {
				continue
			}
			parts = append(parts, "skewX("+num(o.Deg)+")")
		}
	}
	return strings.Join(parts, " ")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func num(v float64) string {
	if v == 0 { // avoid "-0" from negated zero coordinates
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
