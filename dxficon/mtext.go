package dxficon

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/benoitkugler/okdxf/dxftext"
)

// Multi-line MTEXT layout: the raw content is the concatenation of
// continuation groups (code 3) plus the final remainder (code 1),
// parsed into a token tree and laid out recursively in
// left-to-right order.

// attachment point (code 71, 1-9) lookups: row-major over
// {top, middle, bottom} x {start, middle, end}
var (
	mtextBaselines = [3]string{"hanging", "middle", ""}
	mtextAnchors   = [3]string{"", "middle", "end"}
)

func (ctx *context) renderMText(rec Record) (*rendered, error) {
	var raw strings.Builder
	for _, part := range rec.Values(3) {
		raw.WriteString(part)
	}
	if rest, ok := rec.Value(1); ok {
		raw.WriteString(rest)
	}
	spans := ctx.layoutNodes(dxftext.ParseMText(raw.String()))
	if len(spans) == 0 {
		return nil, nil
	}

	x, err := number(rec, 10)
	if err != nil {
		return nil, err
	}
	y, err := number(rec, 20)
	if err != nil {
		return nil, err
	}
	height, err := numberDefault(rec, 40, 0)
	if err != nil {
		return nil, err
	}
	rot, err := ctx.mtextRotation(rec)
	if err != nil {
		return nil, err
	}
	if anyNaN(x, y) {
		ctx.opts.Diagnostic("incomplete MTEXT insertion point", rec)
		return nil, nil
	}

	text := Text{X: x, Y: -y, Size: height, Spans: spans}
	if att := integer(rec, 71, 1); att >= 1 && att <= 9 {
		text.Baseline = mtextBaselines[(att-1)/3]
		text.Anchor = mtextAnchors[(att-1)%3]
	}

	el := Element{
		ID:   rec.Handle(),
		Fill: ctx.color(rec),
	}
	if rot != 0 {
		el.Transform = []TransformOp{RotateBy{Deg: -rot, CX: x, CY: -y}}
	}
	el.Shape = text
	return &rendered{el: el, xs: []float64{x}, ys: []float64{-y}}, nil
}

// mtextRotation resolves the text angle: an explicit stored angle
// wins, then the angle of a stored X-direction vector, then the
// angle of a stored Y-direction vector minus 90 degrees, then 0.
func (ctx *context) mtextRotation(rec Record) (float64, error) {
	if rec.Has(50) {
		return numberDefault(rec, 50, 0)
	}
	if rec.Has(11) || rec.Has(21) {
		dx, err := numberDefault(rec, 11, 0)
		if err != nil {
			return 0, err
		}
		dy, err := numberDefault(rec, 21, 0)
		if err != nil {
			return 0, err
		}
		if dx != 0 || dy != 0 {
			return math.Atan2(dy, dx) / deg2rad, nil
		}
	}
	if rec.Has(12) || rec.Has(22) {
		dx, err := numberDefault(rec, 12, 0)
		if err != nil {
			return 0, err
		}
		dy, err := numberDefault(rec, 22, 0)
		if err != nil {
			return 0, err
		}
		if dx != 0 || dy != 0 {
			return math.Atan2(dy, dx)/deg2rad - 90, nil
		}
	}
	return 0, nil
}

// layoutNodes walks the token list once, left to right: a node's
// own rendered content precedes the concatenation of all following
// sibling nodes. Scoping nodes (font switch, oblique) absorb the
// laid-out remainder as children, so the walk stays linear.
func (ctx *context) layoutNodes(nodes []dxftext.Node) []Span {
	var out []Span
	for i := 0; i < len(nodes); i++ {
		switch n := nodes[i].(type) {
		case dxftext.Text:
			out = append(out, Span{Text: string(n)})
		case dxftext.Seq:
			out = append(out, Span{Children: ctx.layoutNodes(n)})
		case dxftext.Fraction:
			out = append(out, fractionSpan(n.Num, n.Den))
		case dxftext.Font:
			req := ctx.resolveFont(n)
			return append(out, Span{
				Family:   req.Family,
				Bold:     req.Bold,
				Italic:   req.Italic,
				Scale:    req.Scale,
				Children: ctx.layoutNodes(nodes[i+1:]),
			})
		case dxftext.Oblique:
			return append(out, Span{
				SkewDeg:  float64(n),
				Children: ctx.layoutNodes(nodes[i+1:]),
			})
		}
	}
	return out
}

// fractionSpan stacks a numerator over a denominator; the
// denominator is re-centered relative to the numerator width.
func fractionSpan(num, den string) Span {
	wNum, wDen := estWidthEm(num), estWidthEm(den)
	return Span{Children: []Span{
		{Text: num, DYEm: -0.35},
		{Text: den, DYEm: 1, DXEm: -(wNum + wDen) / 2},
	}}
}

// estWidthEm estimates a rendered text width at 0.6em per rune.
func estWidthEm(s string) float64 {
	return 0.6 * float64(utf8.RuneCountInString(s))
}
