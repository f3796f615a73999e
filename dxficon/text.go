package dxficon

import (
	"math"

	"github.com/benoitkugler/okdxf/dxftext"
)

// Single-line TEXT layout.

// horizontal justification (code 72) to anchor; the empty string is
// the default "start".
var textAnchors = [5]string{"", "middle", "end", "", "middle"}

// vertical justification (code 73) to baseline; the empty string is
// the default alphabetic baseline.
var textBaselines = [4]string{"", "", "middle", "hanging"}

func (ctx *context) renderText(rec Record) (*rendered, error) {
	x, err := number(rec, 10)
	if err != nil {
		return nil, err
	}
	y, err := number(rec, 20)
	if err != nil {
		return nil, err
	}
	halign := integer(rec, 72, 0)
	valign := integer(rec, 73, 0)
	if halign != 0 || valign != 0 {
		// justified text aligns on the second point when stored
		ax, err := number(rec, 11)
		if err != nil {
			return nil, err
		}
		ay, err := number(rec, 21)
		if err != nil {
			return nil, err
		}
		if !math.IsNaN(ax) && !math.IsNaN(ay) {
			x, y = ax, ay
		}
	}
	height, err := numberDefault(rec, 40, 0)
	if err != nil {
		return nil, err
	}
	rot, err := numberDefault(rec, 50, 0)
	if err != nil {
		return nil, err
	}
	if anyNaN(x, y) {
		ctx.opts.Diagnostic("incomplete TEXT insertion point", rec)
		return nil, nil
	}

	content, _ := rec.Value(1)
	runs := dxftext.ParseText(content)
	if len(runs) == 0 {
		return nil, nil
	}

	text := Text{
		X: x, Y: -y,
		Size:  height,
		Spans: runSpans(runs),
	}
	if halign >= 0 && halign < len(textAnchors) {
		text.Anchor = textAnchors[halign]
	}
	if valign >= 0 && valign < len(textBaselines) {
		text.Baseline = textBaselines[valign]
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

// runSpans maps decorated runs to spans. A single run carries its
// decoration on one span covering the whole element; multiple runs
// each keep their own.
func runSpans(runs []dxftext.Run) []Span {
	spans := make([]Span, len(runs))
	for i, r := range runs {
		spans[i] = Span{
			Text:      r.Text,
			Underline: r.Underline,
			Overline:  r.Overline,
			Strike:    r.Strike,
		}
	}
	return spans
}
