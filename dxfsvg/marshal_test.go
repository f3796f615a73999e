package dxfsvg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benoitkugler/okdxf/dxficon"
)

func TestMarshalViewBox(t *testing.T) {
	scene := dxficon.Scene{
		Bounds: dxficon.Bounds{X: 3, Y: -7, W: 4, H: 4},
	}
	out := string(Marshal(scene))
	if !strings.Contains(out, `viewBox="3 -7 4 4"`) {
		t.Errorf("missing viewBox: %s", out)
	}
	if !strings.Contains(out, `width="4" height="4"`) {
		t.Errorf("missing size: %s", out)
	}
}

func TestMarshalShapes(t *testing.T) {
	scene := dxficon.Scene{
		Elements: []dxficon.Element{
			{
				Stroke: dxficon.RGB(255, 0, 0),
				Dash:   []float64{0.5, 0.25},
				Shape:  dxficon.Segment{X1: 0, Y1: 0, X2: 10, Y2: 0},
			},
			{
				Stroke: dxficon.Inherited,
				Shape:  dxficon.Circle{CX: 5, CY: -5, R: 2},
			},
			{
				Fill: dxficon.RGB(0, 0, 255),
				Shape: dxficon.Polyline{
					Points: []dxficon.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: -3}},
					Closed: true,
				},
			},
			{
				Shape: dxficon.PathShape{Ops: []dxficon.PathOp{
					dxficon.MoveTo{X: 1, Y: 1},
					dxficon.ArcTo{RX: 2, RY: 2, LargeArc: true, X: 3, Y: 3},
					dxficon.ClosePath{},
				}},
			},
		},
	}
	out := string(Marshal(scene))

	for _, want := range []string{
		`<line x1="0" y1="0" x2="10" y2="0" stroke="rgb(255,0,0)" fill="none" stroke-dasharray="0.5 0.25"/>`,
		`<circle cx="5" cy="-5" r="2" stroke="currentColor" fill="none"/>`,
		`<polygon points="0,0 4,0 4,-3" fill="rgb(0,0,255)"/>`,
		`<path d="M1 1 A2 2 0 1 0 3 3 Z" fill="none"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarshalTransforms(t *testing.T) {
	scene := dxficon.Scene{
		Elements: []dxficon.Element{{
			Transform: []dxficon.TransformOp{
				dxficon.Translate{X: 100, Y: 0},
				dxficon.ScaleBy{X: 2, Y: 2},
				dxficon.RotateBy{Deg: -30, CX: 1, CY: 2},
				dxficon.RotateBy{Deg: 45},
				dxficon.SkewXBy{Deg: 15},
			},
			Shape: dxficon.Segment{},
		}},
	}
	out := string(Marshal(scene))
	want := `transform="translate(100 0) scale(2 2) rotate(-30 1 2) rotate(45) skewX(15)"`
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}

	// identity steps are skipped entirely
	scene.Elements[0].Transform = []dxficon.TransformOp{
		dxficon.Translate{},
		dxficon.ScaleBy{X: 1, Y: 1},
		dxficon.RotateBy{},
		dxficon.SkewXBy{},
	}
	out = string(Marshal(scene))
	if strings.Contains(out, "transform=") {
		t.Errorf("identity transform serialized:\n%s", out)
	}
}

func TestMarshalText(t *testing.T) {
	scene := dxficon.Scene{
		Elements: []dxficon.Element{{
			Fill: dxficon.RGB(0, 0, 0),
			Shape: dxficon.Text{
				X: 5, Y: -5, Size: 2.5,
				Anchor:   "middle",
				Baseline: "hanging",
				Spans: []dxficon.Span{
					{Text: "L = 10 ", Underline: true},
					{Children: []dxficon.Span{
						{Text: "+0.2", DYEm: -0.35},
						{Text: "-0.1", DYEm: 1, DXEm: -1.2},
					}},
				},
			},
		}},
	}
	out := string(Marshal(scene))

	for _, want := range []string{
		`<text x="5" y="-5" font-size="2.5" text-anchor="middle" dominant-baseline="hanging" fill="rgb(0,0,0)">`,
		`text-decoration="underline"`,
		`<tspan dy="-0.35em">+0.2</tspan>`,
		`<tspan dx="-1.2em" dy="1em">-0.1</tspan>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarshalEscapes(t *testing.T) {
	scene := dxficon.Scene{
		Elements: []dxficon.Element{{
			Shape: dxficon.Text{Spans: []dxficon.Span{{Text: `a<b & "c"`}}},
		}},
	}
	out := string(Marshal(scene))
	if !strings.Contains(out, "a&lt;b &amp; &quot;c&quot;") {
		t.Errorf("unescaped text in output:\n%s", out)
	}
}

func TestMarshalGroups(t *testing.T) {
	scene := dxficon.Scene{
		Elements: []dxficon.Element{{
			ID:     "2F",
			Stroke: dxficon.RGB(0, 255, 0),
			Shape: dxficon.Group{Children: []dxficon.Element{
				{Shape: dxficon.Segment{X2: 1}},
			}},
		}},
	}
	out := string(Marshal(scene))
	if !strings.Contains(out, `<g id="2F" stroke="rgb(0,255,0)">`) {
		t.Errorf("group open tag missing:\n%s", out)
	}
	// the child line must inherit the group stroke, not carry its own
	if !strings.Contains(out, `<line x1="0" y1="0" x2="1" y2="0" fill="none"/>`) {
		t.Errorf("group child missing:\n%s", out)
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	scene := dxficon.Scene{
		Bounds: dxficon.Bounds{W: 10, H: 10},
		Elements: []dxficon.Element{
			{Shape: dxficon.Circle{CX: 1, CY: 1, R: 1}},
			{Shape: dxficon.Segment{X2: 5, Y2: 5}},
		},
	}
	first := Marshal(scene)
	for i := 0; i < 5; i++ {
		if !bytes.Equal(first, Marshal(scene)) {
			t.Fatal("markup varies between runs")
		}
	}
}
