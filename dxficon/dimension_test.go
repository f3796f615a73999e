package dxficon

import (
	"errors"
	"math"
	"testing"
)

func dimContext(t *testing.T, doc *Document, diags *[]string) *context {
	t.Helper()
	opts := &Options{Diagnostic: func(msg string, _ Record) {
		if diags != nil {
			*diags = append(*diags, msg)
		}
	}}
	ctx, err := newContext(doc, opts.withDefaults())
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

func dimensionText(t *testing.T, r *rendered) Text {
	t.Helper()
	group, ok := r.el.Shape.(Group)
	if !ok {
		t.Fatalf("dimension shape is %T, want Group", r.el.Shape)
	}
	last := group.Children[len(group.Children)-1]
	text, ok := last.Shape.(Text)
	if !ok {
		t.Fatalf("last child is %T, want Text", last.Shape)
	}
	return text
}

func TestLinearDimension(t *testing.T) {
	ctx := dimContext(t, &Document{}, nil)
	rec := Record{
		{Code: 0, Value: "DIMENSION"},
		{Code: 70, Value: "1"},
		{Code: 13, Value: "0"}, {Code: 23, Value: "0"},
		{Code: 14, Value: "10"}, {Code: 24, Value: "0"},
		{Code: 10, Value: "0"}, {Code: 20, Value: "5"},
	}
	r, err := ctx.renderDimension(rec)
	if err != nil {
		t.Fatal(err)
	}

	group := r.el.Shape.(Group)
	leader := group.Children[0].Shape.(Polyline)
	want := []Point{{0, 0}, {0, -5}, {10, -5}, {10, 0}}
	if len(leader.Points) != 4 {
		t.Fatalf("leader has %d points", len(leader.Points))
	}
	for i, p := range want {
		if leader.Points[i] != p {
			t.Errorf("leader[%d] = %v, want %v", i, leader.Points[i], p)
		}
	}

	text := dimensionText(t, r)
	if text.Spans[0].Text != "10" {
		t.Errorf("measurement text = %q, want \"10\"", text.Spans[0].Text)
	}
	if text.Anchor != "middle" {
		t.Errorf("anchor = %q", text.Anchor)
	}
	// text sits at the dimension line midpoint when no explicit
	// midpoint is stored
	if text.X != 5 || text.Y != -5 {
		t.Errorf("text point = (%v, %v)", text.X, text.Y)
	}
}

func TestLinearDimensionVertical(t *testing.T) {
	ctx := dimContext(t, &Document{}, nil)
	rec := Record{
		{Code: 0, Value: "DIMENSION"},
		{Code: 70, Value: "0"},
		{Code: 50, Value: "90"},
		{Code: 13, Value: "0"}, {Code: 23, Value: "1"},
		{Code: 14, Value: "0"}, {Code: 24, Value: "4"},
		{Code: 10, Value: "2"}, {Code: 20, Value: "0"},
	}
	r, err := ctx.renderDimension(rec)
	if err != nil {
		t.Fatal(err)
	}
	text := dimensionText(t, r)
	if text.Spans[0].Text != "3" {
		t.Errorf("vertical measurement = %q, want \"3\"", text.Spans[0].Text)
	}
}

func TestRadialDimension(t *testing.T) {
	ctx := dimContext(t, &Document{}, nil)
	rec := Record{
		{Code: 0, Value: "DIMENSION"},
		{Code: 70, Value: "4"},
		{Code: 10, Value: "0"}, {Code: 20, Value: "0"},
		{Code: 15, Value: "3"}, {Code: 25, Value: "4"},
	}
	r, err := ctx.renderDimension(rec)
	if err != nil {
		t.Fatal(err)
	}
	text := dimensionText(t, r)
	if text.Spans[0].Text != "5" {
		t.Errorf("radial measurement = %q, want \"5\"", text.Spans[0].Text)
	}
}

func TestOrdinateDimension(t *testing.T) {
	ctx := dimContext(t, &Document{}, nil)
	rec := Record{
		{Code: 0, Value: "DIMENSION"},
		{Code: 70, Value: "70"}, // ordinate, X axis
		{Code: 10, Value: "1"}, {Code: 20, Value: "0"},
		{Code: 13, Value: "7"}, {Code: 23, Value: "2"},
		{Code: 14, Value: "9"}, {Code: 24, Value: "5"},
	}
	r, err := ctx.renderDimension(rec)
	if err != nil {
		t.Fatal(err)
	}
	text := dimensionText(t, r)
	if text.Spans[0].Text != "6" {
		t.Errorf("ordinate measurement = %q, want \"6\"", text.Spans[0].Text)
	}
}

func TestAngularDimensionUnsupported(t *testing.T) {
	var diags []string
	ctx := dimContext(t, &Document{}, &diags)
	rec := Record{{Code: 0, Value: "DIMENSION"}, {Code: 70, Value: "2"}}
	r, err := ctx.renderDimension(rec)
	if err != nil || r != nil {
		t.Fatalf("angular dimension should be omitted, got %v, %v", r, err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", diags)
	}
}

func TestDimensionTextTemplate(t *testing.T) {
	ctx := dimContext(t, &Document{}, nil)
	base := Record{
		{Code: 0, Value: "DIMENSION"},
		{Code: 70, Value: "1"},
		{Code: 13, Value: "0"}, {Code: 23, Value: "0"},
		{Code: 14, Value: "8"}, {Code: 24, Value: "0"},
		{Code: 10, Value: "0"}, {Code: 20, Value: "1"},
	}

	// the measured value substitutes the placeholder
	rec := append(append(Record{}, base...), Tag{Code: 1, Value: "L = <> mm"})
	r, err := ctx.renderDimension(rec)
	if err != nil {
		t.Fatal(err)
	}
	if got := dimensionText(t, r).Spans[0].Text; got != "L = 8 mm" {
		t.Errorf("templated text = %q", got)
	}

	// a template without placeholder is shown verbatim
	rec = append(append(Record{}, base...), Tag{Code: 1, Value: "SEE NOTE 3"})
	r, err = ctx.renderDimension(rec)
	if err != nil {
		t.Fatal(err)
	}
	if got := dimensionText(t, r).Spans[0].Text; got != "SEE NOTE 3" {
		t.Errorf("verbatim text = %q", got)
	}

	// a stored override value replaces the measurement
	rec = append(append(Record{}, base...), Tag{Code: 42, Value: "12.34567"})
	r, err = ctx.renderDimension(rec)
	if err != nil {
		t.Fatal(err)
	}
	if got := dimensionText(t, r).Spans[0].Text; got != "12.3457" {
		t.Errorf("override text = %q", got)
	}
}

func TestDimensionMissingDefinitionPoints(t *testing.T) {
	var diags []string
	ctx := dimContext(t, &Document{}, &diags)
	rec := Record{
		{Code: 0, Value: "DIMENSION"},
		{Code: 70, Value: "1"},
		{Code: 13, Value: "0"}, {Code: 23, Value: "0"},
	}
	r, err := ctx.renderDimension(rec)
	if err != nil || r != nil {
		t.Fatalf("incomplete dimension should be omitted, got %v, %v", r, err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", diags)
	}
}

func TestDimensionOverrideBeyondBound(t *testing.T) {
	ctx := dimContext(t, &Document{}, nil)
	rec := Record{
		{Code: 0, Value: "DIMENSION"},
		{Code: 70, Value: "1"},
		{Code: 13, Value: "0"}, {Code: 23, Value: "0"},
		{Code: 14, Value: "10"}, {Code: 24, Value: "0"},
		{Code: 10, Value: "0"}, {Code: 20, Value: "5"},
		{Code: 42, Value: "9000000"},
	}
	_, err := ctx.renderDimension(rec)
	var fatal *InputError
	if !errors.As(err, &fatal) {
		t.Fatalf("out-of-bound override value: %v", err)
	}
}

func TestDimensionTextScale(t *testing.T) {
	rec := Record{
		{Code: 0, Value: "DIMENSION"},
		{Code: 70, Value: "1"},
		{Code: 13, Value: "0"}, {Code: 23, Value: "0"},
		{Code: 14, Value: "10"}, {Code: 24, Value: "0"},
		{Code: 10, Value: "0"}, {Code: 20, Value: "5"},
	}

	// the overall scale multiplies the resolved text height
	ctx := dimContext(t, &Document{Header: map[string]Record{
		"$DIMTXT":   {{Code: 40, Value: "2"}},
		"$DIMSCALE": {{Code: 40, Value: "3"}},
	}}, nil)
	r, err := ctx.renderDimension(rec)
	if err != nil {
		t.Fatal(err)
	}
	if got := dimensionText(t, r).Size; got != 6 {
		t.Errorf("scaled text size = %v, want 6", got)
	}

	// without a resolved height the scale has nothing to size
	ctx = dimContext(t, &Document{Header: map[string]Record{
		"$DIMSCALE": {{Code: 40, Value: "3"}},
	}}, nil)
	r, err = ctx.renderDimension(rec)
	if err != nil {
		t.Fatal(err)
	}
	if got := dimensionText(t, r).Size; got != 0 {
		t.Errorf("unset text size = %v, want 0", got)
	}
}

func TestDimensionStyleCascade(t *testing.T) {
	doc := &Document{
		Header: map[string]Record{
			"$DIMDEC":  {{Code: 70, Value: "1"}},
			"$DIMLFAC": {{Code: 40, Value: "2"}},
		},
		DimStyles: []Record{{
			{Code: 0, Value: "DIMSTYLE"},
			{Code: 2, Value: "FANCY"},
			{Code: 271, Value: "2"},
		}},
	}
	ctx := dimContext(t, doc, nil)

	// header defaults apply without a style reference
	ds, err := ctx.dimStyleFor(Record{{Code: 0, Value: "DIMENSION"}})
	if err != nil {
		t.Fatal(err)
	}
	if ds.precision != 1 || ds.lengthFactor != 2 {
		t.Errorf("header cascade: precision=%d lengthFactor=%v", ds.precision, ds.lengthFactor)
	}

	// a named style overrides the header
	ds, err = ctx.dimStyleFor(Record{
		{Code: 0, Value: "DIMENSION"},
		{Code: 3, Value: "fancy"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ds.precision != 2 {
		t.Errorf("table cascade: precision=%d", ds.precision)
	}

	// extended data overrides both
	ds, err = ctx.dimStyleFor(Record{
		{Code: 0, Value: "DIMENSION"},
		{Code: 3, Value: "FANCY"},
		{Code: 1001, Value: "ACAD"},
		{Code: 1002, Value: "{"},
		{Code: 1070, Value: "271"},
		{Code: 1070, Value: "3"},
		{Code: 1002, Value: "}"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ds.precision != 3 {
		t.Errorf("override cascade: precision=%d", ds.precision)
	}
}

func TestToleranceSpans(t *testing.T) {
	base := dimStyle{tolEnabled: true, precision: 2}

	// disabled or all-zero tolerances render nothing
	if got := toleranceSpans(dimStyle{tolPlus: 0.1, tolMinus: 0.1, precision: 2}); got != nil {
		t.Errorf("disabled tolerance rendered %v", got)
	}
	zero := base
	zero.tolPlus, zero.tolMinus = 0, 0
	if got := toleranceSpans(zero); got != nil {
		t.Errorf("zero tolerance rendered %v", got)
	}

	// equal bounds collapse to a single plus/minus
	eq := base
	eq.tolPlus, eq.tolMinus = 0.1, 0.1
	spans := toleranceSpans(eq)
	if len(spans) != 1 || spans[0].Text != "±0.1" {
		t.Fatalf("equal tolerance = %+v", spans)
	}

	// unequal bounds stack the upper over the lower
	uneq := base
	uneq.tolPlus, uneq.tolMinus = 0.2, 0.1
	spans = toleranceSpans(uneq)
	if len(spans) != 1 || len(spans[0].Children) != 2 {
		t.Fatalf("unequal tolerance = %+v", spans)
	}
	up, low := spans[0].Children[0], spans[0].Children[1]
	if up.Text != "+0.2" || up.DYEm != -0.35 {
		t.Errorf("upper bound = %+v", up)
	}
	if low.Text != "-0.1" || low.DYEm != 1 || low.DXEm >= 0 {
		t.Errorf("lower bound = %+v", low)
	}

	// a zero bound renders as the bare literal
	half := base
	half.tolPlus, half.tolMinus = 0.2, 0
	spans = toleranceSpans(half)
	if spans[0].Children[1].Text != "0" {
		t.Errorf("zero lower bound = %q", spans[0].Children[1].Text)
	}

	// unset bounds behave like zero
	nan := base
	nan.tolPlus, nan.tolMinus = math.NaN(), math.NaN()
	if got := toleranceSpans(nan); got != nil {
		t.Errorf("unset tolerance rendered %v", got)
	}
}
