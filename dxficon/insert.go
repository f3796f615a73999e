package dxficon

import "strings"

// Block instancing: an INSERT expands its block's entity list
// through the scene assembler recursively, wrapped in the composed
// instance transform.

// maxBlockDepth bounds block recursion so self-referencing blocks
// degrade into a diagnostic instead of unbounded expansion.
const maxBlockDepth = 64

func (ctx *context) renderInsert(rec Record) (*rendered, error) {
	name := strings.ToUpper(rec.str(2))
	block := ctx.doc.Blocks[name]
	if block == nil {
		ctx.opts.Diagnostic("reference to missing block "+name, rec)
		return nil, nil
	}
	if ctx.depth >= maxBlockDepth {
		ctx.opts.Diagnostic("block nesting too deep at "+name, rec)
		return nil, nil
	}

	x, err := numberDefault(rec, 10, 0)
	if err != nil {
		return nil, err
	}
	y, err := numberDefault(rec, 20, 0)
	if err != nil {
		return nil, err
	}
	sx, err := numberDefault(rec, 41, 1)
	if err != nil {
		return nil, err
	}
	sy, err := numberDefault(rec, 42, 1)
	if err != nil {
		return nil, err
	}
	rot, err := numberDefault(rec, 50, 0)
	if err != nil {
		return nil, err
	}

	// the instance color travels down as an inheritable default,
	// never overriding explicit colors on nested entities
	nested := ctx.fork(ctx.color(rec))
	elems, nestedExt, err := nested.assemble(stripDelimiters(block.Records))
	if err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return nil, nil
	}

	var ops []TransformOp
	if x != 0 || y != 0 {
		ops = append(ops, Translate{X: x, Y: -y})
	}
	if sx != 1 || sy != 1 {
		ops = append(ops, ScaleBy{X: sx, Y: sy})
	}
	if rot != 0 {
		ops = append(ops, RotateBy{Deg: -rot})
	}

	r := &rendered{el: Element{
		ID:        rec.Handle(),
		Transform: ops,
		Shape:     Group{Children: elems},
	}}
	// nested extents are remapped by translate+scale only; the
	// rotation is deliberately left out of the reported box
	if nestedExt.seen {
		r.xs = []float64{x + sx*nestedExt.minX, x + sx*nestedExt.maxX}
		r.ys = []float64{-y + sy*nestedExt.minY, -y + sy*nestedExt.maxY}
	}
	return r, nil
}

// stripDelimiters drops the block's own begin/end records when the
// block list still carries them.
func stripDelimiters(records []Record) []Record {
	out := records
	if len(out) > 0 && out[0].Type() == "BLOCK" {
		out = out[1:]
	}
	if len(out) > 0 && out[len(out)-1].Type() == "ENDBLK" {
		out = out[:len(out)-1]
	}
	return out
}
