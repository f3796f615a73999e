package dxficon

import (
	"errors"
	"fmt"
)

// The scene assembler: ordered traversal of the entity list, vertex
// grouping, dispatch and per-entity fault isolation.

// assemble renders a record list into elements plus their running
// extents. A fault in one entity is reported and that entity alone
// omitted; only input sanity violations abort the traversal.
func (ctx *context) assemble(records []Record) ([]Element, extents, error) {
	ext := newExtents()
	var elems []Element
	for i := 0; i < len(records); i++ {
		rec := records[i]
		typ := rec.Type()
		if typ == "" {
			continue
		}

		// vertex sub-records immediately follow their polyline and
		// are grouped, with the optional trailing end marker consumed
		var vertices []Record
		if typ == "POLYLINE" {
			for i+1 < len(records) {
				switch records[i+1].Type() {
				case "VERTEX":
					vertices = append(vertices, records[i+1])
					i++
					continue
				case "SEQEND":
					i++
				}
				break
			}
		}

		r, err := ctx.interpret(rec, typ, vertices)
		if err != nil {
			var fatal *InputError
			if errors.As(err, &fatal) {
				return nil, ext, err
			}
			ctx.opts.Diagnostic(fmt.Sprintf("entity %s skipped: %v", typ, err), rec)
			continue
		}
		if r == nil {
			continue
		}
		elems = append(elems, r.el)
		ext.addX(r.xs...)
		ext.addY(r.ys...)
	}
	return elems, ext, nil
}

// interpret dispatches over the closed set of supported types, with
// an explicit arm for unrecognized ones. A panic while interpreting
// is converted into a per-entity error so one malformed record
// cannot take down the conversion.
func (ctx *context) interpret(rec Record, typ string, vertices []Record) (r *rendered, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			r, err = nil, fmt.Errorf("fault: %v", rv)
		}
	}()
	switch typ {
	case "POINT":
		return nil, nil // no visual output
	case "LINE":
		return ctx.renderLine(rec)
	case "LWPOLYLINE":
		return ctx.renderLWPolyline(rec)
	case "POLYLINE":
		return ctx.renderPolyline(rec, vertices)
	case "CIRCLE":
		return ctx.renderCircle(rec)
	case "ARC":
		return ctx.renderArc(rec)
	case "ELLIPSE":
		return ctx.renderEllipse(rec)
	case "LEADER":
		return ctx.renderLeader(rec)
	case "HATCH":
		return ctx.renderHatch(rec)
	case "SOLID":
		return ctx.renderSolid(rec)
	case "TEXT":
		return ctx.renderText(rec)
	case "MTEXT":
		return ctx.renderMText(rec)
	case "DIMENSION":
		return ctx.renderDimension(rec)
	case "ACAD_TABLE":
		return ctx.renderTable(rec)
	case "INSERT":
		return ctx.renderInsert(rec)
	case "VERTEX", "SEQEND":
		return nil, nil // stray polyline data outside a group
	default:
		ctx.opts.Diagnostic("unsupported entity type "+typ, rec)
		return nil, nil
	}
}
