package dxficon

import "github.com/benoitkugler/okdxf/dxftext"

// ACAD_TABLE rendering: a grid of cumulative row/column offsets,
// per-cell borders and multi-line cell text, grouped at the table
// insertion point.

const (
	codeTableRows     = 91
	codeTableCols     = 92
	codeRowHeight     = 141
	codeColWidth      = 142
	codeCellType      = 171
	codeCellSuppress  = 174
	cellTypeText      = 1
	cellTypeBlock     = 2
	cellInsetFraction = 0.05
)

type tableCell struct {
	kind     int
	text     string
	suppress bool
}

// tableCells walks the record tags once, starting a new cell at
// every cell-type tag.
func tableCells(rec Record) []tableCell {
	var cells []tableCell
	start := -1
	for i, t := range rec {
		if t.Code == codeCellType {
			cells = append(cells, tableCell{kind: atoiDefault(t.Value, cellTypeText)})
			start = i
			continue
		}
		if start < 0 || len(cells) == 0 {
			continue
		}
		cur := &cells[len(cells)-1]
		switch t.Code {
		case 1, 3:
			cur.text += t.Value
		case codeCellSuppress:
			cur.suppress = atoiDefault(t.Value, 0) != 0
		}
	}
	return cells
}

func cumulative(sizes []float64, n int) []float64 {
	offs := make([]float64, n+1)
	for i := 0; i < n; i++ {
		size := 0.0
		if i < len(sizes) {
			size = sizes[i]
		}
		offs[i+1] = offs[i] + size
	}
	return offs
}

func (ctx *context) renderTable(rec Record) (*rendered, error) {
	x, err := numberDefault(rec, 10, 0)
	if err != nil {
		return nil, err
	}
	y, err := numberDefault(rec, 20, 0)
	if err != nil {
		return nil, err
	}
	rows := integer(rec, codeTableRows, 0)
	cols := integer(rec, codeTableCols, 0)
	if rows <= 0 || cols <= 0 {
		return nil, nil
	}
	heights, err := numbers(rec, codeRowHeight)
	if err != nil {
		return nil, err
	}
	widths, err := numbers(rec, codeColWidth)
	if err != nil {
		return nil, err
	}
	if anyNaN(heights...) || anyNaN(widths...) {
		ctx.opts.Diagnostic("incomplete ACAD_TABLE geometry", rec)
		return nil, nil
	}
	rowOff := cumulative(heights, rows)
	colOff := cumulative(widths, cols)
	cells := tableCells(rec)

	group := Group{}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var cell tableCell
			if i := r*cols + c; i < len(cells) {
				cell = cells[i]
			}
			if !cell.suppress {
				group.Children = append(group.Children, Element{
					Shape: PathShape{Ops: []PathOp{
						MoveTo{X: colOff[c], Y: rowOff[r]},
						LineTo{X: colOff[c+1], Y: rowOff[r]},
						LineTo{X: colOff[c+1], Y: rowOff[r+1]},
						LineTo{X: colOff[c], Y: rowOff[r+1]},
						ClosePath{},
					}},
				})
			}
			switch cell.kind {
			case cellTypeBlock:
				ctx.opts.Diagnostic("unsupported block table cell", rec)
			case cellTypeText:
				if cell.text == "" {
					continue
				}
				spans := ctx.layoutNodes(dxftext.ParseMText(cell.text))
				if len(spans) == 0 {
					continue
				}
				group.Children = append(group.Children, Element{
					Shape: Text{
						X:        colOff[c] + (colOff[c+1]-colOff[c])*cellInsetFraction,
						Y:        rowOff[r] + (rowOff[r+1]-rowOff[r])*cellInsetFraction,
						Baseline: "hanging",
						Spans:    spans,
					},
				})
			}
		}
	}

	el := Element{
		ID:        rec.Handle(),
		Stroke:    ctx.color(rec),
		Dash:      ctx.dash(rec),
		Transform: []TransformOp{Translate{X: x, Y: -y}},
		Shape:     group,
	}
	r := &rendered{
		el: el,
		xs: []float64{x, x + colOff[cols]},
		ys: []float64{-y, -y + rowOff[rows]},
	}
	return r, nil
}
