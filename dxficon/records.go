// Provides conversion of parsed DXF documents into an abstract
// scene of 2D vector primitives plus an enclosing bounding box,
// which can then be consumed by painting drivers.
// See for example okdxf/dxfsvg or okdxf/dxfraster.
package dxficon

import "strings"

// Tag is one group code / value pair of a DXF record.
type Tag struct {
	Code  int
	Value string
}

// Record is the ordered tag sequence of one drawing object or
// table entry. A code may repeat (multi-valued attributes such as
// polyline vertex coordinates). Records are externally supplied
// and never mutated by the conversion.
type Record []Tag

// Type returns the entity type tag (code 0), upper-cased.
func (r Record) Type() string {
	for _, t := range r {
		if t.Code == 0 {
			return strings.ToUpper(strings.TrimSpace(t.Value))
		}
	}
	return ""
}

// Value returns the first value stored under the given group code.
func (r Record) Value(code int) (string, bool) {
	for _, t := range r {
		if t.Code == code {
			return t.Value, true
		}
	}
	return "", false
}

// Values returns every value stored under the given group code, in
// file order.
func (r Record) Values(code int) []string {
	var vs []string
	for _, t := range r {
		if t.Code == code {
			vs = append(vs, t.Value)
		}
	}
	return vs
}

// Has reports whether the record carries the given group code.
func (r Record) Has(code int) bool {
	_, ok := r.Value(code)
	return ok
}

// Handle returns the entity handle (code 5), used as a pass-through
// identifier on rendered primitives for traceability.
func (r Record) Handle() string {
	v, _ := r.Value(5)
	return strings.TrimSpace(v)
}

func (r Record) str(code int) string {
	v, _ := r.Value(code)
	return strings.TrimSpace(v)
}

// Block is a named reusable group of entity records, instantiated
// by INSERT references.
type Block struct {
	Name    string
	Records []Record
}

// Document is the parsed form of a DXF file: header variables,
// style tables, named blocks and the flat ordered entity list.
// Vertex records that belong to a polyline immediately follow it in
// Entities; the scene assembler groups them before dispatch.
type Document struct {
	Header    map[string]Record // $VARIABLE name -> value tags
	Layers    []Record          // LAYER table entries
	LineTypes []Record          // LTYPE table entries
	DimStyles []Record          // DIMSTYLE table entries
	Blocks    map[string]*Block // upper-cased block name -> block
	Entities  []Record
}

// headerVar returns the tags of a header variable, or nil.
func (d *Document) headerVar(name string) Record {
	if d == nil || d.Header == nil {
		return nil
	}
	return d.Header[strings.ToUpper(name)]
}
