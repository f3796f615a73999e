package dxfparse

import (
	"bytes"
	"io"
	"strings"

	"github.com/benoitkugler/okdxf/dxficon"
)

// Parse reads a complete DXF stream and assembles a Document.
// Values encoded with a legacy code page (declared by the
// $DWGCODEPAGE header variable) are transcoded to UTF-8.
func Parse(r io.Reader) (*dxficon.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// ParseBytes is Parse for in-memory content.
func ParseBytes(data []byte) (*dxficon.Document, error) {
	tags, err := readTags(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	decodeValues(tags)
	return buildDocument(tags), nil
}

// buildDocument walks section by section; unknown sections are
// skipped wholesale.
func buildDocument(tags []dxficon.Tag) *dxficon.Document {
	doc := &dxficon.Document{
		Header: map[string]dxficon.Record{},
		Blocks: map[string]*dxficon.Block{},
	}
	i := 0
	for i < len(tags) {
		if !(tags[i].Code == 0 && strings.EqualFold(tags[i].Value, "SECTION")) {
			i++
			continue
		}
		i++
		if i >= len(tags) || tags[i].Code != 2 {
			continue
		}
		name := strings.ToUpper(strings.TrimSpace(tags[i].Value))
		i++
		end := sectionEnd(tags, i)
		switch name {
		case "HEADER":
			parseHeader(doc, tags[i:end])
		case "TABLES":
			parseTables(doc, tags[i:end])
		case "BLOCKS":
			parseBlocks(doc, tags[i:end])
		case "ENTITIES":
			doc.Entities = splitRecords(tags[i:end])
		}
		i = end + 1 // past ENDSEC
	}
	return doc
}

func sectionEnd(tags []dxficon.Tag, from int) int {
	for i := from; i < len(tags); i++ {
		if tags[i].Code == 0 && strings.EqualFold(tags[i].Value, "ENDSEC") {
			return i
		}
	}
	return len(tags)
}

// parseHeader groups tags under the preceding $NAME (code 9) marker.
func parseHeader(doc *dxficon.Document, tags []dxficon.Tag) {
	var name string
	for _, t := range tags {
		if t.Code == 9 {
			name = strings.ToUpper(strings.TrimSpace(t.Value))
			continue
		}
		if name != "" {
			doc.Header[name] = append(doc.Header[name], t)
		}
	}
}

// parseTables collects the table entries the conversion consults;
// the surrounding TABLE/ENDTAB structure is irrelevant to it.
func parseTables(doc *dxficon.Document, tags []dxficon.Tag) {
	for _, rec := range splitRecords(tags) {
		switch rec.Type() {
		case "LAYER":
			doc.Layers = append(doc.Layers, rec)
		case "LTYPE":
			doc.LineTypes = append(doc.LineTypes, rec)
		case "DIMSTYLE":
			doc.DimStyles = append(doc.DimStyles, rec)
		}
	}
}

func parseBlocks(doc *dxficon.Document, tags []dxficon.Tag) {
	records := splitRecords(tags)
	var current *dxficon.Block
	for _, rec := range records {
		switch rec.Type() {
		case "BLOCK":
			name, _ := rec.Value(2)
			current = &dxficon.Block{Name: strings.ToUpper(strings.TrimSpace(name))}
		case "ENDBLK":
			if current != nil && current.Name != "" {
				doc.Blocks[current.Name] = current
			}
			current = nil
		default:
			if current != nil {
				current.Records = append(current.Records, rec)
			}
		}
	}
}

// splitRecords groups tags into records, each started by a code 0 tag.
func splitRecords(tags []dxficon.Tag) []dxficon.Record {
	var records []dxficon.Record
	var current dxficon.Record
	for _, t := range tags {
		if t.Code == 0 {
			if current != nil {
				records = append(records, current)
			}
			current = dxficon.Record{t}
			continue
		}
		if current != nil {
			current = append(current, t)
		}
	}
	if current != nil {
		records = append(records, current)
	}
	return records
}
