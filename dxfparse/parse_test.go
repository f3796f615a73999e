package dxfparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/okdxf/dxficon"
)

// dxf assembles tag pairs into the newline-separated wire form.
func dxf(pairs ...string) string {
	return strings.Join(pairs, "\n") + "\n"
}

func TestScanner(t *testing.T) {
	content := dxf(
		"  0", "SECTION",
		"  2", "ENTITIES",
		" 10", "1.5",
		"  1", "  leading spaces kept",
		"  0", "ENDSEC",
	)
	s := NewScanner(strings.NewReader(content))
	var tags []dxficon.Tag
	for s.Next() {
		tags = append(tags, s.Tag())
	}
	require.NoError(t, s.Err())
	require.Len(t, tags, 5)
	assert.Equal(t, dxficon.Tag{Code: 0, Value: "SECTION"}, tags[0])
	assert.Equal(t, dxficon.Tag{Code: 10, Value: "1.5"}, tags[2])
	assert.Equal(t, dxficon.Tag{Code: 1, Value: "  leading spaces kept"}, tags[3])
}

func TestScannerMalformedCode(t *testing.T) {
	s := NewScanner(strings.NewReader("abc\nvalue\n"))
	assert.False(t, s.Next())
	assert.Error(t, s.Err())
}

func TestScannerCRLF(t *testing.T) {
	s := NewScanner(strings.NewReader("0\r\nLINE\r\n"))
	require.True(t, s.Next())
	assert.Equal(t, dxficon.Tag{Code: 0, Value: "LINE"}, s.Tag())
}

func TestParseSections(t *testing.T) {
	content := dxf(
		"0", "SECTION",
		"2", "HEADER",
		"9", "$DIMSCALE",
		"40", "2.0",
		"9", "$DIMTOL",
		"70", "1",
		"0", "ENDSEC",

		"0", "SECTION",
		"2", "TABLES",
		"0", "TABLE",
		"2", "LAYER",
		"0", "LAYER",
		"2", "WALLS",
		"62", "1",
		"0", "ENDTAB",
		"0", "TABLE",
		"2", "LTYPE",
		"0", "LTYPE",
		"2", "DASHED",
		"49", "0.5",
		"49", "-0.25",
		"0", "ENDTAB",
		"0", "ENDSEC",

		"0", "SECTION",
		"2", "BLOCKS",
		"0", "BLOCK",
		"2", "door",
		"0", "LINE",
		"10", "0",
		"20", "0",
		"11", "1",
		"21", "0",
		"0", "ENDBLK",
		"0", "ENDSEC",

		"0", "SECTION",
		"2", "ENTITIES",
		"0", "INSERT",
		"2", "DOOR",
		"0", "CIRCLE",
		"10", "5",
		"20", "5",
		"40", "2",
		"0", "ENDSEC",

		"0", "EOF",
	)
	doc, err := Parse(strings.NewReader(content))
	require.NoError(t, err)

	// header variables keyed by their $ name
	require.Contains(t, doc.Header, "$DIMSCALE")
	assert.Equal(t, "2.0", doc.Header["$DIMSCALE"][0].Value)

	// table entries, the TABLE/ENDTAB wrappers dropped
	require.Len(t, doc.Layers, 1)
	assert.Equal(t, "LAYER", doc.Layers[0].Type())
	require.Len(t, doc.LineTypes, 1)

	// blocks keyed by upper-cased name, without delimiters
	require.Contains(t, doc.Blocks, "DOOR")
	block := doc.Blocks["DOOR"]
	require.Len(t, block.Records, 1)
	assert.Equal(t, "LINE", block.Records[0].Type())

	// entities in file order
	require.Len(t, doc.Entities, 2)
	assert.Equal(t, "INSERT", doc.Entities[0].Type())
	assert.Equal(t, "CIRCLE", doc.Entities[1].Type())
}

func TestParseStopsAtEOFMarker(t *testing.T) {
	content := dxf(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "POINT",
		"0", "ENDSEC",
		"0", "EOF",
		"0", "SECTION", // garbage after the marker is ignored
		"2", "ENTITIES",
		"0", "LINE",
		"0", "ENDSEC",
	)
	doc, err := Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
	assert.Equal(t, "POINT", doc.Entities[0].Type())
}

func TestParseUnknownSectionSkipped(t *testing.T) {
	content := dxf(
		"0", "SECTION",
		"2", "OBJECTS",
		"0", "DICTIONARY",
		"0", "ENDSEC",
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LINE",
		"0", "ENDSEC",
		"0", "EOF",
	)
	doc, err := Parse(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, doc.Entities, 1)
}

func TestParseEndToEndConversion(t *testing.T) {
	content := dxf(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LINE",
		"10", "0",
		"20", "0",
		"11", "10",
		"21", "0",
		"0", "ENDSEC",
		"0", "EOF",
	)
	doc, err := Parse(strings.NewReader(content))
	require.NoError(t, err)

	scene, err := dxficon.Convert(doc, &dxficon.Options{
		Diagnostic: func(string, dxficon.Record) {},
	})
	require.NoError(t, err)
	require.Len(t, scene.Elements, 1)
	assert.Equal(t, dxficon.Bounds{X: 0, Y: 0, W: 10, H: 0}, scene.Bounds)
}
