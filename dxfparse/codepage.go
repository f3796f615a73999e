package dxfparse

import (
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/benoitkugler/okdxf/dxficon"
)

// decodeValues transcodes string values in place when the header
// declares a legacy code page. UTF-8 content is left untouched.
func decodeValues(tags []dxficon.Tag) {
	enc := declaredEncoding(tags)
	if enc == nil {
		return
	}
	decoder := enc.NewDecoder()
	for i, t := range tags {
		if t.Value == "" {
			continue
		}
		decoded, _, err := transform.String(decoder, t.Value)
		if err == nil {
			tags[i].Value = decoded
		}
		decoder.Reset()
	}
}

// declaredEncoding resolves the $DWGCODEPAGE value to an encoding,
// or nil when absent, unknown, or already UTF-8.
func declaredEncoding(tags []dxficon.Tag) encoding.Encoding {
	label := ""
	for i, t := range tags {
		if t.Code == 9 && strings.EqualFold(strings.TrimSpace(t.Value), "$DWGCODEPAGE") {
			if i+1 < len(tags) {
				label = strings.TrimSpace(tags[i+1].Value)
			}
			break
		}
	}
	if label == "" {
		return nil
	}
	label = strings.ToLower(label)
	// AutoCAD spells windows code pages "ANSI_1252"
	label = strings.Replace(label, "ansi_", "windows-", 1)
	if label == "utf-8" || label == "utf8" {
		return nil
	}
	enc, name := charset.Lookup(label)
	if name == "utf-8" {
		return nil
	}
	return enc
}
