// Package dxftext parses the escaped text grammars embedded in DXF
// annotation entities: the rich multi-line MTEXT grammar into a
// token tree, and the %%-escapes of single-line TEXT into styled
// runs. It performs no layout; the geometry lives with the caller.
package dxftext

import (
	"strconv"
	"strings"
)

// Node is one token of parsed multi-line text. The set of
// implementations is closed: Text, Seq, Fraction, Font and Oblique.
type Node interface {
	node()
}

// Text is a plain text leaf. Paragraph breaks appear as '\n'.
type Text string

// Seq is a braced group: formatting started inside it does not leak
// out.
type Seq []Node

// Fraction is a stacked fraction with numerator over denominator.
type Fraction struct {
	Num, Den string
}

// Font switches the font of the content that follows it within the
// current group. A Scale-only switch (zero Family) carries a
// relative height change.
type Font struct {
	Family       string
	Bold, Italic bool
	Scale        float64 // 0 when unset
}

// Oblique skews the content that follows it by the given angle in
// degrees.
type Oblique float64

func (Text) node()     {}
func (Seq) node()      {}
func (Fraction) node() {}
func (Font) node()     {}
func (Oblique) node()  {}

// ParseMText parses a raw MTEXT content string into its token tree.
// Unknown control codes are consumed and dropped; the parser never
// fails.
func ParseMText(raw string) []Node {
	nodes, _ := parseSeq(raw, 0, false)
	return nodes
}

// parseSeq parses until the end of input or, when nested, the
// closing brace.
func parseSeq(s string, i int, nested bool) ([]Node, int) {
	var (
		nodes []Node
		text  strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, Text(text.String()))
			text.Reset()
		}
	}
	for i < len(s) {
		switch c := s[i]; c {
		case '{':
			flush()
			var inner []Node
			inner, i = parseSeq(s, i+1, true)
			nodes = append(nodes, Seq(inner))
		case '}':
			if nested {
				flush()
				return nodes, i + 1
			}
			text.WriteByte(c)
			i++
		case '\\':
			if i+1 >= len(s) {
				i++
				break
			}
			var node Node
			node, i = parseControl(s, i+1, &text)
			if node != nil {
				flush()
				nodes = append(nodes, node)
			}
		default:
			text.WriteByte(c)
			i++
		}
	}
	flush()
	return nodes, i
}

// parseControl handles one backslash code starting at s[i]. Literal
// escapes are written to text directly; structural codes return a
// node.
func parseControl(s string, i int, text *strings.Builder) (Node, int) {
	switch c := s[i]; c {
	case '\\', '{', '}':
		text.WriteByte(c)
		return nil, i + 1
	case 'P':
		text.WriteByte('\n')
		return nil, i + 1
	case '~':
		text.WriteByte(' ')
		return nil, i + 1
	case 'S':
		arg, next := controlArg(s, i+1)
		num, den := splitFraction(arg)
		return Fraction{Num: num, Den: den}, next
	case 'f', 'F':
		arg, next := controlArg(s, i+1)
		return parseFontArg(arg), next
	case 'H':
		arg, next := controlArg(s, i+1)
		if scale, ok := strings.CutSuffix(arg, "x"); ok {
			if v, err := strconv.ParseFloat(strings.TrimSpace(scale), 64); err == nil && v > 0 {
				return Font{Scale: v}, next
			}
		}
		return nil, next
	case 'Q':
		arg, next := controlArg(s, i+1)
		if v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64); err == nil {
			return Oblique(v), next
		}
		return nil, next
	case 'L', 'l', 'O', 'o', 'K', 'k':
		// decoration toggles carry no geometry here
		return nil, i + 1
	default:
		// unknown code: consume its ;-terminated argument if any
		_, next := controlArg(s, i+1)
		return nil, next
	}
}

// controlArg reads a ;-terminated argument.
func controlArg(s string, i int) (string, int) {
	if j := strings.IndexByte(s[i:], ';'); j >= 0 {
		return s[i : i+j], i + j + 1
	}
	return s[i:], len(s)
}

// splitFraction splits the \S argument on its first separator
// (^, / or #).
func splitFraction(arg string) (num, den string) {
	if j := strings.IndexAny(arg, "^/#"); j >= 0 {
		return strings.TrimSpace(arg[:j]), strings.TrimSpace(arg[j+1:])
	}
	return strings.TrimSpace(arg), ""
}

// parseFontArg parses the |-separated \f argument:
// family|b0|i1|c0|p0.
func parseFontArg(arg string) Font {
	parts := strings.Split(arg, "|")
	f := Font{Family: strings.TrimSpace(parts[0])}
	for _, p := range parts[1:] {
		p = strings.TrimSpace(p)
		if len(p) < 2 {
			continue
		}
		switch p[0] {
		case 'b':
			f.Bold = p[1] == '1'
		case 'i':
			f.Italic = p[1] == '1'
		}
	}
	return f
}
