// Package dxfparse tokenizes DXF content into repeatable group
// code / value pairs, in file order, and assembles the Document
// consumed by dxficon.
package dxfparse

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/benoitkugler/okdxf/dxficon"
)

// Scanner reads one tag pair (a code line followed by a value line)
// at a time.
type Scanner struct {
	reader *bufio.Reader
	tag    dxficon.Tag
	err    error
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// Next advances to the next tag, returning false at the end of the
// input or on a malformed pair.
func (s *Scanner) Next() bool {
	for {
		codeLine, err := s.reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				s.err = err
			} else if strings.TrimSpace(codeLine) != "" {
				s.err = io.ErrUnexpectedEOF
			}
			return false
		}
		codeStr := strings.TrimSpace(codeLine)
		if codeStr == "" { // skip blank lines between pairs
			continue
		}
		code, err := strconv.Atoi(codeStr)
		if err != nil {
			s.err = err
			return false
		}
		valueLine, err := s.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			s.err = err
			return false
		}
		// keep leading spaces of the value, they are significant
		s.tag = dxficon.Tag{Code: code, Value: strings.TrimRight(valueLine, "\r\n")}
		return true
	}
}

// Tag returns the last tag read by Next.
func (s *Scanner) Tag() dxficon.Tag { return s.tag }

// Err reports the first error encountered, if any.
func (s *Scanner) Err() error { return s.err }

// readTags drains the scanner, stopping at the end-of-file marker.
func readTags(r io.Reader) ([]dxficon.Tag, error) {
	s := NewScanner(r)
	var tags []dxficon.Tag
	for s.Next() {
		t := s.Tag()
		if t.Code == 0 && strings.EqualFold(strings.TrimSpace(t.Value), "EOF") {
			break
		}
		tags = append(tags, t)
	}
	return tags, s.Err()
}
