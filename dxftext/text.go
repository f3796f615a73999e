package dxftext

import "strings"

// Run is one stretch of single-line TEXT content sharing the same
// decoration flags.
type Run struct {
	Text      string
	Underline bool
	Overline  bool
	Strike    bool
}

// symbol replacements of the %% grammar
var textSymbols = map[byte]string{
	'd': "°",
	'p': "±",
	'c': "Ø",
	'%': "%",
}

// ParseText splits a single-line TEXT content string on its
// %%-escapes into styled runs. %%u, %%o and %%k toggle underline,
// overline and strike-through; %%d, %%p, %%c and %%% substitute
// symbols. Empty runs are dropped.
func ParseText(raw string) []Run {
	var (
		runs    []Run
		current Run
		text    strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			current.Text = text.String()
			runs = append(runs, current)
			text.Reset()
		}
	}
	for i := 0; i < len(raw); {
		if raw[i] != '%' || i+1 >= len(raw) || raw[i+1] != '%' {
			text.WriteByte(raw[i])
			i++
			continue
		}
		if i+2 >= len(raw) {
			// dangling %% at end of string
			break
		}
		code := raw[i+2] | 0x20 // lower-case
		switch code {
		case 'u':
			flush()
			current.Underline = !current.Underline
		case 'o':
			flush()
			current.Overline = !current.Overline
		case 'k':
			flush()
			current.Strike = !current.Strike
		default:
			if sym, ok := textSymbols[code]; ok {
				text.WriteString(sym)
			}
			// unknown %% codes are dropped
		}
		i += 3
	}
	flush()
	return runs
}
