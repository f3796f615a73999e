package dxficon

import (
	"log"

	"github.com/benoitkugler/okdxf/dxftext"
)

// FontRequest describes a font switch inside multi-line text. The
// resolver hook may substitute an equivalent font.
type FontRequest struct {
	Family       string
	Bold, Italic bool
	Scale        float64
}

// Options configures one conversion. All fields are optional.
type Options struct {
	// Diagnostic receives every report about skipped, unsupported
	// or faulted entities; rec may be nil. The default logs the
	// message.
	Diagnostic func(msg string, rec Record)

	// Palette maps color indices to display colors; defaults to
	// DefaultPalette.
	Palette func(index int) Color

	// ResolveFont may substitute fonts requested by text content;
	// defaults to the identity.
	ResolveFont func(FontRequest) FontRequest
}

func (o *Options) withDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.Diagnostic == nil {
		out.Diagnostic = func(msg string, rec Record) { log.Println("dxficon:", msg) }
	}
	if out.Palette == nil {
		out.Palette = DefaultPalette
	}
	if out.ResolveFont == nil {
		out.ResolveFont = func(r FontRequest) FontRequest { return r }
	}
	return &out
}

// Convert renders the document's entity list into a scene of 2D
// primitives and the enclosing bounding box. The conversion is a
// pure function of (doc, opts): faulted or unsupported entities are
// reported through the diagnostic sink and omitted, and only a
// numeric field beyond the input sanity bound aborts the whole
// conversion.
func Convert(doc *Document, opts *Options) (Scene, error) {
	ctx, err := newContext(doc, opts.withDefaults())
	if err != nil {
		return Scene{}, err
	}
	elems, ext, err := ctx.assemble(doc.Entities)
	if err != nil {
		return Scene{}, err
	}
	return Scene{Elements: elems, Bounds: ext.bounds()}, nil
}

// resolveFont runs a parsed font token through the option hook.
func (ctx *context) resolveFont(f dxftext.Font) FontRequest {
	return ctx.opts.ResolveFont(FontRequest{
		Family: f.Family,
		Bold:   f.Bold,
		Italic: f.Italic,
		Scale:  f.Scale,
	})
}
