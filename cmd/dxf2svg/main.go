// Command dxf2svg converts a DXF drawing to an SVG document, and
// optionally to a PNG preview.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"

	"github.com/benoitkugler/okdxf/dxficon"
	"github.com/benoitkugler/okdxf/dxfparse"
	"github.com/benoitkugler/okdxf/dxfraster"
	"github.com/benoitkugler/okdxf/dxfsvg"
)

func main() {
	var (
		output   = flag.String("o", "", "output file (default: input name with .svg extension, - for stdout)")
		pick     = flag.Bool("pick", false, "choose the input file with a dialog")
		pngOut   = flag.String("png", "", "also rasterize to this PNG file")
		pngScale = flag.Float64("scale", 1, "raster scale factor for -png")
		quiet    = flag.Bool("q", false, "silence conversion warnings")
	)
	flag.Parse()

	input := flag.Arg(0)
	if *pick {
		var err error
		input, err = zenity.SelectFile(
			zenity.Title("Choose a DXF drawing"),
			zenity.FileFilters{{Name: "DXF drawings", Patterns: []string{"*.dxf"}, CaseFold: true}},
		)
		if err != nil {
			log.Fatal(err)
		}
	}
	if input == "" {
		fmt.Fprintln(os.Stderr, "usage: dxf2svg [flags] drawing.dxf")
		flag.PrintDefaults()
		os.Exit(2)
	}

	f, err := os.Open(input)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	doc, err := dxfparse.Parse(f)
	if err != nil {
		log.Fatalf("parsing %s: %s", input, err)
	}

	opts := &dxficon.Options{}
	if *quiet {
		opts.Diagnostic = func(string, dxficon.Record) {}
	} else {
		opts.Diagnostic = func(msg string, _ dxficon.Record) {
			fmt.Fprintln(os.Stderr, "warning:", msg)
		}
	}
	scene, err := dxficon.Convert(doc, opts)
	if err != nil {
		log.Fatalf("converting %s: %s", input, err)
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	markup := dxfsvg.Marshal(scene)
	if out == "-" {
		os.Stdout.Write(markup)
	} else if err := os.WriteFile(out, markup, 0o644); err != nil {
		log.Fatal(err)
	}

	if *pngOut != "" {
		img := dxfraster.RasterSceneToImage(scene, *pngScale)
		pf, err := os.Create(*pngOut)
		if err != nil {
			log.Fatal(err)
		}
		defer pf.Close()
		if err := png.Encode(pf, img); err != nil {
			log.Fatal(err)
		}
	}
}
