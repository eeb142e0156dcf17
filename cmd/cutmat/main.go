// Command cutmat writes a cutting mat diagram, described by a JSON
// configuration, as SVG, PNG or PDF.
//
// Usage:
//
//	cutmat [-config mat.json] [-format svg|png|pdf] [-o output] [-scale 1] [-v]
//	cutmat -defaults > mat.json
//	cutmat -inspect mat.svg
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/cutmat/config"
	"github.com/benoitkugler/cutmat/mat"
	"github.com/benoitkugler/cutmat/svgdraw"
	"github.com/benoitkugler/cutmat/svgicon"
	"github.com/benoitkugler/cutmat/svgpdf"
	"github.com/benoitkugler/cutmat/svgraster"
	"golang.org/x/term"
)

// stdoutIsTerminal is replaced in tests.
var stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configFile string
	output     string
	format     string
	scale      float64
	defaults   bool
	inspect    string
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("cutmat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "JSON configuration file (default: the stock 12 x 18 inches mat)")
	fs.StringVar(&opts.output, "o", "", "output file, or - for the standard output (default: cutting-mat-<size>.<format>)")
	fs.StringVar(&opts.format, "format", "svg", "output format: svg, png or pdf")
	fs.Float64Var(&opts.scale, "scale", 1, "output pixels per document pixel, for png")
	fs.BoolVar(&opts.defaults, "defaults", false, "print the default configuration and exit")
	fs.StringVar(&opts.inspect, "inspect", "", "print the layers of an SVG mat and exit")
	fs.BoolVar(&opts.verbose, "v", false, "log debug information")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 0 {
		return opts, fmt.Errorf("unexpected arguments %v", fs.Args())
	}
	switch opts.format {
	case "svg", "png", "pdf":
	default:
		return opts, fmt.Errorf("unsupported format %q", opts.format)
	}
	if opts.scale <= 0 {
		return opts, fmt.Errorf("invalid scale %g", opts.scale)
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "cutmat:", err)
		}
		return 2
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	mat.SetLogger(logger)
	defer mat.SetLogger(nil)

	switch {
	case opts.defaults:
		err = config.Save(stdout, config.Default())
	case opts.inspect != "":
		err = inspect(stdout, opts.inspect)
	default:
		err = export(opts, stdout, logger)
	}
	if err != nil {
		fmt.Fprintln(stderr, "cutmat:", err)
		if errors.Is(err, config.ErrMissingFont) {
			fmt.Fprintln(stderr, "hint: run cutmat -defaults to see a complete configuration")
		}
		return 1
	}
	return 0
}

func loadConfig(file string) (config.Config, error) {
	if file == "" {
		return config.Default(), nil
	}
	return config.LoadFile(file)
}

func export(opts options, stdout io.Writer, logger *slog.Logger) (err error) {
	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return err
	}
	doc, err := mat.Engine{}.Build(cfg)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = mat.FileName(cfg.Canvas, opts.format)
	}
	var out io.Writer = stdout
	if output == "-" {
		if opts.format != "svg" && stdoutIsTerminal() {
			return fmt.Errorf("refusing to write %s data to a terminal, use -o", opts.format)
		}
	} else {
		f, errO := os.Create(output)
		if errO != nil {
			return errO
		}
		defer func() {
			if errC := f.Close(); err == nil {
				err = errC
			}
		}()
		out = f
	}

	var skipped []svgdraw.Text
	switch opts.format {
	case "svg":
		_, err = doc.WriteTo(out)
	case "png":
		skipped, err = svgraster.WritePNG(out, doc, opts.scale)
	case "pdf":
		skipped, err = svgpdf.Write(out, doc)
	}
	if err != nil {
		return err
	}
	for _, t := range skipped {
		logger.Warn("text not rendered", "format", opts.format, "content", t.Content, "family", t.Family)
	}
	logger.Debug("diagram written", "output", output, "elements", doc.Count())
	return nil
}

func inspect(stdout io.Writer, file string) error {
	icon, err := svgicon.ReadIcon(file, svgicon.WarnErrorMode)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "size: %s x %s (view box %g x %g)\n", icon.Width, icon.Height, icon.ViewBox.W, icon.ViewBox.H)
	for _, l := range icon.Summary() {
		fmt.Fprintf(stdout, "layer %q: %d lines, %d rects, %d glyph runs, %d texts\n", l.ID, l.Lines, l.Rects, l.Glyphs, l.Texts)
	}
	for _, ref := range icon.ExternalRefs {
		fmt.Fprintf(stdout, "external reference: %s\n", ref)
	}
	return nil
}
