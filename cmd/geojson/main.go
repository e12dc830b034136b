package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/geodesy/internal/format"
	"github.com/woozymasta/geodesy/internal/geo"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Input  string `short:"i" long:"in"     description:"Input file path, one \"lat,lng\" per line. Reads from stdin if empty"`
	Output string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	Format string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Kind   string `short:"k" long:"kind"   description:"Geometry to build" choice:"points" choice:"linestring" choice:"polygon" default:"linestring"`
	Name   string `short:"n" long:"name"   description:"Feature name property (points are numbered)"`
	Minify bool   `short:"m" long:"minify" description:"Minify JSON output"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Read Input
	var inputData []byte
	var err error

	if opts.Input != "" {
		inputData, err = os.ReadFile(opts.Input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
			os.Exit(1)
		}
	} else {
		inputData, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	points, err := format.ParseCoordinates(string(inputData), geo.WGS84)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing coordinates: %v\n", err)
		os.Exit(1)
	}

	fc, err := build(opts, points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building GeoJSON: %v\n", err)
		os.Exit(1)
	}

	// marshal
	doc, err := json.MarshalIndent(fc, "", "  ")
	if err == nil {
		doc, err = format.Encode(doc, opts.Format, opts.Minify)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, doc, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully converted %d points to %s (format: %s)\n", len(points), opts.Output, opts.Format)
	} else {
		fmt.Println(string(doc))
	}
}

func build(opts Options, points []geo.Coordinate) (*format.FeatureCollection, error) {
	fc := format.NewFeatureCollection()

	props := func(suffix string) map[string]any {
		if opts.Name == "" {
			return nil
		}
		return map[string]any{"name": opts.Name + suffix}
	}

	switch opts.Kind {
	case "points":
		for i, p := range points {
			if err := fc.Add(p, props(fmt.Sprintf(" %d", i+1))); err != nil {
				return nil, err
			}
		}
	case "polygon":
		if err := fc.Add(geo.NewPolygon(points...), props("")); err != nil {
			return nil, err
		}
	default:
		if len(points) < 2 {
			return nil, fmt.Errorf("linestring needs at least 2 points, got %d", len(points))
		}
		if err := fc.Add(geo.NewPolyline(points...), props("")); err != nil {
			return nil, err
		}
	}

	return fc, nil
}
