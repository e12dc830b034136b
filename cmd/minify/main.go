// Command minify renders the web UI into a single static index.html, for
// serving it from a CDN in front of the API server.
package main

import (
	"os"

	"github.com/woozymasta/geodesy/assets"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Output string `short:"o" long:"out" description:"Output file path" default:"index.html"`
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

	page, err := assets.Page()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render page")
	}

	if err := os.WriteFile(opts.Output, page, 0644); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write page")
	}

	log.Info().Str("path", opts.Output).Int("bytes", len(page)).Msg("Minify done")
}
