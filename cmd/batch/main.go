package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/woozymasta/geodesy/internal/config"
	"github.com/woozymasta/geodesy/internal/logger"
	"github.com/woozymasta/geodesy/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"      env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	OutDir      string   `short:"o" long:"out"         env:"OUT_DIR"     description:"Output directory" default:"results"`
	Limit       []string `short:"l" long:"limit"       env:"LIMIT_NAMES" description:"Limit processing to specific job names"`
	Concurrency int      `short:"p" long:"concurrency" env:"CONCURRENCY" description:"Concurrency" default:"4"`
	Force       bool     `short:"f" long:"force"       description:"Force overwrite of existing files"`
	Minify      bool     `short:"m" long:"minify"      description:"Write minified GeoJSON"`
}

func main() {
	envErr := godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()
	if envErr != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Filter jobs if limit is set
	jobs := cfg.Jobs
	if len(opts.Limit) > 0 {
		jobs = make([]config.Job, 0, len(opts.Limit))
		available := make(map[string]config.Job, len(cfg.Jobs))
		for _, j := range cfg.Jobs {
			available[j.Name] = j
		}

		seen := make(map[string]bool)
		for _, name := range opts.Limit {
			if seen[name] {
				continue
			}
			seen[name] = true

			if j, ok := available[name]; ok {
				jobs = append(jobs, j)
			} else {
				log.Error().
					Str("name", name).
					Msg("Job specified in --limit not found in configuration")
			}
		}
	}

	p, err := processor.New(cfg, processor.Options{
		Client:      &http.Client{Timeout: 15 * time.Second},
		OutDir:      opts.OutDir,
		Concurrency: opts.Concurrency,
		Force:       opts.Force,
		Minify:      opts.Minify,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare batch")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Int("jobs_total", len(cfg.Jobs)).
		Int("jobs_queued", len(jobs)).
		Msg("Starting batch")

	if _, err := p.Run(ctx, jobs); err != nil {
		if errors.Is(err, processor.ErrJobsFailed) {
			log.Warn().Msg("Batch finished with failed jobs")
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("Batch failed")
	}

	log.Info().Msg("Batch finished successfully")
}
