// Package processor runs batch geodesic jobs on a bounded worker pool and
// writes the results as GeoJSON with optional WebP previews.
package processor

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/woozymasta/geodesy/internal/config"
	"github.com/woozymasta/geodesy/internal/format"
	"github.com/woozymasta/geodesy/internal/geo"
	"github.com/woozymasta/geodesy/internal/metrics"

	"github.com/rs/zerolog/log"
)

// ResultsFile is the name of the FeatureCollection written to the output directory.
const ResultsFile = "results.geojson"

// ErrJobsFailed is returned by Run when at least one job failed.
var ErrJobsFailed = errors.New("some jobs failed")

// Options controls a batch run.
type Options struct {
	Client      *http.Client       // for http sources, defaults to a client with a 15s timeout
	Metrics     *metrics.Collector // optional
	OutDir      string
	Concurrency int
	Force       bool // overwrite existing outputs
	Minify      bool
}

// Processor evaluates jobs from a configuration.
type Processor struct {
	registry *geo.Registry
	distance geo.DistanceCalculator
	metrics  *metrics.Collector
	client   *http.Client
	model    string
	opts     Options
	preview  config.Preview
}

// New prepares a processor for cfg.
func New(cfg *config.Config, opts Options) (*Processor, error) {
	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	calc, err := cfg.DistanceCalculator()
	if err != nil {
		return nil, err
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &Processor{
		registry: registry,
		distance: calc,
		metrics:  opts.Metrics,
		client:   client,
		model:    cfg.Distance,
		opts:     opts,
		preview:  cfg.Preview,
	}, nil
}

// Run processes all jobs and writes ResultsFile. When ResultsFile already
// exists and Force is unset nothing is done and nil results are returned.
// Failed jobs are logged and left out of the collection; Run then returns
// ErrJobsFailed together with every result.
func (p *Processor) Run(ctx context.Context, jobs []config.Job) ([]Result, error) {
	path := filepath.Join(p.opts.OutDir, ResultsFile)
	if _, err := os.Stat(path); err == nil && !p.opts.Force {
		log.Info().Str("path", path).Msg("Results file exists, skipping")
		return nil, nil
	}

	log.Info().
		Int("jobs", len(jobs)).
		Int("concurrency", p.opts.Concurrency).
		Str("out", p.opts.OutDir).
		Msg("Starting batch")

	results := p.processBatch(ctx, jobs)
	if err := ctx.Err(); err != nil {
		return results, err
	}

	fc := format.NewFeatureCollection()
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Error().Err(res.Err).Str("job", res.Job.Name).Msg("Job failed")
			continue
		}

		if err := fc.Add(res.Geometry, res.Properties()); err != nil {
			return results, err
		}
		log.Debug().
			Str("job", res.Job.Name).
			Str("kind", res.Kind).
			Int("points", res.Points).
			Msg("Job done")
	}

	if err := saveGeoJSON(p.opts.OutDir, path, fc, p.opts.Minify); err != nil {
		return results, err
	}

	log.Info().
		Int("done", len(results)-failed).
		Int("failed", failed).
		Str("path", path).
		Msg("Batch finished")

	if failed > 0 {
		return results, ErrJobsFailed
	}

	return results, nil
}

type task struct {
	job   config.Job
	index int
}

// processBatch evaluates jobs with a fixed number of workers and returns
// the results in job order.
func (p *Processor) processBatch(ctx context.Context, jobs []config.Job) []Result {
	tasks := make(chan task, len(jobs))
	results := make(chan Result, len(jobs))

	go func() {
		defer close(tasks)
		for i, j := range jobs {
			select {
			case tasks <- task{job: j, index: i}:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < p.opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				if ctx.Err() != nil {
					results <- Result{Index: t.index, Job: t.job, Err: ctx.Err()}
					continue
				}
				results <- p.evaluate(ctx, t.index, t.job)
			}
		}()
	}
	wg.Wait()
	close(results)

	out := make([]Result, 0, len(jobs))
	for res := range results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	return out
}
