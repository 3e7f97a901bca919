package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/fire-map-etl/internal/domain"
	"github.com/couchcryptid/fire-map-etl/internal/observability"
)

// Extractor reads the raw incident table from the source.
type Extractor interface {
	Extract(ctx context.Context) (domain.Table, error)
}

// Loader writes the assembled map document to its destination.
type Loader interface {
	Load(ctx context.Context, doc domain.MapDocument) error
}

// Options are the per-run presentation and windowing settings.
type Options struct {
	Horizon time.Time
	Title   string
	Zoom    int
}

// Result summarizes a successful run.
type Result struct {
	RowsRead int
	Records  int
	Dropped  domain.DropStats
	Years    []int
	Markers  int
	Features int
	Geocoded domain.EnrichStats
	Document domain.MapDocument
}

// Pipeline runs the extract, clean, build, assemble and write stages once.
type Pipeline struct {
	extractor Extractor
	loader    Loader
	geocoder  domain.Geocoder
	opts      Options
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
// A zero Horizon falls back to domain.DefaultHorizon.
func New(e Extractor, l Loader, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	if opts.Horizon.IsZero() {
		opts.Horizon = domain.DefaultHorizon
	}
	return &Pipeline{
		extractor: e,
		loader:    l,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// WithGeocoder enables place-name enrichment between cleaning and building.
func (p *Pipeline) WithGeocoder(g domain.Geocoder) *Pipeline {
	p.geocoder = g
	return p
}

// Run executes the pipeline. Any fatal condition is returned as a
// *domain.StageError and nothing is written.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := domain.Now()
	defer func() {
		p.metrics.RunDuration.Observe(domain.Now().Sub(start).Seconds())
	}()

	p.logger.Info("pipeline started", "horizon", domain.FormatDate(p.opts.Horizon))

	stageStart := domain.Now()
	table, err := p.extractor.Extract(ctx)
	if err != nil {
		return Result{}, p.fail(domain.StageExtract, err)
	}
	p.observeStage(domain.StageExtract, stageStart)
	p.metrics.RowsRead.Add(float64(len(table.Rows)))

	stageStart = domain.Now()
	records, dropped, err := domain.LoadRecords(table)
	for reason, n := range dropped {
		p.metrics.RowsDropped.WithLabelValues(reason).Add(float64(n))
	}
	if err != nil {
		return Result{}, p.fail(domain.StageLoad, err)
	}
	p.observeStage(domain.StageLoad, stageStart)
	p.metrics.RecordsLoaded.Add(float64(len(records)))
	p.logger.Info("records loaded",
		"source", table.Source,
		"rows", len(table.Rows),
		"records", len(records),
		"dropped", dropped.Total(),
	)
	if dropped.Total() > 0 {
		p.logger.Debug("rows dropped", "by_reason", map[string]int(dropped))
	}

	var geocoded domain.EnrichStats
	if p.geocoder != nil {
		stageStart = domain.Now()
		records, geocoded = domain.EnrichWithGeocoding(ctx, records, p.geocoder, p.logger)
		p.observeStage(domain.StageEnrich, stageStart)
		p.logger.Info("geocoding complete",
			"resolved", geocoded.Resolved,
			"empty", geocoded.Empty,
			"failed", geocoded.Failed,
		)
	}

	stageStart = domain.Now()
	layers := domain.BuildYearLayers(records)
	features := domain.BuildTimeFeatures(records, p.opts.Horizon)
	doc, err := domain.AssembleMap(records, layers, features, domain.MapOptions{
		Title: p.opts.Title,
		Zoom:  p.opts.Zoom,
	})
	if err != nil {
		return Result{}, p.fail(domain.StageAssemble, err)
	}
	p.observeStage(domain.StageAssemble, stageStart)
	p.metrics.MarkersBuilt.Add(float64(layers.MarkerCount()))
	p.metrics.FeaturesBuilt.Add(float64(len(features)))
	p.metrics.YearLayers.Set(float64(len(layers.Years)))

	stageStart = domain.Now()
	if err := p.loader.Load(ctx, doc); err != nil {
		return Result{}, p.fail(domain.StageWrite, err)
	}
	p.observeStage(domain.StageWrite, stageStart)
	p.metrics.LastSuccess.Set(float64(domain.Now().Unix()))

	p.logger.Info("pipeline finished",
		"years", len(layers.Years),
		"markers", layers.MarkerCount(),
		"features", len(features),
	)

	return Result{
		RowsRead: len(table.Rows),
		Records:  len(records),
		Dropped:  dropped,
		Years:    layers.Years,
		Markers:  layers.MarkerCount(),
		Features: len(features),
		Geocoded: geocoded,
		Document: doc,
	}, nil
}

func (p *Pipeline) observeStage(stage string, start time.Time) {
	p.metrics.StageDuration.WithLabelValues(stage).Observe(domain.Now().Sub(start).Seconds())
}

func (p *Pipeline) fail(stage string, err error) error {
	p.metrics.RunFailures.WithLabelValues(stage).Inc()
	p.logger.Error("pipeline failed", "stage", stage, "error", err)
	return domain.NewStageError(stage, err)
}
