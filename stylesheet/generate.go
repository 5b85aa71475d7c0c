// Package stylesheet generates CSS rules for a batch of images.
package stylesheet

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"imgrule/density"
	"imgrule/images"
	"imgrule/naming"
	"imgrule/render"
)

// Options controls generation.
type Options struct {
	// SelectorWithPseudo is selector pattern with {base} and {pseudo}
	// placeholders used for images named "base_pseudo.ext". Empty means
	// every image gets single class selector.
	SelectorWithPseudo string
}

// Generator runs generation pipeline. It is not safe for concurrent use,
// create one per run.
type Generator struct {
	prober    images.Prober
	templates render.Source
	workers   int
	log       *zap.Logger

	stage  Stage
	groups []density.Group
}

// New returns generator which probes images with prober and renders them
// with templates from source. workers limits concurrent probing, non
// positive means number of CPUs.
func New(prober images.Prober, templates render.Source, workers int, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		prober:    prober,
		templates: templates,
		workers:   workers,
		log:       log.Named("stylesheet"),
		stage:     StageIdle,
	}
}

// Stage returns where the generator is (or where it stopped).
func (g *Generator) Stage() Stage {
	return g.stage
}

// Groups returns density groups of the last run, nil if metadata collection
// did not complete.
func (g *Generator) Groups() []density.Group {
	return g.groups
}

func (g *Generator) enter(s Stage) {
	g.log.Debug("Stage changed", zap.Stringer("from", g.stage), zap.Stringer("to", s))
	g.stage = s
}

func (g *Generator) fail(err error) (string, error) {
	g.log.Debug("Generation failed", zap.Stringer("stage", g.stage), zap.Error(err))
	g.stage = StageFailed
	return "", err
}

// Generate produces CSS for images, URLs in it are relative to the
// directory of stylesheet. Empty list of images is not an error and gives
// empty CSS. Nothing is returned on failure.
func (g *Generator) Generate(ctx context.Context, paths []string, stylesheet string, opts Options) (css string, err error) {
	if g.stage != StageIdle {
		return "", fmt.Errorf("generator already used, stage %s", g.stage)
	}

	defer func(start time.Time) {
		if err == nil {
			g.log.Debug("Generation completed", zap.Int("images", len(paths)), zap.Int("bytes", len(css)), zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	if len(paths) == 0 {
		g.enter(StageDone)
		return "", nil
	}

	g.enter(StageCollectingMetadata)
	collector := images.NewCollector(g.prober, naming.NewParser(opts.SelectorWithPseudo), g.workers, g.log)
	records, err := collector.Collect(ctx, stylesheet, paths)
	if err != nil {
		return g.fail(err)
	}
	g.groups = density.GroupByRatio(records)

	g.enter(StageLoadingTemplates)
	renderer, err := render.Load(ctx, g.templates, g.log)
	if err != nil {
		return g.fail(err)
	}

	g.enter(StageRendering)
	if err := ctx.Err(); err != nil {
		return g.fail(err)
	}
	out, err := renderer.Render(g.groups)
	if err != nil {
		return g.fail(err)
	}

	g.enter(StageDone)
	return out, nil
}

// Generate is a shortcut running new Generator once.
func Generate(ctx context.Context, paths []string, stylesheet string, opts Options, prober images.Prober, templates render.Source, log *zap.Logger) (string, error) {
	return New(prober, templates, 0, log).Generate(ctx, paths, stylesheet, opts)
}
