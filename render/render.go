// Package render turns groups of images into CSS text using one template
// per density tier.
package render

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"imgrule/common"
	"imgrule/density"
	"imgrule/images"
)

// Data is what templates are executed with.
type Data struct {
	Images []images.Record
	// Ratio is plain int so templates could do arithmetic with it
	Ratio int
	// DPI is resolution matching Ratio, for media queries
	DPI  int
	Tier string
}

// NewData prepares template data for the group.
func NewData(g density.Group) Data {
	return Data{
		Images: g.Images,
		Ratio:  int(g.Ratio),
		DPI:    g.Ratio.DPI(),
		Tier:   g.Tier().String(),
	}
}

// Renderer keeps compiled templates for all tiers.
type Renderer struct {
	templates map[common.Tier]*template.Template
	log       *zap.Logger
}

// Load reads and compiles templates for all tiers concurrently. First
// failure cancels the rest and is returned.
func Load(ctx context.Context, src Source, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	tiers := common.Tiers()
	compiled := make([]*template.Template, len(tiers))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, tier := range tiers {
		eg.Go(func() error {
			text, err := src.Load(egCtx, tier)
			if err != nil {
				return fmt.Errorf("%w: unable to load %s template: %w", common.ErrTemplateLoad, tier, err)
			}
			tmpl, err := template.New(tier.String()).Funcs(funcMap()).Option("missingkey=error").Parse(text)
			if err != nil {
				return fmt.Errorf("%w: unable to parse %s template: %w", common.ErrTemplateLoad, tier, err)
			}
			compiled[i] = tmpl
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	r := &Renderer{
		templates: make(map[common.Tier]*template.Template, len(tiers)),
		log:       log.Named("render"),
	}
	for i, tier := range tiers {
		r.templates[tier] = compiled[i]
	}
	return r, nil
}

// Render executes template matching each group and concatenates results,
// every fragment followed by a new line. Groups are rendered in order given.
func (r *Renderer) Render(groups []density.Group) (string, error) {
	var (
		out  bytes.Buffer
		frag bytes.Buffer
	)
	for _, g := range groups {
		tier := g.Tier()
		tmpl, ok := r.templates[tier]
		if !ok {
			return "", fmt.Errorf("%w: no template for tier %s", common.ErrRender, tier)
		}

		frag.Reset()
		if err := tmpl.Execute(&frag, NewData(g)); err != nil {
			return "", fmt.Errorf("%w: %s template failed for ratio %s: %w", common.ErrRender, tier, g.Ratio, err)
		}
		r.log.Debug("Group rendered", zap.Stringer("ratio", g.Ratio), zap.Stringer("template", tier),
			zap.Int("images", len(g.Images)), zap.Int("bytes", frag.Len()))

		out.Write(frag.Bytes())
		out.WriteByte('\n')
	}
	return out.String(), nil
}
