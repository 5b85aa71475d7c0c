package images

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"imgrule/common"
	"imgrule/naming"
)

// Collector builds image records.
type Collector struct {
	prober    Prober
	selectors *naming.Parser
	workers   int
	log       *zap.Logger
}

// NewCollector returns collector probing at most workers images at once.
// Non positive workers means number of CPUs.
func NewCollector(prober Prober, selectors *naming.Parser, workers int, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if selectors == nil {
		selectors = naming.NewParser("")
	}
	return &Collector{
		prober:    prober,
		selectors: selectors,
		workers:   workers,
		log:       log.Named("images"),
	}
}

// URL returns location of the image relative to the directory of the
// stylesheet using forward slashes.
func URL(stylesheet, image string) (string, error) {
	dir, err := filepath.Abs(filepath.Dir(stylesheet))
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(image)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Collect returns one record per path in the same order as paths. Images
// are probed concurrently, first failure cancels the rest and is returned.
func (c *Collector) Collect(ctx context.Context, stylesheet string, paths []string) ([]Record, error) {
	records := make([]Record, len(paths))

	// names are cheap and deterministic, report problems with them in input
	// order before touching any file
	for i, path := range paths {
		selector, err := c.selectors.ParseSelector(path)
		if err != nil {
			return nil, err
		}
		url, err := URL(stylesheet, path)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to make %q relative to stylesheet: %w", common.ErrIO, path, err)
		}
		ratio, _ := naming.ParseRatio(path)
		records[i] = Record{
			Path:     path,
			URL:      url,
			Selector: selector,
			Ratio:    ratio,
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers)

	for i := range records {
		eg.Go(func() error {
			dim, err := c.prober.Probe(egCtx, records[i].Path)
			if err != nil {
				return fmt.Errorf("%w: unable to probe %q: %w", common.ErrIO, records[i].Path, err)
			}
			records[i].Dimensions = dim
			c.log.Debug("Image probed",
				zap.String("path", records[i].Path),
				zap.String("selector", records[i].Selector),
				zap.Stringer("ratio", records[i].Ratio),
				zap.Int("width", dim.Width),
				zap.Int("height", dim.Height))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
