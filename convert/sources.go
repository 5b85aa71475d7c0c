package convert

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"imgrule/images"
)

// resolveSources turns command line sources into list of image files.
// Files are taken in the order given, directories are walked recursively
// (symbolic links are not followed) and only recognized images are picked
// from them. Empty files are skipped everywhere.
func resolveSources(ctx context.Context, sources []string, log *zap.Logger) ([]string, error) {
	var paths []string
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("input source was not found (%s): %w", src, err)
		}

		switch {
		case info.IsDir():
			found, err := walkImages(ctx, src, log)
			if err != nil {
				return nil, fmt.Errorf("unable to process directory (%s): %w", src, err)
			}
			if len(found) == 0 {
				log.Debug("Nothing to process", zap.String("dir", src))
			}
			paths = append(paths, found...)
		case !info.Mode().IsRegular():
			return nil, fmt.Errorf("unexpected path mode for (%s)", src)
		case info.Size() == 0:
			log.Debug("Skipping empty file", zap.String("file", src))
		default:
			paths = append(paths, src)
		}
	}
	return paths, nil
}

func walkImages(ctx context.Context, dir string, log *zap.Logger) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if info.Size() == 0 {
			log.Debug("Skipping empty file", zap.String("file", path))
			return nil
		}

		ok, err := images.IsImage(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !ok {
			log.Debug("Skipping file, not recognized as image", zap.String("file", path))
			return nil
		}
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(natural.StringSlice(found))
	return found, nil
}
