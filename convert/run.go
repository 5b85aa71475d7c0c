// Package convert connects command line to stylesheet generation.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"imgrule/density"
	"imgrule/images"
	"imgrule/render"
	"imgrule/state"
	"imgrule/stylesheet"
)

// Run is the action of generate subcommand.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	sources := cmd.Args().Slice()
	if len(sources) == 0 {
		return errors.New("no input source has been specified")
	}

	dst := cmd.String("out")
	if len(dst) == 0 {
		dst = env.Cfg.Stylesheet.Destination
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	opts := stylesheet.Options{SelectorWithPseudo: env.Cfg.Stylesheet.SelectorWithPseudo}
	if cmd.IsSet("pseudo") {
		opts.SelectorWithPseudo = cmd.String("pseudo")
	}

	env.Overwrite = cmd.Bool("overwrite")

	log.Info("Processing starting", zap.Strings("sources", sources), zap.String("destination", dst))
	defer func(start time.Time) {
		if err == nil {
			log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	return process(ctx, sources, dst, opts, log)
}

// process does the work independently of cli framework.
func process(ctx context.Context, sources []string, dst string, opts stylesheet.Options, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	if err := checkDestination(dst, env.Overwrite); err != nil {
		return err
	}

	paths, err := resolveSources(ctx, sources, log)
	if err != nil {
		return err
	}
	env.Rpt.StoreData("sources.txt", []byte(strings.Join(paths, "\n")))

	templates := render.FileSource{
		Regular: env.Cfg.Stylesheet.Templates.Regular,
		Retina:  env.Cfg.Stylesheet.Templates.Retina,
	}
	for name, path := range map[string]string{"regular": templates.Regular, "retina": templates.Retina} {
		if len(path) == 0 {
			continue
		}
		if err := env.Rpt.StoreCopy("templates/"+name+filepath.Ext(path), path); err != nil {
			log.Warn("Unable to put template into report", zap.String("template", path), zap.Error(err))
		}
	}

	prober := images.FileProber{AutoOrientation: env.Cfg.Stylesheet.Images.AutoOrientation}
	gen := stylesheet.New(prober, templates, env.Cfg.Stylesheet.Images.Workers, log)

	css, err := gen.Generate(ctx, paths, dst, opts)
	if env.Rpt != nil && gen.Groups() != nil {
		env.Rpt.StoreData("groups.txt", []byte(density.Dump(gen.Groups())))
	}
	if err != nil {
		return fmt.Errorf("unable to generate stylesheet (stopped while %s): %w", gen.Stage(), err)
	}
	if len(paths) == 0 {
		log.Warn("No images found, writing empty stylesheet", zap.String("destination", dst))
	}
	env.Rpt.StoreData("result/"+filepath.Base(dst), []byte(css))

	if err := writeStylesheet(dst, css, env.Overwrite); err != nil {
		return err
	}
	log.Info("Stylesheet written", zap.String("file", dst), zap.Int("images", len(paths)), zap.Int("bytes", len(css)))
	return nil
}

func checkDestination(dst string, overwrite bool) error {
	info, err := os.Stat(dst)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("unable to check destination: %w", err)
	case info.IsDir():
		return fmt.Errorf("destination is a directory (%s)", dst)
	case !overwrite:
		return fmt.Errorf("destination already exists (%s), use --overwrite to replace it", dst)
	}
	return nil
}

// writeStylesheet writes css next to the destination first so the
// destination is never left half written.
func writeStylesheet(dst, css string, overwrite bool) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}
	if err := checkDestination(dst, overwrite); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(css); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	return nil
}
