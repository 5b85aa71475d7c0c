package render

import (
	"context"
	"embed"
	"fmt"
	"os"

	"imgrule/common"
)

//go:embed templates/*.css.tmpl
var embedded embed.FS

var embeddedNames = map[common.Tier]string{
	common.TierRegular: "templates/regular.css.tmpl",
	common.TierRetina:  "templates/retina.css.tmpl",
}

// Source supplies template text for the tier.
type Source interface {
	Load(ctx context.Context, tier common.Tier) (string, error)
}

type embeddedSource struct{}

// Embedded is the source of built-in templates.
var Embedded Source = embeddedSource{}

func (embeddedSource) Load(ctx context.Context, tier common.Tier) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, ok := embeddedNames[tier]
	if !ok {
		return "", fmt.Errorf("no built-in template for tier %s", tier)
	}
	data, err := embedded.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FileSource reads templates from files. Tier with empty path gets built-in
// template.
type FileSource struct {
	Regular string
	Retina  string
}

func (s FileSource) Load(ctx context.Context, tier common.Tier) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var path string
	switch tier {
	case common.TierRegular:
		path = s.Regular
	case common.TierRetina:
		path = s.Retina
	default:
		return "", fmt.Errorf("unknown template tier %s", tier)
	}
	if len(path) == 0 {
		return Embedded.Load(ctx, tier)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MapSource keeps templates in memory.
type MapSource map[common.Tier]string

func (s MapSource) Load(ctx context.Context, tier common.Tier) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, ok := s[tier]
	if !ok {
		return "", fmt.Errorf("template for tier %s is not defined", tier)
	}
	return text, nil
}
