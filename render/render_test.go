package render

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap/zaptest"

	"imgrule/common"
	"imgrule/density"
	"imgrule/images"
)

func scenarioGroups() []density.Group {
	return density.GroupByRatio([]images.Record{
		{Path: "icon.png", URL: "icon.png", Selector: ".icon", Ratio: 1, Dimensions: images.Dimensions{Width: 10, Height: 20}},
		{Path: "icon@2x.png", URL: "icon@2x.png", Selector: ".icon", Ratio: 2, Dimensions: images.Dimensions{Width: 20, Height: 40}},
	})
}

func TestRender_SelectsTemplateByTier(t *testing.T) {
	src := MapSource{
		common.TierRegular: `REGULAR ratio={{ .Ratio }} dpi={{ .DPI }}{{ range .Images }} {{ .URL }}{{ end }}`,
		common.TierRetina:  `RETINA ratio={{ .Ratio }} dpi={{ .DPI }}{{ range .Images }} {{ .URL }}{{ end }}`,
	}
	r, err := Load(context.Background(), src, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got, err := r.Render(scenarioGroups())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "REGULAR ratio=1 dpi=96 icon.png\nRETINA ratio=2 dpi=192 icon@2x.png\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_GroupOrderIsKept(t *testing.T) {
	src := MapSource{
		common.TierRegular: `R{{ .Ratio }}`,
		common.TierRetina:  `X{{ .Ratio }}`,
	}
	r, err := Load(context.Background(), src, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	groups := density.GroupByRatio([]images.Record{{Ratio: 3}, {Ratio: 1}, {Ratio: 2}})
	got, err := r.Render(groups)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "X3\nR1\nX2\n" {
		t.Errorf("Render() = %q, want %q", got, "X3\nR1\nX2\n")
	}
}

func TestRender_Embedded(t *testing.T) {
	r, err := Load(context.Background(), Embedded, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err := r.Render(scenarioGroups())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := `.icon {
	background-image: url("icon.png");
	width: 10px;
	height: 20px;
}
@media (-webkit-min-device-pixel-ratio: 2), (min-resolution: 192dpi) {
	.icon {
		background-image: url("icon@2x.png");
		background-size: 10px 20px;
		width: 10px;
		height: 20px;
	}
}
`
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}

	// rendering is deterministic
	again, err := r.Render(scenarioGroups())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if again != got {
		t.Error("second Render() produced different output")
	}
}

// cssStats parses stylesheet and counts rulesets, at-rules and declarations.
func cssStats(t *testing.T, text string) (rulesets, atRules, declarations int) {
	t.Helper()
	p := css.NewParser(parse.NewInput(strings.NewReader(text)), false)
	for {
		gt, _, _ := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if !errors.Is(p.Err(), io.EOF) {
				t.Fatalf("generated CSS does not parse: %v\n%s", p.Err(), text)
			}
			return
		case css.BeginRulesetGrammar:
			rulesets++
		case css.BeginAtRuleGrammar:
			atRules++
		case css.DeclarationGrammar:
			declarations++
		}
	}
}

func TestRender_EmbeddedIsValidCSS(t *testing.T) {
	r, err := Load(context.Background(), Embedded, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	groups := density.GroupByRatio([]images.Record{
		{URL: "a.png", Selector: ".a", Ratio: 1, Dimensions: images.Dimensions{Width: 3, Height: 3}},
		{URL: "b c/b@2x.png", Selector: ".b-hover, a:hover .b", Ratio: 2, Dimensions: images.Dimensions{Width: 7, Height: 5}},
		{URL: `q"uote.png`, Selector: ".q-uote", Ratio: 1, Dimensions: images.Dimensions{Width: 1, Height: 1}},
		{URL: "c@3x.png", Selector: ".c", Ratio: 3, Dimensions: images.Dimensions{Width: 10, Height: 0}},
	})
	out, err := r.Render(groups)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	rulesets, atRules, declarations := cssStats(t, out)
	if rulesets != 4 {
		t.Errorf("rulesets = %d, want 4", rulesets)
	}
	if atRules != 2 {
		t.Errorf("@media blocks = %d, want 2", atRules)
	}
	if declarations != 2*3+2*4 {
		t.Errorf("declarations = %d, want %d", declarations, 2*3+2*4)
	}
	for _, s := range []string{"3.5px 2.5px", "3.3333px 0", "min-resolution: 288dpi", `url("q\"uote.png")`} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}
}

func TestRender_ExecutionError(t *testing.T) {
	src := MapSource{
		common.TierRegular: `{{ .Missing }}`,
		common.TierRetina:  `ok`,
	}
	r, err := Load(context.Background(), src, nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	out, err := r.Render(scenarioGroups())
	if !errors.Is(err, common.ErrRender) {
		t.Fatalf("Render() error = %v, want ErrRender", err)
	}
	if out != "" {
		t.Errorf("Render() returned partial output %q", out)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing template", func(t *testing.T) {
		_, err := Load(context.Background(), MapSource{common.TierRegular: "x"}, nil)
		if !errors.Is(err, common.ErrTemplateLoad) {
			t.Errorf("Load() error = %v, want ErrTemplateLoad", err)
		}
	})

	t.Run("parse failure", func(t *testing.T) {
		_, err := Load(context.Background(), MapSource{common.TierRegular: "{{ range }", common.TierRetina: "x"}, nil)
		if !errors.Is(err, common.ErrTemplateLoad) {
			t.Errorf("Load() error = %v, want ErrTemplateLoad", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), FileSource{Retina: t.TempDir() + "/absent.tmpl"}, nil)
		if !errors.Is(err, common.ErrTemplateLoad) {
			t.Errorf("Load() error = %v, want ErrTemplateLoad", err)
		}
	})
}

// blockingSource fails one tier at once and blocks the other until
// cancelled.
type blockingSource struct {
	fail      common.Tier
	cancelled atomic.Bool
}

var errFirst = errors.New("first failure")

func (s *blockingSource) Load(ctx context.Context, tier common.Tier) (string, error) {
	if tier == s.fail {
		return "", errFirst
	}
	<-ctx.Done()
	s.cancelled.Store(true)
	return "", ctx.Err()
}

func TestLoad_FirstFailureWins(t *testing.T) {
	for _, tier := range common.Tiers() {
		t.Run(tier.String(), func(t *testing.T) {
			src := &blockingSource{fail: tier}
			_, err := Load(context.Background(), src, nil)
			if !errors.Is(err, errFirst) {
				t.Fatalf("Load() error = %v, want first failure", err)
			}
			if !errors.Is(err, common.ErrTemplateLoad) {
				t.Errorf("Load() error = %v, want ErrTemplateLoad", err)
			}
			if !src.cancelled.Load() {
				t.Error("other load was not cancelled")
			}
		})
	}
}
