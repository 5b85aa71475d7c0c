package density

import (
	"imgrule/utils/debug"
)

// Dump describes groups as indented text for debug report.
func Dump(groups []Group) string {
	tw := debug.NewTreeWriter()
	for _, g := range groups {
		tw.Line(0, "ratio %s (%s), %d image(s)", g.Ratio, g.Tier(), len(g.Images))
		for _, img := range g.Images {
			tw.Line(1, "%s", img.Selector)
			tw.Field(2, "path", img.Path)
			tw.Field(2, "url", img.URL)
			tw.Line(2, "size: %dx%d", img.Dimensions.Width, img.Dimensions.Height)
		}
	}
	return tw.String()
}
