package render

import (
	"math"
	"strconv"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// funcMap returns functions available to templates: everything slim-sprig
// has and a couple of CSS helpers.
func funcMap() template.FuncMap {
	fm := sprig.FuncMap()
	fm["px"] = px
	fm["cssQuote"] = cssQuote
	return fm
}

// px converts device pixels to CSS pixels for the ratio: "{{ px 25 2 }}"
// gives "12.5px".
func px(length, ratio int) string {
	if length == 0 {
		return "0"
	}
	if ratio <= 0 {
		ratio = 1
	}
	v := math.Round(float64(length)/float64(ratio)*1e4) / 1e4
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// cssQuote returns s as CSS double quoted string.
func cssQuote(s string) string {
	if !strings.ContainsAny(s, "\"\\\n\r\f") {
		return `"` + s + `"`
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\a `)
		case '\r':
			b.WriteString(`\d `)
		case '\f':
			b.WriteString(`\c `)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
