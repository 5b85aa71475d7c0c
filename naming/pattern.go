package naming

import (
	"fmt"
	"strings"
)

const (
	placeholderBase   = "base"
	placeholderPseudo = "pseudo"
)

type segment struct {
	literal string
	key     string // empty for literal segments
}

// Pattern is compiled selector template with {base} and {pseudo}
// placeholders, for example ".{base}-{pseudo}, a:{pseudo} .{base}".
type Pattern struct {
	src      string
	segments []segment
}

// CompilePattern parses selector template. Any placeholder other than
// {base} or {pseudo} and unbalanced braces are reported as errors.
func CompilePattern(src string) (*Pattern, error) {
	p := &Pattern{src: src}

	rest := src
	for len(rest) > 0 {
		open := strings.IndexAny(rest, "{}")
		if open < 0 {
			p.segments = append(p.segments, segment{literal: rest})
			break
		}
		if rest[open] == '}' {
			return nil, fmt.Errorf("unexpected '}' at position %d in selector pattern %q", len(src)-len(rest)+open, src)
		}
		if open > 0 {
			p.segments = append(p.segments, segment{literal: rest[:open]})
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return nil, fmt.Errorf("unterminated placeholder at position %d in selector pattern %q", len(src)-len(rest)+open, src)
		}
		key := rest[open+1 : open+closing]
		switch key {
		case placeholderBase, placeholderPseudo:
			p.segments = append(p.segments, segment{key: key})
		default:
			return nil, fmt.Errorf("unknown placeholder {%s} in selector pattern %q", key, src)
		}
		rest = rest[open+closing+1:]
	}
	return p, nil
}

// Expand substitutes every placeholder occurrence.
func (p *Pattern) Expand(base, pseudo string) string {
	var b strings.Builder
	b.Grow(len(p.src) + 4*(len(base)+len(pseudo)))
	for _, s := range p.segments {
		switch s.key {
		case placeholderBase:
			b.WriteString(base)
		case placeholderPseudo:
			b.WriteString(pseudo)
		default:
			b.WriteString(s.literal)
		}
	}
	return b.String()
}

func (p *Pattern) String() string {
	return p.src
}
