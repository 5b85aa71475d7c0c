package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"imgrule/common"
)

// suffixRe matches optional density suffix and everything starting with the
// first dot of the name.
var suffixRe = regexp.MustCompile(`(?i)(@\d+x)?\..+$`)

// Parser builds CSS selectors from image file names.
type Parser struct {
	pattern    *Pattern
	patternErr error
}

// NewParser returns parser for the selector pattern. Empty pattern means
// every image gets single class selector. Broken pattern is not reported
// here: only images which actually need it will fail.
func NewParser(selectorWithPseudo string) *Parser {
	p := &Parser{}
	if len(selectorWithPseudo) > 0 {
		p.pattern, p.patternErr = CompilePattern(selectorWithPseudo)
	}
	return p
}

// ParseSelector is a shortcut for NewParser(selectorWithPseudo).ParseSelector(path).
func ParseSelector(path, selectorWithPseudo string) (string, error) {
	return NewParser(selectorWithPseudo).ParseSelector(path)
}

// RawName returns file base name without density suffix and extension.
func RawName(path string) string {
	return suffixRe.ReplaceAllString(filepath.Base(path), "")
}

// splitPseudo splits raw name on the last underscore. ok is false when there
// is no underscore at all.
func splitPseudo(raw string) (base, pseudo string, ok bool) {
	idx := strings.LastIndexByte(raw, '_')
	if idx < 0 {
		return raw, "", false
	}
	return raw[:idx], raw[idx+1:], true
}

// ParseSelector returns selector for the image. Names with pseudo state
// suffix ("btn_hover.png") are expanded through the pattern when one is
// configured, everything else becomes single kebab-cased class.
func (p *Parser) ParseSelector(path string) (string, error) {
	raw := RawName(path)

	if base, pseudo, ok := splitPseudo(raw); ok && (p.pattern != nil || p.patternErr != nil) {
		base, pseudo = KebabCase(base), KebabCase(pseudo)
		// both parts must survive, "_hover" or "icon_" are plain names
		if len(base) > 0 && len(pseudo) > 0 {
			if p.patternErr != nil {
				return "", fmt.Errorf("%w: unable to build selector for %q: %w", common.ErrConfiguration, filepath.Base(path), p.patternErr)
			}
			return p.pattern.Expand(base, pseudo), nil
		}
	}

	name := KebabCase(raw)
	if len(name) == 0 {
		return "", fmt.Errorf("%w: unable to derive selector from %q", common.ErrName, filepath.Base(path))
	}
	return "." + name, nil
}
