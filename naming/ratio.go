// Package naming derives CSS selectors and pixel density ratios from image
// file names.
package naming

import (
	"path/filepath"
	"regexp"
	"strconv"

	"imgrule/common"
)

// ratioRe matches density suffix immediately before the extension:
// "icon@2x.png".
var ratioRe = regexp.MustCompile(`(?i)@(\d)x\.[a-z]{3,4}$`)

// ParseRatio extracts density ratio from the file name. When name carries no
// density suffix it returns common.RatioRegular and false. Zero ratio is not
// a valid density and is treated as absence of the suffix.
func ParseRatio(path string) (common.Ratio, bool) {
	m := ratioRe.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return common.RatioRegular, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return common.RatioRegular, false
	}
	return common.Ratio(n), true
}
