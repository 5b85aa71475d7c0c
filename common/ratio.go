// Package common keeps vocabulary shared by all stages of stylesheet
// generation so that none of them has to import another just for types.
package common

import "strconv"

// ReferenceDPI is the CSS reference pixel density, one CSS pixel per 1/96th
// of an inch.
const ReferenceDPI = 96

// Ratio is pixel density multiplier of an image asset: number of device
// pixels per one CSS pixel along each axis.
type Ratio int

// RatioRegular is density of standard (non retina) assets.
const RatioRegular Ratio = 1

// Tier returns template tier for the ratio. This is the only place which
// decides what is retina and what is not.
func (r Ratio) Tier() Tier {
	if r > RatioRegular {
		return TierRetina
	}
	return TierRegular
}

// DPI returns resolution matching the ratio for use in media queries.
func (r Ratio) DPI() int {
	return int(r) * ReferenceDPI
}

func (r Ratio) String() string {
	return strconv.Itoa(int(r)) + "x"
}

// Tier selects template used to render group of images.
type Tier int

const (
	TierRegular Tier = iota
	TierRetina
)

// Tiers lists all known tiers in order.
func Tiers() []Tier {
	return []Tier{TierRegular, TierRetina}
}

func (t Tier) String() string {
	switch t {
	case TierRegular:
		return "REGULAR"
	case TierRetina:
		return "RETINA"
	default:
		return "Tier(" + strconv.Itoa(int(t)) + ")"
	}
}
