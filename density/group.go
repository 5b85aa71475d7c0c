// Package density partitions image records by pixel density ratio.
package density

import (
	"imgrule/common"
	"imgrule/images"
)

// Group is a set of images sharing the same ratio, in order they were met.
type Group struct {
	Ratio  common.Ratio
	Images []images.Record
}

// Tier returns template tier to be used for the group.
func (g Group) Tier() common.Tier {
	return g.Ratio.Tier()
}

// GroupByRatio splits records into groups. Groups follow first appearance of
// each distinct ratio and keep relative order of records inside. Every
// record ends up in exactly one group.
func GroupByRatio(records []images.Record) []Group {
	groups := make([]Group, 0, 2)
	index := make(map[common.Ratio]int, 2)

	for _, r := range records {
		i, ok := index[r.Ratio]
		if !ok {
			i = len(groups)
			index[r.Ratio] = i
			groups = append(groups, Group{Ratio: r.Ratio})
		}
		groups[i].Images = append(groups[i].Images, r)
	}
	return groups
}
