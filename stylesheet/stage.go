package stylesheet

import "strconv"

// Stage of a single generation run.
type Stage int

const (
	StageIdle Stage = iota
	StageCollectingMetadata
	StageLoadingTemplates
	StageRendering
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageIdle:               "idle",
	StageCollectingMetadata: "collecting-metadata",
	StageLoadingTemplates:   "loading-templates",
	StageRendering:          "rendering",
	StageDone:               "done",
	StageFailed:             "failed",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "Stage(" + strconv.Itoa(int(s)) + ")"
}

// Terminal reports if no further transitions are possible.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}
