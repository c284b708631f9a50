// SPDX-License-Identifier: EPL-2.0

package chain

// Stage is a step of a chain build.
type Stage int

const (
	StageLoaded Stage = iota
	StageLengthNormalized
	StageCountNormalized
	StageFormatConverted
	StageConcatenated
	StageBuilt
	StageFailed
)

var stageNames = [...]string{
	StageLoaded:           "loaded",
	StageLengthNormalized: "length-normalized",
	StageCountNormalized:  "count-normalized",
	StageFormatConverted:  "format-converted",
	StageConcatenated:     "concatenated",
	StageBuilt:            "built",
	StageFailed:           "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
