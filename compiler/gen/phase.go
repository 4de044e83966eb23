package gen

// Phase is a state of a generation run.
type Phase uint8

// Generation phases, in run order. PhaseFailed is reachable from any phase
// and absorbing.
const (
	PhaseNotStarted Phase = iota
	PhaseCollecting
	PhaseEmittingClasses
	PhaseEmittingArchetypes
	PhaseEmittingIndexesAndViews
	PhaseEmittingProperties
	PhaseWriting
	PhaseDone
	PhaseFailed
)

var phaseNames = [...]string{
	PhaseNotStarted:              "NOT_STARTED",
	PhaseCollecting:              "PASS_1_COLLECTING",
	PhaseEmittingClasses:         "PASS_2_EMITTING_CLASSES",
	PhaseEmittingArchetypes:      "EMITTING_GLOBAL_ARCHETYPES",
	PhaseEmittingIndexesAndViews: "EMITTING_INDEXES_AND_VIEWS",
	PhaseEmittingProperties:      "EMITTING_CONFIG_PROPERTIES",
	PhaseWriting:                 "WRITING_ARTIFACTS",
	PhaseDone:                    "DONE",
	PhaseFailed:                  "FAILED",
}

// String returns the phase name.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "UNKNOWN"
}
