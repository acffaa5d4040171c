package models

// RunStatus classifies the outcome of a single timed run on one lane.
type RunStatus string

const (
	RunStatusTime         RunStatus = "TIME"
	RunStatusFalseStart   RunStatus = "FS"
	RunStatusDidNotStart  RunStatus = "DNS"
	RunStatusDidNotFinish RunStatus = "DNF"
)

// RunResult is a value type. Ms is set only when Status is TIME.
type RunResult struct {
	Status RunStatus `json:"status"`
	Ms     *int      `json:"ms,omitempty"`
}

// HasTime reports whether the run produced a valid time.
func (r RunResult) HasTime() bool {
	return r.Status == RunStatusTime && r.Ms != nil
}

// IsFault reports whether the run ended without a valid time.
func (r RunResult) IsFault() bool {
	return r.Status == RunStatusFalseStart ||
		r.Status == RunStatusDidNotStart ||
		r.Status == RunStatusDidNotFinish
}

// FalseStartRule selects how a false start decides a head-to-head match.
type FalseStartRule string

const (
	// RuleIFSC disqualifies the false starter: the other lane wins outright.
	RuleIFSC FalseStartRule = "IFSC"
	// RuleTolerant ignores the false start and decides on times alone.
	RuleTolerant FalseStartRule = "TOLERANT"
)
