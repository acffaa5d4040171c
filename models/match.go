package models

import "time"

// RoundID identifies one elimination stage.
type RoundID string

const (
	RoundR16   RoundID = "R16"
	RoundQF    RoundID = "QF"
	RoundSF    RoundID = "SF"
	RoundFinal RoundID = "F"
)

// Next returns the following stage, or false from the final.
func (r RoundID) Next() (RoundID, bool) {
	switch r {
	case RoundR16:
		return RoundQF, true
	case RoundQF:
		return RoundSF, true
	case RoundSF:
		return RoundFinal, true
	default:
		return "", false
	}
}

// Order ranks stages from earliest to latest; unknown rounds sort first.
func (r RoundID) Order() int {
	switch r {
	case RoundR16:
		return 1
	case RoundQF:
		return 2
	case RoundSF:
		return 3
	case RoundFinal:
		return 4
	default:
		return 0
	}
}

// Side names one of the two lanes of a match.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Match is one head-to-head pairing. Seeding and advancement create it
// with athletes only; result entry fills the lanes and the winner. It is
// never deleted except on full bracket regeneration (or when its round is
// recreated by a re-fired advancement).
type Match struct {
	ID         int     `json:"id"`
	CategoryID int     `json:"category_id"`
	Round      RoundID `json:"round"`
	Slot       int     `json:"slot"` // 1-based index within the round

	AthleteAID *int `json:"athlete_a_id,omitempty"`
	AthleteBID *int `json:"athlete_b_id,omitempty"`

	LaneA *RunResult `json:"lane_a,omitempty"`
	LaneB *RunResult `json:"lane_b,omitempty"`

	Winner *Side `json:"winner,omitempty"`

	// AllowWinnerRun lifts the big-final display suppression of the
	// winner's time when the opponent false-started or did not show.
	AllowWinnerRun bool `json:"allow_winner_run"`

	CreatedAt time.Time `json:"created_at"`
}

// WinnerAthleteID resolves the winning side to an athlete id, if decided.
func (m *Match) WinnerAthleteID() *int {
	if m.Winner == nil {
		return nil
	}
	if *m.Winner == SideA {
		return m.AthleteAID
	}
	return m.AthleteBID
}

// LoserAthleteID resolves the losing side to an athlete id, if decided.
func (m *Match) LoserAthleteID() *int {
	if m.Winner == nil {
		return nil
	}
	if *m.Winner == SideA {
		return m.AthleteBID
	}
	return m.AthleteAID
}

// Lane returns the run result for the given side.
func (m *Match) Lane(s Side) *RunResult {
	if s == SideA {
		return m.LaneA
	}
	return m.LaneB
}

// FinalsMeta records how the current bracket was generated. Created once
// at generation and invalidated by regeneration.
type FinalsMeta struct {
	CategoryID int       `json:"category_id"`
	Size       int       `json:"size"` // 2, 4, 8 or 16
	SeedIDs    []int     `json:"seed_ids"`
	Rule       string    `json:"rule"`
	CreatedAt  time.Time `json:"created_at"`
}

// Round groups the matches of one stage, ordered by slot.
type Round struct {
	ID      RoundID `json:"id"`
	Matches []Match `json:"matches"`
}
