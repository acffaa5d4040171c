package speed

import (
	"errors"
	"fmt"

	"github.com/winsonteo/GripRank-next-sub000/models"
)

// ErrInsufficientAthletes aborts bracket generation when fewer than two
// athletes hold a valid qualifying time. No state is written.
var ErrInsufficientAthletes = errors.New("not enough athletes with a valid qualifying time (minimum 2)")

// SeedingRuleTopVsBottom pairs the highest remaining seed against the
// lowest remaining seed, recorded in FinalsMeta for auditability.
const SeedingRuleTopVsBottom = "top-vs-bottom-v1"

// Fixed first-round pairing tables per bracket size. Match order matters:
// the slot order below is the order the matches are climbed.
var pairingTables = map[int][][2]int{
	16: {{1, 16}, {8, 9}, {4, 13}, {5, 12}, {2, 15}, {7, 10}, {3, 14}, {6, 11}},
	8:  {{1, 8}, {4, 5}, {2, 7}, {3, 6}},
	4:  {{1, 4}, {2, 3}},
	2:  {{1, 2}},
}

// Seeding is the outcome of bracket generation: the chosen size, the
// seeded athletes in seed order, and the first round's empty matches.
type Seeding struct {
	Size       int
	Seeds      []models.Athlete // Seeds[0] is seed 1
	FirstRound models.RoundID
	Matches    []models.Match // athletes only; lanes and winner unset
}

// FirstRoundID maps a bracket size to the stage the bracket starts at.
// A size-2 bracket starts (and ends) with the single big final.
func FirstRoundID(size int) models.RoundID {
	switch size {
	case 16:
		return models.RoundR16
	case 8:
		return models.RoundQF
	case 4:
		return models.RoundSF
	default:
		return models.RoundFinal
	}
}

// SeedBracket selects the bracket size from the count of athletes with at
// least one valid time, truncates the standings to the top `size`, and
// builds the first round from the fixed pairing table.
func SeedBracket(standings []models.QualifierStandingRow) (*Seeding, error) {
	valid := make([]models.Athlete, 0, len(standings))
	for _, row := range standings {
		if row.BestMs != nil {
			valid = append(valid, row.Athlete)
		}
	}

	var size int
	switch {
	case len(valid) >= 16:
		size = 16
	case len(valid) >= 8:
		size = 8
	case len(valid) >= 4:
		size = 4
	case len(valid) >= 2:
		size = 2
	default:
		return nil, ErrInsufficientAthletes
	}

	seeds := valid[:size]
	firstRound := FirstRoundID(size)

	table, ok := pairingTables[size]
	if !ok {
		return nil, fmt.Errorf("no pairing table for bracket size %d", size)
	}

	matches := make([]models.Match, 0, len(table))
	for i, pair := range table {
		a := seeds[pair[0]-1]
		b := seeds[pair[1]-1]
		matches = append(matches, models.Match{
			CategoryID: a.CategoryID,
			Round:      firstRound,
			Slot:       i + 1,
			AthleteAID: intPtr(a.ID),
			AthleteBID: intPtr(b.ID),
		})
	}

	return &Seeding{
		Size:       size,
		Seeds:      seeds,
		FirstRound: firstRound,
		Matches:    matches,
	}, nil
}
