package speed

import (
	"sort"

	"github.com/winsonteo/GripRank-next-sub000/models"
)

// AdvanceRound builds the next round's matches once every match of the
// given round has a winner. It returns nil when the round is incomplete
// (partial advancement is forbidden), when the round is the final, or
// when the round has no matches at all.
//
// The semifinal advances specially: final slot 1 is the small final
// between the two semifinal losers, final slot 2 the big final between
// the winners. Returned matches always carry empty lanes, so re-running
// advancement on an unchanged round reproduces identical pairings but
// discards any lane results already entered for the next round.
func AdvanceRound(round models.RoundID, matches []models.Match) []models.Match {
	next, ok := round.Next()
	if !ok {
		return nil
	}

	current := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Round == round {
			current = append(current, m)
		}
	}
	if len(current) == 0 {
		return nil
	}
	sort.Slice(current, func(i, j int) bool { return current[i].Slot < current[j].Slot })

	for _, m := range current {
		if m.Winner == nil {
			return nil
		}
	}

	categoryID := current[0].CategoryID

	if round == models.RoundSF && len(current) == 2 {
		return []models.Match{
			{
				CategoryID: categoryID,
				Round:      next,
				Slot:       1, // small final: semifinal losers
				AthleteAID: current[0].LoserAthleteID(),
				AthleteBID: current[1].LoserAthleteID(),
			},
			{
				CategoryID:     categoryID,
				Round:          next,
				Slot:           2, // big final: semifinal winners
				AthleteAID:     current[0].WinnerAthleteID(),
				AthleteBID:     current[1].WinnerAthleteID(),
				AllowWinnerRun: false,
			},
		}
	}

	out := make([]models.Match, 0, len(current)/2)
	for i := 0; i+1 < len(current); i += 2 {
		out = append(out, models.Match{
			CategoryID: categoryID,
			Round:      next,
			Slot:       i/2 + 1,
			AthleteAID: current[i].WinnerAthleteID(),
			AthleteBID: current[i+1].WinnerAthleteID(),
		})
	}
	return out
}

// BigFinal picks the grand-final match out of the final round: slot 2
// when the small final exists, otherwise the single final match.
func BigFinal(finals []models.Match) *models.Match {
	var big *models.Match
	for i := range finals {
		if finals[i].Round != models.RoundFinal {
			continue
		}
		if big == nil || finals[i].Slot > big.Slot {
			big = &finals[i]
		}
	}
	return big
}

// SmallFinal returns final slot 1 when the final holds two matches.
func SmallFinal(finals []models.Match) *models.Match {
	var small, big *models.Match
	count := 0
	for i := range finals {
		if finals[i].Round != models.RoundFinal {
			continue
		}
		count++
		if small == nil || finals[i].Slot < small.Slot {
			small = &finals[i]
		}
		if big == nil || finals[i].Slot > big.Slot {
			big = &finals[i]
		}
	}
	if count < 2 {
		return nil
	}
	return small
}
