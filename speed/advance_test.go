package speed

import (
	"reflect"
	"testing"

	"github.com/winsonteo/GripRank-next-sub000/models"
)

func decidedMatch(round models.RoundID, slot, aID, bID int, winner models.Side) models.Match {
	return models.Match{
		CategoryID: 1,
		Round:      round,
		Slot:       slot,
		AthleteAID: intPtr(aID),
		AthleteBID: intPtr(bID),
		Winner:     sidePtr(winner),
	}
}

func TestAdvanceRoundIncomplete(t *testing.T) {
	matches := []models.Match{
		decidedMatch(models.RoundQF, 1, 1, 8, models.SideA),
		{CategoryID: 1, Round: models.RoundQF, Slot: 2, AthleteAID: intPtr(4), AthleteBID: intPtr(5)},
		decidedMatch(models.RoundQF, 3, 2, 7, models.SideA),
		decidedMatch(models.RoundQF, 4, 3, 6, models.SideB),
	}
	if got := AdvanceRound(models.RoundQF, matches); got != nil {
		t.Fatalf("incomplete round must not advance, got %d matches", len(got))
	}
}

func TestAdvanceRoundQuarterfinals(t *testing.T) {
	matches := []models.Match{
		decidedMatch(models.RoundQF, 1, 1, 8, models.SideA),
		decidedMatch(models.RoundQF, 2, 4, 5, models.SideB),
		decidedMatch(models.RoundQF, 3, 2, 7, models.SideA),
		decidedMatch(models.RoundQF, 4, 3, 6, models.SideA),
	}

	next := AdvanceRound(models.RoundQF, matches)
	if len(next) != 2 {
		t.Fatalf("expected 2 semifinals, got %d", len(next))
	}
	if next[0].Round != models.RoundSF || next[1].Round != models.RoundSF {
		t.Errorf("advanced matches must be semifinals")
	}
	if *next[0].AthleteAID != 1 || *next[0].AthleteBID != 5 {
		t.Errorf("semifinal 1 pairing %d vs %d, want 1 vs 5", *next[0].AthleteAID, *next[0].AthleteBID)
	}
	if *next[1].AthleteAID != 2 || *next[1].AthleteBID != 3 {
		t.Errorf("semifinal 2 pairing %d vs %d, want 2 vs 3", *next[1].AthleteAID, *next[1].AthleteBID)
	}
	for i, m := range next {
		if m.Winner != nil || m.LaneA != nil || m.LaneB != nil {
			t.Errorf("advanced match %d must start empty", i)
		}
	}
}

func TestAdvanceRoundSemifinalSplitsFinals(t *testing.T) {
	matches := []models.Match{
		decidedMatch(models.RoundSF, 1, 1, 5, models.SideA),
		decidedMatch(models.RoundSF, 2, 2, 3, models.SideB),
	}

	finals := AdvanceRound(models.RoundSF, matches)
	if len(finals) != 2 {
		t.Fatalf("expected small and big final, got %d matches", len(finals))
	}

	small, big := finals[0], finals[1]
	if small.Slot != 1 || big.Slot != 2 {
		t.Fatalf("final slots = %d, %d; want 1, 2", small.Slot, big.Slot)
	}
	if *small.AthleteAID != 5 || *small.AthleteBID != 2 {
		t.Errorf("small final pairs losers: got %d vs %d, want 5 vs 2", *small.AthleteAID, *small.AthleteBID)
	}
	if *big.AthleteAID != 1 || *big.AthleteBID != 3 {
		t.Errorf("big final pairs winners: got %d vs %d, want 1 vs 3", *big.AthleteAID, *big.AthleteBID)
	}
}

func TestAdvanceRoundFromFinal(t *testing.T) {
	matches := []models.Match{
		decidedMatch(models.RoundFinal, 1, 5, 2, models.SideA),
		decidedMatch(models.RoundFinal, 2, 1, 3, models.SideB),
	}
	if got := AdvanceRound(models.RoundFinal, matches); got != nil {
		t.Fatal("the final never advances")
	}
}

func TestAdvanceRoundEmpty(t *testing.T) {
	if got := AdvanceRound(models.RoundQF, nil); got != nil {
		t.Fatal("a round with no matches must not advance")
	}
}

func TestAdvanceRoundIdempotentPairings(t *testing.T) {
	matches := []models.Match{
		decidedMatch(models.RoundSF, 2, 2, 3, models.SideB),
		decidedMatch(models.RoundSF, 1, 1, 5, models.SideA),
	}

	first := AdvanceRound(models.RoundSF, matches)
	second := AdvanceRound(models.RoundSF, matches)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("re-running advancement on an unchanged round must reproduce identical pairings")
	}
}

func TestBigAndSmallFinal(t *testing.T) {
	finals := []models.Match{
		{CategoryID: 1, Round: models.RoundFinal, Slot: 1},
		{CategoryID: 1, Round: models.RoundFinal, Slot: 2},
	}
	if big := BigFinal(finals); big == nil || big.Slot != 2 {
		t.Error("big final must be the highest slot")
	}
	if small := SmallFinal(finals); small == nil || small.Slot != 1 {
		t.Error("small final must be slot 1")
	}

	lone := []models.Match{{CategoryID: 1, Round: models.RoundFinal, Slot: 1}}
	if big := BigFinal(lone); big == nil || big.Slot != 1 {
		t.Error("a lone final match is the big final")
	}
	if small := SmallFinal(lone); small != nil {
		t.Error("a lone final match has no small final")
	}
}
