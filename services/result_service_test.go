package services

import (
	"context"
	"errors"
	"testing"

	"github.com/winsonteo/GripRank-next-sub000/models"
)

func seedRound(t *testing.T, repo *fakeBracketRepo, round models.RoundID, pairs [][2]int) []int {
	t.Helper()
	ids := make([]int, 0, len(pairs))
	for i, pair := range pairs {
		a, b := pair[0], pair[1]
		m := models.Match{
			CategoryID: 1,
			Round:      round,
			Slot:       i + 1,
			AthleteAID: &a,
			AthleteBID: &b,
		}
		if err := repo.CreateMatch(context.Background(), nil, &m); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, m.ID)
	}
	return ids
}

func TestSaveMatchResultResolvesWinner(t *testing.T) {
	categoryRepo := &fakeCategoryRepo{categories: map[int]models.Category{1: testCategory(1)}}
	bracketRepo := newFakeBracketRepo()
	ids := seedRound(t, bracketRepo, models.RoundSF, [][2]int{{1, 4}, {2, 3}})

	svc := NewResultService(nil, categoryRepo, bracketRepo, testHub(), testLogger())

	// The round still has an open match, so no advancement happens and
	// the nil transaction handle is never touched.
	outcome, err := svc.SaveMatchResult(context.Background(), ids[0], MatchResultInput{
		LaneA: &RunInput{Status: "TIME", Ms: msPtr(5100)},
		LaneB: &RunInput{Status: "TIME", Ms: msPtr(5300)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Advanced {
		t.Fatal("must not advance while the round has an open match")
	}
	if outcome.Match.Winner == nil || *outcome.Match.Winner != models.SideA {
		t.Fatalf("winner = %v, want A", outcome.Match.Winner)
	}

	stored, err := bracketRepo.GetMatchByID(context.Background(), ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if stored.Winner == nil || *stored.Winner != models.SideA {
		t.Error("winner was not persisted")
	}
	if stored.LaneA == nil || *stored.LaneA.Ms != 5100 {
		t.Errorf("persisted lane A = %+v", stored.LaneA)
	}
}

func TestSaveMatchResultFalseStartUnderIFSC(t *testing.T) {
	categoryRepo := &fakeCategoryRepo{categories: map[int]models.Category{1: testCategory(1)}}
	bracketRepo := newFakeBracketRepo()
	ids := seedRound(t, bracketRepo, models.RoundSF, [][2]int{{1, 4}, {2, 3}})

	svc := NewResultService(nil, categoryRepo, bracketRepo, testHub(), testLogger())

	outcome, err := svc.SaveMatchResult(context.Background(), ids[0], MatchResultInput{
		LaneA: &RunInput{Status: "FS"},
		LaneB: &RunInput{Status: "TIME", Ms: msPtr(9000)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Match.Winner == nil || *outcome.Match.Winner != models.SideB {
		t.Fatalf("winner = %v, want B after lane A false start", outcome.Match.Winner)
	}
}

func TestSaveMatchResultTolerantRule(t *testing.T) {
	tolerant := testCategory(1)
	tolerant.FalseStartRule = models.RuleTolerant
	categoryRepo := &fakeCategoryRepo{categories: map[int]models.Category{1: tolerant}}
	bracketRepo := newFakeBracketRepo()
	ids := seedRound(t, bracketRepo, models.RoundSF, [][2]int{{1, 4}, {2, 3}})

	svc := NewResultService(nil, categoryRepo, bracketRepo, testHub(), testLogger())

	outcome, err := svc.SaveMatchResult(context.Background(), ids[0], MatchResultInput{
		LaneA: &RunInput{Status: "FS"},
		LaneB: &RunInput{Status: "DNF"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Match.Winner != nil {
		t.Fatalf("winner = %v, want undecided under tolerant rule", outcome.Match.Winner)
	}
}

func TestSaveMatchResultPartialEntry(t *testing.T) {
	categoryRepo := &fakeCategoryRepo{categories: map[int]models.Category{1: testCategory(1)}}
	bracketRepo := newFakeBracketRepo()
	ids := seedRound(t, bracketRepo, models.RoundSF, [][2]int{{1, 4}, {2, 3}})

	svc := NewResultService(nil, categoryRepo, bracketRepo, testHub(), testLogger())

	// Only one lane entered: winner stays open.
	outcome, err := svc.SaveMatchResult(context.Background(), ids[0], MatchResultInput{
		LaneA: &RunInput{Status: "TIME", Ms: msPtr(5100)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Match.Winner != nil {
		t.Fatal("a single recorded lane must not decide the match")
	}
	if outcome.Match.LaneB != nil {
		t.Error("missing lane must stay nil")
	}
}

func decidedRoundMatch(repo *fakeBracketRepo, round models.RoundID, slot, aID, bID int, winner models.Side) {
	repo.nextID++
	repo.matches[repo.nextID] = models.Match{
		ID:         repo.nextID,
		CategoryID: 1,
		Round:      round,
		Slot:       slot,
		AthleteAID: &aID,
		AthleteBID: &bID,
		Winner:     &winner,
	}
}

func TestSaveMatchResultCompletingRoundAdvances(t *testing.T) {
	categoryRepo := &fakeCategoryRepo{categories: map[int]models.Category{1: testCategory(1)}}
	bracketRepo := newFakeBracketRepo()
	decidedRoundMatch(bracketRepo, models.RoundSF, 2, 2, 3, models.SideB)
	ids := seedRound(t, bracketRepo, models.RoundSF, [][2]int{{1, 4}})

	svc := NewResultService(testDB(t), categoryRepo, bracketRepo, testHub(), testLogger())

	outcome, err := svc.SaveMatchResult(context.Background(), ids[0], MatchResultInput{
		LaneA: &RunInput{Status: "TIME", Ms: msPtr(5100)},
		LaneB: &RunInput{Status: "TIME", Ms: msPtr(5200)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.Advanced {
		t.Fatal("completing the semifinal must advance to the final")
	}
	if len(outcome.NextRound) != 2 {
		t.Fatalf("expected small and big final, got %d matches", len(outcome.NextRound))
	}

	finals, err := bracketRepo.ListByRound(context.Background(), 1, models.RoundFinal)
	if err != nil {
		t.Fatal(err)
	}
	if len(finals) != 2 {
		t.Fatalf("expected 2 persisted final matches, got %d", len(finals))
	}
	// Small final pairs the semifinal losers, big final the winners.
	if *finals[0].AthleteAID != 4 || *finals[0].AthleteBID != 2 {
		t.Errorf("small final = %d vs %d, want 4 vs 2", *finals[0].AthleteAID, *finals[0].AthleteBID)
	}
	if *finals[1].AthleteAID != 1 || *finals[1].AthleteBID != 3 {
		t.Errorf("big final = %d vs %d, want 1 vs 3", *finals[1].AthleteAID, *finals[1].AthleteBID)
	}
}

func TestSaveMatchResultCorrectionDiscardsLaterRounds(t *testing.T) {
	categoryRepo := &fakeCategoryRepo{categories: map[int]models.Category{1: testCategory(1)}}
	bracketRepo := newFakeBracketRepo()

	// A fully played size-8 bracket front half: quarterfinals decided,
	// semifinals and finals already built from those winners.
	decidedRoundMatch(bracketRepo, models.RoundQF, 1, 1, 8, models.SideA)
	correctedID := bracketRepo.nextID
	decidedRoundMatch(bracketRepo, models.RoundQF, 2, 4, 5, models.SideA)
	decidedRoundMatch(bracketRepo, models.RoundQF, 3, 2, 7, models.SideA)
	decidedRoundMatch(bracketRepo, models.RoundQF, 4, 3, 6, models.SideA)
	decidedRoundMatch(bracketRepo, models.RoundSF, 1, 1, 4, models.SideA)
	decidedRoundMatch(bracketRepo, models.RoundSF, 2, 2, 3, models.SideA)
	decidedRoundMatch(bracketRepo, models.RoundFinal, 1, 4, 3, models.SideA)
	decidedRoundMatch(bracketRepo, models.RoundFinal, 2, 1, 2, models.SideA)

	svc := NewResultService(testDB(t), categoryRepo, bracketRepo, testHub(), testLogger())

	// The judge corrects quarterfinal 1: athlete 8 won, not athlete 1.
	outcome, err := svc.SaveMatchResult(context.Background(), correctedID, MatchResultInput{
		LaneA: &RunInput{Status: "FS"},
		LaneB: &RunInput{Status: "TIME", Ms: msPtr(5300)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.Advanced {
		t.Fatal("a corrected result on a complete round must re-advance")
	}

	semis, err := bracketRepo.ListByRound(context.Background(), 1, models.RoundSF)
	if err != nil {
		t.Fatal(err)
	}
	if len(semis) != 2 {
		t.Fatalf("expected 2 recreated semifinals, got %d", len(semis))
	}
	if *semis[0].AthleteAID != 8 || *semis[0].AthleteBID != 4 {
		t.Errorf("semifinal 1 = %d vs %d, want 8 vs 4", *semis[0].AthleteAID, *semis[0].AthleteBID)
	}
	for i, m := range semis {
		if m.Winner != nil || m.LaneA != nil || m.LaneB != nil {
			t.Errorf("recreated semifinal %d must start empty", i)
		}
	}

	// The stale finals were built from the old semifinal winners and must
	// not survive the correction.
	finals, err := bracketRepo.ListByRound(context.Background(), 1, models.RoundFinal)
	if err != nil {
		t.Fatal(err)
	}
	if len(finals) != 0 {
		t.Fatalf("stale final matches survived the correction: %d left", len(finals))
	}
}

func TestSaveMatchResultNotFound(t *testing.T) {
	svc := NewResultService(nil,
		&fakeCategoryRepo{categories: map[int]models.Category{}},
		newFakeBracketRepo(), testHub(), testLogger())

	_, err := svc.SaveMatchResult(context.Background(), 99, MatchResultInput{})
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("error = %v, want ErrMatchNotFound", err)
	}
}

func TestSaveMatchResultInvalidInput(t *testing.T) {
	categoryRepo := &fakeCategoryRepo{categories: map[int]models.Category{1: testCategory(1)}}
	bracketRepo := newFakeBracketRepo()
	ids := seedRound(t, bracketRepo, models.RoundSF, [][2]int{{1, 4}})

	svc := NewResultService(nil, categoryRepo, bracketRepo, testHub(), testLogger())

	_, err := svc.SaveMatchResult(context.Background(), ids[0], MatchResultInput{
		LaneA: &RunInput{Status: "TIME"},
	})
	if !errors.Is(err, ErrInvalidRunTime) {
		t.Fatalf("error = %v, want ErrInvalidRunTime", err)
	}

	// Nothing may be persisted on validation failure.
	stored, _ := bracketRepo.GetMatchByID(context.Background(), ids[0])
	if stored.LaneA != nil {
		t.Error("invalid input must not be persisted")
	}
}
