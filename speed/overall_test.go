package speed

import (
	"testing"

	"github.com/winsonteo/GripRank-next-sub000/models"
)

func playedMatch(round models.RoundID, slot, aID, bID int, laneA, laneB *models.RunResult, winner models.Side) models.Match {
	return models.Match{
		CategoryID: 1,
		Round:      round,
		Slot:       slot,
		AthleteAID: intPtr(aID),
		AthleteBID: intPtr(bID),
		LaneA:      laneA,
		LaneB:      laneB,
		Winner:     sidePtr(winner),
	}
}

// Five athletes, four with valid times, played through a size-4 bracket:
// semifinals, then small and big final.
func TestBuildOverallRankingEndToEnd(t *testing.T) {
	athletes := []models.Athlete{
		athlete(1, "Aigerim"),
		athlete(2, "Boris"),
		athlete(3, "Carla"),
		athlete(4, "Dina"),
		athlete(5, "Erik"),
	}
	results := map[int]models.QualifierResult{
		1: qualifier(1, *timeRun(5000), *timeRun(5100)),
		2: qualifier(2, *timeRun(5200), *timeRun(5300)),
		3: qualifier(3, *timeRun(5400), *timeRun(5500)),
		4: qualifier(4, *timeRun(5600), *timeRun(5700)),
		5: qualifier(5, *faultRun(models.RunStatusFalseStart), *faultRun(models.RunStatusFalseStart)),
	}
	matches := []models.Match{
		playedMatch(models.RoundSF, 1, 1, 4, timeRun(5050), timeRun(5650), models.SideA),
		playedMatch(models.RoundSF, 2, 2, 3, timeRun(5450), timeRun(5350), models.SideB),
		// Small final: semifinal losers.
		playedMatch(models.RoundFinal, 1, 4, 2, timeRun(5800), timeRun(5250), models.SideB),
		// Big final: Carla takes the title.
		playedMatch(models.RoundFinal, 2, 1, 3, timeRun(5200), timeRun(5150), models.SideB),
	}

	rows := BuildOverallRanking(athletes, matches, results, 2)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}

	want := []struct {
		rank  int
		stage models.ExitStage
		id    int
	}{
		{1, models.StageWin, 3},
		{2, models.StageFinal, 1},
		{3, models.StageSemifinal, 2},
		{4, models.StageSemifinal, 4},
		{5, models.StageQualifiers, 5},
	}
	for i, w := range want {
		row := rows[i]
		if row.Rank != w.rank || row.Stage != w.stage || row.Athlete.ID != w.id {
			t.Errorf("row %d: rank=%d stage=%s athlete=%d, want rank=%d stage=%s athlete=%d",
				i, row.Rank, row.Stage, row.Athlete.ID, w.rank, w.stage, w.id)
		}
	}

	// Winner's best is the fastest time observed anywhere.
	if rows[0].BestMs == nil || *rows[0].BestMs != 5150 {
		t.Errorf("winner best = %v, want 5150", rows[0].BestMs)
	}
	if rows[0].BestLabel != "5.15" {
		t.Errorf("winner best label = %q, want %q", rows[0].BestLabel, "5.15")
	}
	// A double false start shows the fault code instead of a time.
	if rows[4].BestMs != nil || rows[4].BestLabel != "FS" {
		t.Errorf("faulted athlete row = %v / %q", rows[4].BestMs, rows[4].BestLabel)
	}
}

func TestBuildOverallRankingSharedRanks(t *testing.T) {
	athletes := []models.Athlete{
		athlete(1, "Aigerim"),
		athlete(2, "Boris"),
		athlete(3, "Carla"),
		athlete(4, "Dina"),
	}
	results := map[int]models.QualifierResult{
		1: qualifier(1, *timeRun(4900), *faultRun(models.RunStatusDidNotFinish)),
		2: qualifier(2, *timeRun(4950), *faultRun(models.RunStatusDidNotFinish)),
		3: qualifier(3, *timeRun(5100), *timeRun(5200)),
		4: qualifier(4, *timeRun(5100), *timeRun(5200)),
	}
	// Quarterfinals decided, semifinal still open: the QF losers hold
	// byte-identical time signatures.
	matches := []models.Match{
		playedMatch(models.RoundQF, 1, 1, 3, timeRun(4800), timeRun(5100), models.SideA),
		playedMatch(models.RoundQF, 2, 2, 4, timeRun(4850), timeRun(5100), models.SideA),
		{CategoryID: 1, Round: models.RoundSF, Slot: 1, AthleteAID: intPtr(1), AthleteBID: intPtr(2)},
	}

	rows := BuildOverallRanking(athletes, matches, results, 2)
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	if rows[0].Athlete.ID != 1 || rows[0].Rank != 1 || rows[0].Stage != models.StageSemifinal {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Athlete.ID != 2 || rows[1].Rank != 2 {
		t.Errorf("row 1 = %+v", rows[1])
	}

	// Equal signatures share the rank, ordered by name for display.
	if rows[2].Rank != 3 || rows[3].Rank != 3 {
		t.Errorf("tied quarterfinalists got ranks %d and %d, want shared 3", rows[2].Rank, rows[3].Rank)
	}
	if rows[2].Athlete.Name != "Carla" || rows[3].Athlete.Name != "Dina" {
		t.Errorf("tied athletes ordered %s then %s, want Carla then Dina",
			rows[2].Athlete.Name, rows[3].Athlete.Name)
	}
	if rows[2].Stage != models.StageQuarter || rows[3].Stage != models.StageQuarter {
		t.Error("quarterfinal losers must carry the QF stage")
	}
}

func TestBuildOverallRankingUndecidedBigFinal(t *testing.T) {
	athletes := []models.Athlete{
		athlete(1, "Aigerim"),
		athlete(2, "Boris"),
	}
	results := map[int]models.QualifierResult{
		1: qualifier(1, *timeRun(5100), *faultRun(models.RunStatusDidNotFinish)),
		2: qualifier(2, *timeRun(5000), *faultRun(models.RunStatusDidNotFinish)),
	}
	// Lone big final, both lanes faulted: no winner, both rank on times.
	matches := []models.Match{
		{
			CategoryID: 1,
			Round:      models.RoundFinal,
			Slot:       1,
			AthleteAID: intPtr(1),
			AthleteBID: intPtr(2),
			LaneA:      faultRun(models.RunStatusDidNotFinish),
			LaneB:      faultRun(models.RunStatusDidNotStart),
		},
	}

	rows := BuildOverallRanking(athletes, matches, results, 2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Athlete.ID != 2 || rows[0].Stage != models.StageFinal || rows[0].Rank != 1 {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Athlete.ID != 1 || rows[1].Stage != models.StageFinal || rows[1].Rank != 2 {
		t.Errorf("row 1 = %+v", rows[1])
	}
}
