package speed

import (
	"math"
	"sort"

	"github.com/winsonteo/GripRank-next-sub000/models"
)

// BuildOverallRanking merges bracket outcomes with qualifier times into
// one ranked list spanning qualifiers through the final.
//
// Each athlete gets a time signature (every valid TIME observed across
// qualifiers and bracket matches, ascending) and an exit stage found by
// walking the bracket back from the final. Groups are emitted best to
// worst: big-final winner, big-final loser, small-final winner and loser
// (or the ranked SF group when no small final exists), then QF, R16 and
// the athletes who never entered the bracket. Within a ranked group,
// signatures are compared element by element with missing elements
// treated as +infinity; fully equal athletes share a rank and the next
// group continues numbering with gaps.
func BuildOverallRanking(athletes []models.Athlete, matches []models.Match, results map[int]models.QualifierResult, precision int) []models.OverallRankingRow {
	byID := make(map[int]models.Athlete, len(athletes))
	for _, a := range athletes {
		byID[a.ID] = a
	}

	signatures := buildSignatures(athletes, matches, results)
	small := SmallFinal(matches)
	big := BigFinal(matches)

	// Furthest stage reached, counting the small final as an SF exit:
	// losing a semifinal never puts an athlete in the F stage.
	furthest := make(map[int]models.RoundID)
	for _, m := range matches {
		if small != nil && m.Round == models.RoundFinal && m.Slot == small.Slot {
			continue
		}
		for _, id := range []*int{m.AthleteAID, m.AthleteBID} {
			if id == nil {
				continue
			}
			if cur, ok := furthest[*id]; !ok || m.Round.Order() > cur.Order() {
				furthest[*id] = m.Round
			}
		}
	}

	placed := make(map[int]bool)
	type group struct {
		stage  models.ExitStage
		fixed  []int // pre-ordered, no ties
		ranked []int // ordered by signature, ties share a rank
	}
	groups := make([]group, 0, 6)

	if big != nil && big.Winner != nil {
		if id := big.WinnerAthleteID(); id != nil {
			groups = append(groups, group{stage: models.StageWin, fixed: []int{*id}})
			placed[*id] = true
		}
		if id := big.LoserAthleteID(); id != nil {
			groups = append(groups, group{stage: models.StageFinal, fixed: []int{*id}})
			placed[*id] = true
		}
	} else if big != nil {
		// Undecided big final: both athletes rank in the F stage on times.
		g := group{stage: models.StageFinal}
		for _, id := range []*int{big.AthleteAID, big.AthleteBID} {
			if id != nil {
				g.ranked = append(g.ranked, *id)
				placed[*id] = true
			}
		}
		if len(g.ranked) > 0 {
			groups = append(groups, g)
		}
	}

	sf := group{stage: models.StageSemifinal}
	if small != nil && small.Winner != nil {
		if id := small.WinnerAthleteID(); id != nil {
			sf.fixed = append(sf.fixed, *id)
			placed[*id] = true
		}
		if id := small.LoserAthleteID(); id != nil {
			sf.fixed = append(sf.fixed, *id)
			placed[*id] = true
		}
	}
	for _, a := range athletes {
		if !placed[a.ID] && furthest[a.ID] == models.RoundSF {
			sf.ranked = append(sf.ranked, a.ID)
			placed[a.ID] = true
		}
	}
	if len(sf.fixed) > 0 || len(sf.ranked) > 0 {
		groups = append(groups, sf)
	}

	for _, stage := range []struct {
		round models.RoundID
		exit  models.ExitStage
	}{
		{models.RoundQF, models.StageQuarter},
		{models.RoundR16, models.StageRoundOf16},
	} {
		g := group{stage: stage.exit}
		for _, a := range athletes {
			if !placed[a.ID] && furthest[a.ID] == stage.round {
				g.ranked = append(g.ranked, a.ID)
				placed[a.ID] = true
			}
		}
		if len(g.ranked) > 0 {
			groups = append(groups, g)
		}
	}

	qual := group{stage: models.StageQualifiers}
	for _, a := range athletes {
		if !placed[a.ID] {
			qual.ranked = append(qual.ranked, a.ID)
		}
	}
	if len(qual.ranked) > 0 {
		groups = append(groups, qual)
	}

	rows := make([]models.OverallRankingRow, 0, len(athletes))
	base := 0
	for _, g := range groups {
		for i, id := range g.fixed {
			rows = append(rows, buildRankingRow(base+i+1, g.stage, byID[id], signatures[id], results, precision))
		}
		n := len(g.fixed)

		ids := append([]int(nil), g.ranked...)
		sort.SliceStable(ids, func(i, j int) bool {
			c := compareSignatures(signatures[ids[i]], signatures[ids[j]])
			if c != 0 {
				return c < 0
			}
			return byID[ids[i]].Name < byID[ids[j]].Name
		})
		for i, id := range ids {
			rank := base + n + i + 1
			if i > 0 && compareSignatures(signatures[id], signatures[ids[i-1]]) == 0 {
				rank = rows[len(rows)-1].Rank
			}
			rows = append(rows, buildRankingRow(rank, g.stage, byID[id], signatures[id], results, precision))
		}
		base += n + len(ids)
	}
	return rows
}

func buildSignatures(athletes []models.Athlete, matches []models.Match, results map[int]models.QualifierResult) map[int][]int {
	signatures := make(map[int][]int, len(athletes))
	for _, a := range athletes {
		if res, ok := results[a.ID]; ok {
			for _, r := range res.Runs() {
				if r.HasTime() {
					signatures[a.ID] = append(signatures[a.ID], *r.Ms)
				}
			}
		}
	}
	for _, m := range matches {
		if m.AthleteAID != nil && m.LaneA != nil && m.LaneA.HasTime() {
			signatures[*m.AthleteAID] = append(signatures[*m.AthleteAID], *m.LaneA.Ms)
		}
		if m.AthleteBID != nil && m.LaneB != nil && m.LaneB.HasTime() {
			signatures[*m.AthleteBID] = append(signatures[*m.AthleteBID], *m.LaneB.Ms)
		}
	}
	for id := range signatures {
		sort.Ints(signatures[id])
	}
	return signatures
}

func buildRankingRow(rank int, stage models.ExitStage, athlete models.Athlete, signature []int, results map[int]models.QualifierResult, precision int) models.OverallRankingRow {
	row := models.OverallRankingRow{
		Rank:    rank,
		Stage:   stage,
		Athlete: athlete,
	}
	if len(signature) > 0 {
		row.BestMs = intPtr(signature[0])
		row.BestLabel = FormatMs(signature[0], precision)
		return row
	}
	if res, ok := results[athlete.ID]; ok {
		row.BestLabel = faultLabel(res.Runs())
	} else {
		row.BestLabel = NoTimeLabel
	}
	return row
}

// compareSignatures orders two ascending time signatures element by
// element, padding the shorter with +infinity.
func compareSignatures(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		av, bv := math.MaxInt, math.MaxInt
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}
