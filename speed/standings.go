package speed

import (
	"math"
	"sort"

	"github.com/winsonteo/GripRank-next-sub000/models"
)

type standingEntry struct {
	athlete models.Athlete
	times   []int // valid TIME runs, ascending
	runs    []models.RunResult
}

// BuildQualifierStandings ranks athletes by best then second qualifying
// time, tie-broken by name. Athletes without a valid time are appended
// after the ranked block, share a single rank of validCount+1, and are
// ordered alphabetically for display only.
func BuildQualifierStandings(athletes []models.Athlete, results map[int]models.QualifierResult, precision int) []models.QualifierStandingRow {
	ranked := make([]standingEntry, 0, len(athletes))
	unranked := make([]standingEntry, 0)

	for _, a := range athletes {
		e := standingEntry{athlete: a}
		if res, ok := results[a.ID]; ok {
			e.runs = res.Runs()
			for _, r := range e.runs {
				if r.HasTime() {
					e.times = append(e.times, *r.Ms)
				}
			}
			sort.Ints(e.times)
		}
		if len(e.times) > 0 {
			ranked = append(ranked, e)
		} else {
			unranked = append(unranked, e)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		bi, bj := ranked[i].times[0], ranked[j].times[0]
		if bi != bj {
			return bi < bj
		}
		si, sj := secondOrMax(ranked[i].times), secondOrMax(ranked[j].times)
		if si != sj {
			return si < sj
		}
		return ranked[i].athlete.Name < ranked[j].athlete.Name
	})
	sort.Slice(unranked, func(i, j int) bool {
		return unranked[i].athlete.Name < unranked[j].athlete.Name
	})

	rows := make([]models.QualifierStandingRow, 0, len(athletes))
	for i, e := range ranked {
		best := e.times[0]
		row := models.QualifierStandingRow{
			Rank:        i + 1,
			Athlete:     e.athlete,
			BestMs:      intPtr(best),
			BestLabel:   FormatMs(best, precision),
			SecondLabel: NoTimeLabel,
		}
		if len(e.times) > 1 {
			second := e.times[1]
			row.SecondMs = intPtr(second)
			row.SecondLabel = FormatMs(second, precision)
		}
		rows = append(rows, row)
	}

	sharedRank := len(ranked) + 1
	for _, e := range unranked {
		rows = append(rows, models.QualifierStandingRow{
			Rank:        sharedRank,
			Athlete:     e.athlete,
			BestLabel:   faultLabel(e.runs),
			SecondLabel: NoTimeLabel,
		})
	}
	return rows
}

func secondOrMax(times []int) int {
	if len(times) > 1 {
		return times[1]
	}
	return math.MaxInt
}

func intPtr(v int) *int {
	return &v
}
