// Package speed implements the speed-climbing elimination bracket and
// ranking engine: qualifier standings, bracket seeding, head-to-head
// match resolution, round advancement and the merged overall ranking.
// Everything here is pure and operates on in-memory snapshots; the
// services layer owns persistence.
package speed

import "github.com/winsonteo/GripRank-next-sub000/models"

// ResolveMatch decides a single match from two lane results under the
// given false-start rule. A nil return is a valid terminal state: both
// lanes faulted, a lane is still missing, or the times are exactly equal
// (left for manual judge resolution). A match is never decided before
// both lanes are recorded.
func ResolveMatch(laneA, laneB *models.RunResult, rule models.FalseStartRule) *models.Side {
	if laneA == nil || laneB == nil {
		return nil
	}

	if rule == models.RuleIFSC {
		aFS := laneA.Status == models.RunStatusFalseStart
		bFS := laneB.Status == models.RunStatusFalseStart
		if aFS && !bFS {
			return sidePtr(models.SideB)
		}
		if bFS && !aFS {
			return sidePtr(models.SideA)
		}
	}

	aTime := laneA.HasTime()
	bTime := laneB.HasTime()
	switch {
	case aTime && !bTime:
		return sidePtr(models.SideA)
	case bTime && !aTime:
		return sidePtr(models.SideB)
	case aTime && bTime:
		if *laneA.Ms < *laneB.Ms {
			return sidePtr(models.SideA)
		}
		if *laneB.Ms < *laneA.Ms {
			return sidePtr(models.SideB)
		}
	}
	return nil
}

func sidePtr(s models.Side) *models.Side {
	return &s
}
