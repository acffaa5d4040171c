package speed

import (
	"fmt"
	"strings"

	"github.com/winsonteo/GripRank-next-sub000/models"
)

// NoTimeLabel is shown wherever a time slot has nothing to display.
const NoTimeLabel = "—"

// FormatMs renders a run time in seconds with the category's display
// precision (2 or 3 decimals). Anything other than 3 falls back to 2.
func FormatMs(ms int, precision int) string {
	if precision == 3 {
		return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
	}
	cs := (ms + 5) / 10 // round to centiseconds
	return fmt.Sprintf("%d.%02d", cs/100, cs%100)
}

// faultLabel renders the distinct fault codes in priority order FS, DNS,
// DNF, or NoTimeLabel when nothing was recorded.
func faultLabel(runs []models.RunResult) string {
	seen := map[models.RunStatus]bool{}
	for _, r := range runs {
		if r.IsFault() {
			seen[r.Status] = true
		}
	}
	codes := make([]string, 0, 3)
	for _, s := range []models.RunStatus{
		models.RunStatusFalseStart,
		models.RunStatusDidNotStart,
		models.RunStatusDidNotFinish,
	} {
		if seen[s] {
			codes = append(codes, string(s))
		}
	}
	if len(codes) == 0 {
		return NoTimeLabel
	}
	return strings.Join(codes, ", ")
}

// LaneResultLabel renders one lane of a match for display. In the big
// final the winner's time is hidden behind a dash when the opponent
// false-started or did not show, unless the allow-winner-run flag is set.
// Callers decide which rounds count as "big final", so the suppression
// can be extended to earlier rounds without touching this function.
func LaneResultLabel(lane, opponent *models.RunResult, isWinner, isBigFinal, allowWinnerRun bool, precision int) string {
	if lane == nil {
		return ""
	}
	if lane.IsFault() {
		return string(lane.Status)
	}
	if !lane.HasTime() {
		return NoTimeLabel
	}
	if isWinner && isBigFinal && !allowWinnerRun && opponentNoShow(opponent) {
		return NoTimeLabel
	}
	return FormatMs(*lane.Ms, precision)
}

func opponentNoShow(opponent *models.RunResult) bool {
	if opponent == nil {
		return false
	}
	return opponent.Status == models.RunStatusFalseStart ||
		opponent.Status == models.RunStatusDidNotStart
}
