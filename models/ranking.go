package models

// ExitStage marks how far an athlete got before leaving the competition.
type ExitStage string

const (
	StageWin        ExitStage = "WIN"
	StageFinal      ExitStage = "F"
	StageSemifinal  ExitStage = "SF"
	StageQuarter    ExitStage = "QF"
	StageRoundOf16  ExitStage = "R16"
	StageQualifiers ExitStage = "QUAL"
)

// OverallRankingRow is one line of the merged ranking spanning qualifiers
// through the final. Fully derived, recomputed on demand.
type OverallRankingRow struct {
	Rank      int       `json:"rank"`
	Stage     ExitStage `json:"stage"`
	Athlete   Athlete   `json:"athlete"`
	BestMs    *int      `json:"best_ms,omitempty"`
	BestLabel string    `json:"best_label"`
}
