package models

// QualifierResult holds an athlete's two qualifying runs. It is owned and
// mutated by the judging layer; the engine only reads it.
type QualifierResult struct {
	AthleteID  int       `json:"athlete_id"`
	CategoryID int       `json:"category_id"`
	RunA       RunResult `json:"run_a"`
	RunB       RunResult `json:"run_b"`
}

// Runs returns both qualifying runs in entry order.
func (q QualifierResult) Runs() []RunResult {
	return []RunResult{q.RunA, q.RunB}
}

// QualifierStandingRow is one line of the qualifier ranking as shown to
// the administration layer. Fully derived, never persisted.
type QualifierStandingRow struct {
	Rank        int     `json:"rank"`
	Athlete     Athlete `json:"athlete"`
	BestMs      *int    `json:"best_ms,omitempty"`
	SecondMs    *int    `json:"second_ms,omitempty"`
	BestLabel   string  `json:"best_label"`
	SecondLabel string  `json:"second_label"`
}
