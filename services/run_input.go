package services

import (
	"github.com/winsonteo/GripRank-next-sub000/models"
)

// RunInput is the wire form of a single run as entered by a judge.
type RunInput struct {
	Status string `json:"status"`
	Ms     *int   `json:"ms,omitempty"`
}

// ToRunResult validates and converts a judge-entered run. An empty
// status means "no run recorded yet" and yields the zero RunResult.
func (in RunInput) ToRunResult() (models.RunResult, error) {
	switch models.RunStatus(in.Status) {
	case "":
		return models.RunResult{}, nil
	case models.RunStatusTime:
		if in.Ms == nil || *in.Ms <= 0 {
			return models.RunResult{}, ErrInvalidRunTime
		}
		ms := *in.Ms
		return models.RunResult{Status: models.RunStatusTime, Ms: &ms}, nil
	case models.RunStatusFalseStart, models.RunStatusDidNotStart, models.RunStatusDidNotFinish:
		return models.RunResult{Status: models.RunStatus(in.Status)}, nil
	default:
		return models.RunResult{}, ErrInvalidRunStatus
	}
}

// toLane converts an optional lane entry; nil stays nil.
func toLane(in *RunInput) (*models.RunResult, error) {
	if in == nil {
		return nil, nil
	}
	r, err := in.ToRunResult()
	if err != nil {
		return nil, err
	}
	if r.Status == "" {
		return nil, nil
	}
	return &r, nil
}
