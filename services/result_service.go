package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/winsonteo/GripRank-next-sub000/live"
	"github.com/winsonteo/GripRank-next-sub000/models"
	"github.com/winsonteo/GripRank-next-sub000/repositories"
	"github.com/winsonteo/GripRank-next-sub000/speed"
)

// MatchResultInput carries both lane results of a bracket match as
// entered by a judge. A nil lane means "not recorded yet".
type MatchResultInput struct {
	LaneA          *RunInput `json:"lane_a"`
	LaneB          *RunInput `json:"lane_b"`
	AllowWinnerRun bool      `json:"allow_winner_run"`
}

// MatchResultOutcome reports what saving a result caused: the resolved
// winner (nil is a valid terminal state needing manual resolution) and
// the next round's matches when the save completed the round.
type MatchResultOutcome struct {
	Match     models.Match   `json:"match"`
	Advanced  bool           `json:"advanced"`
	NextRound []models.Match `json:"next_round,omitempty"`
}

type ResultService interface {
	SaveMatchResult(ctx context.Context, matchID int, input MatchResultInput) (*MatchResultOutcome, error)
}

type resultService struct {
	db           *sql.DB
	categoryRepo repositories.CategoryRepository
	bracketRepo  repositories.BracketRepository
	hub          *live.Hub
	logger       *slog.Logger
}

func NewResultService(
	db *sql.DB,
	categoryRepo repositories.CategoryRepository,
	bracketRepo repositories.BracketRepository,
	hub *live.Hub,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		db:           db,
		categoryRepo: categoryRepo,
		bracketRepo:  bracketRepo,
		hub:          hub,
		logger:       logger,
	}
}

// SaveMatchResult persists the lane results, resolves the winner under
// the category's false-start rule and, when the round is complete,
// (re)creates the next round. Advancement is idempotent for pairing
// identity, but recreating the next round discards any lane results
// already entered there.
func (s *resultService) SaveMatchResult(ctx context.Context, matchID int, input MatchResultInput) (*MatchResultOutcome, error) {
	match, err := s.bracketRepo.GetMatchByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}

	category, err := s.categoryRepo.GetByID(ctx, match.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category %d: %w", match.CategoryID, err)
	}

	laneA, err := toLane(input.LaneA)
	if err != nil {
		return nil, err
	}
	laneB, err := toLane(input.LaneB)
	if err != nil {
		return nil, err
	}

	winner := speed.ResolveMatch(laneA, laneB, category.FalseStartRule)

	if err := s.bracketRepo.UpdateMatchResult(ctx, matchID, laneA, laneB, winner, input.AllowWinnerRun); err != nil {
		return nil, fmt.Errorf("failed to save result for match %d: %w", matchID, err)
	}

	match.LaneA = laneA
	match.LaneB = laneB
	match.Winner = winner
	match.AllowWinnerRun = input.AllowWinnerRun

	outcome := &MatchResultOutcome{Match: *match}

	roundMatches, err := s.bracketRepo.ListByRound(ctx, match.CategoryID, match.Round)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s matches for category %d: %w", match.Round, match.CategoryID, err)
	}

	nextMatches := speed.AdvanceRound(match.Round, roundMatches)
	if nextMatches == nil {
		// Round incomplete or already the final: saving alone is fine.
		s.hub.BroadcastCategory(match.CategoryID, live.EventMatchResultSaved, outcome)
		return outcome, nil
	}

	nextRound := nextMatches[0].Round

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	// Recreate rather than patch: a re-fired advancement must yield the
	// same pairings and must never duplicate matches. Every round after
	// the saved one is discarded, not just the next: a corrected result
	// invalidates all downstream pairings.
	for _, later := range []models.RoundID{models.RoundQF, models.RoundSF, models.RoundFinal} {
		if later.Order() <= match.Round.Order() {
			continue
		}
		if err := s.bracketRepo.DeleteMatchesByRound(ctx, tx, match.CategoryID, later); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}
	created := make([]models.Match, 0, len(nextMatches))
	for _, next := range nextMatches {
		if err := s.bracketRepo.CreateMatch(ctx, tx, &next); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to create %s match %d for category %d: %w", next.Round, next.Slot, match.CategoryID, err)
		}
		created = append(created, next)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit %s advancement for category %d: %w", nextRound, match.CategoryID, err)
	}

	s.logger.Info("round advanced",
		slog.Int("category_id", match.CategoryID),
		slog.String("from", string(match.Round)),
		slog.String("to", string(nextRound)),
		slog.Int("matches", len(created)))

	outcome.Advanced = true
	outcome.NextRound = created
	s.hub.BroadcastCategory(match.CategoryID, live.EventRoundAdvanced, outcome)
	return outcome, nil
}
