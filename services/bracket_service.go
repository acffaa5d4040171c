package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/winsonteo/GripRank-next-sub000/live"
	"github.com/winsonteo/GripRank-next-sub000/models"
	"github.com/winsonteo/GripRank-next-sub000/repositories"
	"github.com/winsonteo/GripRank-next-sub000/speed"
	"golang.org/x/sync/errgroup"
)

// MatchView decorates a match with display labels. In the big final the
// winner's time is suppressed when the opponent false-started or did not
// show, unless the match's allow-winner-run flag is on.
type MatchView struct {
	models.Match
	LaneALabel string `json:"lane_a_label"`
	LaneBLabel string `json:"lane_b_label"`
}

type RoundView struct {
	ID      models.RoundID `json:"id"`
	Matches []MatchView    `json:"matches"`
}

type BracketView struct {
	Meta   *models.FinalsMeta `json:"meta"`
	Rounds []RoundView        `json:"rounds"`
}

type BracketService interface {
	// Regenerate deletes every existing round, match and meta for the
	// category and writes a fresh bracket seeded from the current
	// qualifier standings. Irreversible; callers confirm first.
	Regenerate(ctx context.Context, categoryID int) (*BracketView, error)
	GetBracket(ctx context.Context, categoryID int) (*BracketView, error)
}

type bracketService struct {
	db            *sql.DB
	categoryRepo  repositories.CategoryRepository
	athleteRepo   repositories.AthleteRepository
	qualifierRepo repositories.QualifierRepository
	bracketRepo   repositories.BracketRepository
	hub           *live.Hub
	logger        *slog.Logger
}

func NewBracketService(
	db *sql.DB,
	categoryRepo repositories.CategoryRepository,
	athleteRepo repositories.AthleteRepository,
	qualifierRepo repositories.QualifierRepository,
	bracketRepo repositories.BracketRepository,
	hub *live.Hub,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		db:            db,
		categoryRepo:  categoryRepo,
		athleteRepo:   athleteRepo,
		qualifierRepo: qualifierRepo,
		bracketRepo:   bracketRepo,
		hub:           hub,
		logger:        logger,
	}
}

func (s *bracketService) Regenerate(ctx context.Context, categoryID int) (*BracketView, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category %d: %w", categoryID, err)
	}

	var (
		athletes []*models.Athlete
		results  map[int]models.QualifierResult
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		athletes, err = s.athleteRepo.ListByCategory(gCtx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to list athletes for category %d: %w", categoryID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		results, err = s.qualifierRepo.MapByCategory(gCtx, categoryID)
		if err != nil {
			return fmt.Errorf("failed to load qualifier results for category %d: %w", categoryID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	standings := speed.BuildQualifierStandings(dereferenceAthletes(athletes), results, category.Precision)
	seeding, err := speed.SeedBracket(standings)
	if err != nil {
		if errors.Is(err, speed.ErrInsufficientAthletes) {
			return nil, ErrInsufficientAthletes
		}
		return nil, fmt.Errorf("failed to seed bracket for category %d: %w", categoryID, err)
	}

	meta := &models.FinalsMeta{
		CategoryID: categoryID,
		Size:       seeding.Size,
		SeedIDs:    athleteIDs(seeding.Seeds),
		Rule:       speed.SeedingRuleTopVsBottom,
	}

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

	// Deletion must finish before the new bracket is written; a reader
	// racing this transaction sees either the old bracket or the new one.
	if err := s.bracketRepo.DeleteAllByCategory(ctx, tx, categoryID); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := s.bracketRepo.CreateMeta(ctx, tx, meta); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to save finals meta for category %d: %w", categoryID, err)
	}

	firstRound := make([]models.Match, 0, len(seeding.Matches))
	for _, match := range seeding.Matches {
		match.CategoryID = categoryID
		if err := s.bracketRepo.CreateMatch(ctx, tx, &match); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to save %s match %d for category %d: %w", match.Round, match.Slot, categoryID, err)
		}
		firstRound = append(firstRound, match)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bracket regeneration for category %d: %w", categoryID, err)
	}

	s.logger.Info("bracket regenerated",
		slog.Int("category_id", categoryID),
		slog.Int("size", seeding.Size),
		slog.String("first_round", string(seeding.FirstRound)))

	view := buildBracketView(meta, firstRound, category.Precision)
	s.hub.BroadcastCategory(categoryID, live.EventBracketRegenerated, view)
	return view, nil
}

func (s *bracketService) GetBracket(ctx context.Context, categoryID int) (*BracketView, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category %d: %w", categoryID, err)
	}

	var (
		meta    *models.FinalsMeta
		matches []models.Match
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meta, err = s.bracketRepo.GetMeta(gCtx, categoryID)
		if errors.Is(err, repositories.ErrFinalsMetaNotFound) {
			return ErrBracketNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.bracketRepo.ListByCategory(gCtx, categoryID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildBracketView(meta, matches, category.Precision), nil
}

func buildBracketView(meta *models.FinalsMeta, matches []models.Match, precision int) *BracketView {
	big := speed.BigFinal(matches)

	byRound := make(map[models.RoundID][]MatchView)
	for _, m := range matches {
		isBigFinal := big != nil && m.Round == models.RoundFinal && m.Slot == big.Slot
		byRound[m.Round] = append(byRound[m.Round], MatchView{
			Match:      m,
			LaneALabel: laneLabel(m, models.SideA, isBigFinal, precision),
			LaneBLabel: laneLabel(m, models.SideB, isBigFinal, precision),
		})
	}

	rounds := make([]RoundView, 0, len(byRound))
	for id, views := range byRound {
		sort.Slice(views, func(i, j int) bool { return views[i].Slot < views[j].Slot })
		rounds = append(rounds, RoundView{ID: id, Matches: views})
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].ID.Order() < rounds[j].ID.Order() })

	return &BracketView{Meta: meta, Rounds: rounds}
}

func laneLabel(m models.Match, side models.Side, isBigFinal bool, precision int) string {
	opponent := models.SideB
	if side == models.SideB {
		opponent = models.SideA
	}
	isWinner := m.Winner != nil && *m.Winner == side
	return speed.LaneResultLabel(m.Lane(side), m.Lane(opponent), isWinner, isBigFinal, m.AllowWinnerRun, precision)
}

func athleteIDs(athletes []models.Athlete) []int {
	ids := make([]int, 0, len(athletes))
	for _, a := range athletes {
		ids = append(ids, a.ID)
	}
	return ids
}
