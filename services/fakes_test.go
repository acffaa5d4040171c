package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/winsonteo/GripRank-next-sub000/live"
	"github.com/winsonteo/GripRank-next-sub000/models"
	"github.com/winsonteo/GripRank-next-sub000/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// nopDriver backs a *sql.DB whose transactions begin and commit without a
// database. The fake repositories ignore the executor, so no statement
// ever reaches the connection.
type nopDriver struct{}

func (nopDriver) Open(name string) (driver.Conn, error) { return nopConn{}, nil }

type nopConn struct{}

func (nopConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("statements are not supported")
}
func (nopConn) Close() error              { return nil }
func (nopConn) Begin() (driver.Tx, error) { return nopTx{}, nil }

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

func init() {
	sql.Register("nop", nopDriver{})
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("nop", "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testHub() *live.Hub {
	// No clients registered, so broadcasts are no-ops.
	return live.NewHub(testLogger())
}

type fakeCategoryRepo struct {
	categories map[int]models.Category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	category.ID = len(f.categories) + 1
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id int) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	return &c, nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	out := make([]*models.Category, 0, len(f.categories))
	for id := range f.categories {
		c := f.categories[id]
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	if _, ok := f.categories[category.ID]; !ok {
		return repositories.ErrCategoryNotFound
	}
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.categories[id]; !ok {
		return repositories.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

type fakeAthleteRepo struct {
	athletes map[int]models.Athlete
}

func (f *fakeAthleteRepo) Create(ctx context.Context, athlete *models.Athlete) error {
	athlete.ID = len(f.athletes) + 1
	f.athletes[athlete.ID] = *athlete
	return nil
}

func (f *fakeAthleteRepo) GetByID(ctx context.Context, id int) (*models.Athlete, error) {
	a, ok := f.athletes[id]
	if !ok {
		return nil, repositories.ErrAthleteNotFound
	}
	return &a, nil
}

func (f *fakeAthleteRepo) ListByCategory(ctx context.Context, categoryID int) ([]*models.Athlete, error) {
	out := make([]*models.Athlete, 0)
	for id := range f.athletes {
		if f.athletes[id].CategoryID == categoryID {
			a := f.athletes[id]
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAthleteRepo) Update(ctx context.Context, athlete *models.Athlete) error {
	if _, ok := f.athletes[athlete.ID]; !ok {
		return repositories.ErrAthleteNotFound
	}
	f.athletes[athlete.ID] = *athlete
	return nil
}

func (f *fakeAthleteRepo) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	a, ok := f.athletes[id]
	if !ok {
		return repositories.ErrAthleteNotFound
	}
	a.PhotoKey = photoKey
	f.athletes[id] = a
	return nil
}

func (f *fakeAthleteRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.athletes[id]; !ok {
		return repositories.ErrAthleteNotFound
	}
	delete(f.athletes, id)
	return nil
}

type fakeQualifierRepo struct {
	results map[int]models.QualifierResult
}

func (f *fakeQualifierRepo) Upsert(ctx context.Context, result *models.QualifierResult) error {
	f.results[result.AthleteID] = *result
	return nil
}

func (f *fakeQualifierRepo) GetByAthlete(ctx context.Context, athleteID int) (*models.QualifierResult, error) {
	r, ok := f.results[athleteID]
	if !ok {
		return nil, repositories.ErrQualifierResultNotFound
	}
	return &r, nil
}

func (f *fakeQualifierRepo) MapByCategory(ctx context.Context, categoryID int) (map[int]models.QualifierResult, error) {
	out := make(map[int]models.QualifierResult)
	for id, r := range f.results {
		if r.CategoryID == categoryID {
			out[id] = r
		}
	}
	return out, nil
}

type fakeBracketRepo struct {
	meta    map[int]models.FinalsMeta
	matches map[int]models.Match
	nextID  int
}

func newFakeBracketRepo() *fakeBracketRepo {
	return &fakeBracketRepo{
		meta:    make(map[int]models.FinalsMeta),
		matches: make(map[int]models.Match),
	}
}

func (f *fakeBracketRepo) GetMeta(ctx context.Context, categoryID int) (*models.FinalsMeta, error) {
	m, ok := f.meta[categoryID]
	if !ok {
		return nil, repositories.ErrFinalsMetaNotFound
	}
	return &m, nil
}

func (f *fakeBracketRepo) CreateMeta(ctx context.Context, exec repositories.SQLExecutor, meta *models.FinalsMeta) error {
	f.meta[meta.CategoryID] = *meta
	return nil
}

func (f *fakeBracketRepo) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return &m, nil
}

func (f *fakeBracketRepo) ListByCategory(ctx context.Context, categoryID int) ([]models.Match, error) {
	out := make([]models.Match, 0)
	for _, m := range f.matches {
		if m.CategoryID == categoryID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round.Order() < out[j].Round.Order()
		}
		return out[i].Slot < out[j].Slot
	})
	return out, nil
}

func (f *fakeBracketRepo) ListByRound(ctx context.Context, categoryID int, round models.RoundID) ([]models.Match, error) {
	all, _ := f.ListByCategory(ctx, categoryID)
	out := make([]models.Match, 0)
	for _, m := range all {
		if m.Round == round {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeBracketRepo) CreateMatch(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	f.nextID++
	match.ID = f.nextID
	f.matches[match.ID] = *match
	return nil
}

func (f *fakeBracketRepo) UpdateMatchResult(ctx context.Context, id int, laneA, laneB *models.RunResult, winner *models.Side, allowWinnerRun bool) error {
	m, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.LaneA = laneA
	m.LaneB = laneB
	m.Winner = winner
	m.AllowWinnerRun = allowWinnerRun
	f.matches[id] = m
	return nil
}

func (f *fakeBracketRepo) DeleteMatchesByRound(ctx context.Context, exec repositories.SQLExecutor, categoryID int, round models.RoundID) error {
	for id, m := range f.matches {
		if m.CategoryID == categoryID && m.Round == round {
			delete(f.matches, id)
		}
	}
	return nil
}

func (f *fakeBracketRepo) DeleteAllByCategory(ctx context.Context, exec repositories.SQLExecutor, categoryID int) error {
	for id, m := range f.matches {
		if m.CategoryID == categoryID {
			delete(f.matches, id)
		}
	}
	delete(f.meta, categoryID)
	return nil
}
