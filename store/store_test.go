package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"beach-review/config"
	"beach-review/driver"
	"beach-review/models"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return openStore(t, filepath.Join(t.TempDir(), "beach.db"), 1)
}

func openStore(t *testing.T, path string, maxOpen int) *Store {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = path + "?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	cfg.Database.MaxOpen = maxOpen

	db, err := driver.ConnectDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { driver.Close(db) })
	require.NoError(t, driver.Migrate(db))
	return New(db)
}

func createUsers(t *testing.T, s *Store, n int) []models.User {
	t.Helper()
	users := make([]models.User, n)
	for i := range users {
		users[i] = models.User{Email: fmt.Sprintf("user%d@example.com", i), Password: "hash"}
		require.NoError(t, s.CreateUser(context.Background(), &users[i]))
	}
	return users
}

func createReview(t *testing.T, s *Store, beachID uint, author string) models.Review {
	t.Helper()
	review := models.Review{ReviewTitle: "Great waves", Review: "Clean sand", BeachID: beachID, User: author}
	require.NoError(t, s.CreateReview(context.Background(), &review))
	return review
}

func TestBeachesByCounty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	santaCruz := models.County{CountyName: "Santa Cruz", CountyID: "SC"}
	monterey := models.County{CountyName: "Monterey", CountyID: "MO"}
	require.NoError(t, s.DB().Create(&santaCruz).Error)
	require.NoError(t, s.DB().Create(&monterey).Error)

	beaches := []models.Beach{
		{BeachName: "Cowell", CountyReferenceID: santaCruz.ID},
		{BeachName: "Seabright", CountyReferenceID: santaCruz.ID},
		{BeachName: "Carmel", CountyReferenceID: monterey.ID},
	}
	require.NoError(t, s.DB().Create(&beaches).Error)

	for _, b := range beaches {
		got, err := s.BeachesByCounty(ctx, b.CountyReferenceID)
		require.NoError(t, err)
		assert.Contains(t, got, b)
		for _, g := range got {
			assert.Equal(t, b.CountyReferenceID, g.CountyReferenceID)
		}
	}

	none, err := s.BeachesByCounty(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	all, err := s.Beaches(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	counties, err := s.Counties(ctx)
	require.NoError(t, err)
	assert.Len(t, counties, 2)

	ok, err := s.BeachExists(ctx, beaches[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.BeachExists(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToggleLikeScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := createUsers(t, s, 2)
	a, b := users[0], users[1]
	review := createReview(t, s, 1, a.Email)

	state, err := s.ToggleLike(ctx, review.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeState{Liked: true, NumLikes: 1}, state)

	state, err = s.ToggleLike(ctx, review.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeState{Liked: true, NumLikes: 2}, state)

	state, err = s.ToggleLike(ctx, review.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeState{Liked: false, NumLikes: 1}, state)

	liked, err := s.Liked(ctx, review.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	liked, err = s.Liked(ctx, review.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestToggleLikeIsInvolution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := createUsers(t, s, 3)
	review := createReview(t, s, 1, users[0].Email)

	// users[1] likes first so the starting count is not zero
	_, err := s.ToggleLike(ctx, review.ID, users[1].ID)
	require.NoError(t, err)

	before, err := s.Review(ctx, review.ID)
	require.NoError(t, err)

	_, err = s.ToggleLike(ctx, review.ID, users[2].ID)
	require.NoError(t, err)
	state, err := s.ToggleLike(ctx, review.ID, users[2].ID)
	require.NoError(t, err)

	assert.False(t, state.Liked)
	assert.Equal(t, before.NumLikes, state.NumLikes)
}

func TestNumLikesMatchesLikeRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := createUsers(t, s, 4)
	review := createReview(t, s, 1, users[0].Email)

	sequence := []int{0, 1, 2, 1, 3, 0, 0, 2, 3, 1}
	for _, i := range sequence {
		state, err := s.ToggleLike(ctx, review.ID, users[i].ID)
		require.NoError(t, err)

		rows, err := s.CountLikes(ctx, review.ID)
		require.NoError(t, err)
		assert.Equal(t, int(rows), state.NumLikes)
	}
}

func TestToggleLikeConcurrentLikers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	const n = 25
	users := createUsers(t, s, n)
	review := createReview(t, s, 1, users[0].Email)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, u := range users {
		wg.Add(1)
		go func(likerID uint) {
			defer wg.Done()
			if _, err := s.ToggleLike(ctx, review.ID, likerID); err != nil {
				errs <- err
			}
		}(u.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("toggle failed: %v", err)
	}

	got, err := s.Review(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.NumLikes)

	rows, err := s.CountLikes(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), rows)
	assert.Zero(t, s.locks.size())
}

// Two stores share one database file, as two server processes would, so
// only the database transaction keeps the counter consistent.
func TestToggleLikeAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")
	first := openStore(t, path, 4)
	second := openStore(t, path, 4)
	ctx := context.Background()

	const n = 30
	users := createUsers(t, first, n)
	review := createReview(t, first, 1, users[0].Email)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i, u := range users {
		s := first
		if i%2 == 1 {
			s = second
		}
		wg.Add(1)
		go func(s *Store, likerID uint) {
			defer wg.Done()
			if _, err := s.ToggleLike(ctx, review.ID, likerID); err != nil {
				errs <- err
			}
		}(s, u.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("toggle failed: %v", err)
	}

	got, err := second.Review(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.NumLikes)

	rows, err := first.CountLikes(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), rows)
}

func TestToggleLikeUnknownReview(t *testing.T) {
	s := newTestStore(t)
	users := createUsers(t, s, 1)

	_, err := s.ToggleLike(context.Background(), 42, users[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReview(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := createUsers(t, s, 2)
	keep := createReview(t, s, 7, users[0].Email)
	gone := createReview(t, s, 7, users[0].Email)
	_, err := s.ToggleLike(ctx, gone.ID, users[1].ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteReview(ctx, gone.ID, ""))

	reviews, err := s.ReviewsByBeach(ctx, 7)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, keep.ID, reviews[0].ID)

	rows, err := s.CountLikes(ctx, gone.ID)
	require.NoError(t, err)
	assert.Zero(t, rows)

	assert.ErrorIs(t, s.DeleteReview(ctx, gone.ID, ""), ErrNotFound)
}

func TestOwnershipChecks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := createUsers(t, s, 2)
	review := createReview(t, s, 1, users[0].Email)

	err := s.UpdateReview(ctx, review.ID, "Hijacked", "", users[1].Email)
	assert.ErrorIs(t, err, ErrForbidden)
	err = s.DeleteReview(ctx, review.ID, users[1].Email)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, s.UpdateReview(ctx, review.ID, "Calm", "Flat water", users[0].Email))
	got, err := s.Review(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calm", got.ReviewTitle)
	assert.Equal(t, "Flat water", got.Review)

	// no owner means any editor
	require.NoError(t, s.UpdateReview(ctx, review.ID, "Windy", "Chop", ""))
	assert.ErrorIs(t, s.UpdateReview(ctx, 999, "x", "y", ""), ErrNotFound)
}

func TestCreateReviewResetsCounter(t *testing.T) {
	s := newTestStore(t)
	review := models.Review{ID: 77, ReviewTitle: "t", BeachID: 3, NumLikes: 50}
	require.NoError(t, s.CreateReview(context.Background(), &review))

	got, err := s.Review(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Zero(t, got.NumLikes)
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := models.User{Email: "surfer@example.com", Password: "hash"}
	require.NoError(t, s.CreateUser(ctx, &user))

	dup := models.User{Email: "surfer@example.com", Password: "other"}
	assert.ErrorIs(t, s.CreateUser(ctx, &dup), ErrConflict)

	got, err := s.UserByEmail(ctx, "surfer@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = s.UserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = s.UserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, ErrConflict},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213}, ErrConflict},
		{"mysql lock wait", fmt.Errorf("wrapped: %w", &mysql.MySQLError{Number: 1205}), ErrConflict},
		{"postgres serialization", &pgconn.PgError{Code: "40001"}, ErrConflict},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, ErrConflict},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	other := errors.New("disk full")
	assert.Equal(t, other, classify(other))
}

func TestKeyedMutex(t *testing.T) {
	k := newKeyedMutex()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock(7)
			counter++
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
	assert.Zero(t, k.size())
}
