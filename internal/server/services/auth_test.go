package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/edusync/edusync/internal/common"
	"github.com/edusync/edusync/internal/dbx"
	"github.com/edusync/edusync/internal/server/auth"
	"github.com/edusync/edusync/internal/server/config"
	"github.com/edusync/edusync/internal/server/models"
	assessmentsrepo "github.com/edusync/edusync/internal/server/repositories/assessments"
	coursesrepo "github.com/edusync/edusync/internal/server/repositories/courses"
	resultsrepo "github.com/edusync/edusync/internal/server/repositories/results"
	usersrepo "github.com/edusync/edusync/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:               "test-secret-key-16b",
		JWTIssuer:                  "edusync",
		JWTAudience:                "edusync-frontend",
		TokenValidityDuration:      time.Hour,
		ResetTokenValidityDuration: time.Hour,
	}
}

// fakeUsersRepo is a stateful in-memory users.Repository keyed by email.
type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User

	findErr   error
	updateErr error
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byEmail: make(map[string]*models.User)}
	for _, u := range users {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsersRepo) List(context.Context) ([]*models.User, error) { return nil, nil }

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeRepoManager struct {
	users *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.users }

func (m *fakeRepoManager) Courses(db dbx.DBTX) coursesrepo.Repository         { return nil }
func (m *fakeRepoManager) Assessments(db dbx.DBTX) assessmentsrepo.Repository { return nil }
func (m *fakeRepoManager) Results(db dbx.DBTX) resultsrepo.Repository         { return nil }

func seededUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "a@b.com",
		Role:         models.RoleStudent,
		PasswordHash: hash,
	}
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	cfg := testConfig()
	rm := &fakeRepoManager{users: newFakeUsersRepo(seededUser(t, "pw1"))}
	s := NewAuthService(db, rm, auth.NewResetTokenStore(), cfg)

	token, user, err := s.Login(context.Background(), "a@b.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)

	claims, err := auth.ParseToken(token, auth.TokenConfig{
		SecretKey: []byte(cfg.JWTSecretKey),
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
	})
	require.NoError(t, err)
	require.Equal(t, "a@b.com", claims.Subject)
	require.Equal(t, models.RoleStudent, claims.Role)
	require.Equal(t, "user-1", claims.UserID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{users: newFakeUsersRepo()}
	s := NewAuthService(db, rm, auth.NewResetTokenStore(), testConfig())

	token, _, err := s.Login(context.Background(), "nobody@b.com", "pw1")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Empty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{users: newFakeUsersRepo(seededUser(t, "pw1"))}
	s := NewAuthService(db, rm, auth.NewResetTokenStore(), testConfig())

	token, _, err := s.Login(context.Background(), "a@b.com", "wrong")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	require.Empty(t, token)
}

func TestLogin_RepoFailure(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	users := newFakeUsersRepo()
	users.findErr = errors.New("connection refused")
	rm := &fakeRepoManager{users: users}
	s := NewAuthService(db, rm, auth.NewResetTokenStore(), testConfig())

	_, _, err := s.Login(context.Background(), "a@b.com", "pw1")
	require.ErrorIs(t, err, common.ErrorInternal)
}

// --- RequestPasswordReset ---

func TestRequestPasswordReset_KnownEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	store := auth.NewResetTokenStore()
	rm := &fakeRepoManager{users: newFakeUsersRepo(seededUser(t, "pw1"))}
	s := NewAuthService(db, rm, store, testConfig())

	token, err := s.RequestPasswordReset(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ticket, ok := store.TryGet(token)
	require.True(t, ok)
	require.Equal(t, "a@b.com", ticket.Email)
	require.WithinDuration(t, time.Now().Add(time.Hour), ticket.Expiry, time.Minute)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	store := auth.NewResetTokenStore()
	rm := &fakeRepoManager{users: newFakeUsersRepo()}
	s := NewAuthService(db, rm, store, testConfig())

	token, err := s.RequestPasswordReset(context.Background(), "nobody@b.com")
	require.NoError(t, err)
	require.Empty(t, token)
	require.Zero(t, store.Len())
}

// --- ResetPassword ---

func TestResetPassword_Lifecycle(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	store := auth.NewResetTokenStore()
	rm := &fakeRepoManager{users: newFakeUsersRepo(seededUser(t, "pw1"))}
	s := NewAuthService(db, rm, store, testConfig())

	token, err := s.RequestPasswordReset(context.Background(), "a@b.com")
	require.NoError(t, err)

	require.NoError(t, s.ResetPassword(context.Background(), token, "pw2"))

	// single use: second redemption fails and the ticket is gone
	err = s.ResetPassword(context.Background(), token, "pw3")
	require.ErrorIs(t, err, common.ErrInvalidResetToken)
	require.Zero(t, store.Len())

	// old credential rejected, new one accepted
	_, _, err = s.Login(context.Background(), "a@b.com", "pw1")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	_, _, err = s.Login(context.Background(), "a@b.com", "pw2")
	require.NoError(t, err)
}

func TestResetPassword_UnknownToken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{users: newFakeUsersRepo(seededUser(t, "pw1"))}
	s := NewAuthService(db, rm, auth.NewResetTokenStore(), testConfig())

	err := s.ResetPassword(context.Background(), "no-such-token", "pw2")
	require.ErrorIs(t, err, common.ErrInvalidResetToken)
}

func TestResetPassword_Expired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	store := auth.NewResetTokenStore()
	require.NoError(t, store.Insert("stale", "a@b.com", time.Now().Add(-time.Minute)))

	rm := &fakeRepoManager{users: newFakeUsersRepo(seededUser(t, "pw1"))}
	s := NewAuthService(db, rm, store, testConfig())

	err := s.ResetPassword(context.Background(), "stale", "pw2")
	require.ErrorIs(t, err, common.ErrResetTokenExpired)

	// detection removes the ticket
	_, ok := store.TryGet("stale")
	require.False(t, ok)
}

func TestResetPassword_UserDeletedAfterIssue(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	store := auth.NewResetTokenStore()
	require.NoError(t, store.Insert("orphan", "gone@b.com", time.Now().Add(time.Hour)))

	rm := &fakeRepoManager{users: newFakeUsersRepo()}
	s := NewAuthService(db, rm, store, testConfig())

	err := s.ResetPassword(context.Background(), "orphan", "pw2")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestResetPassword_ConcurrentRedeem_ExactlyOneSucceeds(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	// only the reservation winner reaches the transaction
	mock.ExpectBegin()
	mock.ExpectCommit()

	store := auth.NewResetTokenStore()
	rm := &fakeRepoManager{users: newFakeUsersRepo(seededUser(t, "pw1"))}
	s := NewAuthService(db, rm, store, testConfig())

	token, err := s.RequestPasswordReset(context.Background(), "a@b.com")
	require.NoError(t, err)

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.ResetPassword(context.Background(), token, "pw2")
		}()
	}
	wg.Wait()
	close(errs)

	successes, invalid := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, common.ErrInvalidResetToken):
			invalid++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, invalid)
	require.Zero(t, store.Len())
}
