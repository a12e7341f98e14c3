// Package services contains server-side business logic. This file implements
// AuthService, which verifies credentials, issues session tokens, and drives
// the forgot/reset password lifecycle.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/edusync/edusync/internal/common"
	"github.com/edusync/edusync/internal/dbx"
	"github.com/edusync/edusync/internal/server/auth"
	"github.com/edusync/edusync/internal/server/config"
	"github.com/edusync/edusync/internal/server/models"
	"github.com/edusync/edusync/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthService provides authentication-related operations:
//   - Login: verify credentials and mint a session token
//   - RequestPasswordReset: issue a single-use reset ticket
//   - ResetPassword: redeem a ticket and replace the stored credential
//
// It is stateless per call; the injected ResetTokenStore is the only shared
// mutable state.
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	resetTokens   *auth.ResetTokenStore
	tokenConfig   auth.TokenConfig
	resetValidity time.Duration
}

// NewAuthService constructs an AuthService using repositories, the reset
// ticket registry, and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, store *auth.ResetTokenStore, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		resetTokens: store,
		tokenConfig: auth.TokenConfig{
			SecretKey: []byte(cfg.JWTSecretKey),
			Issuer:    cfg.JWTIssuer,
			Audience:  cfg.JWTAudience,
			Validity:  cfg.TokenValidityDuration,
		},
		resetValidity: cfg.ResetTokenValidityDuration,
	}
}

// Login verifies the email/password pair and, on success, returns a signed
// session token together with the authenticated user. An unknown email and a
// wrong password are both reported as common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, *models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user, s.tokenConfig)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// RequestPasswordReset issues a reset ticket for the account behind email.
// When no such account exists it returns an empty token and no error, so the
// HTTP layer can answer with the same generic success either way.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", common.ErrorInternal
	}

	token := uuid.NewString()
	expiry := time.Now().Add(s.resetValidity)

	if err := s.resetTokens.Insert(token, email, expiry); err != nil {
		// a colliding UUID would be astronomical; treat it as internal
		return "", common.ErrorInternal
	}

	return token, nil
}

// ResetPassword redeems a reset ticket and replaces the account's password
// credential. The ticket is reserved by removing it from the registry before
// the update is applied, so concurrent redeemers of the same token see
// exactly one success and the rest get ErrInvalidResetToken.
func (s *AuthService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	ticket, ok := s.resetTokens.TryGet(token)
	if !ok {
		return common.ErrInvalidResetToken
	}

	if time.Now().After(ticket.Expiry) {
		s.resetTokens.Remove(token)
		return common.ErrResetTokenExpired
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return common.ErrorInternal
	}

	// Reservation point: exactly one concurrent caller wins the removal.
	if !s.resetTokens.Remove(token) {
		return common.ErrInvalidResetToken
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.FindByEmail(ctx, ticket.Email)
		if err != nil {
			return err
		}

		user.PasswordHash = hash
		return repo.Update(ctx, user)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// account deleted after the ticket was issued
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return nil
}
