// Package auth implements the authentication primitives of the EduSync
// server: HS256 session tokens, the argon2id password credential format, and
// the in-memory registry of password-reset tickets.
package auth

import (
	"time"

	"github.com/edusync/edusync/internal/common"
	"github.com/edusync/edusync/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SubjectUnknown is used as the token subject for accounts without an email.
const SubjectUnknown = "unknown"

// TokenConfig carries the signing parameters for session tokens. SecretKey,
// Issuer and Audience are required; config.Config.Validate enforces that at
// startup.
type TokenConfig struct {
	SecretKey []byte
	Issuer    string
	Audience  string
	Validity  time.Duration
}

// Claims is the claim set embedded in a session token: the registered claims
// plus the user id and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Role   string `json:"role"`
}

// GenerateToken signs a session token for the given user. The subject is the
// user's email (or SubjectUnknown), the role defaults to Student, and jti is
// a fresh UUID so every issued token is distinguishable.
func GenerateToken(user *models.User, cfg TokenConfig) (string, error) {
	validity := cfg.Validity
	if validity <= 0 {
		validity = 60 * time.Minute
	}

	subject := user.Email
	if subject == "" {
		subject = SubjectUnknown
	}

	role := user.Role
	if role == "" {
		role = models.RoleStudent
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: user.ID,
		Role:   role,
	})

	tokenString, err := token.SignedString(cfg.SecretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies a session token's signature, issuer, audience and
// expiry, returning its claims on success.
func ParseToken(tokenString string, cfg TokenConfig) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return cfg.SecretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
