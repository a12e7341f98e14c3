package auth

import (
	"testing"
	"time"

	"github.com/edusync/edusync/internal/server/models"
)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		SecretKey: []byte("super-secret-key"),
		Issuer:    "edusync",
		Audience:  "edusync-frontend",
		Validity:  time.Hour,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:    "user-123",
		Name:  "Alice",
		Email: "a@b.com",
		Role:  models.RoleInstructor,
	}
}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()
	user := testUser()

	tok, err := GenerateToken(user, cfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, cfg)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.Subject != user.Email {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, user.Email)
	}
	if claims.UserID != user.ID {
		t.Fatalf("user id mismatch: got %q want %q", claims.UserID, user.ID)
	}
	if claims.Role != models.RoleInstructor {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
	if claims.ID == "" {
		t.Fatalf("expected non-empty jti")
	}
}

func TestGenerateToken_Defaults(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()
	cfg.Validity = 0 // falls back to 60 minutes

	user := &models.User{ID: "u1"} // no email, no role

	tok, err := GenerateToken(user, cfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, cfg)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.Subject != SubjectUnknown {
		t.Fatalf("subject = %q, want %q", claims.Subject, SubjectUnknown)
	}
	if claims.Role != models.RoleStudent {
		t.Fatalf("role = %q, want %q", claims.Role, models.RoleStudent)
	}

	left := time.Until(claims.ExpiresAt.Time)
	if left < 59*time.Minute || left > 61*time.Minute {
		t.Fatalf("default validity not applied, %v left", left)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	expiredCfg := testTokenConfig()
	expiredCfg.Validity = time.Nanosecond
	tok, err := GenerateToken(testUser(), expiredCfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := ParseToken(tok, expiredCfg); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()
	tok, err := GenerateToken(testUser(), cfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	bad := cfg
	bad.SecretKey = []byte("wrong-secret")
	if _, err := ParseToken(tok, bad); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParseToken_IssuerAudienceMismatch(t *testing.T) {
	t.Parallel()

	cfg := testTokenConfig()
	tok, err := GenerateToken(testUser(), cfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	badIssuer := cfg
	badIssuer.Issuer = "someone-else"
	if _, err := ParseToken(tok, badIssuer); err == nil {
		t.Fatalf("expected error for issuer mismatch, got nil")
	}

	badAudience := cfg
	badAudience.Audience = "other-app"
	if _, err := ParseToken(tok, badAudience); err == nil {
		t.Fatalf("expected error for audience mismatch, got nil")
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := ParseToken("not.a.jwt", testTokenConfig()); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
