package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	s := NewTokenService([]byte("super-secret"), 0)

	tok, err := s.Issue("a@x.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
	if claims.Role != models.RoleAdmin {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
}

func TestIssue_ExpiresAfterDefaultValidity(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewTokenService([]byte("k"), 0, WithClock(func() time.Time { return now }))

	tok, err := s.Issue("a@x.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(24 * time.Hour)) {
		t.Fatalf("unexpected exp: %v", claims.ExpiresAt.Time)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenService([]byte("secret"), time.Hour, WithClock(func() time.Time { return issuedAt }))
	tok, err := issuer.Issue("u1@x.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	later := NewTokenService([]byte("secret"), time.Hour, WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) }))
	_, err = later.Verify(tok)
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService([]byte("right-secret"), time.Hour).Issue("u2@x.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokenService([]byte("wrong-secret"), time.Hour).Verify(tok)
	if err != common.ErrInvalidSignature {
		t.Fatalf("expected common.ErrInvalidSignature, got %v", err)
	}
}

func TestVerify_SharedSecretAcrossInstances(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService([]byte("shared"), time.Hour).Issue("u3@x.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := NewTokenService([]byte("shared"), time.Minute).Verify(tok); err != nil {
		t.Fatalf("second instance rejected token: %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"not.a.jwt", "garbage", ""} {
		_, err := NewTokenService([]byte("k"), time.Hour).Verify(in)
		if err != common.ErrMalformedToken {
			t.Fatalf("Verify(%q): expected common.ErrMalformedToken, got %v", in, err)
		}
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Email:            "a@x.com",
	})
	signed, err := tok.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = NewTokenService([]byte("k"), time.Hour).Verify(signed)
	if err != common.ErrInvalidSignature {
		t.Fatalf("expected common.ErrInvalidSignature, got %v", err)
	}
}

func TestIssue_PayloadHasOnlyEmailRoleExp(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService([]byte("k"), time.Hour).Issue("a@x.com", models.RoleUser)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		t.Fatalf("ParseUnverified error: %v", err)
	}
	for _, k := range []string{"email", "role", "exp"} {
		if _, ok := claims[k]; !ok {
			t.Fatalf("claim %q missing from payload %v", k, claims)
		}
	}
	if len(claims) != 3 {
		t.Fatalf("unexpected extra claims: %v", claims)
	}
}
