package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-for-jwt-signing-32b"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	if claims.Subject != "alice" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "alice")
	}
	if claims.ID == "" {
		t.Error("JTI (ID) should not be empty")
	}
	if claims.ExpiresAt.Time.Before(time.Now()) {
		t.Error("newly generated token should not be expired")
	}
}

func TestGenerateToken_DefaultTTL(t *testing.T) {
	token, err := GenerateToken("alice", testSecret, 0)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	diff := claims.ExpiresAt.Time.Sub(time.Now().Add(DefaultTokenTTL))
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("default TTL off by %v", diff)
	}
}

func TestGenerateToken_EmptySubject(t *testing.T) {
	if _, err := GenerateToken("", testSecret, time.Hour); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("GenerateToken() error = %v, want ErrTokenInvalid", err)
	}
}

func sign(t *testing.T, method jwt.SigningMethod, claims jwt.Claims, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}
	return s
}

func TestParseToken_Rejects(t *testing.T) {
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-valid-jwt"},
		{"malformed", "abc.def"},
		{
			name: "wrong secret",
			token: sign(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
				Subject: "alice",
			}, []byte("another-secret-entirely-000000000")),
		},
		{
			name: "expired",
			token: sign(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{
				Subject:   "alice",
				ExpiresAt: jwt.NewNumericDate(past),
			}, []byte(testSecret)),
		},
		{
			name:  "missing subject",
			token: sign(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{}, []byte(testSecret)),
		},
		{
			name: "HS512 not accepted",
			token: sign(t, jwt.SigningMethodHS512, jwt.RegisteredClaims{
				Subject: "alice",
			}, []byte(testSecret)),
		},
		{
			name:  "unsigned",
			token: sign(t, jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "alice"}, jwt.UnsafeAllowNoneSignatureType),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token, testSecret); !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("ParseToken() error = %v, want ErrTokenInvalid", err)
			}
		})
	}
}
