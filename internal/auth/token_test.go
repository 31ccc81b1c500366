package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	tok := GenerateWorkerToken("secret", "sess-1", exp)

	sid, gotExp, err := ValidateWorkerToken("secret", tok, "sess-1", time.Now(), 5)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if sid != "sess-1" || gotExp != exp {
		t.Fatalf("got sid=%q exp=%d", sid, gotExp)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok := GenerateWorkerToken("secret", "sess-1", time.Now().Add(time.Hour).Unix())
	if _, _, err := ValidateWorkerToken("other", tok, "sess-1", time.Now(), 5); err != ErrTokenSig {
		t.Fatalf("expected ErrTokenSig, got %v", err)
	}
}

func TestTokenSessionMismatch(t *testing.T) {
	tok := GenerateWorkerToken("secret", "sess-1", time.Now().Add(time.Hour).Unix())
	if _, _, err := ValidateWorkerToken("secret", tok, "sess-2", time.Now(), 5); err != ErrTokenSID {
		t.Fatalf("expected ErrTokenSID, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	tok := GenerateWorkerToken("secret", "sess-1", time.Now().Add(-time.Hour).Unix())
	if _, _, err := ValidateWorkerToken("secret", tok, "sess-1", time.Now(), 5); err != ErrTokenExp {
		t.Fatalf("expected ErrTokenExp, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, _, err := ValidateWorkerToken("secret", "not-a-token!!", "sess-1", time.Now(), 5); err != ErrTokenFormat {
		t.Fatalf("expected ErrTokenFormat, got %v", err)
	}
}
