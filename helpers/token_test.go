package helpers

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := MintSessionToken("topsecret", "playstar", "p1", "sid-1", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseSessionToken("topsecret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Provider != "playstar" || claims.PlayID != "p1" || claims.SID != "sid-1" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := MintSessionToken("topsecret", "playstar", "p1", "sid-1", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken("other", token); err == nil {
		t.Fatalf("token verified with wrong secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := MintSessionToken("topsecret", "playstar", "p1", "sid-1", -time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken("topsecret", token); err == nil {
		t.Fatalf("expired token verified")
	}
}
