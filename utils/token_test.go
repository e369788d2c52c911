package utils

import (
	"testing"
)

func TestJwtGenerateAndValidate(t *testing.T) {
	token, err := JwtGenerate(42, "A")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}

	parsed, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("expected token to be valid")
	}
	claims, ok := parsed.Claims.(*JwtCustomClaim)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claims.ID != 42 || claims.Role != "A" {
		t.Fatalf("claims = (%d, %q), want (42, \"A\")", claims.ID, claims.Role)
	}
}

func TestJwtGenerate_DefaultLifespan(t *testing.T) {
	// no TOKEN_HOUR_LIFESPAN set must not fail token issuance
	t.Setenv("TOKEN_HOUR_LIFESPAN", "")
	if _, err := JwtGenerate(1, "P"); err != nil {
		t.Fatalf("generate without lifespan env: %v", err)
	}
}

func TestJwtValidate_RejectsTamperedToken(t *testing.T) {
	token, err := JwtGenerate(7, "O")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	parsed, err := JwtValidate(tampered)
	if err == nil && parsed.Valid {
		t.Fatal("expected tampered token to be rejected")
	}
}
