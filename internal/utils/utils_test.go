package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("segredo123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "segredo123" {
		t.Fatal("password stored in clear")
	}
	if !CheckPassword(hashed, "segredo123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hashed, "outra-senha") {
		t.Error("wrong password accepted")
	}
}

func TestSignJWTRoundTrip(t *testing.T) {
	token, err := SignJWT("secret", "user-123", "Customer", 10)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}

	claims := parsed.Claims.(*Claims)
	if claims.UserID != "user-123" || claims.AuthLevel != "Customer" {
		t.Errorf("claims lost: %+v", claims)
	}
}

func TestSignJWTWrongSecret(t *testing.T) {
	token, err := SignJWT("secret", "user-123", "Customer", 10)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	if err == nil {
		t.Error("token verified with the wrong secret")
	}
}
