package service

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT("alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	username, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if username != "alice" {
		t.Fatalf("username = %q; want alice", username)
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	if _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestJWTRejectsWrongKey(t *testing.T) {
	SetJWTSecret("key-one")
	token, err := GenerateJWT("alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	SetJWTSecret("key-two")
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("token signed with another key accepted")
	}
}
