// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"
)

func TestHashArgon2(t *testing.T) {
	hash, err := HashArgon2("commatoze")
	if err != nil {
		t.Fatalf("HashArgon2 error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}
	if NeedsRehash(hash) {
		t.Error("fresh hash should not need rehash")
	}
}

func TestVerifyArgon2(t *testing.T) {
	hash, err := HashArgon2("commatoze")
	if err != nil {
		t.Fatalf("HashArgon2 error: %v", err)
	}

	valid, err := VerifyArgon2("commatoze", hash)
	if err != nil {
		t.Fatalf("VerifyArgon2 error: %v", err)
	}
	if !valid {
		t.Fatal("correct secret was rejected")
	}

	valid, err = VerifyArgon2("Commatoze", hash)
	if err != nil {
		t.Fatalf("VerifyArgon2 error: %v", err)
	}
	if valid {
		t.Fatal("wrong secret was accepted")
	}
}

func TestVerifyArgon2_ForeignParameters(t *testing.T) {
	// Produced with m=65536,t=1,p=4 for "changeme".
	hash := "$argon2id$v=19$m=65536,t=1,p=4$mucMvOaS6lZ2LWNS1OEFKw$UYEWv8cvCOO6l2zGeqv3JPVe1nyy0x9GXBfYEuDM544"

	valid, err := VerifyArgon2("changeme", hash)
	if err != nil {
		t.Fatalf("VerifyArgon2 error: %v", err)
	}
	if !valid {
		t.Fatal("hash rejected correct secret")
	}
	if !NeedsRehash(hash) {
		t.Error("hash with foreign parameters should need rehash")
	}
}

func TestVerifyArgon2_Malformed(t *testing.T) {
	for _, h := range []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$bad$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		if _, err := VerifyArgon2("x", h); err == nil {
			t.Errorf("VerifyArgon2(%q) expected error", h)
		}
	}
}

func TestPlainSecret(t *testing.T) {
	v := PlainSecret("commatoze")
	if !v.Verify("commatoze") {
		t.Error("correct secret rejected")
	}
	for _, s := range []string{"", "commatoz", "commatoze ", "COMMATOZE"} {
		if v.Verify(s) {
			t.Errorf("Verify(%q) = true", s)
		}
	}
}

func TestNewVerifier(t *testing.T) {
	hash, err := HashArgon2("commatoze")
	if err != nil {
		t.Fatalf("HashArgon2 error: %v", err)
	}

	tests := []struct {
		name    string
		plain   string
		hash    string
		wantErr bool
	}{
		{"plain", "commatoze", "", false},
		{"hash", "", hash, false},
		{"both", "commatoze", hash, true},
		{"neither", "", "", true},
		{"bad hash", "", "not-a-hash", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVerifier(tt.plain, tt.hash)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewVerifier error: %v", err)
			}
			if !v.Verify("commatoze") {
				t.Error("verifier rejected correct secret")
			}
			if v.Verify("wrong") {
				t.Error("verifier accepted wrong secret")
			}
		})
	}
}
