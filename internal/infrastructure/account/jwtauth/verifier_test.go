package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VeselinMar/TournamentManager/internal/domain/user"
	"github.com/VeselinMar/TournamentManager/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestVerifier_RoundTrip(t *testing.T) {
	t.Parallel()

	v := NewVerifier("secret", "accounts.test")
	token, err := v.Issue(user.Principal{UserID: "owner-1", Email: "owner@example.com"}, time.Hour)
	require.NoError(t, err)

	got, err := v.VerifyAccessToken(context.Background(), "  "+token+" ")
	require.NoError(t, err)
	require.Equal(t, user.Principal{UserID: "owner-1", Email: "owner@example.com"}, got)
}

func TestVerifier_Rejects(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewVerifier("secret", "accounts.test")
	issuer.now = func() time.Time { return now }

	valid, err := issuer.Issue(user.Principal{UserID: "owner-1"}, time.Hour)
	require.NoError(t, err)
	expired, err := issuer.Issue(user.Principal{UserID: "owner-1"}, -time.Hour)
	require.NoError(t, err)
	noSubject, err := issuer.Issue(user.Principal{}, time.Hour)
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "owner-1",
		Issuer:    "accounts.test",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	otherSecret := NewVerifier("other", "accounts.test")
	otherSecret.now = issuer.now
	otherIssuer := NewVerifier("secret", "someone.else")
	otherIssuer.now = issuer.now

	cases := []struct {
		name     string
		verifier *Verifier
		token    string
	}{
		{name: "empty token", verifier: issuer, token: " "},
		{name: "garbage", verifier: issuer, token: "not-a-jwt"},
		{name: "expired", verifier: issuer, token: expired},
		{name: "missing subject", verifier: issuer, token: noSubject},
		{name: "wrong algorithm", verifier: issuer, token: hs512},
		{name: "wrong secret", verifier: otherSecret, token: valid},
		{name: "wrong issuer", verifier: otherIssuer, token: valid},
		{name: "unconfigured secret", verifier: NewVerifier("", ""), token: valid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.verifier.VerifyAccessToken(context.Background(), tc.token)
			if !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("VerifyAccessToken() got=%v want=%v", err, usecase.ErrUnauthorized)
			}
		})
	}
}
