package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Reset tokens live for a fixed hour regardless of the access token TTL.
const resetTokenTTL = time.Hour

// ResetClaims is the payload of a password reset token. The purpose claim
// keeps reset tokens out of the access verifier and vice versa.
type ResetClaims struct {
	PasswordReset bool `json:"pwd_reset"`
	jwt.RegisteredClaims
}

// IssueReset signs a single-purpose reset token for the given email.
func (tm *TokenManager) IssueReset(email string) (string, error) {
	now := time.Now()
	claims := &ResetClaims{
		PasswordReset: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// VerifyReset validates a reset token and returns the email it was issued
// for. Callers must collapse any returned error into a single generic
// message; the distinction between expiry, signature and purpose failures
// is never shown to the requester.
func (tm *TokenManager) VerifyReset(tokenStr string) (string, error) {
	claims := &ResetClaims{}
	if err := tm.parse(tokenStr, claims); err != nil {
		return "", err
	}
	if !claims.PasswordReset {
		return "", ErrWrongPurpose
	}
	if claims.Subject == "" {
		return "", ErrBadFormat
	}
	return claims.Subject, nil
}
