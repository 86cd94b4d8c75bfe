package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/forum-service/internal/domain"
)

// Token verification failures. Every failure mode collapses to anonymous at
// the gate; the distinction exists for logging and for the reset flow.
var (
	ErrBadFormat        = errors.New("token is not a three-segment JWT")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrNotYetValid      = errors.New("token not yet valid")
	ErrIssuerMismatch   = errors.New("token issuer mismatch")
	ErrWrongPurpose     = errors.New("token purpose mismatch")
)

// AccessClaims is the payload of an access token. The subject fields are
// individual claims so a verifier can read them without any lookup.
type AccessClaims struct {
	ID            int64       `json:"id,string"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Email         string      `json:"email"`
	Role          domain.Role `json:"role"`
	PasswordReset bool        `json:"pwd_reset,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed, self-contained bearer tokens.
// Tokens are never stored; validity is recomputed from the signature and
// the embedded timestamps on every verification.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret, issuer string, ttlSeconds int) *TokenManager {
	if ttlSeconds <= 0 {
		ttlSeconds = 3600
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Issue signs an access token for the given subject claims.
func (tm *TokenManager) Issue(id int64, firstName, lastName, email string, role domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &AccessClaims{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates an access token and returns its claims. A reset token
// is rejected with ErrWrongPurpose even when otherwise valid. The HMAC
// comparison inside the library is constant-time.
func (tm *TokenManager) Verify(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := tm.parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.PasswordReset {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

func (tm *TokenManager) parse(tokenStr string, claims jwt.Claims) error {
	if strings.Count(tokenStr, ".") != 2 {
		return ErrBadFormat
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrSignatureInvalid
		}
		return tm.secret, nil
	}, jwt.WithIssuer(tm.issuer))
	if err != nil {
		return mapTokenError(err)
	}
	if !parsed.Valid {
		return ErrSignatureInvalid
	}
	return nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuerMismatch
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrBadFormat
	default:
		return ErrSignatureInvalid
	}
}

// ExtractBearer pulls the token out of an Authorization header value. Only
// the Bearer scheme is recognized; anything else, including a present but
// malformed header, yields ok=false.
func ExtractBearer(headerValue string) (string, bool) {
	parts := strings.SplitN(headerValue, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if strings.Count(token, ".") != 2 {
		return "", false
	}
	return token, true
}
