package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the claim set carried by access tokens issued at login.
// Groups travel in the token so bearer requests do not need a directory
// round trip; roles are still resolved fresh on every request.
type TokenClaims struct {
	Groups []string `json:"groups"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HMAC-signed access tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenIssuer constructs an issuer. The secret must be non-empty.
func NewTokenIssuer(secret []byte, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenIssuer{secret: secret, issuer: issuer, ttl: ttl}, nil
}

// Issue signs a token for the authenticated subject. Every token carries a
// unique jti claim.
func (i *TokenIssuer) Issue(subject string, groups []string) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(i.ttl)

	claims := TokenClaims{
		Groups: groups,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiry, nil
}

// Parse verifies a token string and returns the subject and group claims.
// Any verification failure (signature, expiry, issuer, algorithm) is an
// authentication failure, never an authorization one.
func (i *TokenIssuer) Parse(tokenString string) (subject string, groups []string, err error) {
	claims := &TokenClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return "", nil, fmt.Errorf("%w: token missing subject", ErrUnauthenticated)
	}
	return claims.Subject, claims.Groups, nil
}
