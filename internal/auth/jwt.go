package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/myrjola/interrogation-room/internal/errors"
)

// ErrInvalidToken is returned for missing, malformed, expired, or otherwise
// unverifiable bearer tokens.
var ErrInvalidToken = errors.NewSentinel("invalid token")

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Verify(token string) (string, error)
}

// JWTAuthenticator verifies HS256-signed JWTs whose subject is the user id.
type JWTAuthenticator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTAuthenticator(secret, issuer string, ttl time.Duration) *JWTAuthenticator {
	return &JWTAuthenticator{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Mint issues a token for the given user id. Used by the CLI and tests; in
// production deployments tokens come from the identity provider sharing the
// same secret.
func (a *JWTAuthenticator) Mint(userID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    a.issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// Verify implements Authenticator.
func (a *JWTAuthenticator) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithIssuer(a.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", errors.Wrap(errors.Join(ErrInvalidToken, err), "parse token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.Wrap(ErrInvalidToken, "token subject missing")
	}
	return claims.Subject, nil
}

// BearerToken extracts the token from an Authorization header of the form
// "Bearer <token>".
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.Wrap(ErrInvalidToken, "missing Authorization header")
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", errors.Wrap(ErrInvalidToken, "malformed Authorization header")
	}
	return token, nil
}
