package security

import (
	"fmt"
	"time"

	"friendbook/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	Username string
	Payload  string
}

// TokenService issues and verifies HS256-signed tokens. Verification is
// stateless: a token is valid iff its signature checks out against the
// configured secret and its expiry is in the future.
type TokenService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{tokenAuth: jwtauth.New("HS256", []byte(secret), nil)}
}

// Issue creates a signed token embedding the username and an opaque
// payload, expiring ttl from now.
func (s *TokenService) Issue(username, payload string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"username": username,
		"payload":  payload,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	_, tokenString, err := s.tokenAuth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry and returns the embedded identity.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	token, err := jwtauth.VerifyToken(s.tokenAuth, tokenString)
	if err != nil {
		return Identity{}, fmt.Errorf("token verification failed: %w", common.ErrInvalidToken)
	}

	username, ok := token.Get("username")
	if !ok {
		return Identity{}, fmt.Errorf("username claim is missing: %w", common.ErrInvalidToken)
	}
	usernameStr, ok := username.(string)
	if !ok {
		return Identity{}, fmt.Errorf("username claim is not a string: %w", common.ErrInvalidToken)
	}

	payloadStr := ""
	if payload, ok := token.Get("payload"); ok {
		payloadStr, _ = payload.(string)
	}

	return Identity{Username: usernameStr, Payload: payloadStr}, nil
}
