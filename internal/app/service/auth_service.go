package service

import (
	"context"
	"time"

	"friendbook/internal/common"
	"friendbook/internal/common/security"
	"friendbook/internal/domain/model"
	"friendbook/internal/domain/repository"
	"friendbook/internal/platform/session"

	"github.com/google/uuid"
)

type AuthService struct {
	users      repository.UserRepository
	tokens     *security.TokenService
	sessions   session.Store
	tokenTTL   time.Duration
	sessionTTL time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	tokens *security.TokenService,
	sessions session.Store,
	tokenTTL time.Duration,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		sessions:   sessions,
		tokenTTL:   tokenTTL,
		sessionTTL: sessionTTL,
	}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult carries everything the HTTP layer needs to finish a login:
// the minted token for the response body and the session id plus expiry
// for the cookie.
type LoginResult struct {
	Username  string
	Token     string
	SessionID string
	ExpiresAt time.Time
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.Errorf("username and password are required: %w", common.ErrBadRequest)
	}
	user, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.Errorf("username and password are required: %w", common.ErrBadRequest)
	}
	if !s.users.Authenticate(ctx, req.Username, req.Password) {
		return nil, common.Errorf("invalid username or password: %w", common.ErrUnauthorized)
	}

	// The payload is opaque to the rest of the system; it only travels
	// inside the token and back out through the auth gate.
	payload := uuid.NewString()
	token, err := s.tokens.Issue(req.Username, payload, s.tokenTTL)
	if err != nil {
		return nil, common.Errorf("failed to issue token: %w", err)
	}

	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(s.sessionTTL)
	sess := model.Session{
		Username:  req.Username,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, sessionID, sess); err != nil {
		return nil, common.Errorf("failed to create session: %w", common.ErrInternalServer)
	}

	return &LoginResult{
		Username:  req.Username,
		Token:     token,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout destroys the session. Destroying an unknown session is fine;
// only a backend fault is an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return common.Errorf("failed to destroy session: %w", common.ErrInternalServer)
	}
	return nil
}
