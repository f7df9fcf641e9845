package api

import (
	"net/http"
	"time"

	"friendbook/internal/api/handler"
	"friendbook/internal/api/middleware"
	"friendbook/internal/app/service"
	"friendbook/internal/common/security"
	"friendbook/internal/platform/config"
	"friendbook/internal/platform/session"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	cfg *config.Config,
	authService *service.AuthService,
	friendService *service.FriendService,
	sessions session.Store,
	tokens *security.TokenService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	healthHandler := handler.NewHealthHandler()
	r.Get("/health", healthHandler.Health)

	// Auth routes (public; logout reads the cookie itself)
	authHandler := handler.NewAuthHandler(authService, cfg.SessionCookieName, cfg.SessionTTL)
	authHandler.RegisterRoutes(r)

	// Friend routes, behind the session+token gate
	friendHandler := handler.NewFriendHandler(friendService)
	r.Route("/friends", func(fr chi.Router) {
		fr.Use(middleware.Authenticator(sessions, tokens, cfg.SessionCookieName))
		friendHandler.RegisterRoutes(fr)
	})

	return r
}
