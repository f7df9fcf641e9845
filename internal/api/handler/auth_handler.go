package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"friendbook/internal/app/service"
	"friendbook/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
	cookieName  string
	sessionTTL  time.Duration
}

func NewAuthHandler(authService *service.AuthService, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, cookieName: cookieName, sessionTTL: sessionTTL}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, common.Response{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	// Development posture: not marked Secure.
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    result.SessionID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	type loginData struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	}
	common.RespondWithJSON(w, http.StatusOK, common.Response{
		Success: true,
		Message: "Login successful",
		Data:    loginData{Username: result.Username, Token: result.Token},
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.cookieName); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	common.RespondWithJSON(w, http.StatusOK, common.Response{
		Success: true,
		Message: "Logged out successfully",
	})
}
