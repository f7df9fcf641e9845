package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"friendbook/internal/api/middleware"
	"friendbook/internal/app/service"
	"friendbook/internal/common"

	"github.com/go-chi/chi/v5"
)

type FriendHandler struct {
	friendService *service.FriendService
}

func NewFriendHandler(friendService *service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

func (h *FriendHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listFriends)
	r.Post("/", h.createFriend)
	r.Get("/{email}", h.getFriend)
	r.Put("/{email}", h.updateFriend)
	r.Delete("/{email}", h.deleteFriend)
}

func (h *FriendHandler) listFriends(w http.ResponseWriter, r *http.Request) {
	friends, count := h.friendService.List(r.Context())

	type listResponse struct {
		common.Response
		Count int `json:"count"`
	}
	common.RespondWithJSON(w, http.StatusOK, listResponse{
		Response: common.Response{Success: true, Message: "Friends retrieved", Data: friends},
		Count:    count,
	})
}

func (h *FriendHandler) getFriend(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	friend, err := h.friendService.Get(r.Context(), email)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.Response{
		Success: true,
		Message: "Friend retrieved",
		Data:    friend,
	})
}

func (h *FriendHandler) createFriend(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUsernameFromContext(r.Context()); !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	friend, err := h.friendService.Create(r.Context(), req)
	if err != nil {
		status := common.HTTPStatusFromError(err)
		// Duplicate emails surface as 400 on this endpoint.
		if errors.Is(err, common.ErrConflict) {
			status = http.StatusBadRequest
		}
		common.RespondWithError(w, status, err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, common.Response{
		Success: true,
		Message: "Friend created",
		Data:    friend,
	})
}

func (h *FriendHandler) updateFriend(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req service.UpdateFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	friend, changed, err := h.friendService.Update(r.Context(), email, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type updateResponse struct {
		common.Response
		ChangedFields []string `json:"changedFields"`
	}
	common.RespondWithJSON(w, http.StatusOK, updateResponse{
		Response:      common.Response{Success: true, Message: "Friend updated", Data: friend},
		ChangedFields: changed,
	})
}

func (h *FriendHandler) deleteFriend(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	friend, remaining, err := h.friendService.Delete(r.Context(), email)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type deleteResponse struct {
		common.Response
		RemainingCount int `json:"remainingCount"`
	}
	common.RespondWithJSON(w, http.StatusOK, deleteResponse{
		Response:       common.Response{Success: true, Message: "Friend deleted", Data: friend},
		RemainingCount: remaining,
	})
}
