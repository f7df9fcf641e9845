package handler

import (
	"net/http"
	"time"

	"friendbook/internal/common"
)

type HealthHandler struct {
	startedAt time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	type healthData struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	common.RespondWithJSON(w, http.StatusOK, common.Response{
		Success: true,
		Message: "Service is healthy",
		Data:    healthData{Status: "up", Uptime: time.Since(h.startedAt).Round(time.Second).String()},
	})
}
