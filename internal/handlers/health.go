package handlers

import (
	"net/http"
	"time"

	"github.com/GregMSThompson/econsim-backend/internal/response"
)

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
	startedAt       time.Time
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{
		ResponseHandler: deps.ResponseHandler,
		startedAt:       time.Now(),
	}
}

func (h *healthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{
		"status": "healthy",
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
