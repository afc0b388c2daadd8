package response

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/econsim-backend/pkg/logger"
)

type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.WriteSuccessMessage(w, r, status, data, "")
}

func (h *responseHandler) WriteSuccessMessage(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := SuccessEnvelope{
		Success: true,
		Data:    data,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Last-ditch logging; can't return an error now
		log := logger.FromContext(r.Context())
		log.Error("failed to encode success response", "error", err, "status", status)
	}
}
