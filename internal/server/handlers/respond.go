package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/notesync/pkg/api"
)

// writeJSON пишет ответ в формате JSON
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError пишет api.ErrorResponse
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg, detail string) {
	writeJSON(w, logger, status, api.ErrorResponse{Error: msg, Message: detail})
}
