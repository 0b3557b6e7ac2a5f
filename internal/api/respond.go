package api

import (
	"encoding/json"
	"net/http"

	"github.com/minjekim/QuizDesk/pkg/types"
)

func respondJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondProcessError writes the {ok:false, error} shape the upload UI expects
func respondProcessError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, types.ProcessResponse{OK: false, Error: message}, status)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
