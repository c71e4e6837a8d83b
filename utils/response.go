package utils

import (
	"encoding/json"
	"net/http"

	"beach-review/models"

	log "github.com/sirupsen/logrus"
)

func RespondWithError(w http.ResponseWriter, status int, error models.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(error); err != nil {
		log.Errorf("Failed to write JSON error: %v", err)
	}
}

func ResponseJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
	}
}

// ResponseEmpty answers 200 with no body.
func ResponseEmpty(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}
