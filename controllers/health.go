package controllers

import (
	"net/http"

	"beach-review/models"
	"beach-review/store"
	"beach-review/utils"

	log "github.com/sirupsen/logrus"
)

// Health pings the database.
func Health(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := s.DB().DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			log.Errorf("Health check failed: %v", err)
			utils.RespondWithError(w, http.StatusServiceUnavailable, models.Error{Message: "Database unavailable"})
			return
		}
		utils.ResponseJSON(w, map[string]string{"status": "ok"})
	}
}
