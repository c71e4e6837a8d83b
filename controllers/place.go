package controllers

import (
	"net/http"

	"beach-review/models"
	"beach-review/store"
	"beach-review/utils"

	log "github.com/sirupsen/logrus"
)

type PlaceController struct{}

func (pc PlaceController) LoadCounties(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counties, err := s.Counties(r.Context())
		if err != nil {
			log.Errorf("Failed to load counties: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get counties"})
			return
		}
		utils.ResponseJSON(w, map[string]interface{}{"counties": counties})
	}
}

// LoadBeaches lists the beaches of the county given by ?id=. A missing or
// malformed id yields an empty list.
func (pc PlaceController) LoadBeaches(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		countyID, ok := queryID(r, "id")
		if !ok {
			utils.ResponseJSON(w, map[string]interface{}{"county_beaches": []models.Beach{}})
			return
		}
		beaches, err := s.BeachesByCounty(r.Context(), countyID)
		if err != nil {
			log.Errorf("Failed to load beaches: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get beaches"})
			return
		}
		utils.ResponseJSON(w, map[string]interface{}{"county_beaches": beaches})
	}
}

// Search returns every beach; the q parameter is not used for filtering.
func (pc PlaceController) Search(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		beaches, err := s.Beaches(r.Context())
		if err != nil {
			log.Errorf("Failed to search beaches: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to search beaches"})
			return
		}
		utils.ResponseJSON(w, map[string]interface{}{"results": beaches})
	}
}
