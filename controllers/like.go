package controllers

import (
	"net/http"

	"beach-review/middleware"
	"beach-review/models"
	"beach-review/store"
	"beach-review/utils"

	log "github.com/sirupsen/logrus"
)

type LikeController struct{}

type setLikesRequest struct {
	ReviewID flexID `json:"review_id" validate:"required"`
}

// GetLikes reports whether the caller likes the review given by
// ?review_id=. Anonymous callers never do.
func (lc LikeController) GetLikes(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID, ok := queryID(r, "review_id")
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Missing or invalid review_id"})
			return
		}

		userID, ok := utils.CurrentUserID(r.Context())
		if !ok {
			utils.ResponseJSON(w, map[string]interface{}{"liked": false})
			return
		}

		liked, err := s.Liked(r.Context(), reviewID, userID)
		if err != nil {
			log.Errorf("Failed to check like: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Error checking like"})
			return
		}
		utils.ResponseJSON(w, map[string]interface{}{"liked": liked})
	}
}

// SetLikes toggles the caller's like on a review.
func (lc LikeController) SetLikes(s *store.Store, metrics *middleware.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.CurrentUserID(r.Context())
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Login required"})
			return
		}

		var req setLikesRequest
		if err := utils.DecodeJSON(w, r, &req); err != nil {
			respondDecodeError(w, err)
			return
		}

		state, err := s.ToggleLike(r.Context(), uint(req.ReviewID), userID)
		if err != nil {
			respondStoreError(w, err, "Review")
			return
		}

		if metrics != nil {
			result := "unliked"
			if state.Liked {
				result = "liked"
			}
			metrics.LikeToggles.WithLabelValues(result).Inc()
		}
		utils.ResponseJSON(w, state)
	}
}
