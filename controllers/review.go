package controllers

import (
	"errors"
	"net/http"

	"beach-review/models"
	"beach-review/store"
	"beach-review/utils"

	log "github.com/sirupsen/logrus"
)

type ReviewController struct{}

type addReviewRequest struct {
	ReviewTitle string `json:"review_title" validate:"max=255"`
	Review      string `json:"review"`
	BeachID     flexID `json:"beach_id" validate:"required"`
	Image       string `json:"image"`
}

type editReviewRequest struct {
	ID     flexID `json:"id" validate:"required"`
	Title  string `json:"title" validate:"max=255"`
	Review string `json:"review"`
}

// LoadReviews lists the reviews of the beach given by ?id=. A missing or
// malformed id yields an empty list.
func (rc ReviewController) LoadReviews(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		beachID, ok := queryID(r, "id")
		if !ok {
			utils.ResponseJSON(w, map[string]interface{}{"beach_reviews": []models.Review{}})
			return
		}
		reviews, err := s.ReviewsByBeach(r.Context(), beachID)
		if err != nil {
			log.Errorf("Failed to load reviews: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to get reviews"})
			return
		}
		utils.ResponseJSON(w, map[string]interface{}{"beach_reviews": reviews})
	}
}

// AddReview stores a review written by the logged-in caller. In strict mode
// the beach must exist.
func (rc ReviewController) AddReview(s *store.Store, uploader utils.ImageUploader, strict bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, ok := utils.CurrentUserEmail(r.Context())
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Login required"})
			return
		}

		var req addReviewRequest
		if err := utils.DecodeJSON(w, r, &req); err != nil {
			respondDecodeError(w, err)
			return
		}

		if strict {
			exists, err := s.BeachExists(r.Context(), uint(req.BeachID))
			if err != nil {
				respondStoreError(w, err, "Beach")
				return
			}
			if !exists {
				utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Beach not found"})
				return
			}
		}

		image, err := utils.StoreImage(r.Context(), uploader, req.Image)
		if err != nil {
			if errors.Is(err, utils.ErrBadDataURL) {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid image"})
				return
			}
			log.Errorf("Failed to store review image: %v", err)
			utils.RespondWithError(w, http.StatusBadGateway, models.Error{Message: "Failed to store image"})
			return
		}

		review := models.Review{
			ReviewTitle: req.ReviewTitle,
			Review:      req.Review,
			BeachID:     uint(req.BeachID),
			User:        email,
			Image:       image,
		}
		if err := s.CreateReview(r.Context(), &review); err != nil {
			respondStoreError(w, err, "Review")
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{"id": review.ID, "user": email})
	}
}

// EditContact replaces a review's title and body. Only strict mode checks
// that the caller wrote the review.
func (rc ReviewController) EditContact(s *store.Store, strict bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, ok := utils.CurrentUserEmail(r.Context())
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Login required"})
			return
		}

		var req editReviewRequest
		if err := utils.DecodeJSON(w, r, &req); err != nil {
			respondDecodeError(w, err)
			return
		}

		owner := ""
		if strict {
			owner = email
		}
		if err := s.UpdateReview(r.Context(), uint(req.ID), req.Title, req.Review, owner); err != nil {
			respondStoreError(w, err, "Review")
			return
		}
		utils.ResponseEmpty(w)
	}
}

// DeleteReview removes the review given by ?id= and its likes. Outside strict
// mode a valid signature is all it takes.
func (rc ReviewController) DeleteReview(s *store.Store, strict bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := queryID(r, "id")
		if !ok {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Missing or invalid id"})
			return
		}

		owner := ""
		if strict {
			email, ok := utils.CurrentUserEmail(r.Context())
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Login required"})
				return
			}
			owner = email
		}

		if err := s.DeleteReview(r.Context(), id, owner); err != nil {
			respondStoreError(w, err, "Review")
			return
		}
		utils.ResponseEmpty(w)
	}
}
