package controllers

import (
	"net/http"

	"beach-review/models"
	"beach-review/utils"

	log "github.com/sirupsen/logrus"
)

type IndexController struct{}

// Actions maps the index response keys to the action paths they sign.
var Actions = map[string]string{
	"load_counties_url": "/load_counties",
	"load_beaches_url":  "/load_beaches",
	"load_reviews_url":  "/load_reviews",
	"add_review_url":    "/add_review",
	"get_likes_url":     "/get_likes",
	"set_liked_url":     "/set_likes",
	"get_user_url":      "/get_user",
	"edit_contact_url":  "/edit_contact",
	"search_url":        "/search",
	"delete_review_url": "/delete_review",
	"register_url":      "/auth/register",
	"login_url":         "/auth/login",
	"logout_url":        "/auth/logout",
}

// Index returns every action URL signed for the caller's session.
func (ic IndexController) Index(signer *utils.URLSigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := utils.SessionFrom(r.Context())
		if !ok {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Missing session"})
			return
		}

		urls := make(map[string]string, len(Actions))
		for key, path := range Actions {
			signed, err := signer.Sign(path, s.ID)
			if err != nil {
				log.Errorf("Failed to sign %s: %v", path, err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
				return
			}
			urls[key] = signed
		}
		utils.ResponseJSON(w, urls)
	}
}
