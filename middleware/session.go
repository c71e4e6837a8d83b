package middleware

import (
	"net/http"

	"beach-review/models"
	"beach-review/utils"

	log "github.com/sirupsen/logrus"
)

// SessionMiddleware puts the caller's session into the request context. A
// request without a valid session is given a new anonymous one.
func SessionMiddleware(sessions *utils.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := sessions.Load(r)
			if err != nil {
				s = utils.NewSession()
				if _, err := sessions.Save(w, s); err != nil {
					log.Errorf("Failed to issue session: %v", err)
					utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(utils.WithSession(r.Context(), s)))
		})
	}
}

// RequireUser rejects callers that are not logged in.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.CurrentUserID(r.Context()); !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Login required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// VerifySignature rejects requests whose signed URL does not match their
// path and session.
func VerifySignature(signer *utils.URLSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := utils.SessionFrom(r.Context())
			if !ok {
				utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "Missing session"})
				return
			}
			if err := signer.Verify(r, s.ID); err != nil {
				log.WithFields(log.Fields{"path": r.URL.Path, "error": err}).Debug("Rejected signature")
				utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "Invalid signature"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
