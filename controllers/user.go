package controllers

import (
	"errors"
	"net/http"
	"strings"

	"beach-review/models"
	"beach-review/store"
	"beach-review/utils"

	log "github.com/sirupsen/logrus"
)

type Controller struct{}

type signupRequest struct {
	Email     string `json:"email" validate:"required,email,max=320"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=128"`
	LastName  string `json:"last_name" validate:"max=128"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c Controller) Signup(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := utils.DecodeJSON(w, r, &req); err != nil {
			respondDecodeError(w, err)
			return
		}

		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Errorf("Error hashing password: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		user := models.User{
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Password:  hash,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
		if err := s.CreateUser(r.Context(), &user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				utils.RespondWithError(w, http.StatusConflict, models.Error{Message: "Email already exists"})
				return
			}
			log.Errorf("Error inserting user: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		utils.ResponseJSON(w, user)
	}
}

// Login binds the caller's current session to the user so URLs signed
// before login stay valid.
func (c Controller) Login(s *store.Store, sessions *utils.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := utils.DecodeJSON(w, r, &req); err != nil {
			respondDecodeError(w, err)
			return
		}

		user, err := s.UserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Errorf("Error fetching user: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}
		if err != nil || !utils.ComparePasswords(user.Password, []byte(req.Password)) {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Invalid email or password"})
			return
		}

		current, _ := utils.SessionFrom(r.Context())
		session := utils.Session{ID: current.ID, UserID: user.ID, Email: user.Email}
		if session.ID == "" {
			session.ID = utils.NewSession().ID
		}
		token, err := sessions.Save(w, session)
		if err != nil {
			log.Errorf("Error issuing session: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{"user": user, "token": token})
	}
}

// Logout drops the user from the session but keeps its id.
func (c Controller) Logout(sessions *utils.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, _ := utils.SessionFrom(r.Context())
		if _, err := sessions.Save(w, utils.Session{ID: current.ID}); err != nil {
			log.Errorf("Error issuing session: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error"})
			return
		}
		utils.ResponseEmpty(w)
	}
}

// GetUser returns the caller's email, or null when not logged in.
func (c Controller) GetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var current *string
		if email, ok := utils.CurrentUserEmail(r.Context()); ok {
			current = &email
		}
		utils.ResponseJSON(w, map[string]interface{}{"current_user": current})
	}
}
