package utils

import (
	"net/http"
	"strings"
)

const SessionCookie = "beach_session"

// SessionManager loads sessions from requests and writes them back as cookies.
type SessionManager struct {
	tokens *Tokens
	secure bool
}

func NewSessionManager(tokens *Tokens, secure bool) *SessionManager {
	return &SessionManager{tokens: tokens, secure: secure}
}

// Load reads the session from a Bearer header or the session cookie.
func (m *SessionManager) Load(r *http.Request) (Session, error) {
	raw := ""
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			raw = parts[1]
		}
	}
	if raw == "" {
		c, err := r.Cookie(SessionCookie)
		if err != nil {
			return Session{}, ErrTokenInvalid
		}
		raw = c.Value
	}
	return m.tokens.Parse(raw)
}

// Save issues a token for s, sets it as the session cookie and returns it.
func (m *SessionManager) Save(w http.ResponseWriter, s Session) (string, error) {
	token, err := m.tokens.Issue(s)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.tokens.Expiration().Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}
