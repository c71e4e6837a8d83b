package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

type sessionClaims struct {
	SessionID string `json:"sid"`
	UserID    uint   `json:"uid,omitempty"`
	Email     string `json:"email,omitempty"`
	jwt.StandardClaims
}

// Tokens issues and parses session tokens.
type Tokens struct {
	secret     []byte
	expiration time.Duration
}

func NewTokens(secret string, expiration time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), expiration: expiration}
}

// NewSession starts an anonymous session.
func NewSession() Session {
	return Session{ID: uuid.NewString()}
}

func (t *Tokens) Expiration() time.Duration {
	return t.expiration
}

func (t *Tokens) Issue(s Session) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		SessionID: s.ID,
		UserID:    s.UserID,
		Email:     s.Email,
		StandardClaims: jwt.StandardClaims{
			Issuer:    "beach-review",
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.expiration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (Session, error) {
	claims := &sessionClaims{}
	if err := parseHMAC(tokenString, claims, t.secret); err != nil {
		return Session{}, err
	}
	if claims.SessionID == "" {
		return Session{}, fmt.Errorf("%w: missing session id", ErrTokenInvalid)
	}
	return Session{ID: claims.SessionID, UserID: claims.UserID, Email: claims.Email}, nil
}

func parseHMAC(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return ErrTokenExpired
		}
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}
