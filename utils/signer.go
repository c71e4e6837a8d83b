package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
)

const SignatureParam = "_signature"

var ErrSignatureMissing = errors.New("missing signature")

type signatureClaims struct {
	Path      string `json:"path"`
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

// URLSigner binds action URLs to a session so they cannot be replayed from
// another session or for another path.
type URLSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewURLSigner(secret string, ttl time.Duration) *URLSigner {
	return &URLSigner{secret: []byte("url:" + secret), ttl: ttl}
}

// Sign returns path with a signature query parameter for session sid.
func (s *URLSigner) Sign(path, sid string) (string, error) {
	now := time.Now()
	claims := signatureClaims{
		Path:      path,
		SessionID: sid,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	sig, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return path + "?" + SignatureParam + "=" + sig, nil
}

// Verify checks the request's signature against its path and session sid.
func (s *URLSigner) Verify(r *http.Request, sid string) error {
	sig := r.URL.Query().Get(SignatureParam)
	if sig == "" {
		return ErrSignatureMissing
	}
	claims := &signatureClaims{}
	if err := parseHMAC(sig, claims, s.secret); err != nil {
		return err
	}
	if claims.Path != r.URL.Path || claims.SessionID != sid {
		return ErrTokenInvalid
	}
	return nil
}
