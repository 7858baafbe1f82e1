package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	CookieName = "admin_session"
	// Marker is the cookie value that grants admin access when no signing
	// key is configured.
	Marker     = "true"
	SessionTTL = 24 * time.Hour

	adminSubject = "admin"
)

// Sessions issues, clears and checks the admin session cookie. The cookie is
// a stateless flag: nothing is stored server side, so a session cannot be
// revoked before it expires.
//
// With a signing key the cookie carries an HS256 token with a 24h expiry
// instead of the bare marker.
type Sessions struct {
	secure     bool
	signingKey []byte
	now        func() time.Time
}

func NewSessions(secure bool, signingKey string) *Sessions {
	return &Sessions{
		secure:     secure,
		signingKey: []byte(signingKey),
		now:        time.Now,
	}
}

// Issue sets the session cookie on w.
func (s *Sessions) Issue(w http.ResponseWriter) error {
	value := Marker
	if len(s.signingKey) > 0 {
		token, err := s.sign()
		if err != nil {
			return err
		}
		value = token
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Clear overwrites the session cookie with an expired, empty one.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Valid reports whether r carries a session cookie that grants admin access.
func (s *Sessions) Valid(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	if len(s.signingKey) == 0 {
		return cookie.Value == Marker
	}
	return s.verify(cookie.Value) == nil
}

func (s *Sessions) sign() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "signing session token")
	}
	return token, nil
}

func (s *Sessions) verify(value string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return err
	}
	if !token.Valid || claims.Subject != adminSubject {
		return errors.New("invalid session token")
	}
	return nil
}
