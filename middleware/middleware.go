package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"

	"cupcakery/globals"
	"cupcakery/utils"
)

const (
	SessionCookie = "cupcake_session"
	sessionMaxAge = 30 * 24 * time.Hour
)

// Claims identify a visitor. There are no accounts; the session id only
// scopes the cart.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies signed visitor cookies.
type Sessions struct {
	secret []byte
	now    func() time.Time
}

func NewSessions(secret []byte) *Sessions {
	return &Sessions{secret: secret, now: time.Now}
}

// Attach puts the visitor's session id in the request context, issuing a
// fresh session when the cookie is missing, expired or forged.
func (s *Sessions) Attach(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sessionID := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			if claims, err := s.Validate(c.Value); err == nil {
				sessionID = claims.SessionID
			}
		}

		if sessionID == "" {
			sessionID = utils.GetUUID()
			token, err := s.Issue(sessionID)
			if err != nil {
				log.Printf("session issue error: %v", err)
				http.Error(w, "Session unavailable", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(sessionMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   r.TLS != nil,
			})
		}

		ctx := context.WithValue(r.Context(), globals.SessionIDKey, sessionID)
		next(w, r.WithContext(ctx), ps)
	}
}

// Issue signs a session token for sessionID.
func (s *Sessions) Issue(sessionID string) (string, error) {
	now := s.now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionMaxAge)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses a session token and checks its signature and expiry.
func (s *Sessions) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session: %w", err)
	}
	if !utils.IsUUID(claims.SessionID) {
		return nil, fmt.Errorf("invalid session id %q", claims.SessionID)
	}
	return claims, nil
}
