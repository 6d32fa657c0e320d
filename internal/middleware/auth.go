package middleware

import (
	"context"
	"net/http"

	"github.com/vancomm/minesweeper-ai/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

// Auth parses the session cookie when present and stores the player
// claims in the request context. Requests without a valid cookie pass
// through anonymously with the cookie cleared.
func Auth(auth *config.Auth) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := auth.ParsePlayerClaims(r)
			if err != nil {
				auth.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PlayerID extracts the authenticated player from the request context.
func PlayerID(r *http.Request) (int64, bool) {
	claims, ok := r.Context().Value(CtxPlayerClaims).(*config.PlayerClaims)
	if !ok {
		return 0, false
	}
	return claims.PlayerID, true
}
