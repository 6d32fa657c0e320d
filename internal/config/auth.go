package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookie = "session"

// Auth signs and verifies the player session cookie. Tokens are HMAC-signed
// JWTs; the secret comes from AUTH_SECRET or AUTH_SECRET_FILE.
type Auth struct {
	secret        []byte
	tokenLifetime time.Duration
}

type PlayerClaims struct {
	PlayerID int64  `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewPlayerClaims(playerID int64, username string) *PlayerClaims {
	return &PlayerClaims{PlayerID: playerID, Username: username}
}

func loadAuthSecret() ([]byte, error) {
	if secret, ok := os.LookupEnv("AUTH_SECRET"); ok {
		return []byte(secret), nil
	}
	secretFile, ok := os.LookupEnv("AUTH_SECRET_FILE")
	if !ok {
		return nil, fmt.Errorf("no AUTH_SECRET or AUTH_SECRET_FILE env variable set")
	}
	data, err := os.ReadFile(secretFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read auth secret file: %w", err)
	}
	return data, nil
}

func NewAuth() (*Auth, error) {
	secret, err := loadAuthSecret()
	if err != nil {
		return nil, err
	}
	return &Auth{
		secret:        secret,
		tokenLifetime: time.Hour * 24 * 30,
	}, nil
}

func (a *Auth) Sign(claims *PlayerClaims) (string, error) {
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(a.tokenLifetime))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Auth) Refresh(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Path:     "/",
		Value:    token,
		Expires:  time.Now().Add(a.tokenLifetime),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Auth) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Auth) ParsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, err
	}
	token, err := jwt.ParseWithClaims(
		cookie.Value,
		&PlayerClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return a.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*PlayerClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
