package auth

import (
	"net/http"

	"sayplan.app/internal/dtos"
	"sayplan.app/internal/models"
)

type Service interface {
	Access(next http.HandlerFunc) http.HandlerFunc
	SignInWithEmail(signInDto *dtos.SignInDto) (*string, *string, error)
	SignOut(accessToken string) (*http.Cookie, *http.Cookie, error)
	CreateCookie(
		scope models.Scope,
		token string,
		expiry string,
		secure bool,
	) (*http.Cookie, error)
	GetCookieName(scope models.Scope) string
}
