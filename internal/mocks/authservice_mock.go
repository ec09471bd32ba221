package mocks

import (
	"context"
	"net/http"
	"time"

	"sayplan.app/internal/auth"
	"sayplan.app/internal/constants"
	"sayplan.app/internal/dtos"
	"sayplan.app/internal/models"
)

func NewMockedAuthService(userID string) auth.Service {
	return &MockedAuthService{
		userID: userID,
	}
}

type MockedAuthService struct {
	userID string
}

func (m *MockedAuthService) Access(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Inject a mock user into the context
		user := models.User{
			ID:    m.userID,
			Email: "user@example.com",
		}

		ctx := context.WithValue(r.Context(), constants.UserContextKey, user)
		r = r.WithContext(ctx)

		next(w, r)
	}
}

func (m *MockedAuthService) SignInWithEmail(
	_ *dtos.SignInDto,
) (*string, *string, error) {
	accessToken := "access"
	refreshToken := "refresh"
	return &accessToken, &refreshToken, nil
}

func (m *MockedAuthService) SignOut(
	_ string,
) (*http.Cookie, *http.Cookie, error) {
	deleteAccessTokenCookie := &http.Cookie{
		Name:   m.GetCookieName(models.AccessScope),
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	}
	deleteRefreshTokenCookie := &http.Cookie{
		Name:   m.GetCookieName(models.RefreshScope),
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	}

	return deleteAccessTokenCookie, deleteRefreshTokenCookie, nil
}

func (m *MockedAuthService) CreateCookie(
	scope models.Scope,
	token string,
	_ string,
	secure bool,
) (*http.Cookie, error) {
	return &http.Cookie{
		Name:     m.GetCookieName(scope),
		Value:    token,
		Expires:  time.Now().Add(time.Hour),
		SameSite: http.SameSiteStrictMode,
		HttpOnly: true,
		Secure:   secure,
		Path:     "/",
	}, nil
}

func (m *MockedAuthService) GetCookieName(scope models.Scope) string {
	if scope == models.RefreshScope {
		return "refreshToken"
	}
	return "accessToken"
}
