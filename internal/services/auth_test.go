package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	configtools "github.com/xdoubleu/essentia/v2/pkg/config"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"sayplan.app/internal/config"
	"sayplan.app/internal/dtos"
	"sayplan.app/internal/mocks"
	"sayplan.app/internal/models"
	"sayplan.app/internal/services"
)

func testAuthService() *services.AuthService {
	cfg := config.New(logging.NewNopLogger())
	cfg.Env = configtools.TestEnv

	return services.NewAuthService(cfg, mocks.NewMockedGoTrueClient())
}

func TestSignInWithEmail(t *testing.T) {
	service := testAuthService()

	accessToken, refreshToken, err := service.SignInWithEmail(&dtos.SignInDto{
		Email:      "valid@example.com",
		Password:   "password",
		RememberMe: false,
	})

	assert.Nil(t, err)
	assert.Equal(t, "access", *accessToken)
	assert.Equal(t, "refresh", *refreshToken)
}

func TestGetUser(t *testing.T) {
	service := testAuthService()

	user, err := service.GetUser("access")

	assert.Nil(t, err)
	assert.Equal(t, "4001e9cf-3fbe-4b09-863f-bd1654cfbf76", user.ID)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestCreateCookie(t *testing.T) {
	service := testAuthService()

	cookie, err := service.CreateCookie(models.AccessScope, "token", "1h", false)

	assert.Nil(t, err)
	assert.Equal(t, "accessToken", cookie.Name)
	assert.Equal(t, "token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestCreateCookieBadExpiry(t *testing.T) {
	service := testAuthService()

	_, err := service.CreateCookie(models.AccessScope, "token", "not a duration", false)

	assert.NotNil(t, err)
}

func TestGetCookieName(t *testing.T) {
	service := testAuthService()

	assert.Equal(t, "accessToken", service.GetCookieName(models.AccessScope))
	assert.Equal(t, "refreshToken", service.GetCookieName(models.RefreshScope))
}
