package main

import (
	"net/http"
	"os"
	"testing"

	configtools "github.com/xdoubleu/essentia/v2/pkg/config"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"sayplan.app/internal/config"
	"sayplan.app/internal/mocks"
)

const testUserID = "4001e9cf-3fbe-4b09-863f-bd1654cfbf76"

var testApp *Application //nolint:gochecknoglobals //needed for tests

//nolint:gochecknoglobals //needed for tests
var accessToken = http.Cookie{
	Name:  "accessToken",
	Value: "access",
}

func TestMain(m *testing.M) {
	cfg := config.New(logging.NewNopLogger())
	cfg.Env = configtools.TestEnv
	cfg.Throttle = false

	// no database connection: these tests only exercise handlers that
	// never touch a repository
	testApp = NewApplication(
		logging.NewNopLogger(),
		cfg,
		nil,
		mocks.NewMockedAuthService(testUserID),
		mocks.NewMockPlacesClient(),
		nil,
	)

	os.Exit(m.Run())
}
