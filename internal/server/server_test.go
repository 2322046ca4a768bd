package server

import (
	"context"
	"net/http/httptest"
	"testing"

	"savvy/config"
	"savvy/internal/app"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	application, err := app.NewWithConfig(context.Background(), config.Config{
		ServerPort:       8288,
		Environment:      "test",
		GeneralVersion:   "1.2.3",
		CorsAllowOrigins: "*",
		SeedSource:       config.SeedSourceGenerator,
		SeedJobCount:     10,
		SeedCleanerCount: 3,
		SeedRandom:       1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })
	return application
}

func TestNew(t *testing.T) {
	appServer, err := New(newTestApp(t))
	require.NoError(t, err)

	resp, err := appServer.FiberApp.Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "SavvyServer/1.2.3", resp.Header.Get(fiber.HeaderServer))
	assert.Equal(t, "DENY", resp.Header.Get(fiber.HeaderXFrameOptions))
	assert.Equal(t, "nosniff", resp.Header.Get(fiber.HeaderXContentTypeOptions))
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestListen_InvalidPort(t *testing.T) {
	appServer, err := New(newTestApp(t))
	require.NoError(t, err)

	assert.Error(t, appServer.Listen(0))
}
