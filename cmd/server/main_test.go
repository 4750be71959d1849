package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRootCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeRootCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "listshare "+version+"\n", out)
}

func TestSeedDemoRequiresDevTools(t *testing.T) {
	t.Setenv("DEV_TOOLS_ENABLED", "false")
	_, err := executeRootCommand(t, "seed-demo")
	assert.ErrorIs(t, err, errDevToolsDisabled)
}

func TestInvalidAuthModeFlag(t *testing.T) {
	_, err := executeRootCommand(t, "migrate", "--auth-mode", "basic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_MODE")
}

func TestCustomErrorHandlerHidesServerErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: customErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db password leaked") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "no such list") })

	cases := map[string]struct {
		status  int
		message string
	}{
		"/boom":    {http.StatusInternalServerError, "Internal server error"},
		"/missing": {http.StatusNotFound, "no such list"},
	}
	for path, want := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		_ = resp.Body.Close()
		assert.Equal(t, want.status, resp.StatusCode, path)
		assert.True(t, body.Error)
		assert.Equal(t, want.message, body.Message, path)
	}
}
