package handlers_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"mesto/internal/apperrors"
	"mesto/internal/handlers"

	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newErrorApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(zap.NewNop())})
	app.Use(fiberrecover.New())
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("db down")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("db down")
	})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return apperrors.Conflict("taken")
	})
	return app
}

func TestErrorHandler(t *testing.T) {
	app := newErrorApp()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unrecognized error",
			path:       "/plain",
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"` + handlers.MsgServerError + `"}`,
		},
		{
			name:       "recovered panic",
			path:       "/panic",
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"` + handlers.MsgServerError + `"}`,
		},
		{
			name:       "domain error",
			path:       "/conflict",
			wantStatus: http.StatusConflict,
			wantBody:   `{"message":"taken"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, string(body))
			assert.NotContains(t, string(body), "db down")
		})
	}
}
