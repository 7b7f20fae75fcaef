package serverutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	t.Run("valid payload passes", func(t *testing.T) {
		err := ValidateRequest(&payload{Email: "a@b.com", Password: "longenough"})
		assert.NoError(t, err)
	})

	t.Run("invalid payload returns 400 AppError", func(t *testing.T) {
		err := ValidateRequest(&payload{Email: "not-an-email", Password: "short"})
		require.Error(t, err)

		appErr, ok := err.(*AppError)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusBadRequest, appErr.Status)
	})
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/forbidden", func(ctx *fiber.Ctx) error {
		return NewForbidden("EMAIL_NOT_VERIFIED", "email not verified")
	})
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return NewNotFound("conversation not found")
	})
	app.Get("/panic-ish", func(ctx *fiber.Ctx) error {
		return io.ErrUnexpectedEOF
	})

	t.Run("app error carries error_type code", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/forbidden", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		var body Response[any]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, "EMAIL_NOT_VERIFIED", body.ErrorType)
		assert.Equal(t, "email not verified", body.Message)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown errors surface as generic 500", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/panic-ish", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		var body Response[any]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "internal server error", body.Message)
	})
}
