package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supermall-api/internal/application/dto"
	"github.com/jhoicas/supermall-api/internal/domain"
)

// ── Checkout parcial ──────────────────────────────────────────────────────────

func partialApp(err error, logged *error) *fiber.App {
	app := fiber.New()
	app.Post("/checkout", func(c *fiber.Ctx) error {
		res := partialCheckout(c, err, []dto.OrderResponse{{ID: "o-1", OrderNumber: "ORDER-1700000000000-ABCDEFGHI"}})
		if v, ok := c.Locals(localError).(error); ok {
			*logged = v
		}
		return res
	})
	return app
}

func decodePartial(t *testing.T, app *fiber.App) (int, partialCheckoutResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/checkout", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body partialCheckoutResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestPartialCheckout_OcultaErroresInternos(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	var logged error
	status, body := decodePartial(t, partialApp(cause, &logged))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "error interno", body.Message)
	assert.NotContains(t, body.Message, "5432")
	require.Len(t, body.Orders, 1)
	assert.Equal(t, cause, logged, "el error original queda para el log de la solicitud")
}

func TestPartialCheckout_ErrorDeDominioVisible(t *testing.T) {
	cause := fmt.Errorf("%w: Masala Tea", domain.ErrInsufficientStock)
	var logged error
	status, body := decodePartial(t, partialApp(cause, &logged))

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, cause.Error(), body.Message)
	assert.Len(t, body.Orders, 1)
	assert.Nil(t, logged)
}
