package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Payload tidak valid harus ditolak 400 dengan pesan per field,
// sebelum menyentuh DB (ctrl dibangun dengan db nil).
func TestSubmitRatings_InvalidPayloadReturnsFieldErrors(t *testing.T) {
	ctrl := NewEvaluationResponseController(nil)

	app := fiber.New()
	app.Post("/evaluation-responses", func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.New().String())
		return ctrl.SubmitRatings(c)
	})

	req := httptest.NewRequest("POST", "/evaluation-responses", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var body struct {
		Status  string            `json:"status"`
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "error", body.Status)
	assert.Contains(t, body.Errors, "FormID")
	assert.Contains(t, body.Errors, "ResponseType")
	assert.Contains(t, body.Errors, "Ratings")
}

// Body yang bukan JSON valid ditolak sebelum validasi field.
func TestSubmitRatings_MalformedBodyRejected(t *testing.T) {
	ctrl := NewEvaluationResponseController(nil)

	app := fiber.New()
	app.Post("/evaluation-responses", func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.New().String())
		return ctrl.SubmitRatings(c)
	})

	req := httptest.NewRequest("POST", "/evaluation-responses", strings.NewReader(`{not-json`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
