package aiControllers_test

import (
	"barhop/config"
	"barhop/controllers/aiControllers"
	"barhop/middleware"
	"barhop/ratelimit"
	aiValidators "barhop/validators/ai"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategorizeApp(t *testing.T, store ratelimit.Store) (*fiber.App, string) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey: "test-secret",
		// Unroutable endpoint so both model attempts fail immediately
		OpenAIKey:           "test-key",
		OpenAIURL:           "http://127.0.0.1:1/responses",
		OpenAIModelPrimary:  "gpt-4.1-mini",
		OpenAIModelFallback: "gpt-4.1",
		RateLimitPerHour:    30,
	}
	if store == nil {
		store = ratelimit.NewMemoryStore(100, time.Hour)
	}
	ratelimit.Default = store

	token, err := middleware.GenerateJWT(7, "stout", "stout@example.com")
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/ai/categorize", middleware.JWTMiddleware, aiValidators.Categorize(), aiControllers.Categorize)
	return app, token
}

func categorize(t *testing.T, app *fiber.App, token, description string) *http.Response {
	t.Helper()

	raw, err := json.Marshal(fiber.Map{
		"description": description,
		"context":     fiber.Map{"day_of_week": 5, "group_size": 3, "company_type": "friends", "beers_already": 1},
		"beer_name":   "Amber Ale",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/ai/categorize", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func categorizeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestCategorizeDescriptionBoundary(t *testing.T) {
	app, token := setupCategorizeApp(t, nil)

	// Two characters (after trim) is rejected before any inference
	resp := categorize(t, app, token, " ab ")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errs := categorizeBody(t, resp)["data"].(map[string]interface{})
	assert.Contains(t, errs, "description")

	// Exactly three characters passes validation
	resp = categorize(t, app, token, "ipa")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCategorizeDegradedStays200(t *testing.T) {
	app, token := setupCategorizeApp(t, nil)

	resp := categorize(t, app, token, "hazy and sweet, loud room")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := categorizeBody(t, resp)

	ratings := body["ratings"].(map[string]interface{})
	require.Len(t, ratings, 11)
	for k, v := range ratings {
		assert.Equal(t, 5.0, v, "dimension %s", k)
	}
	assert.Equal(t, 5.0, body["overall"])
	assert.Equal(t, aiControllers.FallbackReviewText, body["ai_review"])
	assert.Equal(t, "", body["ai_model"])
	assert.NotEmpty(t, body["error"])
}

func TestCategorizeQuotaExceeded(t *testing.T) {
	app, token := setupCategorizeApp(t, ratelimit.NewMemoryStore(1, time.Hour))

	resp := categorize(t, app, token, "first one fits the window")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = categorize(t, app, token, "second one is over quota")
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	body := categorizeBody(t, resp)
	require.NotNil(t, body["reset"])
	reset := int64(body["reset"].(float64))
	assert.Greater(t, reset, time.Now().UnixMilli())
}

func TestCategorizeRequiresAuth(t *testing.T) {
	app, _ := setupCategorizeApp(t, nil)

	resp := categorize(t, app, "", "no token here")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
