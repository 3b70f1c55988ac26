package barControllers

import (
	"barhop/database"
	"barhop/models"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSummaryApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/bars/:id/summary", BarSummary)
	return app, db
}

func summaryResponse(t *testing.T, app *fiber.App, barID uint) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/bars/%d/summary", barID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestBarSummaryUnknownBar(t *testing.T) {
	app, _ := setupSummaryApp(t)

	status, body := summaryResponse(t, app, 4242)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])
}

func TestBarSummaryNoCheckins(t *testing.T) {
	app, db := setupSummaryApp(t)

	bar := models.Bar{Name: "Empty Taproom"}
	require.NoError(t, db.Create(&bar).Error)

	status, body := summaryResponse(t, app, bar.ID)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, InsufficientDataSummary, body["summary"])
	assert.Equal(t, false, body["cached"])
	assert.Empty(t, body["aggregate_scores"])

	// Insufficient-data responses never write the cache
	var reloaded models.Bar
	require.NoError(t, db.First(&reloaded, bar.ID).Error)
	assert.Empty(t, reloaded.AISummary)
	assert.Nil(t, reloaded.SummaryUpdatedAt)
}

func TestBarSummaryFreshCacheServedVerbatim(t *testing.T) {
	app, db := setupSummaryApp(t)

	cachedAt := time.Now().Add(-3 * 24 * time.Hour)
	scoresJSON, _ := json.Marshal(map[string]float64{"music": 9.5, "overall": 8.0})
	bar := models.Bar{
		Name:             "Cached Cellar",
		AISummary:        "A stale-free stored summary.",
		SummaryUpdatedAt: &cachedAt,
		AggregateScores:  scoresJSON,
	}
	require.NoError(t, db.Create(&bar).Error)

	// A divergent check-in that must not be consulted while fresh
	one := 1
	require.NoError(t, db.Create(&models.Checkin{BarID: bar.ID, Overall: &one, ShareToken: "tok-fresh"}).Error)

	status, body := summaryResponse(t, app, bar.ID)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "A stale-free stored summary.", body["summary"])
	assert.Equal(t, true, body["cached"])

	scores := body["aggregate_scores"].(map[string]interface{})
	assert.Equal(t, 9.5, scores["music"])
}

func TestBarSummaryStaleCacheRecomputed(t *testing.T) {
	app, db := setupSummaryApp(t)

	cachedAt := time.Now().Add(-8 * 24 * time.Hour)
	bar := models.Bar{
		Name:             "Stale Stein",
		AISummary:        "Old summary text.",
		SummaryUpdatedAt: &cachedAt,
	}
	require.NoError(t, db.Create(&bar).Error)

	nine, eight := 9, 8
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Checkin{
			BarID:      bar.ID,
			Overall:    &nine,
			Music:      &eight,
			ShareToken: fmt.Sprintf("tok-stale-%d", i),
		}).Error)
	}

	status, body := summaryResponse(t, app, bar.ID)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["cached"])

	scores := body["aggregate_scores"].(map[string]interface{})
	assert.Equal(t, 9.0, scores["overall"])
	assert.Equal(t, 8.0, scores["music"])
	assert.Equal(t, 0.0, scores["lighting"])

	summary := body["summary"].(string)
	assert.Contains(t, summary, "music")
	assert.Contains(t, summary, "Patrons consistently rate this as a high-quality establishment.")

	// Recomputation persists the refreshed cache
	var reloaded models.Bar
	require.NoError(t, db.First(&reloaded, bar.ID).Error)
	assert.Equal(t, summary, reloaded.AISummary)
	require.NotNil(t, reloaded.SummaryUpdatedAt)
	assert.WithinDuration(t, time.Now(), *reloaded.SummaryUpdatedAt, time.Minute)
}
