package checkinControllers_test

import (
	"barhop/config"
	"barhop/database"
	"barhop/middleware"
	"barhop/models"
	"barhop/ratelimit"
	"barhop/routers/checkinRoutes"
	"bytes"
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

type checkinFixture struct {
	app   *fiber.App
	db    *gorm.DB
	bar   models.Bar
	user  models.User
	token string
}

func setupCheckinApp(t *testing.T) *checkinFixture {
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

	config.AppConfig = &config.Config{
		JWTKey:           "test-secret",
		SaltRound:        4,
		RateLimitPerHour: 30,
	}
	ratelimit.Default = ratelimit.NewMemoryStore(100, time.Hour)

	user := models.User{Username: "stout", Email: "stout@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	bar := models.Bar{Name: "The Copper Kettle", Address: "1 Brew Ln"}
	require.NoError(t, db.Create(&bar).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Email)
	require.NoError(t, err)

	app := fiber.New()
	checkinRoutes.SetupCheckinRoutes(app)

	return &checkinFixture{app: app, db: db, bar: bar, user: user, token: token}
}

func (f *checkinFixture) do(t *testing.T, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func fullRatings() map[string]int {
	return map[string]int{
		"taste": 8, "bitterness": 6, "aroma": 7, "smoothness": 8, "carbonation": 5,
		"temperature": 9, "music": 7, "lighting": 6, "crowd_vibe": 8, "cleanliness": 7, "decor": 6,
	}
}

func TestCreateCheckinPersistsRecord(t *testing.T) {
	f := setupCheckinApp(t)

	overall := 8
	resp := f.do(t, http.MethodPost, "/checkins/", f.token, fiber.Map{
		"bar_id":    f.bar.ID,
		"beer_name": "Amber Ale",
		"ratings":   fullRatings(),
		"context":   fiber.Map{"day_of_week": 5, "group_size": 3, "company_type": "friends", "beers_already": 1},
		"overall":   overall,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.NotZero(t, body["id"])

	var stored models.Checkin
	require.NoError(t, f.db.First(&stored, uint(body["id"].(float64))).Error)
	assert.Equal(t, f.user.ID, stored.UserID)
	assert.Equal(t, "Amber Ale", stored.BeerName)
	require.NotNil(t, stored.Taste)
	assert.Equal(t, 8, *stored.Taste)
	require.NotNil(t, stored.Overall)
	assert.Equal(t, 8, *stored.Overall)
	assert.Equal(t, 5, stored.DayOfWeek)
	assert.NotEmpty(t, stored.ShareToken)

	// Creating a check-in refreshes the bar's aggregate row
	var agg models.BarAggregate
	require.NoError(t, f.db.Where("bar_id = ?", f.bar.ID).First(&agg).Error)
	assert.Equal(t, int64(1), agg.CheckinCount)
	assert.Equal(t, 8.0, agg.AvgOverall)
}

func TestCreateCheckinUnknownBar(t *testing.T) {
	f := setupCheckinApp(t)

	resp := f.do(t, http.MethodPost, "/checkins/", f.token, fiber.Map{
		"bar_id":  99999,
		"ratings": fullRatings(),
		"context": fiber.Map{"day_of_week": 1, "group_size": 1, "company_type": "alone", "beers_already": 0},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateCheckinMissingRatingRejected(t *testing.T) {
	f := setupCheckinApp(t)

	ratings := fullRatings()
	delete(ratings, "crowd_vibe")

	resp := f.do(t, http.MethodPost, "/checkins/", f.token, fiber.Map{
		"bar_id":  f.bar.ID,
		"ratings": ratings,
		"context": fiber.Map{"day_of_week": 1, "group_size": 1, "company_type": "alone", "beers_already": 0},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	errs := body["data"].(map[string]interface{})
	assert.Contains(t, errs, "ratings.crowd_vibe")
}

func TestCreateCheckinRequiresAuth(t *testing.T) {
	f := setupCheckinApp(t)

	resp := f.do(t, http.MethodPost, "/checkins/", "", fiber.Map{
		"bar_id":  f.bar.ID,
		"ratings": fullRatings(),
		"context": fiber.Map{"day_of_week": 1, "group_size": 1, "company_type": "alone", "beers_already": 0},
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetCheckinIncludesBar(t *testing.T) {
	f := setupCheckinApp(t)

	nine := 9
	checkin := models.Checkin{
		UserID: f.user.ID, BarID: f.bar.ID,
		BeerName: "Porter", Overall: &nine, ShareToken: "tok-1",
	}
	require.NoError(t, f.db.Create(&checkin).Error)

	resp := f.do(t, http.MethodGet, fmt.Sprintf("/checkins/%d", checkin.ID), "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	got := body["checkin"].(map[string]interface{})
	assert.Equal(t, "Porter", got["beer_name"])
	assert.Equal(t, 9.0, got["overall"])

	barBody := got["bar"].(map[string]interface{})
	assert.Equal(t, "The Copper Kettle", barBody["name"])
}

func TestDeleteCheckinOwnerOnly(t *testing.T) {
	f := setupCheckinApp(t)

	other := models.User{Username: "lager", Email: "lager@example.com", Password: "x"}
	require.NoError(t, f.db.Create(&other).Error)
	otherToken, err := middleware.GenerateJWT(other.ID, other.Username, other.Email)
	require.NoError(t, err)

	checkin := models.Checkin{UserID: f.user.ID, BarID: f.bar.ID, ShareToken: "tok-2"}
	require.NoError(t, f.db.Create(&checkin).Error)

	resp := f.do(t, http.MethodDelete, fmt.Sprintf("/checkins/%d", checkin.ID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, fmt.Sprintf("/checkins/%d", checkin.ID), f.token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	f.db.Model(&models.Checkin{}).Where("id = ?", checkin.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLikeIsIdempotent(t *testing.T) {
	f := setupCheckinApp(t)

	checkin := models.Checkin{UserID: f.user.ID, BarID: f.bar.ID, ShareToken: "tok-3"}
	require.NoError(t, f.db.Create(&checkin).Error)

	for i := 0; i < 2; i++ {
		resp := f.do(t, http.MethodPost, "/checkins/like", f.token, fiber.Map{"checkin_id": checkin.ID})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	var likes int64
	f.db.Model(&models.CheckinLike{}).Where("checkin_id = ?", checkin.ID).Count(&likes)
	assert.Equal(t, int64(1), likes)

	resp := f.do(t, http.MethodDelete, fmt.Sprintf("/checkins/like?checkin_id=%d", checkin.ID), f.token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	f.db.Model(&models.CheckinLike{}).Where("checkin_id = ?", checkin.ID).Count(&likes)
	assert.Equal(t, int64(0), likes)
}

func TestUpdateCheckinImages(t *testing.T) {
	f := setupCheckinApp(t)

	checkin := models.Checkin{UserID: f.user.ID, BarID: f.bar.ID, ShareToken: "tok-4"}
	require.NoError(t, f.db.Create(&checkin).Error)

	resp := f.do(t, http.MethodPut, fmt.Sprintf("/checkins/%d", checkin.ID), f.token, fiber.Map{
		"image_paths": []string{"/uploads/a.jpg", "/uploads/b.jpg"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Checkin
	require.NoError(t, f.db.First(&stored, checkin.ID).Error)

	var paths []string
	require.NoError(t, json.Unmarshal(stored.ImagePaths, &paths))
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg"}, paths)
}
