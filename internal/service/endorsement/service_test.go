package endorsement_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/synapselink/backend/internal/app"
	"github.com/synapselink/backend/internal/cache"
	"github.com/synapselink/backend/internal/config"
	"github.com/synapselink/backend/internal/db"
	"github.com/synapselink/backend/internal/server"
	"github.com/synapselink/backend/internal/service/endorsement"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(&db.Profile{}, &db.Connection{}, &db.Endorsement{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	appCtx := app.New(dbase, cache.NewRedisCache(cfg), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return server.NewApp(endorsement.NewRegistrar(appCtx))
}

func post(t *testing.T, fiberApp *fiber.App, body interface{}) (*http.Response, envelope) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/endorsements", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestCreateEndorsement(t *testing.T) {
	fiberApp := setupApp(t)

	resp, env := post(t, fiberApp, map[string]string{
		"endorsed_user_id":    "u1",
		"endorsed_by_user_id": "u2",
		"skill":               "Go",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var e db.Endorsement
	require.NoError(t, json.Unmarshal(env.Data, &e))
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Go", e.Skill)
}

func TestCreateEndorsementValidation(t *testing.T) {
	fiberApp := setupApp(t)

	resp, env := post(t, fiberApp, map[string]string{
		"endorsed_user_id": "u1",
		"skill":            "Go",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestRepeatedEndorsementConflicts(t *testing.T) {
	fiberApp := setupApp(t)

	body := map[string]string{
		"endorsed_user_id":    "u1",
		"endorsed_by_user_id": "u2",
		"skill":               "Go",
	}
	resp, _ := post(t, fiberApp, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := post(t, fiberApp, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "already exists", env.Error)
}
