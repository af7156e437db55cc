package ranking_test

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
	"github.com/synapselink/backend/internal/leaderboard"
	"github.com/synapselink/backend/internal/server"
	"github.com/synapselink/backend/internal/service/endorsement"
	"github.com/synapselink/backend/internal/service/ranking"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// SeedRankingTestData loads a deterministic dataset:
//   - u1 <-> u2 accepted, u1 -> u3 pending
//   - endorsements: Go x2 (u2 endorsed by u1 and u3), AI x1
func SeedRankingTestData(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	profiles := []db.Profile{
		{ID: "u1", Name: "User One", Email: "u1@synapse.io"},
		{ID: "u2", Name: "User Two", Email: "u2@synapse.io"},
		{ID: "u3", Name: "User Three", Email: "u3@synapse.io"},
	}
	require.NoError(t, gdb.Create(&profiles).Error)

	connections := []db.Connection{
		{ID: "u1:u2", FromUserID: "u1", ToUserID: "u2", Status: db.StatusAccepted},
		{ID: "u1:u3", FromUserID: "u1", ToUserID: "u3", Status: db.StatusPending},
	}
	require.NoError(t, gdb.Create(&connections).Error)

	endorsements := []db.Endorsement{
		{ID: "e1", EndorsedUserID: "u2", EndorsedByUserID: "u1", Skill: "Go"},
		{ID: "e2", EndorsedUserID: "u2", EndorsedByUserID: "u3", Skill: "Go"},
		{ID: "e3", EndorsedUserID: "u1", EndorsedByUserID: "u2", Skill: "AI"},
	}
	require.NoError(t, gdb.Create(&endorsements).Error)
}

// setupApp wires the ranking and endorsement routes into one app so the
// cache invalidation path is covered end to end.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *miniredis.Miniredis) {
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
	SeedRankingTestData(t, dbase)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	appCtx := app.New(dbase, redisCache, log)
	fiberApp := server.NewApp(
		ranking.NewRegistrar(appCtx),
		endorsement.NewRegistrar(appCtx),
	)
	return fiberApp, dbase, mr
}

func request(t *testing.T, fiberApp *fiber.App, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestSkillLeaderboard(t *testing.T) {
	fiberApp, _, _ := setupApp(t)

	resp, env := request(t, fiberApp, http.MethodGet, "/api/leaderboard?type=skills", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ranks []leaderboard.SkillRank
	require.NoError(t, json.Unmarshal(env.Data, &ranks))
	require.Len(t, ranks, 2)
	assert.Equal(t, leaderboard.SkillRank{Skill: "Go", EndorsementCount: 2}, ranks[0])
	assert.Equal(t, leaderboard.SkillRank{Skill: "AI", EndorsementCount: 1}, ranks[1])
}

func TestConnectorLeaderboard(t *testing.T) {
	fiberApp, _, _ := setupApp(t)

	resp, env := request(t, fiberApp, http.MethodGet, "/api/leaderboard?type=connectors", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ranks []leaderboard.ConnectorRank
	require.NoError(t, json.Unmarshal(env.Data, &ranks))
	// only u1 and u2 have an accepted edge; the pending one doesn't count
	require.Len(t, ranks, 2)
	assert.Equal(t, "u1", ranks[0].ID)
	assert.Equal(t, "User One", ranks[0].Name)
	assert.Equal(t, 1, ranks[0].ConnectionCount)
}

func TestLeaderboardInvalidType(t *testing.T) {
	fiberApp, _, _ := setupApp(t)

	resp, env := request(t, fiberApp, http.MethodGet, "/api/leaderboard?type=influence", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = request(t, fiberApp, http.MethodGet, "/api/leaderboard", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLeaderboardServedFromCache(t *testing.T) {
	fiberApp, dbase, mr := setupApp(t)

	// first call computes and caches
	_, _ = request(t, fiberApp, http.MethodGet, "/api/leaderboard?type=skills", nil)
	assert.True(t, mr.Exists("leaderboard:skills"))

	// a write bypassing the API is not visible while cached
	require.NoError(t, dbase.Create(&db.Endorsement{
		ID: "e9", EndorsedUserID: "u3", EndorsedByUserID: "u1", Skill: "Rust",
	}).Error)

	_, env := request(t, fiberApp, http.MethodGet, "/api/leaderboard?type=skills", nil)
	var ranks []leaderboard.SkillRank
	require.NoError(t, json.Unmarshal(env.Data, &ranks))
	assert.Len(t, ranks, 2)
}

func TestEndorsementInvalidatesSkillCache(t *testing.T) {
	fiberApp, _, mr := setupApp(t)

	_, _ = request(t, fiberApp, http.MethodGet, "/api/leaderboard?type=skills", nil)
	require.True(t, mr.Exists("leaderboard:skills"))

	resp, _ := request(t, fiberApp, http.MethodPost, "/api/endorsements", map[string]string{
		"endorsed_user_id":    "u3",
		"endorsed_by_user_id": "u1",
		"skill":               "Rust",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, mr.Exists("leaderboard:skills"))

	// next read recomputes with the new endorsement
	_, env := request(t, fiberApp, http.MethodGet, "/api/leaderboard?type=skills", nil)
	var ranks []leaderboard.SkillRank
	require.NoError(t, json.Unmarshal(env.Data, &ranks))
	assert.Len(t, ranks, 3)
}
