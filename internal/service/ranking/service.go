package ranking

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/synapselink/backend/internal/app"
	"github.com/synapselink/backend/internal/leaderboard"
	"github.com/synapselink/backend/internal/repository"
	"github.com/synapselink/backend/internal/server"
)

// Service implements the leaderboard endpoint.
// Rankings are recomputed from the store on demand, behind a Redis
// cache-first read path.
type Service struct {
	appCtx          *app.AppContext
	profileRepo     *repository.ProfileRepository
	connectionRepo  *repository.ConnectionRepository
	endorsementRepo *repository.EndorsementRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:          appCtx,
		profileRepo:     repository.NewProfileRepository(appCtx.DB),
		connectionRepo:  repository.NewConnectionRepository(appCtx.DB),
		endorsementRepo: repository.NewEndorsementRepository(appCtx.DB),
	}
}

// Leaderboard serves ?type=skills or ?type=connectors.
//
// Cache-first strategy:
//  1. Attempt to read the marshaled ranking from Redis.
//  2. On miss, recompute from the store and cache with a 1h TTL.
//
// Mutations that change the underlying data invalidate the cache eagerly,
// so the TTL only bounds staleness after missed invalidations.
func (s *Service) Leaderboard(c *fiber.Ctx) error {
	kind := c.Query("type")
	if kind != leaderboard.KindSkills && kind != leaderboard.KindConnectors {
		return server.Bad(c, "Invalid leaderboard type specified.")
	}

	ctx := c.Context()
	s.appCtx.Logger.Debug("Leaderboard called", "type", kind)

	// try cache first
	if cached, err := s.appCtx.RedisCache.GetLeaderboard(ctx, kind); err == nil && cached != "" {
		return server.OK(c, json.RawMessage(cached))
	}

	var ranking interface{}
	switch kind {
	case leaderboard.KindSkills:
		endorsements, err := s.endorsementRepo.All(ctx)
		if err != nil {
			s.appCtx.Logger.Error("endorsement list failed", "err", err)
			return server.Fail(c, err)
		}
		ranking = leaderboard.TallySkills(endorsements)

	case leaderboard.KindConnectors:
		connections, err := s.connectionRepo.All(ctx)
		if err != nil {
			s.appCtx.Logger.Error("connection list failed", "err", err)
			return server.Fail(c, err)
		}
		profiles, err := s.profileRepo.All(ctx)
		if err != nil {
			s.appCtx.Logger.Error("profile list failed", "err", err)
			return server.Fail(c, err)
		}
		ranking = leaderboard.TallyConnectors(connections, profiles)
	}

	if payload, err := json.Marshal(ranking); err == nil {
		if err := s.appCtx.RedisCache.SetLeaderboard(ctx, kind, string(payload)); err != nil {
			s.appCtx.Logger.Warn("leaderboard cache write failed", "err", err)
		}
	}

	return server.OK(c, ranking)
}
