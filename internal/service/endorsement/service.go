package endorsement

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/synapselink/backend/internal/app"
	"github.com/synapselink/backend/internal/db"
	"github.com/synapselink/backend/internal/leaderboard"
	"github.com/synapselink/backend/internal/repository"
	"github.com/synapselink/backend/internal/server"
)

// Service implements the endorsement endpoint.
type Service struct {
	appCtx          *app.AppContext
	endorsementRepo *repository.EndorsementRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:          appCtx,
		endorsementRepo: repository.NewEndorsementRepository(appCtx.DB),
	}
}

type createRequest struct {
	EndorsedUserID   string `json:"endorsed_user_id"`
	EndorsedByUserID string `json:"endorsed_by_user_id"`
	Skill            string `json:"skill"`
}

// Create records a skill endorsement. Endorsements are write-once: the
// application never updates or deletes them, and repeating an identical
// (by, user, skill) triple returns 409 via the composite unique index.
func (s *Service) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Bad(c, "invalid request body")
	}
	if req.EndorsedUserID == "" || req.EndorsedByUserID == "" || req.Skill == "" {
		return server.Bad(c, "endorsed_user_id, endorsed_by_user_id, and skill are required.")
	}

	ctx := c.Context()
	e := &db.Endorsement{
		ID:               uuid.NewString(),
		EndorsedUserID:   req.EndorsedUserID,
		EndorsedByUserID: req.EndorsedByUserID,
		Skill:            req.Skill,
	}
	if err := s.endorsementRepo.Create(ctx, e); err != nil {
		s.appCtx.Logger.Error("endorsement create failed", "err", err)
		return server.Fail(c, err)
	}

	if err := s.appCtx.RedisCache.InvalidateLeaderboard(ctx, leaderboard.KindSkills); err != nil {
		s.appCtx.Logger.Warn("leaderboard cache invalidation failed", "err", err)
	}

	s.appCtx.Logger.Debug("endorsement recorded", "skill", req.Skill, "user", req.EndorsedUserID)
	return server.OK(c, e)
}
