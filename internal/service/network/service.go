package network

import (
	"github.com/gofiber/fiber/v2"

	"github.com/synapselink/backend/internal/app"
	"github.com/synapselink/backend/internal/db"
	"github.com/synapselink/backend/internal/repository"
	"github.com/synapselink/backend/internal/server"
)

// Service implements the network-graph endpoint.
type Service struct {
	appCtx         *app.AppContext
	profileRepo    *repository.ProfileRepository
	connectionRepo *repository.ConnectionRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:         appCtx,
		profileRepo:    repository.NewProfileRepository(appCtx.DB),
		connectionRepo: repository.NewConnectionRepository(appCtx.DB),
	}
}

type graphPayload struct {
	Profiles    []db.Profile    `json:"profiles"`
	Connections []db.Connection `json:"connections"`
}

// Graph returns every profile plus the accepted connections between them.
// The visualization assembles nodes and edges from this payload; profiles
// without any connection still ship so they render as orphan nodes.
func (s *Service) Graph(c *fiber.Ctx) error {
	ctx := c.Context()

	profiles, err := s.profileRepo.All(ctx)
	if err != nil {
		s.appCtx.Logger.Error("profile list failed", "err", err)
		return server.Fail(c, err)
	}
	connections, err := s.connectionRepo.AllAccepted(ctx)
	if err != nil {
		s.appCtx.Logger.Error("connection list failed", "err", err)
		return server.Fail(c, err)
	}

	return server.OK(c, graphPayload{Profiles: profiles, Connections: connections})
}
