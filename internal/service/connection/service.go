package connection

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/synapselink/backend/internal/app"
	"github.com/synapselink/backend/internal/db"
	"github.com/synapselink/backend/internal/leaderboard"
	"github.com/synapselink/backend/internal/repository"
	"github.com/synapselink/backend/internal/server"
)

// Service implements the connection request endpoints.
type Service struct {
	appCtx         *app.AppContext
	connectionRepo *repository.ConnectionRepository
	profileRepo    *repository.ProfileRepository
}

// NewService creates a new connection service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:         appCtx,
		connectionRepo: repository.NewConnectionRepository(appCtx.DB),
		profileRepo:    repository.NewProfileRepository(appCtx.DB),
	}
}

type createRequest struct {
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
}

type resolveRequest struct {
	Status string `json:"status"`
}

// Create opens a new pending connection request from one profile to another.
//
// The row id follows the "<from>:<to>" convention. A repeated request for
// the same pair hits the composite unique index and comes back as 409.
func (s *Service) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Bad(c, "invalid request body")
	}
	if req.FromUserID == "" || req.ToUserID == "" {
		return server.Bad(c, "Both from_user_id and to_user_id are required.")
	}
	if req.FromUserID == req.ToUserID {
		return server.Bad(c, "Cannot connect to yourself.")
	}

	conn := &db.Connection{
		ID:         req.FromUserID + ":" + req.ToUserID,
		FromUserID: req.FromUserID,
		ToUserID:   req.ToUserID,
		Status:     db.StatusPending,
	}
	if err := s.connectionRepo.Create(c.Context(), conn); err != nil {
		s.appCtx.Logger.Error("connection create failed", "id", conn.ID, "err", err)
		return server.Fail(c, err)
	}

	s.appCtx.Logger.Debug("connection requested", "from", req.FromUserID, "to", req.ToUserID)
	return server.OK(c, conn)
}

// Resolve transitions a pending request to accepted or declined.
//
// Behavior:
//   - Only "accepted" and "declined" are valid target states.
//   - Decline keeps the row with status declined rather than deleting it;
//     the notification view only surfaces pending rows, so a declined
//     request disappears from the recipient's inbox either way.
//   - An id that is absent or no longer pending returns 404, so repeating
//     a decline (or accepting twice) fails cleanly.
//   - The connector leaderboard cache is invalidated on accept since the
//     accepted edge set changed.
func (s *Service) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")

	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Bad(c, "invalid request body")
	}
	if req.Status != db.StatusAccepted && req.Status != db.StatusDeclined {
		return server.Bad(c, "A valid status (accepted or declined) is required.")
	}

	ctx := c.Context()
	conn, err := s.connectionRepo.ResolvePending(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return server.NotFound(c, "Connection not found.")
		}
		s.appCtx.Logger.Error("connection update failed", "id", id, "err", err)
		return server.Fail(c, err)
	}

	if req.Status == db.StatusAccepted {
		if err := s.appCtx.RedisCache.InvalidateLeaderboard(ctx, leaderboard.KindConnectors); err != nil {
			s.appCtx.Logger.Warn("leaderboard cache invalidation failed", "err", err)
		}
	}

	s.appCtx.Logger.Debug("connection resolved", "id", id, "status", req.Status)
	return server.OK(c, conn)
}

// Notifications returns the pending inbound requests for a user, each
// joined with the sender's profile. Derived on every call, never stored.
func (s *Service) Notifications(c *fiber.Ctx) error {
	userID := c.Params("userId")
	ctx := c.Context()

	pending, err := s.connectionRepo.PendingInbound(ctx, userID)
	if err != nil {
		s.appCtx.Logger.Error("pending connections fetch failed", "user", userID, "err", err)
		return server.Fail(c, err)
	}

	profiles, err := s.profileRepo.All(ctx)
	if err != nil {
		s.appCtx.Logger.Error("profile list failed", "err", err)
		return server.Fail(c, err)
	}
	profilesByID := make(map[string]db.Profile, len(profiles))
	for _, p := range profiles {
		profilesByID[p.ID] = p
	}

	notifications := make([]db.Notification, 0, len(pending))
	for _, conn := range pending {
		n := db.Notification{Connection: conn}
		if sender, ok := profilesByID[conn.FromUserID]; ok {
			n.Profiles = db.SenderProfile{
				ID:       sender.ID,
				Name:     sender.Name,
				Email:    sender.Email,
				ImageURL: sender.ImageURL,
			}
		} else {
			n.Profiles = db.SenderProfile{Name: "Unknown"}
		}
		notifications = append(notifications, n)
	}

	return server.OK(c, notifications)
}
