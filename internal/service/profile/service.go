package profile

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapselink/backend/internal/app"
	"github.com/synapselink/backend/internal/db"
	"github.com/synapselink/backend/internal/repository"
	"github.com/synapselink/backend/internal/search"
	"github.com/synapselink/backend/internal/server"
)

// Service implements the profile and sign-in endpoints.
// It contains the business logic on top of the repository layer.
type Service struct {
	appCtx      *app.AppContext
	profileRepo *repository.ProfileRepository
}

// NewService creates a new profile service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		profileRepo: repository.NewProfileRepository(appCtx.DB),
	}
}

type loginRequest struct {
	Email string `json:"email"`
}

// Login resolves a profile by email, provisioning one on first sign-in.
//
// Behavior:
//   - Existing email -> the stored profile is returned unchanged.
//   - Unknown email -> a new profile is synthesized (generated id, name from
//     the email local part, deterministic placeholder avatar) and persisted.
//   - Two sign-ins racing on the same email are resolved by the unique
//     index: the loser re-fetches and returns the winner's profile, so the
//     call is idempotent either way.
func (s *Service) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return server.Bad(c, "invalid request body")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return server.Bad(c, "Email is required.")
	}

	ctx := c.Context()
	s.appCtx.Logger.Debug("Login called", "email", email)

	existing, err := s.profileRepo.FindByEmail(ctx, email)
	if err == nil {
		return server.OK(c, existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.appCtx.Logger.Error("profile lookup failed", "err", err)
		return server.Fail(c, err)
	}

	created := &db.Profile{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     localPart(email),
		Bio:      "",
		Skills:   []string{},
		ImageURL: "https://i.pravatar.cc/150?u=" + email,
	}
	if err := s.profileRepo.Create(ctx, created); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race; a concurrent sign-in created the profile
			winner, ferr := s.profileRepo.FindByEmail(ctx, email)
			if ferr != nil {
				return server.Fail(c, ferr)
			}
			return server.OK(c, winner)
		}
		s.appCtx.Logger.Error("profile create failed", "err", err)
		return server.Fail(c, err)
	}

	s.appCtx.Logger.Info("provisioned new profile", "id", created.ID, "email", email)
	return server.OK(c, created)
}

// Me returns the profile with the given id, or 404.
func (s *Service) Me(c *fiber.Ctx) error {
	id := c.Params("id")

	p, err := s.profileRepo.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return server.NotFound(c, "User not found")
		}
		s.appCtx.Logger.Error("profile fetch failed", "id", id, "err", err)
		return server.Fail(c, err)
	}
	return server.OK(c, p)
}

// Save upserts a full profile keyed by id and echoes it back.
func (s *Service) Save(c *fiber.Ctx) error {
	var p db.Profile
	if err := c.BodyParser(&p); err != nil {
		return server.Bad(c, "invalid request body")
	}
	if p.ID == "" {
		return server.Bad(c, "Profile ID is required")
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}

	if err := s.profileRepo.Upsert(c.Context(), &p); err != nil {
		s.appCtx.Logger.Error("profile upsert failed", "id", p.ID, "err", err)
		return server.Fail(c, err)
	}
	return server.OK(c, &p)
}

// Search filters profiles by name (case-insensitive substring) and/or
// skills (comma-separated, AND semantics). At least one criterion is
// required. Results are capped at search.MaxResults.
func (s *Service) Search(c *fiber.Ctx) error {
	name := c.Query("name")
	skillsQuery := c.Query("skills")
	if name == "" && skillsQuery == "" {
		return server.Bad(c, "A search query for name or skills is required.")
	}

	profiles, err := s.profileRepo.All(c.Context())
	if err != nil {
		s.appCtx.Logger.Error("profile list failed", "err", err)
		return server.Fail(c, err)
	}

	var skills []string
	if skillsQuery != "" {
		skills = strings.Split(skillsQuery, ",")
	}
	return server.OK(c, search.Filter(profiles, name, skills))
}

// localPart extracts the part of an email before the '@'.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
