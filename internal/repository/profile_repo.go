package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/synapselink/backend/internal/db"
)

// ProfileRepository provides data access methods for the Profile model.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// FindByEmail looks a profile up by its natural key.
// Returns gorm.ErrRecordNotFound when no profile carries the email.
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*db.Profile, error) {
	var p db.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID returns the profile with the given id, or gorm.ErrRecordNotFound.
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*db.Profile, error) {
	var p db.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new profile. A concurrent sign-in for the same email
// loses to the unique index and surfaces gorm.ErrDuplicatedKey; callers
// re-fetch by email in that case.
func (r *ProfileRepository) Create(ctx context.Context, p *db.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Upsert inserts or fully replaces a profile keyed by id.
//
// Behavior:
//   - If the id exists, every column is overwritten with the new values.
//   - If it doesn't, a new row is inserted.
func (r *ProfileRepository) Upsert(ctx context.Context, p *db.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(p).Error
}

// All returns every profile. The dataset is expected to stay small; search
// and aggregation filter in memory on top of this.
func (r *ProfileRepository) All(ctx context.Context) ([]db.Profile, error) {
	profiles := make([]db.Profile, 0)
	if err := r.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
