package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/synapselink/backend/internal/db"
)

// EndorsementRepository provides data access methods for the Endorsement model.
type EndorsementRepository struct {
	db *gorm.DB
}

func NewEndorsementRepository(database *gorm.DB) *EndorsementRepository {
	return &EndorsementRepository{db: database}
}

// Create inserts a new endorsement. Repeating an identical
// (by, user, skill) triple hits the composite unique index and surfaces
// gorm.ErrDuplicatedKey.
func (r *EndorsementRepository) Create(ctx context.Context, e *db.Endorsement) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// All returns every endorsement in insertion order.
func (r *EndorsementRepository) All(ctx context.Context) ([]db.Endorsement, error) {
	endorsements := make([]db.Endorsement, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&endorsements).Error; err != nil {
		return nil, err
	}
	return endorsements, nil
}
