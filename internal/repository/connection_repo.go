package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/synapselink/backend/internal/db"
)

// ConnectionRepository provides data access methods for the Connection model.
type ConnectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new repository bound to the given DB connection.
func NewConnectionRepository(database *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: database}
}

// Create inserts a new pending connection request.
// The composite unique index on (from_user_id, to_user_id) turns duplicate
// requests into gorm.ErrDuplicatedKey.
func (r *ConnectionRepository) Create(ctx context.Context, c *db.Connection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// FindByID returns the connection with the given id, or gorm.ErrRecordNotFound.
func (r *ConnectionRepository) FindByID(ctx context.Context, id string) (*db.Connection, error) {
	var c db.Connection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ResolvePending transitions a pending connection to accepted or declined.
//
// Behavior:
//   - The update is conditional on status = 'pending', so the
//     check-then-act race collapses into a single statement: whichever
//     request lands second affects zero rows.
//   - Zero rows affected (absent id, or already resolved) returns
//     gorm.ErrRecordNotFound.
//   - Declined rows are kept with status 'declined' rather than deleted,
//     preserving history.
func (r *ConnectionRepository) ResolvePending(ctx context.Context, id, status string) (*db.Connection, error) {
	res := r.db.WithContext(ctx).
		Model(&db.Connection{}).
		Where("id = ? AND status = ?", id, db.StatusPending).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// PendingInbound returns pending requests addressed to the given user,
// newest first. Feeds the notification view.
func (r *ConnectionRepository) PendingInbound(ctx context.Context, userID string) ([]db.Connection, error) {
	connections := make([]db.Connection, 0)
	err := r.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", userID, db.StatusPending).
		Order("created_at DESC").
		Find(&connections).Error
	if err != nil {
		return nil, err
	}
	return connections, nil
}

// All returns every connection regardless of status.
func (r *ConnectionRepository) All(ctx context.Context) ([]db.Connection, error) {
	connections := make([]db.Connection, 0)
	if err := r.db.WithContext(ctx).Find(&connections).Error; err != nil {
		return nil, err
	}
	return connections, nil
}

// AllAccepted returns accepted connections only, in insertion order.
func (r *ConnectionRepository) AllAccepted(ctx context.Context) ([]db.Connection, error) {
	connections := make([]db.Connection, 0)
	err := r.db.WithContext(ctx).
		Where("status = ?", db.StatusAccepted).
		Find(&connections).Error
	if err != nil {
		return nil, err
	}
	return connections, nil
}
