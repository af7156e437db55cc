package db

import (
	"time"
)

// Connection lifecycle states. A request starts pending; the recipient
// either accepts or declines it. Declines are kept as soft status updates
// so the history survives.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Profile is a member's public identity record.
//
// Email is the natural key used at sign-in; the unique index is what makes
// concurrent find-or-create safe (the loser of the race re-fetches).
// Skills are stored as a JSON array column.
type Profile struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:128" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Skills    []string  `gorm:"serializer:json" json:"skills"`
	ImageURL  string    `gorm:"size:255" json:"image_url"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Connection is a directed request between two profiles.
//
// ID follows the "<from>:<to>" convention, and the composite unique index
// on (from_user_id, to_user_id) rejects duplicate requests at the store
// level. A reverse request (to, from) is a distinct row.
type Connection struct {
	ID         string    `gorm:"primaryKey;size:130" json:"id"`
	FromUserID string    `gorm:"size:64;not null;uniqueIndex:idx_from_to,priority:1" json:"from_user_id"`
	ToUserID   string    `gorm:"size:64;not null;uniqueIndex:idx_from_to,priority:2;index:idx_to_status,priority:1" json:"to_user_id"`
	Status     string    `gorm:"size:16;not null;default:'pending';index:idx_to_status,priority:2" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Endorsement is an unsolicited skill attestation from one profile to
// another. The composite unique index on (by, user, skill) makes repeated
// identical endorsements a constraint violation rather than a duplicate row.
type Endorsement struct {
	ID               string    `gorm:"primaryKey;size:64" json:"id"`
	EndorsedUserID   string    `gorm:"size:64;not null;uniqueIndex:idx_endorsement,priority:2" json:"endorsed_user_id"`
	EndorsedByUserID string    `gorm:"size:64;not null;uniqueIndex:idx_endorsement,priority:1" json:"endorsed_by_user_id"`
	Skill            string    `gorm:"size:128;not null;uniqueIndex:idx_endorsement,priority:3" json:"skill"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SenderProfile is the subset of Profile attached to a notification.
type SenderProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// Notification is a pending inbound connection joined with the sender's
// profile. Derived on demand, never persisted.
type Notification struct {
	Connection
	Profiles SenderProfile `json:"profiles"`
}
