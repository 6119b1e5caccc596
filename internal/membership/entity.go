package membership

import (
	"time"

	"github.com/google/uuid"
)

// BillingEvent is the idempotency record for one delivered payment
// event. EventID is the payment processor's external id; the unique
// index makes duplicate deliveries no-ops.
type BillingEvent struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EventID   string           `gorm:"type:text;not null;uniqueIndex" json:"event_id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      BillingEventType `gorm:"type:text;not null" json:"type"`
	Plan      *Plan            `gorm:"type:text" json:"plan,omitempty"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
}
