package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Email        string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"type:text" json:"-"`
	Role         string    `gorm:"type:text;not null;default:'student'" json:"role"`

	GoogleID     *string `gorm:"type:text;index" json:"-"`
	RefreshToken *string `gorm:"type:text" json:"-"`

	// Entitlement fields. Trial dates and active subscription dates are
	// mutually exclusive: activating a paid period clears the trial pair,
	// and a consumed subscription never resurrects the trial.
	IsPaidMember            bool       `gorm:"not null;default:false" json:"is_paid_member"`
	HadTrial                bool       `gorm:"not null;default:false" json:"-"`
	TrialStartDate          *time.Time `json:"trial_start_date,omitempty"`
	TrialEndDate            *time.Time `json:"trial_end_date,omitempty"`
	SubscriptionType        *string    `gorm:"type:text" json:"subscription_type,omitempty"`
	SubscriptionStartDate   *time.Time `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate     *time.Time `json:"subscription_end_date,omitempty"`
	LastSubscriptionEndDate *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
