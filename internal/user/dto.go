package user

import (
	"time"

	"github.com/google/uuid"
)

type RegisterDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	// When Plan is set the account starts as a paid membership and no
	// trial window is assigned. PaymentCredential is forwarded opaquely
	// to the payment gateway.
	Plan              *string `json:"plan,omitempty"`
	PaymentCredential *string `json:"payment_credential,omitempty"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginDTO struct {
	Code string `json:"code"`
}

type UserResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	Role                  string     `json:"role"`
	IsPaidMember          bool       `json:"is_paid_member"`
	TrialStartDate        *time.Time `json:"trial_start_date,omitempty"`
	TrialEndDate          *time.Time `json:"trial_end_date,omitempty"`
	SubscriptionType      *string    `json:"subscription_type,omitempty"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

func ToResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:                    u.ID,
		Name:                  u.Name,
		Email:                 u.Email,
		Role:                  u.Role,
		IsPaidMember:          u.IsPaidMember,
		TrialStartDate:        u.TrialStartDate,
		TrialEndDate:          u.TrialEndDate,
		SubscriptionType:      u.SubscriptionType,
		SubscriptionStartDate: u.SubscriptionStartDate,
		SubscriptionEndDate:   u.SubscriptionEndDate,
		CreatedAt:             u.CreatedAt,
	}
}
