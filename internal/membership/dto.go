package membership

import (
	"time"

	"github.com/google/uuid"
)

// BillingEventDTO is the webhook payload from the payment processor.
type BillingEventDTO struct {
	EventID string           `json:"event_id"`
	UserID  uuid.UUID        `json:"user_id"`
	Type    BillingEventType `json:"type"`
	Plan    *Plan            `json:"plan,omitempty"`
}

type CheckoutDTO struct {
	Plan              Plan   `json:"plan"`
	PaymentCredential string `json:"payment_credential"`
}

type StatusResponse struct {
	Status                MembershipStatus `json:"status"`
	CanExtend             bool             `json:"can_extend"`
	CanPurchase           bool             `json:"can_purchase"`
	RemainingTrialDays    *int             `json:"remaining_trial_days,omitempty"`
	TrialStartDate        *time.Time       `json:"trial_start_date,omitempty"`
	TrialEndDate          *time.Time       `json:"trial_end_date,omitempty"`
	SubscriptionType      *string          `json:"subscription_type,omitempty"`
	SubscriptionStartDate *time.Time       `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   *time.Time       `json:"subscription_end_date,omitempty"`
}
