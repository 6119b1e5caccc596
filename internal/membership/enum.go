package membership

import "time"

type MembershipStatus string

const (
	ACTIVE_PAID     MembershipStatus = "ACTIVE_PAID"
	ACTIVE_TRIAL    MembershipStatus = "ACTIVE_TRIAL"
	EXPIRED_PAID    MembershipStatus = "EXPIRED_PAID"
	EXPIRED_TRIAL   MembershipStatus = "EXPIRED_TRIAL"
	NO_SUBSCRIPTION MembershipStatus = "NO_SUBSCRIPTION"
)

type Plan string

const (
	ONE_MONTH    Plan = "ONE_MONTH"
	THREE_MONTHS Plan = "THREE_MONTHS"
)

var AllPlans = []Plan{ONE_MONTH, THREE_MONTHS}

func (p Plan) IsValid() bool {
	for _, v := range AllPlans {
		if p == v {
			return true
		}
	}
	return false
}

// AddTo extends t by the plan's calendar length. Calendar-month
// arithmetic, not a fixed day count, so monthly renewals do not drift.
func (p Plan) AddTo(t time.Time) time.Time {
	switch p {
	case THREE_MONTHS:
		return t.AddDate(0, 3, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

type BillingEventType string

const (
	PurchaseSucceeded     BillingEventType = "purchase_succeeded"
	RenewalSucceeded      BillingEventType = "renewal_succeeded"
	SubscriptionCancelled BillingEventType = "subscription_cancelled"
)

func (t BillingEventType) IsValid() bool {
	switch t {
	case PurchaseSucceeded, RenewalSucceeded, SubscriptionCancelled:
		return true
	}
	return false
}
