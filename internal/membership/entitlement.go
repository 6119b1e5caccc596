package membership

import (
	"math"
	"time"
)

type Decision struct {
	Status      MembershipStatus `json:"status"`
	CanExtend   bool             `json:"can_extend"`
	CanPurchase bool             `json:"can_purchase"`
}

// DeriveStatus resolves the membership status from the stored dates.
// Branch order matters: stale trial dates can coexist with an active
// paid period, so the paid checks win.
func DeriveStatus(now time.Time, isPaidMember bool, subscriptionEnd, trialStart, trialEnd *time.Time) Decision {
	if isPaidMember && subscriptionEnd != nil && subscriptionEnd.After(now) {
		return Decision{Status: ACTIVE_PAID, CanExtend: true, CanPurchase: false}
	}

	if !isPaidMember && trialStart != nil && trialEnd != nil &&
		!now.Before(*trialStart) && !now.After(*trialEnd) {
		return Decision{Status: ACTIVE_TRIAL, CanExtend: false, CanPurchase: true}
	}

	if isPaidMember && subscriptionEnd != nil {
		return Decision{Status: EXPIRED_PAID, CanExtend: true, CanPurchase: true}
	}

	if !isPaidMember && trialEnd != nil && !trialEnd.After(now) {
		return Decision{Status: EXPIRED_TRIAL, CanExtend: false, CanPurchase: true}
	}

	return Decision{Status: NO_SUBSCRIPTION, CanExtend: false, CanPurchase: true}
}

// HasAccess reports whether the status admits creating tests.
func (d Decision) HasAccess() bool {
	return d.Status == ACTIVE_PAID || d.Status == ACTIVE_TRIAL
}

// RemainingTrialDays returns the trial days left, rounded up. It keeps
// returning 0 for up to one day past expiry and nil beyond that. UI
// messaging only; access decisions come from DeriveStatus.
func RemainingTrialDays(now time.Time, trialEnd *time.Time) *int {
	if trialEnd == nil {
		return nil
	}

	if trialEnd.After(now) {
		days := int(math.Ceil(trialEnd.Sub(now).Hours() / 24))
		return &days
	}

	if now.Sub(*trialEnd) <= 24*time.Hour {
		zero := 0
		return &zero
	}
	return nil
}
