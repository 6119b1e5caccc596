package membership

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/medprep-api/internal/config"
	"github.com/saulo-duarte/medprep-api/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidPlan  = errors.New("invalid plan")
	ErrInvalidEvent = errors.New("invalid billing event")
)

type Service interface {
	Status(ctx context.Context, userID uuid.UUID) (*StatusResponse, error)
	CheckAccess(ctx context.Context, userID uuid.UUID) (Decision, error)
	Purchase(ctx context.Context, userID uuid.UUID, plan, credential string) error
	ApplyEvent(ctx context.Context, evt BillingEventDTO) error
}

type service struct {
	db       *gorm.DB
	userRepo user.UserRepository
	gateway  Gateway
}

func NewService(db *gorm.DB, userRepo user.UserRepository, gateway Gateway) Service {
	return &service{db: db, userRepo: userRepo, gateway: gateway}
}

func (s *service) Status(ctx context.Context, userID uuid.UUID) (*StatusResponse, error) {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now().UTC()
	decision := DeriveStatus(now, u.IsPaidMember, u.SubscriptionEndDate, u.TrialStartDate, u.TrialEndDate)

	return &StatusResponse{
		Status:                decision.Status,
		CanExtend:             decision.CanExtend,
		CanPurchase:           decision.CanPurchase,
		RemainingTrialDays:    RemainingTrialDays(now, u.TrialEndDate),
		TrialStartDate:        u.TrialStartDate,
		TrialEndDate:          u.TrialEndDate,
		SubscriptionType:      u.SubscriptionType,
		SubscriptionStartDate: u.SubscriptionStartDate,
		SubscriptionEndDate:   u.SubscriptionEndDate,
	}, nil
}

func (s *service) CheckAccess(ctx context.Context, userID uuid.UUID) (Decision, error) {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return Decision{}, err
	}
	if u == nil {
		return Decision{}, ErrUserNotFound
	}

	return DeriveStatus(time.Now().UTC(), u.IsPaidMember, u.SubscriptionEndDate, u.TrialStartDate, u.TrialEndDate), nil
}

func (s *service) Purchase(ctx context.Context, userID uuid.UUID, plan, credential string) error {
	log := config.WithContext(ctx)

	p := Plan(plan)
	if !p.IsValid() {
		return ErrInvalidPlan
	}

	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	evtType := PurchaseSucceeded
	if u.IsPaidMember && u.SubscriptionEndDate != nil {
		evtType = RenewalSucceeded
	}

	result, err := s.gateway.Charge(ctx, u.ID.String(), p, credential)
	if err != nil {
		log.WithError(err).Warn("Cobrança recusada")
		return err
	}

	return s.ApplyEvent(ctx, BillingEventDTO{
		EventID: result.EventID,
		UserID:  u.ID,
		Type:    evtType,
		Plan:    &p,
	})
}

// ApplyEvent applies one payment event at most once. The idempotency
// record and the entitlement mutation commit in the same transaction,
// so a duplicate delivery can never double-extend a subscription.
func (s *service) ApplyEvent(ctx context.Context, evt BillingEventDTO) error {
	log := config.WithContext(ctx)

	if evt.EventID == "" || !evt.Type.IsValid() {
		return ErrInvalidEvent
	}
	if (evt.Type == PurchaseSucceeded || evt.Type == RenewalSucceeded) &&
		(evt.Plan == nil || !evt.Plan.IsValid()) {
		return ErrInvalidEvent
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing BillingEvent
		err := tx.First(&existing, "event_id = ?", evt.EventID).Error
		if err == nil {
			log.Infof("Evento de cobrança %s já aplicado, ignorando entrega duplicada", evt.EventID)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var u user.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, "id = ?", evt.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		applyEvent(&u, evt, time.Now().UTC())

		if err := tx.Save(&u).Error; err != nil {
			return err
		}

		record := BillingEvent{
			ID:      uuid.New(),
			EventID: evt.EventID,
			UserID:  evt.UserID,
			Type:    evt.Type,
			Plan:    evt.Plan,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		log.Infof("Evento de cobrança %s (%s) aplicado", evt.EventID, evt.Type)
		return nil
	})
}

// applyEvent mutates the user's entitlement fields for one event.
func applyEvent(u *user.User, evt BillingEventDTO, now time.Time) {
	switch evt.Type {
	case PurchaseSucceeded, RenewalSucceeded:
		// Renewing before expiry extends from the current end date, not
		// from now, so an early renewal loses no time.
		base := now
		if u.SubscriptionEndDate != nil && u.SubscriptionEndDate.After(now) {
			base = *u.SubscriptionEndDate
		}
		end := evt.Plan.AddTo(base)

		if u.SubscriptionEndDate == nil || !u.SubscriptionEndDate.After(now) {
			u.SubscriptionStartDate = &now
		}

		planStr := string(*evt.Plan)
		u.IsPaidMember = true
		u.SubscriptionType = &planStr
		u.SubscriptionEndDate = &end
		u.TrialStartDate = nil
		u.TrialEndDate = nil

	case SubscriptionCancelled:
		if u.SubscriptionEndDate != nil {
			lapsed := *u.SubscriptionEndDate
			u.LastSubscriptionEndDate = &lapsed
		} else {
			u.LastSubscriptionEndDate = &now
		}

		u.IsPaidMember = false
		u.SubscriptionType = nil
		u.SubscriptionStartDate = nil
		u.SubscriptionEndDate = nil

		// A fresh trial only for accounts that never had one, otherwise
		// subscribe/cancel cycles would mint unlimited trials.
		if !u.HadTrial {
			trialEnd := now.AddDate(0, 0, user.TrialDays)
			u.HadTrial = true
			u.TrialStartDate = &now
			u.TrialEndDate = &trialEnd
		}
	}
}
