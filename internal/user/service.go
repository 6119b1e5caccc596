package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/medprep-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// TrialDays is the free trial window assigned at registration.
const TrialDays = 7

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// PurchaseService charges a plan for a user and activates the paid
// membership. Implemented by the membership package.
type PurchaseService interface {
	Purchase(ctx context.Context, userID uuid.UUID, plan, credential string) error
}

type Service interface {
	Register(ctx context.Context, dto RegisterDTO) (*User, error)
	Login(ctx context.Context, dto LoginDTO) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindOrCreateFromGoogle(ctx context.Context, googleID, email, name string, refreshToken *string) (*User, error)
}

type service struct {
	repo     UserRepository
	purchase PurchaseService
}

func NewService(repo UserRepository, purchase PurchaseService) Service {
	return &service{repo: repo, purchase: purchase}
}

func (s *service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	log := config.WithContext(ctx)
	log.Info("Registrando novo usuário...")

	existing, err := s.repo.FindByEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         "student",
	}

	if dto.Plan == nil {
		now := time.Now().UTC()
		trialEnd := now.AddDate(0, 0, TrialDays)
		u.HadTrial = true
		u.TrialStartDate = &now
		u.TrialEndDate = &trialEnd
	}

	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Erro ao criar usuário")
		return nil, err
	}

	if dto.Plan != nil {
		credential := ""
		if dto.PaymentCredential != nil {
			credential = *dto.PaymentCredential
		}
		if err := s.purchase.Purchase(ctx, u.ID, *dto.Plan, credential); err != nil {
			// A registration that opted into a paid plan must not leave a
			// half-created account behind when the charge fails.
			if delErr := s.repo.Delete(u.ID); delErr != nil {
				log.WithError(delErr).Error("Erro ao desfazer registro após falha de pagamento")
			}
			return nil, err
		}
		refreshed, err := s.repo.FindByID(u.ID)
		if err != nil {
			return nil, err
		}
		u = refreshed
	}

	log.Info("Usuário registrado com sucesso", "user_id", u.ID.String())
	return u, nil
}

func (s *service) Login(ctx context.Context, dto LoginDTO) (*User, error) {
	u, err := s.repo.FindByEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *service) FindOrCreateFromGoogle(ctx context.Context, googleID, email, name string, refreshToken *string) (*User, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByGoogleID(googleID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u, err = s.repo.FindByEmail(email)
		if err != nil {
			return nil, err
		}
	}

	if u == nil {
		now := time.Now().UTC()
		trialEnd := now.AddDate(0, 0, TrialDays)
		u = &User{
			ID:             uuid.New(),
			Name:           name,
			Email:          email,
			Role:           "student",
			GoogleID:       &googleID,
			HadTrial:       true,
			TrialStartDate: &now,
			TrialEndDate:   &trialEnd,
		}
		if refreshToken != nil {
			encrypted, err := config.Encrypt(*refreshToken)
			if err != nil {
				return nil, err
			}
			u.RefreshToken = &encrypted
		}
		if err := s.repo.Create(u); err != nil {
			log.WithError(err).Error("Erro ao criar usuário via Google")
			return nil, err
		}
		log.Info("Usuário criado via Google", "user_id", u.ID.String())
		return u, nil
	}

	u.GoogleID = &googleID
	if refreshToken != nil {
		encrypted, err := config.Encrypt(*refreshToken)
		if err != nil {
			return nil, err
		}
		u.RefreshToken = &encrypted
	}
	if err := s.repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}
