package test

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/medprep-api/internal/config"
	"github.com/saulo-duarte/medprep-api/internal/membership"
	"github.com/saulo-duarte/medprep-api/internal/question"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SecondsPerQuestion sizes the test clock from the question count.
const SecondsPerQuestion = 90

type TestService interface {
	CreateTest(ctx context.Context, userID uuid.UUID, dto CreateTestDTO) (*Test, error)
	GetTest(ctx context.Context, userID, testID uuid.UUID) (*Test, error)
	ListTests(ctx context.Context, userID uuid.UUID) ([]*Test, error)
	StartTest(ctx context.Context, userID, testID uuid.UUID) (*Test, error)
	PauseTest(ctx context.Context, userID, testID uuid.UUID, remainingSeconds int) (*Test, error)
	CompleteTest(ctx context.Context, userID, testID uuid.UUID) (*Test, error)
	RecordAnswer(ctx context.Context, userID, testQuestionID uuid.UUID, answer string) (*TestQuestion, error)
}

type testService struct {
	db           *gorm.DB
	repo         TestRepository
	questionRepo question.QuestionRepository
	membership   membership.Service
	assembler    *Assembler
}

func NewService(db *gorm.DB, repo TestRepository, questionRepo question.QuestionRepository, membershipService membership.Service, assembler *Assembler) TestService {
	return &testService{
		db:           db,
		repo:         repo,
		questionRepo: questionRepo,
		membership:   membershipService,
		assembler:    assembler,
	}
}

func (s *testService) CreateTest(ctx context.Context, userID uuid.UUID, dto CreateTestDTO) (*Test, error) {
	log := config.WithContext(ctx)
	log.Info("Montando novo teste...")

	if dto.QuestionCount <= 0 {
		return nil, ErrInvalidQuestionCount
	}

	decision, err := s.membership.CheckAccess(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess() {
		log.Warnf("Criação de teste bloqueada: status %s", decision.Status)
		return nil, ErrEntitlementDenied
	}

	filter := question.Filter{Subjects: dto.Subjects, Units: dto.Units}
	standalone, err := s.questionRepo.FindStandalone(filter)
	if err != nil {
		return nil, err
	}
	attached, err := s.questionRepo.FindPassageAttached(filter)
	if err != nil {
		return nil, err
	}

	selected, err := s.assembler.Assemble(standalone, attached, dto.QuestionCount)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	t := &Test{
		ID:              id,
		UserID:          userID,
		Code:            strings.ToUpper(id.String()[:8]),
		Status:          IN_PROGRESS,
		DurationSeconds: len(selected) * SecondsPerQuestion,
	}

	testQuestions := make([]TestQuestion, len(selected))
	for i, q := range selected {
		testQuestions[i] = TestQuestion{
			ID:         uuid.New(),
			TestID:     t.ID,
			QuestionID: q.ID,
			Position:   i,
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&testQuestions).Error
	})
	if err != nil {
		log.WithError(err).Error("Erro ao persistir teste")
		return nil, err
	}

	log.Info("Teste criado com sucesso", "test_id", t.ID.String())
	return s.repo.FindByIDAndUser(t.ID, userID)
}

func (s *testService) GetTest(ctx context.Context, userID, testID uuid.UUID) (*Test, error) {
	t, err := s.repo.FindByIDAndUser(testID, userID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTestNotFound
	}

	// The deadline is authoritative on the server: a run that exhausted
	// its clock completes on read even if the client never called
	// complete.
	if isOverdue(t, time.Now().UTC()) {
		return s.CompleteTest(ctx, userID, testID)
	}
	return t, nil
}

func (s *testService) ListTests(ctx context.Context, userID uuid.UUID) ([]*Test, error) {
	return s.repo.FindAllByUser(userID)
}

func (s *testService) StartTest(ctx context.Context, userID, testID uuid.UUID) (*Test, error) {
	log := config.WithContext(ctx)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		t, err := lockTest(tx, testID, userID)
		if err != nil {
			return err
		}

		if err := startTest(t, time.Now().UTC()); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(t).Error
	})
	if err != nil {
		if !errors.Is(err, ErrTestNotFound) && !errors.Is(err, ErrInvalidState) {
			log.WithError(err).Error("Erro ao iniciar teste")
		}
		return nil, err
	}

	return s.repo.FindByIDAndUser(testID, userID)
}

func (s *testService) PauseTest(ctx context.Context, userID, testID uuid.UUID, remainingSeconds int) (*Test, error) {
	log := config.WithContext(ctx)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		t, err := lockTest(tx, testID, userID)
		if err != nil {
			return err
		}

		if err := pauseTest(t, remainingSeconds, time.Now().UTC()); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(t).Error
	})
	if err != nil {
		if !errors.Is(err, ErrTestNotFound) && !errors.Is(err, ErrInvalidState) && !errors.Is(err, ErrInvalidRemaining) {
			log.WithError(err).Error("Erro ao pausar teste")
		}
		return nil, err
	}

	return s.repo.FindByIDAndUser(testID, userID)
}

func (s *testService) CompleteTest(ctx context.Context, userID, testID uuid.UUID) (*Test, error) {
	log := config.WithContext(ctx)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		t, err := lockTest(tx, testID, userID)
		if err != nil {
			return err
		}

		var questions []TestQuestion
		if err := tx.Preload("Question").
			Where("test_id = ?", t.ID).
			Order("position ASC").
			Find(&questions).Error; err != nil {
			return err
		}
		t.Questions = questions

		// Duplicate complete calls keep the stored result; the score is
		// never recomputed.
		if alreadyDone := completeTest(t, time.Now().UTC()); alreadyDone {
			return nil
		}
		return tx.Omit(clause.Associations).Save(t).Error
	})
	if err != nil {
		if !errors.Is(err, ErrTestNotFound) {
			log.WithError(err).Error("Erro ao finalizar teste")
		}
		return nil, err
	}

	log.Info("Teste finalizado", "test_id", testID.String())
	return s.repo.FindByIDAndUser(testID, userID)
}

func (s *testService) RecordAnswer(ctx context.Context, userID, testQuestionID uuid.UUID, answer string) (*TestQuestion, error) {
	log := config.WithContext(ctx)

	var tq TestQuestion
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Question").First(&tq, "id = ?", testQuestionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}

		// Ownership is checked through the test relation, never trusted
		// from the client. A foreign row reads the same as a missing one.
		t, err := lockTest(tx, tq.TestID, userID)
		if err != nil {
			if errors.Is(err, ErrTestNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		if t.Status == COMPLETED {
			return ErrInvalidState
		}

		tq.UserAnswer = &answer
		return tx.Omit(clause.Associations).Save(&tq).Error
	})
	if err != nil {
		if !errors.Is(err, ErrQuestionNotFound) && !errors.Is(err, ErrInvalidState) {
			log.WithError(err).Error("Erro ao registrar resposta")
		}
		return nil, err
	}

	return &tq, nil
}

func lockTest(tx *gorm.DB, id, userID uuid.UUID) (*Test, error) {
	var t Test
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}
	return &t, nil
}
