package test

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestRepository interface {
	FindByIDAndUser(id, userID uuid.UUID) (*Test, error)
	FindAllByUser(userID uuid.UUID) ([]*Test, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

// FindByIDAndUser scopes the lookup to the owner; a foreign test id
// reads the same as a missing one.
func (r *testRepository) FindByIDAndUser(id, userID uuid.UUID) (*Test, error) {
	var t Test
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Questions.Question").
		Preload("Questions.Question.Passage").
		First(&t, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *testRepository) FindAllByUser(userID uuid.UUID) ([]*Test, error) {
	var tests []*Test
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tests).Error; err != nil {
		return nil, err
	}
	return tests, nil
}
