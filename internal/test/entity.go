package test

import (
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/medprep-api/internal/question"
)

type Test struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Code   string     `gorm:"type:text;not null" json:"code"`
	Status TestStatus `gorm:"type:text;not null" json:"status"`

	// DurationSeconds is fixed at creation. RemainingSeconds is the
	// checkpoint written at start and pause; it only means something
	// relative to the most recent StartedAt/PausedAt pair.
	DurationSeconds  int        `gorm:"not null" json:"duration_seconds"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	PausedAt         *time.Time `json:"paused_at,omitempty"`
	RemainingSeconds *int       `json:"remaining_seconds,omitempty"`

	Score       *int       `json:"score,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []TestQuestion `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

// TestQuestion binds one bank question into one test at a fixed
// position. Creation order is presentation order; rows are never
// reordered and only the answer is mutable.
type TestQuestion struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TestID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"test_id"`
	Test       *Test             `gorm:"foreignKey:TestID" json:"-"`
	QuestionID uuid.UUID         `gorm:"type:uuid;not null" json:"question_id"`
	Question   question.Question `gorm:"foreignKey:QuestionID" json:"question"`
	UserAnswer *string           `gorm:"type:text" json:"user_answer,omitempty"`
	Position   int               `gorm:"not null" json:"position"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
}
