package question

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Question holds one bank item. Statement, choices and explanation are
// opaque markup served to the SPA unchanged. A passage row carries the
// shared reading text; its sub-questions point back through PassageID.
type Question struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Subject   *string    `gorm:"type:text;index" json:"subject,omitempty"`
	Unit      *string    `gorm:"type:text;index" json:"unit,omitempty"`
	IsPassage bool       `gorm:"not null;default:false" json:"is_passage"`
	PassageID *uuid.UUID `gorm:"type:uuid;index" json:"passage_id,omitempty"`
	Passage   *Question  `gorm:"foreignKey:PassageID" json:"passage,omitempty"`

	Statement string         `gorm:"type:text;not null" json:"statement"`
	Choices   datatypes.JSON `gorm:"type:jsonb" json:"choices,omitempty"`

	// CorrectChoice is the structured answer key. Legacy imports that
	// flagged the answer inside the choice markup are normalized into
	// this column at seeding time, never parsed at scoring time.
	CorrectChoice string `gorm:"type:text" json:"-"`

	Explanation string    `gorm:"type:text" json:"explanation,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
