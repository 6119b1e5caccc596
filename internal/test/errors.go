package test

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrTestNotFound         = errors.New("test not found")
	ErrQuestionNotFound     = errors.New("test question not found")
	ErrInvalidState         = errors.New("operation not allowed in current test state")
	ErrEntitlementDenied    = errors.New("membership does not allow creating tests")
	ErrInvalidQuestionCount = errors.New("question count must be positive")
	ErrInvalidRemaining     = errors.New("remaining seconds out of range")
)

type PassageGroupInfo struct {
	PassageID uuid.UUID `json:"passage_id"`
	Size      int       `json:"size"`
}

// InsufficientQuestionsError reports an under-filled assembly. It is a
// recoverable condition: the client can offer the user a smaller test
// built from AvailableQuestions.
type InsufficientQuestionsError struct {
	AvailableQuestions int                `json:"available_questions"`
	PassageGroups      []PassageGroupInfo `json:"passage_groups"`
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("only %d questions available for the requested filters", e.AvailableQuestions)
}
