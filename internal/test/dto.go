package test

import "time"

type CreateTestDTO struct {
	Subjects      []string `json:"subjects,omitempty"`
	Units         []string `json:"units,omitempty"`
	QuestionCount int      `json:"question_count"`
}

type PauseDTO struct {
	RemainingSeconds int `json:"remaining_seconds"`
}

type AnswerDTO struct {
	UserAnswer string `json:"user_answer"`
}

// ShortfallResponse is the 422 body when the bank cannot fill the
// requested count.
type ShortfallResponse struct {
	AvailableQuestions int                `json:"available_questions"`
	PassageGroups      []PassageGroupInfo `json:"passage_groups"`
}

// TestResponse overlays the live remaining time on the stored test, so
// the SPA timer resumes from the server's clock, not the checkpoint.
type TestResponse struct {
	*Test
	RemainingSeconds int `json:"remaining_seconds"`
}

func NewTestResponse(t *Test, now time.Time) *TestResponse {
	return &TestResponse{
		Test:             t,
		RemainingSeconds: effectiveRemaining(t, now),
	}
}
