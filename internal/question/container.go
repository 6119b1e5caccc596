package question

import "gorm.io/gorm"

type QuestionContainer struct {
	Repo    QuestionRepository
	Handler *Handler
}

func NewQuestionContainer(db *gorm.DB) *QuestionContainer {
	repo := NewRepository(db)
	handler := NewHandler(repo)

	return &QuestionContainer{
		Repo:    repo,
		Handler: handler,
	}
}
