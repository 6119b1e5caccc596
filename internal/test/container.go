package test

import (
	"github.com/saulo-duarte/medprep-api/internal/membership"
	"github.com/saulo-duarte/medprep-api/internal/question"
	"gorm.io/gorm"
)

type TestContainer struct {
	Service TestService
	Handler *Handler
}

func NewTestContainer(db *gorm.DB, questionRepo question.QuestionRepository, membershipService membership.Service) *TestContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, questionRepo, membershipService, NewAssembler(nil))
	handler := NewHandler(service)

	return &TestContainer{
		Service: service,
		Handler: handler,
	}
}
