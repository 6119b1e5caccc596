package container

import (
	"context"
	"log"
	"os"

	"github.com/saulo-duarte/medprep-api/internal/auth"
	"github.com/saulo-duarte/medprep-api/internal/config"
	"github.com/saulo-duarte/medprep-api/internal/membership"
	"github.com/saulo-duarte/medprep-api/internal/question"
	"github.com/saulo-duarte/medprep-api/internal/test"
	"github.com/saulo-duarte/medprep-api/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	MembershipContainer *membership.Container
	QuestionContainer   *question.QuestionContainer
	TestContainer       *test.TestContainer
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&question.Question{},
		&test.Test{},
		&test.TestQuestion{},
		&membership.BillingEvent{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	userRepo := user.NewRepository(config.DB)
	membershipContainer := membership.NewContainer(config.DB, userRepo, membership.NewHTTPGateway())
	userContainer := user.NewUserContainer(config.DB, membershipContainer.Service)
	questionContainer := question.NewQuestionContainer(config.DB)
	testContainer := test.NewTestContainer(config.DB, questionContainer.Repo, membershipContainer.Service)

	return &Container{
		UserContainer:       userContainer,
		MembershipContainer: membershipContainer,
		QuestionContainer:   questionContainer,
		TestContainer:       testContainer,
	}
}
