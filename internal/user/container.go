package user

import "gorm.io/gorm"

type UserContainer struct {
	Repo    UserRepository
	Service Service
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, purchase PurchaseService) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, purchase)
	handler := NewHandler(service, NewGoogleClient())

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
