package membership

import (
	"github.com/saulo-duarte/medprep-api/internal/user"
	"gorm.io/gorm"
)

type Container struct {
	Service Service
	Handler *Handler
}

func NewContainer(db *gorm.DB, userRepo user.UserRepository, gateway Gateway) *Container {
	service := NewService(db, userRepo, gateway)
	handler := NewHandler(service)

	return &Container{
		Service: service,
		Handler: handler,
	}
}
