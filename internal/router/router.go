package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/medprep-api/internal/auth"
	"github.com/saulo-duarte/medprep-api/internal/membership"
	"github.com/saulo-duarte/medprep-api/internal/middlewares"
	"github.com/saulo-duarte/medprep-api/internal/question"
	"github.com/saulo-duarte/medprep-api/internal/test"
	"github.com/saulo-duarte/medprep-api/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	MembershipHandler *membership.Handler
	QuestionHandler   *question.Handler
	TestHandler       *test.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/google", cfg.UserHandler.GoogleLogin)
		r.Post("/logout", auth.NewHandler().Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Get("/membership-status", cfg.MembershipHandler.MembershipStatus)
		})
	})

	// Payment processor webhook; authenticated by event signature at the
	// API gateway, not by a user session.
	r.Post("/membership/events", cfg.MembershipHandler.Webhook)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/questions", question.Routes(cfg.QuestionHandler))
	})

	r.Mount("/tests", test.Routes(cfg.TestHandler))
	r.Mount("/membership", membership.Routes(cfg.MembershipHandler))

	return r
}
