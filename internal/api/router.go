package api

import (
	"net/http"
	"time"

	"user_hub/internal/api/handler"
	"user_hub/internal/app/service"
	"user_hub/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies any bearer token found in "Authorization: Bearer T" and puts
	// claims in context. Routes that need a valid token add Authenticator.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Public auth routes: register, login, email verification.
	authHandler := handler.NewAuthHandler(authService, userService)
	r.Group(func(public chi.Router) {
		authHandler.RegisterRoutes(public)
	})

	// Administrative user routes (role-gated per operation).
	userHandler := handler.NewUserHandler(userService)
	r.Route("/users", userHandler.RegisterRoutes)

	// Self-service profile route.
	profileHandler := handler.NewProfileHandler(userService)
	profileHandler.RegisterRoutes(r)

	return r
}
