package wire

import (
	"warranty-portal/internal/adaptor"
	"warranty-portal/pkg/middleware"
	"warranty-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public routes
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/verify-otp", authHandler.VerifyOTP)
	r.Post("/api/auth/resend-otp", authHandler.ResendOTP)

	// Protected routes
	auth := middleware.Auth(config.JWT.Secret, log)
	r.With(auth).Get("/api/auth/me", authHandler.Me)
	r.With(auth).Put("/api/auth/profile", authHandler.UpdateProfile)
}
