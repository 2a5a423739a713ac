package wire

import (
	"warranty-portal/internal/adaptor"
	"warranty-portal/pkg/middleware"
	"warranty-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWarranty(
	r chi.Router,
	warrantyHandler *adaptor.WarrantyHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(config.JWT.Secret, log)

	r.With(auth).Post("/api/warranty/submit", warrantyHandler.Submit)
	r.With(auth).Get("/api/warranty", warrantyHandler.List)
	r.With(auth).Get("/api/warranty/{uid}", warrantyHandler.Get)
	r.With(auth).Put("/api/warranty/{uid}", warrantyHandler.Update)
}
