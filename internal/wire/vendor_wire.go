package wire

import (
	"warranty-portal/internal/adaptor"
	"warranty-portal/pkg/middleware"
	"warranty-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVendor(
	r chi.Router,
	vendorHandler *adaptor.VendorHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(config.JWT.Secret, log)
	admin := middleware.Admin(log)

	r.With(auth, admin).Get("/api/admin/vendors/pending", vendorHandler.ListPending)
	r.With(auth, admin).Post("/api/admin/vendors/{id}/approve", vendorHandler.Approve)
}
