package adaptor

import (
	"net/http"
	"strings"

	"warranty-portal/internal/usecase"
	"warranty-portal/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Vendor   *VendorHandler
	Warranty *WarrantyHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, service.Profile, log),
		Vendor:   NewVendorHandler(service.Vendor, log),
		Warranty: NewWarrantyHandler(service.Warranty, log),
	}
}

// handleServiceError maps service error messages onto HTTP statuses.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "register first"):
		log.Warn(operation+" failed - unknown account", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "already registered"),
		strings.Contains(errMsg, "already verified"):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "registered as"),
		strings.Contains(errMsg, "waiting for"),
		strings.Contains(errMsg, "pending verification"),
		strings.Contains(errMsg, "no longer editable"),
		strings.Contains(errMsg, "only admins"):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid phone"),
		strings.Contains(errMsg, "invalid or expired"):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
