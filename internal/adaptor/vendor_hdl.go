package adaptor

import (
	"net/http"

	"warranty-portal/internal/usecase"
	"warranty-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VendorHandler struct {
	service usecase.VendorService
	log     *zap.Logger
}

func NewVendorHandler(service usecase.VendorService, log *zap.Logger) *VendorHandler {
	return &VendorHandler{
		service: service,
		log:     log,
	}
}

// ListPending handles GET /api/admin/vendors/pending
func (h *VendorHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.service.ListPending(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list pending vendors")
		return
	}

	utils.ResponseSuccess(w, "Pending vendors loaded", vendors)
}

// Approve handles POST /api/admin/vendors/{id}/approve
func (h *VendorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	vendorID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid vendor id", nil)
		return
	}

	if err := h.service.Approve(r.Context(), vendorID); err != nil {
		handleServiceError(h.log, w, err, "approve vendor")
		return
	}

	utils.ResponseSuccess(w, "Vendor approved", nil)
}
