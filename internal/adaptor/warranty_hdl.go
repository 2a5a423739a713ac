package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"warranty-portal/internal/dto/request"
	"warranty-portal/internal/usecase"
	"warranty-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20 // 10 MB

type WarrantyHandler struct {
	service usecase.WarrantyService
	log     *zap.Logger
}

func NewWarrantyHandler(service usecase.WarrantyService, log *zap.Logger) *WarrantyHandler {
	return &WarrantyHandler{
		service: service,
		log:     log,
	}
}

// Submit handles POST /api/warranty/submit. Accepts plain JSON, or
// multipart with a "data" JSON field plus an optional "file" attachment
// whose name becomes the stored file reference.
func (h *WarrantyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SubmitWarrantyRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			utils.ResponseBadRequest(w, "Invalid multipart body", nil)
			return
		}

		if err := json.Unmarshal([]byte(r.FormValue("data")), &req); err != nil {
			utils.ResponseBadRequest(w, "Invalid data field", nil)
			return
		}

		// Attachment storage is external; only the reference is kept
		if _, header, err := r.FormFile("file"); err == nil {
			fileRef := header.Filename
			req.FileRef = &fileRef
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	resp, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "submit warranty")
		return
	}

	utils.ResponseCreated(w, "Warranty submitted", resp)
}

// List handles GET /api/warranty
func (h *WarrantyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	perPage := utils.ParseInt(r.URL.Query().Get("per_page"), 10)

	resp, err := h.service.List(r.Context(), userID, role, page, perPage)
	if err != nil {
		handleServiceError(h.log, w, err, "list warranties")
		return
	}

	utils.ResponseSuccess(w, "Warranties loaded", resp)
}

// Get handles GET /api/warranty/{uid}
func (h *WarrantyHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	warrantyID, err := utils.ParseUUID(chi.URLParam(r, "uid"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid warranty id", nil)
		return
	}

	resp, err := h.service.Get(r.Context(), userID, role, warrantyID)
	if err != nil {
		handleServiceError(h.log, w, err, "load warranty")
		return
	}

	utils.ResponseSuccess(w, "Warranty loaded", resp)
}

// Update handles PUT /api/warranty/{uid}
func (h *WarrantyHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	warrantyID, err := utils.ParseUUID(chi.URLParam(r, "uid"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid warranty id", nil)
		return
	}

	var req request.UpdateWarrantyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Update(r.Context(), userID, role, warrantyID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update warranty")
		return
	}

	utils.ResponseSuccess(w, "Warranty updated", resp)
}
