package response

import (
	"time"

	"warranty-portal/internal/data/entity"
)

type WarrantyResponse struct {
	ID            string                `json:"id"`
	UserID        string                `json:"userId"`
	ProductType   string                `json:"productType"`
	CustomerName  string                `json:"customerName"`
	CustomerPhone string                `json:"customerPhone"`
	VehicleMake   string                `json:"vehicleMake"`
	VehicleModel  string                `json:"vehicleModel"`
	VehicleNumber string                `json:"vehicleNumber"`
	PurchaseDate  string                `json:"purchaseDate"`
	DurationYears int                   `json:"durationYears"`
	InstallerName *string               `json:"installerName,omitempty"`
	ProductDetail map[string]any        `json:"productDetail,omitempty"`
	FileRef       *string               `json:"fileRef,omitempty"`
	Status        entity.WarrantyStatus `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

type WarrantyListResponse struct {
	Warranties []WarrantyResponse `json:"warranties"`
	Page       int                `json:"page"`
	PerPage    int                `json:"perPage"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"totalPages"`
}

func WarrantyToResponse(w *entity.WarrantyRegistration) WarrantyResponse {
	return WarrantyResponse{
		ID:            w.ID.String(),
		UserID:        w.UserID.String(),
		ProductType:   w.ProductType,
		CustomerName:  w.CustomerName,
		CustomerPhone: w.CustomerPhone,
		VehicleMake:   w.VehicleMake,
		VehicleModel:  w.VehicleModel,
		VehicleNumber: w.VehicleNumber,
		PurchaseDate:  w.PurchaseDate.Format("2006-01-02"),
		DurationYears: w.DurationYears,
		InstallerName: w.InstallerName,
		ProductDetail: w.ProductDetail,
		FileRef:       w.FileRef,
		Status:        w.Status,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}
