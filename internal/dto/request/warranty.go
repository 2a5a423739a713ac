package request

type SubmitWarrantyRequest struct {
	ProductType   string         `json:"productType" validate:"required,min=2,max=100"`
	CustomerName  string         `json:"customerName" validate:"required,min=2,max=100"`
	CustomerPhone string         `json:"customerPhone" validate:"required"`
	VehicleMake   string         `json:"vehicleMake" validate:"required"`
	VehicleModel  string         `json:"vehicleModel" validate:"required"`
	VehicleNumber string         `json:"vehicleNumber" validate:"required"`
	PurchaseDate  string         `json:"purchaseDate" validate:"required"`
	DurationYears int            `json:"durationYears" validate:"required,min=1,max=10"`
	InstallerName *string        `json:"installerName,omitempty"`
	ProductDetail map[string]any `json:"productDetail,omitempty"`
	FileRef       *string        `json:"fileRef,omitempty"`
}

type UpdateWarrantyRequest struct {
	ProductType   string         `json:"productType" validate:"required,min=2,max=100"`
	CustomerName  string         `json:"customerName" validate:"required,min=2,max=100"`
	CustomerPhone string         `json:"customerPhone" validate:"required"`
	VehicleMake   string         `json:"vehicleMake" validate:"required"`
	VehicleModel  string         `json:"vehicleModel" validate:"required"`
	VehicleNumber string         `json:"vehicleNumber" validate:"required"`
	PurchaseDate  string         `json:"purchaseDate" validate:"required"`
	DurationYears int            `json:"durationYears" validate:"required,min=1,max=10"`
	InstallerName *string        `json:"installerName,omitempty"`
	ProductDetail map[string]any `json:"productDetail,omitempty"`
	FileRef       *string        `json:"fileRef,omitempty"`

	// Status may only be changed by admins
	Status string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
}
