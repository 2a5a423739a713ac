package request

type ManpowerInput struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"required"`
}

type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Role        string `json:"role" validate:"required,oneof=customer vendor"`

	// Vendor-only fields, checked in the service when role is vendor
	StoreName string          `json:"storeName,omitempty"`
	Address   string          `json:"address,omitempty"`
	State     string          `json:"state,omitempty"`
	City      string          `json:"city,omitempty"`
	Pincode   string          `json:"pincode,omitempty"`
	Manpower  []ManpowerInput `json:"manpower,omitempty" validate:"omitempty,dive"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=customer vendor admin"`
}

type VerifyOTPRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	OTP    string `json:"otp" validate:"required,numeric"`
}

type ResendOTPRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}
