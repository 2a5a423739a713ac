package response

import (
	"time"

	"warranty-portal/internal/data/entity"
)

// RegisterResponse is returned by register and login: the pending/profile id
// the OTP was tied to.
type RegisterResponse struct {
	UserID      string `json:"userId"`
	RequiresOTP bool   `json:"requiresOtp"`
}

// UserResponse is the composed public user record.
type UserResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Role        entity.Role `json:"role"`
	IsValidated bool        `json:"isValidated"`
}

// AuthResponse is returned by verify-otp. Token is empty for vendors that
// are still waiting for approval.
type AuthResponse struct {
	Token     string        `json:"token,omitempty"`
	ExpiresAt *time.Time    `json:"expiresAt,omitempty"`
	User      *UserResponse `json:"user,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// PendingVendorResponse is one row of the admin approval queue.
type PendingVendorResponse struct {
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	StoreName    string    `json:"storeName"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// ProfileToUserResponse composes the public record from profile, role and
// vendor verification state.
func ProfileToUserResponse(profile *entity.Profile, role entity.Role, isValidated bool) *UserResponse {
	return &UserResponse{
		ID:          profile.ID.String(),
		Name:        profile.Name,
		Email:       profile.Email,
		Phone:       profile.Phone,
		Role:        role,
		IsValidated: isValidated,
	}
}
