package adaptor

import (
	"encoding/json"
	"net/http"

	"warranty-portal/internal/dto/request"
	"warranty-portal/internal/usecase"
	"warranty-portal/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth    usecase.AuthService
	profile usecase.ProfileService
	log     *zap.Logger
}

func NewAuthHandler(auth usecase.AuthService, profile usecase.ProfileService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		profile: profile,
		log:     log,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration started. Check your email for the OTP.", resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "OTP sent. Check your email.", resp)
}

// VerifyOTP handles POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.auth.VerifyOTP(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "verify OTP")
		return
	}

	message := "Verification successful"
	if resp.Token == "" {
		message = "Verification successful. Waiting for approval."
	}

	utils.ResponseSuccess(w, message, resp)
}

// ResendOTP handles POST /api/auth/resend-otp
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.ResendOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.auth.ResendOTP(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "resend OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP resent. Check your email.", nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.profile.Me(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "load profile")
		return
	}

	utils.ResponseSuccess(w, "Profile loaded", user)
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.profile.Update(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", user)
}
