package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warranty-portal/internal/data/entity"
	"warranty-portal/internal/data/repository"
	"warranty-portal/internal/dto/request"
	"warranty-portal/internal/dto/response"
	"warranty-portal/pkg/mailer"
	"warranty-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.RegisterResponse, error)
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.AuthResponse, error)
	ResendOTP(ctx context.Context, req *request.ResendOTPRequest) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Normalize and check phone
	phone, ok := utils.NormalizePhone(req.PhoneNumber)
	if !ok {
		return nil, fmt.Errorf("invalid phone number")
	}

	// 3. Vendor role requires the store fields
	if entity.Role(req.Role) == entity.RoleVendor {
		if err := validateVendorFields(req); err != nil {
			return nil, err
		}
	}

	// 4. Purge expired pending rows before looking around
	if purged, err := s.repo.Pending.DeleteExpired(ctx); err != nil {
		s.log.Warn("Failed to purge expired pending registrations", zap.Error(err))
	} else if purged > 0 {
		s.log.Info("Purged expired pending registrations", zap.Int64("count", purged))
	}

	// 5. Reject if the email already has a verified profile
	existing, err := s.repo.Profile.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return nil, repository.ErrDuplicateEmail
	}

	// 6. Replace any stale pending row for this email
	if err := s.repo.Pending.DeleteByEmail(ctx, req.Email); err != nil {
		s.log.Error("Failed to clear stale pending registration", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to start registration")
	}

	// 7. Insert the pending row with its TTL
	now := time.Now()
	pending := &entity.PendingRegistration{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Phone:     phone,
		Role:      entity.Role(req.Role),
		ExpiresAt: now.Add(time.Duration(s.config.Pending.ExpiryMinutes) * time.Minute),
	}

	if entity.Role(req.Role) == entity.RoleVendor {
		pending.StoreName = &req.StoreName
		pending.Address = &req.Address
		pending.State = &req.State
		pending.City = &req.City
		pending.Pincode = &req.Pincode
		for _, m := range req.Manpower {
			mp, ok := utils.NormalizePhone(m.Phone)
			if !ok {
				return nil, fmt.Errorf("invalid phone number for installer %s", m.Name)
			}
			pending.Manpower = append(pending.Manpower, entity.ManpowerEntry{Name: m.Name, Phone: mp})
		}
	}

	if err := s.repo.Pending.Create(ctx, pending); err != nil {
		s.log.Error("Failed to create pending registration", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to start registration")
	}

	// 8. Issue and email the OTP tied to the pending row
	if err := s.issueOTP(ctx, pending.ID, pending.Name, pending.Email); err != nil {
		return nil, err
	}

	s.log.Info("Registration started",
		zap.String("pending_id", pending.ID.String()),
		zap.String("email", pending.Email),
		zap.String("role", string(pending.Role)))

	return &response.RegisterResponse{
		UserID:      pending.ID.String(),
		RequiresOTP: true,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.RegisterResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Profile must exist
	profile, err := s.repo.Profile.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find profile", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}
	if profile == nil {
		return nil, fmt.Errorf("no account for this email, register first")
	}

	// 3. Stored role must exist; a profile without one is a data fault
	role, err := s.repo.Role.FindByUserID(ctx, profile.ID)
	if err != nil {
		s.log.Error("Failed to find role", zap.Error(err), zap.String("user_id", profile.ID.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if role == nil {
		s.log.Error("Profile has no role record", zap.String("user_id", profile.ID.String()))
		return nil, fmt.Errorf("account role record is missing")
	}

	// 4. Claimed role must match
	if string(role.Role) != req.Role {
		return nil, fmt.Errorf("role mismatch: this account is registered as %s", role.Role)
	}

	// 5. Vendors must be verified before an OTP is even issued
	if role.Role == entity.RoleVendor {
		verified, err := s.vendorVerified(ctx, profile.ID)
		if err != nil {
			return nil, err
		}
		if !verified {
			return nil, fmt.Errorf("pending verification: waiting for admin approval")
		}
	}

	// 6. Issue and email a fresh OTP against the profile id
	if err := s.issueOTP(ctx, profile.ID, profile.Name, profile.Email); err != nil {
		return nil, err
	}

	s.log.Info("Login OTP issued",
		zap.String("user_id", profile.ID.String()),
		zap.String("email", profile.Email))

	return &response.RegisterResponse{
		UserID:      profile.ID.String(),
		RequiresOTP: true,
	}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify OTP validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ownerID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("validation failed: userId must be a UUID")
	}

	// 2. The submitted code must match the live code for this owner
	otp, err := s.repo.OTP.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error("Failed to look up OTP", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to verify OTP")
	}
	if otp == nil || !utils.CheckOTPHash(req.OTP, otp.CodeHash) {
		return nil, fmt.Errorf("invalid or expired OTP")
	}

	if err := s.repo.OTP.MarkAsUsed(ctx, otp.ID); err != nil {
		s.log.Warn("Failed to mark OTP as used", zap.Error(err), zap.String("otp_id", otp.ID.String()))
		// Continue anyway
	}

	// 3. Pending registration wins over existing profile
	pending, err := s.repo.Pending.FindValidByID(ctx, ownerID)
	if err != nil {
		s.log.Error("Failed to look up pending registration", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to verify OTP")
	}
	if pending != nil {
		return s.promote(ctx, pending)
	}

	// 4. Otherwise this completes a login for an existing profile
	profile, err := s.repo.Profile.FindByID(ctx, ownerID)
	if err != nil {
		s.log.Error("Failed to find profile", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to verify OTP")
	}
	if profile == nil {
		return nil, fmt.Errorf("user not found")
	}

	return s.completeLogin(ctx, profile)
}

func (s *authService) ResendOTP(ctx context.Context, req *request.ResendOTPRequest) error {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Resend OTP validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	ownerID, err := uuid.Parse(req.UserID)
	if err != nil {
		return fmt.Errorf("validation failed: userId must be a UUID")
	}

	// 2. Resolve pending registration first, then profile
	var name, email string

	pending, err := s.repo.Pending.FindValidByID(ctx, ownerID)
	if err != nil {
		s.log.Error("Failed to look up pending registration", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return fmt.Errorf("failed to resend OTP")
	}

	if pending != nil {
		name, email = pending.Name, pending.Email
	} else {
		profile, err := s.repo.Profile.FindByID(ctx, ownerID)
		if err != nil {
			s.log.Error("Failed to find profile", zap.Error(err), zap.String("owner_id", ownerID.String()))
			return fmt.Errorf("failed to resend OTP")
		}
		if profile == nil {
			return fmt.Errorf("user not found")
		}
		name, email = profile.Name, profile.Email
	}

	// 3. issueOTP invalidates any previously unused codes
	if err := s.issueOTP(ctx, ownerID, name, email); err != nil {
		return err
	}

	s.log.Info("OTP resent", zap.String("owner_id", ownerID.String()))
	return nil
}

// ==================== HELPER METHODS ====================

// promote copies a confirmed pending registration into the permanent tables.
func (s *authService) promote(ctx context.Context, pending *entity.PendingRegistration) (*response.AuthResponse, error) {
	now := time.Now()
	profile := &entity.Profile{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:  pending.Name,
		Email: pending.Email,
		Phone: pending.Phone,
	}

	// The unique constraint on profiles.email settles any duplicate race
	if err := s.repo.Profile.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		s.log.Error("Failed to create profile", zap.Error(err), zap.String("email", pending.Email))
		return nil, fmt.Errorf("failed to complete registration")
	}

	role := &entity.UserRole{
		UserID:    profile.ID,
		Role:      pending.Role,
		CreatedAt: now,
	}
	if err := s.repo.Role.Create(ctx, role); err != nil {
		s.log.Error("Failed to create role", zap.Error(err), zap.String("user_id", profile.ID.String()))
		return nil, fmt.Errorf("failed to complete registration")
	}

	if pending.Role == entity.RoleVendor {
		if err := s.createVendorRecords(ctx, profile, pending); err != nil {
			return nil, err
		}

		// Notify the approving party and the vendor (async, best effort)
		go s.notifyVendorRegistered(profile.Name, profile.Email, derefOr(pending.StoreName, ""))

		if err := s.repo.Pending.DeleteByID(ctx, pending.ID); err != nil {
			s.log.Warn("Failed to delete promoted pending row", zap.Error(err), zap.String("pending_id", pending.ID.String()))
		}

		s.log.Info("Vendor promoted, awaiting verification",
			zap.String("user_id", profile.ID.String()),
			zap.String("email", profile.Email))

		return &response.AuthResponse{
			User:    response.ProfileToUserResponse(profile, entity.RoleVendor, false),
			Message: "waiting for approval",
		}, nil
	}

	if err := s.repo.Pending.DeleteByID(ctx, pending.ID); err != nil {
		s.log.Warn("Failed to delete promoted pending row", zap.Error(err), zap.String("pending_id", pending.ID.String()))
	}

	s.log.Info("User promoted",
		zap.String("user_id", profile.ID.String()),
		zap.String("email", profile.Email),
		zap.String("role", string(pending.Role)))

	return s.issueCredential(profile, pending.Role)
}

func (s *authService) createVendorRecords(ctx context.Context, profile *entity.Profile, pending *entity.PendingRegistration) error {
	now := time.Now()

	verification := &entity.VendorVerification{
		UserID:     profile.ID,
		IsVerified: false,
		CreatedAt:  now,
	}
	if err := s.repo.Verification.Create(ctx, verification); err != nil {
		s.log.Error("Failed to create vendor verification", zap.Error(err), zap.String("user_id", profile.ID.String()))
		return fmt.Errorf("failed to complete registration")
	}

	details := &entity.VendorDetails{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    profile.ID,
		StoreName: derefOr(pending.StoreName, ""),
		Address:   derefOr(pending.Address, ""),
		State:     derefOr(pending.State, ""),
		City:      derefOr(pending.City, ""),
		Pincode:   derefOr(pending.Pincode, ""),
	}
	if err := s.repo.VendorDetails.Create(ctx, details); err != nil {
		s.log.Error("Failed to create vendor details", zap.Error(err), zap.String("user_id", profile.ID.String()))
		return fmt.Errorf("failed to complete registration")
	}

	for _, m := range pending.Manpower {
		record := &entity.Manpower{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			VendorID: profile.ID,
			Name:     m.Name,
			Phone:    m.Phone,
		}
		if err := s.repo.Manpower.Create(ctx, record); err != nil {
			s.log.Error("Failed to create manpower record", zap.Error(err), zap.String("user_id", profile.ID.String()))
			return fmt.Errorf("failed to complete registration")
		}
	}

	return nil
}

// completeLogin finishes an existing-profile OTP verification.
func (s *authService) completeLogin(ctx context.Context, profile *entity.Profile) (*response.AuthResponse, error) {
	role, err := s.repo.Role.FindByUserID(ctx, profile.ID)
	if err != nil {
		s.log.Error("Failed to find role", zap.Error(err), zap.String("user_id", profile.ID.String()))
		return nil, fmt.Errorf("failed to verify OTP")
	}
	if role == nil {
		s.log.Error("Profile has no role record", zap.String("user_id", profile.ID.String()))
		return nil, fmt.Errorf("account role record is missing")
	}

	if role.Role == entity.RoleVendor {
		verified, err := s.vendorVerified(ctx, profile.ID)
		if err != nil {
			return nil, err
		}
		if !verified {
			return &response.AuthResponse{
				User:    response.ProfileToUserResponse(profile, entity.RoleVendor, false),
				Message: "waiting for approval",
			}, nil
		}
	}

	s.log.Info("Login completed",
		zap.String("user_id", profile.ID.String()),
		zap.String("role", string(role.Role)))

	return s.issueCredential(profile, role.Role)
}

func (s *authService) vendorVerified(ctx context.Context, userID uuid.UUID) (bool, error) {
	verification, err := s.repo.Verification.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find vendor verification", zap.Error(err), zap.String("user_id", userID.String()))
		return false, fmt.Errorf("failed to check verification")
	}
	if verification == nil {
		s.log.Error("Vendor has no verification record", zap.String("user_id", userID.String()))
		return false, fmt.Errorf("account verification record is missing")
	}
	return verification.IsVerified, nil
}

func (s *authService) issueCredential(profile *entity.Profile, role entity.Role) (*response.AuthResponse, error) {
	token, err := utils.GenerateToken(s.config.JWT.Secret, s.config.JWT.ExpiryHours, profile.ID, profile.Email, string(role))
	if err != nil {
		s.log.Error("Failed to sign credential", zap.Error(err), zap.String("user_id", profile.ID.String()))
		return nil, fmt.Errorf("failed to issue credential")
	}

	expiresAt := time.Now().Add(time.Duration(s.config.JWT.ExpiryHours) * time.Hour)
	return &response.AuthResponse{
		Token:     token,
		ExpiresAt: &expiresAt,
		User:      response.ProfileToUserResponse(profile, role, true),
	}, nil
}

// issueOTP invalidates previous codes, stores a hashed fresh one and emails
// the plaintext. Mail failure degrades to a log line; the code stays valid.
func (s *authService) issueOTP(ctx context.Context, ownerID uuid.UUID, name, email string) error {
	if err := s.repo.OTP.InvalidateForOwner(ctx, ownerID); err != nil {
		s.log.Error("Failed to invalidate previous OTPs", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return fmt.Errorf("failed to generate OTP")
	}

	code := utils.GenerateOTP(s.config.OTP.Length)
	hash, err := utils.HashOTP(code)
	if err != nil {
		s.log.Error("Failed to hash OTP", zap.Error(err))
		return fmt.Errorf("failed to generate OTP")
	}

	expiresAt := time.Now().Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute)
	otp := &entity.OTPCode{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		OwnerID:   ownerID,
		CodeHash:  hash,
		ExpiresAt: expiresAt,
		IsUsed:    false,
	}

	if err := s.repo.OTP.Create(ctx, otp); err != nil {
		s.log.Error("Failed to save OTP", zap.Error(err), zap.String("owner_id", ownerID.String()))
		return fmt.Errorf("failed to generate OTP")
	}

	if err := s.mail.SendOTP(ctx, name, email, code, expiresAt); err != nil {
		s.log.Error("Failed to email OTP", zap.Error(err), zap.String("email", email))
		// Not fatal, the user can ask for a resend
	}

	return nil
}

func (s *authService) notifyVendorRegistered(name, email, storeName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.mail.SendVendorApprovalRequest(ctx, name, email, storeName); err != nil {
		s.log.Error("Failed to notify admin of vendor registration", zap.Error(err), zap.String("email", email))
	}
	if err := s.mail.SendVendorWelcome(ctx, name, email); err != nil {
		s.log.Error("Failed to send vendor welcome email", zap.Error(err), zap.String("email", email))
	}
}

func validateVendorFields(req *request.RegisterRequest) error {
	if strings.TrimSpace(req.StoreName) == "" {
		return fmt.Errorf("validation failed: storeName is required for vendors")
	}
	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("validation failed: address is required for vendors")
	}
	if strings.TrimSpace(req.State) == "" {
		return fmt.Errorf("validation failed: state is required for vendors")
	}
	if strings.TrimSpace(req.City) == "" {
		return fmt.Errorf("validation failed: city is required for vendors")
	}
	if !utils.IsValidPincode(req.Pincode) {
		return fmt.Errorf("validation failed: pincode must be 6 digits")
	}
	return nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
