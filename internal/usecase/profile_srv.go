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
	"warranty-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService interface {
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
}

type profileService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProfileService(repo *repository.Repository, log *zap.Logger) ProfileService {
	return &profileService{
		repo: repo,
		log:  log,
	}
}

// Me composes the public user record from profile, role and, for vendors,
// verification state.
func (s *profileService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	profile, role, err := s.loadProfileAndRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.compose(ctx, profile, role)
}

func (s *profileService) Update(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	// 1. All three fields are required
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Profile update validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	phone, ok := utils.NormalizePhone(req.PhoneNumber)
	if !ok {
		return nil, fmt.Errorf("invalid phone number")
	}

	profile, role, err := s.loadProfileAndRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. An email change must not collide with another profile
	if req.Email != profile.Email {
		other, err := s.repo.Profile.FindByEmail(ctx, req.Email)
		if err != nil {
			s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
			return nil, fmt.Errorf("failed to update profile")
		}
		if other != nil && other.ID != profile.ID {
			return nil, repository.ErrDuplicateEmail
		}
	}

	// 3. Persist
	profile.Name = strings.TrimSpace(req.Name)
	profile.Email = req.Email
	profile.Phone = phone
	profile.UpdatedAt = time.Now()

	if err := s.repo.Profile.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		s.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to update profile")
	}

	s.log.Info("Profile updated", zap.String("user_id", userID.String()))

	return s.compose(ctx, profile, role)
}

func (s *profileService) loadProfileAndRole(ctx context.Context, userID uuid.UUID) (*entity.Profile, entity.Role, error) {
	profile, err := s.repo.Profile.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, "", fmt.Errorf("failed to load profile")
	}
	if profile == nil {
		return nil, "", fmt.Errorf("user not found")
	}

	role, err := s.repo.Role.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find role", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, "", fmt.Errorf("failed to load profile")
	}
	if role == nil {
		s.log.Error("Profile has no role record", zap.String("user_id", userID.String()))
		return nil, "", fmt.Errorf("account role record is missing")
	}

	return profile, role.Role, nil
}

func (s *profileService) compose(ctx context.Context, profile *entity.Profile, role entity.Role) (*response.UserResponse, error) {
	isValidated := true
	if role == entity.RoleVendor {
		verification, err := s.repo.Verification.FindByUserID(ctx, profile.ID)
		if err != nil {
			s.log.Error("Failed to find verification", zap.Error(err), zap.String("user_id", profile.ID.String()))
			return nil, fmt.Errorf("failed to load profile")
		}
		isValidated = verification != nil && verification.IsVerified
	}

	return response.ProfileToUserResponse(profile, role, isValidated), nil
}
