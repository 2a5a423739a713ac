package usecase

import (
	"context"
	"fmt"
	"time"

	"warranty-portal/internal/data/entity"
	"warranty-portal/internal/data/repository"
	"warranty-portal/internal/dto/request"
	"warranty-portal/internal/dto/response"
	"warranty-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WarrantyService interface {
	Submit(ctx context.Context, userID uuid.UUID, req *request.SubmitWarrantyRequest) (*response.WarrantyResponse, error)
	List(ctx context.Context, userID uuid.UUID, role string, page, perPage int) (*response.WarrantyListResponse, error)
	Get(ctx context.Context, userID uuid.UUID, role string, warrantyID uuid.UUID) (*response.WarrantyResponse, error)
	Update(ctx context.Context, userID uuid.UUID, role string, warrantyID uuid.UUID, req *request.UpdateWarrantyRequest) (*response.WarrantyResponse, error)
}

type warrantyService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWarrantyService(repo *repository.Repository, log *zap.Logger) WarrantyService {
	return &warrantyService{
		repo: repo,
		log:  log,
	}
}

func (s *warrantyService) Submit(ctx context.Context, userID uuid.UUID, req *request.SubmitWarrantyRequest) (*response.WarrantyResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Warranty validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("validation failed: purchaseDate must be YYYY-MM-DD")
	}

	phone, ok := utils.NormalizePhone(req.CustomerPhone)
	if !ok {
		return nil, fmt.Errorf("invalid phone number")
	}

	// 2. Create scoped to the authenticated user
	now := time.Now()
	warranty := &entity.WarrantyRegistration{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        userID,
		ProductType:   req.ProductType,
		CustomerName:  req.CustomerName,
		CustomerPhone: phone,
		VehicleMake:   req.VehicleMake,
		VehicleModel:  req.VehicleModel,
		VehicleNumber: req.VehicleNumber,
		PurchaseDate:  purchaseDate,
		DurationYears: req.DurationYears,
		InstallerName: req.InstallerName,
		ProductDetail: req.ProductDetail,
		FileRef:       req.FileRef,
		Status:        entity.WarrantyPending,
	}

	if err := s.repo.Warranty.Create(ctx, warranty); err != nil {
		s.log.Error("Failed to create warranty", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to submit warranty")
	}

	s.log.Info("Warranty submitted",
		zap.String("warranty_id", warranty.ID.String()),
		zap.String("user_id", userID.String()))

	resp := response.WarrantyToResponse(warranty)
	return &resp, nil
}

// List returns the caller's warranties; admins see everything.
func (s *warrantyService) List(ctx context.Context, userID uuid.UUID, role string, page, perPage int) (*response.WarrantyListResponse, error) {
	offset := utils.CalculateOffset(page, perPage)

	var (
		warranties []*entity.WarrantyRegistration
		total      int64
		err        error
	)

	if role == string(entity.RoleAdmin) {
		warranties, err = s.repo.Warranty.FindAll(ctx, perPage, offset)
		if err == nil {
			total, err = s.repo.Warranty.CountAll(ctx)
		}
	} else {
		warranties, err = s.repo.Warranty.FindByUser(ctx, userID, perPage, offset)
		if err == nil {
			total, err = s.repo.Warranty.CountByUser(ctx, userID)
		}
	}

	if err != nil {
		s.log.Error("Failed to list warranties", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list warranties")
	}

	items := make([]response.WarrantyResponse, 0, len(warranties))
	for _, w := range warranties {
		items = append(items, response.WarrantyToResponse(w))
	}

	return &response.WarrantyListResponse{
		Warranties: items,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: utils.CalculateTotalPages(total, perPage),
	}, nil
}

func (s *warrantyService) Get(ctx context.Context, userID uuid.UUID, role string, warrantyID uuid.UUID) (*response.WarrantyResponse, error) {
	warranty, err := s.loadOwned(ctx, userID, role, warrantyID)
	if err != nil {
		return nil, err
	}

	resp := response.WarrantyToResponse(warranty)
	return &resp, nil
}

func (s *warrantyService) Update(ctx context.Context, userID uuid.UUID, role string, warrantyID uuid.UUID, req *request.UpdateWarrantyRequest) (*response.WarrantyResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Warranty update validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("validation failed: purchaseDate must be YYYY-MM-DD")
	}

	phone, ok := utils.NormalizePhone(req.CustomerPhone)
	if !ok {
		return nil, fmt.Errorf("invalid phone number")
	}

	warranty, err := s.loadOwned(ctx, userID, role, warrantyID)
	if err != nil {
		return nil, err
	}

	isAdmin := role == string(entity.RoleAdmin)

	// 2. Owners may edit only while the record is still pending
	if !isAdmin && warranty.Status != entity.WarrantyPending {
		return nil, fmt.Errorf("warranty is no longer editable")
	}

	// 3. Only admins change status
	if req.Status != "" && !isAdmin {
		return nil, fmt.Errorf("only admins can change warranty status")
	}

	warranty.ProductType = req.ProductType
	warranty.CustomerName = req.CustomerName
	warranty.CustomerPhone = phone
	warranty.VehicleMake = req.VehicleMake
	warranty.VehicleModel = req.VehicleModel
	warranty.VehicleNumber = req.VehicleNumber
	warranty.PurchaseDate = purchaseDate
	warranty.DurationYears = req.DurationYears
	warranty.InstallerName = req.InstallerName
	warranty.ProductDetail = req.ProductDetail
	warranty.FileRef = req.FileRef
	if req.Status != "" {
		warranty.Status = entity.WarrantyStatus(req.Status)
	}
	warranty.UpdatedAt = time.Now()

	if err := s.repo.Warranty.Update(ctx, warranty); err != nil {
		s.log.Error("Failed to update warranty", zap.Error(err), zap.String("warranty_id", warrantyID.String()))
		return nil, fmt.Errorf("failed to update warranty")
	}

	s.log.Info("Warranty updated",
		zap.String("warranty_id", warrantyID.String()),
		zap.String("user_id", userID.String()))

	resp := response.WarrantyToResponse(warranty)
	return &resp, nil
}

// loadOwned fetches a record the caller is allowed to see. Records owned by
// someone else read as not found so ids stay unguessable.
func (s *warrantyService) loadOwned(ctx context.Context, userID uuid.UUID, role string, warrantyID uuid.UUID) (*entity.WarrantyRegistration, error) {
	warranty, err := s.repo.Warranty.FindByID(ctx, warrantyID)
	if err != nil {
		s.log.Error("Failed to find warranty", zap.Error(err), zap.String("warranty_id", warrantyID.String()))
		return nil, fmt.Errorf("failed to load warranty")
	}
	if warranty == nil {
		return nil, fmt.Errorf("warranty not found")
	}

	if warranty.UserID != userID && role != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("warranty not found")
	}

	return warranty, nil
}
