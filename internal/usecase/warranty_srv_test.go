package usecase

import (
	"context"
	"testing"

	"warranty-portal/internal/data/entity"
	"warranty-portal/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func submitRequest() *request.SubmitWarrantyRequest {
	return &request.SubmitWarrantyRequest{
		ProductType:   "PPF Film",
		CustomerName:  "Asha Kumar",
		CustomerPhone: "9876543210",
		VehicleMake:   "Tata",
		VehicleModel:  "Nexon",
		VehicleNumber: "KA01AB1234",
		PurchaseDate:  "2026-08-01",
		DurationYears: 5,
		ProductDetail: map[string]any{"roll": "R-2291", "finish": "gloss"},
	}
}

func updateRequest() *request.UpdateWarrantyRequest {
	return &request.UpdateWarrantyRequest{
		ProductType:   "PPF Film",
		CustomerName:  "Asha Kumar",
		CustomerPhone: "9876543210",
		VehicleMake:   "Tata",
		VehicleModel:  "Nexon",
		VehicleNumber: "KA01AB1234",
		PurchaseDate:  "2026-08-01",
		DurationYears: 5,
	}
}

func warrantyTestService(env *testEnv) WarrantyService {
	return NewWarrantyService(env.repo, zap.NewNop())
}

func TestWarrantySubmit(t *testing.T) {
	env := newTestEnv()
	srv := warrantyTestService(env)
	owner := uuid.New()

	resp, err := srv.Submit(context.Background(), owner, submitRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.WarrantyPending, resp.Status)
	assert.Equal(t, "9876543210", resp.CustomerPhone)
	assert.Equal(t, "R-2291", resp.ProductDetail["roll"])

	stored, err := env.repo.Warranty.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, owner, stored.UserID)
	assert.Equal(t, entity.WarrantyPending, stored.Status)
}

func TestWarrantySubmitRejectsBadDate(t *testing.T) {
	env := newTestEnv()
	srv := warrantyTestService(env)

	req := submitRequest()
	req.PurchaseDate = "01-08-2026"

	_, err := srv.Submit(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purchaseDate")
}

func TestWarrantyGetHidesOtherOwners(t *testing.T) {
	env := newTestEnv()
	srv := warrantyTestService(env)
	owner := uuid.New()
	stranger := uuid.New()

	resp, err := srv.Submit(context.Background(), owner, submitRequest())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// Someone else's record reads as not found, not forbidden
	_, err = srv.Get(context.Background(), stranger, string(entity.RoleCustomer), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warranty not found")

	// The owner and an admin both see it
	got, err := srv.Get(context.Background(), owner, string(entity.RoleCustomer), id)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	got, err = srv.Get(context.Background(), stranger, string(entity.RoleAdmin), id)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
}

func TestWarrantyListScopedByRole(t *testing.T) {
	env := newTestEnv()
	srv := warrantyTestService(env)
	alice := uuid.New()
	bob := uuid.New()

	_, err := srv.Submit(context.Background(), alice, submitRequest())
	require.NoError(t, err)
	_, err = srv.Submit(context.Background(), alice, submitRequest())
	require.NoError(t, err)
	_, err = srv.Submit(context.Background(), bob, submitRequest())
	require.NoError(t, err)

	list, err := srv.List(context.Background(), alice, string(entity.RoleCustomer), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	assert.Len(t, list.Warranties, 2)

	list, err = srv.List(context.Background(), uuid.New(), string(entity.RoleAdmin), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Warranties, 3)
}

func TestWarrantyUpdateOwnerWhilePending(t *testing.T) {
	env := newTestEnv()
	srv := warrantyTestService(env)
	owner := uuid.New()

	resp, err := srv.Submit(context.Background(), owner, submitRequest())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	req := updateRequest()
	req.VehicleModel = "Harrier"

	got, err := srv.Update(context.Background(), owner, string(entity.RoleCustomer), id, req)
	require.NoError(t, err)
	assert.Equal(t, "Harrier", got.VehicleModel)
}

func TestWarrantyUpdateLockedAfterApproval(t *testing.T) {
	env := newTestEnv()
	srv := warrantyTestService(env)
	owner := uuid.New()
	admin := uuid.New()

	resp, err := srv.Submit(context.Background(), owner, submitRequest())
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// An owner cannot set the status
	req := updateRequest()
	req.Status = string(entity.WarrantyApproved)
	_, err = srv.Update(context.Background(), owner, string(entity.RoleCustomer), id, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only admins")

	// An admin approves it
	got, err := srv.Update(context.Background(), admin, string(entity.RoleAdmin), id, req)
	require.NoError(t, err)
	assert.Equal(t, entity.WarrantyApproved, got.Status)

	// The owner can no longer edit
	_, err = srv.Update(context.Background(), owner, string(entity.RoleCustomer), id, updateRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer editable")

	// The admin still can
	_, err = srv.Update(context.Background(), admin, string(entity.RoleAdmin), id, updateRequest())
	require.NoError(t, err)
}
