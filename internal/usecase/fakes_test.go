package usecase

import (
	"context"
	"sync"
	"time"

	"warranty-portal/internal/data/entity"
	"warranty-portal/internal/data/repository"
	"warranty-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes backing the service tests.

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]entity.Profile)}
}

func (f *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.profiles {
		if existing.Email == p.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.profiles[p.ID] = *p
	return nil
}

func (f *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeProfileRepo) FindByEmail(_ context.Context, email string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Email == email {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.profiles {
		if existing.Email == p.Email && id != p.ID {
			return repository.ErrDuplicateEmail
		}
	}
	f.profiles[p.ID] = *p
	return nil
}

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles map[uuid.UUID]entity.UserRole
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[uuid.UUID]entity.UserRole)}
}

func (f *fakeRoleRepo) Create(_ context.Context, r *entity.UserRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[r.UserID] = *r
	return nil
}

func (f *fakeRoleRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.UserRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.roles[userID]; ok {
		cp := r
		return &cp, nil
	}
	return nil, nil
}

type fakePendingRepo struct {
	mu      sync.Mutex
	pending map[uuid.UUID]entity.PendingRegistration
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{pending: make(map[uuid.UUID]entity.PendingRegistration)}
}

func (f *fakePendingRepo) Create(_ context.Context, p *entity.PendingRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending[p.ID] = *p
	return nil
}

func (f *fakePendingRepo) FindValidByID(_ context.Context, id uuid.UUID) (*entity.PendingRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.pending[id]; ok && p.ExpiresAt.After(time.Now()) {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePendingRepo) DeleteByEmail(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, p := range f.pending {
		if p.Email == email {
			delete(f.pending, id)
		}
	}
	return nil
}

func (f *fakePendingRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pending, id)
	return nil
}

func (f *fakePendingRepo) DeleteExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var purged int64
	for id, p := range f.pending {
		if !p.ExpiresAt.After(time.Now()) {
			delete(f.pending, id)
			purged++
		}
	}
	return purged, nil
}

func (f *fakePendingRepo) byEmail(email string) *entity.PendingRegistration {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.pending {
		if p.Email == email {
			cp := p
			return &cp
		}
	}
	return nil
}

type fakeOTPRepo struct {
	mu   sync.Mutex
	otps map[uuid.UUID]entity.OTPCode
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{otps: make(map[uuid.UUID]entity.OTPCode)}
}

func (f *fakeOTPRepo) Create(_ context.Context, o *entity.OTPCode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otps[o.ID] = *o
	return nil
}

func (f *fakeOTPRepo) FindActiveByOwner(_ context.Context, ownerID uuid.UUID) (*entity.OTPCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var newest *entity.OTPCode
	for _, o := range f.otps {
		if o.OwnerID != ownerID || o.IsUsed || !o.ExpiresAt.After(time.Now()) {
			continue
		}
		cp := o
		if newest == nil || cp.CreatedAt.After(newest.CreatedAt) {
			newest = &cp
		}
	}
	return newest, nil
}

func (f *fakeOTPRepo) MarkAsUsed(_ context.Context, otpID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o := f.otps[otpID]
	o.IsUsed = true
	f.otps[otpID] = o
	return nil
}

func (f *fakeOTPRepo) InvalidateForOwner(_ context.Context, ownerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, o := range f.otps {
		if o.OwnerID == ownerID && !o.IsUsed {
			o.IsUsed = true
			f.otps[id] = o
		}
	}
	return nil
}

func (f *fakeOTPRepo) DeleteStale(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var purged int64
	for id, o := range f.otps {
		if o.IsUsed || o.ExpiresAt.Before(time.Now().Add(-24*time.Hour)) {
			delete(f.otps, id)
			purged++
		}
	}
	return purged, nil
}

type fakeVendorDetailsRepo struct {
	mu      sync.Mutex
	details map[uuid.UUID]entity.VendorDetails
}

func newFakeVendorDetailsRepo() *fakeVendorDetailsRepo {
	return &fakeVendorDetailsRepo{details: make(map[uuid.UUID]entity.VendorDetails)}
}

func (f *fakeVendorDetailsRepo) Create(_ context.Context, d *entity.VendorDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details[d.UserID] = *d
	return nil
}

func (f *fakeVendorDetailsRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.VendorDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.details[userID]; ok {
		cp := d
		return &cp, nil
	}
	return nil, nil
}

type fakeVerificationRepo struct {
	mu            sync.Mutex
	verifications map[uuid.UUID]entity.VendorVerification
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{verifications: make(map[uuid.UUID]entity.VendorVerification)}
}

func (f *fakeVerificationRepo) Create(_ context.Context, v *entity.VendorVerification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifications[v.UserID] = *v
	return nil
}

func (f *fakeVerificationRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.VendorVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.verifications[userID]; ok {
		cp := v
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeVerificationRepo) Approve(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.verifications[userID]
	now := time.Now()
	v.IsVerified = true
	v.VerifiedAt = &now
	f.verifications[userID] = v
	return nil
}

func (f *fakeVerificationRepo) ListUnverified(_ context.Context) ([]*entity.VendorVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.VendorVerification
	for _, v := range f.verifications {
		if !v.IsVerified {
			cp := v
			result = append(result, &cp)
		}
	}
	return result, nil
}

type fakeManpowerRepo struct {
	mu      sync.Mutex
	records []entity.Manpower
}

func newFakeManpowerRepo() *fakeManpowerRepo {
	return &fakeManpowerRepo{}
}

func (f *fakeManpowerRepo) Create(_ context.Context, m *entity.Manpower) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *m)
	return nil
}

func (f *fakeManpowerRepo) FindByVendorID(_ context.Context, vendorID uuid.UUID) ([]*entity.Manpower, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Manpower
	for i := range f.records {
		if f.records[i].VendorID == vendorID {
			cp := f.records[i]
			result = append(result, &cp)
		}
	}
	return result, nil
}

type fakeWarrantyRepo struct {
	mu         sync.Mutex
	warranties map[uuid.UUID]entity.WarrantyRegistration
}

func newFakeWarrantyRepo() *fakeWarrantyRepo {
	return &fakeWarrantyRepo{warranties: make(map[uuid.UUID]entity.WarrantyRegistration)}
}

func (f *fakeWarrantyRepo) Create(_ context.Context, w *entity.WarrantyRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.warranties[w.ID] = *w
	return nil
}

func (f *fakeWarrantyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.WarrantyRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.warranties[id]; ok {
		cp := w
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeWarrantyRepo) FindByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.WarrantyRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.WarrantyRegistration
	for _, w := range f.warranties {
		if w.UserID == userID {
			cp := w
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeWarrantyRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, w := range f.warranties {
		if w.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeWarrantyRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.WarrantyRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.WarrantyRegistration
	for _, w := range f.warranties {
		cp := w
		result = append(result, &cp)
	}
	return result, nil
}

func (f *fakeWarrantyRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.warranties)), nil
}

func (f *fakeWarrantyRepo) Update(_ context.Context, w *entity.WarrantyRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.warranties[w.ID] = *w
	return nil
}

// fakeMailer records sends so tests can read back the plaintext OTP.
type fakeMailer struct {
	mu       sync.Mutex
	otpCodes map[string]string // email -> last code
	sent     []string          // kinds, in order
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{otpCodes: make(map[string]string)}
}

func (f *fakeMailer) SendOTP(_ context.Context, _, toEmail, code string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otpCodes[toEmail] = code
	f.sent = append(f.sent, "otp")
	return nil
}

func (f *fakeMailer) SendVendorApprovalRequest(_ context.Context, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, "approval_request")
	return nil
}

func (f *fakeMailer) SendVendorWelcome(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, "welcome")
	return nil
}

func (f *fakeMailer) SendVendorApproved(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, "approved")
	return nil
}

func (f *fakeMailer) lastOTP(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.otpCodes[email]
}

func (f *fakeMailer) otpCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, kind := range f.sent {
		if kind == "otp" {
			n++
		}
	}
	return n
}

// testEnv bundles fakes plus the service under test.
type testEnv struct {
	repo     *repository.Repository
	profiles *fakeProfileRepo
	roles    *fakeRoleRepo
	pending  *fakePendingRepo
	otps     *fakeOTPRepo
	mail     *fakeMailer
	config   *utils.Config
}

func newTestEnv() *testEnv {
	profiles := newFakeProfileRepo()
	roles := newFakeRoleRepo()
	pending := newFakePendingRepo()
	otps := newFakeOTPRepo()

	repo := &repository.Repository{
		Profile:       profiles,
		Role:          roles,
		Pending:       pending,
		OTP:           otps,
		VendorDetails: newFakeVendorDetailsRepo(),
		Verification:  newFakeVerificationRepo(),
		Manpower:      newFakeManpowerRepo(),
		Warranty:      newFakeWarrantyRepo(),
	}

	return &testEnv{
		repo:     repo,
		profiles: profiles,
		roles:    roles,
		pending:  pending,
		otps:     otps,
		mail:     newFakeMailer(),
		config: &utils.Config{
			JWT:     utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
			OTP:     utils.OTPConfig{ExpiryMinutes: 10, Length: 6},
			Pending: utils.PendingConfig{ExpiryMinutes: 30},
		},
	}
}

func (e *testEnv) authService() AuthService {
	return NewAuthService(e.repo, e.config, e.mail, zap.NewNop())
}
