package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/clinicdesk/booking-api/internal/models"
)

// --- Mock SlotRepository ---

type mockSlotRepo struct {
	createFn       func(ctx context.Context, slot *models.Slot) error
	createBatchFn  func(ctx context.Context, slots []models.Slot) error
	findUpcomingFn func(ctx context.Context, from time.Time) ([]models.Slot, error)
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	return m.createFn(ctx, slot)
}
func (m *mockSlotRepo) CreateBatch(ctx context.Context, slots []models.Slot) error {
	return m.createBatchFn(ctx, slots)
}
func (m *mockSlotRepo) FindByID(ctx context.Context, id uint) (*models.Slot, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockSlotRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Slot, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockSlotRepo) FindUpcoming(ctx context.Context, from time.Time) ([]models.Slot, error) {
	return m.findUpcomingFn(ctx, from)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

// --- Tests ---

func TestListAvailable_PassesFrom(t *testing.T) {
	var captured time.Time
	repo := &mockSlotRepo{
		findUpcomingFn: func(ctx context.Context, from time.Time) ([]models.Slot, error) {
			captured = from
			return []models.Slot{{ID: 1}, {ID: 2}}, nil
		},
	}

	svc := NewSlotService(repo, &mockUserRepo{})
	now := time.Now()
	slots, err := svc.ListAvailable(context.Background(), now)

	assert.NoError(t, err)
	assert.Len(t, slots, 2)
	assert.Equal(t, now, captured)
}

func TestCreateSlot_RegularUserForbidden(t *testing.T) {
	svc := NewSlotService(&mockSlotRepo{}, &mockUserRepo{})

	requester := models.Requester{UserID: 7, Authenticated: true}
	_, err := svc.CreateSlot(context.Background(), requester, time.Now().Add(time.Hour), nil)

	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestCreateSlot_AnonymousForbidden(t *testing.T) {
	svc := NewSlotService(&mockSlotRepo{}, &mockUserRepo{})

	_, err := svc.CreateSlot(context.Background(), models.Requester{}, time.Now().Add(time.Hour), nil)

	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestCreateSlot_DoctorAllowed(t *testing.T) {
	repo := &mockSlotRepo{
		createFn: func(ctx context.Context, slot *models.Slot) error {
			slot.ID = 1
			return nil
		},
	}
	svc := NewSlotService(repo, &mockUserRepo{})

	requester := models.Requester{UserID: 7, Authenticated: true, Roles: models.RoleList{models.RoleDoctor}}
	start := time.Now().Add(24 * time.Hour)
	slot, err := svc.CreateSlot(context.Background(), requester, start, nil)

	assert.NoError(t, err)
	assert.Equal(t, uint(1), slot.ID)
	assert.Equal(t, start, slot.Start)
}

func TestCreateSlot_AssignedUserMustBeDoctor(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "bob"}, nil // no doctor role
		},
	}
	svc := NewSlotService(&mockSlotRepo{}, users)

	requester := models.Requester{UserID: 1, Authenticated: true, Roles: models.RoleList{models.RoleAdministrator}}
	doctorID := uint(42)
	_, err := svc.CreateSlot(context.Background(), requester, time.Now().Add(time.Hour), &doctorID)

	assert.ErrorIs(t, err, ErrNotADoctor)
}

func TestCreateSlots_Bulk(t *testing.T) {
	var created []models.Slot
	repo := &mockSlotRepo{
		createBatchFn: func(ctx context.Context, slots []models.Slot) error {
			created = slots
			return nil
		},
	}
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Roles: models.RoleList{models.RoleDoctor}}, nil
		},
	}
	svc := NewSlotService(repo, users)

	requester := models.Requester{UserID: 1, Authenticated: true, Roles: models.RoleList{models.RoleAdministrator}}
	doctorID := uint(42)
	starts := []time.Time{
		time.Now().Add(24 * time.Hour),
		time.Now().Add(25 * time.Hour),
		time.Now().Add(26 * time.Hour),
	}

	slots, err := svc.CreateSlots(context.Background(), requester, starts, &doctorID)

	assert.NoError(t, err)
	assert.Len(t, slots, 3)
	assert.Len(t, created, 3)
	for _, s := range created {
		assert.Equal(t, doctorID, *s.DoctorID)
	}
}
