package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/clinicdesk/booking-api/internal/models"
	"github.com/clinicdesk/booking-api/internal/repository"
)

var ErrNotADoctor = errors.New("assigned user does not have the doctor role")

type SlotService interface {
	ListAvailable(ctx context.Context, from time.Time) ([]models.Slot, error)
	CreateSlot(ctx context.Context, requester models.Requester, start time.Time, doctorID *uint) (*models.Slot, error)
	CreateSlots(ctx context.Context, requester models.Requester, starts []time.Time, doctorID *uint) ([]models.Slot, error)
}

type slotService struct {
	slotRepo repository.SlotRepository
	userRepo repository.UserRepository
}

func NewSlotService(slotRepo repository.SlotRepository, userRepo repository.UserRepository) SlotService {
	return &slotService{slotRepo: slotRepo, userRepo: userRepo}
}

func (s *slotService) ListAvailable(ctx context.Context, from time.Time) ([]models.Slot, error) {
	return s.slotRepo.FindUpcoming(ctx, from)
}

func (s *slotService) CreateSlot(ctx context.Context, requester models.Requester, start time.Time, doctorID *uint) (*models.Slot, error) {
	if err := s.checkManage(ctx, requester, doctorID); err != nil {
		return nil, err
	}

	slot := &models.Slot{Start: start, DoctorID: doctorID}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *slotService) CreateSlots(ctx context.Context, requester models.Requester, starts []time.Time, doctorID *uint) ([]models.Slot, error) {
	if err := s.checkManage(ctx, requester, doctorID); err != nil {
		return nil, err
	}

	slots := make([]models.Slot, len(starts))
	for i, start := range starts {
		slots[i] = models.Slot{Start: start, DoctorID: doctorID}
	}
	if err := s.slotRepo.CreateBatch(ctx, slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// checkManage gates slot management to doctors and administrators, and
// validates that any assigned doctor actually holds the doctor role.
func (s *slotService) checkManage(ctx context.Context, requester models.Requester, doctorID *uint) error {
	if !requester.IsDoctor() && !requester.IsAdministrator() {
		return ErrNotAllowed
	}
	if doctorID == nil {
		return nil
	}

	doctor, err := s.userRepo.FindByID(ctx, *doctorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotADoctor
		}
		return err
	}
	if !doctor.Roles.Has(models.RoleDoctor) {
		return ErrNotADoctor
	}
	return nil
}
