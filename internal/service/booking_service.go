package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/clinicdesk/booking-api/internal/events"
	"github.com/clinicdesk/booking-api/internal/models"
	"github.com/clinicdesk/booking-api/internal/repository"
	"github.com/clinicdesk/booking-api/pkg/rabbitmq"
)

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrSlotInPast       = errors.New("cannot book a slot in the past")
	ErrSlotTaken        = errors.New("slot is already booked")
	ErrAlreadyBooked    = errors.New("you already have a confirmed booking for this slot")
	ErrDoctorCannotBook = errors.New("doctors cannot book slots for themselves")
	ErrNotAllowed       = errors.New("not allowed")
)

type BookingService interface {
	CreateBooking(ctx context.Context, slotID uint, requester models.Requester, reason string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uint, requester models.Requester) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID uint, requester models.Requester) (*models.Booking, error)
	UpdateReason(ctx context.Context, bookingID uint, requester models.Requester, reason string) (*models.Booking, error)
	ListMine(ctx context.Context, requester models.Requester) ([]models.Booking, error)
	ListAll(ctx context.Context, requester models.Requester) ([]models.Booking, error)
	ListBySlot(ctx context.Context, slotID uint, requester models.Requester) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	slotRepo    repository.SlotRepository
	userRepo    repository.UserRepository
	publisher   *rabbitmq.Publisher
}

func NewBookingService(bookingRepo repository.BookingRepository, slotRepo repository.SlotRepository, userRepo repository.UserRepository, publisher *rabbitmq.Publisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, slotID uint, requester models.Requester, reason string) (*models.Booking, error) {
	if !requester.Authenticated {
		return nil, ErrNotAllowed
	}
	if requester.IsDoctor() {
		return nil, ErrDoctorCannotBook
	}

	// Fast path: reject an obvious duplicate before taking the row lock. The
	// authoritative check happens again inside the transaction.
	db := s.bookingRepo.GetDB()
	if _, err := s.bookingRepo.FindConfirmedBySlotAndUser(ctx, db, slotID, requester.UserID); err == nil {
		return nil, ErrAlreadyBooked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var result *models.Booking

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the slot row — serializes concurrent booking attempts
		slot, err := s.slotRepo.FindByIDForUpdate(ctx, tx, slotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		// 2. Temporal rule
		if slot.Start.Before(time.Now()) {
			return ErrSlotInPast
		}

		// 3. The slot must not already hold a confirmed booking
		existing, err := s.bookingRepo.FindConfirmedBySlot(ctx, tx, slotID)
		if err == nil {
			if existing.OwnedBy(requester.UserID) {
				return ErrAlreadyBooked
			}
			return ErrSlotTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 4. Insert confirmed booking. The partial unique index backstops
		// the check above, so a duplicate key here is still a lost race.
		booking := &models.Booking{
			SlotID: slotID,
			UserID: &requester.UserID,
			Reason: reason,
			Status: models.StatusConfirmed,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlotTaken
			}
			return err
		}

		booking.Slot = slot
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, result, requester.UserID)
	return result, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID uint, requester models.Requester) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !requester.Authenticated || (!booking.OwnedBy(requester.UserID) && !requester.IsAdministrator()) {
		return nil, ErrNotAllowed
	}

	// Cancelling an already-cancelled booking is a benign no-op
	if booking.Status == models.StatusCancelled {
		return booking, nil
	}

	if err := s.bookingRepo.UpdateStatus(ctx, s.bookingRepo.GetDB(), bookingID, models.StatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = models.StatusCancelled

	s.publishCancelled(booking)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID uint, requester models.Requester) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !requester.Authenticated || (!booking.OwnedBy(requester.UserID) && !requester.IsAdministrator()) {
		return nil, ErrNotAllowed
	}
	return booking, nil
}

func (s *bookingService) UpdateReason(ctx context.Context, bookingID uint, requester models.Requester, reason string) (*models.Booking, error) {
	booking, err := s.GetBooking(ctx, bookingID, requester)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdateReason(ctx, bookingID, reason); err != nil {
		return nil, err
	}
	booking.Reason = reason
	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, requester models.Requester) ([]models.Booking, error) {
	if !requester.Authenticated {
		return nil, ErrNotAllowed
	}
	return s.bookingRepo.FindByUser(ctx, requester.UserID)
}

func (s *bookingService) ListAll(ctx context.Context, requester models.Requester) ([]models.Booking, error) {
	if !requester.IsAdministrator() {
		return nil, ErrNotAllowed
	}
	return s.bookingRepo.FindAll(ctx)
}

// ListBySlot applies the visibility rules for per-slot listing:
// administrators see every confirmed booking, authenticated users see only
// their own, anonymous requesters see an empty set.
func (s *bookingService) ListBySlot(ctx context.Context, slotID uint, requester models.Requester) ([]models.Booking, error) {
	switch {
	case requester.IsAdministrator():
		return s.bookingRepo.FindConfirmedForSlot(ctx, slotID, nil)
	case requester.Authenticated:
		return s.bookingRepo.FindConfirmedForSlot(ctx, slotID, &requester.UserID)
	default:
		return []models.Booking{}, nil
	}
}

// publishCreated emits booking.created, best-effort. Lookups for recipient
// addresses happen after the transaction committed and never fail the call.
func (s *bookingService) publishCreated(ctx context.Context, booking *models.Booking, userID uint) {
	if s.publisher == nil {
		return
	}

	ev := events.BookingCreated{
		BookingID: booking.ID,
		SlotStart: booking.Slot.Start,
		Reason:    booking.Reason,
	}
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		ev.UserName = user.DisplayName()
		ev.UserEmail = user.Email
	}
	if booking.Slot.DoctorID != nil {
		if doctor, err := s.userRepo.FindByID(ctx, *booking.Slot.DoctorID); err == nil {
			ev.DoctorName = doctor.DisplayName()
			ev.DoctorEmail = doctor.Email
		}
	}

	_ = events.PublishBookingCreated(s.publisher, ev)
}

func (s *bookingService) publishCancelled(booking *models.Booking) {
	if s.publisher == nil {
		return
	}

	ev := events.BookingCancelled{BookingID: booking.ID}
	if booking.Slot != nil {
		ev.SlotStart = booking.Slot.Start
	}
	if booking.User != nil {
		ev.UserName = booking.User.DisplayName()
		ev.UserEmail = booking.User.Email
	}

	_ = events.PublishBookingCancelled(s.publisher, ev)
}
