package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"fleetlink/internal/models"
	"fleetlink/internal/ride"
)

// CreateBookingInput is the validated payload for a booking request.
// Pincodes and the start time are checked at the HTTP boundary.
type CreateBookingInput struct {
	VehicleID    uint
	CustomerID   string
	FromPincode  string
	ToPincode    string
	StartTime    time.Time
	CustomerInfo models.CustomerInfo
	CargoDetails models.CargoDetails
	Notes        string
}

// BookingFilter narrows List results. Zero values mean "no filter".
type BookingFilter struct {
	CustomerID string
	VehicleID  uint
	Status     models.BookingStatus
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

// Pagination describes the page of results List returned.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// BookingService owns the booking lifecycle: transactional creation with
// conflict checking, status transitions and cancellation.
type BookingService struct {
	db *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db}
}

// Create books the vehicle for the estimated window, re-validating everything
// a prior search may have seen inside one serializable transaction: vehicle
// existence and activity, calendar conflicts and cargo capacity. Two racing
// requests for overlapping windows cannot both commit; the loser surfaces a
// ConflictError or, when the store aborts it, a RetryableError. Retrying is
// the caller's decision.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	var booking *models.Booking

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, in.VehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}
		if !vehicle.IsActive {
			return ErrVehicleInactive
		}

		hours := ride.EstimateDuration(in.FromPincode, in.ToPincode)
		endTime := in.StartTime.Add(time.Duration(hours) * time.Hour)

		conflicts, err := findActiveOverlaps(ctx, tx, vehicle.ID, in.StartTime, endTime)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{Conflicts: conflicts}
		}

		if in.CargoDetails.Weight > 0 && in.CargoDetails.Weight > vehicle.CapacityKg {
			return &CapacityError{CargoWeightKg: in.CargoDetails.Weight, CapacityKg: vehicle.CapacityKg}
		}

		b := models.Booking{
			VehicleID:                  vehicle.ID,
			CustomerID:                 in.CustomerID,
			FromPincode:                in.FromPincode,
			ToPincode:                  in.ToPincode,
			StartTime:                  in.StartTime,
			EndTime:                    endTime,
			EstimatedRideDurationHours: hours,
			BookingStatus:              models.BookingStatusConfirmed,
			TotalCost:                  ride.EstimateCost(hours, in.FromPincode, in.ToPincode),
			CustomerInfo:               in.CustomerInfo,
			CargoDetails:               in.CargoDetails,
			Notes:                      in.Notes,
		}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}

		b.Vehicle = &vehicle
		booking = &b
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if txErr != nil {
		if isSerializationFailure(txErr) {
			return nil, &RetryableError{Err: txErr}
		}
		return nil, txErr
	}
	return booking, nil
}

// GetByID loads a booking with its vehicle populated.
func (s *BookingService) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Preload("Vehicle").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// List returns bookings matching the filter, newest first, with pagination
// metadata.
func (s *BookingService) List(ctx context.Context, f BookingFilter) ([]models.Booking, *Pagination, error) {
	q := s.db.WithContext(ctx).Model(&models.Booking{})

	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.VehicleID != 0 {
		q = q.Where("vehicle_id = ?", f.VehicleID)
	}
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, nil, ErrInvalidStatus
		}
		q = q.Where("booking_status = ?", f.Status)
	}
	if f.StartDate != nil && f.EndDate != nil {
		q = q.Where("start_time >= ? AND start_time <= ?", *f.StartDate, *f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 10
	}

	var bookings []models.Booking
	err := q.Preload("Vehicle").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&bookings).Error
	if err != nil {
		return nil, nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return bookings, &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// UpdateStatus moves a booking through the state machine, stamping actual
// pickup/delivery times on the way.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := ApplyTransition(&booking, status, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel soft-deletes a booking by marking it cancelled. Completed and
// in-progress bookings cannot be cancelled; cancelling twice is a no-op.
func (s *BookingService) Cancel(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	switch booking.BookingStatus {
	case models.BookingStatusCompleted:
		return nil, ErrCannotCancelCompleted
	case models.BookingStatusInProgress:
		return nil, ErrCannotCancelInProgress
	}

	booking.BookingStatus = models.BookingStatusCancelled
	if err := s.db.WithContext(ctx).Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}
