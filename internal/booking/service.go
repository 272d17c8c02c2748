/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package booking persists accepted search results. Confirming a booking
// also materializes its slots into busy_intervals, so the next search sees
// the booked time as unavailable without any special casing.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/roundtable/internal/events"
	"github.com/friendsincode/roundtable/internal/models"
	"github.com/friendsincode/roundtable/internal/scheduling"
	"github.com/friendsincode/roundtable/internal/telemetry"
)

var (
	// ErrBookingNotFound indicates the booking id does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyCancelled indicates a repeated cancel of the same booking.
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)

// Invalidator drops cached busy intervals after they change. Optional;
// satisfied by calendar.CachedProvider.
type Invalidator interface {
	Invalidate(ctx context.Context, participantIDs ...string)
}

// Service persists bookings and keeps busy intervals in sync with them.
type Service struct {
	db     *gorm.DB
	bus    scheduling.Publisher
	cache  Invalidator
	logger zerolog.Logger
}

// NewService creates a booking service. bus and cache may be nil.
func NewService(db *gorm.DB, bus scheduling.Publisher, cache Invalidator, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		bus:    bus,
		cache:  cache,
		logger: logger.With().Str("component", "booking").Logger(),
	}
}

// Book persists one single-day combination as a confirmed booking.
func (s *Service) Book(ctx context.Context, c models.Combination) (*models.Booking, error) {
	booking := &models.Booking{
		ID:             uuid.NewString(),
		Kind:           models.BookingSingleDay,
		Status:         models.BookingConfirmed,
		RoundCount:     1,
		ParticipantIDs: c.ParticipantIDs(),
	}
	for _, slot := range c.Slots {
		booking.Slots = append(booking.Slots, bookingSlot(booking.ID, 0, slot))
	}
	return s.persist(ctx, booking)
}

// BookPlan persists one multi-day plan as a confirmed booking, one slot
// per placed session across all rounds.
func (s *Service) BookPlan(ctx context.Context, plan models.MultiDayPlan) (*models.Booking, error) {
	booking := &models.Booking{
		ID:             uuid.NewString(),
		Kind:           models.BookingMultiDay,
		Status:         models.BookingConfirmed,
		RoundCount:     plan.RoundCount,
		ParticipantIDs: append([]string(nil), plan.ParticipantIDs...),
	}
	for _, rp := range plan.RoundPlans {
		for _, slot := range rp.Combination.Slots {
			booking.Slots = append(booking.Slots, bookingSlot(booking.ID, rp.Round.Index, slot))
		}
	}
	return s.persist(ctx, booking)
}

// Cancel marks a booking cancelled and removes its materialized busy
// intervals so the time becomes schedulable again.
func (s *Service) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Slots").First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
			}
			return fmt.Errorf("load booking: %w", err)
		}
		if booking.Status == models.BookingCancelled {
			return fmt.Errorf("%w: %s", ErrAlreadyCancelled, bookingID)
		}

		now := time.Now().UTC()
		booking.Status = models.BookingCancelled
		booking.CancelledAt = &now
		if err := tx.Model(&models.Booking{}).Where("id = ?", bookingID).
			Updates(map[string]any{"status": models.BookingCancelled, "cancelled_at": now}).Error; err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		if err := tx.Where("label = ?", busyLabel(bookingID)).
			Delete(&models.BusyInterval{}).Error; err != nil {
			return fmt.Errorf("remove booking busy intervals: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, booking.ParticipantIDs)
	telemetry.BookingsTotal.WithLabelValues("cancelled").Inc()
	s.logger.Info().Str("booking_id", booking.ID).Msg("booking cancelled")
	s.publish(events.EventBookingCancelled, &booking)
	return &booking, nil
}

// Get loads one booking with its slots.
func (s *Service) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Preload("Slots").First(&booking, "id = ?", bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrBookingNotFound, bookingID)
	}
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return &booking, nil
}

// persist writes the booking, its slots, and one busy interval per
// participant per slot in a single transaction.
func (s *Service) persist(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		for _, slot := range booking.Slots {
			for _, a := range slot.Participants {
				busy := models.BusyInterval{
					ID:            uuid.NewString(),
					ParticipantID: a.ParticipantID,
					StartsAt:      slot.StartsAt,
					EndsAt:        slot.EndsAt,
					Label:         busyLabel(booking.ID),
				}
				if err := tx.Create(&busy).Error; err != nil {
					return fmt.Errorf("materialize busy interval: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, booking.ParticipantIDs)
	telemetry.BookingsTotal.WithLabelValues("created").Inc()
	s.logger.Info().
		Str("booking_id", booking.ID).
		Str("kind", string(booking.Kind)).
		Int("slots", len(booking.Slots)).
		Msg("booking created")
	s.publish(events.EventBookingCreated, booking)
	return booking, nil
}

func (s *Service) publish(eventType events.EventType, booking *models.Booking) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventType, events.Payload{
		"booking_id":   booking.ID,
		"kind":         string(booking.Kind),
		"round_count":  booking.RoundCount,
		"participants": booking.ParticipantIDs,
	})
}

func (s *Service) invalidate(ctx context.Context, participantIDs []string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, participantIDs...)
	}
}

func bookingSlot(bookingID string, roundIndex int, slot models.PlacedSlot) models.BookingSlot {
	return models.BookingSlot{
		ID:           uuid.NewString(),
		BookingID:    bookingID,
		SessionID:    slot.SessionID,
		Title:        slot.Title,
		RoundIndex:   roundIndex,
		StartsAt:     slot.StartsAt,
		EndsAt:       slot.EndsAt,
		Participants: append([]models.ParticipantAssignment(nil), slot.Participants...),
	}
}

// busyLabel ties a materialized busy interval back to its booking so a
// cancel can delete exactly the rows it created.
func busyLabel(bookingID string) string {
	return "booking:" + bookingID
}
