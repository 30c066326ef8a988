package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tida-sports/AcademyBotBack/internal/models"
)

const (
	// Academies take bookings between 06:00 and midnight local time.
	OpeningHour = 6
	ClosingHour = 24

	SlotDuration = time.Hour
	SlotsPerDay  = ClosingHour - OpeningHour

	dateLayout    = "2006-01-02"
	displayLayout = "03:04 PM"
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

type bookingLister interface {
	ListForDate(ctx context.Context, academyName string, date string) ([]models.Booking, error)
}

// SlotService computes the free one-hour slots of an academy for a calendar
// date by subtracting its bookings from the operating window. It never reads
// the wall clock; "already elapsed today" filtering is the caller's job via
// DropElapsed.
type SlotService struct {
	bookings bookingLister
}

func NewSlotService(bookings bookingLister) *SlotService {
	return &SlotService{bookings: bookings}
}

// AvailableSlots returns the unbooked hourly slots for the date ("2006-01-02"),
// ascending by start time. A malformed date is a caller contract breach and
// returns ErrInvalidDate.
func (s *SlotService) AvailableSlots(
	ctx context.Context,
	academyName string,
	date string,
) ([]models.FreeSlot, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	bookings, err := s.bookings.ListForDate(ctx, academyName, date)
	if err != nil {
		return nil, err
	}

	free := make([]models.FreeSlot, 0, SlotsPerDay)
	for hour := OpeningHour; hour < ClosingHour; hour++ {
		slotStart := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
		slotEnd := slotStart.Add(SlotDuration)

		if overlapsAny(bookings, slotStart, slotEnd) {
			continue
		}

		free = append(free, models.FreeSlot{
			Start:   slotStart,
			Display: slotStart.Format(displayLayout),
		})
	}

	return free, nil
}

// overlapsAny applies the half-open interval test, so it holds for bookings of
// any length, not just the one-hour rows the data currently contains.
func overlapsAny(bookings []models.Booking, start, end time.Time) bool {
	for _, booking := range bookings {
		if start.Before(booking.SlotEnd) && end.After(booking.SlotStart) {
			return true
		}
	}
	return false
}

// DropElapsed filters out slots whose start is not strictly after now.
func DropElapsed(slots []models.FreeSlot, now time.Time) []models.FreeSlot {
	remaining := make([]models.FreeSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Start.After(now) {
			remaining = append(remaining, slot)
		}
	}
	return remaining
}
