package repository

import (
	"context"

	"github.com/tida-sports/AcademyBotBack/internal/models"
)

// BookingRepository reads booking intervals from academy_master. Bookings
// reference academies by name because the source table carries no stable
// foreign key.
type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// ListForDate returns the bookings for one academy whose start falls on the
// given calendar date ("2006-01-02"). Rows holding only academy metadata have
// NULL slot columns and are excluded.
func (r *BookingRepository) ListForDate(
	ctx context.Context,
	academyName string,
	date string,
) ([]models.Booking, error) {
	query := `
		SELECT academy_name, slot_start, slot_end
		FROM academy_master
		WHERE academy_name = $1
		  AND slot_start IS NOT NULL
		  AND slot_start::date = $2::date
		ORDER BY slot_start ASC
	`

	rows, err := r.db.Query(ctx, query, academyName, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(
			&booking.AcademyName,
			&booking.SlotStart,
			&booking.SlotEnd,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
