package models

import "time"

// Academy is one logical venue, deduplicated from the denormalized
// academy_master rows by (name, latitude, longitude).
type Academy struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AcademyWithDistance struct {
	Academy
	DistanceKM float64 `json:"distance_km"`
}

// Booking is a reserved interval for an academy. Intervals are half-open
// [SlotStart, SlotEnd); the data happens to hold one-hour rows but nothing
// here relies on that.
type Booking struct {
	AcademyName string    `json:"academy_name"`
	SlotStart   time.Time `json:"slot_start"`
	SlotEnd     time.Time `json:"slot_end"`
}

// FreeSlot is a bookable one-hour window computed on demand, never stored.
type FreeSlot struct {
	Start   time.Time `json:"start"`
	Display string    `json:"display"`
}
