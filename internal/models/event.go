package models

import "time"

const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
	EventDayDeleted           = "day.deleted"
)

// Event is published on the events channel after every successful mutation.
type Event struct {
	Type          string    `json:"type"`
	Date          string    `json:"date"`
	ReservationID int       `json:"reservation_id,omitempty"`
	At            time.Time `json:"at"`
}
