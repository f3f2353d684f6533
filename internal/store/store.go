// Package store keeps Day Records, one per DD-MM-YYYY date, and staff users.
package store

import (
	"context"
	"errors"

	"github.com/harentsoaR/people-api/internal/models"
)

var (
	ErrNotFound            = errors.New("day record not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrConflict            = errors.New("concurrent update, retry later")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
)

// DayStore is implemented by MemoryStore and MongoStore.
// Mutations on the same date are serialized; every returned record is a copy.
type DayStore interface {
	All(ctx context.Context) ([]models.DayRecord, error)
	Get(ctx context.Context, date string) (*models.DayRecord, error)
	// Delete removes the whole Day Record and returns it as it was.
	Delete(ctx context.Context, date string) (*models.DayRecord, error)
	// Cancel removes one reservation, bumps __v and returns the updated record.
	Cancel(ctx context.Context, date string, reservationID int) (*models.DayRecord, error)
	// Add appends r with the next free reservation_id, creating the day when needed.
	Add(ctx context.Context, date string, r models.Reservation) (*models.Reservation, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Seeder loads full Day Records, replacing any record with the same date.
type Seeder interface {
	Put(ctx context.Context, rec models.DayRecord) error
}
