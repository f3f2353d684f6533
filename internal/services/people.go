package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/harentsoaR/people-api/internal/config"
	"github.com/harentsoaR/people-api/internal/models"
	"github.com/harentsoaR/people-api/internal/store"
	"github.com/harentsoaR/people-api/internal/utils"
)

var (
	ErrMissingParam        = errors.New("missing required parameter")
	ErrInvalidDate         = errors.New("invalid date")
	ErrNoDate              = errors.New("no date included")
	ErrFutureDate          = errors.New("no record for future date")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrConflict            = errors.New("concurrent update")
)

type PeopleOptions struct {
	Location        *time.Location
	FutureEmptyBody bool
	QueueBucket     string
	Now             func() time.Time
}

// PeopleService answers the /people queries and applies its mutations.
type PeopleService struct {
	store  store.DayStore
	events *EventService

	loc             *time.Location
	futureEmptyBody bool
	queueBucket     string
	now             func() time.Time
}

func NewPeopleService(s store.DayStore, events *EventService, opts PeopleOptions) *PeopleService {
	svc := &PeopleService{
		store:           s,
		events:          events,
		loc:             opts.Location,
		futureEmptyBody: opts.FutureEmptyBody,
		queueBucket:     opts.QueueBucket,
		now:             opts.Now,
	}
	if svc.loc == nil {
		svc.loc = time.UTC
	}
	if svc.queueBucket == "" {
		svc.queueBucket = config.QueueByVacTime
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

func (s *PeopleService) parseDate(date string) (time.Time, error) {
	t, err := utils.ParseDate(date, s.loc)
	switch {
	case errors.Is(err, utils.ErrEmptyDate):
		return t, ErrMissingParam
	case err != nil:
		return t, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

func normalize(rec *models.DayRecord) *models.DayRecord {
	if rec.People == nil {
		rec.People = []models.Reservation{}
	}
	return rec
}

// All returns every Day Record in creation order.
func (s *PeopleService) All(ctx context.Context) ([]models.DayRecord, error) {
	days, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []models.DayRecord{}
	}
	for i := range days {
		normalize(&days[i])
	}
	return days, nil
}

// ByDate returns the Day Record for date. A day that was never stored and lies in the
// future yields ErrFutureDate (when enabled); any other absent or empty day yields ErrNoDate.
func (s *PeopleService) ByDate(ctx context.Context, date string) (*models.DayRecord, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Get(ctx, date)
	if errors.Is(err, store.ErrNotFound) {
		if s.futureEmptyBody && utils.IsFuture(day, s.now(), s.loc) {
			return nil, ErrFutureDate
		}
		return nil, ErrNoDate
	}
	if err != nil {
		return nil, err
	}
	if rec.Empty() {
		return nil, ErrNoDate
	}
	return normalize(rec), nil
}

func (s *PeopleService) dayPeople(ctx context.Context, date string) ([]models.Reservation, error) {
	if _, err := s.parseDate(date); err != nil {
		return nil, err
	}
	rec, err := s.store.Get(ctx, date)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.People, nil
}

// CountTotal counts the day's reservations by vaccination state and queue bucket.
// An absent day counts as zero everywhere.
func (s *PeopleService) CountTotal(ctx context.Context, date string) (*models.TotalCount, error) {
	people, err := s.dayPeople(ctx, date)
	if err != nil {
		return nil, err
	}
	out := &models.TotalCount{Queue: make(map[string]int)}
	for _, p := range people {
		out.Count++
		if p.VacTime == 0 {
			out.Waiting++
		} else {
			out.Vaccinated++
		}
		out.Queue[s.bucket(p)]++
	}
	return out, nil
}

func (s *PeopleService) bucket(p models.Reservation) string {
	if s.queueBucket == config.QueueByPriority {
		return p.Priority
	}
	return strconv.Itoa(p.VacTime)
}

// CountWalkin splits the day's reservations into walk-ins and pre-booked ones.
func (s *PeopleService) CountWalkin(ctx context.Context, date string) (*models.WalkinCount, error) {
	people, err := s.dayPeople(ctx, date)
	if err != nil {
		return nil, err
	}
	out := &models.WalkinCount{Date: date}
	for _, p := range people {
		out.Total++
		if p.WalkIn {
			out.TotalWalkin++
		} else {
			out.TotalReserved++
		}
	}
	return out, nil
}

// DeleteByDate removes the whole day. Absent or empty days yield ErrNoDate;
// an empty day is purged all the same.
func (s *PeopleService) DeleteByDate(ctx context.Context, date string) (*models.DayRecord, error) {
	if _, err := s.parseDate(date); err != nil {
		return nil, err
	}
	rec, err := s.store.Delete(ctx, date)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoDate
	}
	if err != nil {
		return nil, err
	}
	if rec.Empty() {
		return nil, ErrNoDate
	}
	s.events.Emit(models.Event{Type: models.EventDayDeleted, Date: date, At: s.now().UTC()})
	return normalize(rec), nil
}

// Cancel removes one reservation; the day stays in place even when it becomes empty.
func (s *PeopleService) Cancel(ctx context.Context, date, reservationID string) (*models.DayRecord, error) {
	if date == "" || reservationID == "" {
		return nil, ErrMissingParam
	}
	id, err := strconv.Atoi(reservationID)
	if err != nil {
		return nil, ErrMissingParam
	}
	if _, err := s.parseDate(date); err != nil {
		return nil, err
	}

	rec, err := s.store.Cancel(ctx, date, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrNoDate
	case errors.Is(err, store.ErrReservationNotFound):
		return nil, ErrReservationNotFound
	case err != nil:
		return nil, err
	}
	s.events.Emit(models.Event{Type: models.EventReservationCancelled, Date: date, ReservationID: id, At: s.now().UTC()})
	return normalize(rec), nil
}

// Register appends r to the day, stamping its registration time.
func (s *PeopleService) Register(ctx context.Context, date string, r models.Reservation) (*models.Reservation, error) {
	if _, err := s.parseDate(date); err != nil {
		return nil, err
	}
	r.RegisterTimestamp = s.now().UTC().Format(models.TimestampLayout)

	created, err := s.store.Add(ctx, date, r)
	if errors.Is(err, store.ErrConflict) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	s.events.Emit(models.Event{Type: models.EventReservationCreated, Date: date, ReservationID: created.ReservationID, At: s.now().UTC()})
	return created, nil
}
