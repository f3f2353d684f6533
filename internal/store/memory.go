package store

import (
	"context"
	"strings"
	"sync"

	"github.com/harentsoaR/people-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process DayStore and UserStore.
type MemoryStore struct {
	mu    sync.RWMutex
	days  map[string]*models.DayRecord
	order []string // dates in creation order, for All

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	users map[string]*models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		days:  make(map[string]*models.DayRecord),
		locks: make(map[string]*sync.Mutex),
		users: make(map[string]*models.User),
	}
}

// dateLock returns the mutex serializing writers of one date.
func (s *MemoryStore) dateLock(date string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	l, ok := s.locks[date]
	if !ok {
		l = &sync.Mutex{}
		s.locks[date] = l
	}
	return l
}

// Put stores a full Day Record, replacing any record for the same date.
// Used for seeding; a zero ID gets a fresh ObjectID.
func (s *MemoryStore) Put(ctx context.Context, rec models.DayRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l := s.dateLock(rec.Date)
	l.Lock()
	defer l.Unlock()

	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.days[rec.Date]; !ok {
		s.order = append(s.order, rec.Date)
	}
	s.days[rec.Date] = rec.Clone()
	return nil
}

func (s *MemoryStore) All(ctx context.Context) ([]models.DayRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DayRecord, 0, len(s.order))
	for _, date := range s.order {
		out = append(out, *s.days[date].Clone())
	}
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, date string) (*models.DayRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.days[date]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, date string) (*models.DayRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l := s.dateLock(date)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.days[date]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.days, date)
	for i, d := range s.order {
		if d == date {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return rec, nil
}

func (s *MemoryStore) Cancel(ctx context.Context, date string, reservationID int) (*models.DayRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l := s.dateLock(date)
	l.Lock()
	defer l.Unlock()

	s.mu.RLock()
	cur, ok := s.days[date]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	next := cur.Clone()
	idx := -1
	for i, p := range next.People {
		if p.ReservationID == reservationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrReservationNotFound
	}
	next.People = append(next.People[:idx], next.People[idx+1:]...)
	next.Version++

	s.mu.Lock()
	s.days[date] = next
	s.mu.Unlock()
	return next.Clone(), nil
}

func (s *MemoryStore) Add(ctx context.Context, date string, r models.Reservation) (*models.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l := s.dateLock(date)
	l.Lock()
	defer l.Unlock()

	s.mu.RLock()
	cur, ok := s.days[date]
	s.mu.RUnlock()

	var next *models.DayRecord
	if ok {
		next = cur.Clone()
		next.Version++
	} else {
		next = &models.DayRecord{ID: primitive.NewObjectID(), Date: date}
	}
	r.ReservationID = next.NextReservationID()
	next.People = append(next.People, r)

	s.mu.Lock()
	if !ok {
		s.order = append(s.order, date)
	}
	s.days[date] = next
	s.mu.Unlock()
	return &r, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := strings.ToLower(u.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; ok {
		return ErrDuplicateEmail
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	s.users[key] = &cp
	return nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
