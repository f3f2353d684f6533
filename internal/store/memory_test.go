package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/harentsoaR/people-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fixtureDay(t *testing.T) models.DayRecord {
	t.Helper()
	id, err := primitive.ObjectIDFromHex("617588258afc4f9aae4e8df5")
	if err != nil {
		t.Fatal(err)
	}
	return models.DayRecord{
		ID:   id,
		Date: "23-10-2021",
		People: []models.Reservation{{
			ReservationID:     6,
			RegisterTimestamp: "2021-10-23T06:44:25.849000",
			Name:              "foo",
			Surname:           "rockmakmak",
			BirthDate:         "2002-10-22",
			CitizenID:         "1234567848204",
			Occupation:        "programmer",
			Address:           "bkk thailand",
			Priority:          "3",
			VacTime:           9,
		}},
	}
}

func TestMemoryStore_GetAndAll(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Put(ctx, fixtureDay(t)); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "23-10-2021")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID.Hex() != "617588258afc4f9aae4e8df5" || len(got.People) != 1 {
		t.Errorf("unexpected record: %+v", got)
	}

	// Returned records are copies.
	got.People[0].Name = "changed"
	again, _ := s.Get(ctx, "23-10-2021")
	if again.People[0].Name != "foo" {
		t.Error("mutating a returned record leaked into the store")
	}

	if _, err := s.Get(ctx, "24-10-2021"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get absent = %v, want ErrNotFound", err)
	}

	all, err := s.All(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("All = %v, %v", all, err)
	}
}

func TestMemoryStore_AllEmpty(t *testing.T) {
	all, err := NewMemoryStore().All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if all == nil || len(all) != 0 {
		t.Errorf("All on empty store = %#v, want empty non-nil slice", all)
	}
}

func TestMemoryStore_AddAssignsIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	r1, err := s.Add(ctx, "01-11-2021", models.Reservation{Name: "a"})
	if err != nil {
		t.Fatal(err)
	}
	r2, err := s.Add(ctx, "01-11-2021", models.Reservation{Name: "b"})
	if err != nil {
		t.Fatal(err)
	}
	if r1.ReservationID != 1 || r2.ReservationID != 2 {
		t.Errorf("ids = %d,%d want 1,2", r1.ReservationID, r2.ReservationID)
	}

	day, _ := s.Get(ctx, "01-11-2021")
	if day.Version != 1 {
		t.Errorf("__v = %d, want 1 (created at 0, one append)", day.Version)
	}
	if day.ID.IsZero() {
		t.Error("new day should get an ObjectID")
	}

	if err := s.Put(ctx, fixtureDay(t)); err != nil {
		t.Fatal(err)
	}
	r3, _ := s.Add(ctx, "23-10-2021", models.Reservation{Name: "c"})
	if r3.ReservationID != 7 {
		t.Errorf("next id after 6 = %d, want 7", r3.ReservationID)
	}
}

func TestMemoryStore_Cancel(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Put(ctx, fixtureDay(t))

	if _, err := s.Cancel(ctx, "23-10-2021", 99); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("Cancel unknown id = %v, want ErrReservationNotFound", err)
	}
	if _, err := s.Cancel(ctx, "24-10-2021", 6); !errors.Is(err, ErrNotFound) {
		t.Errorf("Cancel unknown day = %v, want ErrNotFound", err)
	}

	day, err := s.Cancel(ctx, "23-10-2021", 6)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(day.People) != 0 || day.Version != 1 {
		t.Errorf("after cancel: people=%d __v=%d", len(day.People), day.Version)
	}
	// The emptied day stays in place.
	if _, err := s.Get(ctx, "23-10-2021"); err != nil {
		t.Errorf("emptied day should remain: %v", err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Put(ctx, fixtureDay(t))
	_, _ = s.Add(ctx, "02-11-2021", models.Reservation{Name: "x"})

	got, err := s.Delete(ctx, "23-10-2021")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got.Date != "23-10-2021" || len(got.People) != 1 {
		t.Errorf("deleted record = %+v", got)
	}
	if _, err := s.Delete(ctx, "23-10-2021"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
	all, _ := s.All(ctx)
	if len(all) != 1 || all[0].Date != "02-11-2021" {
		t.Errorf("All after delete = %+v", all)
	}
}

func TestMemoryStore_ConcurrentAddSameDate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Add(ctx, "05-11-2021", models.Reservation{Name: "p"}); err != nil {
				t.Errorf("Add: %v", err)
			}
		}()
	}
	wg.Wait()

	day, err := s.Get(ctx, "05-11-2021")
	if err != nil {
		t.Fatal(err)
	}
	if len(day.People) != n {
		t.Fatalf("people = %d, want %d", len(day.People), n)
	}
	seen := make(map[int]bool)
	for _, p := range day.People {
		if seen[p.ReservationID] {
			t.Fatalf("duplicate reservation_id %d", p.ReservationID)
		}
		seen[p.ReservationID] = true
	}
	if day.Version != n-1 {
		t.Errorf("__v = %d, want %d", day.Version, n-1)
	}
}

func TestMemoryStore_Users(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := &models.User{FullName: "Staff", Email: "Staff@Example.com", Role: "staff"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}
	if u.ID.IsZero() {
		t.Error("CreateUser should assign an ID")
	}
	if err := s.CreateUser(ctx, &models.User{Email: "staff@example.com"}); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("duplicate = %v, want ErrDuplicateEmail", err)
	}
	got, err := s.FindUserByEmail(ctx, "STAFF@example.com")
	if err != nil || got.FullName != "Staff" {
		t.Errorf("FindUserByEmail = %+v, %v", got, err)
	}
	if _, err := s.FindUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown = %v, want ErrUserNotFound", err)
	}
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	body := `[{"__v":0,"_id":"617588258afc4f9aae4e8df5","date":"23-10-2021","people":[
		{"reservation_id":6,"register_timestamp":"2021-10-23T06:44:25.849000","name":"foo","surname":"rockmakmak",
		 "birth_date":"2002-10-22","citizen_id":"1234567848204","occupation":"programmer","address":"bkk thailand",
		 "priority":"3","vac_time":9}]}]`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewMemoryStore()
	n, err := LoadSeedFile(context.Background(), s, path)
	if err != nil || n != 1 {
		t.Fatalf("LoadSeedFile = %d, %v", n, err)
	}
	day, err := s.Get(context.Background(), "23-10-2021")
	if err != nil {
		t.Fatal(err)
	}
	if day.ID.Hex() != "617588258afc4f9aae4e8df5" || day.People[0].VacTime != 9 {
		t.Errorf("seeded record = %+v", day)
	}
}

func TestLoadSeedFile_BadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(`[{"date":"10-20-2021","people":[]}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSeedFile(context.Background(), NewMemoryStore(), path); err == nil {
		t.Error("expected error for invalid seed date")
	}
}
