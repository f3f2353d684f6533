package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TimestampLayout is the wire format of Reservation.RegisterTimestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000"

type Reservation struct {
	ReservationID     int    `bson:"reservation_id" json:"reservation_id"`
	RegisterTimestamp string `bson:"register_timestamp" json:"register_timestamp"`
	Name              string `bson:"name" json:"name"`
	Surname           string `bson:"surname" json:"surname"`
	BirthDate         string `bson:"birth_date" json:"birth_date"`
	CitizenID         string `bson:"citizen_id" json:"citizen_id"`
	Occupation        string `bson:"occupation" json:"occupation"`
	Address           string `bson:"address" json:"address"`
	Priority          string `bson:"priority" json:"priority"`
	VacTime           int    `bson:"vac_time" json:"vac_time"`                   // 0 while still waiting
	WalkIn            bool   `bson:"walk_in,omitempty" json:"walk_in,omitempty"` // omitted for pre-booked entries
}

// DayRecord holds every reservation made for one calendar date.
// Field order matters: it is the JSON order clients see.
type DayRecord struct {
	Version int                `bson:"__v" json:"__v"`
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Date    string             `bson:"date" json:"date"`
	People  []Reservation      `bson:"people" json:"people"`
}

// Empty reports whether the day has no reservations left.
func (d *DayRecord) Empty() bool {
	return d == nil || len(d.People) == 0
}

// Clone returns a deep copy so callers never share the People slice.
func (d *DayRecord) Clone() *DayRecord {
	if d == nil {
		return nil
	}
	cp := *d
	cp.People = append(make([]Reservation, 0, len(d.People)), d.People...)
	return &cp
}

// NextReservationID returns max(reservation_id)+1, or 1 for an empty day.
func (d *DayRecord) NextReservationID() int {
	next := 1
	for _, p := range d.People {
		if p.ReservationID >= next {
			next = p.ReservationID + 1
		}
	}
	return next
}

// TotalCount is the body of GET /people/count/total/:date.
type TotalCount struct {
	Count      int            `json:"count"`
	Waiting    int            `json:"waiting"`
	Vaccinated int            `json:"vaccinated"`
	Queue      map[string]int `json:"queue"`
}

// WalkinCount is the body of GET /people/count/walkin/:date.
type WalkinCount struct {
	Date          string `json:"date"`
	Total         int    `json:"total"`
	TotalWalkin   int    `json:"total_walkin"`
	TotalReserved int    `json:"total_reserved"`
}
