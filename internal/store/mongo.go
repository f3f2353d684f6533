package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harentsoaR/people-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	daysCollection  = "days"
	usersCollection = "users"

	// Add retries this many times when another writer bumps __v first.
	maxAddAttempts = 5
)

// MongoStore keeps one document per date in the "days" collection.
type MongoStore struct {
	days  *mongo.Collection
	users *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		days:  db.Collection(daysCollection),
		users: db.Collection(usersCollection),
	}
}

// EnsureIndexes creates the unique indexes on days.date and users.email.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.days.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("days index: %w", err)
	}
	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	return nil
}

// Put upserts a full Day Record keyed by date. A zero ID lets the upsert assign one.
func (s *MongoStore) Put(ctx context.Context, rec models.DayRecord) error {
	_, err := s.days.ReplaceOne(ctx, bson.M{"date": rec.Date}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put day %s: %w", rec.Date, err)
	}
	return nil
}

func (s *MongoStore) All(ctx context.Context) ([]models.DayRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.days.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find days: %w", err)
	}
	defer cursor.Close(ctx)

	days := make([]models.DayRecord, 0)
	if err = cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("decode days: %w", err)
	}
	return days, nil
}

func (s *MongoStore) Get(ctx context.Context, date string) (*models.DayRecord, error) {
	var rec models.DayRecord
	err := s.days.FindOne(ctx, bson.M{"date": date}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find day %s: %w", date, err)
	}
	return &rec, nil
}

func (s *MongoStore) Delete(ctx context.Context, date string) (*models.DayRecord, error) {
	var rec models.DayRecord
	err := s.days.FindOneAndDelete(ctx, bson.M{"date": date}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete day %s: %w", date, err)
	}
	return &rec, nil
}

func (s *MongoStore) Cancel(ctx context.Context, date string, reservationID int) (*models.DayRecord, error) {
	filter := bson.M{"date": date, "people.reservation_id": reservationID}
	update := bson.M{
		"$pull": bson.M{"people": bson.M{"reservation_id": reservationID}},
		"$inc":  bson.M{"__v": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec models.DayRecord
	err := s.days.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rec)
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("cancel %s/%d: %w", date, reservationID, err)
	}

	// Tell an unknown day apart from an unknown reservation.
	n, err := s.days.CountDocuments(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("count day %s: %w", date, err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrReservationNotFound
}

func (s *MongoStore) Add(ctx context.Context, date string, r models.Reservation) (*models.Reservation, error) {
	for attempt := 0; attempt < maxAddAttempts; attempt++ {
		var cur models.DayRecord
		err := s.days.FindOne(ctx, bson.M{"date": date}).Decode(&cur)
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.ReservationID = 1
			rec := models.DayRecord{ID: primitive.NewObjectID(), Date: date, People: []models.Reservation{r}}
			if _, err := s.days.InsertOne(ctx, rec); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					continue
				}
				return nil, fmt.Errorf("insert day %s: %w", date, err)
			}
			return &r, nil
		}
		if err != nil {
			return nil, fmt.Errorf("find day %s: %w", date, err)
		}

		r.ReservationID = cur.NextReservationID()
		res, err := s.days.UpdateOne(ctx,
			bson.M{"_id": cur.ID, "__v": cur.Version},
			bson.M{"$push": bson.M{"people": r}, "$inc": bson.M{"__v": 1}},
		)
		if err != nil {
			return nil, fmt.Errorf("push reservation %s: %w", date, err)
		}
		if res.MatchedCount == 1 {
			return &r, nil
		}
	}
	return nil, ErrConflict
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = strings.ToLower(u.Email)
	_, err := s.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
