package appointmentRepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hormelys/database"
	"hormelys/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "appointments"

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	manager   *database.Manager
	indexOnce sync.Once
}

// NewMongoAppointmentRepo creates a new AppointmentRepository backed by the
// shared connection manager. Indexes are ensured after the first successful
// collection resolution, since the connection itself is lazy.
func NewMongoAppointmentRepo(manager *database.Manager) AppointmentRepository {
	return &MongoAppointmentRepo{manager: manager}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// collection resolves the appointments collection, ensuring indexes once.
func (r *MongoAppointmentRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	coll, err := r.manager.Collection(ctx, collectionName)
	if err != nil {
		return nil, err
	}
	r.indexOnce.Do(func() {
		if idxErr := r.ensureIndexes(coll); idxErr != nil {
			fmt.Printf("failed to create indexes: %v\n", idxErr)
		}
	})
	return coll, nil
}

// Create inserts a new appointment document.
func (r *MongoAppointmentRepo) Create(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve appointments collection: %w", err)
	}

	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// IsSlotAvailable reports whether no non-cancelled record holds (date, time).
func (r *MongoAppointmentRepo) IsSlotAvailable(date, timeStr string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to resolve appointments collection: %w", err)
	}

	filter := bson.M{
		"date":   date,
		"time":   timeStr,
		"status": bson.M{"$ne": models.StatusCancelled},
	}
	if err := coll.FindOne(ctx, filter).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return true, nil
		}
		return false, fmt.Errorf("failed to check slot %s %s: %w", date, timeStr, err)
	}
	return false, nil
}

// GetAll retrieves all appointments ordered by date then time.
func (r *MongoAppointmentRepo) GetAll() ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve appointments collection: %w", err)
	}

	opts := optionsFindSorted()
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appts = append(appts, a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return appts, nil
}

// SetEmailSent records the confirmation dispatch outcome on the document.
func (r *MongoAppointmentRepo) SetEmailSent(id string, sent bool, now time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve appointments collection: %w", err)
	}

	update := bson.M{"$set": bson.M{"emailSent": sent, "updatedAt": now}}
	result, err := coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update emailSent for appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
