package appointmentRepo

import (
	"fmt"
	"time"

	"hormelys/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// optionsFindSorted sorts listings by date ascending then time ascending.
func optionsFindSorted() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
}

// BookedSlots returns the (date, time) pairs of every non-cancelled record
// whose combined date-time is at or after now. The date and time strings are
// recombined server-side with $dateFromString so the comparison happens on
// real instants, and the projection keeps personal data out of the result.
func (r *MongoAppointmentRepo) BookedSlots(now time.Time) ([]models.BookedSlot, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve appointments collection: %w", err)
	}

	filter := bson.M{
		"status": bson.M{"$ne": models.StatusCancelled},
		"$expr": bson.M{
			"$gte": bson.A{
				bson.M{"$dateFromString": bson.M{
					"dateString": bson.M{"$concat": bson.A{"$date", "T", "$time"}},
				}},
				now,
			},
		},
	}
	opts := options.Find().SetProjection(bson.M{"date": 1, "time": 1, "_id": 0})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve booked slots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []models.BookedSlot{}
	for cursor.Next(ctx) {
		var s models.BookedSlot
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode booked slot: %w", err)
		}
		slots = append(slots, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate booked slots: %w", err)
	}
	return slots, nil
}

// Cancel marks the appointment cancelled via an atomic update-and-return.
// The record is kept, not deleted, and its slot stays blocked.
func (r *MongoAppointmentRepo) Cancel(id string, now time.Time) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve appointments collection: %w", err)
	}

	update := bson.M{"$set": bson.M{"status": models.StatusCancelled, "updatedAt": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt models.Appointment
	if err := coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to cancel appointment %s: %w", id, err)
	}
	return &appt, nil
}
