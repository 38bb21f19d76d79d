package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"devevent/internal/domain"
)

type bookingDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	EventID   primitive.ObjectID `bson:"event_id"`
	Slug      string             `bson:"slug"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type bookingRepository struct {
	c *mongo.Collection
}

// NewBookingRepository returns a BookingRepository over the bookings collection.
func NewBookingRepository(db *mongo.Database) domain.BookingRepository {
	return &bookingRepository{c: db.Collection(BookingsCollection)}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	eventID, err := primitive.ObjectIDFromHex(b.EventID)
	if err != nil {
		return domain.NewValidationError([]string{"invalid event id"})
	}
	doc := bookingDoc{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		Slug:      b.Slug,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if _, err := r.c.InsertOne(ctx, doc); err != nil {
		// uniq_event_email is the only unique index besides _id, which is fresh.
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateBooking
		}
		return err
	}
	b.ID = doc.ID.Hex()
	return nil
}

func (r *bookingRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return 0, nil
	}
	return r.c.CountDocuments(ctx, bson.M{"event_id": oid})
}
