package models

import (
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
)

var bookingOwnedKeys = []string{"_id", "userEmail", "trainerEmail", "status", "createdAt", "confirmedAt"}

// Booking is a request from a user for a session with a trainer. Only the
// routing and lifecycle fields are typed; trainerName, date, timeSlot,
// details and anything else the client sends are kept in Fields.
type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail    string             `bson:"userEmail"`
	TrainerEmail string             `bson:"trainerEmail"`
	Status       BookingStatus      `bson:"status"`
	CreatedAt    time.Time          `bson:"createdAt"`
	ConfirmedAt  *time.Time         `bson:"confirmedAt,omitempty"`
	Fields       Fields             `bson:",inline"`
}

var errTrainerEmailType = errors.New("trainerEmail must be a string")

// UnmarshalJSON reads a client booking request. Lifecycle fields in the body
// are ignored; trainerEmail must be a string when present.
func (b *Booking) UnmarshalJSON(data []byte) error {
	owned, fields, err := splitObject(data, bookingOwnedKeys...)
	if err != nil {
		return err
	}
	var trainer string
	if raw, ok := owned["trainerEmail"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &trainer); err != nil {
			return errTrainerEmailType
		}
	}
	*b = Booking{TrainerEmail: trainer, Fields: fields}
	return nil
}

func (b Booking) MarshalJSON() ([]byte, error) {
	owned := map[string]interface{}{
		"_id":          b.ID,
		"userEmail":    b.UserEmail,
		"trainerEmail": b.TrainerEmail,
		"status":       b.Status,
		"createdAt":    b.CreatedAt,
	}
	if b.ConfirmedAt != nil {
		owned["confirmedAt"] = b.ConfirmedAt
	}
	return mergeObject(b.Fields, owned)
}
