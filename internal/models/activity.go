package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Keys of an activity log the server assigns. Everything else the client
// sends is kept in Fields.
var activityOwnedKeys = []string{"_id", "userEmail", "date", "createdAt"}

// activity is the shared shape of workout, sleep and nutrition logs.
type activity struct {
	ID        primitive.ObjectID
	UserEmail string
	Date      string
	CreatedAt time.Time
	Fields    Fields
}

// stamp assigns the server-owned fields of a logged activity. Any id or owner
// the client sent is discarded.
func (a *activity) stamp(email string, now time.Time) {
	a.ID = primitive.NilObjectID
	a.UserEmail = email
	if a.Date == "" {
		a.Date = now.UTC().Format(time.RFC3339)
	}
	a.CreatedAt = now.UTC()
}

// decode keeps a client date only when it is a string; anything else is
// replaced by the server default on stamp.
func (a *activity) decode(data []byte) error {
	owned, fields, err := splitObject(data, activityOwnedKeys...)
	if err != nil {
		return err
	}
	a.Date = optionalString(owned["date"])
	a.Fields = fields
	return nil
}

func (a activity) encode() ([]byte, error) {
	return mergeObject(a.Fields, map[string]interface{}{
		"_id":       a.ID,
		"userEmail": a.UserEmail,
		"date":      a.Date,
		"createdAt": a.CreatedAt,
	})
}

type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail string             `bson:"userEmail"`
	Date      string             `bson:"date"`
	CreatedAt time.Time          `bson:"createdAt"`
	Fields    Fields             `bson:",inline"` // exercise, sets, reps, weight, ...
}

func (w *Workout) Stamp(email string, now time.Time) {
	a := activity(*w)
	a.stamp(email, now)
	*w = Workout(a)
}

func (w *Workout) UnmarshalJSON(data []byte) error {
	var a activity
	if err := a.decode(data); err != nil {
		return err
	}
	*w = Workout(a)
	return nil
}

func (w Workout) MarshalJSON() ([]byte, error) {
	return activity(w).encode()
}

type Sleep struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail string             `bson:"userEmail"`
	Date      string             `bson:"date"`
	CreatedAt time.Time          `bson:"createdAt"`
	Fields    Fields             `bson:",inline"` // hours, quality, bedTime, ...
}

func (s *Sleep) Stamp(email string, now time.Time) {
	a := activity(*s)
	a.stamp(email, now)
	*s = Sleep(a)
}

func (s *Sleep) UnmarshalJSON(data []byte) error {
	var a activity
	if err := a.decode(data); err != nil {
		return err
	}
	*s = Sleep(a)
	return nil
}

func (s Sleep) MarshalJSON() ([]byte, error) {
	return activity(s).encode()
}

type Nutrition struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail string             `bson:"userEmail"`
	Date      string             `bson:"date"`
	CreatedAt time.Time          `bson:"createdAt"`
	Fields    Fields             `bson:",inline"` // meal, food, calories, ...
}

func (n *Nutrition) Stamp(email string, now time.Time) {
	a := activity(*n)
	a.stamp(email, now)
	*n = Nutrition(a)
}

func (n *Nutrition) UnmarshalJSON(data []byte) error {
	var a activity
	if err := a.decode(data); err != nil {
		return err
	}
	*n = Nutrition(a)
	return nil
}

func (n Nutrition) MarshalJSON() ([]byte, error) {
	return activity(n).encode()
}
