package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
)

// Valid reports whether r is one of the roles a user record may hold.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleTrainer:
		return true
	}
	return false
}

// OrDefault treats an unset stored role as a plain user.
func (r Role) OrDefault() Role {
	if r == "" {
		return RoleUser
	}
	return r
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email       string             `bson:"email" json:"email"`
	DisplayName string             `bson:"displayName,omitempty" json:"displayName,omitempty"`
	PhotoURL    string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role        Role               `bson:"role" json:"role"`
}

// Profile is the public subset of a user returned by GET /user/:email.
type Profile struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	Role        Role   `json:"role"`
}

func (u User) Profile() Profile {
	return Profile{
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Role:        u.Role.OrDefault(),
	}
}

// Identity is the authenticated caller as carried by a verified token.
type Identity struct {
	Email string
	Role  Role
}
