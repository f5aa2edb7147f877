package models

import "time"

// Platform roles.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleDecorator = "decorator"
)

// User represents a platform account. Credentials live with the identity
// provider; only profile and role are stored here.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"displayName,omitempty" json:"displayName,omitempty"`
	PhotoURL    string    `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role        string    `bson:"role" json:"role"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Actor is an already-authenticated caller, as resolved by the auth and role
// middleware before a request reaches the core services.
type Actor struct {
	Email string
	Role  string
}
