package models

import "time"

// Decorator approval states.
const (
	ApprovePending  = "pending"
	ApproveApproved = "approved"
	ApproveRejected = "rejected"
)

// Decorator work states. Meaningful only once approved.
const (
	WorkAvailable = "available"
	WorkDisabled  = "disabled"
)

// Decorator is a service-provider profile linked 1:1 to a user account via
// UserID (a weak reference, never cascaded).
type Decorator struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	ApproveStatus string    `bson:"approveStatus" json:"approveStatus"`
	WorkStatus    string    `bson:"workStatus,omitempty" json:"workStatus,omitempty"`
	Location      string    `bson:"location,omitempty" json:"location,omitempty"`
	Ratings       float64   `bson:"ratings,omitempty" json:"ratings,omitempty"`
	Specialties   []string  `bson:"specialties,omitempty" json:"specialties,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
