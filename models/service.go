package models

import "time"

// Service is a bookable catalog entry.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	ServiceName string    `bson:"serviceName" json:"serviceName"`
	Category    string    `bson:"category" json:"category"`
	Cost        float64   `bson:"cost" json:"cost"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	PhotoURL    string    `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
