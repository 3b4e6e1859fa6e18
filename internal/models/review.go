package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	// SessionID holds the hex string form of the session id, matching how
	// the documents were written historically. It is not an ObjectID
	// reference.
	SessionID    string    `json:"sessionId" bson:"sessionId"`
	StudentEmail string    `json:"studentEmail" bson:"studentEmail"`
	StudentName  string    `json:"studentName" bson:"studentName"`
	Rating       int       `json:"rating" bson:"rating"`
	Comment      string    `json:"comment" bson:"comment"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
