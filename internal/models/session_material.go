package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionMaterial struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	SessionID    string             `json:"sessionId" bson:"sessionId"`
	SessionTitle string             `json:"sessionTitle" bson:"sessionTitle"`
	TutorEmail   string             `json:"tutorEmail" bson:"tutorEmail"`
	ImageURL     string             `json:"imageUrl" bson:"imageUrl"`
	DriveLink    string             `json:"driveLink" bson:"driveLink"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
