package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID       primitive.ObjectID `json:"sessionId" bson:"sessionId"`
	StudentEmail    string             `json:"studentEmail" bson:"studentEmail"`
	StudentName     string             `json:"studentName" bson:"studentName"`
	TutorEmail      string             `json:"tutorEmail" bson:"tutorEmail"`
	TutorName       string             `json:"tutorName" bson:"tutorName"`
	BookingDate     time.Time          `json:"bookingDate" bson:"bookingDate"`
	RegistrationFee int                `json:"registrationFee" bson:"registrationFee"`
	SessionTitle    string             `json:"sessionTitle" bson:"sessionTitle"`
	ClassStart      time.Time          `json:"classStart" bson:"classStart"`
	ClassEnd        time.Time          `json:"classEnd" bson:"classEnd"`
	PaymentStatus   string             `json:"paymentStatus,omitempty" bson:"paymentStatus,omitempty"`
	Status          string             `json:"status,omitempty" bson:"status,omitempty"`
}
