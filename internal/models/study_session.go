package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionStatus string

const (
	StatusPending  SessionStatus = "pending"
	StatusApproved SessionStatus = "approved"
	StatusRejected SessionStatus = "rejected"
)

type StudySession struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title             string             `json:"title" bson:"title"`
	TutorName         string             `json:"tutorName" bson:"tutorName"`
	TutorEmail        string             `json:"tutorEmail" bson:"tutorEmail"`
	Description       string             `json:"description" bson:"description"`
	RegistrationStart time.Time          `json:"registrationStart" bson:"registrationStart"`
	RegistrationEnd   time.Time          `json:"registrationEnd" bson:"registrationEnd"`
	ClassStart        time.Time          `json:"classStart" bson:"classStart"`
	ClassEnd          time.Time          `json:"classEnd" bson:"classEnd"`
	Duration          string             `json:"duration" bson:"duration"`
	MaxStudents       int                `json:"maxStudents" bson:"maxStudents"`
	CurrentStudents   int                `json:"currentStudents" bson:"currentStudents"`
	RegistrationFee   int                `json:"registrationFee" bson:"registrationFee"`
	Status            SessionStatus      `json:"status" bson:"status"`
	RejectionReason   string             `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	RejectionFeedback string             `json:"rejectionFeedback,omitempty" bson:"rejectionFeedback,omitempty"`
	AverageRating     float64            `json:"averageRating,omitempty" bson:"averageRating,omitempty"`
	ReviewCount       int                `json:"reviewCount,omitempty" bson:"reviewCount,omitempty"`
	ApprovedAt        *time.Time         `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	RejectedAt        *time.Time         `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
	RejectedBy        string             `json:"rejectedBy,omitempty" bson:"rejectedBy,omitempty"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}
