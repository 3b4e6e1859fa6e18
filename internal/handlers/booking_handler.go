package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/middleware"
	"github.com/Jahid-Al-Hasan/EduSync-server/internal/models"
)

type BookingHandler struct {
	bookings *mongo.Collection
}

func NewBookingHandler(client *mongo.Client, dbName string) *BookingHandler {
	return &BookingHandler{
		bookings: client.Database(dbName).Collection("booked-sessions"),
	}
}

// CreateBooking records a student booking a session. Bookings are not
// deduplicated and the session's approval status is not checked; a student
// may book the same session twice.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID       string      `json:"sessionId"`
		StudentEmail    string      `json:"studentEmail"`
		StudentName     string      `json:"studentName"`
		TutorEmail      string      `json:"tutorEmail"`
		TutorName       string      `json:"tutorName"`
		RegistrationFee interface{} `json:"registrationFee"`
		SessionTitle    string      `json:"sessionTitle"`
		ClassStart      string      `json:"classStart"`
		ClassEnd        string      `json:"classEnd"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.SessionID == "" || req.StudentEmail == "" || req.TutorEmail == "" {
		respondError(w, http.StatusBadRequest, "Required fields missing")
		return
	}

	objID, err := primitive.ObjectIDFromHex(req.SessionID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if req.StudentEmail != principal.Email {
		respondError(w, http.StatusForbidden, "Email does not match the authenticated user")
		return
	}

	// Class times come from the client's copy of the session card; bad
	// values are stored as zero rather than rejecting the booking.
	classStart, _ := parseSessionDate(req.ClassStart)
	classEnd, _ := parseSessionDate(req.ClassEnd)

	booking := models.Booking{
		ID:              primitive.NewObjectID(),
		SessionID:       objID,
		StudentEmail:    req.StudentEmail,
		StudentName:     req.StudentName,
		TutorEmail:      req.TutorEmail,
		TutorName:       req.TutorName,
		BookingDate:     time.Now(),
		RegistrationFee: coerceInt(req.RegistrationFee),
		SessionTitle:    req.SessionTitle,
		ClassStart:      classStart,
		ClassEnd:        classEnd,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.bookings.InsertOne(ctx, booking); err != nil {
		respondError(w, http.StatusInternalServerError, "Booking not created")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message":    "Booking created successfully",
		"insertedId": booking.ID.Hex(),
	})
}

// GetBookedSessions lists a student's bookings ordered by class start.
func (h *BookingHandler) GetBookedSessions(w http.ResponseWriter, r *http.Request) {
	studentEmail := r.URL.Query().Get("studentEmail")
	if studentEmail == "" {
		respondError(w, http.StatusBadRequest, "Student email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "classStart", Value: 1}})
	cursor, err := h.bookings.Find(ctx, bson.M{"studentEmail": studentEmail}, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch booked sessions")
		return
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding booked sessions")
		return
	}

	respondJSON(w, http.StatusOK, bookings)
}
