package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/middleware"
	"github.com/Jahid-Al-Hasan/EduSync-server/internal/models"
)

type SessionHandler struct {
	sessions *mongo.Collection
	bookings *mongo.Collection
}

func NewSessionHandler(client *mongo.Client, dbName string) *SessionHandler {
	db := client.Database(dbName)
	return &SessionHandler{
		sessions: db.Collection("study-sessions"),
		bookings: db.Collection("booked-sessions"),
	}
}

// createSessionRequest mirrors the tutor's session submission form. Dates
// arrive as strings so both RFC 3339 timestamps and plain dates are
// accepted.
type createSessionRequest struct {
	Title             string      `json:"title"`
	TutorName         string      `json:"tutorName"`
	TutorEmail        string      `json:"tutorEmail"`
	Description       string      `json:"description"`
	RegistrationStart string      `json:"registrationStart"`
	RegistrationEnd   string      `json:"registrationEnd"`
	ClassStart        string      `json:"classStart"`
	ClassEnd          string      `json:"classEnd"`
	Duration          string      `json:"duration"`
	MaxStudents       int         `json:"maxStudents"`
	RegistrationFee   interface{} `json:"registrationFee"`
}

type updateSessionRequest struct {
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	MaxStudents       int         `json:"maxStudents"`
	RegistrationStart string      `json:"registrationStart"`
	RegistrationEnd   string      `json:"registrationEnd"`
	ClassStart        string      `json:"classStart"`
	ClassEnd          string      `json:"classEnd"`
	RegistrationFee   interface{} `json:"registrationFee"`
}

// missingSessionField returns the name of the first required creation field
// that is empty, or "" when all are present.
func missingSessionField(req createSessionRequest) string {
	switch {
	case req.Title == "":
		return "title"
	case req.TutorName == "":
		return "tutorName"
	case req.TutorEmail == "":
		return "tutorEmail"
	case req.Description == "":
		return "description"
	case req.RegistrationStart == "":
		return "registrationStart"
	case req.RegistrationEnd == "":
		return "registrationEnd"
	case req.ClassStart == "":
		return "classStart"
	case req.ClassEnd == "":
		return "classEnd"
	case req.Duration == "":
		return "duration"
	case req.MaxStudents == 0:
		return "maxStudents"
	}
	return ""
}

// parseSessionDate accepts RFC 3339 timestamps or plain "2006-01-02" dates.
func parseSessionDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// validateSessionWindow enforces the temporal ordering required at creation:
// registration opens before it closes, the class starts after registration
// closes, and the class ends after it starts.
func validateSessionWindow(regStart, regEnd, classStart, classEnd time.Time) error {
	if !regStart.Before(regEnd) {
		return errors.New("Registration end must be after registration start")
	}
	if !classStart.Before(classEnd) {
		return errors.New("Class end must be after class start")
	}
	if !classStart.After(regEnd) {
		return errors.New("Class must start after registration ends")
	}
	return nil
}

// coerceInt converts loosely-typed numeric input (JSON number or numeric
// string) to an int, defaulting to 0 when it cannot be parsed.
func coerceInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return 0
}

// sessionUpdateFields builds the $set document for a session update. Date
// fields are written only when supplied, so a partial update form still
// succeeds; a supplied but unparseable date is an error.
func sessionUpdateFields(req updateSessionRequest, now time.Time) (bson.M, error) {
	set := bson.M{
		"title":           req.Title,
		"description":     req.Description,
		"maxStudents":     req.MaxStudents,
		"registrationFee": coerceInt(req.RegistrationFee),
		"updatedAt":       now,
	}

	dates := []struct {
		field string
		value string
	}{
		{"registrationStart", req.RegistrationStart},
		{"registrationEnd", req.RegistrationEnd},
		{"classStart", req.ClassStart},
		{"classEnd", req.ClassEnd},
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		parsed, err := parseSessionDate(d.value)
		if err != nil {
			return nil, errors.New("Invalid " + d.field + " date")
		}
		set[d.field] = parsed
	}

	return set, nil
}

// CreateSession handles a tutor submitting a new study session. The session
// always starts out pending admin review.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if field := missingSessionField(req); field != "" {
		respondError(w, http.StatusBadRequest, field+" is required")
		return
	}

	regStart, err := parseSessionDate(req.RegistrationStart)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid registrationStart date")
		return
	}
	regEnd, err := parseSessionDate(req.RegistrationEnd)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid registrationEnd date")
		return
	}
	classStart, err := parseSessionDate(req.ClassStart)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid classStart date")
		return
	}
	classEnd, err := parseSessionDate(req.ClassEnd)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid classEnd date")
		return
	}

	if err := validateSessionWindow(regStart, regEnd, classStart, classEnd); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if req.TutorEmail != principal.Email {
		respondError(w, http.StatusForbidden, "Email does not match the authenticated user")
		return
	}

	now := time.Now()
	session := models.StudySession{
		ID:                primitive.NewObjectID(),
		Title:             req.Title,
		TutorName:         req.TutorName,
		TutorEmail:        req.TutorEmail,
		Description:       req.Description,
		RegistrationStart: regStart,
		RegistrationEnd:   regEnd,
		ClassStart:        classStart,
		ClassEnd:          classEnd,
		Duration:          req.Duration,
		MaxStudents:       req.MaxStudents,
		CurrentStudents:   0,
		RegistrationFee:   coerceInt(req.RegistrationFee),
		Status:            models.StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.sessions.InsertOne(ctx, session); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message":    "Session created successfully",
		"insertedId": session.ID.Hex(),
	})
}

// GetApprovedSessions lists every approved session. Public.
func (h *SessionHandler) GetApprovedSessions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.sessions.Find(ctx, bson.M{"status": models.StatusApproved})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}
	defer cursor.Close(ctx)

	sessions := []models.StudySession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding sessions")
		return
	}

	respondJSON(w, http.StatusOK, sessions)
}

// GetApprovedSessionsByTutor lists the calling tutor's approved sessions.
func (h *SessionHandler) GetApprovedSessionsByTutor(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.sessions.Find(ctx, bson.M{
		"tutorEmail": principal.Email,
		"status":     models.StatusApproved,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}
	defer cursor.Close(ctx)

	sessions := []models.StudySession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding sessions")
		return
	}

	respondJSON(w, http.StatusOK, sessions)
}

// GetMySessions lists every session owned by the calling tutor, in any
// status. The scope comes from the principal, not from a query parameter.
func (h *SessionHandler) GetMySessions(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.sessions.Find(ctx, bson.M{"tutorEmail": principal.Email})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}
	defer cursor.Close(ctx)

	sessions := []models.StudySession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding sessions")
		return
	}

	respondJSON(w, http.StatusOK, sessions)
}

// GetAllSessions lists every session for the admin dashboard, newest first.
func (h *SessionHandler) GetAllSessions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.sessions.Find(ctx, bson.M{}, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}
	defer cursor.Close(ctx)

	sessions := []models.StudySession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding sessions")
		return
	}

	respondJSON(w, http.StatusOK, sessions)
}

// GetSession fetches one session. When a studentEmail query parameter is
// supplied it also reports whether that student already booked the session.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	objID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var session models.StudySession
	err = h.sessions.FindOne(ctx, bson.M{"_id": objID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch session")
		return
	}

	isBooked := false
	if studentEmail := r.URL.Query().Get("studentEmail"); studentEmail != "" {
		var booking models.Booking
		err = h.bookings.FindOne(ctx, bson.M{
			"sessionId":    objID,
			"studentEmail": studentEmail,
		}).Decode(&booking)
		if err == nil {
			isBooked = true
		} else if err != mongo.ErrNoDocuments {
			respondError(w, http.StatusInternalServerError, "Failed to check booking")
			return
		}
	}

	respondJSON(w, http.StatusOK, struct {
		models.StudySession
		IsBooked bool `json:"isBooked"`
	}{session, isBooked})
}

// UpdateSessionByTutor and UpdateSessionByAdmin share one shape; only the
// gate on the route differs.
func (h *SessionHandler) UpdateSessionByTutor(w http.ResponseWriter, r *http.Request) {
	h.updateSession(w, r)
}

func (h *SessionHandler) UpdateSessionByAdmin(w http.ResponseWriter, r *http.Request) {
	h.updateSession(w, r)
}

func (h *SessionHandler) updateSession(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Title == "" || req.Description == "" {
		respondError(w, http.StatusBadRequest, "Title and description are required.")
		return
	}

	set, err := sessionUpdateFields(req, time.Now())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.sessions.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "Session not found.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Session updated successfully."})
}

// ApproveSession moves a pending session to approved and records the fee.
func (h *SessionHandler) ApproveSession(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["sessionId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req struct {
		RegistrationFee interface{} `json:"registrationFee"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.sessions.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{
			"status":          models.StatusApproved,
			"registrationFee": coerceInt(req.RegistrationFee),
			"approvedAt":      time.Now(),
		},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to approve session")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Session approved successfully"})
}

// RejectSession moves a session to rejected, recording why and by whom.
func (h *SessionHandler) RejectSession(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req struct {
		RejectionReason   string `json:"rejectionReason"`
		RejectionFeedback string `json:"rejectionFeedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.RejectionReason == "" || req.RejectionFeedback == "" {
		respondError(w, http.StatusBadRequest, "Reason and feedback are required.")
		return
	}

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.sessions.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{
			"status":            models.StatusRejected,
			"rejectionReason":   req.RejectionReason,
			"rejectionFeedback": req.RejectionFeedback,
			"rejectedAt":        time.Now(),
			"rejectedBy":        principal.Email,
		},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Session rejected successfully."})
}

// ResubmitSession puts a rejected session back into the pending queue.
// Resubmitting an already-pending session is a harmless no-op.
func (h *SessionHandler) ResubmitSession(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["sessionId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.sessions.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{"status": models.StatusPending},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Session resubmitted for approval."})
}

// DeleteSession hard-deletes a session. Admin only.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["sessionId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.sessions.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Session not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Session deleted successfully"})
}
