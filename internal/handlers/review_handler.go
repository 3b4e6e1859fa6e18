package handlers

import (
	"context"
	"encoding/json"
	"log"
	"math"
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
	"github.com/Jahid-Al-Hasan/EduSync-server/internal/ratings"
)

type ReviewHandler struct {
	reviews  *mongo.Collection
	sessions *mongo.Collection
}

func NewReviewHandler(client *mongo.Client, dbName string) *ReviewHandler {
	db := client.Database(dbName)
	return &ReviewHandler{
		reviews:  db.Collection("reviews"),
		sessions: db.Collection("study-sessions"),
	}
}

// parseRating validates that v is an integer between 1 and 5 inclusive.
// Numeric strings are accepted; fractional values are not.
func parseRating(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		rating := int(n)
		if rating >= 1 && rating <= 5 {
			return rating, true
		}
	case string:
		if rating, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && rating >= 1 && rating <= 5 {
			return rating, true
		}
	}
	return 0, false
}

// defaultStudentName falls back to the email's local part when no display
// name was supplied.
func defaultStudentName(name, email string) string {
	if name != "" {
		return name
	}
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// CreateReview records a student's review of an approved session. One review
// per student per session; the session's stored average rating is refreshed
// best-effort afterwards.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID   string      `json:"sessionId"`
		StudentName string      `json:"studentName"`
		Rating      interface{} `json:"rating"`
		Comment     string      `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	objID, err := primitive.ObjectIDFromHex(req.SessionID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	rating, ok := parseRating(req.Rating)
	if !ok {
		respondError(w, http.StatusBadRequest, "Rating must be between 1-5")
		return
	}

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Reviews are only allowed against approved sessions.
	var session models.StudySession
	err = h.sessions.FindOne(ctx, bson.M{"_id": objID, "status": models.StatusApproved}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "Session not found or not approved")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check session")
		return
	}

	var existing models.Review
	err = h.reviews.FindOne(ctx, bson.M{
		"sessionId":    req.SessionID,
		"studentEmail": principal.Email,
	}).Decode(&existing)
	if err == nil {
		respondError(w, http.StatusConflict, "You've already reviewed this session")
		return
	}
	if err != mongo.ErrNoDocuments {
		respondError(w, http.StatusInternalServerError, "Failed to check existing review")
		return
	}

	now := time.Now()
	review := models.Review{
		ID:           primitive.NewObjectID(),
		SessionID:    req.SessionID,
		StudentEmail: principal.Email,
		StudentName:  defaultStudentName(req.StudentName, principal.Email),
		Rating:       rating,
		Comment:      req.Comment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := h.reviews.InsertOne(ctx, review); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to submit review")
		return
	}

	// The review is committed; a failed aggregate refresh is logged and the
	// periodic job will heal it.
	if err := ratings.Refresh(ctx, h.reviews, h.sessions, req.SessionID); err != nil {
		log.Printf("failed to update session rating for %s: %v", req.SessionID, err)
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message":  "Review submitted successfully",
		"reviewId": review.ID.Hex(),
	})
}

// GetReviews lists a session's reviews, newest first. Public.
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
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
		respondError(w, http.StatusInternalServerError, "Failed to check session")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.reviews.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err = cursor.All(ctx, &reviews); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding reviews")
		return
	}

	respondJSON(w, http.StatusOK, reviews)
}
