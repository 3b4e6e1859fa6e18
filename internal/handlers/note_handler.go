package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/middleware"
	"github.com/Jahid-Al-Hasan/EduSync-server/internal/models"
)

type NoteHandler struct {
	notes *mongo.Collection
}

func NewNoteHandler(client *mongo.Client, dbName string) *NoteHandler {
	return &NoteHandler{
		notes: client.Database(dbName).Collection("student-notes"),
	}
}

// CreateNote stores a personal note for the calling student.
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Email == "" || req.Title == "" || req.Description == "" {
		respondError(w, http.StatusBadRequest, "Email, title, and description are required.")
		return
	}

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if req.Email != principal.Email {
		respondError(w, http.StatusForbidden, "Email does not match the authenticated user")
		return
	}

	now := time.Now()
	note := models.StudentNote{
		ID:          primitive.NewObjectID(),
		Email:       req.Email,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.notes.InsertOne(ctx, note); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save note. Please try again.")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Note saved successfully",
		"noteId":  note.ID.Hex(),
	})
}

// GetNotes lists notes for the email query parameter, newest first.
func (h *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "Email query parameter is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.notes.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch notes")
		return
	}
	defer cursor.Close(ctx)

	notes := []models.StudentNote{}
	if err = cursor.All(ctx, &notes); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding notes")
		return
	}

	respondJSON(w, http.StatusOK, notes)
}

// UpdateNote edits a note the calling student owns.
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Title == "" || req.Description == "" {
		respondError(w, http.StatusBadRequest, "Title and description are required.")
		return
	}

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	note, err := h.findOwnedNote(ctx, w, objID, principal.Email)
	if err != nil {
		return
	}

	_, err = h.notes.UpdateOne(ctx, bson.M{"_id": note.ID}, bson.M{
		"$set": bson.M{
			"title":       req.Title,
			"description": req.Description,
			"updatedAt":   time.Now(),
		},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Note updated successfully"})
}

// DeleteNote removes a note the calling student owns.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	note, err := h.findOwnedNote(ctx, w, objID, principal.Email)
	if err != nil {
		return
	}

	if _, err := h.notes.DeleteOne(ctx, bson.M{"_id": note.ID}); err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}

// findOwnedNote loads a note and verifies the caller owns it, writing the
// error response itself when it does not.
func (h *NoteHandler) findOwnedNote(ctx context.Context, w http.ResponseWriter, id primitive.ObjectID, email string) (*models.StudentNote, error) {
	var note models.StudentNote
	err := h.notes.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err == mongo.ErrNoDocuments {
		respondError(w, http.StatusNotFound, "Note not found")
		return nil, err
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return nil, err
	}
	if note.Email != email {
		respondError(w, http.StatusForbidden, "You do not own this note")
		return nil, errors.New("note not owned by caller")
	}
	return &note, nil
}
