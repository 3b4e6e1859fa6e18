package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/middleware"
	"github.com/Jahid-Al-Hasan/EduSync-server/internal/models"
)

type MaterialHandler struct {
	materials *mongo.Collection
}

func NewMaterialHandler(client *mongo.Client, dbName string) *MaterialHandler {
	return &MaterialHandler{
		materials: client.Database(dbName).Collection("session-materials"),
	}
}

// parsePagination reads page/limit query values, defaulting to 1 and 10.
func parsePagination(pageStr, limitStr string) (int, int) {
	page, limit := 1, 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
		limit = l
	}
	return page, limit
}

// CreateMaterial handles a tutor uploading study material for a session.
func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        string `json:"title"`
		SessionID    string `json:"sessionId"`
		SessionTitle string `json:"sessionTitle"`
		TutorEmail   string `json:"tutorEmail"`
		ImageURL     string `json:"imageUrl"`
		DriveLink    string `json:"driveLink"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Title == "" || req.SessionID == "" || req.SessionTitle == "" || req.TutorEmail == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
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

	material := models.SessionMaterial{
		ID:           primitive.NewObjectID(),
		Title:        req.Title,
		SessionID:    req.SessionID,
		SessionTitle: req.SessionTitle,
		TutorEmail:   req.TutorEmail,
		ImageURL:     req.ImageURL,
		DriveLink:    req.DriveLink,
		CreatedAt:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.materials.InsertOne(ctx, material); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to upload material")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message":    "Study material uploaded successfully",
		"materialId": material.ID.Hex(),
	})
}

// GetTutorMaterials lists everything the calling tutor has uploaded.
func (h *MaterialHandler) GetTutorMaterials(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.materials.Find(ctx, bson.M{"tutorEmail": principal.Email})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch materials")
		return
	}
	defer cursor.Close(ctx)

	materials := []models.SessionMaterial{}
	if err = cursor.All(ctx, &materials); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding materials")
		return
	}

	respondJSON(w, http.StatusOK, materials)
}

// GetMaterialsBySession lists a session's materials for booked students,
// newest first.
func (h *MaterialHandler) GetMaterialsBySession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "A valid sessionId is required.")
		return
	}
	if _, err := primitive.ObjectIDFromHex(sessionID); err != nil {
		respondError(w, http.StatusBadRequest, "A valid sessionId is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.materials.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch materials")
		return
	}
	defer cursor.Close(ctx)

	materials := []models.SessionMaterial{}
	if err = cursor.All(ctx, &materials); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding materials")
		return
	}

	respondJSON(w, http.StatusOK, materials)
}

// GetAllMaterials pages through every material for the admin dashboard and
// reports the total count alongside.
func (h *MaterialHandler) GetAllMaterials(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := h.materials.Find(ctx, bson.M{}, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch materials")
		return
	}
	defer cursor.Close(ctx)

	materials := []models.SessionMaterial{}
	if err = cursor.All(ctx, &materials); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding materials")
		return
	}

	total, err := h.materials.CountDocuments(ctx, bson.M{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to count materials")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":     total,
		"materials": materials,
	})
}

// DeleteMaterial removes one material. Admin only.
func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	objID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid material ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.materials.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete material")
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Material not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Material deleted successfully"})
}
