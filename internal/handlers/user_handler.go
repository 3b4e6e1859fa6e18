package handlers

import (
	"context"
	"encoding/json"
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

type UserHandler struct {
	users *mongo.Collection
}

func NewUserHandler(client *mongo.Client, dbName string) *UserHandler {
	return &UserHandler{
		users: client.Database(dbName).Collection("users"),
	}
}

// RegisterUser handles first registration. New users may only register as
// student or tutor; admins are promoted later via UpdateUserRole.
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string          `json:"email"`
		Name     string          `json:"name"`
		PhotoURL string          `json:"photoURL"`
		Role     models.UserRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Email == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	// The body email must match the verified principal; never trust the
	// claimed identity alone.
	if req.Email != principal.Email {
		respondError(w, http.StatusForbidden, "Email does not match the authenticated user")
		return
	}

	if req.Role != models.RoleStudent && req.Role != models.RoleTutor {
		respondError(w, http.StatusBadRequest, "User must be student or tutor")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.User
	err := h.users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		respondError(w, http.StatusConflict, "User already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		respondError(w, http.StatusInternalServerError, "Failed to check user availability")
		return
	}

	newUser := models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		PhotoURL:  req.PhotoURL,
		Role:      req.Role,
		CreatedAt: time.Now(),
	}

	if _, err := h.users.InsertOne(ctx, newUser); err != nil {
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message":    "User registered successfully",
		"insertedId": newUser.ID.Hex(),
	})
}

// GetUser reports whether the principal is registered, and with which role.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := h.users.FindOne(ctx, bson.M{"email": principal.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		respondJSON(w, http.StatusOK, map[string]interface{}{"exists": false})
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"exists": true,
		"role":   user.Role,
	})
}

// GetTutors retrieves all tutor accounts
func (h *UserHandler) GetTutors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := h.users.Find(ctx, bson.M{"role": models.RoleTutor})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch tutors")
		return
	}
	defer cursor.Close(ctx)

	tutors := []models.User{}
	if err = cursor.All(ctx, &tutors); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding tutors")
		return
	}

	respondJSON(w, http.StatusOK, tutors)
}

// GetUsers retrieves all users for the admin dashboard, optionally filtered
// by an email search term, newest first.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if search := r.URL.Query().Get("search"); search != "" {
		filter = bson.M{"email": bson.M{"$regex": search, "$options": "i"}}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.users.Find(ctx, filter, opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err = cursor.All(ctx, &users); err != nil {
		respondError(w, http.StatusInternalServerError, "Error decoding users")
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// UpdateUserRole changes a user's role. Admin only.
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Role models.UserRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Role != models.RoleAdmin && req.Role != models.RoleTutor && req.Role != models.RoleStudent {
		respondError(w, http.StatusBadRequest, "Invalid role")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.users.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"role": req.Role}})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update user role")
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User role updated successfully"})
}
