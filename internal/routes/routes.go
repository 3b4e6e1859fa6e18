package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/auth"
	"github.com/Jahid-Al-Hasan/EduSync-server/internal/config"
	"github.com/Jahid-Al-Hasan/EduSync-server/internal/handlers"
	"github.com/Jahid-Al-Hasan/EduSync-server/internal/middleware"
	"github.com/Jahid-Al-Hasan/EduSync-server/internal/models"
)

// chain wraps a handler with middleware, outermost first.
func chain(h http.Handler, mws ...mux.MiddlewareFunc) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func SetupRouter(client *mongo.Client, dbName string, cfg config.Config) *mux.Router {
	router := mux.NewRouter()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	google := auth.NewGoogleVerifier(cfg.GoogleAudience)
	resolveRole := middleware.MongoRoleResolver(client.Database(dbName).Collection("users"))

	authenticate := middleware.Authenticate(tokens, google)
	requireStudent := middleware.RequireRole(resolveRole, models.RoleStudent)
	requireTutor := middleware.RequireRole(resolveRole, models.RoleTutor)
	requireAdmin := middleware.RequireRole(resolveRole, models.RoleAdmin)

	authHandler := handlers.NewAuthHandler(tokens)
	userHandler := handlers.NewUserHandler(client, dbName)
	sessionHandler := handlers.NewSessionHandler(client, dbName)
	reviewHandler := handlers.NewReviewHandler(client, dbName)
	bookingHandler := handlers.NewBookingHandler(client, dbName)
	materialHandler := handlers.NewMaterialHandler(client, dbName)
	noteHandler := handlers.NewNoteHandler(client, dbName)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Server is healthy"))
	}).Methods("GET")
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server connected successfully"))
	}).Methods("GET")

	// auth
	router.HandleFunc("/api/generate-jwt", authHandler.GenerateToken).Methods("POST")
	router.HandleFunc("/api/clear-cookie", authHandler.ClearCookie).Methods("GET")

	// users
	router.Handle("/api/registerUser",
		chain(http.HandlerFunc(userHandler.RegisterUser), authenticate)).Methods("POST")
	router.Handle("/api/user",
		chain(http.HandlerFunc(userHandler.GetUser), authenticate)).Methods("GET")
	router.HandleFunc("/api/users/tutors", userHandler.GetTutors).Methods("GET")
	router.Handle("/api/users",
		chain(http.HandlerFunc(userHandler.GetUsers), authenticate, requireAdmin)).Methods("GET")
	router.Handle("/api/users/{userId}/role",
		chain(http.HandlerFunc(userHandler.UpdateUserRole), authenticate, requireAdmin)).Methods("PATCH")

	// study sessions
	router.Handle("/api/create-session",
		chain(http.HandlerFunc(sessionHandler.CreateSession), authenticate, requireTutor)).Methods("POST")
	router.HandleFunc("/api/study-sessions/approved", sessionHandler.GetApprovedSessions).Methods("GET")
	router.Handle("/api/study-sessions/approved/tutor",
		chain(http.HandlerFunc(sessionHandler.GetApprovedSessionsByTutor), authenticate, requireTutor)).Methods("GET")
	router.Handle("/api/my-sessions",
		chain(http.HandlerFunc(sessionHandler.GetMySessions), authenticate, requireTutor)).Methods("GET")
	router.Handle("/api/sessions",
		chain(http.HandlerFunc(sessionHandler.GetAllSessions), authenticate, requireAdmin)).Methods("GET")
	router.Handle("/api/sessions/resubmit/{sessionId}",
		chain(http.HandlerFunc(sessionHandler.ResubmitSession), authenticate, requireTutor)).Methods("PATCH")
	router.Handle("/api/sessions/{id}/tutor",
		chain(http.HandlerFunc(sessionHandler.UpdateSessionByTutor), authenticate, requireTutor)).Methods("PATCH")
	router.Handle("/api/sessions/{sessionId}/approve",
		chain(http.HandlerFunc(sessionHandler.ApproveSession), authenticate, requireAdmin)).Methods("PATCH")
	router.Handle("/api/sessions/{id}/reject",
		chain(http.HandlerFunc(sessionHandler.RejectSession), authenticate, requireAdmin)).Methods("PATCH")
	router.Handle("/api/sessions/{id}",
		chain(http.HandlerFunc(sessionHandler.UpdateSessionByAdmin), authenticate, requireAdmin)).Methods("PATCH")
	router.Handle("/api/sessions/{sessionId}",
		chain(http.HandlerFunc(sessionHandler.DeleteSession), authenticate, requireAdmin)).Methods("DELETE")
	router.HandleFunc("/api/sessions/{sessionId}", sessionHandler.GetSession).Methods("GET")

	// reviews
	router.Handle("/api/reviews",
		chain(http.HandlerFunc(reviewHandler.CreateReview), authenticate, requireStudent)).Methods("POST")
	router.HandleFunc("/api/reviews/{sessionId}", reviewHandler.GetReviews).Methods("GET")

	// bookings
	router.Handle("/api/booking",
		chain(http.HandlerFunc(bookingHandler.CreateBooking), authenticate, requireStudent)).Methods("POST")
	router.Handle("/api/booked-sessions",
		chain(http.HandlerFunc(bookingHandler.GetBookedSessions), authenticate, requireStudent)).Methods("GET")

	// materials
	router.Handle("/api/tutor-materials",
		chain(http.HandlerFunc(materialHandler.CreateMaterial), authenticate, requireTutor)).Methods("POST")
	router.Handle("/api/tutor-materials",
		chain(http.HandlerFunc(materialHandler.GetTutorMaterials), authenticate, requireTutor)).Methods("GET")
	router.Handle("/api/materials/all",
		chain(http.HandlerFunc(materialHandler.GetAllMaterials), authenticate, requireAdmin)).Methods("GET")
	router.Handle("/api/materials/{id}",
		chain(http.HandlerFunc(materialHandler.DeleteMaterial), authenticate, requireAdmin)).Methods("DELETE")
	router.Handle("/api/materials",
		chain(http.HandlerFunc(materialHandler.GetMaterialsBySession), authenticate, requireStudent)).Methods("GET")

	// student notes
	router.Handle("/api/student-notes",
		chain(http.HandlerFunc(noteHandler.CreateNote), authenticate, requireStudent)).Methods("POST")
	router.Handle("/api/student-notes",
		chain(http.HandlerFunc(noteHandler.GetNotes), authenticate, requireStudent)).Methods("GET")
	router.Handle("/api/student-notes/{id}",
		chain(http.HandlerFunc(noteHandler.UpdateNote), authenticate, requireStudent)).Methods("PATCH")
	router.Handle("/api/student-notes/{id}",
		chain(http.HandlerFunc(noteHandler.DeleteNote), authenticate, requireStudent)).Methods("DELETE")

	return router
}
