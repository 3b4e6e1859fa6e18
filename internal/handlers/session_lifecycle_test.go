package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// matchedNone mocks an update that found no document.
func matchedNone() bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0})
}

func TestApproveSessionMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown id", func(mt *mtest.T) {
		h := NewSessionHandler(mt.Client, testDB)
		mt.AddMockResponses(matchedNone())

		id := primitive.NewObjectID().Hex()
		req := principalRequest("PATCH", "/api/sessions/"+id+"/approve", map[string]interface{}{
			"registrationFee": 100,
		}, "admin@example.com")
		req = mux.SetURLVars(req, map[string]string{"sessionId": id})

		rec := httptest.NewRecorder()
		h.ApproveSession(rec, req)

		if rec.Code != http.StatusNotFound {
			mt.Fatalf("expected 404 for unknown session, got %d", rec.Code)
		}
	})
}

func TestRejectSessionMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown id", func(mt *mtest.T) {
		h := NewSessionHandler(mt.Client, testDB)
		mt.AddMockResponses(matchedNone())

		id := primitive.NewObjectID().Hex()
		req := principalRequest("PATCH", "/api/sessions/"+id+"/reject", map[string]interface{}{
			"rejectionReason":   "Duplicate listing",
			"rejectionFeedback": "An identical session is already published.",
		}, "admin@example.com")
		req = mux.SetURLVars(req, map[string]string{"id": id})

		rec := httptest.NewRecorder()
		h.RejectSession(rec, req)

		if rec.Code != http.StatusNotFound {
			mt.Fatalf("expected 404 for unknown session, got %d", rec.Code)
		}
	})
}

func TestRejectSessionRequiresFeedback(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing feedback", func(mt *mtest.T) {
		h := NewSessionHandler(mt.Client, testDB)

		id := primitive.NewObjectID().Hex()
		req := principalRequest("PATCH", "/api/sessions/"+id+"/reject", map[string]interface{}{
			"rejectionReason": "Duplicate listing",
		}, "admin@example.com")
		req = mux.SetURLVars(req, map[string]string{"id": id})

		rec := httptest.NewRecorder()
		h.RejectSession(rec, req)

		if rec.Code != http.StatusBadRequest {
			mt.Fatalf("expected 400 without feedback, got %d", rec.Code)
		}
	})
}

func TestResubmitSessionMissing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown id", func(mt *mtest.T) {
		h := NewSessionHandler(mt.Client, testDB)
		mt.AddMockResponses(matchedNone())

		id := primitive.NewObjectID().Hex()
		req := principalRequest("PATCH", "/api/sessions/resubmit/"+id, nil, "tutor@example.com")
		req = mux.SetURLVars(req, map[string]string{"sessionId": id})

		rec := httptest.NewRecorder()
		h.ResubmitSession(rec, req)

		if rec.Code != http.StatusNotFound {
			mt.Fatalf("expected 404 for unknown session, got %d", rec.Code)
		}
	})
}

func TestResubmitSessionAlreadyPending(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no-op update", func(mt *mtest.T) {
		h := NewSessionHandler(mt.Client, testDB)

		// The session matched but the status did not change; resubmission
		// of an already-pending session stays a success.
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))

		id := primitive.NewObjectID().Hex()
		req := principalRequest("PATCH", "/api/sessions/resubmit/"+id, nil, "tutor@example.com")
		req = mux.SetURLVars(req, map[string]string{"sessionId": id})

		rec := httptest.NewRecorder()
		h.ResubmitSession(rec, req)

		if rec.Code != http.StatusOK {
			mt.Fatalf("expected 200 for already-pending session, got %d", rec.Code)
		}
	})
}
