package jobs

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/ratings"
)

// StartRatingRefresh periodically recomputes every session's stored average
// rating and review count. Review insert and aggregate refresh are not
// atomic, so a crash between the two leaves the aggregate stale; this job
// heals it. Disabled when interval is zero or negative.
func StartRatingRefresh(ctx context.Context, client *mongo.Client, dbName string, interval time.Duration) {
	if interval <= 0 {
		return
	}

	db := client.Database(dbName)
	reviews := db.Collection("reviews")
	sessions := db.Collection("study-sessions")

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
				if err := refreshAll(tickCtx, reviews, sessions); err != nil {
					log.Printf("rating refresh error: %v", err)
				}
				cancel()
			}
		}
	}()
}

func refreshAll(ctx context.Context, reviews, sessions *mongo.Collection) error {
	ids, err := reviews.Distinct(ctx, "sessionId", bson.M{})
	if err != nil {
		return err
	}

	for _, id := range ids {
		sessionID, ok := id.(string)
		if !ok {
			continue
		}
		if err := ratings.Refresh(ctx, reviews, sessions, sessionID); err != nil {
			log.Printf("rating refresh for session %s: %v", sessionID, err)
		}
	}
	return nil
}
