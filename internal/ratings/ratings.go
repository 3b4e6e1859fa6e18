// Package ratings maintains the derived average-rating fields stored on
// study sessions. Refresh is idempotent, so it is safe to run inline after
// a review insert and again from the periodic reconciliation job.
package ratings

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Jahid-Al-Hasan/EduSync-server/internal/models"
)

// Average returns the mean rating rounded to one decimal place.
func Average(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	mean := float64(total) / float64(len(values))
	return math.Round(mean*10) / 10
}

// Refresh recomputes the stored average rating and review count for one
// session from its reviews. Sessions with no reviews are left untouched.
func Refresh(ctx context.Context, reviews, sessions *mongo.Collection, sessionID string) error {
	objID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return err
	}

	cursor, err := reviews.Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var all []models.Review
	if err := cursor.All(ctx, &all); err != nil {
		return err
	}
	if len(all) == 0 {
		return nil
	}

	values := make([]int, 0, len(all))
	for _, review := range all {
		values = append(values, review.Rating)
	}

	_, err = sessions.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{
			"averageRating": Average(values),
			"reviewCount":   len(all),
		},
	})
	return err
}
