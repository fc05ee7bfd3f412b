package domain

import "time"

// Export records one history file written to object storage for an account.
type Export struct {
	ID           string    `bson:"_id" json:"exportId"`
	AccountID    string    `bson:"accountId" json:"accountId"`
	ObjectKey    string    `bson:"objectKey" json:"objectKey"`
	ContentType  string    `bson:"contentType" json:"contentType"`
	Size         int64     `bson:"size" json:"size"`
	WorkoutCount int       `bson:"workoutCount" json:"workoutCount"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
