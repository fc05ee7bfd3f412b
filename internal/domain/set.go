package domain

import "time"

// Set is one logged weight/reps entry for an exercise in a given week.
// Sets are append-only.
type Set struct {
	ID         string    `bson:"_id" json:"setId"`
	Weight     float64   `bson:"weight" json:"weight"`
	Reps       int       `bson:"reps" json:"reps"`
	Week       int       `bson:"week" json:"week"`
	ExerciseID string    `bson:"exercises" json:"exercises"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	Seq        int64     `bson:"seq" json:"-"` // tie-break for equal createdAt
}
