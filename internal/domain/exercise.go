package domain

import "time"

// Exercise belongs to exactly one workout.
type Exercise struct {
	ID        string    `bson:"_id" json:"exerciseId"`
	Name      string    `bson:"exercise_name" json:"exercise_name"`
	WorkoutID string    `bson:"workouts" json:"workouts"`
	Position  int       `bson:"position" json:"position"` // order within the workout
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
