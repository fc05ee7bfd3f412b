package domain

import "time"

// Workout is a named split owned by one user (accountId).
type Workout struct {
	ID        string    `bson:"_id" json:"workoutId"`
	Name      string    `bson:"workout_name" json:"workout_name"`
	UserID    string    `bson:"users" json:"users"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// WorkoutDetails is a workout together with its exercises in creation order.
type WorkoutDetails struct {
	Workout
	Exercises []Exercise `json:"exercises"`
}
