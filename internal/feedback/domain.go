package feedback

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseEntry records the load a client actually used on one exercise.
// The name is denormalised so history stays readable after the catalogue
// entry is deleted. WeightUsed is free text ("20kg", "Banda Roja").
type ExerciseEntry struct {
	ExerciseID   uuid.UUID `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	WeightUsed   string    `json:"weightUsed"`
}

// Feedback is a client's report after completing a workout. RPE is the
// perceived exertion on a 1 to 10 scale.
type Feedback struct {
	ID           uuid.UUID       `json:"id"`
	ClientID     uuid.UUID       `json:"clientId"`
	WorkoutID    uuid.UUID       `json:"workoutId"`
	Date         time.Time       `json:"date"`
	RPE          int             `json:"rpe"`
	Comments     string          `json:"comments"`
	Exercises    []ExerciseEntry `json:"exercisesData"`
	WorkoutTitle string          `json:"workoutTitle,omitempty"`
}
