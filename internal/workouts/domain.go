package workouts

import (
	"time"

	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/exercises"
)

// Status tracks where an assigned routine sits in its lifecycle.
type Status string

const (
	StatusActive    Status = "Activo"
	StatusCompleted Status = "Completado"
	StatusArchived  Status = "Archivado"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// DefaultOrder places a workout at the end of the client's plan unless the
// trainer assigns an explicit slot.
const DefaultOrder = 100

// Line is one prescribed exercise inside an assigned workout.
type Line struct {
	ExerciseID uuid.UUID           `json:"exerciseId"`
	Sets       string              `json:"sets"`
	Reps       string              `json:"reps"`
	Rest       string              `json:"rest"`
	Notes      string              `json:"notes"`
	Exercise   *exercises.Exercise `json:"exercise,omitempty"`
}

// Workout is a routine assigned to one client.
type Workout struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"clientId"`
	Title        string    `json:"title"`
	DateAssigned time.Time `json:"dateAssigned"`
	Lines        []Line    `json:"exercises"`
	Status       Status    `json:"status"`
	Order        int       `json:"order"`
}
