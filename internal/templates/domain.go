package templates

import (
	"time"

	"github.com/google/uuid"

	"github.com/calibra-app/calibra/internal/exercises"
)

// Line is one prescribed exercise inside a template. Sets, reps and rest are
// free text so the trainer can write ranges ("10-12") or material ("Banda
// Roja") without fighting a numeric schema.
type Line struct {
	ExerciseID uuid.UUID           `json:"exerciseId"`
	Sets       string              `json:"sets"`
	Reps       string              `json:"reps"`
	Rest       string              `json:"rest"`
	Notes      string              `json:"notes"`
	Exercise   *exercises.Exercise `json:"exercise,omitempty"`
}

// Template is a reusable routine the trainer assigns to clients as a
// starting point.
type Template struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Lines       []Line    `json:"exercises"`
	CreatedAt   time.Time `json:"createdAt"`
}
