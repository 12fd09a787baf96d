package exercises

import (
	"github.com/google/uuid"
)

// Category classifies an exercise by training intent.
type Category string

const (
	CategoryMobility   Category = "Movilidad"
	CategoryStrength   Category = "Fuerza"
	CategoryBreathing  Category = "Respiración"
	CategoryActivation Category = "Activación"
	CategoryStretching Category = "Estiramiento"
	CategoryCardio     Category = "Cardio"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryMobility, CategoryStrength, CategoryBreathing,
		CategoryActivation, CategoryStretching, CategoryCardio:
		return true
	}
	return false
}

// Exercise is a catalogue entry the trainer assembles workouts from.
type Exercise struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Category     Category  `json:"category"`
	VideoURL     string    `json:"videoUrl"`
	Instructions string    `json:"instructions"`
	Tags         []string  `json:"tags"`
	Image        string    `json:"image"`
}
