package evaluations

import (
	"time"

	"github.com/google/uuid"
)

// Type distinguishes the first body reading from follow-ups.
type Type string

const (
	TypeInitial      Type = "Inicial"
	TypeReevaluation Type = "Re-evaluación"
	TypeFollowUp     Type = "Seguimiento"
)

func (t Type) Valid() bool {
	switch t {
	case TypeInitial, TypeReevaluation, TypeFollowUp:
		return true
	}
	return false
}

// Body zones a reading can flag for priority work.
var priorityZones = map[string]bool{
	"Hombro": true, "Raquis": true, "Cadera": true, "Rodilla": true,
	"Tobillo": true, "Core": true, "Pie": true, "Codo": true, "Muñeca": true,
}

// ValidZone reports whether the zone is a known body area.
func ValidZone(zone string) bool {
	return priorityZones[zone]
}

// Training focus the reading recommends for the next block.
var focuses = map[Focus]bool{
	FocusMaxStrength: true, FocusHypertrophy: true, FocusMobility: true,
	FocusMotorControl: true, FocusIntegration: true, FocusPerformance: true,
	FocusRehab: true,
}

type Focus string

const (
	FocusMaxStrength  Focus = "Fuerza máxima"
	FocusHypertrophy  Focus = "Hipertrofia"
	FocusMobility     Focus = "Movilidad"
	FocusMotorControl Focus = "Control motor"
	FocusIntegration  Focus = "Integración"
	FocusPerformance  Focus = "Rendimiento"
	FocusRehab        Focus = "Readaptación"
)

func (f Focus) Valid() bool {
	return focuses[f]
}

// Evaluation is a trainer's body reading for one client: what was observed
// and the programming decision that follows from it.
type Evaluation struct {
	ID            uuid.UUID `json:"id"`
	ClientID      uuid.UUID `json:"clientId"`
	Date          time.Time `json:"date"`
	Type          Type      `json:"type"`
	PriorityZones []string  `json:"priorityZones"`
	Focus         Focus     `json:"focus"`
	Notes         string    `json:"notes"`
	FileURL       string    `json:"fileUrl"`
}
