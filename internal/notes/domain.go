package notes

import (
	"time"

	"github.com/google/uuid"
)

// Note is a private trainer annotation about one client. Clients never see
// these.
type Note struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"clientId"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
}
