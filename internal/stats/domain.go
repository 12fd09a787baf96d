package stats

import (
	"time"

	"github.com/google/uuid"
)

// Overview is the dashboard headline block.
type Overview struct {
	TotalClients   int `json:"totalClients"`
	TotalExercises int `json:"totalExercises"`
	ActiveWorkouts int `json:"activeWorkouts"`
	RecentFeedback int `json:"recentFeedback"`
}

// ActivityEntry is one recent feedback report with enough client and
// workout context to render a feed row.
type ActivityEntry struct {
	ID            uuid.UUID `json:"id"`
	ClientID      uuid.UUID `json:"clientId"`
	ClientName    string    `json:"clientName"`
	ClientSurname string    `json:"clientSurname"`
	ClientAvatar  string    `json:"clientAvatar"`
	WorkoutTitle  string    `json:"workoutTitle"`
	RPE           int       `json:"rpe"`
	Comments      string    `json:"comments"`
	Date          time.Time `json:"date"`
}

// RPEPoint is one sample on the exertion trend chart.
type RPEPoint struct {
	RPE  int       `json:"rpe"`
	Date time.Time `json:"date"`
}

// Activity is the recent-activity block: the latest reports newest first
// and the RPE trend oldest first, ready to chart left to right.
type Activity struct {
	RecentFeedbacks []ActivityEntry `json:"recentFeedbacks"`
	RPETrend        []RPEPoint      `json:"rpeTrend"`
}
