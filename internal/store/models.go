package store

import "time"

type Match struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	Slot1ID    string    `json:"slot1_conn_id"`
	Slot2ID    string    `json:"slot2_conn_id"`
	Score1     int       `json:"score_1"`
	Score2     int       `json:"score_2"`
	WinnerSlot *int      `json:"winner_slot"`
	EndReason  string    `json:"end_reason"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	CreatedAt  time.Time `json:"created_at"`
}
