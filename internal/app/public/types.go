package public

import "time"

type RoomItem struct {
	ID            string    `json:"id"`
	State         string    `json:"state"`
	Slot1         string    `json:"slot1_conn_id"`
	Slot2         string    `json:"slot2_conn_id"`
	Ready1        bool      `json:"ready_1"`
	Ready2        bool      `json:"ready_2"`
	Score1        int       `json:"score_1"`
	Score2        int       `json:"score_2"`
	BallAuthority int       `json:"ball_authority_slot"`
	TimeRemaining float64   `json:"time_remaining"`
	CreatedAt     time.Time `json:"created_at"`
}

type RoomsResponse struct {
	Items []RoomItem `json:"items"`
}

type StatsResponse struct {
	Connections    int    `json:"connections"`
	Waiting        int    `json:"waiting"`
	Lobby          int    `json:"lobby_rooms"`
	Active         int    `json:"active_rooms"`
	HistoryEnabled bool   `json:"history_enabled"`
	MatchesPlayed  *int64 `json:"matches_played,omitempty"`
}

type MatchItem struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	Slot1      string    `json:"slot1_conn_id"`
	Slot2      string    `json:"slot2_conn_id"`
	Score1     int       `json:"score_1"`
	Score2     int       `json:"score_2"`
	WinnerSlot *int      `json:"winner_slot"`
	EndReason  string    `json:"end_reason"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

type MatchesResponse struct {
	Items  []MatchItem `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}
