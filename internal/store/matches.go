package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const matchColumns = `id, room_id, slot1_conn_id, slot2_conn_id, score_1, score_2, winner_slot, end_reason, started_at, ended_at, created_at`

// RecordMatch inserts a finished match, assigning an id when m has none.
func (s *Store) RecordMatch(ctx context.Context, m Match) (string, error) {
	if m.ID == "" {
		m.ID = NewID()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO matches (id, room_id, slot1_conn_id, slot2_conn_id, score_1, score_2, winner_slot, end_reason, started_at, ended_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.RoomID, m.Slot1ID, m.Slot2ID, m.Score1, m.Score2,
		slotParam(m.WinnerSlot), m.EndReason,
		timestamptzParam(m.StartedAt), timestamptzParam(m.EndedAt),
	)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (s *Store) GetMatch(ctx context.Context, id string) (*Match, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	m, err := scanMatch(row)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &m, nil
}

// ListRecentMatches returns matches newest first.
func (s *Store) ListRecentMatches(ctx context.Context, limit, offset int) ([]Match, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT `+matchColumns+`
		FROM matches
		ORDER BY ended_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) CountMatches(ctx context.Context) (int64, error) {
	var n int64
	err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM matches`).Scan(&n)
	return n, err
}

func scanMatch(row pgx.Row) (Match, error) {
	var (
		m                       Match
		winner                  pgtype.Int4
		started, ended, created pgtype.Timestamptz
	)
	err := row.Scan(&m.ID, &m.RoomID, &m.Slot1ID, &m.Slot2ID, &m.Score1, &m.Score2,
		&winner, &m.EndReason, &started, &ended, &created)
	if err != nil {
		return Match{}, err
	}
	m.WinnerSlot = intPtrVal(winner)
	m.StartedAt = started.Time
	m.EndedAt = ended.Time
	m.CreatedAt = created.Time
	return m, nil
}
