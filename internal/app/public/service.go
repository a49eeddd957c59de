package public

import (
	"context"
	"errors"

	"street-hoops/internal/relay"
	"street-hoops/internal/store"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// RoomSource is the live relay state.
type RoomSource interface {
	Rooms() []relay.RoomSummary
	Stats() relay.Stats
}

// MatchStore is the match history. It is optional.
type MatchStore interface {
	ListRecentMatches(ctx context.Context, limit, offset int) ([]store.Match, error)
	CountMatches(ctx context.Context) (int64, error)
	GetMatch(ctx context.Context, id string) (*store.Match, error)
}

type Service struct {
	rooms   RoomSource
	matches MatchStore
}

// NewService builds the read side. A nil store disables history.
func NewService(rooms RoomSource, st *store.Store) *Service {
	s := &Service{rooms: rooms}
	if st != nil {
		s.matches = st
	}
	return s
}

func (s *Service) Rooms(_ context.Context) (*RoomsResponse, error) {
	items := s.rooms.Rooms()
	out := make([]RoomItem, 0, len(items))
	for _, it := range items {
		out = append(out, RoomItem{
			ID:            it.ID,
			State:         string(it.State),
			Slot1:         it.Slot1,
			Slot2:         it.Slot2,
			Ready1:        it.Ready[0],
			Ready2:        it.Ready[1],
			Score1:        it.Score.P1,
			Score2:        it.Score.P2,
			BallAuthority: it.BallAuthority,
			TimeRemaining: it.TimeRemaining,
			CreatedAt:     it.CreatedAt,
		})
	}
	return &RoomsResponse{Items: out}, nil
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	st := s.rooms.Stats()
	resp := &StatsResponse{
		Connections:    st.Connections,
		Waiting:        st.Waiting,
		Lobby:          st.Lobby,
		Active:         st.Active,
		HistoryEnabled: s.matches != nil,
	}
	if s.matches != nil {
		n, err := s.matches.CountMatches(ctx)
		if err != nil {
			return nil, err
		}
		resp.MatchesPlayed = &n
	}
	return resp, nil
}

func (s *Service) Matches(ctx context.Context, limit, offset int) (*MatchesResponse, error) {
	if s.matches == nil {
		return nil, ErrStoreUnavailable
	}
	limit, offset = clampPage(limit, offset)
	total, err := s.matches.CountMatches(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.matches.ListRecentMatches(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]MatchItem, 0, len(items))
	for _, it := range items {
		out = append(out, toMatchItem(it))
	}
	return &MatchesResponse{Items: out, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *Service) Match(ctx context.Context, id string) (*MatchItem, error) {
	if id == "" {
		return nil, ErrInvalidRequest
	}
	if s.matches == nil {
		return nil, ErrStoreUnavailable
	}
	m, err := s.matches.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	item := toMatchItem(*m)
	return &item, nil
}

func toMatchItem(m store.Match) MatchItem {
	return MatchItem{
		ID:         m.ID,
		RoomID:     m.RoomID,
		Slot1:      m.Slot1ID,
		Slot2:      m.Slot2ID,
		Score1:     m.Score1,
		Score2:     m.Score2,
		WinnerSlot: m.WinnerSlot,
		EndReason:  m.EndReason,
		StartedAt:  m.StartedAt,
		EndedAt:    m.EndedAt,
	}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
