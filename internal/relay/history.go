package relay

import (
	"context"
	"time"

	"street-hoops/internal/store"

	"github.com/rs/zerolog/log"
)

const historyBuffer = 256

type matchWriter interface {
	RecordMatch(ctx context.Context, m store.Match) (string, error)
}

// HistoryRecorder persists finished matches on its own goroutine so a slow
// database never holds up a connection's read loop. Write failures are logged
// and never affect the live rooms.
type HistoryRecorder struct {
	w       matchWriter
	timeout time.Duration
	queue   chan MatchResult
	done    chan struct{}
}

func NewHistoryRecorder(st *store.Store) *HistoryRecorder {
	return newHistoryRecorder(st, historyBuffer)
}

func newHistoryRecorder(w matchWriter, buffer int) *HistoryRecorder {
	return &HistoryRecorder{
		w:       w,
		timeout: 5 * time.Second,
		queue:   make(chan MatchResult, buffer),
		done:    make(chan struct{}),
	}
}

// Start runs the writer until ctx is cancelled. Results queued by then are
// still written before Done is closed.
func (h *HistoryRecorder) Start(ctx context.Context) {
	go func() {
		defer close(h.done)
		for {
			select {
			case res := <-h.queue:
				h.record(res)
			case <-ctx.Done():
				for {
					select {
					case res := <-h.queue:
						h.record(res)
					default:
						return
					}
				}
			}
		}
	}()
}

// Done is closed once the writer has stopped.
func (h *HistoryRecorder) Done() <-chan struct{} {
	return h.done
}

// OnMatchFinished queues res without blocking. A full queue drops it.
func (h *HistoryRecorder) OnMatchFinished(res MatchResult) {
	select {
	case h.queue <- res:
	default:
		metricHistoryDropped.Add(1)
		log.Warn().Str("room_id", res.RoomID).Msg("record_match_dropped")
	}
}

func (h *HistoryRecorder) record(res MatchResult) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	winner := int(res.Winner)
	id, err := h.w.RecordMatch(ctx, store.Match{
		RoomID:     res.RoomID,
		Slot1ID:    res.Slot1,
		Slot2ID:    res.Slot2,
		Score1:     res.Score.P1,
		Score2:     res.Score.P2,
		WinnerSlot: &winner,
		EndReason:  res.Reason,
		StartedAt:  res.StartedAt,
		EndedAt:    res.EndedAt,
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", res.RoomID).Msg("record_match_failed")
		return
	}
	log.Info().Str("match_id", id).Str("room_id", res.RoomID).Str("reason", res.Reason).Msg("match_recorded")
}
