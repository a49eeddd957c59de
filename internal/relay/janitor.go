package relay

import (
	"context"
	"time"

	"street-hoops/internal/protocol"

	"github.com/rs/zerolog/log"
)

// StartJanitor evicts stale queue entries and idle lobbies every interval.
// Active rooms are never evicted.
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				r.Sweep(now)
			}
		}
	}()
}

// Sweep runs one eviction pass and returns how many queue entries and rooms
// it removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	if ttl := r.opts.QueueTTL; ttl > 0 {
		kept := r.waiting[:0]
		for _, m := range r.waiting {
			if now.Sub(m.queuedAt) < ttl {
				kept = append(kept, m)
				continue
			}
			m.queued = false
			m.peer.Send(protocol.NewNotice(protocol.EventSearchTimeout))
			metricQueueEvicted.Add(1)
			log.Info().Str("conn_id", m.peer.ID()).Dur("waited", now.Sub(m.queuedAt)).Msg("queue_evicted")
			evicted++
		}
		r.waiting = kept
	}

	if ttl := r.opts.LobbyTTL; ttl > 0 {
		for _, rm := range r.rooms {
			if rm.State != StateReadyLobby || now.Sub(rm.createdAt) < ttl {
				continue
			}
			rm.broadcast(protocol.NewNotice(protocol.EventLobbyExpired))
			metricLobbyEvicted.Add(1)
			log.Info().Str("room_id", rm.ID).Msg("lobby_evicted")
			r.teardownLocked(rm, "lobby_expired", 0)
			evicted++
		}
	}
	return evicted
}
