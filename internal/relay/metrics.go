package relay

import "expvar"

var (
	metricConnectionsTotal  = expvar.NewInt("relay_connections_total")
	metricConnectionsActive = expvar.NewInt("relay_connections_active")

	metricMatchesCreated  = expvar.NewInt("relay_matches_created_total")
	metricMatchesStarted  = expvar.NewInt("relay_matches_started_total")
	metricMatchesFinished = expvar.NewInt("relay_matches_finished_total")
	metricMatchRejected   = expvar.NewInt("relay_match_rejected_total")
	metricRoomsTornDown   = expvar.NewInt("relay_rooms_torn_down_total")

	metricMessagesRelayed = expvar.NewInt("relay_messages_relayed_total")
	metricMessagesDropped = expvar.NewInt("relay_messages_dropped_total")

	metricQueueEvicted = expvar.NewInt("relay_queue_evicted_total")
	metricLobbyEvicted = expvar.NewInt("relay_lobby_evicted_total")

	metricHistoryDropped = expvar.NewInt("relay_history_dropped_total")
)
