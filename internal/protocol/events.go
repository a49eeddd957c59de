package protocol

// Client to server events.
const (
	EventFindMatch       = "findMatch"
	EventCancelSearch    = "cancelSearch"
	EventPlayerReady     = "playerReady"
	EventLeaveLobby      = "leaveLobby"
	EventLeaveRoom       = "leaveRoom"
	EventPlayerMove      = "playerMove"
	EventBallUpdate      = "ballUpdate"
	EventBallPickup      = "ballPickup"
	EventPlayerScored    = "playerScored"
	EventPlayerShoot     = "playerShoot"
	EventGameStateUpdate = "gameStateUpdate"
)

// Server to client events.
const (
	EventConnected            = "connected"
	EventWaitingForOpponent   = "waitingForOpponent"
	EventMatchFound           = "matchFound"
	EventMatchRejected        = "matchRejected"
	EventSearchTimeout        = "searchTimeout"
	EventOpponentReadyState   = "opponentReadyState"
	EventBothReady            = "bothReady"
	EventOpponentLeftLobby    = "opponentLeftLobby"
	EventLobbyExpired         = "lobbyExpired"
	EventOpponentMove         = "opponentMove"
	EventBallSync             = "ballSync"
	EventBallPickupSync       = "ballPickupSync"
	EventScoreUpdate          = "scoreUpdate"
	EventOpponentShoot        = "opponentShoot"
	EventGameStateSync        = "gameStateSync"
	EventGameOver             = "gameOver"
	EventOpponentDisconnected = "opponentDisconnected"
	EventOpponentLeft         = "opponentLeft"
)

// Reasons carried by matchRejected and gameOver.
const (
	ReasonAlreadyInRoom = "already_in_room"
	ReasonScore         = "score"
	ReasonTime          = "time"
)
