package relay

import "errors"

var (
	ErrAlreadyInRoom = errors.New("already_in_room")
	ErrUnknownConn   = errors.New("unknown_conn")
)
