package relay

import (
	"net/http"
	"sync"
	"time"

	"street-hoops/internal/protocol"
	"street-hoops/internal/store"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	defaultSendBuffer = 64
	defaultReadLimit  = 16 << 10
)

// Server upgrades HTTP requests to relay connections.
type Server struct {
	registry   *Registry
	upgrader   websocket.Upgrader
	sendBuffer int
	readLimit  int64
}

func NewServer(reg *Registry, sendBuffer int, readLimit int64) *Server {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	if readLimit <= 0 {
		readLimit = defaultReadLimit
	}
	return &Server{
		registry:   reg,
		upgrader:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		sendBuffer: sendBuffer,
		readLimit:  readLimit,
	}
}

// client is one websocket connection. It implements Peer.
type client struct {
	id    string
	conn  *websocket.Conn
	codec protocol.Codec
	send  chan []byte
	done  chan struct{}
	once  sync.Once
}

func (c *client) ID() string { return c.id }

// Send encodes v and queues it. A client whose buffer is full is too slow for
// realtime play and is disconnected.
func (c *client) Send(v any) {
	data, err := c.codec.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("conn_id", c.id).Msg("encode_failed")
		return
	}
	select {
	case <-c.done:
	case c.send <- data:
	default:
		metricMessagesDropped.Add(1)
		log.Warn().Str("conn_id", c.id).Msg("send_buffer_full")
		c.close()
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	codec, err := protocol.CodecByName(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{
		id:    store.NewID(),
		conn:  conn,
		codec: codec,
		send:  make(chan []byte, s.sendBuffer),
		done:  make(chan struct{}),
	}
	log.Info().Str("conn_id", c.id).Str("codec", codec.Name()).Str("remote", r.RemoteAddr).Msg("conn_open")

	go s.writeLoop(c)
	s.registry.Connect(c)
	s.readLoop(c)
}

func (s *Server) readLoop(c *client) {
	defer func() {
		s.registry.Disconnect(c)
		c.close()
		log.Info().Str("conn_id", c.id).Msg("conn_closed")
	}()

	c.conn.SetReadLimit(s.readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("conn_id", c.id).Msg("conn_read_error")
			}
			return
		}
		s.dispatch(c, msg)
	}
}

func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	frameType := websocket.TextMessage
	if c.codec.Binary() {
		frameType = websocket.BinaryMessage
	}
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(frameType, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// dispatch routes one inbound frame. Malformed frames and unknown types are
// dropped.
func (s *Server) dispatch(c *client, msg []byte) {
	typ, err := protocol.PeekType(c.codec, msg)
	if err != nil {
		log.Debug().Str("conn_id", c.id).Msg("malformed_frame")
		return
	}
	reg := s.registry
	switch typ {
	case protocol.EventFindMatch:
		_ = reg.RequestMatch(c)
	case protocol.EventCancelSearch:
		reg.CancelSearch(c)
	case protocol.EventPlayerReady:
		var m protocol.PlayerReady
		if decode(c, msg, &m) {
			reg.SetReady(c, m.RoomID, m.Ready)
		}
	case protocol.EventLeaveLobby, protocol.EventLeaveRoom:
		var m protocol.RoomRef
		if decode(c, msg, &m) {
			reg.Leave(c, m.RoomID)
		}
	case protocol.EventPlayerMove:
		var m protocol.PlayerMove
		if decode(c, msg, &m) {
			reg.RelayMove(c, m.RoomID, m.AvatarState)
		}
	case protocol.EventBallUpdate:
		var m protocol.BallUpdate
		if decode(c, msg, &m) {
			reg.RelayBall(c, m.RoomID, m.BallState)
		}
	case protocol.EventBallPickup:
		var m protocol.BallPickup
		if decode(c, msg, &m) {
			reg.RelayPickup(c, m.RoomID, m.Owner)
		}
	case protocol.EventPlayerShoot:
		var m protocol.PlayerShoot
		if decode(c, msg, &m) {
			reg.RelayShoot(c, m.RoomID, m.ShotMeter)
		}
	case protocol.EventGameStateUpdate:
		var m protocol.GameStateUpdate
		if decode(c, msg, &m) {
			reg.UpdateGameState(c, m)
		}
	case protocol.EventPlayerScored:
		var m protocol.PlayerScored
		if decode(c, msg, &m) {
			reg.ReportScore(c, m)
		}
	default:
		log.Debug().Str("conn_id", c.id).Str("type", typ).Msg("unknown_event")
	}
}

func decode(c *client, msg []byte, v any) bool {
	if err := c.codec.Decode(msg, v); err != nil {
		log.Debug().Err(err).Str("conn_id", c.id).Msg("malformed_frame")
		return false
	}
	return true
}
