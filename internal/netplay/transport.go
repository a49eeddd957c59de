package netplay

import (
	"context"
	"net/url"
	"sync"
	"time"

	"street-hoops/internal/protocol"

	"github.com/gorilla/websocket"
)

// Sender delivers one client message to the relay.
type Sender interface {
	Send(v any) error
}

// Conn is a websocket connection to the relay speaking one codec.
type Conn struct {
	ws    *websocket.Conn
	codec protocol.Codec
	mu    sync.Mutex
}

// Dial connects to the relay websocket endpoint and negotiates codec through
// the query string.
func Dial(ctx context.Context, rawURL string, codec protocol.Codec) (*Conn, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("codec", codec.Name())
	u.RawQuery = q.Encode()
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return &Conn{ws: ws, codec: codec}, nil
}

func (c *Conn) Codec() protocol.Codec {
	return c.codec
}

func (c *Conn) Send(v any) error {
	b, err := c.codec.Encode(v)
	if err != nil {
		return err
	}
	frame := websocket.TextMessage
	if c.codec.Binary() {
		frame = websocket.BinaryMessage
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(frame, b)
}

// ReadFrame blocks for the next relay frame.
func (c *Conn) ReadFrame() ([]byte, error) {
	_, b, err := c.ws.ReadMessage()
	return b, err
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.ws.SetReadDeadline(t)
}

func (c *Conn) Close() error {
	c.mu.Lock()
	_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.mu.Unlock()
	return c.ws.Close()
}
