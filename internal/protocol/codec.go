package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var ErrUnknownCodec = errors.New("unknown_codec")

// Codec turns messages into websocket frame payloads. Binary codecs are sent
// as binary frames, the others as text frames.
type Codec interface {
	Name() string
	Binary() bool
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string                    { return "json" }
func (jsonCodec) Binary() bool                    { return false }
func (jsonCodec) Encode(v any) ([]byte, error)    { return json.Marshal(v) }
func (jsonCodec) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

// msgpackCodec reuses the json struct tags so both codecs share one schema.
type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }
func (msgpackCodec) Binary() bool { return true }

func (msgpackCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Decode(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

var (
	JSON    Codec = jsonCodec{}
	MsgPack Codec = msgpackCodec{}
)

// CodecByName resolves a codec name; empty selects JSON.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON, nil
	case "msgpack":
		return MsgPack, nil
	default:
		return nil, ErrUnknownCodec
	}
}

// PeekType decodes only the type discriminator of a frame.
func PeekType(c Codec, data []byte) (string, error) {
	var base Base
	if err := c.Decode(data, &base); err != nil {
		return "", err
	}
	return base.Type, nil
}
