package protocol

import (
	"encoding/json"
	"testing"

	"street-hoops/internal/perspective"
)

func TestScoreUpdateWireShape(t *testing.T) {
	msg := ScoreUpdate{Type: EventScoreUpdate, Score: Scoreboard{P1: 3}, Scorer: 1, Points: 3}
	b, err := JSON.Encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	score, ok := raw["score"].(map[string]any)
	if !ok {
		t.Fatalf("score missing: %s", b)
	}
	if score["1"] != float64(3) || score["2"] != float64(0) {
		t.Fatalf("score = %v, want {1:3,2:0}", score)
	}
}

func TestEmbeddedFieldsAreFlat(t *testing.T) {
	msg := PlayerMove{Type: EventPlayerMove, RoomID: "room_a_b", AvatarState: AvatarState{X: 600, Y: 500, IsGrounded: true}}
	b, err := JSON.Encode(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(b, &raw)
	if raw["x"] != float64(600) || raw["isGrounded"] != true || raw["roomId"] != "room_a_b" {
		t.Fatalf("unexpected wire shape: %s", b)
	}
}

func TestCodecsDecodeBallUpdate(t *testing.T) {
	in := BallUpdate{
		Type:   EventBallUpdate,
		RoomID: "room_a_b",
		BallState: BallState{
			X: 320, Y: 410, VX: -120, VY: -300, InAir: true,
			ShotFrom: &ShotFrom{X: 600, Y: 500, Shooter: perspective.LabelSelf, TargetHoop: 100},
		},
	}
	for _, c := range []Codec{JSON, MsgPack} {
		b, err := c.Encode(in)
		if err != nil {
			t.Fatalf("%s encode: %v", c.Name(), err)
		}
		typ, err := PeekType(c, b)
		if err != nil || typ != EventBallUpdate {
			t.Fatalf("%s PeekType = %q, %v", c.Name(), typ, err)
		}
		var out BallUpdate
		if err := c.Decode(b, &out); err != nil {
			t.Fatalf("%s decode: %v", c.Name(), err)
		}
		if out.RoomID != in.RoomID || out.X != in.X || out.VY != in.VY || !out.InAir {
			t.Fatalf("%s decoded %+v", c.Name(), out)
		}
		if out.ShotFrom == nil || out.ShotFrom.Shooter != perspective.LabelSelf || out.ShotFrom.TargetHoop != 100 {
			t.Fatalf("%s shotFrom = %+v", c.Name(), out.ShotFrom)
		}
		if out.Owner != perspective.LabelNone {
			t.Fatalf("%s owner = %q", c.Name(), out.Owner)
		}
	}
}

func TestNullOwnerDecodesAsNone(t *testing.T) {
	var out BallSync
	if err := JSON.Decode([]byte(`{"type":"ballSync","owner":null,"shotFrom":null}`), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Owner != perspective.LabelNone || out.ShotFrom != nil {
		t.Fatalf("unexpected %+v", out)
	}
}

func TestCodecByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "json", false},
		{"JSON", "json", false},
		{"msgpack", "msgpack", false},
		{"protobuf", "", true},
	}
	for _, tt := range tests {
		c, err := CodecByName(tt.name)
		if tt.wantErr {
			if err != ErrUnknownCodec {
				t.Fatalf("CodecByName(%q) err = %v", tt.name, err)
			}
			continue
		}
		if err != nil || c.Name() != tt.want {
			t.Fatalf("CodecByName(%q) = %v, %v", tt.name, c, err)
		}
	}
	if !MsgPack.Binary() || JSON.Binary() {
		t.Fatal("frame kinds swapped")
	}
}

func TestRoomIDRoundTrip(t *testing.T) {
	id := RoomID("01HAAA", "01HBBB")
	if id != "room_01HAAA_01HBBB" {
		t.Fatalf("RoomID = %q", id)
	}
	a, b, ok := ParseRoomID(id)
	if !ok || a != "01HAAA" || b != "01HBBB" {
		t.Fatalf("ParseRoomID = %q %q %v", a, b, ok)
	}
	for _, bad := range []string{"", "room_", "room_a", "lobby_a_b", "room_a_b_c"} {
		if _, _, ok := ParseRoomID(bad); ok {
			t.Fatalf("ParseRoomID(%q) accepted", bad)
		}
	}
}

func TestScoreboardHelpers(t *testing.T) {
	var s Scoreboard
	s.Add(perspective.Slot2, 5)
	s.Add(perspective.SlotNone, 9)
	if s.Get(perspective.Slot2) != 5 || s.Get(perspective.Slot1) != 0 {
		t.Fatalf("unexpected %+v", s)
	}
	if s.Leader() != perspective.Slot2 {
		t.Fatalf("Leader = %d", s.Leader())
	}
	s.Add(perspective.Slot1, 5)
	if s.Leader() != perspective.SlotNone {
		t.Fatal("tie must have no leader")
	}
}
