package protocol

import "strings"

const roomIDPrefix = "room_"

// RoomID derives the room identifier from the slot 1 and slot 2 connection
// ids, so either participant can reconstruct it.
func RoomID(slot1ConnID, slot2ConnID string) string {
	return roomIDPrefix + slot1ConnID + "_" + slot2ConnID
}

// ParseRoomID splits a room id produced by RoomID. Connection ids must not
// contain underscores for the split to be unambiguous.
func ParseRoomID(roomID string) (slot1ConnID, slot2ConnID string, ok bool) {
	rest, found := strings.CutPrefix(roomID, roomIDPrefix)
	if !found {
		return "", "", false
	}
	a, b, found := strings.Cut(rest, "_")
	if !found || a == "" || b == "" || strings.Contains(b, "_") {
		return "", "", false
	}
	return a, b, true
}
