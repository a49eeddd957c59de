// Package perspective maps room slots to the viewer-relative labels each
// client uses for its own avatar and its opponent.
//
// A slot is permanent for the life of a room. A label is relative: the same
// slot is Self on its own connection and Opponent on the peer's. Translation
// between perspectives is a pure relabeling and never touches coordinates.
package perspective

import "errors"

// Slot is a room-scoped participant position.
type Slot int

const (
	SlotNone Slot = 0
	Slot1    Slot = 1
	Slot2    Slot = 2
)

var ErrInvalidSlot = errors.New("invalid_slot")

// ParseSlot accepts the wire form 1 or 2.
func ParseSlot(v int) (Slot, error) {
	s := Slot(v)
	if !s.Valid() {
		return SlotNone, ErrInvalidSlot
	}
	return s, nil
}

func (s Slot) Valid() bool {
	return s == Slot1 || s == Slot2
}

// Other returns the opposite slot. SlotNone maps to itself.
func (s Slot) Other() Slot {
	switch s {
	case Slot1:
		return Slot2
	case Slot2:
		return Slot1
	default:
		return SlotNone
	}
}

// Index is the zero-based array position of a valid slot.
func (s Slot) Index() int {
	return int(s) - 1
}

// Label is a viewer-relative reference to a participant.
type Label string

const (
	LabelNone     Label = ""
	LabelSelf     Label = "self"
	LabelOpponent Label = "opponent"
)

// Normalize folds unknown wire values into LabelNone.
func (l Label) Normalize() Label {
	switch l {
	case LabelSelf, LabelOpponent:
		return l
	default:
		return LabelNone
	}
}

// Flip swaps Self and Opponent. It is total and involutive: Flip(Flip(l)) == l
// for every normalized label.
func Flip(l Label) Label {
	switch l.Normalize() {
	case LabelSelf:
		return LabelOpponent
	case LabelOpponent:
		return LabelSelf
	default:
		return LabelNone
	}
}

// LabelFor returns how viewer sees owner.
func LabelFor(owner, viewer Slot) Label {
	if !owner.Valid() || !viewer.Valid() {
		return LabelNone
	}
	if owner == viewer {
		return LabelSelf
	}
	return LabelOpponent
}

// SlotFor resolves a label written from viewer's perspective back to a slot.
func SlotFor(l Label, viewer Slot) Slot {
	if !viewer.Valid() {
		return SlotNone
	}
	switch l.Normalize() {
	case LabelSelf:
		return viewer
	case LabelOpponent:
		return viewer.Other()
	default:
		return SlotNone
	}
}

// Relabel converts a label written by the from slot into the to slot's
// perspective.
func Relabel(l Label, from, to Slot) Label {
	return LabelFor(SlotFor(l, from), to)
}
