package dataflow

import (
	"sort"

	"github.com/pkg/errors"
)

// Piece is one interchangeable part of a builder pipe: the kind selects the
// implementation, the options parameterise it.
type Piece struct {
	Kind string
	Opts Args
}

// Pieces is the piece table of a builder pipe. The slot names are declared
// at construction time, configuring an undeclared slot is an error.
type Pieces struct {
	slots map[string]Piece
}

// NewPieces declares the given slot names, all unconfigured.
func NewPieces(slots ...string) *Pieces {
	ps := &Pieces{slots: make(map[string]Piece, len(slots))}
	for _, s := range slots {
		ps.slots[s] = Piece{}
	}

	return ps
}

// Set configures a declared slot.
func (ps *Pieces) Set(slot, kind string, opts Args) error {
	if _, ok := ps.slots[slot]; !ok {
		return errors.Wrap(ErrUnknownPiece, slot)
	}

	ps.slots[slot] = Piece{Kind: kind, Opts: opts}

	return nil
}

// Get returns the piece configured for a slot. The second return reports
// whether the slot is declared and configured.
func (ps *Pieces) Get(slot string) (Piece, bool) {
	pc, ok := ps.slots[slot]
	if !ok || pc.Kind == "" {
		return pc, false
	}

	return pc, true
}

// Slots lists the declared slot names, sorted.
func (ps *Pieces) Slots() []string {
	out := make([]string, 0, len(ps.slots))
	for s := range ps.slots {
		out = append(out, s)
	}

	sort.Strings(out)

	return out
}

// Clone returns a new table with the same slots and pieces. The option bags
// are shared between the two tables.
func (ps *Pieces) Clone() *Pieces {
	out := &Pieces{slots: make(map[string]Piece, len(ps.slots))}
	for s, pc := range ps.slots {
		out.slots[s] = pc
	}

	return out
}
