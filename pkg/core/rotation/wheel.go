// Package rotation holds the round-robin pointer shared by the weekly
// duty and on-call generators. Both rotations are the same machine, a
// cursor over the roster advanced one member at a time, differing only
// in where the cursor comes from (history scan vs persisted singleton)
// and in their cold-start convention.
package rotation

import "github.com/jcallaghan/duty-rota/pkg/db"

// Wheel is a round-robin cursor over a fixed roster snapshot. Only the
// generation pass holding the transaction may advance it.
type Wheel struct {
	roster []db.Person
	last   int64
}

// New creates a wheel whose last-assigned member is lastID. The roster
// must be non-empty; rotation order is the slice order.
func New(roster []db.Person, lastID int64) *Wheel {
	return &Wheel{roster: roster, last: lastID}
}

// ColdStartFirst is the scan-derived convention (weekly duty): with no
// history the pointer rests on the first member, so the first computed
// occupant is the second member.
func ColdStartFirst(roster []db.Person) int64 {
	return roster[0].ID
}

// ColdStartLast is the persisted-cursor convention (on-call): a fresh
// cursor is seeded with the last member, so the first computed occupant
// is the first member.
func ColdStartLast(roster []db.Person) int64 {
	return roster[len(roster)-1].ID
}

// Peek returns the member that Next would assign, without advancing.
func (w *Wheel) Peek() db.Person {
	return w.nextAfter(w.last)
}

// Next returns the next member in rotation order and advances the
// cursor to them. A roster of size one always returns that one person.
func (w *Wheel) Next() db.Person {
	p := w.nextAfter(w.last)
	w.last = p.ID
	return p
}

// Advance moves the cursor to the given member, adopting an assignment
// that already exists in storage.
func (w *Wheel) Advance(id int64) {
	w.last = id
}

// Last returns the current cursor value.
func (w *Wheel) Last() int64 {
	return w.last
}

// nextAfter finds id in the roster and returns the following member,
// wrapping at the end. An id no longer on the roster (deleted person)
// restarts at the first member.
func (w *Wheel) nextAfter(id int64) db.Person {
	for i, p := range w.roster {
		if p.ID == id {
			return w.roster[(i+1)%len(w.roster)]
		}
	}
	return w.roster[0]
}
