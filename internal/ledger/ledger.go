// Package ledger keeps the ordered list of laps taken in a session, their
// notes, and which lap currently wants keyboard focus.
package ledger

import "sort"

// Record is a single lap. Time is the formatted elapsed time captured when
// the lap was taken and is never recomputed.
type Record struct {
	ID   int64
	Seq  int
	Time string
	Note string
}

// Row is the read-only projection of a Record used for display and export.
type Row struct {
	Seq  int
	Time string
	Note string
}

// Ledger is append-only until cleared. It is not safe for concurrent use;
// the UI event loop owns it.
type Ledger struct {
	records []Record
	lastID  int64
	focused int64
}

func New() *Ledger {
	return &Ledger{}
}

// AddLap appends a lap with an empty note and moves focus to it. IDs keep
// increasing across Clear so a stale id can never address a new lap.
func (l *Ledger) AddLap(formatted string) Record {
	l.lastID++
	r := Record{
		ID:   l.lastID,
		Seq:  len(l.records) + 1,
		Time: formatted,
	}
	l.records = append(l.records, r)
	l.focused = r.ID
	return r
}

// SetNote replaces the note of the lap with the given id. Unknown ids are
// ignored.
func (l *Ledger) SetNote(id int64, value string) {
	if i := l.index(id); i >= 0 {
		l.records[i].Note = value
	}
}

func (l *Ledger) SetFocus(id int64) {
	l.focused = id
}

func (l *Ledger) ClearFocus() {
	l.focused = 0
}

// Focused returns the id of the lap that should hold keyboard focus.
func (l *Ledger) Focused() (int64, bool) {
	return l.focused, l.focused != 0
}

func (l *Ledger) Clear() {
	l.records = nil
	l.focused = 0
}

func (l *Ledger) Len() int {
	return len(l.records)
}

func (l *Ledger) Get(id int64) (Record, bool) {
	if i := l.index(id); i >= 0 {
		return l.records[i], true
	}
	return Record{}, false
}

func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Ledger) Rows() []Row {
	rows := make([]Row, len(l.records))
	for i, r := range l.records {
		rows[i] = Row{Seq: r.Seq, Time: r.Time, Note: r.Note}
	}
	return rows
}

// Next returns the id of the lap after id, wrapping to the first. With
// nothing focused it returns the first lap.
func (l *Ledger) Next(id int64) (int64, bool) {
	return l.step(id, 1)
}

// Prev is Next in the other direction. With nothing focused it returns the
// last lap.
func (l *Ledger) Prev(id int64) (int64, bool) {
	return l.step(id, -1)
}

func (l *Ledger) step(id int64, dir int) (int64, bool) {
	n := len(l.records)
	if n == 0 {
		return 0, false
	}
	i := l.index(id)
	if i < 0 {
		if dir > 0 {
			return l.records[0].ID, true
		}
		return l.records[n-1].ID, true
	}
	return l.records[(i+dir+n)%n].ID, true
}

func (l *Ledger) index(id int64) int {
	// Ids are handed out in increasing order, so records are sorted by id.
	i := sort.Search(len(l.records), func(i int) bool { return l.records[i].ID >= id })
	if i < len(l.records) && l.records[i].ID == id {
		return i
	}
	return -1
}
