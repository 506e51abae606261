package ledger

import (
	"reflect"
	"testing"
)

func TestAddLapSequence(t *testing.T) {
	l := New()
	times := []string{"00:00.50", "00:01.20", "00:01.20", "02:10.03"}

	for i, tm := range times {
		r := l.AddLap(tm)
		if r.Seq != i+1 {
			t.Errorf("lap %d: Seq = %d, want %d", i, r.Seq, i+1)
		}
		if r.Time != tm {
			t.Errorf("lap %d: Time = %q, want %q", i, r.Time, tm)
		}
		if r.Note != "" {
			t.Errorf("lap %d: Note = %q, want empty", i, r.Note)
		}
		if id, ok := l.Focused(); !ok || id != r.ID {
			t.Errorf("lap %d: focus = %d,%v, want %d", i, id, ok, r.ID)
		}
	}

	if l.Len() != len(times) {
		t.Fatalf("Len() = %d, want %d", l.Len(), len(times))
	}
	for i, row := range l.Rows() {
		if row.Seq != i+1 {
			t.Errorf("row %d: Seq = %d", i, row.Seq)
		}
	}
}

func TestReturnedRecordIsSnapshot(t *testing.T) {
	l := New()
	r := l.AddLap("00:03.00")
	l.SetNote(r.ID, "changed later")

	if r.Note != "" {
		t.Fatal("record returned by AddLap was mutated by SetNote")
	}
	got, _ := l.Get(r.ID)
	if got.Time != "00:03.00" || got.Note != "changed later" {
		t.Fatalf("Get() = %+v", got)
	}
}

func TestSetNote(t *testing.T) {
	l := New()
	a := l.AddLap("00:00.50")
	b := l.AddLap("00:01.20")

	l.SetNote(a.ID, "a")
	l.SetNote(b.ID, "")

	want := []Row{
		{Seq: 1, Time: "00:00.50", Note: "a"},
		{Seq: 2, Time: "00:01.20", Note: ""},
	}
	if got := l.Rows(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Rows() = %+v, want %+v", got, want)
	}
}

func TestSetNoteUnknownID(t *testing.T) {
	l := New()
	l.AddLap("00:00.10")
	l.AddLap("00:00.20")
	before := l.Records()
	focus, _ := l.Focused()

	l.SetNote(99, "nope")
	l.SetNote(0, "nope")
	l.SetNote(-1, "nope")

	if !reflect.DeepEqual(l.Records(), before) {
		t.Fatal("SetNote with unknown id changed the ledger")
	}
	if got, _ := l.Focused(); got != focus {
		t.Fatal("SetNote with unknown id moved focus")
	}
}

func TestClear(t *testing.T) {
	l := New()
	first := l.AddLap("00:00.10")
	l.AddLap("00:00.20")

	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("Len() = %d after Clear", l.Len())
	}
	if _, ok := l.Focused(); ok {
		t.Fatal("focus survived Clear")
	}
	if len(l.Rows()) != 0 {
		t.Fatal("Rows() not empty after Clear")
	}

	r := l.AddLap("00:05.00")
	if r.Seq != 1 {
		t.Fatalf("Seq = %d after Clear, want 1", r.Seq)
	}
	if r.ID <= first.ID+1 {
		t.Fatalf("id %d was reused after Clear", r.ID)
	}
	if _, ok := l.Get(first.ID); ok {
		t.Fatal("cleared record is still addressable")
	}
}

func TestFocus(t *testing.T) {
	l := New()
	if _, ok := l.Focused(); ok {
		t.Fatal("new ledger has focus")
	}

	a := l.AddLap("00:00.10")
	b := l.AddLap("00:00.20")
	c := l.AddLap("00:00.30")

	l.SetFocus(a.ID)
	if id, _ := l.Focused(); id != a.ID {
		t.Fatalf("Focused() = %d, want %d", id, a.ID)
	}

	tests := []struct {
		name string
		fn   func(int64) (int64, bool)
		from int64
		want int64
	}{
		{"next from first", l.Next, a.ID, b.ID},
		{"next wraps", l.Next, c.ID, a.ID},
		{"next from none", l.Next, 0, a.ID},
		{"prev from second", l.Prev, b.ID, a.ID},
		{"prev wraps", l.Prev, a.ID, c.ID},
		{"prev from none", l.Prev, 0, c.ID},
	}
	for _, tt := range tests {
		got, ok := tt.fn(tt.from)
		if !ok || got != tt.want {
			t.Errorf("%s: got %d,%v want %d", tt.name, got, ok, tt.want)
		}
	}

	l.ClearFocus()
	if _, ok := l.Focused(); ok {
		t.Fatal("ClearFocus left focus set")
	}

	if _, ok := New().Next(0); ok {
		t.Fatal("Next on empty ledger reported a record")
	}
}
