package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository("")
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateAndAll(t *testing.T) {
	repo := newTestRepository(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	events := []*Event{
		{Session: "s1", Kind: KindStart, At: at},
		{Session: "s1", Kind: KindLap, Elapsed: 150, Detail: "00:01.50", At: at.Add(time.Second)},
		{Session: "s1", Kind: KindResetClock, At: at.Add(2 * time.Second)},
	}
	for _, e := range events {
		if err := repo.Create(e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if e.ID == 0 {
			t.Fatal("Create() did not assign an id")
		}
	}

	got, err := repo.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("All() returned %d events, want 3", len(got))
	}
	if got[0].Kind != KindResetClock || got[2].Kind != KindStart {
		t.Errorf("All() order = %s..%s, want newest first", got[0].Kind, got[2].Kind)
	}
	lap := got[1]
	if lap.Elapsed != 150 || lap.Detail != "00:01.50" || lap.Session != "s1" {
		t.Errorf("lap event = %+v", lap)
	}
	if !lap.At.Equal(at.Add(time.Second)) {
		t.Errorf("lap At = %v, want %v", lap.At, at.Add(time.Second))
	}
}

func TestCreateStampsTime(t *testing.T) {
	repo := newTestRepository(t)
	e := &Event{Session: "s", Kind: KindCopy}
	if err := repo.Create(e); err != nil {
		t.Fatal(err)
	}
	if e.At.IsZero() {
		t.Fatal("Create() left At unset")
	}
}

func TestCountByKind(t *testing.T) {
	repo := newTestRepository(t)
	for _, k := range []Kind{KindLap, KindLap, KindStart, KindLap, KindExport} {
		if err := repo.Create(&Event{Session: "s", Kind: k}); err != nil {
			t.Fatal(err)
		}
	}

	counts, err := repo.CountByKind()
	if err != nil {
		t.Fatal(err)
	}
	if counts[KindLap] != 3 || counts[KindStart] != 1 || counts[KindExport] != 1 {
		t.Fatalf("CountByKind() = %v", counts)
	}
	if _, ok := counts[KindResetTable]; ok {
		t.Fatal("CountByKind() reported a kind that was never recorded")
	}
}

func TestMemoryJournalsAreIsolated(t *testing.T) {
	a := newTestRepository(t)
	b := newTestRepository(t)

	if err := a.Create(&Event{Session: "a", Kind: KindStart}); err != nil {
		t.Fatal(err)
	}
	got, err := b.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("second in-memory journal saw %d events", len(got))
	}
}

func TestFileJournal(t *testing.T) {
	repo, err := NewRepository(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()

	if err := repo.Create(&Event{Session: "f", Kind: KindSaveNotes, Detail: "2 notes"}); err != nil {
		t.Fatal(err)
	}
	got, err := repo.All()
	if err != nil || len(got) != 1 {
		t.Fatalf("All() = %v, %v", got, err)
	}
}
