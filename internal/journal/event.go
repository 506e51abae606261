package journal

import "time"

// Kind names a control action recorded in the journal.
type Kind string

const (
	KindStart      Kind = "start"
	KindLap        Kind = "lap"
	KindResetClock Kind = "reset_clock"
	KindResetTable Kind = "reset_table"
	KindSaveNotes  Kind = "save_notes"
	KindExport     Kind = "export"
	KindCopy       Kind = "copy"
)

// Event represents one control action taken during a session.
type Event struct {
	ID      int64
	Session string
	Kind    Kind
	Elapsed int64 // timer count in hundredths when the action happened
	Detail  string
	At      time.Time
}
