package internal

import (
	"fmt"

	"chrono/internal/config"
	"chrono/internal/export"
	"chrono/internal/journal"
	"chrono/internal/ledger"
	"chrono/internal/timer"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MsgTick asks the model to redraw the running clock.
type MsgTick struct{}

type action int

const (
	actionStart action = iota
	actionPause
	actionResetClock
	actionResetTable
	actionSaveNotes
	actionDownload
	actionCopy
	actionLogView
)

// ctrlActions work everywhere, including while a note is being edited.
var ctrlActions = map[string]action{
	"ctrl+s": actionStart,
	"ctrl+p": actionPause,
	"ctrl+r": actionResetClock,
	"ctrl+x": actionResetTable,
	"ctrl+w": actionSaveNotes,
	"ctrl+d": actionDownload,
	"ctrl+y": actionCopy,
	"ctrl+l": actionLogView,
}

// letterActions only apply when no note has focus.
var letterActions = map[string]action{
	"s": actionStart,
	"p": actionPause,
	"r": actionResetClock,
	"x": actionResetTable,
	"w": actionSaveNotes,
	"d": actionDownload,
	"y": actionCopy,
	"l": actionLogView,
}

// noteInput is the editable note field of one lap. Its value is only
// written to the ledger on Save Notes unless autosave is on.
type noteInput struct {
	id    int64
	input textinput.Model
}

type Model struct {
	Timer  *timer.Timer
	Ledger *ledger.Ledger
	Status string
	Err    error

	// All-events viewer state
	ShowLogView   bool
	LogViewScroll int
	Events        []journal.Event

	notes   []noteInput
	cfg     *config.Config
	repo    *journal.Repository
	log     *logrus.Entry
	session string
}

func NewModel(cfg *config.Config, logger *logrus.Logger) (*Model, error) {
	repo, err := journal.NewRepository(cfg.Journal.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	session := uuid.New().String()
	m := &Model{
		Timer:   timer.New(timer.WithInterval(cfg.Timer.TickInterval)),
		Ledger:  ledger.New(),
		cfg:     cfg,
		repo:    repo,
		log:     logger.WithField("session", session),
		session: session,
	}
	m.log.Info("session started")

	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}

	// Cursor blinks and similar belong to the focused note.
	if i := m.focusedNote(); i >= 0 {
		var cmd tea.Cmd
		m.notes[i].input, cmd = m.notes[i].input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	if m.ShowLogView {
		return m.allEventsView()
	}
	return m.mainView()
}

// Editing reports whether a note field currently has keyboard focus.
func (m *Model) Editing() bool {
	return m.focusedNote() >= 0
}

// NoteValue returns the uncommitted text of the note field for id.
func (m *Model) NoteValue(id int64) (string, bool) {
	if i := m.noteIndex(id); i >= 0 {
		return m.notes[i].input.Value(), true
	}
	return "", false
}

func (m *Model) Close() error {
	m.Timer.Pause()
	m.log.Info("session closed")
	return m.repo.Close()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ShowLogView {
		return m.handleLogViewInput(msg)
	}

	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if a, ok := ctrlActions[key]; ok {
		return m, m.do(a)
	}

	editing := m.Editing()
	if !editing {
		if key == "q" {
			return m, tea.Quit
		}
		if a, ok := letterActions[key]; ok {
			return m, m.do(a)
		}
	}

	switch key {
	case "tab", "down":
		return m, m.moveFocus(m.Ledger.Next)
	case "shift+tab", "up":
		return m, m.moveFocus(m.Ledger.Prev)
	case "esc":
		m.Ledger.ClearFocus()
		return m, m.syncFocus()
	}

	if editing {
		return m, m.editNote(msg)
	}
	return m, nil
}

func (m *Model) handleLogViewInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc", "l", "ctrl+l":
		m.ShowLogView = false
		m.Events = nil
	case "up", "k":
		if m.LogViewScroll > 0 {
			m.LogViewScroll--
		}
	case "down", "j":
		maxScroll := len(m.Events) - 1
		if maxScroll < 0 {
			maxScroll = 0
		}
		if m.LogViewScroll < maxScroll {
			m.LogViewScroll++
		}
	}
	return m, nil
}

func (m *Model) do(a action) tea.Cmd {
	m.Err = nil

	switch a {
	case actionStart:
		m.Timer.Start()
		m.record(journal.KindStart, "")
	case actionPause:
		return m.Pause()
	case actionResetClock:
		m.Timer.Reset()
		m.record(journal.KindResetClock, "")
	case actionResetTable:
		return m.ResetTable()
	case actionSaveNotes:
		m.SaveNotes()
	case actionDownload:
		m.Download()
	case actionCopy:
		m.Copy()
	case actionLogView:
		m.openLogView()
	}
	return nil
}

// Pause stops the clock and takes a lap at the current reading. The new
// lap's note field receives focus.
func (m *Model) Pause() tea.Cmd {
	value := m.Timer.Pause()
	r := m.Ledger.AddLap(timer.Format(value))

	in := textinput.New()
	in.Placeholder = "note"
	in.Prompt = ""
	in.CharLimit = 200
	in.Width = 30
	m.notes = append(m.notes, noteInput{id: r.ID, input: in})

	m.log.WithField("lap", r.Seq).Debugf("lap taken at %s", r.Time)
	m.record(journal.KindLap, r.Time)
	return m.syncFocus()
}

func (m *Model) ResetTable() tea.Cmd {
	m.Ledger.Clear()
	m.notes = nil
	m.Status = "Table cleared"
	m.record(journal.KindResetTable, "")
	return m.syncFocus()
}

// SaveNotes commits the text of every note field to the ledger.
func (m *Model) SaveNotes() {
	if m.Ledger.Len() == 0 {
		return
	}
	for _, n := range m.notes {
		m.Ledger.SetNote(n.id, n.input.Value())
	}
	m.Status = fmt.Sprintf("Saved %d notes", len(m.notes))
	m.record(journal.KindSaveNotes, m.Status)
}

// Download writes the lap table as CSV into the export directory.
func (m *Model) Download() {
	if m.Ledger.Len() == 0 {
		m.Status = "Nothing to download"
		return
	}

	path, size, err := export.WriteFile(m.cfg.Export.Dir, m.cfg.Export.Filename, m.Ledger.Rows())
	if err != nil {
		m.fail("Download failed", err)
		return
	}
	m.Status = fmt.Sprintf("Saved %s (%s)", path, humanize.Bytes(uint64(size)))
	m.log.WithFields(logrus.Fields{
		"path": path,
		"type": export.ContentType,
	}).Info("table exported")
	m.record(journal.KindExport, path)
}

func (m *Model) Copy() {
	if m.Ledger.Len() == 0 {
		m.Status = "Nothing to copy"
		return
	}

	size, err := export.ToClipboard(m.Ledger.Rows())
	if err != nil {
		m.fail("Copy failed", err)
		return
	}
	m.Status = fmt.Sprintf("Copied %s to clipboard", humanize.Bytes(uint64(size)))
	m.record(journal.KindCopy, "")
}

func (m *Model) openLogView() {
	events, err := m.repo.All()
	if err != nil {
		m.fail("Could not load events", err)
		return
	}
	m.Events = events
	m.ShowLogView = true
	m.LogViewScroll = 0
}

func (m *Model) editNote(msg tea.KeyMsg) tea.Cmd {
	i := m.focusedNote()
	var cmd tea.Cmd
	m.notes[i].input, cmd = m.notes[i].input.Update(msg)
	if m.cfg.Notes.AutoSave {
		m.Ledger.SetNote(m.notes[i].id, m.notes[i].input.Value())
	}
	return cmd
}

func (m *Model) moveFocus(step func(int64) (int64, bool)) tea.Cmd {
	current, _ := m.Ledger.Focused()
	next, ok := step(current)
	if !ok {
		return nil
	}
	m.Ledger.SetFocus(next)
	return m.syncFocus()
}

// syncFocus gives keyboard focus to the note field of the ledger's focused
// lap and takes it away from every other field.
func (m *Model) syncFocus() tea.Cmd {
	id, ok := m.Ledger.Focused()
	var cmd tea.Cmd
	for i := range m.notes {
		if ok && m.notes[i].id == id {
			cmd = m.notes[i].input.Focus()
		} else {
			m.notes[i].input.Blur()
		}
	}
	return cmd
}

func (m *Model) focusedNote() int {
	id, ok := m.Ledger.Focused()
	if !ok {
		return -1
	}
	return m.noteIndex(id)
}

func (m *Model) noteIndex(id int64) int {
	for i, n := range m.notes {
		if n.id == id {
			return i
		}
	}
	return -1
}

func (m *Model) record(kind journal.Kind, detail string) {
	e := &journal.Event{
		Session: m.session,
		Kind:    kind,
		Elapsed: m.Timer.Elapsed(),
		Detail:  detail,
	}
	if err := m.repo.Create(e); err != nil {
		m.log.WithError(err).Warn("could not record event")
	}
}

func (m *Model) fail(status string, err error) {
	m.Err = err
	m.Status = status
	m.log.WithError(err).Error(status)
}
