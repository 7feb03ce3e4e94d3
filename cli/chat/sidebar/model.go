// Package sidebar renders the session tree and translates keyboard and mouse
// input into organizer operations. Cross-cutting outcomes (activating a
// session, surfacing an error) are reported to the parent model as messages.
package sidebar

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kaiwenlu/llamadeck/gateway"
	"github.com/kaiwenlu/llamadeck/internal/debug"
	"github.com/kaiwenlu/llamadeck/organizer"
)

var log = debug.GetLogger()

// ActivateMsg asks the parent to make a session active.
type ActivateMsg struct {
	SessionID int64
}

// SessionDeletedMsg reports a completed session deletion. Next is non-nil
// when the deleted session was the active one and a replacement must be
// activated.
type SessionDeletedMsg struct {
	Next *gateway.Session
}

// RefreshedMsg reports a completed mutation whose only effect is a changed
// tree.
type RefreshedMsg struct{}

// ErrMsg reports a failed organizer operation.
type ErrMsg struct {
	Err error
}

// pressState remembers a left-button press on a session row until it turns
// into a drag or a click.
type pressState struct {
	sessionID int64
	rowIndex  int
}

// Model is the sidebar component.
type Model struct {
	ctx context.Context
	org *organizer.Organizer

	activeSessionID int64
	width           int
	height          int
	focused         bool
	cursor          int

	editor  textinput.Model
	editing bool

	pendingDelete *Row

	moving   bool
	moveSlot int

	press *pressState
}

// New instantiates and returns a new sidebar model.
func New(ctx context.Context, org *organizer.Organizer) Model {
	editor := textinput.New()
	editor.CharLimit = 0
	editor.Prompt = ""
	return Model{ctx: ctx, org: org, editor: editor}
}

// SetSize sets the sidebar's render box.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetActive records the active session for highlighting and deletion
// coordination.
func (m Model) SetActive(sessionID int64) Model {
	m.activeSessionID = sessionID
	return m
}

// Focus gives the sidebar keyboard focus.
func (m Model) Focus() Model {
	m.focused = true
	return m
}

// Blur removes keyboard focus. A rename in progress is committed, the same
// as pressing enter; only esc discards it. Other transient modes are
// abandoned.
func (m Model) Blur() (Model, tea.Cmd) {
	m.focused = false
	m.pendingDelete = nil
	if m.moving {
		m.org.CancelDrag()
		m.moving = false
	}
	if m.editing {
		m.editing = false
		m.editor.Blur()
		m.org.SetEditText(m.editor.Value())
		return m, m.commitRename()
	}
	return m, nil
}

// Focused reports whether the sidebar has keyboard focus.
func (m Model) Focused() bool {
	return m.focused
}

// Dragging reports whether a mouse press or drag is in flight. The parent
// keeps routing mouse events here until it ends, so a release outside the
// sidebar still lands the drop.
func (m Model) Dragging() bool {
	return m.press != nil || m.org.Drag() != nil
}

// rowUnderCursor returns the row the cursor sits on, or nil when the tree is
// empty.
func (m Model) rowUnderCursor(rows []Row) *Row {
	if len(rows) == 0 {
		return nil
	}
	cursor := m.cursor
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	return &rows[cursor]
}

// clampCursor keeps the cursor inside the current row list. Mutations shrink
// the tree under the cursor all the time.
func (m Model) clampCursor(rows []Row) Model {
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}
