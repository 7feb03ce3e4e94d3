package sidebar

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kaiwenlu/llamadeck/gateway"
	"github.com/kaiwenlu/llamadeck/organizer"
)

// Update handles keyboard input while the sidebar is focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	rows := BuildRows(m.org)
	m = m.clampCursor(rows)

	if m.editing {
		return m.updateEditing(keyMsg)
	}
	if m.pendingDelete != nil {
		return m.updateConfirming(keyMsg)
	}
	if m.moving {
		return m.updateMoving(keyMsg, rows)
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}

	case "enter", " ":
		row := m.rowUnderCursor(rows)
		if row == nil {
			return m, nil
		}
		switch row.Kind {
		case GroupRow:
			m.org.ToggleCollapse(row.Group.ID)
		case SessionRow:
			return m, activate(row.Session.ID)
		}

	case "n":
		row := m.rowUnderCursor(rows)
		bucket := gateway.Uncategorized
		if row != nil {
			bucket = row.Bucket
		}
		return m, m.createSession(bucket)

	case "g":
		return m, m.createGroup()

	case "r", "f2":
		row := m.rowUnderCursor(rows)
		if row == nil {
			return m, nil
		}
		switch row.Kind {
		case GroupRow:
			m.org.StartEdit(organizer.EditGroup, row.Group.ID, row.Group.Name)
			m = m.openEditor(row.Group.Name)
		case SessionRow:
			m.org.StartEdit(organizer.EditSession, row.Session.ID, row.Session.Title)
			m = m.openEditor(row.Session.Title)
		}

	case "d":
		row := m.rowUnderCursor(rows)
		if row == nil || row.Kind == UncategorizedRow {
			return m, nil
		}
		m.pendingDelete = row

	case "m":
		row := m.rowUnderCursor(rows)
		if row == nil || row.Kind != SessionRow {
			return m, nil
		}
		m.org.StartDrag(row.Session.ID)
		m.moving = true
		m.moveSlot = 0
		slots := buildDropSlots(rows, row.Session.ID)
		// Start from the slot nearest the grabbed row.
		for i, slot := range slots {
			if slot.renderIndex <= m.cursor {
				m.moveSlot = i
			}
		}
		m = m.hoverSlot(slots)
	}

	return m, nil
}

func (m Model) openEditor(current string) Model {
	m.editing = true
	m.editor.SetValue(current)
	m.editor.CursorEnd()
	m.editor.Focus()
	return m
}

func (m Model) updateEditing(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.editor.Blur()
		m.org.SetEditText(m.editor.Value())
		return m, m.commitRename()

	case tea.KeyEsc:
		m.editing = false
		m.editor.Blur()
		m.org.CancelEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) updateConfirming(msg tea.KeyMsg) (Model, tea.Cmd) {
	row := m.pendingDelete
	switch msg.String() {
	case "y", "Y":
		m.pendingDelete = nil
		if row.Kind == GroupRow {
			return m, m.deleteGroup(row.Group.ID)
		}
		return m, m.deleteSession(row.Session.ID)

	case "n", "N", "esc":
		m.pendingDelete = nil
	}
	return m, nil
}

func (m Model) updateMoving(msg tea.KeyMsg, rows []Row) (Model, tea.Cmd) {
	drag := m.org.Drag()
	if drag == nil {
		m.moving = false
		return m, nil
	}
	slots := buildDropSlots(rows, drag.SessionID)
	if len(slots) == 0 {
		m.org.CancelDrag()
		m.moving = false
		return m, nil
	}
	if m.moveSlot >= len(slots) {
		m.moveSlot = len(slots) - 1
	}

	switch msg.String() {
	case "up", "k":
		if m.moveSlot > 0 {
			m.moveSlot--
		}
		m = m.hoverSlot(slots)

	case "down", "j":
		if m.moveSlot < len(slots)-1 {
			m.moveSlot++
		}
		m = m.hoverSlot(slots)

	case "enter", " ":
		m.moving = false
		return m, m.finishDrag()

	case "esc":
		m.org.CancelDrag()
		m.moving = false
	}
	return m, nil
}

func (m Model) hoverSlot(slots []dropSlot) Model {
	if m.moveSlot >= 0 && m.moveSlot < len(slots) {
		m.org.HoverOver(slots[m.moveSlot].drop)
	}
	return m
}

// HandleMouse handles mouse events whose coordinates fall inside the
// sidebar. originY is the screen line of the sidebar's first row.
func (m Model) HandleMouse(msg tea.MouseMsg, originY int) (Model, tea.Cmd) {
	rows := BuildRows(m.org)
	index := msg.Y - originY

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if index < 0 || index >= len(rows) {
			return m, nil
		}
		m.cursor = index
		row := rows[index]
		switch row.Kind {
		case GroupRow:
			m.org.ToggleCollapse(row.Group.ID)
		case SessionRow:
			m.press = &pressState{sessionID: row.Session.ID, rowIndex: index}
		}

	case tea.MouseActionMotion:
		if m.press == nil && m.org.Drag() == nil {
			return m, nil
		}
		if m.press != nil && index != m.press.rowIndex {
			m.org.StartDrag(m.press.sessionID)
			m.press = nil
		}
		if drag := m.org.Drag(); drag != nil {
			if drop, ok := dropAt(rows, drag.SessionID, index, msg.Y, originY); ok {
				m.org.HoverOver(drop)
			}
		}

	case tea.MouseActionRelease:
		press := m.press
		m.press = nil
		if m.org.Drag() != nil {
			return m, m.finishDrag()
		}
		if press != nil && index == press.rowIndex {
			return m, activate(press.sessionID)
		}
	}
	return m, nil
}

// dropAt computes the drop target for a pointer at row index. Terminal cells
// have no sub-cell precision, so hovering a session row inserts above it and
// the slot past a bucket's last row lands below it.
func dropAt(rows []Row, draggedID int64, index, pointerY, originY int) (organizer.Drop, bool) {
	if len(rows) == 0 {
		return organizer.Drop{}, false
	}
	if index < 0 {
		index = 0
	}
	if index >= len(rows) {
		// Below the tree: append to the end of the last bucket.
		last := rows[len(rows)-1]
		if last.Kind == SessionRow && last.Session.ID != draggedID {
			return organizer.Drop{Bucket: last.Bucket, SessionID: last.Session.ID, Position: organizer.PositionBottom}, true
		}
		return organizer.Drop{Bucket: last.Bucket}, true
	}

	row := rows[index]
	switch row.Kind {
	case GroupRow, UncategorizedRow:
		return organizer.Drop{Bucket: row.Bucket}, true
	case SessionRow:
		if row.Session.ID == draggedID {
			return organizer.Drop{}, false
		}
		rowTop := float64(originY + index)
		position := organizer.HoverPosition(float64(pointerY), rowTop, 1)
		return organizer.Drop{Bucket: row.Bucket, SessionID: row.Session.ID, Position: position}, true
	}
	return organizer.Drop{}, false
}
