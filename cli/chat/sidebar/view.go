package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kaiwenlu/llamadeck/cli/chat/styles"
	"github.com/kaiwenlu/llamadeck/organizer"
)

// View renders the sidebar tree.
func (m Model) View() string {
	rows := BuildRows(m.org)
	m = m.clampCursor(rows)

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, styles.SidebarTitleStyle.Render("SESSIONS"))

	drag := m.org.Drag()
	indicatorIndex := -1
	if drag != nil && drag.Hover != nil {
		indicatorIndex = indicatorRow(rows, drag)
	}

	for i, row := range rows {
		if i == indicatorIndex {
			lines = append(lines, m.renderIndicator())
		}
		lines = append(lines, m.renderRow(row, i, drag))
	}
	if indicatorIndex == len(rows) {
		lines = append(lines, m.renderIndicator())
	}

	if m.pendingDelete != nil {
		lines = append(lines, "", m.renderConfirm())
	} else if m.moving {
		lines = append(lines, "", styles.DimTextStyle.Render("j/k move · enter drop · esc cancel"))
	}

	content := strings.Join(lines, "\n")
	return styles.SidebarStyle.
		Width(m.width - styles.SidebarFrameWidth).
		Height(m.height).
		Render(content)
}

func (m Model) renderRow(row Row, index int, drag *organizer.DragState) string {
	innerWidth := m.width - styles.SidebarFrameWidth - 1

	var line string
	switch row.Kind {
	case GroupRow:
		arrow := "▾"
		if m.org.IsCollapsed(row.Group.ID) {
			arrow = "▸"
		}
		name := row.Group.Name
		if m.editing && m.editTargets(row) {
			name = m.editor.View()
		} else {
			name = styles.Truncate(name, styles.MaxSidebarTitleLen)
		}
		count := len(m.org.SessionsIn(row.Bucket))
		line = styles.GroupStyle.Render(fmt.Sprintf("%s %s (%d)", arrow, name, count))

	case UncategorizedRow:
		line = styles.GroupStyle.Render("· Uncategorized")

	case SessionRow:
		title := row.Session.Title
		if m.editing && m.editTargets(row) {
			title = m.editor.View()
		} else {
			title = styles.Truncate(title, styles.MaxSidebarTitleLen)
		}
		text := strings.Repeat(" ", styles.SidebarIndent) + title
		switch {
		case drag != nil && drag.SessionID == row.Session.ID:
			line = styles.DraggedRowStyle.Render(text)
		case row.Session.ID == m.activeSessionID:
			line = styles.ActiveSessionStyle.Render("▌" + text[1:])
		default:
			line = styles.SessionStyle.Render(text)
		}
	}

	if m.focused && index == m.cursor && !m.moving {
		line = styles.CursorRowStyle.Render(lipgloss.NewStyle().Width(innerWidth).Render(line))
	}
	return line
}

func (m Model) editTargets(row Row) bool {
	edit := m.org.Edit()
	if edit == nil {
		return false
	}
	switch row.Kind {
	case GroupRow:
		return edit.Kind == organizer.EditGroup && edit.ID == row.Group.ID
	case SessionRow:
		return edit.Kind == organizer.EditSession && edit.ID == row.Session.ID
	}
	return false
}

func (m Model) renderIndicator() string {
	width := m.width - styles.SidebarFrameWidth - 1
	if width < 4 {
		width = 4
	}
	return styles.DropIndicatorStyle.Render(strings.Repeat("─", width-2) + "▶")
}

func (m Model) renderConfirm() string {
	row := m.pendingDelete
	var prompt string
	switch row.Kind {
	case GroupRow:
		prompt = styles.ConfirmTitleStyle.Render("Delete group ") + styles.ConfirmTargetStyle.Render(row.Group.Name) + styles.ConfirmTitleStyle.Render("?")
	case SessionRow:
		prompt = styles.ConfirmTitleStyle.Render("Delete ") + styles.ConfirmTargetStyle.Render(row.Session.Title) + styles.ConfirmTitleStyle.Render("?")
	}
	return styles.ConfirmBoxStyle.MaxWidth(m.width - styles.SidebarFrameWidth).Render(
		prompt + "\n" + styles.DimTextStyle.Render("y to confirm · n to cancel"))
}

// indicatorRow maps the current hover target to the row index the insertion
// line is drawn above.
func indicatorRow(rows []Row, drag *organizer.DragState) int {
	hover := drag.Hover
	for i, row := range rows {
		switch row.Kind {
		case GroupRow, UncategorizedRow:
			if hover.SessionID == 0 && row.Bucket == hover.Bucket {
				return i + 1
			}
		case SessionRow:
			if row.Session.ID != hover.SessionID {
				continue
			}
			if hover.Position == organizer.PositionTop {
				return i
			}
			return i + 1
		}
	}
	return -1
}
