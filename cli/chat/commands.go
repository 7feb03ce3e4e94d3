package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) sendMessage() tea.Cmd {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return nil
	}

	turn, err := m.controller.Send(input)
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil

	m.history.Add(input)
	m.historyNavigating = false
	m.navigationMessageIndex = -1
	m.textarea.Reset()

	m.recalculateLayout()
	m.viewport.GotoBottom()

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return turnDoneMsg{result: m.controller.Execute(turn)}
	})
}

func (m *Model) activateSession(sessionID int64) tea.Cmd {
	return func() tea.Msg {
		err := m.controller.Activate(m.ctx, sessionID)
		return activatedMsg{sessionID: sessionID, err: err}
	}
}
