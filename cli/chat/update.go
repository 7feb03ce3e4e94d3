package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"github.com/kaiwenlu/llamadeck/cli/chat/sidebar"
	"github.com/kaiwenlu/llamadeck/cli/chat/styles"
	"github.com/kaiwenlu/llamadeck/conversation"
)

// sidebarOriginY is the screen line of the sidebar's first tree row: the
// title bar and the sidebar header sit above it.
const sidebarOriginY = 2

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	// Log for non-tick messages only
	defer func() {
		switch msg.(type) {
		case spinner.TickMsg, cursor.BlinkMsg, tea.MouseMsg:
		// Skip logging for spinner ticks
		default:
			log.Info("update completed", "msg_type", fmt.Sprintf("%T", msg), "navigation_index", m.navigationMessageIndex)
		}
	}()

	switch msg := msg.(type) {
	case tea.FocusMsg:
		m.windowFocused = true
		if !m.sidebar.Focused() {
			m.textarea.Focus()
			cmds = append(cmds, textarea.Blink)
		}
		return m, tea.Batch(cmds...)

	case tea.BlurMsg:
		m.windowFocused = false
		m.textarea.Blur()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg, cmds)

	case tea.MouseMsg:
		if msg.X < styles.SidebarWidth || m.sidebar.Dragging() {
			var cmd tea.Cmd
			m.sidebar, cmd = m.sidebar.HandleMouse(msg, sidebarOriginY)
			return m, cmd
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalculateLayout()
		return m, tea.Batch(cmds...)

	case turnDoneMsg:
		resolution := m.controller.Resolve(msg.result)
		switch resolution.Outcome {
		case conversation.Cancelled:
			m.textarea.SetValue(resolution.RestoredInput)
		case conversation.Failed, conversation.Completed:
		case conversation.Discarded:
			return m, tea.Batch(cmds...)
		}
		m.recalculateLayout()
		m.viewport.GotoBottom()
		return m, tea.Batch(cmds...)

	case sidebar.ActivateMsg:
		if msg.SessionID == m.controller.ActiveSessionID() {
			return m, tea.Batch(cmds...)
		}
		cmds = append(cmds, m.activateSession(msg.SessionID))
		return m, tea.Batch(cmds...)

	case activatedMsg:
		if msg.err != nil {
			cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.ErrorKey, msg.err.Error()))
			return m, tea.Batch(cmds...)
		}
		m.sidebar = m.sidebar.SetActive(msg.sessionID)
		m.navigationMessageIndex = -1
		m.controller.ClearReplyContext()
		m.recalculateLayout()
		m.viewport.GotoBottom()
		return m, tea.Batch(cmds...)

	case sidebar.SessionDeletedMsg:
		if msg.Next != nil {
			cmds = append(cmds, m.activateSession(msg.Next.ID))
		}
		return m, tea.Batch(cmds...)

	case sidebar.RefreshedMsg:
		return m, tea.Batch(cmds...)

	case sidebar.ErrMsg:
		cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.ErrorKey, msg.Err.Error()))
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.sending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.sending() && !m.sidebar.Focused() {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.adjustTextareaHeight()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) updateKey(msg tea.KeyMsg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	// Global keys first.
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.sending() {
			m.controller.Cancel()
			return m, tea.Batch(cmds...)
		}
		m.quitting = true
		return m, tea.Quit

	case tea.KeyTab:
		if m.sidebar.Focused() {
			var cmd tea.Cmd
			m.sidebar, cmd = m.sidebar.Blur()
			cmds = append(cmds, cmd)
			m.textarea.Focus()
			cmds = append(cmds, textarea.Blink)
		} else {
			m.textarea.Blur()
			m.sidebar = m.sidebar.Focus()
		}
		return m, tea.Batch(cmds...)
	}

	if m.sidebar.Focused() {
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Handle navigation commands.
	messages := m.controller.Messages()
	if msg.String() == "alt+{" {
		if m.navigationMessageIndex == -1 {
			m.navigationMessageIndex = len(messages)
		}
		if m.navigationMessageIndex > 0 {
			m.navigationMessageIndex--
			m.viewport.SetContent(m.renderMessages())
			m.scrollToNavigatedMessage()
		}
		return m, tea.Batch(cmds...)
	}
	if msg.String() == "alt+}" {
		if m.navigationMessageIndex != -1 {
			m.navigationMessageIndex++
			if m.navigationMessageIndex == len(messages) {
				m.navigationMessageIndex = -1
				m.viewport.SetContent(m.renderMessages())
				m.viewport.GotoBottom()
				return m, tea.Batch(cmds...)
			}
			m.viewport.SetContent(m.renderMessages())
			m.scrollToNavigatedMessage()
		}
		return m, tea.Batch(cmds...)
	}

	// Copy navigated message content to clipboard
	if msg.String() == "alt+w" && m.navigationMessageIndex != -1 {
		m.controller.CopyMessage(messages[m.navigationMessageIndex].Content)
		cmds = append(cmds, m.alert.NewAlertCmd(bubbleup.InfoKey, "Copied to clipboard!"))
		return m, tea.Batch(cmds...)
	}

	// Arm a quoted reply to the navigated message.
	if msg.String() == "alt+r" && m.navigationMessageIndex != -1 {
		m.controller.SetReplyContext(messages[m.navigationMessageIndex].Content)
		m.navigationMessageIndex = -1
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		m.recalculateLayout()
		return m, tea.Batch(cmds...)
	}

	if msg.Alt && !m.sending() {
		switch msg.String() {
		case "alt+p":
			if entry, ok := m.history.Previous(m.textarea.Value()); ok {
				m.textarea.SetValue(entry)
				m.historyNavigating = true
				m.adjustTextareaHeight()
				return m, tea.Batch(cmds...)
			}
		case "alt+n":
			if entry, ok := m.history.Next(); ok {
				m.textarea.SetValue(entry)
				m.historyNavigating = true
				m.adjustTextareaHeight()
				return m, tea.Batch(cmds...)
			}
		}
	}

	switch msg.Type {
	case tea.KeyCtrlJ:
		if !m.sending() {
			cmds = append(cmds, m.sendMessage())
			return m, tea.Batch(cmds...)
		}

	case tea.KeyEsc:
		if m.controller.ReplyContext() != "" {
			m.controller.ClearReplyContext()
			m.recalculateLayout()
			return m, tea.Batch(cmds...)
		}
		if m.navigationMessageIndex != -1 {
			m.navigationMessageIndex = -1
			m.viewport.SetContent(m.renderMessages())
			m.viewport.GotoBottom()
			return m, tea.Batch(cmds...)
		}

	case tea.KeyEnter:
		if m.historyNavigating {
			m.history.Reset()
			m.historyNavigating = false
		}
	}

	if !m.sending() && m.historyNavigating {
		switch msg.Type {
		case tea.KeyRunes, tea.KeyBackspace, tea.KeyDelete:
			m.history.Reset()
			m.historyNavigating = false
		}
	}

	if !m.sending() {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.adjustTextareaHeight()
	} else {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
