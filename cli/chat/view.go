package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kaiwenlu/llamadeck/cli/chat/styles"
	"github.com/kaiwenlu/llamadeck/gateway"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return "Initializing..."
	}

	var chat strings.Builder

	chat.WriteString(styles.ViewportStyle.Render(m.viewport.View()))
	chat.WriteString("\n")

	if reply := m.controller.ReplyContext(); reply != "" {
		preview := styles.Truncate(strings.ReplaceAll(reply, "\n", " "), m.chatWidth()-12)
		chat.WriteString(styles.ReplyStyle.Render(fmt.Sprintf("↩ Replying to: %s", preview)))
		chat.WriteString("\n")
	}

	if m.sending() {
		chat.WriteString(fmt.Sprintf("%s Generating... (Ctrl+C to stop)\n", m.spinner.View()))
	} else {
		chat.WriteString(styles.TextAreaStyle.Render(m.textarea.View()))
		chat.WriteString("\n")
	}

	if m.err != nil {
		chat.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.sidebar.View(),
		chat.String(),
	)

	view := m.renderTitle() + "\n" + body
	return m.alert.Render(view)
}

func (m *Model) renderTitle() string {
	title := "no session"
	if session := m.organizer.Session(m.controller.ActiveSessionID()); session != nil {
		title = session.Title
	}

	status := "idle"
	if m.sending() {
		status = "sending"
	}

	left := styles.TitleStyle.Render(fmt.Sprintf(" 🦙 llamadeck │ 💬 %s │ ", title))
	right := styles.StatusStyle.Render(fmt.Sprintf("⚡ %s ", status))
	return styles.TitleStyle.Width(m.width).Render(left + right)
}

func (m *Model) renderMessages() string {
	var b strings.Builder

	messages := m.controller.Messages()
	m.messageViewportOffsets = make([]int, len(messages))

	if len(messages) == 0 {
		return styles.SystemStyle.Render("No messages yet. Say something!")
	}

	for i, message := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		m.messageViewportOffsets[i] = strings.Count(b.String(), "\n")

		style := m.messageStyle(message)
		width := m.viewport.Width - styles.MessageHorizontalFrameSize()
		rendered := style.MaxWidth(m.viewport.Width).Render(lipgloss.NewStyle().MaxWidth(width).Render(message.Content))
		b.WriteString(rendered)
	}

	return b.String()
}

func (m *Model) messageStyle(message *gateway.Message) lipgloss.Style {
	if i := m.navigationMessageIndex; i >= 0 && i < len(m.controller.Messages()) && m.controller.Messages()[i] == message {
		return styles.SelectedMessageStyle
	}
	if message.Role == gateway.RoleUser {
		return styles.UserMessageStyle
	}
	if strings.HasPrefix(message.Content, "Error: ") {
		return styles.MessageErrorStyle
	}
	return styles.AIMessageStyle
}
