package sidebar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/kaiwenlu/llamadeck/gateway"
	"github.com/kaiwenlu/llamadeck/organizer"
)

func activate(sessionID int64) tea.Cmd {
	return func() tea.Msg {
		return ActivateMsg{SessionID: sessionID}
	}
}

func (m Model) createSession(bucket gateway.Bucket) tea.Cmd {
	return func() tea.Msg {
		session, err := m.org.CreateSession(m.ctx, bucket)
		if err != nil {
			return ErrMsg{Err: err}
		}
		log.Info("session created", "session_id", session.ID, "bucket", bucket.String())
		return ActivateMsg{SessionID: session.ID}
	}
}

func (m Model) createGroup() tea.Cmd {
	return func() tea.Msg {
		group, err := m.org.CreateGroup(m.ctx, organizer.DefaultGroupName)
		if err != nil {
			return ErrMsg{Err: err}
		}
		log.Info("group created", "group_id", group.ID)
		return RefreshedMsg{}
	}
}

func (m Model) commitRename() tea.Cmd {
	return func() tea.Msg {
		if err := m.org.CommitEdit(m.ctx); err != nil {
			return ErrMsg{Err: err}
		}
		return RefreshedMsg{}
	}
}

func (m Model) deleteSession(sessionID int64) tea.Cmd {
	return func() tea.Msg {
		next, err := m.org.DeleteSession(m.ctx, sessionID, m.activeSessionID)
		if err != nil {
			if errors.Is(err, organizer.ErrDeclined) {
				return RefreshedMsg{}
			}
			return ErrMsg{Err: err}
		}
		return SessionDeletedMsg{Next: next}
	}
}

func (m Model) deleteGroup(groupID int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.org.DeleteGroup(m.ctx, groupID); err != nil {
			if errors.Is(err, organizer.ErrDeclined) {
				return RefreshedMsg{}
			}
			return ErrMsg{Err: err}
		}
		return RefreshedMsg{}
	}
}

func (m Model) finishDrag() tea.Cmd {
	return func() tea.Msg {
		if err := m.org.FinishDrag(m.ctx); err != nil {
			return ErrMsg{Err: err}
		}
		return RefreshedMsg{}
	}
}
