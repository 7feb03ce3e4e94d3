package sidebar

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBlurCommitsRename(t *testing.T) {
	t.Parallel()
	org, gw := newOrganizer(t)
	m := New(context.Background(), org).Focus()

	// Cursor onto session "a", open the rename editor, type a character.
	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("r"))
	m, _ = m.Update(keyRunes("X"))

	m, cmd := m.Blur()
	require.NotNil(t, cmd)
	require.IsType(t, RefreshedMsg{}, cmd())

	require.Equal(t, []string{"aX"}, gw.renames)
	require.Equal(t, "aX", org.Session(10).Title)
	require.Nil(t, org.Edit())
	require.False(t, m.Focused())
}

func TestEscDiscardsRename(t *testing.T) {
	t.Parallel()
	org, gw := newOrganizer(t)
	m := New(context.Background(), org).Focus()

	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("r"))
	m, _ = m.Update(keyRunes("X"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	m, cmd := m.Blur()
	require.Nil(t, cmd)

	require.Empty(t, gw.renames)
	require.Equal(t, "a", org.Session(10).Title)
	require.Nil(t, org.Edit())
}
