// Package chat is the terminal UI: a sidebar with the session tree next to
// the active session's transcript and input box.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"

	"github.com/kaiwenlu/llamadeck/cli/chat/sidebar"
	"github.com/kaiwenlu/llamadeck/cli/chat/styles"
	"github.com/kaiwenlu/llamadeck/conversation"
	"github.com/kaiwenlu/llamadeck/internal/configuration"
	"github.com/kaiwenlu/llamadeck/internal/debug"
	"github.com/kaiwenlu/llamadeck/internal/history"
	"github.com/kaiwenlu/llamadeck/organizer"
)

var log = debug.GetLogger()

// Model is the Bubble Tea model for the whole client.
type Model struct {
	// Core dependencies
	ctx        context.Context
	config     *configuration.Config
	organizer  *organizer.Organizer
	controller *conversation.Controller

	// Sub-views
	sidebar sidebar.Model

	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// UI state
	width                  int
	height                 int
	ready                  bool
	quitting               bool
	windowFocused          bool
	err                    error
	messageViewportOffsets []int

	// Alert notifications.
	alert bubbleup.AlertModel

	// Input history
	history           *history.History
	historyNavigating bool

	// Tracks the index of the message we're currently navigating. (-1 if none
	// is selected).
	navigationMessageIndex int
}

// New creates a new client model.
func New(
	ctx context.Context,
	config *configuration.Config,
	org *organizer.Organizer,
	controller *conversation.Controller,
) *Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message... (Ctrl+J to send, Tab for sidebar, Alt+P/N for history, Ctrl+C to quit)"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetWidth(styles.DefaultTextareaWidth)
	ta.SetHeight(styles.MinTextareaHeight)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(true)
	ta.Prompt = ""

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	alert := bubbleup.NewAlertModel(25, true, 1)

	sb := sidebar.New(ctx, org).SetActive(controller.ActiveSessionID())

	return &Model{
		ctx:                    ctx,
		config:                 config,
		organizer:              org,
		controller:             controller,
		sidebar:                sb,
		textarea:               ta,
		spinner:                sp,
		alert:                  *alert,
		history:                history.NewHistory(),
		windowFocused:          true,
		navigationMessageIndex: -1,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.alert.Init(),
	)
}

func (m *Model) sending() bool {
	return m.controller.State() == conversation.Sending
}
