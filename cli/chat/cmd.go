package chat

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"

	"github.com/kaiwenlu/llamadeck/conversation"
	"github.com/kaiwenlu/llamadeck/gateway"
	"github.com/kaiwenlu/llamadeck/internal/configuration"
	"github.com/kaiwenlu/llamadeck/organizer"
)

// NewCmd instantiates and returns the chat command.
func NewCmd(config *configuration.Config, client *gateway.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the chat interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// The sidebar runs its own confirmation dialog before any
			// destructive call reaches the organizer.
			org := organizer.New(client, organizer.ConfirmerFunc(func(string) bool { return true }), log)
			controller := conversation.New(ctx, client, log)

			if err := clipboard.Init(); err == nil {
				controller.SetClipboard(func(content []byte) {
					clipboard.Write(clipboard.FmtText, content)
				})
			}

			// Bootstrap: load the tree and activate a session, creating one
			// on first run.
			if err := org.Refresh(ctx); err != nil {
				return err
			}
			session := org.FirstSession()
			if session == nil {
				var err error
				session, err = org.CreateSession(ctx, gateway.Uncategorized)
				if err != nil {
					return err
				}
			}
			if err := controller.Activate(ctx, session.ID); err != nil {
				return err
			}

			m := New(ctx, config, org, controller)
			p := tea.NewProgram(
				m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithMouseCellMotion(),
				tea.WithReportFocus(),
			)

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running chat: %w", err)
			}
			return nil
		},
	}
}
