// Package admin holds the non-interactive maintenance commands: inspecting
// and mutating the session tree from scripts, without the TUI.
package admin

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kaiwenlu/llamadeck/gateway"
	"github.com/kaiwenlu/llamadeck/internal/cli"
	"github.com/kaiwenlu/llamadeck/internal/configuration"
	"github.com/kaiwenlu/llamadeck/internal/debug"
	"github.com/kaiwenlu/llamadeck/organizer"
)

var log = debug.GetLogger()

func newOrganizer(config *configuration.Config) *organizer.Organizer {
	client := gateway.New(config)
	return organizer.New(client, organizer.ConfirmerFunc(cli.QueryUser), log)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing id %q", arg)
	}
	return id, nil
}

// NewSessionsCmd instantiates and returns the sessions command.
func NewSessionsCmd(config *configuration.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage chat sessions",
	}
	cmd.AddCommand(newSessionsListCmd(config))
	cmd.AddCommand(newSessionsCreateCmd(config))
	cmd.AddCommand(newSessionsRenameCmd(config))
	cmd.AddCommand(newSessionsMoveCmd(config))
	cmd.AddCommand(newSessionsRmCmd(config))
	return cmd
}

func newSessionsListCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all sessions grouped by bucket",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			org := newOrganizer(config)
			cobra.CheckErr(org.Refresh(cmd.Context()))

			cli.Title("LLAMADECK SESSIONS")
			for _, group := range org.Groups() {
				cli.Group("%s (#%d)\n", group.Name, group.ID)
				for _, session := range org.SessionsIn(gateway.GroupBucket(group.ID)) {
					cli.Item("  %4d  %s\n", session.ID, session.Title)
				}
			}
			cli.Group("Uncategorized\n")
			for _, session := range org.SessionsIn(gateway.Uncategorized) {
				cli.Item("  %4d  %s\n", session.ID, session.Title)
			}
		},
	}
}

func newSessionsCreateCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		GroupID int64
		Title   string
	}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a session",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			org := newOrganizer(config)
			cobra.CheckErr(org.Refresh(cmd.Context()))

			bucket := gateway.Uncategorized
			if opts.GroupID != 0 {
				bucket = gateway.GroupBucket(opts.GroupID)
			}
			session, err := org.CreateSession(cmd.Context(), bucket)
			cobra.CheckErr(err)
			if opts.Title != "" {
				cobra.CheckErr(org.RenameSession(cmd.Context(), session.ID, opts.Title))
			}
			cli.ActiveItem("created session #%d\n", session.ID)
		},
	}
	cmd.Flags().Int64VarP(&opts.GroupID, "group", "g", 0, "Group to create the session in (default uncategorized)")
	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "Session title")
	return cmd
}

func newSessionsRenameCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a session",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := parseID(args[0])
			cobra.CheckErr(err)

			org := newOrganizer(config)
			cobra.CheckErr(org.Refresh(cmd.Context()))
			cobra.CheckErr(org.RenameSession(cmd.Context(), id, args[1]))
		},
	}
}

func newSessionsMoveCmd(config *configuration.Config) *cobra.Command {
	var opts struct {
		GroupID int64
		Before  int64
		After   int64
	}
	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a session to a bucket, optionally next to a sibling",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := parseID(args[0])
			cobra.CheckErr(err)

			org := newOrganizer(config)
			cobra.CheckErr(org.Refresh(cmd.Context()))

			bucket := gateway.Uncategorized
			if opts.GroupID != 0 {
				bucket = gateway.GroupBucket(opts.GroupID)
			}
			drop := organizer.Drop{Bucket: bucket}
			switch {
			case opts.Before != 0:
				drop.SessionID = opts.Before
				drop.Position = organizer.PositionTop
			case opts.After != 0:
				drop.SessionID = opts.After
				drop.Position = organizer.PositionBottom
			}
			cobra.CheckErr(org.MoveSession(cmd.Context(), id, drop))
		},
	}
	cmd.Flags().Int64VarP(&opts.GroupID, "group", "g", 0, "Destination group (default uncategorized)")
	cmd.Flags().Int64Var(&opts.Before, "before", 0, "Place above this session")
	cmd.Flags().Int64Var(&opts.After, "after", 0, "Place below this session")
	return cmd
}

func newSessionsRmCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := parseID(args[0])
			cobra.CheckErr(err)

			org := newOrganizer(config)
			cobra.CheckErr(org.Refresh(cmd.Context()))
			if _, err := org.DeleteSession(cmd.Context(), id, 0); err != nil {
				if errors.Is(err, organizer.ErrDeclined) {
					return
				}
				cobra.CheckErr(err)
			}
		},
	}
}
