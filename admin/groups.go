package admin

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kaiwenlu/llamadeck/gateway"
	"github.com/kaiwenlu/llamadeck/internal/cli"
	"github.com/kaiwenlu/llamadeck/internal/configuration"
	"github.com/kaiwenlu/llamadeck/organizer"
)

// NewGroupsCmd instantiates and returns the groups command.
func NewGroupsCmd(config *configuration.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage session groups",
	}
	cmd.AddCommand(newGroupsListCmd(config))
	cmd.AddCommand(newGroupsCreateCmd(config))
	cmd.AddCommand(newGroupsRenameCmd(config))
	cmd.AddCommand(newGroupsRmCmd(config))
	return cmd
}

func newGroupsListCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all groups",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			org := newOrganizer(config)
			cobra.CheckErr(org.Refresh(cmd.Context()))

			cli.Title("LLAMADECK GROUPS")
			for _, group := range org.Groups() {
				count := len(org.SessionsIn(gateway.GroupBucket(group.ID)))
				cli.Group("%4d  %s", group.ID, group.Name)
				cli.Item("  (%d sessions)\n", count)
			}
		},
	}
}

func newGroupsCreateCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a group",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			org := newOrganizer(config)
			cobra.CheckErr(org.Refresh(cmd.Context()))
			group, err := org.CreateGroup(cmd.Context(), name)
			cobra.CheckErr(err)
			cli.ActiveItem("created group #%d\n", group.ID)
		},
	}
}

func newGroupsRenameCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a group",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := parseID(args[0])
			cobra.CheckErr(err)

			org := newOrganizer(config)
			cobra.CheckErr(org.Refresh(cmd.Context()))
			cobra.CheckErr(org.RenameGroup(cmd.Context(), id, args[1]))
		},
	}
}

func newGroupsRmCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a group, moving its sessions to uncategorized",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := parseID(args[0])
			cobra.CheckErr(err)

			org := newOrganizer(config)
			cobra.CheckErr(org.Refresh(cmd.Context()))
			if err := org.DeleteGroup(cmd.Context(), id); err != nil {
				if errors.Is(err, organizer.ErrDeclined) {
					return
				}
				cobra.CheckErr(err)
			}
		},
	}
}
