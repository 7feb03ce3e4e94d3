package admin

import (
	"github.com/spf13/cobra"

	"github.com/kaiwenlu/llamadeck/gateway"
	"github.com/kaiwenlu/llamadeck/internal/cli"
	"github.com/kaiwenlu/llamadeck/internal/configuration"
)

// NewStatusCmd instantiates and returns the status command.
func NewStatusCmd(config *configuration.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report backend health",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			client := gateway.New(config)
			status, err := client.Status(cmd.Context())
			if err != nil {
				cli.Error("backend unreachable at %s: %v\n", config.BackendURL, err)
				return
			}

			cli.Title("LLAMADECK STATUS")
			cli.Item("backend:      %s\n", config.BackendURL)
			cli.Item("status:       %s\n", status.Status)
			cli.Item("model loaded: %t\n", status.ModelLoaded)
			cli.Item("device:       %s\n", status.Device)
		},
	}
}
