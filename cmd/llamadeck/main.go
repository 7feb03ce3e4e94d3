package main

import (
	"github.com/spf13/cobra"

	"github.com/kaiwenlu/llamadeck/admin"
	"github.com/kaiwenlu/llamadeck/cli/chat"
	"github.com/kaiwenlu/llamadeck/gateway"
	"github.com/kaiwenlu/llamadeck/internal/configuration"
	"github.com/kaiwenlu/llamadeck/internal/debug"
)

const configFilepath = "~/.config/llamadeck/config.json"

var rootCmd = &cobra.Command{
	Use:     "llamadeck",
	Short:   "A terminal client for a locally hosted LLM backend",
	Version: "1.0",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}
	debug.SetPath(config.DebugLogPath)

	client := gateway.New(config)

	chatCmd := chat.NewCmd(config, client)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(admin.NewSessionsCmd(config))
	rootCmd.AddCommand(admin.NewGroupsCmd(config))
	rootCmd.AddCommand(admin.NewStatusCmd(config))

	// Bare invocation opens the chat interface.
	rootCmd.RunE = chatCmd.RunE

	rootCmd.Execute()
}
