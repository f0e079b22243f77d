// Package cli wires the snapgram commands.
package cli

import (
	"github.com/anonto42/snapgram/backend/pkg/config"
	"github.com/spf13/cobra"
)

// RootOptions holds state shared by all commands
type RootOptions struct {
	// Config is loaded once before any command runs; tests may preset it.
	Config *config.Config
}

// NewRootCommand creates the root command for the snapgram server
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "snapgram",
		Short: "Snapgram social backend",
		Long:  "Snapgram serves the social app API: accounts, follows, posts, reels, stories, chat and the coin wallet.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Config == nil {
				opts.Config = config.Load()
			}
		},
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}
