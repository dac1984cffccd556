package cli

import (
	"github.com/guidant/guidant/commands"
	"github.com/spf13/cobra"
)

var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "List active displays",
	Long:  `Lists the active displays with their bounds. The primary display is index 0.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		response := commands.DisplaysCommand()
		if err := printJson(cmd, response); err != nil {
			return err
		}
		if response.Status == "error" {
			return &commands.Error{Kind: commands.KindPlatform, Message: response.Error}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(displaysCmd)
}
