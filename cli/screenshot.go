package cli

import (
	"github.com/guidant/guidant/commands"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot <save_path>",
	Short: "Save a PNG screenshot of the main display",
	Long: `Captures the full frame of the primary display and writes it as a PNG to
save_path, replacing any existing file. The parent directory must exist.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := commands.ParseScreenshotArgs(args)
		if err != nil {
			return report(cmd, err)
		}
		return run(cmd, req)
	},
}

var clickCmd = &cobra.Command{
	Use:   "click <x> <y>",
	Short: "Left click at screen coordinates",
	Long: `Posts a left mouse button down and up at (x, y) in the screen coordinate
space. Coordinates may be fractional or negative.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := commands.ParseClickArgs(args)
		if err != nil {
			return report(cmd, err)
		}
		return run(cmd, req)
	},
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	rootCmd.AddCommand(clickCmd)
}
