package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/guidant/guidant/commands"
	"github.com/guidant/guidant/utils"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command. Flag parsing is left to the
// capability commands so that "-5" reaches the coordinate parser and
// any unrecognized first argument is echoed back verbatim.
var rootCmd = &cobra.Command{
	Use:   "main <command> [options]",
	Short: "Capture the main display and synthesize mouse clicks",
	Long: `A minimal desktop automation tool: save a PNG screenshot of the primary
display, or post a left click at screen coordinates.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := commands.Parse(args)
		if err != nil {
			return report(cmd, err)
		}
		return run(cmd, inv)
	},
}

func initConfig() {
	utils.SetVerbose(verbose)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	// "help" is not a command here; "main help" is an unknown command
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
}

// Execute runs the root command. Errors of type *commands.Error have
// already been printed; callers only need commands.ExitCode.
func Execute() error {
	return dispatch(os.Args[1:])
}

// dispatch hands args to cobra only when the first one names a
// subcommand. cobra looks past leading flags when resolving subcommands,
// which would turn "-v screenshot a.png" into a screenshot saved to "-v".
// Everything else goes to the root parser and comes back as an unknown
// command or a usage error.
func dispatch(args []string) error {
	if len(args) == 0 || !isSubcommand(args[0]) {
		return rootCmd.RunE(rootCmd, args)
	}

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func isSubcommand(name string) bool {
	for _, c := range rootCmd.Commands() {
		if c.IsAvailableCommand() && (c.Name() == name || c.HasAlias(name)) {
			return true
		}
	}
	return false
}

// run performs a parsed invocation and prints its status line.
func run(cmd *cobra.Command, inv commands.Invocation) error {
	switch req := inv.(type) {
	case commands.ScreenshotRequest:
		resp, err := commands.ScreenshotCommand(req)
		if err != nil {
			return report(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	case commands.ClickRequest:
		resp, err := commands.ClickCommand(req)
		if err != nil {
			return report(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	case commands.UnknownCommand:
		return report(cmd, req.Err())
	default:
		return fmt.Errorf("unhandled invocation %T", inv)
	}
	return nil
}

// report prints a command failure on the stream its kind belongs to.
// Platform failures go to stderr; usage and write errors go to stdout.
func report(cmd *cobra.Command, err error) error {
	var cmdErr *commands.Error
	if !errors.As(err, &cmdErr) {
		return err
	}

	if cmdErr.Kind == commands.KindPlatform {
		fmt.Fprintln(cmd.ErrOrStderr(), cmdErr.Message)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), cmdErr.Message)
	}
	return err
}

// printJson is a helper function to print JSON responses
func printJson(cmd *cobra.Command, data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
