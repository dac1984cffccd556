package cli

import (
	"errors"
	"fmt"

	"github.com/guidant/guidant/daemon"
	"github.com/guidant/guidant/server"
	"github.com/guidant/guidant/utils"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server management commands",
	Long:  `Commands for running the HTTP server that exposes screenshot and click.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server",
	Long: `Starts an HTTP server exposing POST /screenshot, POST /click, JSON-RPC on
/rpc and WebSocket JSON-RPC on /ws.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := server.Options{EnableCORS: enableCORS}
		if requireAuth {
			token, err := server.LoadToken()
			if err != nil {
				return fmt.Errorf("cannot enable auth: %w", err)
			}
			opts.Token = token
		}

		if isDaemon && !daemon.IsChild() {
			addr, err := server.NormalizeAddress(listenAddr)
			if err != nil {
				return err
			}
			if err := utils.CheckAddressAvailable(addr); err != nil {
				return err
			}

			_, err = daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Server daemon spawned, attempting to listen on %s\n", displayAddress(listenAddr))
			return nil
		}

		return server.StartServer(listenAddr, opts)
	},
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop a running server",
	Long:  `Connects to the server and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := server.LoadToken()
		if err != nil && !errors.Is(err, server.ErrNoToken) {
			utils.Verbose("Could not read server token: %v", err)
		}

		if err := daemon.KillServer(listenAddr, token); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Server shutdown command sent successfully")
		return nil
	},
}

var serverTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Create or delete the server auth token",
	Long: `Generates a random bearer token, stores it in the OS keyring and prints it.
'server start --auth' then requires it on every request.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if deleteToken {
			if err := server.DeleteToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Server token deleted")
			return nil
		}

		token, err := utils.GenerateToken(32)
		if err != nil {
			return err
		}
		if err := server.StoreToken(token); err != nil {
			return fmt.Errorf("failed to store token in keyring: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func displayAddress(addr string) string {
	if addr == "" {
		return server.DefaultAddress
	}
	return addr
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// add server subcommands
	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverKillCmd)
	serverCmd.AddCommand(serverTokenCmd)

	// server start flags
	serverStartCmd.Flags().StringVar(&listenAddr, "listen", "", fmt.Sprintf("Address to listen on (default: %s)", server.DefaultAddress))
	serverStartCmd.Flags().BoolVar(&enableCORS, "cors", false, "Enable CORS support")
	serverStartCmd.Flags().BoolVarP(&isDaemon, "daemon", "d", false, "Run server in daemon mode (background)")
	serverStartCmd.Flags().BoolVar(&requireAuth, "auth", false, "Require the keyring token as a bearer token")

	// server kill flags
	serverKillCmd.Flags().StringVar(&listenAddr, "listen", "", fmt.Sprintf("Address of server to kill (default: %s)", server.DefaultAddress))

	// server token flags
	serverTokenCmd.Flags().BoolVar(&deleteToken, "delete", false, "Delete the stored token")
}
