package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/webdesk/pkg/client"
)

// cli holds the persistent flags and the client built from them
type cli struct {
	server  string
	timeout time.Duration
	client  *client.Client
}

func newRootCmd() *cobra.Command {
	cl := &cli{}

	root := &cobra.Command{
		Use:   "deskctl",
		Short: "deskctl - command line client for a webdesk server",
		Long: `deskctl registers apps and drives windows on a running webdesk server
over its HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cl.client = client.New(cl.server).WithTimeout(cl.timeout)
		},
		// No RunE - shows help when no subcommand is provided
	}

	root.PersistentFlags().StringVar(&cl.server, "server", envOr("WEBDESK_URL", "http://localhost:8000"), "webdesk server URL")
	root.PersistentFlags().DurationVar(&cl.timeout, "timeout", client.DefaultTimeout, "request timeout")

	root.AddCommand(
		cl.healthCmd(),
		cl.launcherCmd(),
		cl.registerCmd(),
		cl.launchCmd(),
		cl.openCmd(),
		cl.windowsCmd(),
		cl.windowCmd(),
		cl.closeCmd(),
		cl.actionCmd("activate", "Bring a window to the front", (*client.Client).Activate),
		cl.actionCmd("maximize", "Toggle a window between maximized and its saved geometry", (*client.Client).Maximize),
		cl.actionCmd("minimize", "Toggle a window into its dock icon and back", (*client.Client).Minimize),
		cl.actionCmd("dock", "Click a window's dock icon", (*client.Client).ClickDock),
		cl.moveCmd(),
		cl.resizeCmd(),
		cl.childCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "deskctl: %v\n", err)
		os.Exit(1)
	}
}

// context bounds one command by the request timeout
func (cl *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), cl.timeout+time.Second)
}

func printJSON(out io.Writer, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
