package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/shared/codec"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

func (cl *cli) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health and counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cl.context(cmd)
			defer cancel()

			health, err := cl.client.Health(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), health)
		},
	}
}

func (cl *cli) launcherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launcher",
		Short: "List apps shown on the desktop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cl.context(cmd)
			defer cancel()

			launcher, err := cl.client.Launcher(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), launcher.Apps)
		},
	}
}

func (cl *cli) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register [manifest]",
		Short: "Register an app from a yaml, toml or json manifest",
		Long: `Register an app from a manifest file. A relative image icon next to the
manifest is inlined as a data URI before the app is sent to the server.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readManifest(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := cl.context(cmd)
			defer cancel()

			if err := cl.client.RegisterApp(ctx, m.Request()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", m.PackageID)
			return nil
		},
	}
}

func (cl *cli) launchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launch [package-id]",
		Short: "Activate the next window of an app, opening one if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cl.context(cmd)
			defer cancel()

			win, err := cl.client.Launch(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), win)
		},
	}
}

func (cl *cli) openCmd() *cobra.Command {
	var (
		width, height, top, left int
		maximized                bool
	)

	cmd := &cobra.Command{
		Use:   "open [package-id]",
		Short: "Open a new window of an app",
		Long: `Open a new window of an app. Geometry flags override the app defaults;
unset flags keep them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			req := &types.OpenWindowRequest{}
			if flags.Changed("width") {
				req.Width = &width
			}
			if flags.Changed("height") {
				req.Height = &height
			}
			if flags.Changed("top") {
				req.Top = &top
			}
			if flags.Changed("left") {
				req.Left = &left
			}
			if flags.Changed("maximized") {
				req.Maximized = &maximized
			}
			if *req == (types.OpenWindowRequest{}) {
				req = nil
			}

			ctx, cancel := cl.context(cmd)
			defer cancel()

			win, err := cl.client.Open(ctx, args[0], req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), win)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "window width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "window height in pixels")
	cmd.Flags().IntVar(&top, "top", 0, "window top offset")
	cmd.Flags().IntVar(&left, "left", 0, "window left offset")
	cmd.Flags().BoolVar(&maximized, "maximized", false, "open maximized")
	return cmd
}

// readManifest decodes a manifest and inlines a relative image icon
func readManifest(path string) (registry.Manifest, error) {
	var m registry.Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := codec.Decode(path, data, &m); err != nil {
		return m, err
	}
	m.Icon = registry.ResolveIcon(os.DirFS(filepath.Dir(path)), ".", m.Icon)
	return m, nil
}
