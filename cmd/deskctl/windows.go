package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/webdesk/pkg/client"
)

func (cl *cli) windowsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "windows",
		Short: "List open windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cl.context(cmd)
			defer cancel()

			list, err := cl.client.Windows(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}
}

func (cl *cli) windowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window [id]",
		Short: "Show one window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := cl.context(cmd)
			defer cancel()

			win, err := cl.client.Window(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), win)
		},
	}
}

func (cl *cli) closeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close [id]",
		Short: "Close a window and its children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := cl.context(cmd)
			defer cancel()

			closed, err := cl.client.Close(ctx, id)
			if err != nil {
				return err
			}
			if !closed {
				return fmt.Errorf("window %d is not open", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "closed %d\n", id)
			return nil
		},
	}
}

type windowAction func(c *client.Client, ctx context.Context, id int) (*client.ActionResult, error)

// actionCmd builds a command that applies action to one window
func (cl *cli) actionCmd(name, short string, action windowAction) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := cl.context(cmd)
			defer cancel()

			res, err := action(cl.client, ctx, id)
			if err != nil {
				return err
			}
			return printResult(cmd, name, id, res)
		},
	}
}

func (cl *cli) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move [id] [top] [left]",
		Short: "Move a window without animation",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			pos, err := parseInts(args[1:], "top", "left")
			if err != nil {
				return err
			}

			ctx, cancel := cl.context(cmd)
			defer cancel()

			res, err := cl.client.Move(ctx, id, pos[0], pos[1])
			if err != nil {
				return err
			}
			return printResult(cmd, "move", id, res)
		},
	}
}

func (cl *cli) resizeCmd() *cobra.Command {
	var top, left int

	cmd := &cobra.Command{
		Use:   "resize [id] [width] [height]",
		Short: "Resize a window, clamped to the layout area",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			size, err := parseInts(args[1:], "width", "height")
			if err != nil {
				return err
			}

			ctx, cancel := cl.context(cmd)
			defer cancel()

			res, err := cl.client.Resize(ctx, id, size[0], size[1], top, left)
			if err != nil {
				return err
			}
			return printResult(cmd, "resize", id, res)
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "window top offset")
	cmd.Flags().IntVar(&left, "left", 0, "window left offset")
	return cmd
}

func (cl *cli) childCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "child [parent-id] [package-id]",
		Short: "Open a window owned by another; closing the parent closes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := cl.context(cmd)
			defer cancel()

			win, err := cl.client.OpenChild(ctx, parent, args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), win)
		},
	}
}

// printResult prints the window after an action, or fails when the
// action changed nothing
func printResult(cmd *cobra.Command, name string, id int, res *client.ActionResult) error {
	if !res.Success {
		return fmt.Errorf("%s %d had no effect", name, id)
	}
	return printJSON(cmd.OutOrStdout(), res.Window)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid window id %q: must be a positive integer", arg)
	}
	return id, nil
}

func parseInts(args []string, names ...string) ([]int, error) {
	out := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", names[i], arg)
		}
		out[i] = v
	}
	return out, nil
}
