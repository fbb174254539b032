package main

import (
	"context"
	"fmt"

	"github.com/aretw0/wireframe"
	"github.com/aretw0/wireframe/internal/cli"
	"github.com/spf13/cobra"
)

// apply runs c and prints the id of any node it created.
func apply(ctx context.Context, app *cli.App, project string, c wireframe.Command) error {
	res, err := app.Apply(ctx, project, c)
	if err != nil {
		return err
	}
	if res.NodeID != "" {
		fmt.Fprintln(app.Out, res.NodeID)
	}
	return nil
}

var addCmd = &cobra.Command{
	Use:   "add <project> <type>",
	Short: "Add a widget into the target container, or after the target widget",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		target, _ := cmd.Flags().GetString("target")
		return apply(ctx, app, args[0], wireframe.Command{Op: wireframe.OpAdd, Type: args[1], ID: target})
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <project> <node>",
	Short: "Delete a widget and its subtree",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		return apply(ctx, app, args[0], wireframe.Command{Op: wireframe.OpDelete, ID: args[1]})
	}),
}

var moveCmd = &cobra.Command{
	Use:   "move <project> <node>",
	Short: "Move a widget under another parent",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		parent, _ := cmd.Flags().GetString("parent")
		slot, _ := cmd.Flags().GetString("slot")
		move := wireframe.Command{Op: wireframe.OpMoveNode, ID: args[1], Parent: parent, Slot: slot}
		if cmd.Flags().Changed("index") {
			index, _ := cmd.Flags().GetInt("index")
			move.Index = &index
		}
		return apply(ctx, app, args[0], move)
	}),
}

var reorderCmd = &cobra.Command{
	Use:   "reorder <project> <node>",
	Short: "Shift a widget among its siblings",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		by, _ := cmd.Flags().GetInt("by")
		return apply(ctx, app, args[0], wireframe.Command{Op: wireframe.OpMoveBy, ID: args[1], Delta: by})
	}),
}

var wrapCmd = &cobra.Command{
	Use:   "wrap <project> <node> <type>",
	Short: "Wrap a widget in a new container",
	Args:  cobra.ExactArgs(3),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		return apply(ctx, app, args[0], wireframe.Command{Op: wireframe.OpWrap, ID: args[1], Type: args[2]})
	}),
}

var setCmd = &cobra.Command{
	Use:   "set <project> <node> <property> <value>",
	Short: "Set a widget property",
	Long: `Set a widget property. The value is read as YAML, so true and 12 become a
boolean and a number; quote it to force a string.`,
	Args: cobra.ExactArgs(4),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		return apply(ctx, app, args[0], wireframe.Command{
			Op:    wireframe.OpSet,
			ID:    args[1],
			Name:  args[2],
			Value: cli.ParseValue(args[3]),
		})
	}),
}

func init() {
	rootCmd.AddCommand(addCmd, deleteCmd, moveCmd, reorderCmd, wrapCmd, setCmd)

	addCmd.Flags().String("target", "", "Node to add into or after (defaults to the root)")
	moveCmd.Flags().String("parent", "", "New parent node")
	moveCmd.Flags().Int("index", -1, "Position among the new siblings (default: append)")
	moveCmd.Flags().String("slot", "", "Parent slot (defaults to the parent's default slot)")
	_ = moveCmd.MarkFlagRequired("parent")
	reorderCmd.Flags().Int("by", 1, "Positions to shift; negative moves towards the front")
}
