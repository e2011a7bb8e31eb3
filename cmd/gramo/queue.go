package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gramofon/gramofon/internal/adapters/output"
)

func queueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and edit the playback queue",
	}
	cmd.AddCommand(queueShowCommand())
	cmd.AddCommand(queueAddCommand())
	cmd.AddCommand(queueRemoveCommand())
	cmd.AddCommand(queueClearCommand())
	return cmd
}

func queueShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the queue tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.callContext()
			defer cancel()

			var queue []output.QueueNode
			if err := app.client.CallInto(ctx, "player_queue_get", nil, &queue); err != nil {
				return err
			}
			return app.printer.Print(queue)
		},
	}
}

func queueAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file|directory|album|playlist> <id>",
		Short: "Append a library item to the queue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("id must be an integer: %q", args[1])
			}
			switch args[0] {
			case "file":
				return fromContext(cmd).ack("player_queue_file", map[string]any{"id": id})
			case "directory":
				return fromContext(cmd).ack("player_queue_directory", map[string]any{"directory_id": id})
			case "album":
				return fromContext(cmd).ack("player_queue_album", map[string]any{"id": id})
			case "playlist":
				return fromContext(cmd).ack("player_queue_playlist", map[string]any{"id": id})
			default:
				return fmt.Errorf("unknown item type %q", args[0])
			}
		},
	}
}

func queueRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove a queue entry (dotted path, e.g. 0.2)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndexPath(args[0])
			if err != nil {
				return err
			}
			return fromContext(cmd).ack("player_queue_remove", map[string]any{"index": index})
		},
	}
}

func queueClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fromContext(cmd).ack("player_queue_remove_all", nil)
		},
	}
}
