package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gramofon/gramofon/internal/adapters/output"
)

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show player status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.callContext()
			defer cancel()

			var status output.Status
			if err := app.client.CallInto(ctx, "player_status", nil, &status); err != nil {
				return err
			}
			return app.printer.Print(status)
		},
	}
}

func playCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start or resume playback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fromContext(cmd).ack("player_play", nil)
		},
	}
}

func pauseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause or resume playback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fromContext(cmd).ack("player_pause", nil)
		},
	}
}

func stopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop playback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fromContext(cmd).ack("player_stop", nil)
		},
	}
}

func seekCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seek <seconds>",
		Short: "Seek within the current track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("seconds must be an integer: %q", args[0])
			}
			return fromContext(cmd).ack("player_seek", map[string]any{"seconds": seconds})
		},
	}
}

func nextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Skip to the next track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fromContext(cmd).ack("player_next", nil)
		},
	}
}

func prevCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Go back to the previous track",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fromContext(cmd).ack("player_prev", nil)
		},
	}
}

func gotoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "goto <index>",
		Short: "Jump to a queue position (dotted path, e.g. 0.2)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndexPath(args[0])
			if err != nil {
				return err
			}
			return fromContext(cmd).ack("player_goto", map[string]any{"index": index})
		},
	}
}

// parseIndexPath turns "0.2.1" into the index array the daemon expects.
func parseIndexPath(arg string) ([]any, error) {
	parts := strings.Split(strings.TrimSpace(arg), ".")
	index := make([]any, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("index path must be dotted integers: %q", arg)
		}
		index = append(index, n)
	}
	return index, nil
}
