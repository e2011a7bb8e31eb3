package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gramofon/gramofon/internal/adapters/output"
)

func volumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vol [<0..100>|up|down]",
		Short: "Show or change the volume",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)

			if len(args) == 0 {
				ctx, cancel := app.callContext()
				defer cancel()
				var level output.Volume
				if err := app.client.CallInto(ctx, "player_get_volume", nil, &level); err != nil {
					return err
				}
				return app.printer.Print(level)
			}

			switch args[0] {
			case "up", "+":
				return app.ack("player_inc_volume", nil)
			case "down", "-":
				return app.ack("player_dec_volume", nil)
			}
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("volume must be 0-100, up or down: %q", args[0])
			}
			return app.ack("player_set_volume", map[string]any{"level": level})
		},
	}
}
