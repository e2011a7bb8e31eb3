package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gramofon/gramofon/internal/adapters/output"
)

func playlistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Manage stored playlists",
	}
	cmd.AddCommand(playlistListCommand())
	cmd.AddCommand(playlistCreateCommand())
	cmd.AddCommand(playlistDeleteCommand())
	cmd.AddCommand(playlistAddCommand())
	cmd.AddCommand(playlistRemoveCommand())
	return cmd
}

func playlistListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.callContext()
			defer cancel()

			var playlists []output.Playlist
			if err := app.client.CallInto(ctx, "library_get_playlists", nil, &playlists); err != nil {
				return err
			}
			return app.printer.Print(playlists)
		},
	}
}

func playlistCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.callContext()
			defer cancel()

			var created struct {
				ID int `json:"id"`
			}
			err := app.client.CallInto(ctx, "library_create_playlist",
				map[string]any{"name": args[0]}, &created)
			if err != nil {
				return err
			}
			return app.printer.Print(output.Playlist{ID: created.ID, Name: args[0]})
		},
	}
}

func playlistDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("playlist id must be an integer: %q", args[0])
			}
			return fromContext(cmd).ack("library_delete_playlist", map[string]any{"id": id})
		},
	}
}

func playlistAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <playlist-id> <file|directory|album> <item-id>",
		Short: "Append an item to a playlist",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			playlistID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("playlist id must be an integer: %q", args[0])
			}
			itemID, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("item id must be an integer: %q", args[2])
			}
			return fromContext(cmd).ack("library_add_playlist_item", map[string]any{
				"playlist_id": playlistID,
				"type":        args[1],
				"item_id":     itemID,
			})
		},
	}
}

func playlistRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <playlist-id> <index>",
		Short: "Remove the item at a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			playlistID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("playlist id must be an integer: %q", args[0])
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be an integer: %q", args[1])
			}
			return fromContext(cmd).ack("library_delete_playlist_item", map[string]any{
				"playlist_id": playlistID,
				"index":       index,
			})
		},
	}
}
