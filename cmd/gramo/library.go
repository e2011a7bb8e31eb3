package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gramofon/gramofon/internal/adapters/output"
)

func libraryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Browse and manage the media library",
	}
	cmd.AddCommand(libraryScanCommand())
	cmd.AddCommand(libraryStatsCommand())
	cmd.AddCommand(libraryArtistsCommand())
	cmd.AddCommand(libraryAlbumsCommand())
	cmd.AddCommand(libraryFilesCommand())
	cmd.AddCommand(libraryLsCommand())
	cmd.AddCommand(libraryMetaCommand())
	return cmd
}

func libraryScanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Trigger a library rescan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fromContext(cmd).ack("library_scan", nil)
		},
	}
}

func libraryStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.callContext()
			defer cancel()

			var stats output.Statistics
			if err := app.client.CallInto(ctx, "library_get_statistics", nil, &stats); err != nil {
				return err
			}
			return app.printer.Print(stats)
		},
	}
}

func libraryArtistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "artists",
		Short: "List artists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.callContext()
			defer cancel()

			var artists []output.Artist
			if err := app.client.CallInto(ctx, "library_get_artists", nil, &artists); err != nil {
				return err
			}
			return app.printer.Print(artists)
		},
	}
}

func libraryAlbumsCommand() *cobra.Command {
	var artistID int
	cmd := &cobra.Command{
		Use:   "albums",
		Short: "List albums, optionally for one artist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.callContext()
			defer cancel()

			method := "library_get_albums"
			var params map[string]any
			if cmd.Flags().Changed("artist") {
				method = "library_get_albums_by_artist"
				params = map[string]any{"artist_id": artistID}
			}

			var albums []output.Album
			if err := app.client.CallInto(ctx, method, params, &albums); err != nil {
				return err
			}
			return app.printer.Print(albums)
		},
	}
	cmd.Flags().IntVar(&artistID, "artist", 0, "restrict to one artist id")
	return cmd
}

func libraryFilesCommand() *cobra.Command {
	var artistID, albumID int
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List files, optionally for one artist or album",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.callContext()
			defer cancel()

			method := "library_get_files"
			var params map[string]any
			switch {
			case cmd.Flags().Changed("artist") && cmd.Flags().Changed("album"):
				return fmt.Errorf("use only one of --artist or --album")
			case cmd.Flags().Changed("artist"):
				method = "library_get_files_of_artist"
				params = map[string]any{"artist_id": artistID}
			case cmd.Flags().Changed("album"):
				method = "library_get_files_of_album"
				params = map[string]any{"album_id": albumID}
			}

			var files []output.File
			if err := app.client.CallInto(ctx, method, params, &files); err != nil {
				return err
			}
			return app.printer.Print(files)
		},
	}
	cmd.Flags().IntVar(&artistID, "artist", 0, "restrict to one artist id")
	cmd.Flags().IntVar(&albumID, "album", 0, "restrict to one album id")
	return cmd
}

func libraryLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [directory-id]",
		Short: "List directories, or one directory's contents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.callContext()
			defer cancel()

			if len(args) == 0 {
				var entries []output.DirectoryEntry
				if err := app.client.CallInto(ctx, "library_get_directories", nil, &entries); err != nil {
					return err
				}
				for i := range entries {
					entries[i].Type = "directory"
				}
				return app.printer.Print(entries)
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("directory id must be an integer: %q", args[0])
			}
			var entries []output.DirectoryEntry
			err = app.client.CallInto(ctx, "library_list_directory",
				map[string]any{"directory_id": id}, &entries)
			if err != nil {
				return err
			}
			return app.printer.Print(entries)
		},
	}
}

func libraryMetaCommand() *cobra.Command {
	var (
		artist string
		album  string
		title  string
		year   int
		track  int
	)
	cmd := &cobra.Command{
		Use:   "meta <file-id>",
		Short: "Show or update file metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.callContext()
			defer cancel()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("file id must be an integer: %q", args[0])
			}

			params := map[string]any{"id": id}
			update := false
			if cmd.Flags().Changed("artist") {
				params["artist"] = artist
				update = true
			}
			if cmd.Flags().Changed("album") {
				params["album"] = album
				update = true
			}
			if cmd.Flags().Changed("title") {
				params["title"] = title
				update = true
			}
			if cmd.Flags().Changed("year") {
				params["year"] = year
				update = true
			}
			if cmd.Flags().Changed("track") {
				params["track_index"] = track
				update = true
			}

			if update {
				if _, err := app.client.Call(ctx, "library_update_metadata", params); err != nil {
					return err
				}
			}

			var meta output.Metadata
			if err := app.client.CallInto(ctx, "library_get_metadata", map[string]any{"id": id}, &meta); err != nil {
				return err
			}
			return app.printer.Print(meta)
		},
	}
	cmd.Flags().StringVar(&artist, "artist", "", "set artist name")
	cmd.Flags().StringVar(&album, "album", "", "set album name")
	cmd.Flags().StringVar(&title, "title", "", "set title")
	cmd.Flags().IntVar(&year, "year", 0, "set year")
	cmd.Flags().IntVar(&track, "track", 0, "set track index")
	return cmd
}
