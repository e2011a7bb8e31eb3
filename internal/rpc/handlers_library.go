package rpc

import (
	"errors"
	"fmt"

	"github.com/gramofon/gramofon/internal/library"
	"github.com/gramofon/gramofon/pkg/remote"
)

func (s *Server) libraryScan(remote.Params) (any, error) {
	if s.scanner == nil {
		return nil, errors.New("no scanner configured")
	}
	if !s.scanner.Trigger() {
		s.log.Debug("scan already running")
	}
	return nil, nil
}

func (s *Server) libraryGetStatistics(remote.Params) (any, error) {
	stat, err := s.library.Statistics()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"num_of_artists":     stat.NumArtists,
		"num_of_albums":      stat.NumAlbums,
		"num_of_files":       stat.NumFiles,
		"sum_of_song_length": stat.SumSongLength,
	}, nil
}

func (s *Server) libraryGetArtists(remote.Params) (any, error) {
	artists, err := s.library.Artists()
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(artists))
	for _, artist := range artists {
		out = append(out, map[string]any{
			"id":     artist.ID,
			"name":   artist.Name,
			"albums": artist.Albums,
		})
	}
	return out, nil
}

func encodeAlbum(album library.Album) map[string]any {
	return map[string]any{
		"id":        album.ID,
		"name":      album.Name,
		"artist_id": album.ArtistID,
		"songs":     album.Songs,
		"length":    album.Length,
	}
}

func (s *Server) libraryGetAlbums(remote.Params) (any, error) {
	albums, err := s.library.Albums()
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(albums))
	for _, album := range albums {
		out = append(out, encodeAlbum(album))
	}
	return out, nil
}

func (s *Server) libraryGetAlbumsByArtist(params remote.Params) (any, error) {
	artistID, err := params.Int("artist_id")
	if err != nil {
		return nil, err
	}
	albums, err := s.library.AlbumsByArtist(artistID)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(albums))
	for _, album := range albums {
		out = append(out, encodeAlbum(album))
	}
	return out, nil
}

func (s *Server) libraryGetAlbumIDsByArtist(params remote.Params) (any, error) {
	artistID, err := params.Int("artist_id")
	if err != nil {
		return nil, err
	}
	albums, err := s.library.AlbumsByArtist(artistID)
	if err != nil {
		return nil, err
	}
	ids := make([]any, 0, len(albums))
	for _, album := range albums {
		ids = append(ids, album.ID)
	}
	return ids, nil
}

func encodeFile(file library.File) map[string]any {
	return map[string]any{
		"id":          file.ID,
		"path":        file.Path,
		"name":        file.Name,
		"title":       file.Title,
		"year":        file.Year,
		"track_index": file.TrackIndex,
		"length":      file.Length,
		"codec":       file.Codec,
		"sample_rate": file.SampleRate,
		"artist_id":   file.ArtistID,
		"album_id":    file.AlbumID,
	}
}

func (s *Server) libraryGetFiles(remote.Params) (any, error) {
	files, err := s.library.Files()
	if err != nil {
		return nil, err
	}
	return encodeFiles(files), nil
}

func (s *Server) libraryGetFilesOfArtist(params remote.Params) (any, error) {
	artistID, err := params.Int("artist_id")
	if err != nil {
		return nil, err
	}
	files, err := s.library.FilesOfArtist(artistID)
	if err != nil {
		return nil, err
	}
	return encodeFiles(files), nil
}

func (s *Server) libraryGetFilesOfAlbum(params remote.Params) (any, error) {
	albumID, err := params.Int("album_id")
	if err != nil {
		return nil, err
	}
	files, err := s.library.FilesOfAlbum(albumID)
	if err != nil {
		return nil, err
	}
	return encodeFiles(files), nil
}

func (s *Server) libraryGetFileIDsOfAlbum(params remote.Params) (any, error) {
	albumID, err := params.Int("album_id")
	if err != nil {
		return nil, err
	}
	files, err := s.library.FilesOfAlbum(albumID)
	if err != nil {
		return nil, err
	}
	ids := make([]any, 0, len(files))
	for _, file := range files {
		ids = append(ids, file.ID)
	}
	return ids, nil
}

func encodeFiles(files []library.File) []any {
	out := make([]any, 0, len(files))
	for _, file := range files {
		out = append(out, encodeFile(file))
	}
	return out
}

func (s *Server) libraryGetDirectories(remote.Params) (any, error) {
	dirs, err := s.library.Directories()
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, map[string]any{
			"id":        dir.ID,
			"name":      dir.Name,
			"parent_id": dir.ParentID,
		})
	}
	return out, nil
}

func (s *Server) libraryListDirectory(params remote.Params) (any, error) {
	directoryID, err := params.Int("directory_id")
	if err != nil {
		return nil, err
	}

	dirs, err := s.library.Subdirectories(directoryID)
	if err != nil {
		return nil, err
	}
	files, err := s.library.FilesOfDirectory(directoryID)
	if err != nil {
		return nil, err
	}

	// Subdirectories first, then files.
	out := make([]any, 0, len(dirs)+len(files))
	for _, dir := range dirs {
		out = append(out, map[string]any{
			"type": "directory",
			"id":   dir.ID,
			"name": dir.Name,
		})
	}
	for _, file := range files {
		entry := encodeFile(file)
		entry["type"] = "file"
		out = append(out, entry)
	}
	return out, nil
}

func (s *Server) libraryGetMetadata(params remote.Params) (any, error) {
	id, err := params.Int("id")
	if err != nil {
		return nil, err
	}
	file, err := s.library.File(id)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"id":          file.ID,
		"name":        file.Name,
		"artist":      file.Artist,
		"album":       file.Album,
		"title":       file.Title,
		"year":        file.Year,
		"track_index": file.TrackIndex,
	}, nil
}

func (s *Server) libraryUpdateMetadata(params remote.Params) (any, error) {
	id, err := params.Int("id")
	if err != nil {
		return nil, err
	}
	meta := library.Metadata{
		Artist:     params.StringOr("artist", ""),
		Album:      params.StringOr("album", ""),
		Title:      params.StringOr("title", ""),
		Year:       params.IntOr("year", 0),
		TrackIndex: params.IntOr("track_index", 0),
	}
	if err := s.library.UpdateMetadata(id, meta); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) libraryCreatePlaylist(params remote.Params) (any, error) {
	name, err := params.String("name")
	if err != nil {
		return nil, err
	}
	id, err := s.library.CreatePlaylist(name)
	if err != nil {
		return nil, err
	}
	return map[string]any{"id": id}, nil
}

func (s *Server) libraryDeletePlaylist(params remote.Params) (any, error) {
	id, err := params.Int("id")
	if err != nil {
		return nil, err
	}
	return nil, s.library.DeletePlaylist(id)
}

func (s *Server) libraryAddPlaylistItem(params remote.Params) (any, error) {
	playlistID, err := params.Int("playlist_id")
	if err != nil {
		return nil, err
	}
	itemType, err := params.String("type")
	if err != nil {
		return nil, err
	}
	itemID, err := params.Int("item_id")
	if err != nil {
		return nil, err
	}
	switch itemType {
	case "file", "directory", "album":
	default:
		return nil, fmt.Errorf("%w: type must be file, directory or album", remote.ErrInvalidParams)
	}
	return nil, s.library.AddPlaylistItem(playlistID, library.PlaylistEntry{Type: itemType, ItemID: itemID})
}

func (s *Server) libraryDeletePlaylistItem(params remote.Params) (any, error) {
	playlistID, err := params.Int("playlist_id")
	if err != nil {
		return nil, err
	}
	index, err := params.Int("index")
	if err != nil {
		return nil, err
	}
	return nil, s.library.DeletePlaylistItem(playlistID, index)
}

func (s *Server) libraryGetPlaylists(remote.Params) (any, error) {
	playlists, err := s.library.Playlists()
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(playlists))
	for _, pl := range playlists {
		items := make([]any, 0, len(pl.Entries))
		for _, entry := range pl.Entries {
			items = append(items, map[string]any{
				"type": entry.Type,
				"id":   entry.ItemID,
			})
		}
		out = append(out, map[string]any{
			"id":    pl.ID,
			"name":  pl.Name,
			"items": items,
		})
	}
	return out, nil
}
