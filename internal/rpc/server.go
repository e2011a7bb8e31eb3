package rpc

import (
	"go.uber.org/zap"

	"github.com/gramofon/gramofon/internal/library"
	"github.com/gramofon/gramofon/internal/player"
)

// ScanTrigger starts a background library scan.
type ScanTrigger interface {
	Trigger() bool
}

// Server binds the method catalog to the library storage and the playback
// controller. The registry is complete once NewServer returns; transports
// must not deliver requests before that.
type Server struct {
	log      *zap.Logger
	library  library.Storage
	scanner  ScanTrigger
	player   *player.Controller
	registry *Registry
}

// NewServer wires every method into a fresh registry.
func NewServer(log *zap.Logger, storage library.Storage, scanner ScanTrigger, controller *player.Controller) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		log:      log,
		library:  storage,
		scanner:  scanner,
		player:   controller,
		registry: NewRegistry(),
	}

	// library
	s.registry.Register("library_scan", s.libraryScan)
	s.registry.Register("library_get_statistics", s.libraryGetStatistics)

	// library - artists
	s.registry.Register("library_get_artists", s.libraryGetArtists)

	// library - albums
	s.registry.Register("library_get_albums", s.libraryGetAlbums)
	s.registry.Register("library_get_albums_by_artist", s.libraryGetAlbumsByArtist)
	s.registry.Register("library_get_album_ids_by_artist", s.libraryGetAlbumIDsByArtist)

	// library - files
	s.registry.Register("library_get_files", s.libraryGetFiles)
	s.registry.Register("library_get_files_of_artist", s.libraryGetFilesOfArtist)
	s.registry.Register("library_get_files_of_album", s.libraryGetFilesOfAlbum)
	s.registry.Register("library_get_file_ids_of_album", s.libraryGetFileIDsOfAlbum)

	// library - directories
	s.registry.Register("library_get_directories", s.libraryGetDirectories)
	s.registry.Register("library_list_directory", s.libraryListDirectory)

	// library - metadata
	s.registry.Register("library_get_metadata", s.libraryGetMetadata)
	s.registry.Register("library_update_metadata", s.libraryUpdateMetadata)

	// library - playlists
	s.registry.Register("library_create_playlist", s.libraryCreatePlaylist)
	s.registry.Register("library_delete_playlist", s.libraryDeletePlaylist)
	s.registry.Register("library_add_playlist_item", s.libraryAddPlaylistItem)
	s.registry.Register("library_delete_playlist_item", s.libraryDeletePlaylistItem)
	s.registry.Register("library_get_playlists", s.libraryGetPlaylists)

	// player - queue
	s.registry.Register("player_queue_file", s.playerQueueFile)
	s.registry.Register("player_queue_directory", s.playerQueueDirectory)
	s.registry.Register("player_queue_album", s.playerQueueAlbum)
	s.registry.Register("player_queue_playlist", s.playerQueuePlaylist)
	s.registry.Register("player_queue_get", s.playerQueueGet)
	s.registry.Register("player_queue_remove", s.playerQueueRemove)
	s.registry.Register("player_queue_remove_all", s.playerQueueRemoveAll)

	// player - status
	s.registry.Register("player_status", s.playerStatus)

	// player - control
	s.registry.Register("player_play", s.playerPlay)
	s.registry.Register("player_pause", s.playerPause)
	s.registry.Register("player_stop", s.playerStop)
	s.registry.Register("player_seek", s.playerSeek)
	s.registry.Register("player_prev", s.playerPrev)
	s.registry.Register("player_next", s.playerNext)
	s.registry.Register("player_goto", s.playerGoto)

	// player - volume
	s.registry.Register("player_get_volume", s.playerGetVolume)
	s.registry.Register("player_set_volume", s.playerSetVolume)
	s.registry.Register("player_inc_volume", s.playerIncVolume)
	s.registry.Register("player_dec_volume", s.playerDecVolume)

	return s
}

// Registry exposes the populated method table.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Processor builds a request processor over this server's registry.
func (s *Server) Processor() *Processor {
	return NewProcessor(s.log, s.registry)
}
