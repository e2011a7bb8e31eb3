package library

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Metadata carries the user-editable fields of a file.
type Metadata struct {
	Artist     string
	Album      string
	Title      string
	Year       int
	TrackIndex int
}

// Storage resolves library records by identifier. Implementations must be
// safe for concurrent use; the RPC layer calls them from transport workers.
type Storage interface {
	Statistics() (Statistics, error)

	Artists() ([]Artist, error)
	Albums() ([]Album, error)
	AlbumsByArtist(artistID int) ([]Album, error)

	Files() ([]File, error)
	FilesOfArtist(artistID int) ([]File, error)
	FilesOfAlbum(albumID int) ([]File, error)
	FilesOfDirectory(directoryID int) ([]File, error)
	File(id int) (File, error)
	UpdateMetadata(id int, meta Metadata) error

	Directories() ([]Directory, error)
	Directory(id int) (Directory, error)
	Subdirectories(directoryID int) ([]Directory, error)

	Album(id int) (Album, error)

	Playlists() ([]Playlist, error)
	Playlist(id int) (Playlist, error)
	CreatePlaylist(name string) (int, error)
	DeletePlaylist(id int) error
	AddPlaylistItem(playlistID int, entry PlaylistEntry) error
	DeletePlaylistItem(playlistID int, index int) error
}
