package output

// Printer renders command results to stdout.
type Printer interface {
	Print(v any) error
}

// Ack is printed when a method succeeds without a result payload.
type Ack struct{}

// Artist is one row of library_get_artists.
type Artist struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Albums int    `json:"albums"`
}

// Album is one row of the album listings.
type Album struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ArtistID int    `json:"artist_id"`
	Songs    int    `json:"songs"`
	Length   int    `json:"length"`
}

// File is one row of the file listings.
type File struct {
	ID         int    `json:"id"`
	Path       string `json:"path"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
	TrackIndex int    `json:"track_index"`
	Length     int    `json:"length"`
	Codec      string `json:"codec"`
	SampleRate int    `json:"sample_rate"`
	ArtistID   int    `json:"artist_id"`
	AlbumID    int    `json:"album_id"`
}

// Metadata is the library_get_metadata result.
type Metadata struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Title      string `json:"title"`
	Year       int    `json:"year"`
	TrackIndex int    `json:"track_index"`
}

// DirectoryEntry is one mixed row of library_list_directory.
type DirectoryEntry struct {
	Type  string `json:"type"`
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Statistics is the library_get_statistics result.
type Statistics struct {
	NumArtists    int `json:"num_of_artists"`
	NumAlbums     int `json:"num_of_albums"`
	NumFiles      int `json:"num_of_files"`
	SumSongLength int `json:"sum_of_song_length"`
}

// Status is the player_status result.
type Status struct {
	Current  *int  `json:"current"`
	State    int   `json:"state"`
	Position int   `json:"position"`
	Volume   int   `json:"volume"`
	Index    []int `json:"index"`
}

// PlaylistEntry is one typed entry of a playlist summary.
type PlaylistEntry struct {
	Type string `json:"type"`
	ID   int    `json:"id"`
}

// Playlist is one row of library_get_playlists.
type Playlist struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Items []PlaylistEntry `json:"items"`
}

// QueueNode is one node of the player_queue_get tree. Children live under
// "files" or "items" depending on the node type.
type QueueNode map[string]any

// Volume is the player_get_volume result wrapped for printing.
type Volume int
