package library

// Artist is one library artist.
type Artist struct {
	ID     int
	Name   string
	Albums int
}

// Album is one library album.
type Album struct {
	ID       int
	Name     string
	ArtistID int
	Songs    int
	Length   int
}

// File is one scanned media file. Artist and Album names are filled only by
// lookups that join them in.
type File struct {
	ID          int
	Path        string
	Name        string
	Title       string
	Year        int
	TrackIndex  int
	Length      int
	Codec       string
	SampleRate  int
	ArtistID    int
	AlbumID     int
	DirectoryID int
	Artist      string
	Album       string
}

// Directory is one library directory.
type Directory struct {
	ID       int
	Name     string
	ParentID int
}

// PlaylistEntry is one typed entry of a stored playlist definition.
type PlaylistEntry struct {
	Type   string
	ItemID int
}

// Playlist is a stored playlist definition.
type Playlist struct {
	ID      int
	Name    string
	Entries []PlaylistEntry
}

// Statistics summarizes the library contents.
type Statistics struct {
	NumArtists    int
	NumAlbums     int
	NumFiles      int
	SumSongLength int
}
