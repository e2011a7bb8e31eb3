package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/gramofon/gramofon/internal/library"
)

// Store is a SQLite-backed library storage.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes the library database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the underlying database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) init() error {
	stmts := []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
		`CREATE TABLE IF NOT EXISTS artists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS albums (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			artist_id INTEGER NOT NULL DEFAULT 0,
			UNIQUE(name, artist_id)
		);`,
		`CREATE TABLE IF NOT EXISTS directories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			parent_id INTEGER NOT NULL DEFAULT 0,
			UNIQUE(name, parent_id)
		);`,
		`CREATE TABLE IF NOT EXISTS files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			year INTEGER NOT NULL DEFAULT 0,
			track_index INTEGER NOT NULL DEFAULT 0,
			length INTEGER NOT NULL DEFAULT 0,
			codec TEXT NOT NULL DEFAULT '',
			sample_rate INTEGER NOT NULL DEFAULT 0,
			artist_id INTEGER NOT NULL DEFAULT 0,
			album_id INTEGER NOT NULL DEFAULT 0,
			directory_id INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_files_artist ON files(artist_id);`,
		`CREATE INDEX IF NOT EXISTS idx_files_album ON files(album_id);`,
		`CREATE INDEX IF NOT EXISTS idx_files_directory ON files(directory_id);`,
		`CREATE TABLE IF NOT EXISTS playlists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS playlist_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
			pos INTEGER NOT NULL,
			type TEXT NOT NULL,
			item_id INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_playlist_items ON playlist_items(playlist_id, pos);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Statistics summarizes the indexed library.
func (s *Store) Statistics() (library.Statistics, error) {
	var stat library.Statistics
	row := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM artists),
			(SELECT COUNT(*) FROM albums),
			(SELECT COUNT(*) FROM files),
			(SELECT COALESCE(SUM(length), 0) FROM files);
	`)
	if err := row.Scan(&stat.NumArtists, &stat.NumAlbums, &stat.NumFiles, &stat.SumSongLength); err != nil {
		return library.Statistics{}, err
	}
	return stat, nil
}

// Artists lists all artists with their album counts.
func (s *Store) Artists() ([]library.Artist, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.name, COUNT(DISTINCT f.album_id)
		FROM artists a LEFT JOIN files f ON f.artist_id = a.id AND f.album_id != 0
		GROUP BY a.id ORDER BY a.name;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []library.Artist
	for rows.Next() {
		var artist library.Artist
		if err := rows.Scan(&artist.ID, &artist.Name, &artist.Albums); err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

const albumSelect = `
	SELECT a.id, a.name, a.artist_id, COUNT(f.id), COALESCE(SUM(f.length), 0)
	FROM albums a LEFT JOIN files f ON f.album_id = a.id
`

// Albums lists all albums with song counts and total length.
func (s *Store) Albums() ([]library.Album, error) {
	return s.queryAlbums(albumSelect + ` GROUP BY a.id ORDER BY a.name;`)
}

// AlbumsByArtist lists the albums of one artist.
func (s *Store) AlbumsByArtist(artistID int) ([]library.Album, error) {
	return s.queryAlbums(albumSelect+` WHERE a.artist_id = ? GROUP BY a.id ORDER BY a.name;`, artistID)
}

// Album returns one album by id.
func (s *Store) Album(id int) (library.Album, error) {
	albums, err := s.queryAlbums(albumSelect+` WHERE a.id = ? GROUP BY a.id;`, id)
	if err != nil {
		return library.Album{}, err
	}
	if len(albums) == 0 {
		return library.Album{}, fmt.Errorf("album %d: %w", id, library.ErrNotFound)
	}
	return albums[0], nil
}

func (s *Store) queryAlbums(query string, args ...any) ([]library.Album, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []library.Album
	for rows.Next() {
		var album library.Album
		if err := rows.Scan(&album.ID, &album.Name, &album.ArtistID, &album.Songs, &album.Length); err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}

const fileSelect = `
	SELECT f.id, f.path, f.name, f.title, f.year, f.track_index, f.length,
	       f.codec, f.sample_rate, f.artist_id, f.album_id, f.directory_id,
	       COALESCE(ar.name, ''), COALESCE(al.name, '')
	FROM files f
	LEFT JOIN artists ar ON ar.id = f.artist_id
	LEFT JOIN albums al ON al.id = f.album_id
`

// Files lists every indexed file.
func (s *Store) Files() ([]library.File, error) {
	return s.queryFiles(fileSelect + ` ORDER BY f.path;`)
}

// FilesOfArtist lists the files of one artist.
func (s *Store) FilesOfArtist(artistID int) ([]library.File, error) {
	return s.queryFiles(fileSelect+` WHERE f.artist_id = ? ORDER BY al.name, f.track_index, f.name;`, artistID)
}

// FilesOfAlbum lists the files of one album in track order.
func (s *Store) FilesOfAlbum(albumID int) ([]library.File, error) {
	return s.queryFiles(fileSelect+` WHERE f.album_id = ? ORDER BY f.track_index, f.name;`, albumID)
}

// FilesOfDirectory lists the files directly inside one directory.
func (s *Store) FilesOfDirectory(directoryID int) ([]library.File, error) {
	return s.queryFiles(fileSelect+` WHERE f.directory_id = ? ORDER BY f.name;`, directoryID)
}

// File returns one file by id.
func (s *Store) File(id int) (library.File, error) {
	files, err := s.queryFiles(fileSelect+` WHERE f.id = ?;`, id)
	if err != nil {
		return library.File{}, err
	}
	if len(files) == 0 {
		return library.File{}, fmt.Errorf("file %d: %w", id, library.ErrNotFound)
	}
	return files[0], nil
}

func (s *Store) queryFiles(query string, args ...any) ([]library.File, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []library.File
	for rows.Next() {
		var f library.File
		if err := rows.Scan(&f.ID, &f.Path, &f.Name, &f.Title, &f.Year, &f.TrackIndex,
			&f.Length, &f.Codec, &f.SampleRate, &f.ArtistID, &f.AlbumID, &f.DirectoryID,
			&f.Artist, &f.Album); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// UpdateMetadata rewrites the editable tags of one file.
func (s *Store) UpdateMetadata(id int, meta library.Metadata) error {
	artistID := 0
	if meta.Artist != "" {
		var err error
		artistID, err = s.EnsureArtist(meta.Artist)
		if err != nil {
			return err
		}
	}
	albumID := 0
	if meta.Album != "" {
		var err error
		albumID, err = s.EnsureAlbum(artistID, meta.Album)
		if err != nil {
			return err
		}
	}
	result, err := s.db.Exec(`
		UPDATE files SET title = ?, year = ?, track_index = ?, artist_id = ?, album_id = ?
		WHERE id = ?;
	`, meta.Title, meta.Year, meta.TrackIndex, artistID, albumID, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("file %d: %w", id, library.ErrNotFound)
	}
	return nil
}

// Directories lists every known directory.
func (s *Store) Directories() ([]library.Directory, error) {
	return s.queryDirectories(`SELECT id, name, parent_id FROM directories ORDER BY name;`)
}

// Directory returns one directory by id.
func (s *Store) Directory(id int) (library.Directory, error) {
	dirs, err := s.queryDirectories(`SELECT id, name, parent_id FROM directories WHERE id = ?;`, id)
	if err != nil {
		return library.Directory{}, err
	}
	if len(dirs) == 0 {
		return library.Directory{}, fmt.Errorf("directory %d: %w", id, library.ErrNotFound)
	}
	return dirs[0], nil
}

// Subdirectories lists the children of one directory.
func (s *Store) Subdirectories(directoryID int) ([]library.Directory, error) {
	return s.queryDirectories(`SELECT id, name, parent_id FROM directories WHERE parent_id = ? ORDER BY name;`, directoryID)
}

func (s *Store) queryDirectories(query string, args ...any) ([]library.Directory, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dirs []library.Directory
	for rows.Next() {
		var dir library.Directory
		if err := rows.Scan(&dir.ID, &dir.Name, &dir.ParentID); err != nil {
			return nil, err
		}
		dirs = append(dirs, dir)
	}
	return dirs, rows.Err()
}

// Playlists lists every playlist with its entries.
func (s *Store) Playlists() ([]library.Playlist, error) {
	rows, err := s.db.Query(`SELECT id, name FROM playlists ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []library.Playlist
	for rows.Next() {
		var pl library.Playlist
		if err := rows.Scan(&pl.ID, &pl.Name); err != nil {
			return nil, err
		}
		playlists = append(playlists, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range playlists {
		entries, err := s.playlistEntries(playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].Entries = entries
	}
	return playlists, nil
}

// Playlist returns one playlist definition.
func (s *Store) Playlist(id int) (library.Playlist, error) {
	var pl library.Playlist
	row := s.db.QueryRow(`SELECT id, name FROM playlists WHERE id = ?;`, id)
	if err := row.Scan(&pl.ID, &pl.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return library.Playlist{}, fmt.Errorf("playlist %d: %w", id, library.ErrNotFound)
		}
		return library.Playlist{}, err
	}
	entries, err := s.playlistEntries(id)
	if err != nil {
		return library.Playlist{}, err
	}
	pl.Entries = entries
	return pl, nil
}

func (s *Store) playlistEntries(playlistID int) ([]library.PlaylistEntry, error) {
	rows, err := s.db.Query(`SELECT type, item_id FROM playlist_items WHERE playlist_id = ? ORDER BY pos;`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []library.PlaylistEntry{}
	for rows.Next() {
		var entry library.PlaylistEntry
		if err := rows.Scan(&entry.Type, &entry.ItemID); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CreatePlaylist inserts an empty playlist and returns its id.
func (s *Store) CreatePlaylist(name string) (int, error) {
	result, err := s.db.Exec(`INSERT INTO playlists(name) VALUES (?);`, name)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

// DeletePlaylist removes a playlist and its items.
func (s *Store) DeletePlaylist(id int) error {
	result, err := s.db.Exec(`DELETE FROM playlists WHERE id = ?;`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("playlist %d: %w", id, library.ErrNotFound)
	}
	return nil
}

// AddPlaylistItem appends a typed entry to a playlist.
func (s *Store) AddPlaylistItem(playlistID int, entry library.PlaylistEntry) error {
	if _, err := s.Playlist(playlistID); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO playlist_items(playlist_id, pos, type, item_id)
		VALUES (?, (SELECT COALESCE(MAX(pos), -1) + 1 FROM playlist_items WHERE playlist_id = ?), ?, ?);
	`, playlistID, playlistID, entry.Type, entry.ItemID)
	return err
}

// DeletePlaylistItem removes the entry at the given position.
func (s *Store) DeletePlaylistItem(playlistID int, index int) error {
	rows, err := s.db.Query(`SELECT id FROM playlist_items WHERE playlist_id = ? ORDER BY pos;`, playlistID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if index < 0 || index >= len(ids) {
		return fmt.Errorf("playlist %d item %d: %w", playlistID, index, library.ErrNotFound)
	}
	_, err = s.db.Exec(`DELETE FROM playlist_items WHERE id = ?;`, ids[index])
	return err
}

// EnsureArtist returns the id for name, inserting it if missing.
func (s *Store) EnsureArtist(name string) (int, error) {
	return s.ensure(`SELECT id FROM artists WHERE name = ?;`,
		`INSERT INTO artists(name) VALUES (?);`, name)
}

// EnsureAlbum returns the id for an album of one artist, inserting if missing.
func (s *Store) EnsureAlbum(artistID int, name string) (int, error) {
	var id int
	err := s.db.QueryRow(`SELECT id FROM albums WHERE name = ? AND artist_id = ?;`, name, artistID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	result, err := s.db.Exec(`INSERT INTO albums(name, artist_id) VALUES (?, ?);`, name, artistID)
	if err != nil {
		return 0, err
	}
	inserted, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(inserted), nil
}

// EnsureDirectory returns the id for a directory under parentID, inserting if
// missing. parentID 0 means a scan root.
func (s *Store) EnsureDirectory(parentID int, name string) (int, error) {
	var id int
	err := s.db.QueryRow(`SELECT id FROM directories WHERE name = ? AND parent_id = ?;`, name, parentID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	result, err := s.db.Exec(`INSERT INTO directories(name, parent_id) VALUES (?, ?);`, name, parentID)
	if err != nil {
		return 0, err
	}
	inserted, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(inserted), nil
}

// UpsertFile inserts or refreshes a scanned file keyed by path.
func (s *Store) UpsertFile(f library.File) error {
	_, err := s.db.Exec(`
		INSERT INTO files(path, name, title, year, track_index, length, codec, sample_rate, artist_id, album_id, directory_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			title = excluded.title,
			year = excluded.year,
			track_index = excluded.track_index,
			length = excluded.length,
			codec = excluded.codec,
			sample_rate = excluded.sample_rate,
			artist_id = excluded.artist_id,
			album_id = excluded.album_id,
			directory_id = excluded.directory_id;
	`, f.Path, f.Name, f.Title, f.Year, f.TrackIndex, f.Length, f.Codec, f.SampleRate,
		f.ArtistID, f.AlbumID, f.DirectoryID)
	return err
}

func (s *Store) ensure(selectStmt, insertStmt string, name string) (int, error) {
	var id int
	err := s.db.QueryRow(selectStmt, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	result, err := s.db.Exec(insertStmt, name)
	if err != nil {
		return 0, err
	}
	inserted, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(inserted), nil
}
