package rpc

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gramofon/gramofon/internal/library"
	"github.com/gramofon/gramofon/internal/player"
)

// fakeStorage is an in-memory Storage good enough to drive the handlers.
type fakeStorage struct {
	artists     map[int]library.Artist
	albums      map[int]library.Album
	directories map[int]library.Directory
	files       map[int]library.File
	playlists   map[int]library.Playlist
	nextID      int

	scans int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		artists:     map[int]library.Artist{},
		albums:      map[int]library.Album{},
		directories: map[int]library.Directory{},
		files:       map[int]library.File{},
		playlists:   map[int]library.Playlist{},
		nextID:      1,
	}
}

func (f *fakeStorage) Statistics() (library.Statistics, error) {
	stats := library.Statistics{
		NumArtists: len(f.artists),
		NumAlbums:  len(f.albums),
		NumFiles:   len(f.files),
	}
	for _, file := range f.files {
		stats.SumSongLength += file.Length
	}
	return stats, nil
}

func (f *fakeStorage) Artists() ([]library.Artist, error) {
	out := make([]library.Artist, 0, len(f.artists))
	for _, a := range f.artists {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStorage) Albums() ([]library.Album, error) {
	out := make([]library.Album, 0, len(f.albums))
	for _, a := range f.albums {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStorage) AlbumsByArtist(artistID int) ([]library.Album, error) {
	var out []library.Album
	for _, a := range f.albums {
		if a.ArtistID == artistID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStorage) Files() ([]library.File, error) {
	out := make([]library.File, 0, len(f.files))
	for _, file := range f.files {
		out = append(out, file)
	}
	return out, nil
}

func (f *fakeStorage) FilesOfArtist(artistID int) ([]library.File, error) {
	var out []library.File
	for _, file := range f.files {
		if file.ArtistID == artistID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeStorage) FilesOfAlbum(albumID int) ([]library.File, error) {
	var out []library.File
	for _, file := range f.files {
		if file.AlbumID == albumID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeStorage) FilesOfDirectory(directoryID int) ([]library.File, error) {
	var out []library.File
	for id := 0; id < f.nextID; id++ {
		file, ok := f.files[id]
		if ok && file.DirectoryID == directoryID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *fakeStorage) File(id int) (library.File, error) {
	file, ok := f.files[id]
	if !ok {
		return library.File{}, library.ErrNotFound
	}
	return file, nil
}

func (f *fakeStorage) UpdateMetadata(id int, meta library.Metadata) error {
	file, ok := f.files[id]
	if !ok {
		return library.ErrNotFound
	}
	file.Title = meta.Title
	file.Year = meta.Year
	file.TrackIndex = meta.TrackIndex
	f.files[id] = file
	return nil
}

func (f *fakeStorage) Directories() ([]library.Directory, error) {
	out := make([]library.Directory, 0, len(f.directories))
	for _, d := range f.directories {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeStorage) Directory(id int) (library.Directory, error) {
	d, ok := f.directories[id]
	if !ok {
		return library.Directory{}, library.ErrNotFound
	}
	return d, nil
}

func (f *fakeStorage) Subdirectories(directoryID int) ([]library.Directory, error) {
	var out []library.Directory
	for _, d := range f.directories {
		if d.ParentID == directoryID && d.ID != directoryID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStorage) Album(id int) (library.Album, error) {
	a, ok := f.albums[id]
	if !ok {
		return library.Album{}, library.ErrNotFound
	}
	return a, nil
}

func (f *fakeStorage) Playlists() ([]library.Playlist, error) {
	out := make([]library.Playlist, 0, len(f.playlists))
	for _, p := range f.playlists {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStorage) Playlist(id int) (library.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return library.Playlist{}, library.ErrNotFound
	}
	return p, nil
}

func (f *fakeStorage) CreatePlaylist(name string) (int, error) {
	id := f.nextID
	f.nextID++
	f.playlists[id] = library.Playlist{ID: id, Name: name}
	return id, nil
}

func (f *fakeStorage) DeletePlaylist(id int) error {
	if _, ok := f.playlists[id]; !ok {
		return library.ErrNotFound
	}
	delete(f.playlists, id)
	return nil
}

func (f *fakeStorage) AddPlaylistItem(playlistID int, entry library.PlaylistEntry) error {
	p, ok := f.playlists[playlistID]
	if !ok {
		return library.ErrNotFound
	}
	p.Entries = append(p.Entries, entry)
	f.playlists[playlistID] = p
	return nil
}

func (f *fakeStorage) DeletePlaylistItem(playlistID, index int) error {
	p, ok := f.playlists[playlistID]
	if !ok {
		return library.ErrNotFound
	}
	if index < 0 || index >= len(p.Entries) {
		return fmt.Errorf("playlist %d has no item %d", playlistID, index)
	}
	p.Entries = append(p.Entries[:index], p.Entries[index+1:]...)
	f.playlists[playlistID] = p
	return nil
}

func (f *fakeStorage) addFile(file library.File) library.File {
	file.ID = f.nextID
	f.nextID++
	f.files[file.ID] = file
	return file
}

func (f *fakeStorage) addDirectory(dir library.Directory) library.Directory {
	dir.ID = f.nextID
	f.nextID++
	f.directories[dir.ID] = dir
	return dir
}

type fakeScanner struct{ triggered int }

func (f *fakeScanner) Trigger() bool {
	f.triggered++
	return true
}

type serverFixture struct {
	storage    *fakeStorage
	scanner    *fakeScanner
	controller *player.Controller
	processor  *Processor
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	storage := newFakeStorage()
	scanner := &fakeScanner{}
	controller := player.NewController(nil, player.NopDriver{})
	server := NewServer(nil, storage, scanner, controller)
	return &serverFixture{
		storage:    storage,
		scanner:    scanner,
		controller: controller,
		processor:  server.Processor(),
	}
}

// call runs one request through the full dispatch path and returns the
// decoded reply envelope.
func (fx *serverFixture) call(t *testing.T, method string, params string) map[string]any {
	t.Helper()
	payload := fmt.Sprintf(`{"method": %q, "id": 1`, method)
	if params != "" {
		payload += `, "params": ` + params
	}
	payload += "}"

	var doc map[string]any
	if err := json.Unmarshal(fx.processor.ProcessBytes([]byte(payload)), &doc); err != nil {
		t.Fatalf("reply is not valid JSON: %v", err)
	}
	return doc
}

func (fx *serverFixture) mustCall(t *testing.T, method string, params string) any {
	t.Helper()
	doc := fx.call(t, method, params)
	if reason, ok := doc["error"]; ok {
		t.Fatalf("%s failed: %v", method, reason)
	}
	return doc["result"]
}

func TestLibraryScanTriggers(t *testing.T) {
	fx := newServerFixture(t)
	fx.mustCall(t, "library_scan", "")
	if fx.scanner.triggered != 1 {
		t.Fatalf("scan triggered %d times, want 1", fx.scanner.triggered)
	}
}

func TestLibraryGetStatistics(t *testing.T) {
	fx := newServerFixture(t)
	fx.storage.addFile(library.File{Name: "a.mp3", Length: 100})
	fx.storage.addFile(library.File{Name: "b.mp3", Length: 50})

	result := fx.mustCall(t, "library_get_statistics", "").(map[string]any)
	if result["num_of_files"] != float64(2) {
		t.Fatalf("num_of_files = %v, want 2", result["num_of_files"])
	}
	if result["sum_of_song_length"] != float64(150) {
		t.Fatalf("sum_of_song_length = %v, want 150", result["sum_of_song_length"])
	}
}

func TestPlayerSetVolume(t *testing.T) {
	fx := newServerFixture(t)
	fx.mustCall(t, "player_set_volume", `{"level": 50}`)
	if got := fx.mustCall(t, "player_get_volume", ""); got != float64(50) {
		t.Fatalf("volume = %v, want 50", got)
	}
}

func TestPlayerSetVolumeBadParams(t *testing.T) {
	fx := newServerFixture(t)
	doc := fx.call(t, "player_set_volume", `{"level": "loud"}`)
	if doc["error"] != "invalid method call" {
		t.Fatalf("error = %v, want invalid method call", doc["error"])
	}
	if got := fx.mustCall(t, "player_get_volume", ""); got != float64(100) {
		t.Fatalf("volume changed to %v after failed call", got)
	}
}

func TestPlayerQueueFileAndStatus(t *testing.T) {
	fx := newServerFixture(t)
	file := fx.storage.addFile(library.File{Path: "/music/a.mp3", Name: "a.mp3"})

	fx.mustCall(t, "player_queue_file", fmt.Sprintf(`{"id": %d}`, file.ID))
	fx.mustCall(t, "player_play", "")

	status := fx.mustCall(t, "player_status", "").(map[string]any)
	if status["current"] != float64(file.ID) {
		t.Fatalf("current = %v, want %d", status["current"], file.ID)
	}
	if status["state"] != float64(1) {
		t.Fatalf("state = %v, want playing", status["state"])
	}
}

func TestPlayerStatusIdle(t *testing.T) {
	fx := newServerFixture(t)
	status := fx.mustCall(t, "player_status", "").(map[string]any)
	if status["current"] != nil {
		t.Fatalf("current = %v, want null", status["current"])
	}
	if status["state"] != float64(0) {
		t.Fatalf("state = %v, want stopped", status["state"])
	}
}

func TestPlayerQueueRemoveBadIndexLeavesQueue(t *testing.T) {
	fx := newServerFixture(t)
	file := fx.storage.addFile(library.File{Name: "a.mp3"})
	fx.mustCall(t, "player_queue_file", fmt.Sprintf(`{"id": %d}`, file.ID))

	doc := fx.call(t, "player_queue_remove", `{"index": ["a"]}`)
	if doc["error"] != "invalid method call" {
		t.Fatalf("error = %v, want invalid method call", doc["error"])
	}

	queue := fx.mustCall(t, "player_queue_get", "").([]any)
	if len(queue) != 1 {
		t.Fatalf("queue length = %d after failed remove, want 1", len(queue))
	}
}

func TestPlayerQueueRemoveAllIdempotent(t *testing.T) {
	fx := newServerFixture(t)
	file := fx.storage.addFile(library.File{Name: "a.mp3"})
	fx.mustCall(t, "player_queue_file", fmt.Sprintf(`{"id": %d}`, file.ID))

	fx.mustCall(t, "player_queue_remove_all", "")
	fx.mustCall(t, "player_queue_remove_all", "")

	queue := fx.mustCall(t, "player_queue_get", "").([]any)
	if len(queue) != 0 {
		t.Fatalf("queue length = %d, want 0", len(queue))
	}
}

func TestPlayerQueuePlaylistRoundTrip(t *testing.T) {
	fx := newServerFixture(t)
	dir := fx.storage.addDirectory(library.Directory{Name: "albums"})
	one := fx.storage.addFile(library.File{Name: "one.mp3", DirectoryID: dir.ID})
	two := fx.storage.addFile(library.File{Name: "two.mp3", DirectoryID: dir.ID})

	result := fx.mustCall(t, "library_create_playlist", `{"name": "mix"}`).(map[string]any)
	playlistID := int(result["id"].(float64))
	fx.mustCall(t, "library_add_playlist_item",
		fmt.Sprintf(`{"playlist_id": %d, "type": "directory", "item_id": %d}`, playlistID, dir.ID))

	fx.mustCall(t, "player_queue_playlist", fmt.Sprintf(`{"id": %d}`, playlistID))

	queue := fx.mustCall(t, "player_queue_get", "").([]any)
	if len(queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(queue))
	}
	root := queue[0].(map[string]any)
	if root["type"] != "playlist" {
		t.Fatalf("root type = %v, want playlist", root["type"])
	}
	items := root["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("playlist children = %d, want 1", len(items))
	}
	child := items[0].(map[string]any)
	if child["type"] != "directory" {
		t.Fatalf("child type = %v, want directory", child["type"])
	}
	files := child["files"].([]any)
	if len(files) != 2 {
		t.Fatalf("directory files = %d, want 2", len(files))
	}
	if files[0].(map[string]any)["id"] != float64(one.ID) ||
		files[1].(map[string]any)["id"] != float64(two.ID) {
		t.Fatalf("file order = %v", files)
	}
}

func TestPlayerGotoRejectsContainer(t *testing.T) {
	fx := newServerFixture(t)
	dir := fx.storage.addDirectory(library.Directory{Name: "albums"})
	fx.storage.addFile(library.File{Name: "one.mp3", DirectoryID: dir.ID})

	fx.mustCall(t, "player_queue_directory", fmt.Sprintf(`{"directory_id": %d}`, dir.ID))

	doc := fx.call(t, "player_goto", `{"index": [0]}`)
	if doc["error"] != "invalid method call" {
		t.Fatalf("error = %v, want invalid method call", doc["error"])
	}
	fx.mustCall(t, "player_goto", `{"index": [0, 0]}`)
}

func TestLibraryAddPlaylistItemRejectsBadType(t *testing.T) {
	fx := newServerFixture(t)
	result := fx.mustCall(t, "library_create_playlist", `{"name": "mix"}`).(map[string]any)
	playlistID := int(result["id"].(float64))

	doc := fx.call(t, "library_add_playlist_item",
		fmt.Sprintf(`{"playlist_id": %d, "type": "podcast", "item_id": 1}`, playlistID))
	if doc["error"] != "invalid method call" {
		t.Fatalf("error = %v, want invalid method call", doc["error"])
	}

	playlist, err := fx.storage.Playlist(playlistID)
	if err != nil {
		t.Fatalf("playlist lookup: %v", err)
	}
	if len(playlist.Entries) != 0 {
		t.Fatalf("rejected entry was stored: %v", playlist.Entries)
	}
}

func TestServerRegistersFullCatalog(t *testing.T) {
	fx := newServerFixture(t)
	methods := map[string]bool{}
	for _, name := range fx.processor.registry.Methods() {
		methods[name] = true
	}
	for _, name := range []string{
		"library_scan", "library_get_statistics", "library_get_artists",
		"library_get_albums", "library_get_files", "library_get_playlists",
		"player_queue_file", "player_queue_get", "player_status",
		"player_play", "player_goto", "player_dec_volume",
	} {
		if !methods[name] {
			t.Fatalf("method %s not registered", name)
		}
	}
	if len(methods) != 38 {
		t.Fatalf("registered %d methods, want 38", len(methods))
	}
}
