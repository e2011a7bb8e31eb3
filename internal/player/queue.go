package player

import (
	"errors"

	"github.com/gramofon/gramofon/internal/library"
)

// ItemType tags a queue item variant.
type ItemType int

const (
	TypeFile ItemType = iota
	TypeDirectory
	TypeAlbum
	TypePlaylist
)

// QueueItem is one node of the playback queue tree. Container variants own
// their children in playback order; a built tree is never mutated in place,
// structural changes rebuild the affected spine.
type QueueItem interface {
	Type() ItemType
	Children() []QueueItem

	withChildren(children []QueueItem) QueueItem
}

// FileItem is a playable leaf.
type FileItem struct {
	File library.File
}

func (FileItem) Type() ItemType              { return TypeFile }
func (FileItem) Children() []QueueItem       { return nil }
func (f FileItem) withChildren([]QueueItem) QueueItem { return f }

// DirectoryItem groups the files of one directory.
type DirectoryItem struct {
	Directory library.Directory
	Items     []QueueItem
}

func (DirectoryItem) Type() ItemType        { return TypeDirectory }
func (d DirectoryItem) Children() []QueueItem { return d.Items }
func (d DirectoryItem) withChildren(children []QueueItem) QueueItem {
	d.Items = children
	return d
}

// AlbumItem groups the files of one album.
type AlbumItem struct {
	Album library.Album
	Items []QueueItem
}

func (AlbumItem) Type() ItemType        { return TypeAlbum }
func (a AlbumItem) Children() []QueueItem { return a.Items }
func (a AlbumItem) withChildren(children []QueueItem) QueueItem {
	a.Items = children
	return a
}

// PlaylistItem groups an arbitrary mix of queue items.
type PlaylistItem struct {
	ID    int
	Items []QueueItem
}

func (PlaylistItem) Type() ItemType        { return TypePlaylist }
func (p PlaylistItem) Children() []QueueItem { return p.Items }
func (p PlaylistItem) withChildren(children []QueueItem) QueueItem {
	p.Items = children
	return p
}

// NewFileItem wraps one library file.
func NewFileItem(file library.File) FileItem {
	return FileItem{File: file}
}

// NewDirectoryItem builds a directory node over its files.
func NewDirectoryItem(dir library.Directory, files []library.File) DirectoryItem {
	return DirectoryItem{Directory: dir, Items: fileItems(files)}
}

// NewAlbumItem builds an album node over its files.
func NewAlbumItem(album library.Album, files []library.File) AlbumItem {
	return AlbumItem{Album: album, Items: fileItems(files)}
}

// NewPlaylistItem builds a playlist node over already-resolved children.
func NewPlaylistItem(id int, items []QueueItem) PlaylistItem {
	return PlaylistItem{ID: id, Items: items}
}

func fileItems(files []library.File) []QueueItem {
	items := make([]QueueItem, 0, len(files))
	for _, file := range files {
		items = append(items, NewFileItem(file))
	}
	return items
}

// ErrBadIndex reports an index path that does not address a queue node.
var ErrBadIndex = errors.New("bad queue index")

// itemAt resolves an index path against a forest of queue items.
func itemAt(items []QueueItem, path []int) (QueueItem, error) {
	if len(path) == 0 {
		return nil, ErrBadIndex
	}
	var current QueueItem
	for depth, index := range path {
		if index < 0 || index >= len(items) {
			return nil, ErrBadIndex
		}
		current = items[index]
		if depth < len(path)-1 {
			items = current.Children()
		}
	}
	return current, nil
}

// removeAt removes the node addressed by path, rebuilding the spine above it.
func removeAt(items []QueueItem, path []int) ([]QueueItem, error) {
	if len(path) == 0 {
		return nil, ErrBadIndex
	}
	index := path[0]
	if index < 0 || index >= len(items) {
		return nil, ErrBadIndex
	}
	out := make([]QueueItem, 0, len(items))
	out = append(out, items[:index]...)
	if len(path) == 1 {
		return append(out, items[index+1:]...), nil
	}
	children, err := removeAt(items[index].Children(), path[1:])
	if err != nil {
		return nil, err
	}
	out = append(out, items[index].withChildren(children))
	return append(out, items[index+1:]...), nil
}

// filePaths returns the index path of every file leaf in playback order.
func filePaths(items []QueueItem) [][]int {
	var paths [][]int
	var walk func(items []QueueItem, prefix []int)
	walk = func(items []QueueItem, prefix []int) {
		for i, item := range items {
			path := append(append([]int{}, prefix...), i)
			if item.Type() == TypeFile {
				paths = append(paths, path)
				continue
			}
			walk(item.Children(), path)
		}
	}
	walk(items, nil)
	return paths
}

func samePath(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
