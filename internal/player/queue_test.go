package player

import (
	"testing"

	"github.com/gramofon/gramofon/internal/library"
)

func sampleForest() []QueueItem {
	album := NewAlbumItem(library.Album{ID: 10, Name: "A"}, []library.File{
		{ID: 1, Name: "one"},
		{ID: 2, Name: "two"},
	})
	dir := NewDirectoryItem(library.Directory{ID: 20, Name: "d"}, []library.File{
		{ID: 3, Name: "three"},
	})
	return []QueueItem{album, dir, NewFileItem(library.File{ID: 4, Name: "four"})}
}

func TestItemAt(t *testing.T) {
	forest := sampleForest()

	item, err := itemAt(forest, []int{0, 1})
	if err != nil {
		t.Fatalf("item at: %v", err)
	}
	file, ok := item.(FileItem)
	if !ok {
		t.Fatalf("expected file, got %T", item)
	}
	if file.File.ID != 2 {
		t.Fatalf("expected file 2, got %d", file.File.ID)
	}

	if _, err := itemAt(forest, []int{5}); err == nil {
		t.Fatalf("expected bad index")
	}
	if _, err := itemAt(forest, nil); err == nil {
		t.Fatalf("expected bad index for empty path")
	}
}

func TestRemoveAtNested(t *testing.T) {
	forest := sampleForest()

	out, err := removeAt(forest, []int{0, 0})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	album := out[0].(AlbumItem)
	if len(album.Items) != 1 {
		t.Fatalf("expected 1 child, got %d", len(album.Items))
	}
	if album.Items[0].(FileItem).File.ID != 2 {
		t.Fatalf("expected file 2 to remain")
	}

	// The source forest is untouched.
	original := forest[0].(AlbumItem)
	if len(original.Items) != 2 {
		t.Fatalf("remove mutated the original tree")
	}
}

func TestFilePathsPlaybackOrder(t *testing.T) {
	forest := sampleForest()
	paths := filePaths(forest)

	want := [][]int{{0, 0}, {0, 1}, {1, 0}, {2}}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d", len(want), len(paths))
	}
	for i := range want {
		if !samePath(paths[i], want[i]) {
			t.Fatalf("path %d: expected %v, got %v", i, want[i], paths[i])
		}
	}
}

func TestFilePathsDeepNesting(t *testing.T) {
	inner := NewAlbumItem(library.Album{ID: 1}, []library.File{{ID: 9}})
	middle := NewPlaylistItem(2, []QueueItem{inner})
	outer := NewPlaylistItem(3, []QueueItem{middle})

	paths := filePaths([]QueueItem{outer})
	if len(paths) != 1 || !samePath(paths[0], []int{0, 0, 0, 0}) {
		t.Fatalf("unexpected paths: %v", paths)
	}
}
