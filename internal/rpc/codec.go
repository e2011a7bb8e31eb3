package rpc

import "github.com/gramofon/gramofon/internal/player"

// EncodeQueue renders the top-level queue entries for the wire.
func EncodeQueue(items []player.QueueItem) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, EncodeQueueItem(item))
	}
	return out
}

// EncodeQueueItem renders one queue node recursively. The node is emitted
// before its children; children keep their original order under "files"
// (directories, albums) or "items" (playlists). The tree is never modified.
func EncodeQueueItem(item player.QueueItem) map[string]any {
	switch node := item.(type) {
	case player.FileItem:
		return map[string]any{
			"type":        "file",
			"id":          node.File.ID,
			"path":        node.File.Path,
			"name":        node.File.Name,
			"title":       node.File.Title,
			"length":      node.File.Length,
			"codec":       node.File.Codec,
			"sample_rate": node.File.SampleRate,
		}
	case player.DirectoryItem:
		return map[string]any{
			"type":  "directory",
			"id":    node.Directory.ID,
			"name":  node.Directory.Name,
			"files": encodeChildren(node.Items),
		}
	case player.AlbumItem:
		return map[string]any{
			"type":  "album",
			"id":    node.Album.ID,
			"name":  node.Album.Name,
			"files": encodeChildren(node.Items),
		}
	case player.PlaylistItem:
		return map[string]any{
			"type":  "playlist",
			"id":    node.ID,
			"items": encodeChildren(node.Items),
		}
	}
	return nil
}

func encodeChildren(items []player.QueueItem) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, EncodeQueueItem(item))
	}
	return out
}
