package output

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// HumanPrinter prints terminal-friendly output via pterm.
type HumanPrinter struct{}

// Print renders v for a person at a terminal.
func (HumanPrinter) Print(v any) error {
	switch data := v.(type) {
	case Ack:
		_, err := fmt.Fprintln(os.Stdout, "ok")
		return err
	case Statistics:
		return printStatistics(data)
	case Status:
		return printStatus(data)
	case Volume:
		_, err := fmt.Fprintf(os.Stdout, "%d\n", int(data))
		return err
	case []Artist:
		return printArtists(data)
	case []Album:
		return printAlbums(data)
	case []File:
		return printFiles(data)
	case []DirectoryEntry:
		return printDirectoryEntries(data)
	case Metadata:
		return printMetadata(data)
	case []Playlist:
		return printPlaylists(data)
	case []QueueNode:
		return printQueue(data)
	default:
		_, err := fmt.Fprintf(os.Stdout, "%v\n", v)
		return err
	}
}

func printStatistics(stats Statistics) error {
	rows := pterm.TableData{
		{"Artists", strconv.Itoa(stats.NumArtists)},
		{"Albums", strconv.Itoa(stats.NumAlbums)},
		{"Files", strconv.Itoa(stats.NumFiles)},
		{"Total length", formatLength(stats.SumSongLength)},
	}
	return pterm.DefaultTable.WithData(rows).Render()
}

func printStatus(status Status) error {
	state := "stopped"
	switch status.State {
	case 1:
		state = "playing"
	case 2:
		state = "paused"
	}
	line := fmt.Sprintf("[%s]  vol %d%%", state, status.Volume)
	if status.Current != nil {
		line += fmt.Sprintf("  file %d  at %s  (queue index %s)",
			*status.Current, formatLength(status.Position), formatIndex(status.Index))
	}
	_, err := fmt.Fprintln(os.Stdout, line)
	return err
}

func printArtists(artists []Artist) error {
	rows := pterm.TableData{{"ID", "NAME", "ALBUMS"}}
	for _, artist := range artists {
		rows = append(rows, []string{
			strconv.Itoa(artist.ID), artist.Name, strconv.Itoa(artist.Albums),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printAlbums(albums []Album) error {
	rows := pterm.TableData{{"ID", "NAME", "SONGS", "LENGTH"}}
	for _, album := range albums {
		rows = append(rows, []string{
			strconv.Itoa(album.ID), album.Name,
			strconv.Itoa(album.Songs), formatLength(album.Length),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printFiles(files []File) error {
	rows := pterm.TableData{{"ID", "TITLE", "NAME", "LENGTH", "CODEC"}}
	for _, file := range files {
		title := file.Title
		if title == "" {
			title = file.Name
		}
		rows = append(rows, []string{
			strconv.Itoa(file.ID), title, file.Name, formatLength(file.Length), file.Codec,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printDirectoryEntries(entries []DirectoryEntry) error {
	rows := pterm.TableData{{"TYPE", "ID", "NAME"}}
	for _, entry := range entries {
		name := entry.Name
		if entry.Type == "file" && entry.Title != "" {
			name = entry.Title
		}
		rows = append(rows, []string{entry.Type, strconv.Itoa(entry.ID), name})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printMetadata(meta Metadata) error {
	rows := pterm.TableData{
		{"File", fmt.Sprintf("%d (%s)", meta.ID, meta.Name)},
		{"Artist", meta.Artist},
		{"Album", meta.Album},
		{"Title", meta.Title},
		{"Year", strconv.Itoa(meta.Year)},
		{"Track", strconv.Itoa(meta.TrackIndex)},
	}
	return pterm.DefaultTable.WithData(rows).Render()
}

func printPlaylists(playlists []Playlist) error {
	rows := pterm.TableData{{"ID", "NAME", "ITEMS"}}
	for _, playlist := range playlists {
		parts := make([]string, 0, len(playlist.Items))
		for _, item := range playlist.Items {
			parts = append(parts, fmt.Sprintf("%s:%d", item.Type, item.ID))
		}
		rows = append(rows, []string{
			strconv.Itoa(playlist.ID), playlist.Name, strings.Join(parts, " "),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printQueue(queue []QueueNode) error {
	if len(queue) == 0 {
		_, err := fmt.Fprintln(os.Stdout, "queue empty")
		return err
	}
	root := pterm.TreeNode{Text: "queue"}
	for _, node := range queue {
		root.Children = append(root.Children, queueTreeNode(node))
	}
	return pterm.DefaultTree.WithRoot(root).Render()
}

func queueTreeNode(node QueueNode) pterm.TreeNode {
	label := nodeLabel(node)
	tree := pterm.TreeNode{Text: label}
	for _, child := range nodeChildren(node) {
		tree.Children = append(tree.Children, queueTreeNode(child))
	}
	return tree
}

func nodeLabel(node QueueNode) string {
	kind, _ := node["type"].(string)
	id := intField(node, "id")
	switch kind {
	case "file":
		title, _ := node["title"].(string)
		if title == "" {
			title, _ = node["name"].(string)
		}
		return fmt.Sprintf("%s (file %d, %s)", title, id, formatLength(intField(node, "length")))
	case "playlist":
		return fmt.Sprintf("playlist %d", id)
	default:
		name, _ := node["name"].(string)
		return fmt.Sprintf("%s (%s %d)", name, kind, id)
	}
}

func nodeChildren(node QueueNode) []QueueNode {
	raw, ok := node["files"].([]any)
	if !ok {
		raw, ok = node["items"].([]any)
	}
	if !ok {
		return nil
	}
	children := make([]QueueNode, 0, len(raw))
	for _, entry := range raw {
		if child, ok := entry.(map[string]any); ok {
			children = append(children, QueueNode(child))
		}
	}
	return children
}

func intField(node QueueNode, key string) int {
	if val, ok := node[key].(float64); ok {
		return int(val)
	}
	if val, ok := node[key].(int); ok {
		return val
	}
	return 0
}

func formatLength(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatIndex(index []int) string {
	parts := make([]string, 0, len(index))
	for _, i := range index {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, ".")
}
