package output

import "testing"

func TestFormatLength(t *testing.T) {
	cases := map[int]string{
		0:   "0:00",
		59:  "0:59",
		60:  "1:00",
		615: "10:15",
	}
	for seconds, want := range cases {
		if got := formatLength(seconds); got != want {
			t.Fatalf("formatLength(%d) = %q, want %q", seconds, got, want)
		}
	}
}

func TestNodeLabel(t *testing.T) {
	file := QueueNode{"type": "file", "id": float64(3), "title": "Hallogallo", "length": float64(615)}
	if got := nodeLabel(file); got != "Hallogallo (file 3, 10:15)" {
		t.Fatalf("file label = %q", got)
	}
	album := QueueNode{"type": "album", "id": float64(7), "name": "Neu!"}
	if got := nodeLabel(album); got != "Neu! (album 7)" {
		t.Fatalf("album label = %q", got)
	}
	playlist := QueueNode{"type": "playlist", "id": float64(2)}
	if got := nodeLabel(playlist); got != "playlist 2" {
		t.Fatalf("playlist label = %q", got)
	}
}

func TestNodeChildren(t *testing.T) {
	node := QueueNode{
		"type": "directory",
		"files": []any{
			map[string]any{"type": "file", "id": float64(1)},
			map[string]any{"type": "file", "id": float64(2)},
		},
	}
	children := nodeChildren(node)
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2", len(children))
	}
	if intField(children[1], "id") != 2 {
		t.Fatalf("second child id = %d", intField(children[1], "id"))
	}
}
