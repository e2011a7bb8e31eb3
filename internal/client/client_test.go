package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func replyServer(t *testing.T, handle func(request map[string]any) string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json;charset=utf-8")
		if _, err := w.Write([]byte(handle(body))); err != nil {
			t.Errorf("write reply: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCallReturnsResult(t *testing.T) {
	server := replyServer(t, func(request map[string]any) string {
		if request["method"] != "player_get_volume" {
			t.Errorf("method = %v", request["method"])
		}
		id, _ := json.Marshal(request["id"])
		return `{"jsonrpc":"2.0","id":` + string(id) + `,"result":80}`
	})

	c := New(server.URL, time.Second)
	result, err := c.Call(context.Background(), "player_get_volume", nil)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if string(result) != "80" {
		t.Fatalf("result = %s, want 80", result)
	}
}

func TestCallSurfacesReason(t *testing.T) {
	server := replyServer(t, func(request map[string]any) string {
		id, _ := json.Marshal(request["id"])
		return `{"jsonrpc":"2.0","id":` + string(id) + `,"error":"invalid method call"}`
	})

	c := New(server.URL, time.Second)
	if _, err := c.Call(context.Background(), "player_seek", map[string]any{"seconds": "x"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCallRejectsIDMismatch(t *testing.T) {
	server := replyServer(t, func(map[string]any) string {
		return `{"jsonrpc":"2.0","id":"someone-else","result":null}`
	})

	c := New(server.URL, time.Second)
	if _, err := c.Call(context.Background(), "player_play", nil); err == nil {
		t.Fatal("expected id mismatch error")
	}
}

func TestCallIntoDecodes(t *testing.T) {
	server := replyServer(t, func(request map[string]any) string {
		id, _ := json.Marshal(request["id"])
		return `{"jsonrpc":"2.0","id":` + string(id) + `,"result":{"volume":55}}`
	})

	c := New(server.URL, time.Second)
	var out struct {
		Volume int `json:"volume"`
	}
	if err := c.CallInto(context.Background(), "player_status", nil, &out); err != nil {
		t.Fatalf("call into: %v", err)
	}
	if out.Volume != 55 {
		t.Fatalf("volume = %d, want 55", out.Volume)
	}
}

func TestRequestIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newRequestID()
		if seen[id] {
			t.Fatalf("duplicate request id %s", id)
		}
		seen[id] = true
	}
}
