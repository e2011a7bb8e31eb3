package httpd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type echoHandler struct{ last []byte }

func (e *echoHandler) ProcessBytes(payload []byte) []byte {
	e.last = payload
	return []byte(`{"jsonrpc":"2.0","id":1,"result":null}`)
}

func TestServeCommand(t *testing.T) {
	handler := &echoHandler{}
	server := NewServer(nil, handler, Config{})

	req := httptest.NewRequest(http.MethodPost, "/jsonrpc", strings.NewReader(`{"method":"player_play","id":1}`))
	rec := httptest.NewRecorder()
	server.serveCommand(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json;charset=utf-8" {
		t.Fatalf("content type = %q", got)
	}
	if string(handler.last) != `{"method":"player_play","id":1}` {
		t.Fatalf("processor saw %q", handler.last)
	}
	if !strings.Contains(rec.Body.String(), `"jsonrpc":"2.0"`) {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestServeCommandRejectsGet(t *testing.T) {
	server := NewServer(nil, &echoHandler{}, Config{})

	req := httptest.NewRequest(http.MethodGet, "/jsonrpc", nil)
	rec := httptest.NewRecorder()
	server.serveCommand(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestServeCommandMalformedBodyStillHTTP200(t *testing.T) {
	handler := &echoHandler{}
	server := NewServer(nil, handler, Config{})

	req := httptest.NewRequest(http.MethodPost, "/jsonrpc", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	server.serveCommand(rec, req)

	// Protocol errors ride inside the envelope, never the HTTP status.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
