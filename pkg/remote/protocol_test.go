package remote

import (
	"encoding/json"
	"testing"
)

func TestResultEnvelope(t *testing.T) {
	resp := NewResult(json.RawMessage(`7`), map[string]any{"volume": 50})
	payload, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded["jsonrpc"]) != `"2.0"` {
		t.Fatalf("expected protocol tag, got %s", decoded["jsonrpc"])
	}
	if string(decoded["id"]) != "7" {
		t.Fatalf("expected id 7, got %s", decoded["id"])
	}
	if _, ok := decoded["error"]; ok {
		t.Fatalf("success must not carry error")
	}
	if _, ok := decoded["result"]; !ok {
		t.Fatalf("success must carry result")
	}
}

func TestResultEnvelopeNullResult(t *testing.T) {
	payload, err := json.Marshal(NewResult(json.RawMessage(`"abc"`), nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded["result"]) != "null" {
		t.Fatalf("expected explicit null result, got %s", decoded["result"])
	}
}

func TestFaultEnvelope(t *testing.T) {
	payload, err := json.Marshal(NewFault(nil, ReasonInvalidRequest))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded["id"]) != "null" {
		t.Fatalf("expected null id, got %s", decoded["id"])
	}
	if string(decoded["error"]) != `"invalid request"` {
		t.Fatalf("unexpected error: %s", decoded["error"])
	}
	if _, ok := decoded["result"]; ok {
		t.Fatalf("failure must not carry result")
	}
}

func TestFaultEchoesStructuredID(t *testing.T) {
	id := json.RawMessage(`{"seq":1}`)
	payload, err := json.Marshal(NewFault(id, ReasonUnknownMethod))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded["id"]) != `{"seq":1}` {
		t.Fatalf("expected structured id echoed, got %s", decoded["id"])
	}
}
