package rpc

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/gramofon/gramofon/pkg/remote"
)

// Processor turns raw request payloads into reply envelopes. It holds no
// per-call state; transports may call it concurrently.
type Processor struct {
	log      *zap.Logger
	registry *Registry
}

// NewProcessor creates a processor over a fully populated registry.
func NewProcessor(log *zap.Logger, registry *Registry) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{log: log, registry: registry}
}

// Process handles one request payload. It always produces a well-formed
// response envelope; protocol failures surface only through the error field.
func (p *Processor) Process(payload []byte) remote.Response {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(payload, &doc); err != nil {
		return remote.NewFault(nil, remote.ReasonInvalidRequest)
	}

	id, hasID := doc["id"]
	methodRaw, hasMethod := doc["method"]
	if !hasMethod || !hasID {
		return remote.NewFault(id, remote.ReasonNoMethodID)
	}

	var method string
	if err := json.Unmarshal(methodRaw, &method); err != nil {
		// A non-string method can never match a registered name.
		return remote.NewFault(id, remote.ReasonUnknownMethod)
	}

	params := remote.Params{}
	if raw, ok := doc["params"]; ok {
		if err := json.Unmarshal(raw, &params); err != nil {
			return remote.NewFault(id, remote.ReasonInvalidCall)
		}
	}

	handler, ok := p.registry.Lookup(method)
	if !ok {
		return remote.NewFault(id, remote.ReasonUnknownMethod)
	}

	result, err := handler(params)
	if err != nil {
		// Every handler failure collapses into one generic reason; the
		// specific cause stays server-side.
		p.log.Debug("method call failed", zap.String("method", method), zap.Error(err))
		return remote.NewFault(id, remote.ReasonInvalidCall)
	}
	return remote.NewResult(id, result)
}

// ProcessBytes handles one payload and serializes the reply.
func (p *Processor) ProcessBytes(payload []byte) []byte {
	reply, err := json.Marshal(p.Process(payload))
	if err != nil {
		p.log.Error("marshal response", zap.Error(err))
		fallback, _ := json.Marshal(remote.NewFault(nil, remote.ReasonInvalidCall))
		return fallback
	}
	return reply
}
