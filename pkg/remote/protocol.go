package remote

import "encoding/json"

// ProtocolVersion is the fixed protocol tag carried by every response.
const ProtocolVersion = "2.0"

// Wire failure reasons. The caller only ever sees one of these strings;
// everything that goes wrong inside a handler collapses to ReasonInvalidCall.
const (
	ReasonInvalidRequest = "invalid request"
	ReasonNoMethodID     = "method/id not found"
	ReasonUnknownMethod  = "invalid method"
	ReasonInvalidCall    = "invalid method call"
)

// Request is one parsed command envelope. ID is kept raw so it can be
// echoed back byte-for-byte whatever JSON type the caller used.
type Request struct {
	Method string
	ID     json.RawMessage
	Params Params
}

// Response is the reply envelope. Exactly one of result/error is emitted.
type Response struct {
	ID     json.RawMessage
	Result any
	Reason string

	failed bool
}

// NewResult builds a success response echoing the request id.
func NewResult(id json.RawMessage, result any) Response {
	return Response{ID: id, Result: result}
}

// NewFault builds a failure response. A nil id is rendered as JSON null.
func NewFault(id json.RawMessage, reason string) Response {
	return Response{ID: id, Reason: reason, failed: true}
}

// Failed reports whether the response carries an error.
func (r Response) Failed() bool {
	return r.failed
}

// MarshalJSON renders the envelope. A success always carries a result key,
// even when the handler produced nothing; a failure never does.
func (r Response) MarshalJSON() ([]byte, error) {
	id := r.ID
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	if r.failed {
		return json.Marshal(struct {
			Protocol string          `json:"jsonrpc"`
			ID       json.RawMessage `json:"id"`
			Error    string          `json:"error"`
		}{ProtocolVersion, id, r.Reason})
	}
	return json.Marshal(struct {
		Protocol string          `json:"jsonrpc"`
		ID       json.RawMessage `json:"id"`
		Result   any             `json:"result"`
	}{ProtocolVersion, id, r.Result})
}
