package incremental

import (
	"encoding/json"

	"github.com/r3labs/sse/v2"
)

// EncodeSSE renders a subsequent Payload as a Server-Sent Events event
// a host can write to a `text/event-stream` response; this is encoding
// only, no listener/server is provided (the transport itself stays a
// non-goal). id, when non-empty, becomes the event's `id:` field so a
// reconnecting client can resume with `Last-Event-ID`.
func EncodeSSE(payload Payload, id string) (*sse.Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &sse.Event{
		ID:    []byte(id),
		Event: []byte("next"),
		Data:  data,
	}, nil
}
