package bridge

import (
	"encoding/json"
	"strconv"

	"assistant"
)

// Wire framing: every request carries a caller-chosen id and an op; the
// response echoes the id with either an error string or an op-specific
// payload. Frames travel as JSON text messages over one websocket
// connection per session.
type requestFrame struct {
	ID      uint64          `json:"id"`
	Op      Op              `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type responseFrame struct {
	ID      uint64          `json:"id"`
	Error   string          `json:"error,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type elementsReply struct {
	Elements assistant.Elements `json:"elements"`
}

type resultPayload struct {
	Result map[string]any `json:"result"`
}

type heightPayload struct {
	Height int `json:"height"`
}

type pathPayload struct {
	Path string `json:"path"`
}

type namePayload struct {
	Name string `json:"name"`
}

type pathsReply struct {
	Paths []string `json:"paths"`
}

// normalizeResult rebuilds typed record values after JSON decoding:
// path lists arrive as []any and stray numbers as float64.
func normalizeResult(raw map[string]any) assistant.Result {
	out := make(assistant.Result, len(raw))
	for k, v := range raw {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case []any:
		paths := make([]string, 0, len(val))
		for _, p := range val {
			if s, ok := p.(string); ok {
				paths = append(paths, s)
			}
		}
		return paths
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return val
	}
}
