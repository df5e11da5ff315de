package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	bridgeWSWriteWait = 10 * time.Second
	bridgeWSPongWait  = 60 * time.Second
	bridgeWSPingEvery = (bridgeWSPongWait * 9) / 10
)

// ServeWS serves host over one websocket connection until the surface
// departs, the connection fails, or ctx is cancelled. Requests are
// handled concurrently so a blocking operation such as a native file
// picker never stalls the others; responses are matched by frame id.
func ServeWS(ctx context.Context, conn *websocket.Conn, host Host) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(bridgeWSPongWait)); err != nil {
		log.Printf("bridge ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(bridgeWSPongWait))
	})

	writeCh := make(chan responseFrame, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(bridgeWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case resp := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(bridgeWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(resp); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(bridgeWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	send := func(resp responseFrame) {
		select {
		case writeCh <- resp:
		case <-writerDone:
		case <-ctx.Done():
		}
	}

	for {
		var req requestFrame
		if err := conn.ReadJSON(&req); err != nil {
			cancel()
			<-writerDone
			return
		}
		go func(req requestFrame) {
			send(respond(ctx, host, req))
		}(req)
	}
}

func respond(ctx context.Context, host Host, req requestFrame) responseFrame {
	resp := responseFrame{ID: req.ID}
	payload, err := dispatch(ctx, host, req.Op, req.Payload)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			resp.Error = fmt.Sprintf("encode %s reply: %v", req.Op, err)
			return resp
		}
		resp.Payload = data
	}
	return resp
}

func dispatch(ctx context.Context, host Host, op Op, raw json.RawMessage) (any, error) {
	switch op {
	case OpGetElements:
		els, err := host.Elements(ctx)
		if err != nil {
			return nil, err
		}
		return elementsReply{Elements: els}, nil

	case OpSetResult:
		var p resultPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", op, err)
		}
		return host.SubmitResult(ctx, normalizeResult(p.Result))

	case OpSetHeight:
		var p heightPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", op, err)
		}
		return nil, host.ReportHeight(ctx, p.Height)

	case OpOpenFile:
		var p pathPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", op, err)
		}
		return nil, host.OpenFile(ctx, p.Path)

	case OpOpenFileDialog:
		var p namePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", op, err)
		}
		paths, err := host.OpenFileDialog(ctx, p.Name)
		if err != nil {
			return nil, err
		}
		if paths == nil {
			paths = []string{}
		}
		return pathsReply{Paths: paths}, nil

	default:
		return nil, fmt.Errorf("unknown op %q", op)
	}
}
