package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"assistant"
)

// WSClient speaks the bridge protocol to a remote host over one
// websocket connection. Calls from different goroutines interleave
// safely; responses are matched back to callers by frame id.
type WSClient struct {
	conn   *websocket.Conn
	nextID atomic.Uint64

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[uint64]chan responseFrame
	err     error

	done chan struct{}
}

var _ Client = (*WSClient)(nil)

// DialWS connects to a host's bridge endpoint, e.g.
// ws://127.0.0.1:7333/api/v1/dialogs/<id>/ws.
func DialWS(ctx context.Context, url string) (*WSClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("bridge: dial %s: %w", url, err)
	}
	c := &WSClient{
		conn:    conn,
		pending: make(map[uint64]chan responseFrame),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Done is closed when the connection drops, whether from a host-side
// teardown or a transport failure.
func (c *WSClient) Done() <-chan struct{} {
	return c.done
}

// Close tears the connection down. In-flight calls fail with a
// connection-closed error.
func (c *WSClient) Close() error {
	err := c.conn.Close()
	c.fail(fmt.Errorf("bridge: connection closed"))
	return err
}

func (c *WSClient) readLoop() {
	for {
		var resp responseFrame
		if err := c.conn.ReadJSON(&resp); err != nil {
			c.fail(fmt.Errorf("bridge: connection lost: %w", err))
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		if ok {
			delete(c.pending, resp.ID)
		}
		c.mu.Unlock()
		if ok {
			ch <- resp
		}
	}
}

func (c *WSClient) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return
	}
	c.err = err
	close(c.done)
}

func (c *WSClient) call(ctx context.Context, op Op, payload, reply any) error {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("bridge: encode %s payload: %w", op, err)
		}
		raw = data
	}

	id := c.nextID.Add(1)
	ch := make(chan responseFrame, 1)

	c.mu.Lock()
	if c.err != nil {
		err := c.err
		c.mu.Unlock()
		return err
	}
	c.pending[id] = ch
	c.mu.Unlock()

	c.writeMu.Lock()
	err := c.conn.WriteJSON(requestFrame{ID: id, Op: op, Payload: raw})
	c.writeMu.Unlock()
	if err != nil {
		c.forget(id)
		return fmt.Errorf("bridge: send %s: %w", op, err)
	}

	select {
	case resp := <-ch:
		if resp.Error != "" {
			return fmt.Errorf("bridge: %s: %s", op, resp.Error)
		}
		if reply != nil && len(resp.Payload) > 0 {
			if err := json.Unmarshal(resp.Payload, reply); err != nil {
				return fmt.Errorf("bridge: decode %s reply: %w", op, err)
			}
		}
		return nil
	case <-c.done:
		c.forget(id)
		c.mu.Lock()
		err := c.err
		c.mu.Unlock()
		return fmt.Errorf("bridge: %s: %w", op, err)
	case <-ctx.Done():
		c.forget(id)
		return ctx.Err()
	}
}

func (c *WSClient) forget(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *WSClient) GetElements(ctx context.Context) (assistant.Elements, error) {
	var reply elementsReply
	if err := c.call(ctx, OpGetElements, nil, &reply); err != nil {
		return nil, err
	}
	return reply.Elements, nil
}

func (c *WSClient) SetResult(ctx context.Context, record assistant.Result) (SubmitAck, error) {
	var ack SubmitAck
	err := c.call(ctx, OpSetResult, resultPayload{Result: record}, &ack)
	return ack, err
}

func (c *WSClient) SetHeight(ctx context.Context, px int) error {
	return c.call(ctx, OpSetHeight, heightPayload{Height: px}, nil)
}

func (c *WSClient) OpenFile(ctx context.Context, path string) error {
	return c.call(ctx, OpOpenFile, pathPayload{Path: path}, nil)
}

func (c *WSClient) OpenFileDialog(ctx context.Context, name string) ([]string, error) {
	var reply pathsReply
	if err := c.call(ctx, OpOpenFileDialog, namePayload{Name: name}, &reply); err != nil {
		return nil, err
	}
	return reply.Paths, nil
}
