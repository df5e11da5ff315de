package surface

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"assistant"
	"assistant/bridge"
	"assistant/render"
	"assistant/session"
)

type stubFrontend struct {
	mu      sync.Mutex
	frames  [][]render.Component
	loading int
	events  chan Event
	closed  chan struct{}
	once    sync.Once
}

func newStubFrontend() *stubFrontend {
	return &stubFrontend{
		events: make(chan Event, 16),
		closed: make(chan struct{}),
	}
}

func (f *stubFrontend) Render(components []render.Component) {
	f.mu.Lock()
	f.frames = append(f.frames, components)
	f.mu.Unlock()
}

func (f *stubFrontend) Loading() {
	f.mu.Lock()
	f.loading++
	f.mu.Unlock()
}

func (f *stubFrontend) Events() <-chan Event { return f.events }

func (f *stubFrontend) Close() {
	f.once.Do(func() { close(f.closed) })
}

func (f *stubFrontend) loadingShown() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading > 0
}

func (f *stubFrontend) frameCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func (f *stubFrontend) waitFrame(t *testing.T, what string, match func([]render.Component) bool) []render.Component {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		f.mu.Lock()
		for _, frame := range f.frames {
			if match(frame) {
				f.mu.Unlock()
				return frame
			}
		}
		f.mu.Unlock()
		select {
		case <-deadline:
			t.Fatalf("no frame matched: %s", what)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// scriptClient is a canned bridge.Client for driving the run loop
// without a real host.
type scriptClient struct {
	mu          sync.Mutex
	elements    assistant.Elements
	emptyRounds int
	ack         bridge.SubmitAck
	record      assistant.Result
	picks       []string
	pickErr     error
	heights     []int
	opened      []string
	done        chan struct{}
}

func (c *scriptClient) GetElements(context.Context) (assistant.Elements, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.emptyRounds > 0 {
		c.emptyRounds--
		return nil, nil
	}
	return c.elements, nil
}

func (c *scriptClient) SetResult(_ context.Context, record assistant.Result) (bridge.SubmitAck, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record = record
	return c.ack, nil
}

func (c *scriptClient) SetHeight(_ context.Context, px int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.heights = append(c.heights, px)
	return nil
}

func (c *scriptClient) OpenFile(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opened = append(c.opened, path)
	return nil
}

func (c *scriptClient) OpenFileDialog(context.Context, string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.picks, c.pickErr
}

func (c *scriptClient) Done() <-chan struct{} { return c.done }

func (c *scriptClient) submitted() assistant.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

func startRun(ctx context.Context, client bridge.Client, fe Frontend) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- Run(ctx, client, fe) }()
	return errCh
}

func waitRun(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		t.Fatalf("run loop did not finish")
		return nil
	}
}

func TestRun_SubmitRoundTripAgainstSession(t *testing.T) {
	ctx := context.Background()

	d := assistant.NewDialog()
	d.AddHeading("Sign in")
	if err := d.AddTextInput("username", assistant.WithLabel("User name")); err != nil {
		t.Fatalf("add input: %v", err)
	}
	if err := d.AddSubmit([]string{"Cancel", "OK"}, assistant.WithDefault("OK")); err != nil {
		t.Fatalf("add submit: %v", err)
	}
	sess := session.New(d.Elements(), session.Config{Timeout: 5 * time.Second})

	fe := newStubFrontend()
	fe.events <- SetValue{Name: "username", Value: "alice"}
	fe.events <- Submit{Button: "OK"}

	errCh := startRun(ctx, bridge.NewLocal(sess), fe)
	if err := waitRun(t, errCh); err != nil {
		t.Fatalf("run: %v", err)
	}

	record, err := sess.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	want := assistant.Result{"username": "alice", assistant.SubmitKey: "OK"}
	if !reflect.DeepEqual(record, want) {
		t.Fatalf("record = %#v, want %#v", record, want)
	}

	select {
	case <-fe.closed:
	default:
		t.Fatalf("frontend should be asked to close after an accepted submit")
	}
	if fe.frameCount() == 0 {
		t.Fatalf("frontend never rendered")
	}
}

func TestRun_RejectedSubmitShowsErrorsThenAccepts(t *testing.T) {
	ctx := context.Background()
	required := func(v any) error {
		if s, _ := v.(string); s == "" {
			return errors.New("required")
		}
		return nil
	}

	d := assistant.NewDialog()
	if err := d.AddTextInput("username", assistant.WithValidator(required)); err != nil {
		t.Fatalf("add input: %v", err)
	}
	if err := d.AddSubmit([]string{"OK"}); err != nil {
		t.Fatalf("add submit: %v", err)
	}
	sess := session.New(d.Elements(), session.Config{
		Timeout:    5 * time.Second,
		Validators: d.Validators(),
	})

	fe := newStubFrontend()
	fe.events <- Submit{Button: "OK"}
	fe.events <- SetValue{Name: "username", Value: "alice"}
	fe.events <- Submit{Button: "OK"}

	errCh := startRun(ctx, bridge.NewLocal(sess), fe)
	if err := waitRun(t, errCh); err != nil {
		t.Fatalf("run: %v", err)
	}

	fe.waitFrame(t, "inline validation error", func(frame []render.Component) bool {
		for _, c := range frame {
			if c.TextField != nil && c.TextField.Error == "required" {
				return true
			}
		}
		return false
	})

	record, err := sess.Wait(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if got := record.String("username"); got != "alice" {
		t.Fatalf("username = %q, want corrected value", got)
	}
}

func TestRun_ClosedEventMeansNoResult(t *testing.T) {
	client := &scriptClient{
		elements: assistant.Elements{
			assistant.TextInput{Name: "username"},
			assistant.Submit{Buttons: []string{"OK"}},
		},
		ack: bridge.SubmitAck{Accepted: true},
	}
	fe := newStubFrontend()
	fe.events <- Closed{}

	err := waitRun(t, startRun(context.Background(), client, fe))
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("err = %v, want ErrClosed", err)
	}
	if client.submitted() != nil {
		t.Fatalf("no record should be submitted on close")
	}
}

func TestRun_RetriesUntilElementsStaged(t *testing.T) {
	client := &scriptClient{
		elements: assistant.Elements{
			assistant.Text{Value: "ready"},
			assistant.Submit{Buttons: []string{"OK"}},
		},
		emptyRounds: 1,
		ack:         bridge.SubmitAck{Accepted: true},
	}
	fe := newStubFrontend()

	errCh := startRun(context.Background(), client, fe)

	fe.waitFrame(t, "form after staging", func(frame []render.Component) bool {
		return len(frame) == 2
	})
	if !fe.loadingShown() {
		t.Fatalf("loading state should be shown before elements are staged")
	}

	fe.events <- Submit{Button: "OK"}
	if err := waitRun(t, errCh); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRun_PickFilesFillsInputBeforeSubmit(t *testing.T) {
	client := &scriptClient{
		elements: assistant.Elements{
			assistant.FileInput{Name: "sheet", Label: "Workbook", FileTypes: []string{"xlsx"}},
			assistant.Submit{Buttons: []string{"OK"}},
		},
		picks: []string{"/tmp/q3.xlsx"},
		ack:   bridge.SubmitAck{Accepted: true},
	}
	fe := newStubFrontend()

	errCh := startRun(context.Background(), client, fe)
	fe.events <- PickFiles{Name: "sheet"}

	fe.waitFrame(t, "picked path in the file input", func(frame []render.Component) bool {
		for _, c := range frame {
			if c.FilePicker != nil && len(c.FilePicker.Paths) == 1 {
				return true
			}
		}
		return false
	})

	fe.events <- Submit{Button: "OK"}
	if err := waitRun(t, errCh); err != nil {
		t.Fatalf("run: %v", err)
	}

	record := client.submitted()
	if got := record.Paths("sheet"); !reflect.DeepEqual(got, []string{"/tmp/q3.xlsx"}) {
		t.Fatalf("sheet = %#v, want picked path", got)
	}
}

func TestRun_OpenFileForwardsToHost(t *testing.T) {
	client := &scriptClient{
		elements: assistant.Elements{
			assistant.Link{Value: "https://example.test/report"},
			assistant.Submit{Buttons: []string{"OK"}},
		},
		ack: bridge.SubmitAck{Accepted: true},
	}
	fe := newStubFrontend()
	fe.events <- OpenFile{Path: "https://example.test/report"}
	fe.events <- Submit{Button: "OK"}

	if err := waitRun(t, startRun(context.Background(), client, fe)); err != nil {
		t.Fatalf("run: %v", err)
	}

	client.mu.Lock()
	opened := append([]string(nil), client.opened...)
	client.mu.Unlock()
	if !reflect.DeepEqual(opened, []string{"https://example.test/report"}) {
		t.Fatalf("opened = %#v", opened)
	}
}

func TestRun_HostGoneStopsTheLoop(t *testing.T) {
	client := &scriptClient{
		elements: assistant.Elements{
			assistant.Text{Value: "hello"},
			assistant.Submit{Buttons: []string{"OK"}},
		},
		done: make(chan struct{}),
	}
	fe := newStubFrontend()

	errCh := startRun(context.Background(), client, fe)
	fe.waitFrame(t, "initial render", func(frame []render.Component) bool {
		return len(frame) > 0
	})

	close(client.done)
	if err := waitRun(t, errCh); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("err = %v, want ErrDisconnected", err)
	}
	select {
	case <-fe.closed:
	default:
		t.Fatalf("frontend should be asked to close when the host goes away")
	}
}

func TestRun_ContextCancelStopsTheLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &scriptClient{
		elements: assistant.Elements{assistant.Submit{Buttons: []string{"OK"}}},
	}
	fe := newStubFrontend()

	errCh := startRun(ctx, client, fe)
	cancel()

	if err := waitRun(t, errCh); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRun_ReportsHeightAfterRender(t *testing.T) {
	client := &scriptClient{
		elements: assistant.Elements{
			assistant.Heading{Value: "Report", Size: assistant.SizeLarge},
			assistant.Submit{Buttons: []string{"OK"}},
		},
		ack: bridge.SubmitAck{Accepted: true},
	}
	fe := newStubFrontend()
	fe.events <- Submit{Button: "OK"}

	if err := waitRun(t, startRun(context.Background(), client, fe)); err != nil {
		t.Fatalf("run: %v", err)
	}

	client.mu.Lock()
	heights := append([]int(nil), client.heights...)
	client.mu.Unlock()
	if len(heights) == 0 || heights[0] <= 0 {
		t.Fatalf("heights = %v, want at least one positive report", heights)
	}
}
