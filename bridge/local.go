package bridge

import (
	"context"

	"assistant"
)

// Local adapts an in-process host into a Client, for surfaces running
// in the same process as the dialog session.
type Local struct {
	host Host
}

var _ Client = (*Local)(nil)

// NewLocal wraps host so a surface can drive it through the Client
// interface.
func NewLocal(host Host) *Local {
	return &Local{host: host}
}

func (l *Local) GetElements(ctx context.Context) (assistant.Elements, error) {
	return l.host.Elements(ctx)
}

func (l *Local) SetResult(ctx context.Context, record assistant.Result) (SubmitAck, error) {
	return l.host.SubmitResult(ctx, record)
}

func (l *Local) SetHeight(ctx context.Context, px int) error {
	return l.host.ReportHeight(ctx, px)
}

func (l *Local) OpenFile(ctx context.Context, path string) error {
	return l.host.OpenFile(ctx, path)
}

func (l *Local) OpenFileDialog(ctx context.Context, name string) ([]string, error) {
	return l.host.OpenFileDialog(ctx, name)
}

// Done exposes the host's termination signal when the host has one. A
// nil channel never fires, so surfaces can select on it either way.
func (l *Local) Done() <-chan struct{} {
	if dn, ok := l.host.(interface{ Done() <-chan struct{} }); ok {
		return dn.Done()
	}
	return nil
}
