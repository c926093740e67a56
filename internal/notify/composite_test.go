package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// sequenceNotifier appends its name to a shared call log on every Send.
type sequenceNotifier struct {
	name string
	err  error
	log  *callLog
}

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) append(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (n *sequenceNotifier) Send(_ context.Context, recipient, message string) error {
	n.log.append(n.name)
	if n.err != nil {
		return &DeliveryError{Channel: n.name, Recipient: recipient, Err: n.err}
	}
	return nil
}

func TestCompositeFansOutInOrder(t *testing.T) {
	t.Parallel()

	log := &callLog{}
	n1 := &sequenceNotifier{name: "n1", log: log}
	n2 := &sequenceNotifier{name: "n2", log: log}
	n3 := &sequenceNotifier{name: "n3", log: log}

	c := NewComposite(n1, n2, n3)
	if err := c.Send(context.Background(), "a@x.com", "hello"); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	want := []string{"n1", "n2", "n3"}
	if len(log.calls) != len(want) {
		t.Fatalf("got %d calls, want %d", len(log.calls), len(want))
	}
	for i, name := range want {
		if log.calls[i] != name {
			t.Fatalf("call %d = %s, want %s", i, log.calls[i], name)
		}
	}
}

func TestCompositeEmpty(t *testing.T) {
	t.Parallel()

	c := NewComposite()
	if err := c.Send(context.Background(), "a@x.com", "hello"); err != nil {
		t.Fatalf("empty composite should not fail, got: %v", err)
	}
}

func TestCompositeFailSoft(t *testing.T) {
	t.Parallel()

	log := &callLog{}
	boom := errors.New("smtp down")
	n1 := &sequenceNotifier{name: "n1", err: boom, log: log}
	n2 := &sequenceNotifier{name: "n2", log: log}
	n3 := &sequenceNotifier{name: "n3", err: boom, log: log}

	c := NewComposite(n1, n2, n3)
	err := c.Send(context.Background(), "a@x.com", "hello")
	if err == nil {
		t.Fatal("expected aggregated error")
	}

	// Every channel must have been attempted despite the first failure.
	if len(log.calls) != 3 {
		t.Fatalf("got %d calls, want 3", len(log.calls))
	}

	var dErr *DeliveryError
	if !errors.As(err, &dErr) {
		t.Fatalf("DeliveryError not reachable via errors.As: %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("underlying cause not reachable via errors.Is: %v", err)
	}
}

func TestCompositeSameRecipientAndMessageForAll(t *testing.T) {
	t.Parallel()

	r1 := NewRecorder()
	r2 := NewRecorder()

	c := NewComposite(r1, r2)
	if err := c.Send(context.Background(), "+15550100", "your order shipped"); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	for i, r := range []*Recorder{r1, r2} {
		if r.LastRecipient() != "+15550100" {
			t.Fatalf("recorder %d recipient = %q, want %q", i, r.LastRecipient(), "+15550100")
		}
		if r.LastMessage() != "your order shipped" {
			t.Fatalf("recorder %d message = %q, want %q", i, r.LastMessage(), "your order shipped")
		}
	}
}
