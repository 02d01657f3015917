package assist

import (
	"context"
	"testing"
	"time"
)

// blockingAsker answers when released, or reports cancellation.
type blockingAsker struct {
	release chan string
}

func (a *blockingAsker) Ask(ctx context.Context, userText, systemInstruction string) string {
	select {
	case text := <-a.release:
		return text
	case <-ctx.Done():
		return "canceled " + userText
	}
}

func receive(t *testing.T, a *Assistant) Reply {
	t.Helper()
	select {
	case r := <-a.Replies():
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reply")
		return Reply{}
	}
}

func TestAssistantReply(t *testing.T) {
	asker := &blockingAsker{release: make(chan string, 1)}
	a := New(asker)
	defer a.Close()

	seq := a.Translate("five times ten")
	if !a.Pending(Translate) || a.Pending(Explain) {
		t.Fatal("wrong pending state")
	}
	asker.release <- "5 * 10"
	r := receive(t, a)
	if r.Kind != Translate || r.Seq != seq || r.Input != "five times ten" || r.Text != "5 * 10" {
		t.Fatalf("wrong reply %+v", r)
	}
	if !a.Accept(r) {
		t.Fatal("latest reply rejected")
	}
	if a.Pending(Translate) {
		t.Fatal("request still pending after accept")
	}
}

func TestAssistantSupersede(t *testing.T) {
	asker := &blockingAsker{release: make(chan string, 1)}
	a := New(asker)
	defer a.Close()

	first := a.Explain("1 + 1 = 2")
	second := a.Explain("2 + 2 = 4")
	if second <= first {
		t.Fatalf("sequence did not advance: %d %d", first, second)
	}

	// The first request is canceled by the second one.
	r := receive(t, a)
	if r.Seq != first || r.Text != "canceled 1 + 1 = 2" {
		t.Fatalf("wrong first reply %+v", r)
	}
	if a.Accept(r) {
		t.Fatal("superseded reply accepted")
	}
	if !a.Pending(Explain) {
		t.Fatal("second request not pending")
	}

	asker.release <- "explanation"
	r = receive(t, a)
	if r.Seq != second || !a.Accept(r) {
		t.Fatalf("latest reply not accepted: %+v", r)
	}
}

func TestAssistantKindsIndependent(t *testing.T) {
	asker := &blockingAsker{release: make(chan string, 2)}
	a := New(asker)
	defer a.Close()

	a.Translate("p")
	a.Explain("c")
	asker.release <- "x"
	asker.release <- "y"
	for i := 0; i < 2; i++ {
		r := receive(t, a)
		if !a.Accept(r) {
			t.Fatalf("reply %+v rejected", r)
		}
	}
}

func TestAssistantClose(t *testing.T) {
	asker := &blockingAsker{release: make(chan string)}
	a := New(asker)
	a.Translate("p")
	a.Explain("c")
	done := make(chan struct{})
	go func() {
		a.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return")
	}
}
