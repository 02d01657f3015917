package assist

import (
	"context"
	"sync"
)

// Kind is the type of an assistant request.
type Kind int

const (
	Translate Kind = iota // word problem to expression
	Explain               // step-by-step explanation
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Translate:
		return "translate"
	case Explain:
		return "explain"
	default:
		panic("unknown request kind")
	}
}

func (k Kind) prompt() string {
	if k == Translate {
		return TranslatePrompt
	}
	return ExplainPrompt
}

// Asker answers a single request.
type Asker interface {
	Ask(ctx context.Context, userText, systemInstruction string) string
}

// Reply is the answer to a request.
type Reply struct {
	Kind  Kind
	Seq   uint64
	Input string
	Text  string
}

// Assistant runs requests in the background so that input handling never
// waits for the service. A new request supersedes the pending request of
// the same kind: the old one is canceled and its reply is not accepted.
type Assistant struct {
	asker   Asker
	replies chan Reply

	mu        sync.Mutex
	seq       [numKinds]uint64
	delivered [numKinds]uint64
	cancel    [numKinds]context.CancelFunc

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

// New creates an assistant sending requests through asker.
func New(asker Asker) *Assistant {
	ctx, stop := context.WithCancel(context.Background())
	return &Assistant{
		asker:   asker,
		replies: make(chan Reply, 2*numKinds),
		ctx:     ctx,
		stop:    stop,
	}
}

// Replies returns the reply channel.
// The app reads this channel and accepts replies on its event loop.
func (a *Assistant) Replies() <-chan Reply {
	return a.replies
}

// Translate starts converting a word problem into an expression.
func (a *Assistant) Translate(problem string) uint64 {
	return a.start(Translate, problem)
}

// Explain starts explaining a calculation.
func (a *Assistant) Explain(calculation string) uint64 {
	return a.start(Explain, calculation)
}

func (a *Assistant) start(kind Kind, input string) uint64 {
	a.mu.Lock()
	if a.cancel[kind] != nil {
		a.cancel[kind]()
	}
	a.seq[kind]++
	seq := a.seq[kind]
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancel[kind] = cancel
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer cancel()
		text := a.asker.Ask(ctx, input, kind.prompt())
		select {
		case a.replies <- Reply{Kind: kind, Seq: seq, Input: input, Text: text}:
		case <-a.ctx.Done():
		}
	}()
	return seq
}

// Accept reports whether r answers the latest request of its kind.
// Superseded replies are rejected.
func (a *Assistant) Accept(r Reply) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if r.Seq != a.seq[r.Kind] {
		return false
	}
	a.delivered[r.Kind] = r.Seq
	return true
}

// Pending reports whether a request of the given kind awaits its reply.
func (a *Assistant) Pending(kind Kind) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.delivered[kind] != a.seq[kind]
}

// Close cancels all requests and waits for them to end.
func (a *Assistant) Close() {
	a.stop()
	a.wg.Wait()
}
