package assist

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// testClient returns a client for url that records delays instead of sleeping.
func testClient(url string, delays *[]time.Duration) *Client {
	c := NewClient(url, "secret")
	c.Log = log.New(io.Discard, "", 0)
	c.Sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return c
}

const okReply = `{"candidates":[{"content":{"parts":[{"text":"5 * 10"}]}}]}`

func TestClientAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("wrong method %s", r.Method)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "secret" {
			t.Errorf("wrong key %q", got)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Contents[0].Parts[0].Text != "five times ten" || req.SystemInstruction.Parts[0].Text != TranslatePrompt {
			t.Errorf("wrong request: %+v", req)
		}
		io.WriteString(w, okReply)
	}))
	defer srv.Close()

	var delays []time.Duration
	c := testClient(srv.URL, &delays)
	if got := c.Ask(context.Background(), "five times ten", TranslatePrompt); got != "5 * 10" {
		t.Fatalf("wrong reply %q", got)
	}
	if len(delays) != 0 {
		t.Fatalf("unexpected retries: %v", delays)
	}
}

func TestClientRetryRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		io.WriteString(w, okReply)
	}))
	defer srv.Close()

	var delays []time.Duration
	c := testClient(srv.URL, &delays)
	if got := c.Ask(context.Background(), "q", ExplainPrompt); got != "5 * 10" {
		t.Fatalf("wrong reply %q", got)
	}
	want := []time.Duration{time.Second, 2 * time.Second}
	if !reflect.DeepEqual(delays, want) {
		t.Fatalf("wrong delays\n  got: %v\n want: %v", delays, want)
	}
}

func TestClientRetryExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var delays []time.Duration
	c := testClient(srv.URL, &delays)
	got := c.Ask(context.Background(), "q", ExplainPrompt)
	if got != "Error: API request failed: HTTP error! status: 500" {
		t.Fatalf("wrong reply %q", got)
	}
	if calls != 4 {
		t.Fatalf("wrong number of attempts %d", calls)
	}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	if !reflect.DeepEqual(delays, want) {
		t.Fatalf("wrong delays\n  got: %v\n want: %v", delays, want)
	}
}

func TestClientBadResponse(t *testing.T) {
	for _, body := range []string{`{"candidates":[]}`, `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		}))
		var delays []time.Duration
		c := testClient(srv.URL, &delays)
		got := c.Ask(context.Background(), "q", ExplainPrompt)
		srv.Close()
		if got != "Error: Could not parse LLM response." {
			t.Fatalf("body %q: wrong reply %q", body, got)
		}
		if len(delays) != 0 {
			t.Fatalf("body %q: parse failure retried", body)
		}
	}
}

func TestClientInvalidJSON(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			io.WriteString(w, "<html>busy</html>")
			return
		}
		io.WriteString(w, okReply)
	}))
	defer srv.Close()

	var delays []time.Duration
	c := testClient(srv.URL, &delays)
	if got := c.Ask(context.Background(), "q", ExplainPrompt); got != "5 * 10" {
		t.Fatalf("wrong reply %q", got)
	}
	if len(delays) != 1 {
		t.Fatalf("wrong number of retries %d", len(delays))
	}
}

func TestClientKeyNotLeaked(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var (
		logbuf strings.Builder
		delays []time.Duration
	)
	c := testClient(url, &delays)
	c.APIKey = "SECRETKEY123"
	c.Log = log.New(&logbuf, "", 0)
	got := c.Ask(context.Background(), "q", ExplainPrompt)
	if !strings.HasPrefix(got, "Error: API request failed:") {
		t.Fatalf("wrong reply %q", got)
	}
	if strings.Contains(got, c.APIKey) {
		t.Fatalf("key in reply: %q", got)
	}
	if logbuf.Len() == 0 || strings.Contains(logbuf.String(), c.APIKey) {
		t.Fatalf("key in log or nothing logged: %q", logbuf.String())
	}
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var delays []time.Duration
	c := testClient(url, &delays)
	got := c.Ask(context.Background(), "q", ExplainPrompt)
	if !strings.HasPrefix(got, "Error: API request failed:") {
		t.Fatalf("wrong reply %q", got)
	}
	if len(delays) != DefaultMaxRetries {
		t.Fatalf("wrong number of retries %d", len(delays))
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("**Step 1:** multiply\n**Result:** 50")
	if want := "Step 1: multiply\nResult: 50"; got != want {
		t.Fatalf("wrong text\n  got: %q\n want: %q", got, want)
	}
}
