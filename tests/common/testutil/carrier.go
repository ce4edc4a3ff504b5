//go:build unit || e2e

package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// CarrierReply is one scripted answer of the fake carrier.
type CarrierReply struct {
	Status int
	Body   string
}

// RecordedCall is one request the fake carrier received.
type RecordedCall struct {
	Path        string
	ContentType string
	RequestID   string
	Form        url.Values
	Body        string
}

// FakeCarrier serves scripted replies in order and repeats the last one.
// Replies scripted with Route take precedence for their path.
type FakeCarrier struct {
	*httptest.Server

	mu      sync.Mutex
	replies []CarrierReply
	routes  map[string][]CarrierReply
	calls   []RecordedCall
}

func NewFakeCarrier(t *testing.T, replies ...CarrierReply) *FakeCarrier {
	t.Helper()
	f := &FakeCarrier{replies: replies, routes: map[string][]CarrierReply{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeCarrier) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	call := RecordedCall{
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
		Body:        string(raw),
	}
	if form, err := url.ParseQuery(string(raw)); err == nil {
		call.Form = form
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	reply := CarrierReply{Status: http.StatusOK}
	if script, ok := f.routes[r.URL.Path]; ok {
		reply, f.routes[r.URL.Path] = next(script)
	} else if len(f.replies) > 0 {
		reply, f.replies = next(f.replies)
	}
	f.mu.Unlock()

	if reply.Status == 0 {
		reply.Status = http.StatusOK
	}
	w.WriteHeader(reply.Status)
	_, _ = w.Write([]byte(reply.Body))
}

// Route scripts replies for one endpoint path, e.g. "/get_plan".
func (f *FakeCarrier) Route(path string, replies ...CarrierReply) *FakeCarrier {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = replies
	return f
}

func next(script []CarrierReply) (CarrierReply, []CarrierReply) {
	if len(script) == 0 {
		return CarrierReply{Status: http.StatusOK}, script
	}
	if len(script) == 1 {
		return script[0], script
	}
	return script[0], script[1:]
}

// CallsTo filters recorded calls by endpoint path.
func (f *FakeCarrier) CallsTo(path string) []RecordedCall {
	var out []RecordedCall
	for _, c := range f.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeCarrier) Calls() []RecordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedCall(nil), f.calls...)
}
