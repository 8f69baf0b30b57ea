package services

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/mandiconnect/mandi-go/adapters/memory"
	"github.com/mandiconnect/mandi-go/core"
	"github.com/mandiconnect/mandi-go/transport"
)

// RecordedRequest is one request the fake backend saw.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     []byte
	Header   http.Header
}

type stubResponse struct {
	status int
	body   string
}

// FakeBackend is a test-only HTTP backend. It records every request and
// serves stubbed responses keyed by "METHOD /path"; unstubbed routes get
// an empty 200 envelope.
type FakeBackend struct {
	Server   *httptest.Server
	Storage  *memory.Store
	Sessions *core.SessionStore

	mu       sync.Mutex
	requests []RecordedRequest
	stubs    map[string]stubResponse
}

func NewFakeBackend() *FakeBackend {
	f := &FakeBackend{stubs: make(map[string]stubResponse)}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	f.Storage = memory.New()
	f.Sessions = core.NewSessionStore(f.Storage, nil)
	return f
}

func (f *FakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Body:     body,
		Header:   r.Header.Clone(),
	})
	stub, ok := f.stubs[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.Write([]byte(`{"success":true}`))
		return
	}
	if stub.status != 0 {
		w.WriteHeader(stub.status)
	}
	w.Write([]byte(stub.body))
}

// Stub registers a canned response for a method and path.
func (f *FakeBackend) Stub(method, path, body string) {
	f.StubStatus(method, path, 0, body)
}

// StubStatus registers a canned response with an explicit status code.
func (f *FakeBackend) StubStatus(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stubs[method+" "+path] = stubResponse{status: status, body: body}
}

// Requests returns a copy of everything recorded so far.
func (f *FakeBackend) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Last returns the most recent recorded request.
func (f *FakeBackend) Last() RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return RecordedRequest{}
	}
	return f.requests[len(f.requests)-1]
}

// Close shuts the backend down.
func (f *FakeBackend) Close() {
	f.Server.Close()
}

// Transport builds a transport client aimed at the fake backend.
func (f *FakeBackend) Transport() *transport.Client {
	return transport.New(transport.Options{
		BaseURL:  f.Server.URL,
		Storage:  f.Storage,
		Sessions: f.Sessions,
	})
}
