package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/mandiconnect/mandi-go/adapters/memory"
	"github.com/mandiconnect/mandi-go/core"
)

type env struct {
	storage  *memory.Store
	sessions *core.SessionStore
	client   *Client
	baseURL  string
}

func newTestEnv(t *testing.T, handler http.Handler, opts func(*Options)) *env {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	storage := memory.New()
	sessions := core.NewSessionStore(storage, nil)

	options := Options{
		BaseURL:  server.URL,
		Storage:  storage,
		Sessions: sessions,
	}
	if opts != nil {
		opts(&options)
	}

	return &env{
		storage:  storage,
		sessions: sessions,
		client:   New(options),
		baseURL:  server.URL,
	}
}

// Requirement: the bearer token is read from durable storage per request;
// a login between two requests is reflected on the second one.
func TestClient_TokenFreshness(t *testing.T) {
	// Arrange
	var seen []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	})
	te := newTestEnv(t, handler, nil)
	ctx := context.Background()

	// Act: signed out, then two logins with a request after each
	if err := te.client.Get(ctx, "/ping", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if err := te.sessions.Login(ctx, "t1", core.User{ID: "1", Role: core.RoleFarmer}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := te.client.Get(ctx, "/ping", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if err := te.sessions.Login(ctx, "t2", core.User{ID: "1", Role: core.RoleFarmer}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := te.client.Get(ctx, "/ping", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	// Assert
	want := []string{"", "Bearer t1", "Bearer t2"}
	if len(seen) != len(want) {
		t.Fatalf("got %d requests, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("request %d Authorization = %q, want %q", i, seen[i], want[i])
		}
	}
}

// Requirement: a 401 tears the session down through the session store and
// still reaches the caller as an error.
func TestClient_401Teardown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Expired"}`))
	})
	te := newTestEnv(t, handler, nil)
	ctx := context.Background()

	if err := te.sessions.Login(ctx, "stale", core.User{ID: "1", Role: core.RoleBuyer}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	err := te.client.Get(ctx, "/notifications/user/1", nil)
	if err == nil {
		t.Fatal("Get() error = nil, want 401")
	}

	var apiErr *core.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Fatalf("error = %v, want APIError with status 401", err)
	}
	// 401 classifies to the fixed string even though the backend sent
	// its own message.
	if got := core.UserMessage(err); got != core.MsgUnauthorized {
		t.Errorf("UserMessage() = %q, want %q", got, core.MsgUnauthorized)
	}

	// Durable and in-memory session state are both gone.
	for _, key := range core.SessionKeys() {
		if _, err := te.storage.Get(ctx, key); !errors.Is(err, core.ErrKeyNotFound) {
			t.Errorf("storage still holds %q after 401", key)
		}
	}
	if te.sessions.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after 401")
	}
}

// Requirement: error statuses become APIError with the backend message
// attached; success responses decode through the envelope.
func TestClient_ErrorsAndDecoding(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/conflict":
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"Crop already exists"}`))
		case "/enveloped":
			w.Write([]byte(`{"success":true,"data":{"_id":"c1","cropName":"Wheat"}}`))
		case "/bare":
			w.Write([]byte(`{"_id":"c2","cropName":"Rice"}`))
		default:
			http.NotFound(w, r)
		}
	})
	te := newTestEnv(t, handler, nil)
	ctx := context.Background()

	err := te.client.Post(ctx, "/conflict", map[string]string{"cropName": "Wheat"}, nil)
	var apiErr *core.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.StatusCode != 409 || apiErr.Message != "Crop already exists" {
		t.Errorf("APIError = %+v, want 409 with backend message", apiErr)
	}
	if got := core.UserMessage(err); got != "Crop already exists" {
		t.Errorf("UserMessage() = %q, want backend message", got)
	}

	var crop core.Crop
	if err := te.client.Get(ctx, "/enveloped", &crop); err != nil {
		t.Fatalf("Get(/enveloped) error = %v", err)
	}
	if crop.ID != "c1" {
		t.Errorf("enveloped crop ID = %q, want c1", crop.ID)
	}

	crop = core.Crop{}
	if err := te.client.Get(ctx, "/bare", &crop); err != nil {
		t.Fatalf("Get(/bare) error = %v", err)
	}
	if crop.ID != "c2" {
		t.Errorf("bare crop ID = %q, want c2", crop.ID)
	}
}

// Requirement: no retries happen unless a policy is configured; with one,
// retryable statuses are retried up to the limit.
func TestClient_RetryOptIn(t *testing.T) {
	var attempts atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	// Default: a single attempt.
	te := newTestEnv(t, handler, nil)
	if err := te.client.Get(context.Background(), "/x", nil); err == nil {
		t.Fatal("Get() error = nil, want 503")
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts without retry = %d, want 1", got)
	}

	// Opt-in: initial attempt plus MaxRetries.
	attempts.Store(0)
	te = newTestEnv(t, handler, func(o *Options) {
		o.Retry = &RetryPolicy{
			MaxRetries:           2,
			InitialBackoff:       time.Millisecond,
			MaxBackoff:           5 * time.Millisecond,
			RetryableStatusCodes: []int{http.StatusServiceUnavailable},
		}
	})
	err := te.client.Get(context.Background(), "/x", nil)
	var apiErr *core.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 503 {
		t.Fatalf("error = %v, want APIError with status 503", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts with retry = %d, want 3", got)
	}
}

// Requirement: a request that exceeds the timeout classifies as a timeout,
// not a generic failure.
func TestClient_Timeout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	})
	te := newTestEnv(t, handler, func(o *Options) {
		o.Timeout = 50 * time.Millisecond
	})

	err := te.client.Get(context.Background(), "/slow", nil)
	if err == nil {
		t.Fatal("Get() error = nil, want timeout")
	}
	if got := core.UserMessage(err); got != core.MsgTimeout {
		t.Errorf("UserMessage() = %q, want %q", got, core.MsgTimeout)
	}
}

// Requirement: request and response log lines carry the same resolved
// URL, not a relative path on one side.
func TestClient_LogsResolvedURL(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})
	te := newTestEnv(t, handler, func(o *Options) {
		o.Logger = logger
	})

	if err := te.client.Get(context.Background(), "/getAllCrop", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	want := te.baseURL + "/getAllCrop"
	var urls []string
	for _, entry := range hook.AllEntries() {
		if url, ok := entry.Data["url"].(string); ok {
			urls = append(urls, url)
		}
	}
	if len(urls) < 2 {
		t.Fatalf("entries with url field = %d, want request and response lines", len(urls))
	}
	for _, url := range urls {
		if url != want {
			t.Errorf("logged url = %q, want %q", url, want)
		}
	}
}

// Requirement: default retry policy values stay aligned with what the
// docs promise.
func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()

	if policy.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", policy.MaxRetries)
	}
	if policy.InitialBackoff != 100*time.Millisecond {
		t.Errorf("InitialBackoff = %v, want 100ms", policy.InitialBackoff)
	}
	if policy.MaxBackoff != 10*time.Second {
		t.Errorf("MaxBackoff = %v, want 10s", policy.MaxBackoff)
	}
	if len(policy.RetryableStatusCodes) == 0 {
		t.Error("RetryableStatusCodes should not be empty")
	}
}
