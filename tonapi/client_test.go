package tonapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleResponse = `{
	"traces": [{
		"trace_id": "abc",
		"external_hash": "abc",
		"trace_info": {
			"trace_state": "complete",
			"messages": 3,
			"transactions": 2,
			"pending_messages": 0
		},
		"is_incomplete": false
	}]
}`

func TestPendingTracesRequest(t *testing.T) {
	var gotPath, gotHash, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHash = r.URL.Query().Get("ext_msg_hash")
		gotKey = r.Header.Get("X-Api-Key")
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	resp, err := c.PendingTraces(context.Background(), "hash+with/specials=")
	if err != nil {
		t.Fatalf("PendingTraces failed: %v", err)
	}
	if gotPath != "/api/v3/pendingTraces" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotHash != "hash+with/specials=" {
		t.Errorf("hash not query-escaped round trip, got %q", gotHash)
	}
	if gotKey != "secret" {
		t.Errorf("expected api key header, got %q", gotKey)
	}
	if len(resp.Traces) != 1 || resp.Traces[0].TraceMeta.Messages != 3 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestTracesRequest(t *testing.T) {
	var gotPath, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotID = r.URL.Query().Get("trace_id")
		w.Write([]byte(`{"traces": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	resp, err := c.Traces(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Traces failed: %v", err)
	}
	if gotPath != "/api/v3/traces" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotID != "abc" {
		t.Errorf("unexpected trace_id %q", gotID)
	}
	if len(resp.Traces) != 0 {
		t.Errorf("expected empty traces, got %+v", resp)
	}
}

func TestNoApiKeyHeaderWhenUnset(t *testing.T) {
	var hasKey bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasKey = r.Header["X-Api-Key"]
		w.Write([]byte(`{"traces": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Traces(context.Background(), "abc"); err != nil {
		t.Fatalf("Traces failed: %v", err)
	}
	if hasKey {
		t.Error("api key header must be omitted when no key is configured")
	}
}

func TestNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Traces(context.Background(), "abc"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestMalformedBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"traces": [`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if _, err := c.Traces(context.Background(), "abc"); err == nil {
		t.Fatal("expected error for truncated body")
	}
}
