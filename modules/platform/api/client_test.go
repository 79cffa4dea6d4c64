package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeOrchestrator is a minimal stand-in for the profile server. It issues
// a fixed token on the right password and enforces it on every other route.
type fakeOrchestrator struct {
	mux      *http.ServeMux
	password string
	token    string

	logHits int
	lastHdr map[string]string
}

func newFakeOrchestrator() *fakeOrchestrator {
	f := &fakeOrchestrator{
		mux:      http.NewServeMux(),
		password: "secret",
		token:    "tok-12345",
	}

	f.mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		if req.Password != f.password {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok": false, "error": "Invalid password",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true, "token": f.token,
		})
	})

	f.mux.HandleFunc("/profiles", f.authed(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true,
			"profiles": []map[string]string{
				{"profile": "alpha-01", "email": "a@example.com"},
				{"profile": "alpha-02"},
			},
		})
	}))

	f.mux.HandleFunc("/logs", f.authed(func(w http.ResponseWriter, r *http.Request) {
		f.logHits++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true, "logs": []string{"first", "second"},
		})
	}))

	f.mux.HandleFunc("/quarantine/list", f.authed(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true,
			"quarantined": []map[string]interface{}{
				{"profile": "alpha-02", "failures": 3, "next_allowed": 1700000000.0},
			},
		})
	}))

	return f
}

func (f *fakeOrchestrator) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.lastHdr = map[string]string{AuthHeader: r.Header.Get(AuthHeader)}
		if r.Header.Get(AuthHeader) != f.token {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"ok": false, "error": "Not authenticated",
			})
			return
		}
		h(w, r)
	}
}

func newTestClient(t *testing.T) (*Client, *fakeOrchestrator) {
	t.Helper()
	fake := newFakeOrchestrator()
	srv := httptest.NewServer(fake.mux)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL), fake
}

func TestLoginStoresToken(t *testing.T) {
	client, fake := newTestClient(t)
	ctx := context.Background()

	if client.HasToken() {
		t.Fatal("fresh client should not hold a token")
	}

	if err := client.Login(ctx, "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if got := client.Token(); got != fake.token {
		t.Errorf("token = %q, want %q", got, fake.token)
	}

	// The token must ride on subsequent requests
	if _, err := client.Profiles(ctx); err != nil {
		t.Fatalf("profiles after login: %v", err)
	}
	if got := fake.lastHdr[AuthHeader]; got != fake.token {
		t.Errorf("auth header = %q, want %q", got, fake.token)
	}
}

func TestLoginRejectedLeavesNoToken(t *testing.T) {
	client, _ := newTestClient(t)

	err := client.Login(context.Background(), "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %T: %v", err, err)
	}
	if rejected.Message != "Invalid password" {
		t.Errorf("message = %q, want server message", rejected.Message)
	}
	if client.HasToken() {
		t.Error("failed login must not store a token")
	}
}

func TestLoginRepeatedFailures(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := client.Login(ctx, "wrong"); err == nil {
			t.Fatalf("attempt %d: expected failure", i)
		}
		if client.HasToken() {
			t.Fatalf("attempt %d: token stored after failure", i)
		}
	}

	// A later correct attempt still works
	if err := client.Login(ctx, "secret"); err != nil {
		t.Fatalf("login after failures: %v", err)
	}
}

func TestRejectionDefaultMessages(t *testing.T) {
	// Server rejects without an error string; the client substitutes the
	// operation default.
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": false})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
		want string
	}{
		{"login", func() error { return client.Login(ctx, "x") }, "Login failed"},
		{"launch", func() error { return client.Launch(ctx, "p", "") }, "Launch failed"},
		{"launch all", func() error { return client.LaunchAll(ctx) }, "Launch all failed"},
		{"start refresh", func() error { return client.StartRefresh(ctx) }, "Start refresh failed"},
		{"stop refresh", func() error { return client.StopRefresh(ctx) }, "Stop refresh failed"},
		{"safe refresh", func() error { return client.SafeRefresh(ctx) }, "Safe refresh failed"},
		{"add proxies", func() error { return client.AddProxies(ctx, map[string]string{"a": "b"}) }, "Add proxies failed"},
		{"change password", func() error { return client.ChangePassword(ctx, "x") }, "Change password failed"},
		{"close all", func() error { return client.CloseAll(ctx) }, "Close all failed"},
		{"reset quarantine", func() error { return client.ResetQuarantine(ctx, "p") }, "Reset quarantine failed"},
	}

	for _, tc := range cases {
		err := tc.call()
		if err == nil {
			t.Errorf("%s: expected rejection", tc.name)
			continue
		}
		var rejected *RejectedError
		if !errors.As(err, &rejected) {
			t.Errorf("%s: expected RejectedError, got %v", tc.name, err)
			continue
		}
		if rejected.Message != tc.want {
			t.Errorf("%s: message = %q, want %q", tc.name, rejected.Message, tc.want)
		}
	}
}

func TestGetNonSuccessIsTransportError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/logs", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Logs(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if transport.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", transport.Status, http.StatusBadGateway)
	}
}

func TestPostReadsBodyOnErrorStatus(t *testing.T) {
	// Commands deliver rejections with non-2xx statuses; the body message
	// must still surface instead of a bare status error.
	mux := http.NewServeMux()
	mux.HandleFunc("/launch", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": false, "error": "Unknown profile",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Launch(context.Background(), "ghost", "")

	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.Message != "Unknown profile" {
		t.Errorf("message = %q, want server message", rejected.Message)
	}
}

func TestLoginWithoutTokenInResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL)
	if err := client.Login(context.Background(), "secret"); err == nil {
		t.Fatal("expected error when server omits the token")
	}
	if client.HasToken() {
		t.Error("no token should be stored")
	}
}

func TestProfilesDecode(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Login(ctx, "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	profiles, err := client.Profiles(ctx)
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if profiles[0].Profile != "alpha-01" || profiles[0].Email != "a@example.com" {
		t.Errorf("unexpected first profile: %+v", profiles[0])
	}
	if profiles[1].Email != "" {
		t.Errorf("second profile should have no email: %+v", profiles[1])
	}
}

func TestQuarantineDecode(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Login(ctx, "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	entries, err := client.Quarantine(ctx)
	if err != nil {
		t.Fatalf("quarantine: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Profile != "alpha-02" || e.Failures != 3 || e.NextAllowed != 1700000000.0 {
		t.Errorf("unexpected entry: %+v", e)
	}
}

func TestAddProxiesBody(t *testing.T) {
	var got map[string]map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("/add_proxies", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.AddProxies(context.Background(), map[string]string{
		"alpha-01": "socks5://10.0.0.2:1080",
	})
	if err != nil {
		t.Fatalf("add proxies: %v", err)
	}

	if got["proxies"]["alpha-01"] != "socks5://10.0.0.2:1080" {
		t.Errorf("unexpected body: %v", got)
	}
}

func TestRequestsBeforeLoginCarryNoToken(t *testing.T) {
	client, fake := newTestClient(t)

	_, err := client.Logs(context.Background())
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		var transport *TransportError
		if !errors.As(err, &transport) {
			t.Fatalf("expected auth rejection, got %v", err)
		}
	}
	if fake.lastHdr[AuthHeader] != "" {
		t.Errorf("unauthenticated request carried header %q", fake.lastHdr[AuthHeader])
	}
}

func TestClearToken(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Login(ctx, "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	client.ClearToken()
	if client.HasToken() {
		t.Error("token survived ClearToken")
	}
}

func TestEmptyBaseURLDefaults(t *testing.T) {
	client := NewClient("")
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("base url = %q, want %q", client.BaseURL(), DefaultBaseURL)
	}
}
