package authority

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCheckRevocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/trial/check" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		revoked := r.URL.Query().Get("user_id") == "bob"
		json.NewEncoder(w).Encode(map[string]any{
			"revoked": revoked,
			"message": "ok",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	revoked, err := client.CheckRevocation(context.Background(), "alice")
	if err != nil || revoked {
		t.Fatalf("alice: got %v %v", revoked, err)
	}
	revoked, err = client.CheckRevocation(context.Background(), "bob")
	if err != nil || !revoked {
		t.Fatalf("bob: got %v %v", revoked, err)
	}
}

func TestCheckRevocationMalformedResponse(t *testing.T) {
	cases := []string{
		"not json",
		`{"message":"missing revoked field"}`,
	}
	for _, body := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		client := New(srv.URL, time.Second)
		if _, err := client.CheckRevocation(context.Background(), "alice"); err == nil {
			t.Fatalf("body %q: expected error", body)
		}
		srv.Close()
	}
}

func TestCheckRevocationServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	if _, err := client.CheckRevocation(context.Background(), "alice"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestCheckRevocationHonorsContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := New(srv.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := client.CheckRevocation(ctx, "alice"); err == nil {
		t.Fatal("expected context deadline error")
	}
}

func TestIssueGrant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/trial/issue" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["user_id"] != "alice" {
			t.Fatalf("unexpected user_id %q", req["user_id"])
		}
		json.NewEncoder(w).Encode(map[string]string{
			"token":     `{"expires_at":200,"issued_at":100,"subject_id":"alice"}`,
			"signature": strings.Repeat("ab", 64),
			"message":   "Trial issued for alice (14 days)",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	token, sigHex, err := client.IssueGrant(context.Background(), "alice")
	if err != nil {
		t.Fatalf("issue grant: %v", err)
	}
	if len(sigHex) != 128 {
		t.Fatalf("expected 128 hex chars, got %d", len(sigHex))
	}
	if !strings.Contains(string(token), `"subject_id":"alice"`) {
		t.Fatalf("unexpected token %s", token)
	}
}

func TestPublicKey(t *testing.T) {
	key := strings.Repeat("b0", 32)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/public-key" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"public_key": key,
			"format":     "ed25519",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	got, err := client.PublicKey(context.Background())
	if err != nil {
		t.Fatalf("public key: %v", err)
	}
	if hex.EncodeToString(got) != key {
		t.Fatalf("unexpected key %x", got)
	}
}

func TestRevoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/trial/revoke" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-Admin-Key"); got != "sekrit" {
			t.Fatalf("unexpected admin key %q", got)
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["user_id"] != "bob" {
			t.Fatalf("unexpected user_id %q", req["user_id"])
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Trial revoked for bob"})
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	if err := client.Revoke(context.Background(), "bob", "sekrit"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
}

func TestRevokeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	if err := client.Revoke(context.Background(), "bob", "wrong"); err == nil {
		t.Fatal("expected error for 401 response")
	}
}
