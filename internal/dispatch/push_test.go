package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenericNotify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf(invalidPayloadMsg, err)
		}
		if payload["message"] == "" || payload["agent"] != "towncrier" {
			t.Fatalf(unexpectedPayloadMsg, payload)
		}
		w.WriteHeader(200)
	}))
	defer server.Close()

	g := &Generic{WebhookURL: server.URL}
	if err := g.Notify(context.Background(), "M"); err != nil {
		t.Fatalf("generic notify failed: %v", err)
	}
}

func TestGotifyNotify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/message" {
			t.Fatalf("expected /message, got %s", r.URL.Path)
		}
		if r.Header.Get("X-Gotify-Key") != "tok" {
			t.Fatalf("missing token header")
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf(invalidPayloadMsg, err)
		}
		if payload["message"] == "" {
			t.Fatalf(unexpectedPayloadMsg, payload)
		}
		w.WriteHeader(200)
	}))
	defer server.Close()

	g := &Gotify{ServerURL: server.URL, Token: "tok"}
	if err := g.Notify(context.Background(), "M"); err != nil {
		t.Fatalf("gotify notify failed: %v", err)
	}
}

func TestPushoverNotify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf(invalidPayloadMsg, err)
		}
		if payload["token"] == "" || payload["user"] == "" || payload["message"] == "" {
			t.Fatalf(unexpectedPayloadMsg, payload)
		}
		w.WriteHeader(200)
	}))
	defer server.Close()

	old := pushoverAPIURL
	pushoverAPIURL = server.URL
	defer func() { pushoverAPIURL = old }()

	p := &Pushover{UserKey: "u", APIToken: "tok"}
	if err := p.Notify(context.Background(), "M"); err != nil {
		t.Fatalf("pushover notify failed: %v", err)
	}
}

func TestApprisePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf(invalidPayloadMsg, err)
		}
		if payload["body"] != "M" {
			t.Fatalf("unexpected apprise payload: %v", payload)
		}
		w.WriteHeader(200)
	}))
	defer server.Close()

	a := &Apprise{APIURL: server.URL}
	if err := a.Notify(context.Background(), "M"); err != nil {
		t.Fatalf("apprise notify failed: %v", err)
	}
}
