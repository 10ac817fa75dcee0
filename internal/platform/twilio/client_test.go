package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		if !ok || user != "ACtest" {
			t.Errorf("missing basic auth, user = %q", user)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("bad form: %v", err)
		}
		if got := r.PostFormValue("To"); got != "whatsapp:+910000000001" {
			t.Errorf("To = %q", got)
		}
		if got := r.PostFormValue("From"); got != "whatsapp:+14155238886" {
			t.Errorf("From = %q", got)
		}
		if got := r.PostFormValue("MediaUrl"); got != "https://example.test/a.mp3" {
			t.Errorf("MediaUrl = %q", got)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := &Client{
		AccountSID: "ACtest",
		authToken:  "secret",
		From:       "whatsapp:+14155238886",
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	err := c.SendMessage(context.Background(), "whatsapp:+910000000001", "hello", "https://example.test/a.mp3")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad number"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := &Client{
		AccountSID: "ACtest",
		authToken:  "secret",
		From:       "whatsapp:+14155238886",
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	if err := c.SendMessage(context.Background(), "whatsapp:+1", "hello", ""); err == nil {
		t.Fatal("expected error for 400 response")
	}
}
