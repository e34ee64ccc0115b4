package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/valyala/fasthttp"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		apiKey:  "test-key",
		client:  &fasthttp.Client{},
		baseURL: srv.URL,
	}
}

func TestMissingAPIKey(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	c.apiKey = ""

	_, err := c.GetAccountByRiotID(context.Background(), "europe", "kast220", "EUNE")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
	if called {
		t.Error("request was sent without a configured key")
	}
}

func TestGetAccountByRiotID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Riot-Token"); got != "test-key" {
			t.Errorf("X-Riot-Token = %q", got)
		}
		if r.URL.Path != "/riot/account/v1/accounts/by-riot-id/kast220/EUNE" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"puuid":"puuid-kast","gameName":"kast220","tagLine":"EUNE"}`))
	}))

	account, err := c.GetAccountByRiotID(context.Background(), "europe", "kast220", "EUNE")
	if err != nil {
		t.Fatalf("GetAccountByRiotID: %v", err)
	}
	if account.Puuid != "puuid-kast" || account.GameName != "kast220" {
		t.Errorf("account = %+v", account)
	}
}

func TestNotFoundIsNotRetried(t *testing.T) {
	var attempts atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "player not found", http.StatusNotFound)
	}))

	_, err := c.GetSummonerByPUUID(context.Background(), "eun1", "puuid-kast")
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want upstream 404", err)
	}
	if n := attempts.Load(); n != 1 {
		t.Errorf("made %d attempts, want 1 (4xx must not retry)", n)
	}
}

func TestRateLimitIsRetried(t *testing.T) {
	var attempts atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`["EUN1_1","EUN1_2"]`))
	}))

	ids, err := c.GetMatchIDs(context.Background(), "europe", "puuid-kast", 0, 100)
	if err != nil {
		t.Fatalf("GetMatchIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ids = %v", ids)
	}
	if n := attempts.Load(); n != 2 {
		t.Errorf("made %d attempts, want 2 (429 then success)", n)
	}
}

func TestTransientClassification(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusInternalServerError, true},
		{http.StatusNotFound, false},
		{http.StatusForbidden, false},
	}
	for _, tt := range tests {
		err := &Error{StatusCode: tt.status}
		if got := IsTransient(err); got != tt.want {
			t.Errorf("IsTransient(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
	if IsTransient(errors.New("plain")) {
		t.Error("IsTransient misclassified a non-api error")
	}
}

func TestGetMatchIDsQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start") != "0" || q.Get("count") != "100" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`[]`))
	}))

	ids, err := c.GetMatchIDs(context.Background(), "europe", "puuid-kast", 0, 100)
	if err != nil {
		t.Fatalf("GetMatchIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
}
