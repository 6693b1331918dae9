package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Upstream is a fake Rejseplanen API that records every request it serves.
type Upstream struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*url.URL
}

// NewUpstream starts a fake upstream that answers with handler. A nil
// handler replies 200 with an empty JSON object. The server is closed when
// the test ends.
func NewUpstream(t testing.TB, handler http.HandlerFunc) *Upstream {
	t.Helper()
	if handler == nil {
		handler = JSONResponder(http.StatusOK, `{}`)
	}

	u := &Upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		copied := *r.URL
		u.mu.Lock()
		u.requests = append(u.requests, &copied)
		u.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

// Requests returns the URLs of all requests received so far.
func (u *Upstream) Requests() []*url.URL {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]*url.URL, len(u.requests))
	copy(out, u.requests)
	return out
}

// LastQuery returns the query of the most recent request, or nil.
func (u *Upstream) LastQuery() url.Values {
	reqs := u.Requests()
	if len(reqs) == 0 {
		return nil
	}
	return reqs[len(reqs)-1].Query()
}

// JSONResponder replies with status and body as application/json.
func JSONResponder(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// Hang blocks until the client gives up on the request.
func Hang(w http.ResponseWriter, r *http.Request) {
	<-r.Context().Done()
}
