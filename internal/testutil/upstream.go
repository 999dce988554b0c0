package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pokesdk/poke-sdk/domain/entities"
)

// Upstream is an in-process stand-in for the remote Pokémon service. It serves
// GET /pokemon/{id} from a fixed set of entries and answers 404 otherwise.
type Upstream struct {
	*httptest.Server

	mu        sync.Mutex
	entries   map[uint32][]byte
	overrides map[uint32]func(http.ResponseWriter)
	delay     time.Duration
	hits      atomic.Int64
}

// NewUpstream starts an Upstream serving pokemon and registers its shutdown
// with t.Cleanup.
func NewUpstream(t *testing.T, pokemon ...entities.Pokemon) *Upstream {
	t.Helper()

	u := &Upstream{
		entries:   make(map[uint32][]byte),
		overrides: make(map[uint32]func(http.ResponseWriter)),
	}
	for _, p := range pokemon {
		u.entries[p.ID] = UpstreamJSON(p)
	}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

// BaseURL returns the URL the SDK should use as its base.
func (u *Upstream) BaseURL() string {
	return u.URL + "/api/v2"
}

// Respond overrides the response for id.
func (u *Upstream) Respond(id uint32, fn func(http.ResponseWriter)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.overrides[id] = fn
}

// RespondStatus makes id answer with a bare status code.
func (u *Upstream) RespondStatus(id uint32, status int) {
	u.Respond(id, func(w http.ResponseWriter) {
		http.Error(w, http.StatusText(status), status)
	})
}

// RespondBody makes id answer 200 with the given body.
func (u *Upstream) RespondBody(id uint32, body string) {
	u.Respond(id, func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

// SetDelay delays every response by d.
func (u *Upstream) SetDelay(d time.Duration) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.delay = d
}

// Hits returns the number of requests served.
func (u *Upstream) Hits() int {
	return int(u.hits.Load())
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.hits.Add(1)

	u.mu.Lock()
	delay := u.delay
	u.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest, ok := strings.CutPrefix(r.URL.Path, "/api/v2/pokemon/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseUint(strings.TrimSuffix(rest, "/"), 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	u.mu.Lock()
	override := u.overrides[uint32(id)]
	body, found := u.entries[uint32(id)]
	u.mu.Unlock()

	if override != nil {
		override(w)
		return
	}
	if !found {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(body)
}
