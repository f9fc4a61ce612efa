package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/pesapots/backend/internal/backend"
	"github.com/shopspring/decimal"
)

// Backend is an in-memory fake of the finance REST API.
type Backend struct {
	server *httptest.Server

	mu       sync.Mutex
	records  map[backend.Kind][]map[string]any
	account  map[string]any
	nextID   int
	status   int
	requests []string
}

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	b := &Backend{
		records: map[backend.Kind][]map[string]any{},
		account: map[string]any{"balance": "0.00", "auto_save_percentage": "0"},
		nextID:  100,
	}

	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)

	return b
}

// URL returns the base URL of the API.
func (b *Backend) URL() string {
	return b.server.URL + "/api"
}

// Seed adds records to a collection.
func (b *Backend) Seed(kind backend.Kind, records ...map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records[kind] = append(b.records[kind], records...)
}

// SetAccount replaces the savings account.
func (b *Backend) SetAccount(account map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.account = account
}

// Fail makes all following requests fail with the status. 0 resets it.
func (b *Backend) Fail(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.status = status
}

// Requests returns all requests received so far as "METHOD path".
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]string{}, b.requests...)
}

// kindOf splits a request path into the collection and the remaining segments.
func kindOf(path string) (backend.Kind, []string, bool) {
	path = strings.TrimPrefix(path, "/api/")

	// Longest paths first so that savings/goals/ does not match savings/
	kinds := append([]backend.Kind{}, backend.Kinds...)
	sort.Slice(kinds, func(i, j int) bool { return len(kinds[i].Path()) > len(kinds[j].Path()) })

	for _, k := range kinds {
		if rest, ok := strings.CutPrefix(path, k.Path()); ok {
			var segments []string
			for _, s := range strings.Split(rest, "/") {
				if s != "" {
					segments = append(segments, s)
				}
			}
			return k, segments, true
		}
	}
	return "", nil, false
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, r.Method+" "+r.URL.Path)

	if b.status != 0 {
		respond(w, b.status, map[string]any{"detail": "backend unavailable"})
		return
	}

	var body map[string]any
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respond(w, http.StatusBadRequest, map[string]any{"detail": err.Error()})
			return
		}
	}

	kind, segments, ok := kindOf(r.URL.Path)
	if !ok {
		respond(w, http.StatusNotFound, map[string]any{"detail": "not found"})
		return
	}

	if kind == backend.KindSavingsAccount {
		if r.Method == http.MethodPatch {
			for k, v := range body {
				b.account[k] = v
			}
		}
		respond(w, http.StatusOK, b.account)
		return
	}

	switch {
	case len(segments) == 0 && r.Method == http.MethodGet:
		respond(w, http.StatusOK, map[string]any{"results": b.records[kind]})

	case len(segments) == 0 && r.Method == http.MethodPost:
		if body == nil {
			body = map[string]any{}
		}
		b.nextID++
		body["id"] = b.nextID
		b.records[kind] = append(b.records[kind], body)
		respond(w, http.StatusCreated, body)

	case len(segments) == 1:
		i := b.find(kind, segments[0])
		if i < 0 {
			respond(w, http.StatusNotFound, map[string]any{"detail": "not found"})
			return
		}

		switch r.Method {
		case http.MethodGet:
			respond(w, http.StatusOK, b.records[kind][i])
		case http.MethodPatch:
			for k, v := range body {
				b.records[kind][i][k] = v
			}
			respond(w, http.StatusOK, b.records[kind][i])
		case http.MethodDelete:
			b.records[kind] = append(b.records[kind][:i], b.records[kind][i+1:]...)
			w.WriteHeader(http.StatusNoContent)
		default:
			respond(w, http.StatusMethodNotAllowed, map[string]any{"detail": "method not allowed"})
		}

	case len(segments) == 2 && r.Method == http.MethodPost:
		i := b.find(kind, segments[0])
		if i < 0 {
			respond(w, http.StatusNotFound, map[string]any{"detail": "not found"})
			return
		}
		b.action(w, b.records[kind][i], segments[1], body)

	default:
		respond(w, http.StatusNotFound, map[string]any{"detail": "not found"})
	}
}

func (b *Backend) action(w http.ResponseWriter, record map[string]any, action string, body map[string]any) {
	amount := number(body["amount"])

	switch action {
	case backend.ActionResetSpent:
		record["spent"] = "0.00"
	case backend.ActionDeposit:
		record["current_amount"] = number(record["current_amount"]).Add(amount).StringFixed(2)
	case backend.ActionWithdraw:
		record["current_amount"] = number(record["current_amount"]).Sub(amount).StringFixed(2)
	case backend.ActionAllocate:
		balance := number(b.account["balance"])
		if balance.LessThan(amount) {
			respond(w, http.StatusBadRequest, map[string]any{"detail": "insufficient balance"})
			return
		}
		b.account["balance"] = balance.Sub(amount).StringFixed(2)
		record["current_amount"] = number(record["current_amount"]).Add(amount).StringFixed(2)
	default:
		respond(w, http.StatusNotFound, map[string]any{"detail": "unknown action"})
		return
	}

	respond(w, http.StatusOK, record)
}

func (b *Backend) find(kind backend.Kind, id string) int {
	for i, r := range b.records[kind] {
		if fmt.Sprint(r["id"]) == id {
			return i
		}
	}
	return -1
}

// number reads a JSON number or numeric string, anything else is zero.
func number(v any) decimal.Decimal {
	switch n := v.(type) {
	case string:
		d, err := decimal.NewFromString(n)
		if err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err == nil {
			return d
		}
	case int:
		return decimal.NewFromInt(int64(n))
	}
	return decimal.Zero
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
