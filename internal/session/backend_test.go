package session_test

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/events"
	"github.com/pesapots/backend/internal/normalize"
	"github.com/pesapots/backend/internal/session"
	"github.com/pesapots/backend/internal/store"
	"github.com/shopspring/decimal"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeBackend keeps records in memory and answers like the finance API.
type fakeBackend struct {
	mu      sync.Mutex
	records map[backend.Kind][]normalize.RawRecord
	account normalize.RawRecord
	nextID  int
	calls   []string
	err     error

	// pause is called by List after the records were read
	pause func(kind backend.Kind)

	// hold is called by Update before the patch is stored
	hold func()

	// omit are keys left out of Update responses
	omit []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		records: map[backend.Kind][]normalize.RawRecord{},
		nextID:  100,
	}
}

func (f *fakeBackend) seed(kind backend.Kind, records ...normalize.RawRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.records[kind] = records
}

func (f *fakeBackend) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string{}, f.calls...)
}

func (f *fakeBackend) find(kind backend.Kind, id string) (normalize.RawRecord, int) {
	for i, r := range f.records[kind] {
		if fmt.Sprint(r["id"]) == id {
			return r, i
		}
	}
	return nil, -1
}

func clone(r normalize.RawRecord) normalize.RawRecord {
	out := normalize.RawRecord{}
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (f *fakeBackend) List(_ context.Context, kind backend.Kind, _ url.Values) ([]normalize.RawRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "list "+string(kind))
	if f.err != nil {
		f.mu.Unlock()
		return nil, f.err
	}

	out := []normalize.RawRecord{}
	for _, r := range f.records[kind] {
		out = append(out, clone(r))
	}
	pause := f.pause
	f.mu.Unlock()

	if pause != nil {
		pause(kind)
	}
	return out, nil
}

func (f *fakeBackend) Get(_ context.Context, kind backend.Kind, id string) (normalize.RawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "get "+string(kind))
	if f.err != nil {
		return nil, f.err
	}

	if kind == backend.KindSavingsAccount {
		return clone(f.account), nil
	}

	r, _ := f.find(kind, id)
	if r == nil {
		return nil, &backend.NetworkError{Status: 404}
	}
	return clone(r), nil
}

func (f *fakeBackend) Create(_ context.Context, kind backend.Kind, payload any) (normalize.RawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "create "+string(kind))
	if f.err != nil {
		return nil, f.err
	}

	r := clone(payload.(map[string]any))
	f.nextID++
	r["id"] = f.nextID
	f.records[kind] = append(f.records[kind], r)
	return clone(r), nil
}

func (f *fakeBackend) Update(_ context.Context, kind backend.Kind, id string, patch any) (normalize.RawRecord, error) {
	f.mu.Lock()
	hold := f.hold
	f.mu.Unlock()

	if hold != nil {
		hold()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "update "+string(kind)+" "+id)
	if f.err != nil {
		return nil, f.err
	}

	if kind == backend.KindSavingsAccount {
		for k, v := range patch.(map[string]any) {
			f.account[k] = v
		}
		return clone(f.account), nil
	}

	r, _ := f.find(kind, id)
	if r == nil {
		return nil, &backend.NetworkError{Status: 404}
	}
	for k, v := range patch.(map[string]any) {
		r[k] = v
	}

	response := clone(r)
	for _, k := range f.omit {
		delete(response, k)
	}
	return response, nil
}

func (f *fakeBackend) Delete(_ context.Context, kind backend.Kind, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "delete "+string(kind)+" "+id)
	if f.err != nil {
		return f.err
	}

	_, i := f.find(kind, id)
	if i < 0 {
		return &backend.NetworkError{Status: 404}
	}
	f.records[kind] = append(f.records[kind][:i], f.records[kind][i+1:]...)
	return nil
}

func (f *fakeBackend) Action(_ context.Context, kind backend.Kind, id, action string, payload any) (normalize.RawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, action+" "+string(kind)+" "+id)
	if f.err != nil {
		return nil, f.err
	}

	r, _ := f.find(kind, id)
	if r == nil {
		return nil, &backend.NetworkError{Status: 404}
	}

	if action == backend.ActionResetSpent {
		r["spent_amount"] = 0
		return clone(r), nil
	}

	amount := decimal.RequireFromString(payload.(backend.Amount).Amount)
	current := num(r["current_amount"])

	switch action {
	case backend.ActionDeposit:
		current = current.Add(amount)
	case backend.ActionWithdraw:
		current = current.Sub(amount)
	case backend.ActionAllocate:
		current = current.Add(amount)
		f.account["balance"] = num(f.account["balance"]).Sub(amount).String()
	}

	r["current_amount"] = current.String()
	return clone(r), nil
}

func num(v any) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.RequireFromString(fmt.Sprint(v))
}

// recorder collects published changes.
type recorder struct {
	mu      sync.Mutex
	changes []events.Change
}

func (r *recorder) Publish(_ context.Context, c events.Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.changes = append(r.changes, c)
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []string{}
	for _, c := range r.changes {
		out = append(out, c.Collection+" "+c.Action)
	}
	return out
}

// newService returns a service over a fresh fake backend and memory store.
func newService() (*session.Service, *fakeBackend, *store.Memory, *recorder) {
	f := newFakeBackend()
	f.account = normalize.RawRecord{"balance": "1000", "auto_save_percentage": "10"}
	m := store.NewMemory()
	r := &recorder{}

	s := session.New(session.Options{
		Backend:   f,
		Store:     m,
		Publisher: r,
		Clock:     session.FixedClock{FixedNow: now},
	})

	return s, f, m, r
}

func id(n int) string {
	return strconv.Itoa(n)
}
