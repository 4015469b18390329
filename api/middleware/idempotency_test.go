package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/omega-store/omega-backend/pkg/errors"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return fmt.Sprintf("fake:%s:%s", scope, id)
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func requestWithPattern(method, url, pattern string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, url, body)
	rc := chi.NewRouteContext()
	rc.RoutePatterns = []string{pattern}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestRouteTTLSelection(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		pattern string
		want    time.Duration
		match   bool
	}{
		{name: "sale create is critical", method: http.MethodPost, pattern: "/api/v1/sales", want: criticalIdempotencyTTL, match: true},
		{name: "mark delivered is critical", method: http.MethodPost, pattern: "/api/v1/deliveries/{id}/deliver", want: criticalIdempotencyTTL, match: true},
		{name: "payment review is critical", method: http.MethodPost, pattern: "/api/v1/payments/{id}/review", want: criticalIdempotencyTTL, match: true},
		{name: "payment create is standard", method: http.MethodPost, pattern: "/api/v1/payments", want: defaultIdempotencyTTL, match: true},
		{name: "read endpoints are unguarded", method: http.MethodGet, pattern: "/api/v1/sales", match: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ttl, ok := routeTTL(tc.method, tc.pattern)
			if ok != tc.match {
				t.Fatalf("expected match=%v got %v", tc.match, ok)
			}
			if tc.match && ttl != tc.want {
				t.Fatalf("expected ttl %v got %v", tc.want, ttl)
			}
		})
	}
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	store := newFakeStore()
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := requestWithPattern(http.MethodPost, "/api/v1/sales", "/api/v1/sales", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"folio":"VTA-1-ABCD"}}`))
	}))

	body := `{"client_name":"Ana"}`
	for i := 0; i < 2; i++ {
		req := requestWithPattern(http.MethodPost, "/api/v1/sales", "/api/v1/sales", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "key-1")
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusCreated {
			t.Fatalf("attempt %d: expected 201 got %d", i, resp.Code)
		}
		if !strings.Contains(resp.Body.String(), "VTA-1-ABCD") {
			t.Fatalf("attempt %d: unexpected body %s", i, resp.Body.String())
		}
	}
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeStore()
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))

	first := requestWithPattern(http.MethodPost, "/api/v1/sales", "/api/v1/sales", strings.NewReader(`{"a":1}`))
	first.Header.Set("Idempotency-Key", "key-2")
	handler.ServeHTTP(httptest.NewRecorder(), first)

	second := requestWithPattern(http.MethodPost, "/api/v1/sales", "/api/v1/sales", strings.NewReader(`{"a":2}`))
	second.Header.Set("Idempotency-Key", "key-2")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, second)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeIdempotency) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestIdempotencySkipsUnguardedRoutes(t *testing.T) {
	store := newFakeStore()
	calls := 0
	handler := Idempotency(store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := requestWithPattern(http.MethodGet, "/api/v1/sales", "/api/v1/sales", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	if calls != 2 {
		t.Fatalf("expected handler to run twice, ran %d times", calls)
	}
}
