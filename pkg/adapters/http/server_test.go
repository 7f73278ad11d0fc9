package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/kefschema/pkg/catalog"
	"github.com/aretw0/kefschema/pkg/observability"
	"github.com/aretw0/kefschema/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockDispatcher records dispatched calls.
type MockDispatcher struct {
	mu    sync.Mutex
	Calls []string
	Err   error
}

func (m *MockDispatcher) Dispatch(ctx context.Context, action string, args map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, action)
	return m.Err
}

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	reg, err := registry.Load(catalog.Embedded())
	require.NoError(t, err)
	return NewHandler(reg, opts...)
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(newTestHandler(t, WithVersion("1.0.0")), "GET", "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, float64(7), body["actions"])
}

func TestListServices(t *testing.T) {
	w := do(newTestHandler(t), "GET", "/services", "")

	require.Equal(t, http.StatusOK, w.Code)
	var defs []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &defs))
	require.Len(t, defs, 7)
	assert.Equal(t, "set_desk_db", defs[0].Name)
}

func TestGetService(t *testing.T) {
	h := newTestHandler(t)

	w := do(h, "GET", "/services/set_high_hz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"example":95`)
	assert.Contains(t, w.Body.String(), `"bounds":{"min":50,"max":120,"step":5}`)

	w = do(h, "GET", "/services/nonexistent_action", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "nonexistent_action")
}

func TestGetSchema(t *testing.T) {
	w := do(newTestHandler(t), "GET", "/services/set_mode/schema", "")

	require.Equal(t, http.StatusOK, w.Code)
	var s map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, "enum(-|+)", s["sub_polarity"])
	assert.Equal(t, "entity(media_player)", s["entity_id"])
}

func TestValidateCall(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"valid slider", "/services/set_desk_db/validate", `{"entity_id":"media_player.kef_lsx","db":-1.5}`, http.StatusOK},
		{"off step", "/services/set_desk_db/validate", `{"entity_id":"media_player.kef_lsx","db":-1.25}`, http.StatusUnprocessableEntity},
		{"out of range", "/services/set_high_hz/validate", `{"entity_id":"media_player.kef_lsx","hz":130}`, http.StatusUnprocessableEntity},
		{"missing entity", "/services/set_mode/validate", `{"desk_mode":true}`, http.StatusUnprocessableEntity},
		{"bad enum", "/services/set_mode/validate", `{"entity_id":"media_player.kef_lsx","bass_extension":"Max"}`, http.StatusUnprocessableEntity},
		{"malformed body", "/services/set_mode/validate", `{`, http.StatusBadRequest},
		{"unknown action", "/services/set_volume/validate", `{}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, "POST", tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestValidateCall_ErrorBody(t *testing.T) {
	w := do(newTestHandler(t), "POST", "/services/set_sub_db/validate", `{"entity_id":"media_player.kef_lsx","db":11,"volume":3}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Valid)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "volume", body.Errors[0].Field)
	assert.Equal(t, "db", body.Errors[1].Field)
	assert.Contains(t, body.Errors[1].Reason, "out of range")
}

func TestCallService(t *testing.T) {
	t.Run("no dispatcher", func(t *testing.T) {
		w := do(newTestHandler(t), "POST", "/services/set_mode", `{"entity_id":"media_player.kef_lsx"}`)
		assert.Equal(t, http.StatusNotImplemented, w.Code)
	})

	t.Run("dispatches valid calls only", func(t *testing.T) {
		d := &MockDispatcher{}
		h := newTestHandler(t, WithDispatcher(d))

		w := do(h, "POST", "/services/set_mode", `{"entity_id":"media_player.kef_lsx","wall_mode":false}`)
		assert.Equal(t, http.StatusOK, w.Code)

		w = do(h, "POST", "/services/set_mode", `{"wall_mode":false}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		assert.Equal(t, []string{"set_mode"}, d.Calls)
	})

	t.Run("dispatch failure", func(t *testing.T) {
		d := &MockDispatcher{Err: errors.New("speaker offline")}
		w := do(newTestHandler(t, WithDispatcher(d)), "POST", "/services/set_low_hz", `{"entity_id":"media_player.kef_lsx","hz":80}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "speaker offline")
	})
}

func TestOpenAPI(t *testing.T) {
	w := do(newTestHandler(t, WithVersion("2.0.0")), "GET", "/openapi.json", "")

	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Contains(t, doc["paths"], "/services/set_mode")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	h := newTestHandler(t, WithMetrics(m, reg))

	do(h, "GET", "/services/set_mode", "")
	do(h, "GET", "/services/nope", "")
	do(h, "POST", "/services/set_mode/validate", `{}`)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/services/{name}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/services/{name}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("set_mode", "error")))

	w := do(h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kefschema_http_requests_total")
}

func TestCORS(t *testing.T) {
	w := do(newTestHandler(t), "OPTIONS", "/services", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
