package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mboya/payment-simulator/internal/config"
	"github.com/mboya/payment-simulator/internal/repository"
	"github.com/mboya/payment-simulator/internal/service"
	"github.com/mboya/payment-simulator/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServer wires a real engine behind the router with short delays.
type testServer struct {
	server *httptest.Server
	engine *service.Engine
	t      *testing.T
}

func setupTest(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		App: config.AppConfig{
			SuccessRate:       1.0,
			MobilePushDelay:   10 * time.Millisecond,
			BankTransferDelay: 10 * time.Millisecond,
			WebhookTimeout:    2 * time.Second,
		},
		Logger: config.LoggerConfig{Level: "info"},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dispatcher := webhook.NewDispatcher(cfg.App.WebhookTimeout, logger)
	engine := service.NewEngine(repository.NewTransactionRepository(), dispatcher, &cfg.App, logger)
	idemKeys := repository.NewIdempotencyRepository()

	ts := &testServer{
		server: httptest.NewServer(NewRouter(engine, idemKeys, cfg, logger)),
		engine: engine,
		t:      t,
	}
	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) post(path string, body map[string]any, headers ...string) (*http.Response, map[string]any) {
	ts.t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(ts.t, err)

	req, err := http.NewRequest(http.MethodPost, ts.server.URL+path, bytes.NewReader(payload))
	require.NoError(ts.t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(ts.t, err)
	return resp, decodeResponse(ts.t, resp)
}

func (ts *testServer) get(path string) (*http.Response, map[string]any) {
	ts.t.Helper()

	resp, err := http.Get(ts.server.URL + path)
	require.NoError(ts.t, err)
	return resp, decodeResponse(ts.t, resp)
}

func decodeResponse(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() {
		_ = resp.Body.Close()
	}()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAPI_STKPushLifecycle(t *testing.T) {
	ts := setupTest(t)

	resp, body := ts.post("/api/v1/mpesa/stkpush", map[string]any{
		"phone_number":  "254712345678",
		"amount":        1000,
		"force_success": true,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "pending", body["status"])
	assert.Contains(t, body["checkout_request_id"], "ws_CO_")

	id, ok := body["transaction_id"].(string)
	require.True(t, ok)

	ts.engine.Drain()

	resp, body = ts.get("/api/v1/transactions/" + id)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	txn, ok := body["transaction"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "completed", txn["status"])
	assert.NotEmpty(t, txn["receipt"])
}

func TestAPI_BankTransferForcedFailure(t *testing.T) {
	ts := setupTest(t)

	resp, body := ts.post("/api/v1/bank/transfers", map[string]any{
		"account_number": "0123456789",
		"bank_code":      "063",
		"amount":         5000,
		"force_success":  false,
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "processing", body["status"])

	id := body["transaction_id"].(string)
	ts.engine.Drain()

	_, body = ts.get("/api/v1/transactions/" + id)
	txn := body["transaction"].(map[string]any)
	assert.Equal(t, "failed", txn["status"])
	assert.Nil(t, txn["bank_reference"])
}

func TestAPI_ManualResolveReturnsCallbackEnvelope(t *testing.T) {
	ts := setupTest(t)

	_, body := ts.post("/api/v1/mpesa/stkpush", map[string]any{
		"phone_number":  "254712345678",
		"amount":        1000,
		"auto_complete": false,
	})
	id := body["transaction_id"].(string)

	resp, envelope := ts.post("/api/v1/mpesa/resolve", map[string]any{
		"transaction_id": id,
		"force_success":  true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	callback := envelope["Body"].(map[string]any)["stkCallback"].(map[string]any)
	assert.Equal(t, float64(0), callback["ResultCode"])
	assert.NotEmpty(t, callback["MerchantRequestID"])
	assert.NotNil(t, callback["CallbackMetadata"])

	// A second resolution must conflict and leave the record untouched.
	resp, errBody := ts.post("/api/v1/mpesa/resolve", map[string]any{
		"transaction_id": id,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "transaction_already_resolved", errBody["error"])
}

func TestAPI_WebhookDeliveredToCallbackURL(t *testing.T) {
	ts := setupTest(t)

	var mu sync.Mutex
	var received []map[string]any
	receiver := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		mu.Lock()
		received = append(received, payload)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer receiver.Close()

	_, body := ts.post("/api/v1/mpesa/stkpush", map[string]any{
		"phone_number":  "254712345678",
		"amount":        1000,
		"force_success": true,
		"callback_url":  receiver.URL,
	})
	id := body["transaction_id"].(string)

	ts.engine.Drain()

	mu.Lock()
	require.Len(t, received, 1)
	callback := received[0]["Body"].(map[string]any)["stkCallback"].(map[string]any)
	mu.Unlock()
	assert.Equal(t, float64(0), callback["ResultCode"])

	_, body = ts.get("/api/v1/transactions/" + id)
	txn := body["transaction"].(map[string]any)
	assert.Equal(t, true, txn["webhook_sent"])

	result := txn["webhook_result"].(map[string]any)
	assert.Equal(t, true, result["delivered"])
	assert.Equal(t, float64(200), result["status_code"])
}

func TestAPI_WebhookFailureRecordedButStatusUnaffected(t *testing.T) {
	ts := setupTest(t)

	// Port 1 is never listening.
	_, body := ts.post("/api/v1/bank/transfers", map[string]any{
		"account_number": "0123456789",
		"bank_code":      "063",
		"amount":         5000,
		"force_success":  true,
		"callback_url":   "http://127.0.0.1:1/hook",
	})
	id := body["transaction_id"].(string)

	ts.engine.Drain()

	_, body = ts.get("/api/v1/transactions/" + id)
	txn := body["transaction"].(map[string]any)
	assert.Equal(t, "completed", txn["status"])
	assert.NotEmpty(t, txn["bank_reference"])
	assert.Equal(t, true, txn["webhook_sent"])

	result := txn["webhook_result"].(map[string]any)
	assert.Equal(t, false, result["delivered"])
	assert.NotEmpty(t, result["error"])
}

func TestAPI_ValidationAndNotFound(t *testing.T) {
	ts := setupTest(t)

	resp, body := ts.post("/api/v1/mpesa/stkpush", map[string]any{
		"amount": 1000,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_phone_number", body["error"])

	resp, body = ts.get("/api/v1/transactions/MP000000000000")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "transaction_not_found", body["error"])

	resp, body = ts.post("/api/v1/mpesa/resolve", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_request", body["error"])
}

func TestAPI_ListAndReset(t *testing.T) {
	ts := setupTest(t)

	_, _ = ts.post("/api/v1/mpesa/stkpush", map[string]any{
		"phone_number":  "254712345678",
		"amount":        1000,
		"auto_complete": false,
	})
	_, _ = ts.post("/api/v1/bank/transfers", map[string]any{
		"account_number": "0123456789",
		"bank_code":      "063",
		"amount":         5000,
		"auto_complete":  false,
	})

	_, body := ts.get("/api/v1/transactions")
	assert.Equal(t, float64(2), body["count"])

	_, body = ts.get("/api/v1/transactions?method=mobile_push")
	assert.Equal(t, float64(1), body["count"])

	_, body = ts.get("/api/v1/transactions?status=processing")
	assert.Equal(t, float64(1), body["count"])

	resp, body := ts.post("/api/v1/simulator/reset", map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	_, body = ts.get("/api/v1/transactions")
	assert.Equal(t, float64(0), body["count"])
}

func TestAPI_IdempotentInitiation(t *testing.T) {
	ts := setupTest(t)

	first, firstBody := ts.post("/api/v1/mpesa/stkpush", map[string]any{
		"phone_number":  "254712345678",
		"amount":        1000,
		"auto_complete": false,
	}, "Idempotency-Key", "key-1")
	require.Equal(t, http.StatusOK, first.StatusCode)

	second, secondBody := ts.post("/api/v1/mpesa/stkpush", map[string]any{
		"phone_number":  "254712345678",
		"amount":        1000,
		"auto_complete": false,
	}, "Idempotency-Key", "key-1")
	require.Equal(t, http.StatusOK, second.StatusCode)

	assert.Equal(t, "true", second.Header.Get("X-Idempotent-Replayed"))
	assert.Equal(t, firstBody["transaction_id"], secondBody["transaction_id"])

	// Only one transaction was actually created.
	_, body := ts.get("/api/v1/transactions")
	assert.Equal(t, float64(1), body["count"])
}

func TestAPI_Health(t *testing.T) {
	ts := setupTest(t)

	resp, body := ts.get("/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}
