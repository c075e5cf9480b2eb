package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
	bookingapp "github.com/krushna001m/RentEasy-sub000/internal/app/handlers/booking"
	historyapp "github.com/krushna001m/RentEasy-sub000/internal/app/handlers/history"
	"github.com/krushna001m/RentEasy-sub000/internal/app/middleware"
	"github.com/krushna001m/RentEasy-sub000/internal/app/queries"
	authservice "github.com/krushna001m/RentEasy-sub000/internal/app/services/auth"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/config"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/obs"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/security"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/storage/memory"
)

type testEnv struct {
	server *httptest.Server
	store  *memory.DocumentStore
	auth   *authservice.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewDocumentStore()
	box := memory.NewOutbox(nil)
	auth := &authservice.Service{
		Users:      memory.NewUserRepository(),
		Sessions:   memory.NewSessionStore(),
		Passwords:  security.BcryptHasher{Cost: 4},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: time.Hour,
	}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.ConfirmBookingCommand{}.Key(), &bookingapp.ConfirmBookingHandler{
		Identity: ContextIdentity{},
		Store:    store,
		Outbox:   box,
	})
	commands.RegisterHandler(commandBus, historyapp.DeleteHistoryCommand{}.Key(), &historyapp.DeleteHistoryHandler{Store: store})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, bookingapp.GetQuoteQuery{}.Key(), bookingapp.GetQuoteHandler{})
	queries.RegisterHandler(queryBus, historyapp.ListHistoryQuery{}.Key(), &historyapp.ListHistoryHandler{Store: store})

	wrappedCommands := middleware.ChainCommands(
		commandBus,
		middleware.Validation(),
		middleware.Idempotency(memory.NewIdempotencyStore(), nil),
		middleware.OutboxFlush(box),
	)

	handlers := Handlers{
		Auth:    AuthHandler{Service: auth},
		Booking: BookingHandler{Commands: wrappedCommands, Queries: queryBus},
		History: HistoryHandler{Commands: wrappedCommands, Queries: queryBus},
		AuthMiddleware: AuthMiddleware{Service: auth}.Handle,
	}

	srv := NewServer(config.Config{Env: "test", HTTPAddr: ":0"}, obs.Middleware{}, obs.HealthHandlers{}, handlers)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return &testEnv{server: ts, store: store, auth: auth}
}

func (e *testEnv) registerRenter(t *testing.T) string {
	t.Helper()
	result, err := e.auth.Register(context.Background(), authservice.RegisterParams{
		Email:    "renter@example.com",
		Name:     "Renter",
		Password: "longenough",
	})
	require.NoError(t, err)
	return result.Token
}

func (e *testEnv) confirmBooking(t *testing.T, token string, body map[string]any, extraHeaders map[string]string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, e.server.URL+"/api/v1/bookings/confirm", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func confirmBody() map[string]any {
	return map[string]any{
		"listing_id":         "l1",
		"owner_id":           "o1",
		"item_title":         "Canon EOS R6",
		"payment_method":     "bkash",
		"days":               5,
		"daily_price":        "500",
		"three_day_price":    "1,300",
		"weekly_price":       "",
		"deposit":            "5,000",
		"agreement_accepted": true,
	}
}

func TestConfirmBookingHTTPFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerRenter(t)

	resp := env.confirmBooking(t, token, confirmBody(), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result bookingapp.ConfirmBookingResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, 7300.0, result.Total)
	assert.NotEmpty(t, result.HistoryKey)

	// History endpoint serves the persisted receipt back.
	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/me/history", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var collection historyapp.Collection
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&collection))
	require.Len(t, collection.Items, 1)
	assert.Equal(t, 7300.0, collection.Items[0].Record.TotalAmount)
	assert.Equal(t, "Completed", collection.Items[0].Record.Status)
}

func TestConfirmBookingHTTPRequiresAgreement(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerRenter(t)

	body := confirmBody()
	body["agreement_accepted"] = false
	resp := env.confirmBooking(t, token, body, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Zero(t, env.store.Len(), "no document written behind the agreement gate")
}

func TestConfirmBookingHTTPRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.confirmBooking(t, "", confirmBody(), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConfirmBookingHTTPIdempotencyKey(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerRenter(t)
	headers := map[string]string{"Idempotency-Key": "attempt-1"}

	first := env.confirmBooking(t, token, confirmBody(), headers)
	defer first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode)
	var firstResult bookingapp.ConfirmBookingResult
	require.NoError(t, json.NewDecoder(first.Body).Decode(&firstResult))

	second := env.confirmBooking(t, token, confirmBody(), headers)
	defer second.Body.Close()
	require.Equal(t, http.StatusOK, second.StatusCode)
	var secondResult bookingapp.ConfirmBookingResult
	require.NoError(t, json.NewDecoder(second.Body).Decode(&secondResult))

	assert.Equal(t, firstResult.HistoryKey, secondResult.HistoryKey, "retry replays the stored result")

	raw, found, err := env.store.Get(context.Background(), "history")
	require.NoError(t, err)
	require.True(t, found)
	var tree map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &tree))
	total := 0
	for _, byRenter := range tree {
		total += len(byRenter)
	}
	assert.Equal(t, 1, total, "only one receipt despite the retry")
}

func TestQuoteEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/api/v1/bookings/quote?days=7&daily_price=500&three_day_price=1300&weekly_price=2800&deposit=5000")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quote struct {
		Days  int     `json:"days"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quote))
	assert.Equal(t, 7, quote.Days)
	assert.Equal(t, 7800.0, quote.Total)
}
