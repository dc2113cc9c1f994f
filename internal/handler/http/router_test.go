package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookstocknook/storefront/internal/auth"
	"github.com/bookstocknook/storefront/internal/cart"
	"github.com/bookstocknook/storefront/internal/cart/repository/memory"
	catalogmemory "github.com/bookstocknook/storefront/internal/catalog/memory"
	"github.com/bookstocknook/storefront/internal/domain"
	"github.com/bookstocknook/storefront/internal/notify"
	"github.com/bookstocknook/storefront/pkg/health"
)

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// syncNotifier delivers straight to the feed so tests observe notifications
// without waiting on the async queue.
type syncNotifier struct {
	feed *notify.Feed
}

func (n *syncNotifier) Notify(msg notify.Notification) {
	if msg.Severity == "" {
		msg.Severity = notify.SeverityDefault
	}
	msg.CreatedAt = time.Now().UTC()
	n.feed.Deliver(msg)
}

type stubHints struct {
	hints []string
	ok    bool
}

func (s *stubHints) Generate(_ context.Context, _ string, _ domain.Category) ([]string, bool) {
	return s.hints, s.ok
}

func testCatalogBooks() []domain.Book {
	return []domain.Book{
		{
			ID:        "b1",
			Title:     "Watchmen",
			Author:    "Alan Moore",
			Category:  domain.CategoryComics,
			Price:     59900,
			Condition: domain.ConditionUsed,
			Slug:      "watchmen-alan-moore",
			Stock:     3,
			Featured:  true,
		},
		{
			ID:        "b2",
			Title:     "The God of Small Things",
			Author:    "Arundhati Roy",
			Category:  domain.CategoryNovels,
			Price:     49900,
			Condition: domain.ConditionNew,
			Slug:      "the-god-of-small-things-arundhati-roy",
			Stock:     9,
			Popular:   true,
		},
	}
}

type testEnv struct {
	router http.Handler
	feed   *notify.Feed
	store  *cart.Store
	hints  *stubHints
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := testLogger()
	feed := notify.NewFeed(50)
	notifier := &syncNotifier{feed: feed}
	store := cart.NewStore(context.Background(), memory.NewRepository(), notifier, nil, logger)
	hints := &stubHints{hints: []string{"Mention the award."}, ok: true}

	router := NewRouter(RouterConfig{
		Catalog:        catalogmemory.New(testCatalogBooks()),
		Cart:           store,
		JWT:            auth.NewJWTManager("test-secret", time.Hour),
		Hints:          hints,
		Feed:           feed,
		Notifier:       notifier,
		Events:         nil,
		Health:         health.NewHandler(),
		Logger:         logger,
		Environment:    "development",
		SimulatedDelay: time.Millisecond,
		HintsRateRPS:   100,
		HintsRateBurst: 100,
		CORSOrigins:    []string{"*"},
		PprofCIDRs:     []string{"127.0.0.1/32"},
	})

	return &testEnv{router: router, feed: feed, store: store, hints: hints}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Data
}

func lastFeedKind(e *testEnv) notify.Kind {
	recent := e.feed.Recent()
	if len(recent) == 0 {
		return ""
	}
	return recent[len(recent)-1].Kind
}

// ============================================================================
// Catalog endpoints
// ============================================================================

func TestListBooks(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeData[struct {
		Data       []domain.Book `json:"data"`
		TotalCount int           `json:"total_count"`
	}](t, rec)
	assert.Equal(t, 2, result.TotalCount)
	assert.Equal(t, "b1", result.Data[0].ID)
}

func TestListBooks_Filtered(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/books?search=watchmen&condition=used", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeData[struct {
		Data []domain.Book `json:"data"`
	}](t, rec)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Watchmen", result.Data[0].Title)
}

func TestGetBookBySlug(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/books/watchmen-alan-moore", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	book := decodeData[domain.Book](t, rec)
	assert.Equal(t, "b1", book.ID)
}

func TestGetBookBySlug_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/books/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFeaturedAndPopular(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/books/featured", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	featured := decodeData[struct {
		Data []domain.Book `json:"data"`
	}](t, rec)
	require.Len(t, featured.Data, 1)
	assert.Equal(t, "b1", featured.Data[0].ID)

	rec = env.do(t, http.MethodGet, "/api/v1/books/popular", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	popular := decodeData[struct {
		Data []domain.Book `json:"data"`
	}](t, rec)
	require.Len(t, popular.Data, 1)
	assert.Equal(t, "b2", popular.Data[0].ID)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	categories := decodeData[[]string](t, rec)
	assert.Contains(t, categories, "Harry Potter")
}

// ============================================================================
// Cart endpoints
// ============================================================================

func TestCart_AddAndGet(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", AddItemRequest{BookID: "b1", Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeData[cartView](t, rec)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.ItemCount)
	assert.Equal(t, int64(2*59900), view.Total)
	assert.Equal(t, notify.KindItemAdded, lastFeedKind(env))

	rec = env.do(t, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeData[cartView](t, rec)
	assert.Equal(t, 2, view.ItemCount)
}

func TestCart_AddUnknownBook(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", AddItemRequest{BookID: "nope", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, env.store.Items())
}

func TestCart_AddValidationError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{"book_id": "b1", "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCart_AddClampsAtStock(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", AddItemRequest{BookID: "b1", Quantity: 7})
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeData[cartView](t, rec)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.Equal(t, notify.KindStockLimit, lastFeedKind(env))
}

func TestCart_UpdateQuantityAndRemove(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/cart/items", AddItemRequest{BookID: "b2", Quantity: 1})

	rec := env.do(t, http.MethodPut, "/api/v1/cart/items/b2", UpdateQuantityRequest{Quantity: 4})
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeData[cartView](t, rec)
	assert.Equal(t, 4, view.ItemCount)

	rec = env.do(t, http.MethodDelete, "/api/v1/cart/items/b2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeData[cartView](t, rec)
	assert.Empty(t, view.Lines)
	assert.Equal(t, notify.KindItemRemoved, lastFeedKind(env))
}

func TestCart_UpdateQuantityZeroRemoves(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/cart/items", AddItemRequest{BookID: "b1", Quantity: 2})

	rec := env.do(t, http.MethodPut, "/api/v1/cart/items/b1", UpdateQuantityRequest{Quantity: 0})
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeData[cartView](t, rec)
	assert.Empty(t, view.Lines)
}

func TestCart_Clear(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/cart/items", AddItemRequest{BookID: "b1", Quantity: 1})

	rec := env.do(t, http.MethodDelete, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeData[cartView](t, rec)
	assert.Empty(t, view.Lines)
	assert.Equal(t, notify.KindCartCleared, lastFeedKind(env))
}

// ============================================================================
// Checkout
// ============================================================================

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/cart/items", AddItemRequest{BookID: "b1", Quantity: 2})

	rec := env.do(t, http.MethodPost, "/api/v1/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	summary := decodeData[OrderSummary](t, rec)
	assert.NotEmpty(t, summary.OrderID)
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, int64(2*59900), summary.Total)

	assert.Empty(t, env.store.Items())
	assert.Equal(t, notify.KindCheckout, lastFeedKind(env))
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	recent := env.feed.Recent()
	require.NotEmpty(t, recent)
	last := recent[len(recent)-1]
	assert.Equal(t, notify.KindCheckout, last.Kind)
	assert.Equal(t, notify.SeverityDestructive, last.Severity)
}

// ============================================================================
// Auth
// ============================================================================

func TestAuth_Signup(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/signup", SignupRequest{
		Name:     "Avid Reader",
		Email:    "reader@example.com",
		Password: "letmein",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	session := decodeData[SessionResponse](t, rec)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "reader@example.com", session.Email)
	assert.Equal(t, notify.KindAuth, lastFeedKind(env))
}

func TestAuth_Login(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Email:    "reader@example.com",
		Password: "letmein",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	session := decodeData[SessionResponse](t, rec)
	assert.NotEmpty(t, session.Token)
}

func TestAuth_RejectsShortPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{
		Email:    "reader@example.com",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_RejectsBadEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/signup", SignupRequest{
		Name:     "Avid Reader",
		Email:    "not-an-email",
		Password: "letmein",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_SessionRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/signup", SignupRequest{
		Name:     "Avid Reader",
		Email:    "reader@example.com",
		Password: "letmein",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeData[SessionResponse](t, rec).Token

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	sessionRec := httptest.NewRecorder()
	env.router.ServeHTTP(sessionRec, req)

	require.Equal(t, http.StatusOK, sessionRec.Code)
	session := decodeData[SessionResponse](t, sessionRec)
	assert.Equal(t, "reader@example.com", session.Email)
	assert.Equal(t, "Avid Reader", session.Name)
}

func TestAuth_SessionWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_SessionRejectsBadToken(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ============================================================================
// Hints
// ============================================================================

func TestHints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/hints", HintsRequest{
		Title:    "Watchmen",
		Category: "Comic Books",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeData[HintsResponse](t, rec)
	assert.Equal(t, []string{"Mention the award."}, resp.Hints)
}

func TestHints_UpstreamFailureIsSoft(t *testing.T) {
	env := newTestEnv(t)
	env.hints.hints = nil
	env.hints.ok = false

	rec := env.do(t, http.MethodPost, "/api/v1/hints", HintsRequest{
		Title:    "Watchmen",
		Category: "Comic Books",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeData[HintsResponse](t, rec)
	assert.NotNil(t, resp.Hints)
	assert.Empty(t, resp.Hints)
	assert.Equal(t, notify.KindHintsUnavailable, lastFeedKind(env))
}

// ============================================================================
// Contact
// ============================================================================

func TestContact(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/contact", ContactRequest{
		Name:    "Avid Reader",
		Email:   "reader@example.com",
		Message: "Do you ship internationally?",
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	ack := decodeData[map[string]string](t, rec)
	assert.NotEmpty(t, ack["message_id"])
	assert.Equal(t, "received", ack["status"])
	assert.Equal(t, notify.KindContact, lastFeedKind(env))
}

func TestContact_RejectsMissingMessage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/contact", ContactRequest{
		Name:  "Avid Reader",
		Email: "reader@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// Notifications feed
// ============================================================================

func TestNotificationsFeed(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/cart/items", AddItemRequest{BookID: "b1", Quantity: 1})

	rec := env.do(t, http.MethodGet, "/api/v1/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	feed := decodeData[[]notify.Notification](t, rec)
	require.NotEmpty(t, feed)
	assert.Equal(t, notify.KindItemAdded, feed[len(feed)-1].Kind)

	// Reading the feed does not drain it.
	rec = env.do(t, http.MethodGet, "/api/v1/notifications", nil)
	feed = decodeData[[]notify.Notification](t, rec)
	assert.NotEmpty(t, feed)
}

// ============================================================================
// Infrastructure endpoints
// ============================================================================

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContentTypeEnforced(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("book_id=b1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
