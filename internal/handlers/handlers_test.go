package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stocksphere/internal/analytics"
	"stocksphere/internal/auth"
	"stocksphere/internal/common"
	"stocksphere/internal/jobs"
	"stocksphere/internal/jobs/background"
	"stocksphere/internal/middleware"
	"stocksphere/internal/models"
	"stocksphere/internal/storage"
	"stocksphere/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newServer(t *testing.T, backend storage.Backend, verifier auth.CredentialVerifier) (*echo.Echo, *store.LocalStore) {
	log := zap.NewNop()
	st := store.New(backend, log, store.WithClock(func() time.Time { return fixedNow }))
	sessions := auth.NewSessionManager(backend, verifier, "test-secret", time.Hour, log)

	routes := &Routes{
		Health:       NewHealthHandlers("test", st, nil),
		Auth:         NewAuthHandlers(sessions, log),
		Inventory:    NewInventoryHandlers(st, log),
		Suppliers:    NewSupplierHandlers(st, log),
		Transactions: NewTransactionHandlers(st, log),
		Dashboard:    NewDashboardHandlers(analytics.NewAnalyticsService(st, log), log),
		Jobs:         NewJobHandlers(&stubScheduler{}, jobs.NewLowStockAlertService(st, log), log),
	}
	e := echo.New()
	routes.Register(e, middleware.NewVersionMiddleware("test"), middleware.NewAuditMiddleware(log), middleware.Protect(sessions, log))
	return e, st
}

// stubScheduler knows a single job and records what was triggered.
type stubScheduler struct {
	triggered []string
}

func (s *stubScheduler) RunNow(name string) error {
	if name != background.AlertsJobName {
		return fmt.Errorf("%w: %q", background.ErrUnknownJob, name)
	}
	s.triggered = append(s.triggered, name)
	return nil
}

func (s *stubScheduler) GetJobStatus() map[string]interface{} {
	return map[string]interface{}{
		"total_jobs": 1,
		"jobs":       []background.JobInfo{{Name: background.AlertsJobName}},
	}
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type HandlersTestSuite struct {
	suite.Suite
	e     *echo.Echo
	store *store.LocalStore
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.e, suite.store = newServer(suite.T(), storage.NewMemoryBackend(0), nil)
	require.NoError(suite.T(), suite.store.Initialize(context.Background()))
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) TestListInventory() {
	rec := do(suite.e, http.MethodGet, "/v1/inventory", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "v1", rec.Header().Get("X-API-Version"))

	body := decode[struct {
		Items []models.InventoryItem `json:"items"`
		Count int                    `json:"count"`
	}](suite.T(), rec)
	assert.Equal(suite.T(), 4, body.Count)

	rec = do(suite.e, http.MethodGet, "/v1/inventory?q=ELECTRICAL", "", "")
	body = decode[struct {
		Items []models.InventoryItem `json:"items"`
		Count int                    `json:"count"`
	}](suite.T(), rec)
	require.Len(suite.T(), body.Items, 1)
	assert.Equal(suite.T(), "Copper Wiring", body.Items[0].Name)
}

func (suite *HandlersTestSuite) TestListInventory_TableView() {
	rec := do(suite.e, http.MethodGet, "/v1/inventory?view=table&q=IV-001", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	body := decode[struct {
		Rows []map[string]interface{} `json:"rows"`
	}](suite.T(), rec)
	require.Len(suite.T(), body.Rows, 1)
	assert.Equal(suite.T(), "₹1,200.00", body.Rows[0]["price"])
	assert.Equal(suite.T(), "50 pcs", body.Rows[0]["stock"])
}

func (suite *HandlersTestSuite) TestCreateItem() {
	rec := do(suite.e, http.MethodPost, "/v1/inventory",
		`{"name":"Fuse Box","sku":"FB-9","category":"Electrical","quantity":15,"price":250,"status":"In Stock"}`, "")
	require.Equal(suite.T(), http.StatusCreated, rec.Code, rec.Body.String())

	item := decode[models.InventoryItem](suite.T(), rec)
	assert.Equal(suite.T(), models.StatusLowStock, item.Status)
	assert.Equal(suite.T(), "pcs", item.Unit)
	assert.Equal(suite.T(), "TechCorp", item.Supplier)
	assert.Len(suite.T(), suite.store.Load(context.Background()).Inventory, 5)
}

func (suite *HandlersTestSuite) TestCreateItem_Invalid() {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"missing name", `{"quantity":1}`, http.StatusBadRequest},
		{"negative quantity", `{"name":"X","quantity":-1}`, http.StatusBadRequest},
		{"negative price", `{"name":"X","price":-5}`, http.StatusBadRequest},
		{"malformed json", `{"name":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			rec := do(suite.e, http.MethodPost, "/v1/inventory", tt.body, "")
			assert.Equal(suite.T(), tt.code, rec.Code)
		})
	}
	assert.Len(suite.T(), suite.store.Load(context.Background()).Inventory, 4)
}

func (suite *HandlersTestSuite) TestCreateItem_ReportsFirstLongFieldInOrder() {
	long := strings.Repeat("x", maxFieldLength+1)
	body := fmt.Sprintf(`{"name":"Fuse","sku":%q,"category":"Electrical","unit":%q,"supplier":%q}`, long, long, long)

	for i := 0; i < 20; i++ {
		rec := do(suite.e, http.MethodPost, "/v1/inventory", body, "")
		require.Equal(suite.T(), http.StatusBadRequest, rec.Code)
		details := decode[common.ErrorResponse](suite.T(), rec).Error.Details
		require.Len(suite.T(), details, 1)
		assert.Contains(suite.T(), details, "sku")
	}
}

func (suite *HandlersTestSuite) TestListInventory_WhitespaceQueryIsLiteral() {
	rec := do(suite.e, http.MethodGet, "/v1/inventory?q=%20%20", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	body := decode[struct {
		Count int `json:"count"`
	}](suite.T(), rec)
	assert.Equal(suite.T(), 0, body.Count)
}

func (suite *HandlersTestSuite) TestGetItem() {
	rec := do(suite.e, http.MethodGet, "/v1/inventory/1", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "Industrial Valve", decode[models.InventoryItem](suite.T(), rec).Name)

	rec = do(suite.e, http.MethodGet, "/v1/inventory/999", "", "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), "NOT_FOUND", decode[common.ErrorResponse](suite.T(), rec).Error.Code)

	rec = do(suite.e, http.MethodGet, "/v1/inventory/abc", "", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "VALIDATION_ERROR", decode[common.ErrorResponse](suite.T(), rec).Error.Code)
}

func (suite *HandlersTestSuite) TestUpdateItem() {
	rec := do(suite.e, http.MethodPut, "/v1/inventory/1", `{"quantity":5}`, "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), models.StatusLowStock, decode[models.InventoryItem](suite.T(), rec).Status)

	rec = do(suite.e, http.MethodPut, "/v1/inventory/999", `{"quantity":5}`, "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *HandlersTestSuite) TestDeleteItem() {
	rec := do(suite.e, http.MethodDelete, "/v1/inventory/3", "", "")
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)

	rec = do(suite.e, http.MethodDelete, "/v1/inventory/3", "", "")
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)
	assert.Len(suite.T(), suite.store.Load(context.Background()).Inventory, 3)
}

func (suite *HandlersTestSuite) TestSuppliers() {
	rec := do(suite.e, http.MethodPost, "/v1/suppliers", `{"name":"Acme","contact":"Ann","email":"ann@acme.test","terms":"Net 45"}`, "")
	require.Equal(suite.T(), http.StatusCreated, rec.Code)
	created := decode[models.Supplier](suite.T(), rec)
	assert.Equal(suite.T(), models.PerformanceGood, created.Performance)

	rec = do(suite.e, http.MethodPut, "/v1/suppliers/1", `{"performance":"Stellar"}`, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	rec = do(suite.e, http.MethodGet, "/v1/suppliers?view=table", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	rows := decode[map[string]interface{}](suite.T(), rec)
	assert.EqualValues(suite.T(), 3, rows["count"])

	rec = do(suite.e, http.MethodDelete, "/v1/suppliers/1", "", "")
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)
	rec = do(suite.e, http.MethodGet, "/v1/suppliers/1", "", "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *HandlersTestSuite) TestTransactions() {
	rec := do(suite.e, http.MethodPost, "/v1/transactions", `{"type":"Outward","itemId":4,"quantity":9}`, "")
	assert.Equal(suite.T(), http.StatusConflict, rec.Code)

	rec = do(suite.e, http.MethodPost, "/v1/transactions", `{"type":"Outward","itemId":4,"quantity":3,"reason":"Maintenance"}`, "")
	require.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.Equal(suite.T(), "2026-03-01", decode[models.Transaction](suite.T(), rec).Date)

	rec = do(suite.e, http.MethodPost, "/v1/transactions", `{"type":"Sideways","itemId":4,"quantity":3}`, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	rec = do(suite.e, http.MethodGet, "/v1/transactions?recent=1", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	body := decode[struct {
		Activity []struct {
			Title string `json:"title"`
		} `json:"activity"`
	}](suite.T(), rec)
	require.Len(suite.T(), body.Activity, 1)
	assert.Equal(suite.T(), "Outward: Hydraulic Oil", body.Activity[0].Title)

	rec = do(suite.e, http.MethodGet, "/v1/transactions?recent=lots", "", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) TestDashboard() {
	rec := do(suite.e, http.MethodGet, "/v1/dashboard", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	body := decode[struct {
		Summary struct {
			TotalProducts int `json:"totalProducts"`
			LowStockCount int `json:"lowStockCount"`
		} `json:"summary"`
		View struct {
			Stats struct {
				InventoryValue string `json:"inventoryValue"`
			} `json:"stats"`
		} `json:"view"`
	}](suite.T(), rec)
	assert.Equal(suite.T(), 4, body.Summary.TotalProducts)
	assert.Equal(suite.T(), 2, body.Summary.LowStockCount)
	assert.Equal(suite.T(), "₹1,03,900.00", body.View.Stats.InventoryValue)
}

func (suite *HandlersTestSuite) TestReports() {
	rec := do(suite.e, http.MethodGet, "/v1/reports", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"category":"Mechanical"`)

	rec = do(suite.e, http.MethodGet, "/v1/reports/pdf", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.True(suite.T(), strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func (suite *HandlersTestSuite) TestHealth() {
	assert.Equal(suite.T(), http.StatusOK, do(suite.e, http.MethodGet, "/health", "", "").Code)
	assert.Equal(suite.T(), http.StatusOK, do(suite.e, http.MethodGet, "/health/ready", "", "").Code)
}

func (suite *HandlersTestSuite) TestMe_AuthDisabled() {
	rec := do(suite.e, http.MethodGet, "/v1/auth/me", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](suite.T(), rec)
	assert.Equal(suite.T(), false, body["authEnabled"])

	rec = do(suite.e, http.MethodPost, "/v1/auth/login", `{"username":"admin","password":"admin123"}`, "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *HandlersTestSuite) TestJobs() {
	rec := do(suite.e, http.MethodGet, "/v1/jobs", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)
	status := decode[struct {
		Total int `json:"total_jobs"`
		Jobs  []struct {
			Name string `json:"name"`
		} `json:"jobs"`
	}](suite.T(), rec)
	assert.Equal(suite.T(), 1, status.Total)
	assert.Equal(suite.T(), background.AlertsJobName, status.Jobs[0].Name)

	rec = do(suite.e, http.MethodPost, "/v1/jobs/inventory-alerts/run", "", "")
	assert.Equal(suite.T(), http.StatusAccepted, rec.Code)

	rec = do(suite.e, http.MethodPost, "/v1/jobs/reindex/run", "", "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), "NOT_FOUND", decode[common.ErrorResponse](suite.T(), rec).Error.Code)
}

func (suite *HandlersTestSuite) TestInventoryAlerts() {
	rec := do(suite.e, http.MethodGet, "/v1/alerts", "", "")
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	body := decode[struct {
		Alerts []jobs.InventoryAlert `json:"alerts"`
		Count  int                   `json:"count"`
	}](suite.T(), rec)
	require.Equal(suite.T(), 2, body.Count)
	assert.Equal(suite.T(), "Copper Wiring", body.Alerts[0].ItemName)
	assert.Equal(suite.T(), "Hydraulic Oil", body.Alerts[1].ItemName)
}

func TestStorageUnavailable(t *testing.T) {
	e, _ := newServer(t, storage.NewMemoryBackend(64), nil)

	rec := do(e, http.MethodPost, "/v1/inventory", `{"name":"Fuse","quantity":1,"price":1}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "STORAGE_UNAVAILABLE", decode[common.ErrorResponse](t, rec).Error.Code)

	rec = do(e, http.MethodGet, "/v1/inventory", "", "")
	assert.Equal(t, http.StatusOK, rec.Code, "reads fall back to seed data")
}

func TestAuthFlow(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	verifier, err := auth.NewBcryptVerifier("manager", string(hash))
	require.NoError(t, err)
	e, _ := newServer(t, storage.NewMemoryBackend(0), verifier)

	rec := do(e, http.MethodGet, "/v1/inventory", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPost, "/v1/auth/login", `{"username":"manager","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode[common.ErrorResponse](t, rec).Error.Code)

	rec = do(e, http.MethodPost, "/v1/auth/login", `{"username":"manager","password":"s3cret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[auth.Session](t, rec)

	rec = do(e, http.MethodGet, "/v1/auth/me", "", session.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "manager", me["username"])
	assert.Equal(t, true, me["authenticated"])

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/inventory", "", session.Token).Code)

	assert.Equal(t, http.StatusNoContent, do(e, http.MethodPost, "/v1/auth/logout", "", session.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/v1/inventory", "", session.Token).Code)
}
