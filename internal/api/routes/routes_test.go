package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"station-request-api-server/config"
	"station-request-api-server/internal/auth"
	"station-request-api-server/internal/cart"
	"station-request-api-server/internal/ledger"
	"station-request-api-server/internal/logger"
	"station-request-api-server/internal/metrics"
	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"
	"station-request-api-server/internal/repository/memory"
	"station-request-api-server/internal/session"
	"station-request-api-server/internal/socket"
	"station-request-api-server/internal/staging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2024, 3, 12, 16, 0, 0, 0, time.UTC)

type harness struct {
	t       *testing.T
	router  *gin.Engine
	station *session.Station
	hub     *socket.Hub
}

func newHarness(t *testing.T, src repository.Source) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accounts, err := session.DefaultAccounts(bcrypt.MinCost)
	require.NoError(t, err)
	station := session.NewStation(accounts)
	clock := func() time.Time { return testNow }
	if src == nil {
		src = memory.New(memory.WithClock(clock))
	}
	log := logger.Discard()
	hub := socket.NewHub(log)

	router := SetupRouter(Deps{
		Cfg: config.Config{
			CORS:    config.CORSConfig{AllowOrigins: []string{"*"}},
			Metrics: config.MetricsConfig{Enabled: true},
		},
		Station: station,
		Source:  src,
		Tokens:  auth.NewTokenManager("test-secret", time.Hour),
		Hub:     hub,
		Metrics: metrics.New(),
		Log:     log,
		Now:     clock,
	})
	return &harness{t: t, router: router, station: station, hub: hub}
}

func (h *harness) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type loginResponse struct {
	Token          string           `json:"token"`
	User           models.Identity  `json:"user"`
	ActiveWorkflow *models.Workflow `json:"activeWorkflow"`
	Home           string           `json:"home"`
}

func (h *harness) login(code string) string {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"stationCode": code, "password": "1234"})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[loginResponse](h.t, rec).Token
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/health", "", nil).Code)

	h.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"stationCode": "PA01", "password": "nope"})
	rec := h.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `station_logins_total{result="failure"} 1`)
}

func TestLogin(t *testing.T) {
	h := newHarness(t, nil)

	rec := h.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"stationCode": "PA01", "password": "0000"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	_, authed := h.station.Identity()
	assert.False(t, authed)

	rec = h.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"stationCode": " PA01 ", "password": "1234"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[loginResponse](t, rec)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, models.RoleRequester, body.User.Role)
	require.NotNil(t, body.ActiveWorkflow)
	assert.Equal(t, "wf-01", body.ActiveWorkflow.ID)
	assert.Equal(t, "/history", body.Home)

	me := decode[session.Snapshot](t, h.do(http.MethodGet, "/api/v1/auth/me", body.Token, nil))
	require.NotNil(t, me.Identity)
	assert.Equal(t, "dev-001", me.Identity.ID)
}

func TestNavigate(t *testing.T) {
	h := newHarness(t, nil)
	type nav struct {
		Path       string `json:"path"`
		Redirected bool   `json:"redirected"`
	}

	got := decode[nav](t, h.do(http.MethodGet, "/api/v1/navigate?path=/history", "", nil))
	assert.Equal(t, nav{Path: "/login", Redirected: true}, got)

	h.login("AP01")
	got = decode[nav](t, h.do(http.MethodGet, "/api/v1/navigate?path=/login", "", nil))
	assert.Equal(t, "/approvals", got.Path)
	got = decode[nav](t, h.do(http.MethodGet, "/api/v1/navigate?path=/staging", "", nil))
	assert.Equal(t, nav{Path: "/staging"}, got)
}

func TestCartMergesAndClamps(t *testing.T) {
	h := newHarness(t, nil)
	token := h.login("PA01")

	rec := h.do(http.MethodPost, "/api/v1/cart/items", token, gin.H{"subSkuTypeId": "sst-01", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = h.do(http.MethodPost, "/api/v1/cart/items", token, gin.H{"subSkuTypeId": "sst-01", "quantity": 4})
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[cart.Snapshot](t, rec)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 5, snap.Items[0].Quantity)
	assert.Equal(t, "Widget A", snap.Items[0].SKUName)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPut, "/api/v1/cart/items/sst-01", token, gin.H{"quantity": 6}).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPut, "/api/v1/cart/items/sst-99", token, gin.H{"quantity": 1}).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/v1/cart/items", token, gin.H{"subSkuTypeId": "sst-99", "quantity": 1}).Code)

	snap = decode[cart.Snapshot](t, h.do(http.MethodPost, "/api/v1/cart/items/sst-01/step", token, gin.H{"delta": 1}))
	assert.Equal(t, 5, snap.Items[0].Quantity)
	snap = decode[cart.Snapshot](t, h.do(http.MethodPost, "/api/v1/cart/items/sst-01/step", token, gin.H{"delta": -1}))
	assert.Equal(t, 4, snap.Items[0].Quantity)

	snap = decode[cart.Snapshot](t, h.do(http.MethodDelete, "/api/v1/cart/items/sst-01", token, nil))
	assert.Empty(t, snap.Items)
}

func TestSelectionReplacesMaterialCart(t *testing.T) {
	h := newHarness(t, nil)
	token := h.login("PA01")
	h.do(http.MethodPost, "/api/v1/cart/items", token, gin.H{"subSkuTypeId": "sst-01", "quantity": 2})

	rec := h.do(http.MethodPost, "/api/v1/cart/selection", token, gin.H{"items": []gin.H{
		{"subSkuTypeId": "sst-04", "quantity": 3},
		{"subSkuTypeId": "sst-07", "quantity": 0},
		{"subSkuTypeId": "sst-09", "quantity": 1},
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	snap := decode[cart.Snapshot](t, rec)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "sst-04", snap.Items[0].SubSKUTypeID)
	assert.Equal(t, "sst-09", snap.Items[1].SubSKUTypeID)
	assert.Equal(t, 4, snap.TotalUnits)
}

func TestSubmitMaterialRequest(t *testing.T) {
	h := newHarness(t, nil)
	token := h.login("PA01")

	assert.Equal(t, http.StatusUnprocessableEntity, h.do(http.MethodPost, "/api/v1/requests/material", token, nil).Code)

	h.do(http.MethodPost, "/api/v1/cart/items", token, gin.H{"subSkuTypeId": "sst-01", "quantity": 2})
	h.do(http.MethodPut, "/api/v1/cart/containers", token, gin.H{"containerId": "con-01", "subtypeIds": []string{"cst-01"}})
	h.do(http.MethodPut, "/api/v1/cart/return-trolley", token, gin.H{"enabled": false})

	rec := h.do(http.MethodPost, "/api/v1/requests/material", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Request](t, rec)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, "wf-01", created.WorkflowID)

	snap := decode[cart.Snapshot](t, h.do(http.MethodGet, "/api/v1/cart", token, nil))
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Containers)
	assert.True(t, snap.ReturnTrolleyEnabled)

	pending := decode[[]models.Request](t, h.do(http.MethodGet, "/api/v1/requests?bucket=pending", token, nil))
	require.Len(t, pending, 2)
	assert.Equal(t, created.ID, pending[0].ID)
}

type failingSource struct {
	*memory.Store
}

func (failingSource) SubmitMaterialRequest(context.Context, []models.CartItem, models.Workflow) (models.Request, error) {
	return models.Request{}, errors.New("backend unavailable")
}

func TestFailedSubmissionKeepsCart(t *testing.T) {
	h := newHarness(t, failingSource{memory.New()})
	token := h.login("PA01")
	h.do(http.MethodPost, "/api/v1/cart/items", token, gin.H{"subSkuTypeId": "sst-01", "quantity": 2})

	rec := h.do(http.MethodPost, "/api/v1/requests/material", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	snap := decode[cart.Snapshot](t, h.do(http.MethodGet, "/api/v1/cart", token, nil))
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)
}

func TestSubmitContainerRequestKeepsMaterials(t *testing.T) {
	h := newHarness(t, nil)
	token := h.login("PA01")
	h.do(http.MethodPost, "/api/v1/cart/items", token, gin.H{"subSkuTypeId": "sst-01", "quantity": 2})

	rec := h.do(http.MethodPut, "/api/v1/cart/containers", token, gin.H{"containerId": "con-01", "subtypeIds": []string{"cst-01", "cst-02"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[cart.Snapshot](t, rec).Containers, 2)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPut, "/api/v1/cart/containers", token, gin.H{"containerId": "con-01", "subtypeIds": []string{"cst-06"}}).Code)

	rec = h.do(http.MethodPost, "/api/v1/requests/container", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, models.RequestContainer, decode[models.Request](t, rec).Type)

	snap := decode[cart.Snapshot](t, h.do(http.MethodGet, "/api/v1/cart", token, nil))
	assert.Len(t, snap.Items, 1)
	assert.Empty(t, snap.Containers)
}

func TestSubmitReturnTrolley(t *testing.T) {
	h := newHarness(t, nil)
	token := h.login("PA01")

	rec := h.do(http.MethodPost, "/api/v1/requests/return-trolley", token, gin.H{"containerId": "con-01", "subtypeId": "cst-03"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Request](t, rec)
	assert.Equal(t, models.RequestReturnTrolley, created.Type)
	assert.Equal(t, "Flat Trolley", created.Items)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/v1/requests/return-trolley", token, gin.H{"containerId": "con-09", "subtypeId": "cst-03"}).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/v1/requests/return-trolley", token, gin.H{}).Code)
}

func TestRequestsFollowActiveWorkflow(t *testing.T) {
	h := newHarness(t, nil)
	token := h.login("PA01")

	all := decode[[]models.Request](t, h.do(http.MethodGet, "/api/v1/requests", token, nil))
	assert.Len(t, all, 6)

	rec := h.do(http.MethodPut, "/api/v1/workflows/active", token, gin.H{"workflowId": "wf-02"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPut, "/api/v1/workflows/active", token, gin.H{"workflowId": "wf-99"}).Code)

	failed := decode[[]models.Request](t, h.do(http.MethodGet, "/api/v1/requests?bucket=failed", token, nil))
	assert.Len(t, failed, 1)
	failed = decode[[]models.Request](t, h.do(http.MethodGet, "/api/v1/requests?bucket=failed&breakdown=true", token, nil))
	assert.Len(t, failed, 2)

	counts := decode[ledger.Counts](t, h.do(http.MethodGet, "/api/v1/requests/counts", token, nil))
	assert.Equal(t, ledger.Counts{All: 2, Failed: 1}, counts)

	found := decode[[]models.Request](t, h.do(http.MethodGet, "/api/v1/requests?q=axle&today=true", token, nil))
	require.Len(t, found, 1)
	assert.Equal(t, "Req-007", found[0].ID)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/v1/requests?bucket=lost", token, nil).Code)
}

type approvalList struct {
	Bucket   ledger.ApprovalBucket         `json:"bucket"`
	Requests []models.ApprovalRequest      `json:"requests"`
	Counts   map[ledger.ApprovalBucket]int `json:"counts"`
}

func TestApprovals(t *testing.T) {
	h := newHarness(t, nil)
	requester := h.login("PA01")
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/v1/approvals", requester, nil).Code)

	token := h.login("AP01")
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/api/v1/cart", requester, nil).Code, "relogin ends the old session")
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/v1/cart", token, nil).Code)

	list := decode[approvalList](t, h.do(http.MethodGet, "/api/v1/approvals", token, nil))
	assert.Equal(t, ledger.ApprovalsPending, list.Bucket)
	assert.Len(t, list.Requests, 4)
	assert.Equal(t, 0, list.Counts[ledger.ApprovalsExpired])
	assert.Equal(t, 6, list.Counts[ledger.ApprovalsAll])

	rec := h.do(http.MethodPost, "/api/v1/approvals/APR-001/approve", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.ApprovalApproved, decode[models.ApprovalRequest](t, rec).Status)

	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/api/v1/approvals/APR-001/reject", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/api/v1/approvals/APR-404/approve", token, nil).Code)

	list = decode[approvalList](t, h.do(http.MethodGet, "/api/v1/approvals?bucket=approved", token, nil))
	ids := []string{}
	for _, r := range list.Requests {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, "APR-001")
	list = decode[approvalList](t, h.do(http.MethodGet, "/api/v1/approvals?bucket=pending", token, nil))
	assert.Len(t, list.Requests, 3)
}

func TestLogoutEndsSession(t *testing.T) {
	h := newHarness(t, nil)
	token := h.login("PA01")
	h.do(http.MethodPost, "/api/v1/cart/items", token, gin.H{"subSkuTypeId": "sst-01", "quantity": 2})

	rec := h.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[session.Snapshot](t, rec)
	assert.Nil(t, snap.Identity)
	assert.Nil(t, snap.ActiveWorkflow)
	assert.Empty(t, snap.Cart.Items)
	assert.Empty(t, snap.Cart.Containers)

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/api/v1/cart", token, nil).Code)
}

func TestStagingAreas(t *testing.T) {
	h := newHarness(t, nil)
	token := h.login("PA01")

	type area struct {
		ID      string          `json:"id"`
		Active  bool            `json:"active"`
		Summary staging.Summary `json:"summary"`
	}
	areas := decode[[]area](t, h.do(http.MethodGet, "/api/v1/staging-areas?tab=active", token, nil))
	require.Len(t, areas, 2)
	assert.True(t, areas[0].Active)
	assert.Equal(t, 200, areas[0].Summary.Total)
	assert.Empty(t, decode[[]area](t, h.do(http.MethodGet, "/api/v1/staging-areas?tab=inactive", token, nil)))
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/v1/staging-areas?tab=busy", token, nil).Code)

	grid := decode[staging.Grid](t, h.do(http.MethodGet, "/api/v1/staging-areas/sa-01/grid?orientation=horizontal", token, nil))
	assert.Len(t, grid.Lines, 5)
	assert.Len(t, grid.HeaderLabels, 40)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/v1/staging-areas/sa-09/grid", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/v1/staging-areas/sa-01/grid?orientation=diagonal", token, nil).Code)

	approver := h.login("AP01")
	assert.Empty(t, decode[[]area](t, h.do(http.MethodGet, "/api/v1/staging-areas", approver, nil)))
}

func TestInventoryAndCatalog(t *testing.T) {
	h := newHarness(t, nil)
	token := h.login("PA01")

	type view struct {
		Rows []struct {
			SKU    string                 `json:"sku"`
			Status models.InventoryStatus `json:"status"`
		} `json:"rows"`
	}
	v := decode[view](t, h.do(http.MethodGet, "/api/v1/inventory?tab=out_of_stock", token, nil))
	require.Len(t, v.Rows, 2)
	assert.Equal(t, models.InventoryOutOfStock, v.Rows[0].Status)

	type row struct {
		ID      string `json:"id"`
		SKUName string `json:"skuName"`
	}
	rows := decode[[]row](t, h.do(http.MethodGet, "/api/v1/materials?q=bracket", token, nil))
	assert.Len(t, rows, 2)
	containers := decode[[]models.Container](t, h.do(http.MethodGet, "/api/v1/containers", token, nil))
	assert.Len(t, containers, 3)
}

func (h *harness) dialEvents(srv *httptest.Server, token string) *websocket.Conn {
	h.t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(h.t, err)
	h.t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) (socket.Message, error) {
	t.Helper()
	var msg socket.Message
	conn.SetReadDeadline(time.Now().Add(time.Second))
	err := conn.ReadJSON(&msg)
	return msg, err
}

func TestSocketClosesOnLogout(t *testing.T) {
	h := newHarness(t, nil)
	srv := httptest.NewServer(h.router)
	t.Cleanup(srv.Close)

	token := h.login("PA01")
	old := h.dialEvents(srv, token)
	require.Eventually(t, func() bool { return h.hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	rec := h.do(http.MethodPost, "/api/v1/requests/return-trolley", token, gin.H{"containerId": "con-01", "subtypeId": "cst-03"})
	require.Equal(t, http.StatusCreated, rec.Code)
	msg, err := readEvent(t, old)
	require.NoError(t, err)
	assert.Equal(t, socket.EventRequestSubmitted, msg.Event)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/v1/auth/logout", token, nil).Code)
	assert.Equal(t, 0, h.hub.Len())

	approver := h.login("AP01")
	current := h.dialEvents(srv, approver)
	require.Eventually(t, func() bool { return h.hub.Len() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/v1/approvals/APR-001/approve", approver, nil).Code)

	msg, err = readEvent(t, current)
	require.NoError(t, err)
	assert.Equal(t, socket.EventApprovalDecided, msg.Event)

	_, err = readEvent(t, old)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestSocketClosesWhenLoginReplacesSession(t *testing.T) {
	h := newHarness(t, nil)
	srv := httptest.NewServer(h.router)
	t.Cleanup(srv.Close)

	first := h.login("PA01")
	old := h.dialEvents(srv, first)
	require.Eventually(t, func() bool { return h.hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	h.login("PA01")
	assert.Equal(t, 0, h.hub.Len())
	_, err := readEvent(t, old)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws?token=" + first
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStaleLogoutKeepsNewerSession(t *testing.T) {
	h := newHarness(t, nil)
	first := h.login("PA01")
	second := h.login("AP01")

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodPost, "/api/v1/auth/logout", first, nil).Code)
	snap := decode[session.Snapshot](t, h.do(http.MethodGet, "/api/v1/auth/me", second, nil))
	require.NotNil(t, snap.Identity)
	assert.Equal(t, models.RoleApprover, snap.Identity.Role)
}

func TestSetupRouterDefaultsLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	accounts, err := session.DefaultAccounts(bcrypt.MinCost)
	require.NoError(t, err)

	h := &harness{t: t, station: session.NewStation(accounts)}
	h.router = SetupRouter(Deps{
		Station: h.station,
		Source:  failingSource{memory.New()},
		Tokens:  auth.NewTokenManager("test-secret", time.Hour),
		Now:     func() time.Time { return testNow },
	})

	token := h.login("PA01")
	h.do(http.MethodPost, "/api/v1/cart/items", token, gin.H{"subSkuTypeId": "sst-01", "quantity": 1})
	var rec *httptest.ResponseRecorder
	require.NotPanics(t, func() {
		rec = h.do(http.MethodPost, "/api/v1/requests/material", token, nil)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
