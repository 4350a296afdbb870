package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	activitydomain "github.com/auroradigital/billingdesk/internal/activity/domain"
	activityservice "github.com/auroradigital/billingdesk/internal/activity/service"
	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	catalogservice "github.com/auroradigital/billingdesk/internal/catalog/service"
	"github.com/auroradigital/billingdesk/internal/clock"
	"github.com/auroradigital/billingdesk/internal/config"
	"github.com/auroradigital/billingdesk/internal/invoice/archive"
	"github.com/auroradigital/billingdesk/internal/invoice/draft"
	"github.com/auroradigital/billingdesk/internal/invoice/render"
	notificationdomain "github.com/auroradigital/billingdesk/internal/notification/domain"
	notificationstore "github.com/auroradigital/billingdesk/internal/notification/store"
	"github.com/auroradigital/billingdesk/internal/observability"
	obsmetrics "github.com/auroradigital/billingdesk/internal/observability/metrics"
	paymentsdomain "github.com/auroradigital/billingdesk/internal/payments/domain"
	paymentsservice "github.com/auroradigital/billingdesk/internal/payments/service"
	"github.com/auroradigital/billingdesk/internal/providers/pdf"
	"github.com/auroradigital/billingdesk/internal/seed"
	"github.com/auroradigital/billingdesk/internal/storage/memory"
	workflowdomain "github.com/auroradigital/billingdesk/internal/workflow/domain"
	workflowservice "github.com/auroradigital/billingdesk/internal/workflow/service"
	workflowstore "github.com/auroradigital/billingdesk/internal/workflow/store"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:servertest%d?mode=memory&cache=shared", time.Now().UnixNano())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Organization{},
		&catalogdomain.Service{},
		&catalogdomain.ClientProfile{},
		&activitydomain.Entry{},
		&paymentsdomain.GatewayProfile{},
		&paymentsdomain.Channel{},
		&paymentsdomain.Transaction{},
	))
	require.NoError(t, seed.Ensure(db))

	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC))
	genID, err := snowflake.NewNode(1)
	require.NoError(t, err)

	store := memory.New()
	console := config.NewStaticConsoleConfigHolder(config.DefaultConsoleConfig())
	directory := catalogservice.New(catalogservice.ServiceParam{DB: db, Log: log})

	form := draft.NewForm(draft.FormParam{
		Directory: directory,
		Store:     store,
		Clock:     clk,
		Console:   console,
		Log:       log,
	})
	t.Cleanup(form.Close)

	notifications := notificationstore.New(notificationstore.StoreParam{GenID: genID, Clock: clk, Log: log})
	activity := activityservice.NewService(activityservice.Params{DB: db, Log: log, GenID: genID, Clock: clk})
	ledger := workflowstore.New()
	workflowSvc := workflowservice.New(workflowservice.Params{
		Store:         ledger,
		Notifications: notifications,
		Activity:      activity,
		Clock:         clk,
		GenID:         genID,
		Log:           log,
	})

	engine := NewEngine(observability.Config{}, obsmetrics.NewHTTPMetrics())

	return NewServer(ServerParams{
		Gin:           engine,
		Cfg:           config.Config{HTTPAddr: ":0"},
		ConsoleCfg:    console,
		DB:            db,
		GenID:         genID,
		Directory:     directory,
		Form:          form,
		Archive:       archive.New(archive.ArchiveParam{Store: store, Clock: clk, Log: log}),
		WorkflowSvc:   workflowSvc,
		Notifications: notifications,
		ActivitySvc:   activity,
		PaymentsSvc:   paymentsservice.New(paymentsservice.Params{DB: db, Log: log}),
		Renderer:      render.NewRenderer(),
		PDFProvider:   pdf.New(),
	})
}

func doRequest(s *Server, method, path string, body []byte, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if role != "" {
		req.Header.Set(HeaderActorRole, role)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetOrganization(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/api/organization", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var org catalogdomain.Organization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &org))
	assert.Equal(t, "org-aurora", org.ID)
	assert.NotEmpty(t, org.LegalName)
}

func TestGetConsoleConfigCamelCaseKeys(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/api/config", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "invoiceNumberPrefix")
	assert.Contains(t, body, "defaultTaxRate")
	assert.Contains(t, body, "agingBuckets")

	var buckets []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body["agingBuckets"], &buckets))
	require.NotEmpty(t, buckets)
	assert.Contains(t, buckets[0], "label")
	assert.Contains(t, buckets[0], "minDays")
}

func TestUnknownActorRoleRejected(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodGet, "/api/draft", nil, "intern")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftOpRoundTrip(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/draft/ops", []byte(`{"type":"setTerms","terms":"Net 7"}`), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		State struct {
			Terms string `json:"terms"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Net 7", resp.State.Terms)
}

func TestDraftOpUnknownType(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodPost, "/api/draft/ops", []byte(`{"type":"mystery"}`), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitNotifiesCEOAndApproveIsGated(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/invoices/submit", nil, "employee")
	require.Equal(t, http.StatusCreated, rec.Code)

	var record workflowdomain.InvoiceRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, workflowdomain.ApprovalAwaiting, record.ApprovalStatus)

	msgs := s.notifications.ListForRole(catalogdomain.RoleCEO)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].ActionRequired)
	assert.Equal(t, notificationdomain.StatusUnread, msgs[0].Status)

	// The employee persona cannot decide approvals.
	body := []byte(`{"approvalStatus":"Approved"}`)
	rec = doRequest(s, http.MethodPost, "/api/invoices/"+record.ID+"/status", body, "employee")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/invoices/"+record.ID+"/status", body, "ceo")
	require.Equal(t, http.StatusOK, rec.Code)

	var updated workflowdomain.InvoiceRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, workflowdomain.ApprovalApproved, updated.ApprovalStatus)

	// Approved is terminal.
	rec = doRequest(s, http.MethodPost, "/api/invoices/"+record.ID+"/status", []byte(`{"approvalStatus":"Rejected"}`), "ceo")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSetApprovalStatusUnknownInvoice(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(s, http.MethodPost, "/api/invoices/nope/status", []byte(`{"approvalStatus":"Approved"}`), "ceo")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArchiveSaveAndLoad(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/archive", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var saved struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)

	rec = doRequest(s, http.MethodPost, "/api/archive/"+saved.ID+"/load", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/archive/missing/load", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportDraftFormats(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/draft/export/json", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/draft/export/html", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	rec = doRequest(s, http.MethodGet, "/api/draft/export/docx", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPaymentsEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/payments/overview", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var overview paymentsdomain.GatewayOverview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	assert.NotEmpty(t, overview.Gateway.ProviderName)
	assert.NotEmpty(t, overview.Channels)

	rec = doRequest(s, http.MethodGet, "/api/payments/insights", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var insights paymentsdomain.Insights
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &insights))
	assert.Greater(t, insights.TotalVolume, 0.0)
}

func TestNotificationsScopedToActor(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/invoices/submit", nil, "employee")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/notifications/unread-count", nil, "ceo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"unreadCount":1}`, rec.Body.String())

	rec = doRequest(s, http.MethodGet, "/api/notifications/unread-count", nil, "employee")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"unreadCount":0}`, rec.Body.String())

	rec = doRequest(s, http.MethodPost, "/api/notifications/read-all", nil, "ceo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"unreadCount":0}`, rec.Body.String())
}
