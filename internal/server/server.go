package server

import (
	"context"
	"net/http"
	"time"

	"github.com/auroradigital/billingdesk/internal/activity"
	activitydomain "github.com/auroradigital/billingdesk/internal/activity/domain"
	"github.com/auroradigital/billingdesk/internal/catalog"
	catalogdomain "github.com/auroradigital/billingdesk/internal/catalog/domain"
	"github.com/auroradigital/billingdesk/internal/config"
	"github.com/auroradigital/billingdesk/internal/invoice"
	"github.com/auroradigital/billingdesk/internal/invoice/archive"
	"github.com/auroradigital/billingdesk/internal/invoice/draft"
	"github.com/auroradigital/billingdesk/internal/invoice/render"
	"github.com/auroradigital/billingdesk/internal/notification"
	notificationstore "github.com/auroradigital/billingdesk/internal/notification/store"
	"github.com/auroradigital/billingdesk/internal/observability"
	obsmiddleware "github.com/auroradigital/billingdesk/internal/observability/logger"
	obsmetrics "github.com/auroradigital/billingdesk/internal/observability/metrics"
	obstracing "github.com/auroradigital/billingdesk/internal/observability/tracing"
	"github.com/auroradigital/billingdesk/internal/payments"
	paymentsdomain "github.com/auroradigital/billingdesk/internal/payments/domain"
	"github.com/auroradigital/billingdesk/internal/providers"
	"github.com/auroradigital/billingdesk/internal/providers/pdf"
	"github.com/auroradigital/billingdesk/internal/workflow"
	workflowservice "github.com/auroradigital/billingdesk/internal/workflow/service"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	catalog.Module,
	invoice.Module,
	workflow.Module,
	notification.Module,
	activity.Module,
	payments.Module,
	providers.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	consoleCfg    *config.ConsoleConfigHolder
	db            *gorm.DB
	genID         *snowflake.Node
	directory     catalogdomain.Directory
	form          *draft.Form
	archive       *archive.Archive
	workflowSvc   *workflowservice.Service
	notifications *notificationstore.Store
	activitySvc   activitydomain.Recorder
	paymentsSvc   paymentsdomain.Service
	renderer      render.Renderer
	pdfProvider   pdf.Provider
	obsMetrics    *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	ConsoleCfg    *config.ConsoleConfigHolder
	DB            *gorm.DB
	GenID         *snowflake.Node
	Directory     catalogdomain.Directory
	Form          *draft.Form
	Archive       *archive.Archive
	WorkflowSvc   *workflowservice.Service
	Notifications *notificationstore.Store
	ActivitySvc   activitydomain.Recorder
	PaymentsSvc   paymentsdomain.Service
	Renderer      render.Renderer
	PDFProvider   pdf.Provider
	ObsMetrics    *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		consoleCfg:    p.ConsoleCfg,
		db:            p.DB,
		genID:         p.GenID,
		directory:     p.Directory,
		form:          p.Form,
		archive:       p.Archive,
		workflowSvc:   p.WorkflowSvc,
		notifications: p.Notifications,
		activitySvc:   p.ActivitySvc,
		paymentsSvc:   p.PaymentsSvc,
		renderer:      p.Renderer,
		pdfProvider:   p.PDFProvider,
		obsMetrics:    p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.ActorContext())

	// -------- Reference data --------
	api.GET("/organization", s.GetOrganization)
	api.GET("/services", s.ListServices)
	api.GET("/clients", s.ListClients)
	api.GET("/config", s.GetConsoleConfig)

	// -------- Draft --------
	api.GET("/draft", s.GetDraft)
	api.POST("/draft/ops", s.ApplyDraftOp)
	api.GET("/draft/totals", s.GetDraftTotals)
	api.POST("/draft/validate", s.ValidateDraft)
	api.POST("/draft/regenerate-number", s.RegenerateInvoiceNumber)
	api.POST("/draft/reset", s.ResetDraft)
	api.GET("/draft/export/:format", s.ExportDraft)

	// -------- Archive --------
	api.GET("/archive", s.ListArchive)
	api.POST("/archive", s.SaveToArchive)
	api.POST("/archive/:id/update", s.UpdateArchiveEntry)
	api.POST("/archive/:id/duplicate", s.DuplicateArchiveEntry)
	api.POST("/archive/:id/load", s.LoadArchiveEntry)
	api.DELETE("/archive/:id", s.RemoveArchiveEntry)
	api.GET("/archive/:id/export/:format", s.ExportArchiveEntry)

	// -------- Approval workflow --------
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.POST("/invoices/submit", s.SubmitInvoice)
	api.POST("/invoices/:id/status", s.RequireRole(catalogdomain.RoleCEO), s.SetApprovalStatus)
	api.POST("/invoices/:id/resubmit", s.ResubmitInvoice)
	api.GET("/invoices/:id/export/:format", s.ExportInvoice)

	// -------- Notifications --------
	api.GET("/notifications", s.ListNotifications)
	api.GET("/notifications/unread-count", s.GetUnreadCount)
	api.POST("/notifications/read-all", s.MarkAllNotificationsRead)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)

	// -------- Payments --------
	api.GET("/payments/overview", s.GetPaymentsOverview)
	api.GET("/payments/insights", s.GetPaymentsInsights)
	api.GET("/payments/transactions", s.ListPaymentTransactions)

	// -------- Activity --------
	api.GET("/activity", s.ListActivity)
}
