// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fmt"

	"cargomatch/config"
	"cargomatch/internal/delivery/api/middleware"
	"cargomatch/internal/delivery/api/router/handler"
	"cargomatch/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

// UploadPath receives multipart document uploads. It is exempt from the
// global body limit and bounded by the storage upload size instead.
const UploadPath = "/api/uploads"

// multipartOverhead leaves room for form boundaries and headers.
const multipartOverhead = 64 << 10

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	LSPHandler          *handler.LSPHandler
	ContainerHandler    *handler.ContainerHandler
	BookingHandler      *handler.BookingHandler
	ShipmentHandler     *handler.ShipmentHandler
	ComplaintHandler    *handler.ComplaintHandler
	NotificationHandler *handler.NotificationHandler
	DeviceHandler       *handler.DeviceHandler
	DocumentHandler     *handler.DocumentHandler
	AdminHandler        *handler.AdminHandler
	HealthHandler       *handler.HealthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	Metrics             *metrics.Recorder
	Config              *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	auth          *handler.AuthHandler
	lsp           *handler.LSPHandler
	containers    *handler.ContainerHandler
	bookings      *handler.BookingHandler
	shipments     *handler.ShipmentHandler
	complaints    *handler.ComplaintHandler
	notifications *handler.NotificationHandler
	devices       *handler.DeviceHandler
	documents     *handler.DocumentHandler
	admin         *handler.AdminHandler
	health        *handler.HealthHandler
	authMW        *middleware.AuthMiddleware
	metrics       *metrics.Recorder
	config        *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		auth:          params.AuthHandler,
		lsp:           params.LSPHandler,
		containers:    params.ContainerHandler,
		bookings:      params.BookingHandler,
		shipments:     params.ShipmentHandler,
		complaints:    params.ComplaintHandler,
		notifications: params.NotificationHandler,
		devices:       params.DeviceHandler,
		documents:     params.DocumentHandler,
		admin:         params.AdminHandler,
		health:        params.HealthHandler,
		authMW:        params.AuthMiddleware,
		metrics:       params.Metrics,
		config:        params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.health.HealthCheck)
	if r.config.Metrics != nil && r.config.Metrics.Enabled && r.metrics != nil {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}

	limited := middleware.NewRateLimiter(r.config)
	api := e.Group("/api")

	// Documents are uploaded before an LSP account exists, so these stay public.
	e.POST(UploadPath, r.documents.Upload, limited, r.uploadBodyLimit())
	api.POST("/documents/make-public", r.documents.MakePublic)
	api.POST("/cloudinary/make-public", r.documents.MakePublic)
	api.GET("/files/uploads/*", r.documents.ServeUpload)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.auth.RegisterTrader, limited)
		authGroup.POST("/login", r.auth.LoginTrader, limited)
		authGroup.GET("/me", r.auth.Me, r.authMW.RequireTrader)
	}

	r.registerTraderRoutes(api.Group("/trader", r.authMW.RequireTrader))
	r.registerLSPRoutes(api.Group("/lsp"), limited)
	r.registerAdminRoutes(api.Group("/admin"), limited)
}

func (r *router) uploadBodyLimit() echo.MiddlewareFunc {
	var maxSize int64 = 10 << 20
	if r.config.Storage != nil && r.config.Storage.MaxUploadSize > 0 {
		maxSize = r.config.Storage.MaxUploadSize
	}

	return echomiddleware.BodyLimit(fmt.Sprintf("%dB", maxSize+multipartOverhead))
}

func (r *router) registerTraderRoutes(g *echo.Group) {
	g.GET("/container-types", r.containers.ListContainerTypes)
	g.GET("/containers/search", r.containers.SearchContainers)

	g.POST("/bookings", r.bookings.CreateBooking)
	g.GET("/bookings", r.bookings.ListTraderBookings)
	g.GET("/bookings/:id", r.bookings.GetTraderBooking)
	g.POST("/bookings/:id/cancel", r.bookings.CancelBooking)

	g.GET("/shipments/:trackingNumber", r.shipments.TrackShipment)
	g.GET("/shipments/:trackingNumber/qr", r.shipments.TrackingQRCode)

	g.POST("/complaints", r.complaints.FileComplaint)
	g.GET("/complaints", r.complaints.ListTraderComplaints)

	r.registerInboxRoutes(g)
}

func (r *router) registerLSPRoutes(g *echo.Group, limited echo.MiddlewareFunc) {
	g.POST("/register", r.auth.RegisterLSP, limited)
	g.POST("/login", r.auth.LoginLSP, limited)

	lsp := g.Group("", r.authMW.RequireLSP)
	{
		lsp.GET("/profile", r.lsp.GetProfile)
		lsp.PUT("/profile", r.lsp.UpdateProfile)

		lsp.GET("/containers", r.containers.ListContainers)
		lsp.POST("/containers", r.containers.CreateContainer)
		lsp.GET("/containers/:id", r.containers.GetContainer)
		lsp.PUT("/containers/:id", r.containers.UpdateContainer)
		lsp.DELETE("/containers/:id", r.containers.DeleteContainer)

		lsp.GET("/bookings", r.bookings.ListLSPBookings)
		lsp.GET("/bookings/:id", r.bookings.GetLSPBooking)
		lsp.POST("/bookings/:id/approve", r.bookings.ApproveBooking)
		lsp.POST("/bookings/:id/reject", r.bookings.RejectBooking)
		lsp.POST("/bookings/:id/close", r.bookings.CloseBooking)

		lsp.GET("/shipments", r.shipments.ListLSPShipments)
		lsp.POST("/shipments", r.shipments.CreateShipment)
		lsp.PUT("/shipments/:id/status", r.shipments.UpdateShipmentStatus)
		lsp.GET("/shipments/:id/history", r.shipments.GetShipmentHistory)

		lsp.GET("/complaints", r.complaints.ListLSPComplaints)
		lsp.PUT("/complaints/:id", r.complaints.UpdateLSPComplaint)

		r.registerInboxRoutes(lsp)
	}
}

// registerInboxRoutes mounts notifications and devices, shared by traders and LSPs.
func (r *router) registerInboxRoutes(g *echo.Group) {
	g.GET("/notifications", r.notifications.ListNotifications)
	g.PUT("/notifications/read-all", r.notifications.MarkAllRead)
	g.PUT("/notifications/:id/read", r.notifications.MarkRead)

	g.POST("/devices", r.devices.RegisterDevice)
	g.GET("/devices", r.devices.GetUserDevices)
	g.PUT("/devices/:id/token", r.devices.UpdateFCMToken)
	g.DELETE("/devices/:id", r.devices.DeactivateDevice)
}

func (r *router) registerAdminRoutes(g *echo.Group, limited echo.MiddlewareFunc) {
	g.POST("/login", r.auth.LoginAdmin, limited)

	admin := g.Group("", r.authMW.RequireAdmin)
	{
		admin.GET("/dashboard", r.admin.Dashboard)

		admin.GET("/users", r.admin.ListUsers)
		admin.PUT("/users/:id/status", r.admin.SetUserStatus)

		admin.GET("/lsps", r.admin.ListLSPs)
		admin.GET("/lsps/:id", r.admin.GetLSP)
		admin.POST("/lsps/:id/verify", r.admin.ApproveLSP)
		admin.POST("/lsps/:id/approve", r.admin.ApproveLSP)
		admin.POST("/lsps/:id/reject", r.admin.RejectLSP)

		admin.GET("/container-types", r.containers.ListContainerTypes)
		admin.POST("/container-types", r.admin.CreateContainerType)
		admin.PUT("/container-types/:id", r.admin.UpdateContainerType)
		admin.DELETE("/container-types/:id", r.admin.DeleteContainerType)

		admin.GET("/containers", r.admin.ListContainers)
		admin.POST("/containers/:id/approve", r.admin.ApproveContainer)
		admin.POST("/containers/:id/reject", r.admin.RejectContainer)

		admin.GET("/bookings", r.admin.ListBookings)
		admin.GET("/bookings/export", r.admin.ExportBookings)
		admin.POST("/bookings/:id/close", r.bookings.CloseBooking)

		admin.GET("/shipments", r.admin.ListShipments)

		admin.GET("/complaints", r.complaints.ListComplaints)
		admin.PUT("/complaints/:id", r.complaints.UpdateComplaint)

		admin.POST("/jobs/close-bookings", r.admin.RunClosureJob)
	}
}
