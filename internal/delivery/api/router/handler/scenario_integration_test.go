package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"cargomatch/config"
	deliverycontext "cargomatch/internal/delivery/context"
	"cargomatch/internal/domain/entity"
	"cargomatch/internal/infra/auth"
	"cargomatch/internal/infra/export"
	"cargomatch/internal/infra/lock"
	"cargomatch/internal/infra/metrics"
	"cargomatch/internal/infra/persistence/model"
	"cargomatch/internal/infra/persistence/postgres"
	"cargomatch/internal/infra/pubsub"
	"cargomatch/internal/infra/qrcode"
	"cargomatch/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// scenarioDSNEnv names a keyword/value postgres DSN, e.g.
// "host=localhost user=postgres password=postgres dbname=cargomatch_test sslmode=disable".
const scenarioDSNEnv = "CARGOMATCH_TEST_POSTGRES_DSN"

// openScenarioDB migrates a throwaway schema and points every pooled
// connection at it through search_path.
func openScenarioDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(scenarioDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping postgres scenario", scenarioDSNEnv)
	}

	admin, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	adminSQL, err := admin.DB()
	require.NoError(t, err)

	schema := "scenario_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	require.NoError(t, admin.Exec("CREATE SCHEMA "+schema).Error)
	t.Cleanup(func() {
		_ = admin.Exec("DROP SCHEMA " + schema + " CASCADE").Error
		_ = adminSQL.Close()
	})

	db, err := gorm.Open(gormpostgres.Open(dsn+" search_path="+schema+",public TimeZone=UTC"), &gorm.Config{
		Logger:                                   logger.Discard,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// Ids only need to be unique here; ordering is not asserted.
	require.NoError(t, db.Exec(
		"CREATE FUNCTION "+schema+".uuid_generate_v7() RETURNS uuid LANGUAGE sql AS 'SELECT gen_random_uuid()'",
	).Error)
	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.LSPProfileModel{},
		&model.ContainerTypeModel{},
		&model.ContainerModel{},
		&model.BookingModel{},
		&model.ShipmentModel{},
		&model.ShipmentStatusHistoryModel{},
		&model.ComplaintModel{},
		&model.NotificationModel{},
		&model.UserDeviceModel{},
	))

	return db
}

type scenarioHandlers struct {
	auth      *AuthHandler
	admin     *AdminHandler
	container *ContainerHandler
	booking   *BookingHandler
	shipment  *ShipmentHandler
}

func newScenarioHandlers(t *testing.T, db *gorm.DB) *scenarioHandlers {
	t.Helper()

	cfg := &config.Config{
		Auth:    &config.AuthConfig{BcryptCost: bcrypt.MinCost, AccessTokenTTL: time.Hour, MinPasswordLength: 8},
		Admin:   &config.AdminConfig{Email: "ops@cargomatch.test", Password: "admin-secret"},
		Booking: &config.BookingConfig{TimeZone: "UTC", ClosureLeadDays: 1, ClosureLockTTL: time.Minute},
	}
	cfg.SecretKey.Trader = "trader-secret"
	cfg.SecretKey.LSP = "lsp-secret"
	cfg.SecretKey.Admin = "admin-secret"

	log := discardLogger()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	publisher, err := pubsub.NewEventPublisher(pubsub.PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: cfg,
		Logger: log,
	})
	require.NoError(t, err)
	recorder := metrics.NewRecorder()

	txManager := postgres.NewTransactionManager(db)
	userRepo := postgres.NewUserRepository(db)
	lspRepo := postgres.NewLSPProfileRepository(db)
	typeRepo := postgres.NewContainerTypeRepository(db)
	containerRepo := postgres.NewContainerRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	shipmentRepo := postgres.NewShipmentRepository(db)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Config:       cfg,
		Logger:       log,
	})
	adminUC := impl.NewAdminService(impl.AdminServiceParams{
		TxManager:     txManager,
		UserRepo:      userRepo,
		LSPRepo:       lspRepo,
		ContainerRepo: containerRepo,
		BookingRepo:   bookingRepo,
		ShipmentRepo:  shipmentRepo,
		ComplaintRepo: postgres.NewComplaintRepository(db),
		Exporter:      export.NewXLSXExporter(),
		Publisher:     publisher,
		Metrics:       recorder,
		Logger:        log,
	})
	containerUC := impl.NewContainerService(impl.ContainerServiceParams{
		ContainerRepo:     containerRepo,
		ContainerTypeRepo: typeRepo,
		Logger:            log,
	})
	bookingUC := impl.NewBookingService(impl.BookingServiceParams{
		TxManager:     txManager,
		BookingRepo:   bookingRepo,
		ContainerRepo: containerRepo,
		LSPRepo:       lspRepo,
		Publisher:     publisher,
		Metrics:       recorder,
		Logger:        log,
	})
	closureUC, err := impl.NewClosureService(impl.ClosureServiceParams{
		TxManager:   txManager,
		BookingRepo: bookingRepo,
		Locker:      lock.NewLocalLocker(),
		Publisher:   publisher,
		Metrics:     recorder,
		Config:      cfg,
		Logger:      log,
	})
	require.NoError(t, err)
	shipmentUC := impl.NewShipmentService(impl.ShipmentServiceParams{
		TxManager:    txManager,
		ShipmentRepo: shipmentRepo,
		BookingRepo:  bookingRepo,
		QRService:    qrcode.NewQRCodeService(256, "M", "https://cargomatch.test/track"),
		Publisher:    publisher,
		Logger:       log,
	})

	adminHandler, err := NewAdminHandler(AdminHandlerParams{
		AdminUC:         adminUC,
		ContainerTypeUC: impl.NewContainerTypeService(impl.ContainerTypeServiceParams{ContainerTypeRepo: typeRepo, Logger: log}),
		ClosureUC:       closureUC,
		Config:          cfg,
		Logger:          log,
	})
	require.NoError(t, err)

	return &scenarioHandlers{
		auth:      NewAuthHandler(AuthHandlerParams{AuthUC: authUC, Logger: log}),
		admin:     adminHandler,
		container: NewContainerHandler(ContainerHandlerParams{ContainerUC: containerUC, Logger: log}),
		booking:   NewBookingHandler(BookingHandlerParams{BookingUC: bookingUC, Logger: log}),
		shipment:  NewShipmentHandler(ShipmentHandlerParams{ShipmentUC: shipmentUC, Logger: log}),
	}
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Nil(t, body.Error)
	require.NoError(t, json.Unmarshal(body.Data, out))
}

func TestBookingLifecycleAgainstPostgres_Integration(t *testing.T) {
	db := openScenarioDB(t)
	h := newScenarioHandlers(t, db)

	admin := adminIdentity()
	lsp := &deliverycontext.Identity{Role: entity.RoleLSP}
	trader := &deliverycontext.Identity{Role: entity.RoleTrader}

	e := newTestEcho()
	e.POST("/api/lsp/register", h.auth.RegisterLSP)
	e.POST("/api/lsp/login", h.auth.LoginLSP)
	e.POST("/api/auth/register", h.auth.RegisterTrader)
	e.POST("/api/admin/lsps/:id/approve", h.admin.ApproveLSP, as(admin))
	e.POST("/api/admin/container-types", h.admin.CreateContainerType, as(admin))
	e.POST("/api/admin/containers/:id/approve", h.admin.ApproveContainer, as(admin))
	e.POST("/api/admin/jobs/close-bookings", h.admin.RunClosureJob, as(admin))
	e.POST("/api/lsp/containers", h.container.CreateContainer, as(lsp))
	e.POST("/api/lsp/bookings/:id/approve", h.booking.ApproveBooking, as(lsp))
	e.POST("/api/lsp/bookings/:id/close", h.booking.CloseBooking, as(lsp))
	e.GET("/api/lsp/shipments", h.shipment.ListLSPShipments, as(lsp))
	e.GET("/api/trader/containers/search", h.container.SearchContainers, as(trader))
	e.POST("/api/trader/bookings", h.booking.CreateBooking, as(trader))
	e.GET("/api/trader/bookings/:id", h.booking.GetTraderBooking, as(trader))
	e.GET("/api/trader/shipments/:trackingNumber", h.shipment.TrackShipment, as(trader))

	// Register an LSP; it cannot log in until an admin verifies it.
	rec := serve(e, http.MethodPost, "/api/lsp/register", `{
		"name":"Asha Rao","email":"ops@westcoast.test","password":"harbour-pass-1",
		"company_name":"West Coast Freight","gst_number":"27AAACW1234F1Z5",
		"gst_certificate_url":"https://docs.test/gst.pdf"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var lspUser entity.User
	decodeData(t, rec, &lspUser)
	require.NotNil(t, lspUser.LSPProfile)
	assert.False(t, lspUser.LSPProfile.IsVerified)

	login := `{"email":"ops@westcoast.test","password":"harbour-pass-1"}`
	rec = serve(e, http.MethodPost, "/api/lsp/login", login)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "LSP_NOT_VERIFIED", decode(t, rec).Error.Code)

	rec = serve(e, http.MethodPost, "/api/admin/lsps/"+lspUser.LSPProfile.ID.String()+"/approve", `{"notes":"documents checked"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(e, http.MethodPost, "/api/lsp/login", login)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var token LoginResponse
	decodeData(t, rec, &token)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, entity.RoleLSP, token.Role)

	lsp.UserID = lspUser.ID
	lsp.LSPID = &lspUser.LSPProfile.ID

	// List a container; it stays out of search until an admin approves it.
	rec = serve(e, http.MethodPost, "/api/admin/container-types", `{"name":"40ft High Cube","size_feet":40,"capacity_cbm":76,"max_weight_kg":26500}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var containerType entity.ContainerType
	decodeData(t, rec, &containerType)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	departure := today.AddDate(0, 0, 10)
	rec = serve(e, http.MethodPost, "/api/lsp/containers", fmt.Sprintf(`{
		"container_type_id":%q,"container_number":"mscu1234565",
		"origin":"Nhava Sheva","destination":"Jebel Ali",
		"departure_date":%q,"arrival_date":%q,
		"capacity_cbm":60,"price_per_cbm":"42.50","currency":"USD",
		"auto_approve_bookings":true}`,
		containerType.ID, departure.Format(time.RFC3339), departure.AddDate(0, 0, 6).Format(time.RFC3339)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var container entity.Container
	decodeData(t, rec, &container)
	assert.Equal(t, "MSCU1234565", container.ContainerNumber)
	assert.Equal(t, entity.ContainerApprovalPending, container.ApprovalStatus)

	var found []*entity.Container
	rec = serve(e, http.MethodGet, "/api/trader/containers/search?origin=nhava", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &found)
	assert.Empty(t, found)

	rec = serve(e, http.MethodPost, "/api/admin/containers/"+container.ID.String()+"/approve", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(e, http.MethodGet, "/api/trader/containers/search?origin=nhava", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &found)
	require.Len(t, found, 1)
	assert.Equal(t, container.ID, found[0].ID)

	// A trader books space; the LSP approval schedules the shipment.
	rec = serve(e, http.MethodPost, "/api/auth/register", `{"name":"Vikram Shah","email":"vikram@spices.test","password":"cardamom-99","company_name":"Shah Spices"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var traderUser entity.User
	decodeData(t, rec, &traderUser)
	trader.UserID = traderUser.ID

	rec = serve(e, http.MethodPost, "/api/trader/bookings", fmt.Sprintf(`{
		"container_id":%q,
		"cargo_details":{"source":"web","cargo_type":"spices","description":"cardamom in jute bags"},
		"volume_cbm":12.5,"weight_kg":3100}`, container.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var booking entity.Booking
	decodeData(t, rec, &booking)
	assert.Equal(t, entity.BookingStatusPending, booking.Status)
	assert.True(t, booking.IsAutoApproved)
	assert.Equal(t, "531.25", booking.TotalPrice.StringFixed(2))

	rec = serve(e, http.MethodPost, "/api/lsp/bookings/"+booking.ID.String()+"/approve", `{"notes":"cut-off is noon"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &booking)
	assert.Equal(t, entity.BookingStatusApproved, booking.Status)

	rec = serve(e, http.MethodGet, "/api/trader/containers/search?origin=nhava", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &found)
	assert.Empty(t, found, "a reserved container is no longer bookable")

	var shipments struct {
		Items []*entity.Shipment `json:"items"`
		Total int64              `json:"total"`
	}
	rec = serve(e, http.MethodGet, "/api/lsp/shipments", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &shipments)
	require.Len(t, shipments.Items, 1)
	assert.Equal(t, booking.ID, shipments.Items[0].BookingID)
	assert.Equal(t, entity.ShipmentStatusScheduled, shipments.Items[0].Status)

	var tracking TrackingResponse
	rec = serve(e, http.MethodGet, "/api/trader/shipments/"+shipments.Items[0].TrackingNumber, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &tracking)
	assert.Equal(t, shipments.Items[0].ID, tracking.Shipment.ID)
	assert.NotEmpty(t, tracking.History)

	// The closure job, run the day before departure, closes the booking.
	rec = serve(e, http.MethodPost, "/api/admin/jobs/close-bookings", fmt.Sprintf(`{"date":%q}`, departure.AddDate(0, 0, -2).Format(dateLayout)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var early struct {
		Selected int `json:"selected"`
		Closed   int `json:"closed"`
	}
	decodeData(t, rec, &early)
	assert.Zero(t, early.Selected, "nothing departs the day after")

	rec = serve(e, http.MethodPost, "/api/admin/jobs/close-bookings", fmt.Sprintf(`{"date":%q}`, departure.AddDate(0, 0, -1).Format(dateLayout)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report struct {
		TargetDate string `json:"target_date"`
		Selected   int    `json:"selected"`
		Closed     int    `json:"closed"`
		Failed     int    `json:"failed"`
	}
	decodeData(t, rec, &report)
	assert.Equal(t, departure.Format(dateLayout), report.TargetDate)
	assert.Equal(t, 1, report.Selected)
	assert.Equal(t, 1, report.Closed)
	assert.Zero(t, report.Failed)

	rec = serve(e, http.MethodGet, "/api/trader/bookings/"+booking.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &booking)
	assert.Equal(t, entity.BookingStatusClosed, booking.Status)
	assert.Equal(t, "scheduler", booking.ClosedBy)
	require.NotNil(t, booking.ClosedAt)

	// Closing twice conflicts and a rerun of the job finds nothing left.
	rec = serve(e, http.MethodPost, "/api/lsp/bookings/"+booking.ID.String()+"/close", "")
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Equal(t, "BOOKING_STATUS_CONFLICT", decode(t, rec).Error.Code)

	rec = serve(e, http.MethodPost, "/api/admin/jobs/close-bookings", fmt.Sprintf(`{"date":%q}`, departure.AddDate(0, 0, -1).Format(dateLayout)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &report)
	assert.Zero(t, report.Selected)
	assert.Zero(t, report.Closed)
}

// Manual close of a booking the LSP has not approved yet must leave the
// container on the market.
func TestManualCloseOfPendingBookingAgainstPostgres_Integration(t *testing.T) {
	db := openScenarioDB(t)
	h := newScenarioHandlers(t, db)
	ctx := context.Background()

	lspUser := &model.UserModel{Name: "Meera Iyer", Email: "meera@mundra.test", PasswordHash: "-", Role: string(entity.RoleLSP), ApprovalStatus: "approved", IsActive: true}
	require.NoError(t, db.WithContext(ctx).Create(lspUser).Error)
	profile := &model.LSPProfileModel{UserID: lspUser.ID, CompanyName: "Mundra Lines", IsVerified: true, VerificationStatus: string(entity.VerificationStatusApproved)}
	require.NoError(t, db.WithContext(ctx).Create(profile).Error)

	lspID := profile.ID
	lsp := &deliverycontext.Identity{UserID: lspUser.ID, Role: entity.RoleLSP, LSPID: &lspID}
	trader := &deliverycontext.Identity{UserID: uuid.New(), Role: entity.RoleTrader}

	containerType := &model.ContainerTypeModel{Name: "20ft Standard", SizeFeet: 20, CapacityCBM: 33, MaxWeightKg: 28000}
	require.NoError(t, db.WithContext(ctx).Create(containerType).Error)
	departure := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 5)
	container := &model.ContainerModel{
		LSPID:                   lspID,
		ContainerTypeID:         containerType.ID,
		ContainerNumber:         "TGHU8765432",
		Origin:                  "Mundra",
		Destination:             "Colombo",
		DepartureDate:           departure,
		ArrivalDate:             departure.AddDate(0, 0, 3),
		CapacityCBM:             30,
		PricePerCBM:             decimal.NewFromInt(55),
		ContainerApprovalStatus: string(entity.ContainerApprovalApproved),
		IsAvailable:             true,
	}
	require.NoError(t, db.WithContext(ctx).Create(container).Error)

	e := newTestEcho()
	e.POST("/api/trader/bookings", h.booking.CreateBooking, as(trader))
	e.POST("/api/lsp/bookings/:id/close", h.booking.CloseBooking, as(lsp))

	rec := serve(e, http.MethodPost, "/api/trader/bookings", fmt.Sprintf(`{
		"container_id":%q,"cargo_details":{"source":"web","cargo_type":"textiles"},"volume_cbm":4}`, container.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var booking entity.Booking
	decodeData(t, rec, &booking)

	rec = serve(e, http.MethodPost, "/api/lsp/bookings/"+booking.ID.String()+"/close", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &booking)
	assert.Equal(t, entity.BookingStatusClosed, booking.Status)
	assert.Equal(t, "lsp", booking.ClosedBy)

	var reloaded model.ContainerModel
	require.NoError(t, db.WithContext(ctx).First(&reloaded, "id = ?", container.ID).Error)
	assert.True(t, reloaded.IsAvailable)

	rec = serve(e, http.MethodPost, "/api/lsp/bookings/"+booking.ID.String()+"/close", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}
