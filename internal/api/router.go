package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/shopmanagementsystempk/Shop-Management-System/docs"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/api/handler"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/api/middleware"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/domain"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/guard"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/ports"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/core/service"
	"github.com/shopmanagementsystempk/Shop-Management-System/internal/infrastructure/config"
	mongostore "github.com/shopmanagementsystempk/Shop-Management-System/internal/infrastructure/db/mongo"
	redisstore "github.com/shopmanagementsystempk/Shop-Management-System/internal/infrastructure/db/redis"
	healthhandlers "github.com/shopmanagementsystempk/Shop-Management-System/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit trail is started by the caller; the router only enqueues into it.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit ports.AuditTrail, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("shopms"))

	// --- Stores ---
	credentials := mongostore.NewCredentialStore(db)
	shops := mongostore.NewShopRepository(db)
	admins := mongostore.NewAdminRepository(db)
	staff := mongostore.NewStaffRepository(db)
	guests := mongostore.NewGuestRepository(db)
	stock := mongostore.NewStockRepository(db)
	receipts := mongostore.NewReceiptRepository(db)
	expenses := mongostore.NewExpenseRepository(db)
	purchases := mongostore.NewPurchaseRepository(db)
	attendance := mongostore.NewAttendanceRepository(db)
	revoker := redisstore.NewRevocationStore(rdb)

	// --- Services ---
	authService := service.NewAuthService(service.AuthConfig{
		Credentials: credentials,
		Shops:       shops,
		Admins:      admins,
		Guests:      guests,
		Revoker:     revoker,
		Audit:       audit,
		ShopPolicy: domain.LockoutPolicy{
			Threshold:    cfg.Lockout.ShopThreshold,
			LockDuration: time.Duration(cfg.Lockout.ShopMinutes) * time.Minute,
		},
		AdminPolicy: domain.LockoutPolicy{
			Threshold:    cfg.Lockout.AdminThreshold,
			LockDuration: time.Duration(cfg.Lockout.AdminMinutes) * time.Minute,
		},
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  time.Duration(cfg.TokenTTLMinutes) * time.Minute,
	}, log)
	resolver := service.NewResolver(shops, admins, staff, guests, cfg.AdminEmail, log)
	adminService := service.NewAdminService(shops, audit, log)
	staffService := service.NewStaffService(staff, credentials, log)
	stockService := service.NewStockService(stock, log)
	receiptService := service.NewReceiptService(receipts, stock, log)
	expenseService := service.NewExpenseService(expenses, log)
	purchaseService := service.NewPurchaseService(purchases, stock, log)
	attendanceService := service.NewAttendanceService(attendance, staff, log)
	analyticsService := service.NewAnalyticsService(receipts, expenses, stock, staff, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	staffHandler := handler.NewStaffHandler(staffService)
	stockHandler := handler.NewStockHandler(stockService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	dashboardHandler := handler.NewDashboardHandler(analyticsService)

	session := middleware.Session(cfg.JWTSecret, revoker, resolver)

	// --- Open routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/admin/login", authHandler.AdminLogin)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/password-check", authHandler.CheckPassword)

	// --- Shop routes (general family, staff permissions per route) ---
	shop := e.Group("", session)
	shop.GET("/dashboard", dashboardHandler.Dashboard,
		middleware.Guard(guard.Route{Path: guard.DashboardPath}))
	shop.GET("/account-status", dashboardHandler.AccountStatus,
		middleware.Guard(guard.Route{Path: guard.AccountStatPath, AllowAnyStatus: true}))
	shop.GET("/analytics", dashboardHandler.Analytics,
		middleware.Guard(guard.Route{Path: "/analytics", Permission: domain.PermViewAnalytics}))

	shop.POST("/auth/guests", authHandler.RegisterGuest,
		middleware.Guard(guard.Route{Path: "/auth/guests"}))

	stockGuard := middleware.Guard(guard.Route{Path: "/stock", Permission: domain.PermViewStock})
	shop.POST("/stock", stockHandler.Create, stockGuard)
	shop.GET("/stock", stockHandler.List, stockGuard)
	shop.GET("/stock/:id", stockHandler.Get, stockGuard)
	shop.PUT("/stock/:id", stockHandler.Update, stockGuard)
	shop.DELETE("/stock/:id", stockHandler.Delete, stockGuard)

	shop.POST("/receipts", receiptHandler.Create,
		middleware.Guard(guard.Route{Path: "/receipts", Permission: domain.PermCreateReceipts}))
	viewReceipts := middleware.Guard(guard.Route{Path: "/receipts", Permission: domain.PermViewReceipts})
	shop.GET("/receipts", receiptHandler.List, viewReceipts)
	shop.GET("/receipts/:id", receiptHandler.Get, viewReceipts)

	staffGuard := middleware.Guard(guard.Route{Path: "/employees", Permission: domain.PermViewEmployees})
	shop.POST("/employees", staffHandler.Create, staffGuard)
	shop.GET("/employees", staffHandler.List, staffGuard)
	shop.PUT("/employees/:id", staffHandler.Update, staffGuard)
	shop.DELETE("/employees/:id", staffHandler.Delete, staffGuard)

	expenseGuard := middleware.Guard(guard.Route{Path: "/expenses", Permission: domain.PermManageExpenses})
	shop.POST("/expenses/categories", expenseHandler.CreateCategory, expenseGuard)
	shop.GET("/expenses/categories", expenseHandler.ListCategories, expenseGuard)
	shop.DELETE("/expenses/categories/:id", expenseHandler.DeleteCategory, expenseGuard)
	shop.POST("/expenses", expenseHandler.Create, expenseGuard)
	shop.GET("/expenses", expenseHandler.List, expenseGuard)
	shop.PUT("/expenses/:id", expenseHandler.Update, expenseGuard)
	shop.DELETE("/expenses/:id", expenseHandler.Delete, expenseGuard)

	// Purchases replenish stock, so they share the stock permission.
	purchaseGuard := middleware.Guard(guard.Route{Path: "/purchases", Permission: domain.PermViewStock})
	shop.POST("/purchases", purchaseHandler.Create, purchaseGuard)
	shop.GET("/purchases", purchaseHandler.List, purchaseGuard)
	shop.POST("/purchases/:id/receive", purchaseHandler.Receive, purchaseGuard)
	shop.POST("/purchases/:id/cancel", purchaseHandler.Cancel, purchaseGuard)

	attendanceGuard := middleware.Guard(guard.Route{Path: "/attendance", Permission: domain.PermMarkAttendance})
	shop.POST("/attendance", attendanceHandler.Mark, attendanceGuard)
	shop.GET("/attendance", attendanceHandler.Month, attendanceGuard)
	shop.GET("/attendance/salaries", attendanceHandler.Salaries,
		middleware.Guard(guard.Route{Path: "/attendance/salaries", Permission: domain.PermViewEmployees}))

	// --- Guest routes ---
	guestGroup := e.Group("/guest-dashboard", session)
	guestGuard := middleware.Guard(guard.Route{Path: guard.GuestHomePath, Family: guard.FamilyGuest})
	guestGroup.GET("", dashboardHandler.GuestDashboard, guestGuard)
	guestGroup.POST("/receipts", receiptHandler.Create, guestGuard)

	// --- Admin routes ---
	adminGroup := e.Group("/admin", session)
	adminGuard := middleware.Guard(guard.Route{Path: "/admin", Family: guard.FamilyAdmin})
	adminGroup.GET("/shops", adminHandler.ListShops, adminGuard)
	adminGroup.PUT("/shops/:id/status", adminHandler.SetShopStatus, adminGuard)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
